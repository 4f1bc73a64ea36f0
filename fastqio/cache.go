package fastqio

import (
	"io"
	"strings"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// CachedWriter is one entry in a WriterCache: a Writer plus the
// lower-level handles needed to flush and close it.
type CachedWriter struct {
	mu sync.Mutex
	*Writer
	gz *gzip.Writer
	f  file.File
}

// Write writes rec, serializing concurrent callers of the same path.
func (cw *CachedWriter) Write(rec *Record) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.Writer.Write(rec)
}

// WriterCache is a process-wide, mutex-guarded map from output path to an
// open CachedWriter. Get checks the map and creates a missing writer under
// one lock, so two goroutines racing to open the same path only ever
// create one file; while a file is being created, Get calls for every
// other path wait on that lock. Grounded on
// encoding/fastq/downsample.go's fileHandle-by-path management. A ".gz"
// suffix selects gzip framing.
type WriterCache struct {
	mu      sync.Mutex
	writers map[string]*CachedWriter
}

// NewWriterCache builds an empty WriterCache.
func NewWriterCache() *WriterCache {
	return &WriterCache{writers: make(map[string]*CachedWriter)}
}

// Get returns the CachedWriter for path, creating and caching it (via
// file.Create, the same open seam the teacher uses so local and remote
// destinations are interchangeable) on first use.
func (c *WriterCache) Get(path string) (*CachedWriter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.writers[path]; ok {
		return w, nil
	}
	ctx := vcontext.Background()
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "creating output file", path)
	}
	var w io.Writer = f.Writer(ctx)
	cw := &CachedWriter{f: f}
	if strings.HasSuffix(path, ".gz") {
		cw.gz = gzip.NewWriter(w)
		w = cw.gz
	}
	cw.Writer = NewWriter(w)
	c.writers[path] = cw
	return cw, nil
}

// Close flushes and closes every writer the cache opened.
func (c *WriterCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx := vcontext.Background()
	e := errors.Once{}
	for _, cw := range c.writers {
		cw.mu.Lock()
		if cw.gz != nil {
			e.Set(cw.gz.Close())
		}
		e.Set(cw.f.Close(ctx))
		cw.mu.Unlock()
	}
	return e.Err()
}
