package fastqio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterCachePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fastq")
	c := NewWriterCache()
	w, err := c.Get(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(&Record{ID: []byte("@r1"), Seq: []byte("ACGT"), Qual: []byte("IIII")}))

	w2, err := c.Get(path)
	require.NoError(t, err)
	assert.Same(t, w, w2, "same path must return the same cached writer")

	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@r1\nACGT\n+\nIIII\n", string(data))
}

func TestWriterCacheGzipSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fastq.gz")
	c := NewWriterCache()
	w, err := c.Get(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(&Record{ID: []byte("@r1"), Seq: []byte("ACGT"), Qual: []byte("IIII")}))
	require.NoError(t, c.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()
	buf := make([]byte, 256)
	n, _ := gr.Read(buf)
	assert.Contains(t, string(buf[:n]), "@r1")
}
