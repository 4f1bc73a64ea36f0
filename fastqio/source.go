package fastqio

import (
	"sync"
	"sync/atomic"

	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// chunkSize is the number of records a Source pulls from its backing
// scanners per lock acquisition. This amortizes lock contention under a
// thread pool while keeping the stream deterministic per record; treat it
// as a hard performance contract, not a tuning knob.
const chunkSize = 256

// Lane is one FASTQ stream feeding a Source: a scanner producing (id, seq,
// qual) triples, the StrType its sequence lands in, and (for name-carrying
// lanes, i.e. everything but the index reads) the StrType its ID lands in.
type Lane struct {
	NameType *read.StrType // nil for index1/index2, which have no name type
	SeqType  read.StrType
	Scanner  *Scanner
	Origin   *read.Origin
}

// Source is a chunked, thread-safe FASTQ record source: one or more lanes
// (R1 alone; R1+R2; R1+R2+I1+I2; ...) scanned in lockstep, each lock
// acquisition filling a chunk of up to chunkSize reads that a caller then
// drains one at a time. Mirrors encoding/fastq/downsample.go's
// single-mutex, whole-record scan loop, generalized from a hardcoded pair
// to an arbitrary lane list and to chunked rather than record-at-a-time
// locking.
type Source struct {
	mu      sync.Mutex
	lanes   []Lane
	counter int64 // atomic; next first_idx to assign
	err     error // first scan error; returned by every fetch after it
}

// NewSource builds a Source over the given lanes. Lanes must all
// represent the same physical records (e.g. R1/R2/I1/I2 of one sample),
// scanned together so a short lane surfaces as seqerr.UnpairedRead rather
// than silently desynchronizing.
func NewSource(lanes ...Lane) *Source {
	return &Source{lanes: lanes}
}

// Next pulls the next read for the calling goroutine, using state (a
// worker's thread-local scratch map, keyed by this Source's identity) to
// hold the per-thread chunk queue a chunked lock acquisition fills. It
// returns (nil, true, nil) once every lane is exhausted.
func (s *Source) Next(state map[interface{}]interface{}) (*read.Read, bool, error) {
	queue, _ := state[s].([]*read.Read)
	if len(queue) == 0 {
		chunk, err := s.fetchChunk()
		if err != nil {
			return nil, false, err
		}
		if len(chunk) == 0 {
			return nil, true, nil
		}
		queue = chunk
	}
	r := queue[0]
	state[s] = queue[1:]
	return r, false, nil
}

func (s *Source) fetchChunk() ([]*read.Read, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	chunk := make([]*read.Read, 0, chunkSize)
	// fail delivers the reads scanned before err and reports err on the
	// next fetch.
	fail := func(err error) ([]*read.Read, error) {
		s.err = err
		if len(chunk) == 0 {
			return nil, err
		}
		return chunk, nil
	}
	for i := 0; i < chunkSize; i++ {
		recs := make([]Record, len(s.lanes))
		nDone := 0
		for li, lane := range s.lanes {
			if !lane.Scanner.Scan(&recs[li]) {
				if err := lane.Scanner.Err(); err != nil {
					return fail(&seqerr.ParseRecord{Origin: lane.Origin.String(), Index: s.counter, Cause: err})
				}
				nDone++
			}
		}
		if nDone == len(s.lanes) {
			break
		}
		if nDone > 0 {
			return fail(&seqerr.UnpairedRead{Origin: s.lanes[0].Origin.String()})
		}

		idx := atomic.AddInt64(&s.counter, 1) - 1
		r := read.New(idx)
		for li, lane := range s.lanes {
			rec := recs[li]
			if lane.NameType != nil {
				r.SetStrMappings(*lane.NameType, read.NewStrMappings(rec.ID, lane.Origin, idx))
			}
			r.SetStrMappings(lane.SeqType, read.NewStrMappingsWithQual(rec.Seq, rec.Qual, lane.Origin, idx))
		}
		chunk = append(chunk, r)
	}
	return chunk, nil
}
