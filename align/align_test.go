package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalAlnExactMatch(t *testing.T) {
	a := NewAligner()
	m, start, end, ok := a.Align([]byte("ACGTACGT"), []byte("ACGTACGT"), Global, 0.9, 0.9)
	assert.True(t, ok)
	assert.Equal(t, 8, m)
	assert.Equal(t, 0, start)
	assert.Equal(t, 8, end)
}

func TestGlobalAlnOneMismatch(t *testing.T) {
	a := NewAligner()
	m, _, _, ok := a.Align([]byte("ACGTACGA"), []byte("ACGTACGT"), Global, 0.8, 0.8)
	assert.True(t, ok)
	assert.Equal(t, 7, m)
}

func TestLocalAlnFindsEmbeddedPattern(t *testing.T) {
	a := NewAligner()
	m, start, end, ok := a.Align([]byte("NNNNACGTNNNN"), []byte("ACGT"), Local, 0.9, 0.9)
	assert.True(t, ok)
	assert.Equal(t, 4, m)
	assert.Equal(t, 4, start)
	assert.Equal(t, 8, end)
}

func TestPrefixAlnAnchorsStart(t *testing.T) {
	a := NewAligner()
	m, start, _, ok := a.Align([]byte("ACGTNNNNNN"), []byte("ACGT"), Prefix, 0.9, 0.9)
	assert.True(t, ok)
	assert.Equal(t, 4, m)
	assert.Equal(t, 0, start)
}

func TestSuffixAlnAnchorsEnd(t *testing.T) {
	a := NewAligner()
	m, _, end, ok := a.Align([]byte("NNNNNNACGT"), []byte("ACGT"), Suffix, 0.9, 0.9)
	assert.True(t, ok)
	assert.Equal(t, 4, m)
	assert.Equal(t, 10, end)
}

func TestAlignerBufferReuseAcrossCalls(t *testing.T) {
	a := NewAligner()
	_, _, _, _ = a.Align([]byte("ACGT"), []byte("ACGT"), Global, 0.5, 0.5)
	firstRows, firstCols := a.rows, a.cols
	_, _, _, _ = a.Align([]byte("AC"), []byte("AC"), Global, 0.5, 0.5)
	// buffers never shrink.
	assert.Equal(t, firstRows, a.rows)
	assert.Equal(t, firstCols, a.cols)
}
