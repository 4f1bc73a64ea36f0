package read

import (
	"testing"

	"github.com/grailbio/seqflow/inline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeq(t *testing.T, s, q string) *StrMappings {
	t.Helper()
	return NewStrMappingsWithQual([]byte(s), []byte(q), BytesOrigin, 0)
}

func TestCutRoundTrip(t *testing.T) {
	sm := newSeq(t, "AAAACCCC", "01234567")
	a := inline.New([]byte("a"))
	b := inline.New([]byte("b"))
	require.NoError(t, sm.Cut(inline.Star, &a, &b, LeftEnd(3)))

	ma, _ := sm.Mapping(a)
	mb, _ := sm.Mapping(b)
	assert.Equal(t, 0, ma.Start)
	assert.Equal(t, 3, ma.Len)
	assert.Equal(t, 3, mb.Start)
	assert.Equal(t, 5, mb.Len)

	// intersect(a,b) is empty.
	ix := inline.New([]byte("ix"))
	require.NoError(t, sm.Intersect(a, b, &ix))
	_, ok := sm.Mapping(ix)
	assert.False(t, ok, "intersect of adjacent cut halves must be empty")

	// union(a,b) reconstructs "*".
	un := inline.New([]byte("un"))
	require.NoError(t, sm.Union(a, b, &un))
	mun, ok := sm.Mapping(un)
	require.True(t, ok)
	star, _ := sm.Mapping(inline.Star)
	assert.Equal(t, star.Start, mun.Start)
	assert.Equal(t, star.Len, mun.Len)
}

func TestSetIdentity(t *testing.T) {
	sm := newSeq(t, "AAAACCCC", "01234567")
	a := inline.New([]byte("a"))
	require.NoError(t, sm.addMapping(&a, 2, 3, "test"))

	before := append([]byte(nil), sm.str...)
	beforeQual := append([]byte(nil), sm.qual...)
	m, _ := sm.Mapping(a)
	sub := append([]byte(nil), sm.Substring(m)...)
	subQual := append([]byte(nil), sm.SubstringQual(m)...)

	require.NoError(t, sm.Set(a, sub, subQual))
	assert.Equal(t, before, sm.str)
	assert.Equal(t, beforeQual, sm.qual)
	m2, _ := sm.Mapping(a)
	assert.Equal(t, *m, *m2)
}

func TestTrimIsSetEmpty(t *testing.T) {
	sm1 := newSeq(t, "AAAACCCC", "01234567")
	sm2 := newSeq(t, "AAAACCCC", "01234567")
	a := inline.New([]byte("a"))
	require.NoError(t, sm1.addMapping(&a, 2, 3, "test"))
	require.NoError(t, sm2.addMapping(&a, 2, 3, "test"))

	require.NoError(t, sm1.Trim(a))
	require.NoError(t, sm2.Set(a, []byte{}, []byte{}))

	assert.Equal(t, sm1.str, sm2.str)
	assert.Equal(t, sm1.qual, sm2.qual)
	assert.Equal(t, sm1.mappings, sm2.mappings)
}

func TestSimpleCutScenario(t *testing.T) {
	// input @r\nAAAACCCC\n+\n01234567\n
	sm := newSeq(t, "AAAACCCC", "01234567")
	a := inline.New([]byte("a"))
	b := inline.New([]byte("b"))
	require.NoError(t, sm.Cut(inline.Star, &a, &b, LeftEnd(3)))
	require.NoError(t, sm.Trim(a))

	assert.Equal(t, "ACCCC", string(sm.str))
	assert.Equal(t, "34567", string(sm.qual))
}

func TestNormalizeVariableBarcode(t *testing.T) {
	// bc of length 8, normalized to short=6, long=10.
	sm := newSeq(t, "GGGGGGGG", "IIIIIIII")
	bc := inline.New([]byte("bc"))
	require.NoError(t, sm.addMapping(&bc, 0, 8, "test"))

	require.NoError(t, sm.Norm(bc, 6, 10))

	m, _ := sm.Mapping(bc)
	// diff = 10 - 8 = 2; extraLen = ceil(log4(10-6+1)) = ceil(log4(5)) = 2.
	assert.Equal(t, 10+2, m.Len)
	assert.Equal(t, "GGGGGGGGAA", string(sm.str[:10]))
	assert.Equal(t, "GA", string(sm.str[10:12]))
}

func TestPadAppendsDeterministicSequence(t *testing.T) {
	sm := newSeq(t, "GG", "II")
	bc := inline.New([]byte("bc"))
	require.NoError(t, sm.addMapping(&bc, 0, 2, "test"))

	require.NoError(t, sm.Pad(bc, 5))
	m, _ := sm.Mapping(bc)
	assert.Equal(t, 5, m.Len)
	assert.Equal(t, "GGACA", string(sm.str))
}

func TestInvariantStarAlwaysSpans(t *testing.T) {
	sm := newSeq(t, "AAAACCCC", "01234567")
	a := inline.New([]byte("a"))
	require.NoError(t, sm.addMapping(&a, 2, 3, "test"))
	require.NoError(t, sm.Set(a, []byte("XX"), []byte("##")))

	star, ok := sm.Mapping(inline.Star)
	require.True(t, ok)
	assert.Equal(t, 0, star.Start)
	assert.Equal(t, len(sm.str), star.Len)
}

func TestDuplicateLabelFails(t *testing.T) {
	sm := newSeq(t, "AAAACCCC", "01234567")
	a := inline.New([]byte("a"))
	require.NoError(t, sm.addMapping(&a, 2, 3, "test"))
	err := sm.addMapping(&a, 0, 1, "test")
	require.Error(t, err)
}
