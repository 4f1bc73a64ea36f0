package graph

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/fastqio"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRead(seq string) *read.Read {
	r := read.New(0)
	r.SetStrMappings(read.Seq1, read.NewStrMappings([]byte(seq), read.BytesOrigin, 0))
	return r
}

func TestMatchRegexNode(t *testing.T) {
	r := newTestRead("ACGTAAAAGGGG")
	re := regexp.MustCompile(`(?P<poly>A+)`)
	star := inline.Star
	n := &MatchRegexNode{Type: read.Seq1, Label: star, Re: re}

	out, done, err := n.Run(NewScratch(), r)
	require.NoError(t, err)
	assert.False(t, done)

	sm, _ := out.StrMappings(read.Seq1)
	polyLabel, err := inline.NewChecked([]byte("poly"))
	require.NoError(t, err)
	m, ok := sm.Mapping(polyLabel)
	require.True(t, ok)
	assert.Equal(t, "A", string(sm.Substring(m)))
}

func TestMatchRegexNodeNoMatch(t *testing.T) {
	r := newTestRead("CCCCCCCC")
	re := regexp.MustCompile(`(?P<poly>A+)`)
	star := inline.Star
	attr, err := inline.NewChecked([]byte("has_poly"))
	require.NoError(t, err)
	n := &MatchRegexNode{Type: read.Seq1, Label: star, Re: re, Attr: &attr}

	out, _, err := n.Run(NewScratch(), r)
	require.NoError(t, err)

	sm, _ := out.StrMappings(read.Seq1)
	m, _ := sm.Mapping(star)
	d, err := out.Data(read.Seq1, star, attr)
	require.NoError(t, err)
	assert.Equal(t, read.Bool(false), d)
	_ = m
}

func TestMatchPolyXNodePrefix(t *testing.T) {
	r := newTestRead("AAAATCGT")
	star := inline.Star
	trimmed, err := inline.NewChecked([]byte("trimmed"))
	require.NoError(t, err)
	rest, err := inline.NewChecked([]byte("rest"))
	require.NoError(t, err)
	n := &MatchPolyXNode{
		Type: read.Seq1, Label: star, X: 'A', End: PolyXPrefix, Identity: 0.9,
		NewLabel1: &trimmed, NewLabel2: &rest,
	}

	out, _, err := n.Run(NewScratch(), r)
	require.NoError(t, err)

	sm, _ := out.StrMappings(read.Seq1)
	m1, ok := sm.Mapping(trimmed)
	require.True(t, ok)
	assert.Equal(t, "AAAA", string(sm.Substring(m1)))
	m2, ok := sm.Mapping(rest)
	require.True(t, ok)
	assert.Equal(t, "TCGT", string(sm.Substring(m2)))
}

func TestMatchPolyXNodeSuffix(t *testing.T) {
	r := newTestRead("TCGTGGGG")
	star := inline.Star
	rest, err := inline.NewChecked([]byte("rest"))
	require.NoError(t, err)
	trimmed, err := inline.NewChecked([]byte("trimmed"))
	require.NoError(t, err)
	n := &MatchPolyXNode{
		Type: read.Seq1, Label: star, X: 'G', End: PolyXSuffix, Identity: 0.9,
		NewLabel1: &rest, NewLabel2: &trimmed,
	}

	out, _, err := n.Run(NewScratch(), r)
	require.NoError(t, err)

	sm, _ := out.StrMappings(read.Seq1)
	m2, ok := sm.Mapping(trimmed)
	require.True(t, ok)
	assert.Equal(t, "GGGG", string(sm.Substring(m2)))
}

func TestOutputFastqNode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.fastq")

	r := read.New(7)
	r.SetStrMappings(read.Name1, read.NewStrMappings([]byte("@read7"), read.BytesOrigin, 7))
	r.SetStrMappings(read.Seq1, read.NewStrMappingsWithQual([]byte("ACGT"), []byte("IIII"), read.BytesOrigin, 7))

	nameFmt, err := expr.ParseFormat([]byte("{name1.*}"))
	require.NoError(t, err)
	pathFmt, err := expr.ParseFormat([]byte(path))
	require.NoError(t, err)

	cache := fastqio.NewWriterCache()
	n := &OutputFastqNode{
		Cache: cache, Type1: read.Seq1, Label1: inline.Star,
		Name1: nameFmt, Path1: pathFmt,
	}

	_, done, err := n.Run(NewScratch(), r)
	require.NoError(t, err)
	assert.False(t, done)
	require.NoError(t, cache.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@read7\nACGT\n+\nIIII\n", string(data))
}
