package graph

import (
	"testing"

	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutNode(t *testing.T) {
	r := readWithSeq1(t, "ACGTACGT")
	left := mustLabel(t, "left")
	right := mustLabel(t, "right")
	n := &CutNode{Type: read.Seq1, Label: inline.Star, NewLabel1: &left, NewLabel2: &right, CutIdx: read.LeftEnd(4)}

	out, _, err := n.Run(nil, r)
	require.NoError(t, err)
	sm, _ := out.StrMappings(read.Seq1)
	lm, ok := sm.Mapping(left)
	require.True(t, ok)
	assert.Equal(t, "ACGT", string(sm.Substring(lm)))
	rm, ok := sm.Mapping(right)
	require.True(t, ok)
	assert.Equal(t, "ACGT", string(sm.Substring(rm)))
}

func TestIntersectUnionNodes(t *testing.T) {
	r := readWithSeq1(t, "ACGTACGT")
	left := mustLabel(t, "left")
	right := mustLabel(t, "right")
	cut := &CutNode{Type: read.Seq1, Label: inline.Star, NewLabel1: &left, NewLabel2: &right, CutIdx: read.LeftEnd(4)}
	_, _, err := cut.Run(nil, r)
	require.NoError(t, err)

	union := mustLabel(t, "whole")
	un := &UnionNode{Type: read.Seq1, Label1: left, Label2: right, NewLabel: &union}
	_, _, err = un.Run(nil, r)
	require.NoError(t, err)
	sm, _ := r.StrMappings(read.Seq1)
	um, ok := sm.Mapping(union)
	require.True(t, ok)
	assert.Equal(t, "ACGTACGT", string(sm.Substring(um)))

	inter := mustLabel(t, "overlap")
	in := &IntersectNode{Type: read.Seq1, Label1: inline.Star, Label2: left, NewLabel: &inter}
	_, _, err = in.Run(nil, r)
	require.NoError(t, err)
	sm2, _ := r.StrMappings(read.Seq1)
	im, ok := sm2.Mapping(inter)
	require.True(t, ok)
	assert.Equal(t, "ACGT", string(sm2.Substring(im)))
}

func TestSetNode(t *testing.T) {
	r := readWithSeq1(t, "ACGT")
	str, err := expr.ParseFormat([]byte("TTTT"))
	require.NoError(t, err)
	n := &SetNode{Type: read.Seq1, Label: inline.Star, Str: str}

	_, _, err = n.Run(nil, r)
	require.NoError(t, err)
	sm, _ := r.StrMappings(read.Seq1)
	assert.Equal(t, "TTTT", string(sm.String()))
}

func TestTrimNode(t *testing.T) {
	r := readWithSeq1(t, "ACGT")
	n := &TrimNode{Type: read.Seq1, Label: inline.Star}
	_, _, err := n.Run(nil, r)
	require.NoError(t, err)
	sm, _ := r.StrMappings(read.Seq1)
	m, ok := sm.Mapping(inline.Star)
	require.True(t, ok)
	assert.Equal(t, "", string(sm.Substring(m)))
}

func TestPadNode(t *testing.T) {
	r := readWithSeq1(t, "ACGT")
	n := &PadNode{Type: read.Seq1, Label: inline.Star, TargetLen: 8}
	_, _, err := n.Run(nil, r)
	require.NoError(t, err)
	sm, _ := r.StrMappings(read.Seq1)
	m, _ := sm.Mapping(inline.Star)
	assert.Len(t, sm.Substring(m), 8)
}

func TestReverseComplementNode(t *testing.T) {
	r := readWithSeq1(t, "ACGT")
	n := &ReverseComplementNode{Type: read.Seq1, Label: inline.Star}
	_, _, err := n.Run(nil, r)
	require.NoError(t, err)
	sm, _ := r.StrMappings(read.Seq1)
	assert.Equal(t, "ACGT", string(sm.String())) // ACGT's reverse-complement is itself
}

func TestReverseNode(t *testing.T) {
	r := readWithSeq1(t, "ACGG")
	n := &ReverseNode{Type: read.Seq1, Label: inline.Star}
	_, _, err := n.Run(nil, r)
	require.NoError(t, err)
	sm, _ := r.StrMappings(read.Seq1)
	assert.Equal(t, "GGCA", string(sm.String()))
}
