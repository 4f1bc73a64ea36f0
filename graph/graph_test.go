package graph

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/grailbio/seqflow/fastqio"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOneSkipsNodeMissingRequiredName(t *testing.T) {
	gate := &gateNode{required: []read.LabelOrAttrName{{Type: read.Seq2, Label: inline.Star}}}
	r := readWithSeq1(t, "ACGT")

	g := New(gate)
	out, done, err := g.RunOne(NewScratch(), r)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Same(t, r, out)
}

func TestRunOneStopsOnDone(t *testing.T) {
	n := NewTake(IdxRange{Lo: 0, Hi: 0}) // every read is >= Hi immediately
	trailing := &ForEachNode{name: "trailing", Fn: func(r *read.Read) error {
		t.Fatal("node after a done signal must not run")
		return nil
	}}
	g := New(n, trailing)
	_, done, err := g.RunOne(NewScratch(), read.New(0))
	require.NoError(t, err)
	assert.True(t, done)
}

func TestTryRunOneSkipsImmediatelyAndDoesNotRunLaterNodes(t *testing.T) {
	gate := &gateNode{required: []read.LabelOrAttrName{{Type: read.Seq2, Label: inline.Star}}}
	ran := false
	laterNode := &ForEachNode{name: "later", Fn: func(r *read.Read) error {
		ran = true
		return nil
	}}

	g := New(gate, laterNode)
	r := readWithSeq1(t, "ACGT")
	out, done, skipped, err := g.TryRunOne(NewScratch(), r)
	require.NoError(t, err)
	assert.False(t, done)
	assert.True(t, skipped)
	assert.Same(t, r, out)
	assert.False(t, ran, "a node after the skipped one must never run")
}

func TestTryRunOneRunsToCompletionWhenNamesPresent(t *testing.T) {
	ran := false
	n := &ForEachNode{name: "n", Fn: func(r *read.Read) error {
		ran = true
		return nil
	}}
	g := New(n)
	r := readWithSeq1(t, "ACGT")
	out, done, skipped, err := g.TryRunOne(NewScratch(), r)
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, skipped)
	assert.Same(t, r, out)
	assert.True(t, ran)
}

func TestRunWithThreadsDrainsSource(t *testing.T) {
	data := strings.Repeat("@r\nACGT\n+\nIIII\n", 37)
	name1 := read.Name1
	src := fastqio.NewSource(fastqio.Lane{
		NameType: &name1, SeqType: read.Seq1,
		Scanner: fastqio.NewScanner(strings.NewReader(data)), Origin: read.BytesOrigin,
	})

	var seen int64
	count := &ForEachNode{name: "count", Fn: func(r *read.Read) error {
		atomic.AddInt64(&seen, 1)
		return nil
	}}
	g := New(NewSourceNode(src), count)
	require.NoError(t, g.RunWithThreads(4))
	assert.EqualValues(t, 37, seen)
}
