package graph

import (
	"github.com/grailbio/seqflow/fastqio"
	"github.com/grailbio/seqflow/read"
)

// SourceNode adapts a fastqio.Source into the first Node of a Graph: its
// Run ignores the incoming read (always nil, since nothing precedes a
// source) and pulls the next one from the backing FASTQ lanes instead.
// Per-worker chunk-queue state lives in Scratch.State, keyed by the
// wrapped Source's own identity, so concurrent RunWithThreads workers
// each get their own queue slice over the one shared, mutex-guarded
// Source.
type SourceNode struct {
	Source *fastqio.Source
}

// NewSourceNode wraps src as a Node.
func NewSourceNode(src *fastqio.Source) *SourceNode { return &SourceNode{Source: src} }

func (n *SourceNode) Run(s *Scratch, _ *read.Read) (*read.Read, bool, error) {
	return n.Source.Next(s.State)
}
func (n *SourceNode) RequiredNames() []read.LabelOrAttrName { return nil }
func (n *SourceNode) Name() string                          { return "source" }
