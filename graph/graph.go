// Package graph implements the pipeline execution model (C8/C9): a Graph
// of Nodes walked per-read, with skip-if-missing-names scheduling, and
// the per-thread Scratch a node chain shares in place of Rust's
// thread-locals.
package graph

import (
	"sync"

	"github.com/grailbio/seqflow/align"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
	"github.com/pkg/errors"
)

// Node is one step of a pipeline: given an optional read, it produces the
// next read to pass downstream (or none, dropping it), and a done signal
// that terminates the whole pipeline when set.
type Node interface {
	// Run executes the node against r (nil for source nodes pulling from
	// their own backing reader). It returns the next read (nil to drop),
	// whether the whole pipeline is now done, and any error.
	Run(scratch *Scratch, r *read.Read) (next *read.Read, done bool, err error)
	// RequiredNames lists the labels/attrs that must be present on r for
	// this node to run; Graph.RunOne skips the node (passing r through
	// unchanged) when any are absent.
	RequiredNames() []read.LabelOrAttrName
	// Name identifies the node, used in error contexts and Dbg-style
	// diagnostics.
	Name() string
}

// Scratch holds everything about a node chain's execution that must not
// be shared across goroutines: an aligner buffer, a regex-derived capture
// scratch, and the chunked-source queues a thread pulls from. Go has no
// thread-locals, so a Scratch is allocated once per worker goroutine in
// RunWithThreads and threaded explicitly through every node call,
// standing in for the original crate's per-thread state.
type Scratch struct {
	Aligner *align.Aligner
	// State holds per-node, per-worker data that must not be shared
	// across goroutines: a source's chunked record queue, a compiled
	// regexp clone, and similar. Nodes key their own entries, typically
	// by their own pointer identity.
	State map[interface{}]interface{}
}

// NewScratch allocates an empty per-worker Scratch.
func NewScratch() *Scratch {
	return &Scratch{Aligner: align.NewAligner(), State: make(map[interface{}]interface{})}
}

// Graph owns an ordered list of nodes and walks a read through them.
type Graph struct {
	nodes []Node
}

// New builds a Graph from nodes in declaration order.
func New(nodes ...Node) *Graph {
	return &Graph{nodes: nodes}
}

// RunOne walks r through every node. A node is skipped (read passes
// through unchanged) if r is missing any of its required names. Returns
// the surviving read (nil if dropped along the way) and whether the
// pipeline is now done.
func (g *Graph) RunOne(scratch *Scratch, r *read.Read) (*read.Read, bool, error) {
	cur := r
	for _, n := range g.nodes {
		if cur != nil && !cur.HasNames(n.RequiredNames()) {
			continue
		}
		next, done, err := n.Run(scratch, cur)
		if err != nil {
			return nil, false, errors.Wrap(err, n.Name())
		}
		if done {
			return nil, true, nil
		}
		cur = next
		if cur == nil {
			return nil, false, nil
		}
	}
	return cur, false, nil
}

// TryRunOne behaves like RunOne, but additionally reports whether the
// read was skipped because it lacked a required name anywhere in the
// chain (as opposed to running to completion or being explicitly
// dropped). graph.Try uses this to redirect to its catch graph.
func (g *Graph) TryRunOne(scratch *Scratch, r *read.Read) (next *read.Read, done bool, skipped bool, err error) {
	cur := r
	for _, n := range g.nodes {
		if cur != nil && !cur.HasNames(n.RequiredNames()) {
			return cur, false, true, nil
		}
		nxt, d, e := n.Run(scratch, cur)
		if e != nil {
			if seqerr.IsMissingName(e) {
				return nil, false, true, nil
			}
			return nil, false, false, errors.Wrap(e, n.Name())
		}
		if d {
			return nil, true, false, nil
		}
		cur = nxt
		if cur == nil {
			return nil, false, false, nil
		}
	}
	return cur, false, false, nil
}

// Run repeatedly pulls and processes reads (by calling RunOne(nil)) from
// this graph's source nodes until a node signals done.
func (g *Graph) Run() error {
	scratch := NewScratch()
	for {
		_, done, err := g.RunOne(scratch, nil)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// RunWithThreads spawns n worker goroutines, each independently calling
// Run with its own Scratch; source nodes must tolerate concurrent chunked
// access (see fastqio.Source).
func (g *Graph) RunWithThreads(n int) error {
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scratch := NewScratch()
			for {
				_, done, err := g.RunOne(scratch, nil)
				if err != nil {
					errs[i] = err
					return
				}
				if done {
					return
				}
			}
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
