package graph

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// ForEachFunc mutates a read in place for its side effects.
type ForEachFunc func(r *read.Read) error

// ForEachNode calls a function on every read for its side effects.
type ForEachNode struct {
	Fn   ForEachFunc
	name string
}

// NewForEach builds a ForEachNode, name identifying it in diagnostics.
func NewForEach(name string, fn ForEachFunc) *ForEachNode { return &ForEachNode{Fn: fn, name: name} }

func (n *ForEachNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	if err := n.Fn(r); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *ForEachNode) RequiredNames() []read.LabelOrAttrName { return nil }
func (n *ForEachNode) Name() string                          { return n.name }

// DbgNode prints each read's textual display; a ForEach specialization.
type DbgNode struct{ inner *ForEachNode }

// NewDbg builds a DbgNode that writes r.Display() to w for every read.
func NewDbg(w interface{ Write([]byte) (int, error) }) *DbgNode {
	return &DbgNode{inner: NewForEach("dbg", func(r *read.Read) error {
		_, err := w.Write([]byte(r.Display()))
		return err
	})}
}
func (n *DbgNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) { return n.inner.Run(s, r) }
func (n *DbgNode) RequiredNames() []read.LabelOrAttrName                  { return nil }
func (n *DbgNode) Name() string                                          { return "dbg" }

// RetainNode passes a read iff its expression evaluates true, dropping it
// otherwise.
type RetainNode struct {
	Expr expr.Node
}

func NewRetain(e expr.Node) *RetainNode { return &RetainNode{Expr: e} }

func (n *RetainNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	ok, err := expr.EvalBool(n.Expr, r)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return r, false, nil
}
func (n *RetainNode) RequiredNames() []read.LabelOrAttrName { return n.Expr.RequiredNames() }
func (n *RetainNode) Name() string                          { return "retain" }

// SelectNode runs a subgraph on reads matching its expression; others
// pass through unchanged.
type SelectNode struct {
	Expr     expr.Node
	Subgraph *Graph
}

func NewSelect(e expr.Node, g *Graph) *SelectNode { return &SelectNode{Expr: e, Subgraph: g} }

func (n *SelectNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) {
	ok, err := expr.EvalBool(n.Expr, r)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return r, false, nil
	}
	return n.Subgraph.RunOne(s, r)
}
func (n *SelectNode) RequiredNames() []read.LabelOrAttrName { return n.Expr.RequiredNames() }
func (n *SelectNode) Name() string                          { return "select" }

// CountNode atomically increments one counter per selector that matches,
// for every read it sees, and always passes the read through.
type CountNode struct {
	names     []string
	selectors []expr.Node
	counts    []int64
}

// NewCount builds a CountNode from parallel name/selector lists.
func NewCount(names []string, selectors []expr.Node) *CountNode {
	return &CountNode{names: names, selectors: selectors, counts: make([]int64, len(selectors))}
}

func (n *CountNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	for i, sel := range n.selectors {
		ok, err := expr.EvalBool(sel, r)
		if err != nil {
			if seqerr.IsMissingName(err) {
				continue // a selector missing its names simply never increments
			}
			return nil, false, err
		}
		if ok {
			atomic.AddInt64(&n.counts[i], 1)
		}
	}
	return r, false, nil
}
func (n *CountNode) RequiredNames() []read.LabelOrAttrName {
	var out []read.LabelOrAttrName
	for _, sel := range n.selectors {
		out = append(out, sel.RequiredNames()...)
	}
	return out
}
func (n *CountNode) Name() string { return "count" }

// Counts returns the final count for each named selector.
func (n *CountNode) Counts() map[string]int64 {
	out := make(map[string]int64, len(n.names))
	for i, name := range n.names {
		out[name] = atomic.LoadInt64(&n.counts[i])
	}
	return out
}

// BernoulliNode sets attr to a deterministic boolean sample from
// Bernoulli(p), seeded by (seed << 32) + first_idx(read), so the outcome
// depends only on the input read's position, not on thread scheduling.
type BernoulliNode struct {
	Type StrType
	Label inline.String
	Attr inline.String
	P    float64
	Seed int64
}

// StrType is re-exported so callers building node literals don't need to
// import read just for this field's type.
type StrType = read.StrType

func NewBernoulli(t StrType, label, attr inline.String, p float64, seed int64) *BernoulliNode {
	return &BernoulliNode{Type: t, Label: label, Attr: attr, P: p, Seed: seed}
}

func (n *BernoulliNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, ok := r.StrMappings(n.Type)
	if !ok {
		return r, false, nil
	}
	m, ok := sm.Mapping(n.Label)
	if !ok {
		return r, false, nil
	}
	rngSeed := (n.Seed << 32) + r.FirstIdx()
	rng := rand.New(rand.NewSource(rngSeed))
	sample := rng.Float64() < n.P
	m.SetData(n.Attr, read.Bool(sample))
	return r, false, nil
}
func (n *BernoulliNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *BernoulliNode) Name() string { return "bernoulli" }

// ForkNode runs a subgraph on a clone of the read while letting the
// original continue unchanged downstream.
type ForkNode struct {
	Subgraph *Graph
}

func NewFork(g *Graph) *ForkNode { return &ForkNode{Subgraph: g} }

func (n *ForkNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) {
	clone := r.Clone()
	if _, _, err := n.Subgraph.RunOne(s, clone); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *ForkNode) RequiredNames() []read.LabelOrAttrName { return nil }
func (n *ForkNode) Name() string                          { return "fork" }

// TryNode runs Try on a read; if it fails only because of a missing
// required name anywhere in Try, Catch runs instead.
type TryNode struct {
	Try, Catch *Graph
}

func NewTry(try, catch *Graph) *TryNode { return &TryNode{Try: try, Catch: catch} }

func (n *TryNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) {
	next, done, skipped, err := n.Try.TryRunOne(s, r)
	if err != nil {
		return nil, false, err
	}
	if skipped {
		return n.Catch.RunOne(s, r)
	}
	return next, done, nil
}
func (n *TryNode) RequiredNames() []read.LabelOrAttrName { return nil }
func (n *TryNode) Name() string                          { return "try" }

// WhileNode runs its subgraph repeatedly while cond evaluates true.
type WhileNode struct {
	Cond     expr.Node
	Subgraph *Graph
}

func NewWhile(cond expr.Node, g *Graph) *WhileNode { return &WhileNode{Cond: cond, Subgraph: g} }

func (n *WhileNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) {
	cur := r
	for {
		ok, err := expr.EvalBool(n.Cond, cur)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		next, done, err := n.Subgraph.RunOne(s, cur)
		if err != nil {
			return nil, false, err
		}
		if done {
			return nil, true, nil
		}
		if next == nil {
			return nil, false, nil
		}
		cur = next
	}
	return cur, false, nil
}
func (n *WhileNode) RequiredNames() []read.LabelOrAttrName { return n.Cond.RequiredNames() }
func (n *WhileNode) Name() string                          { return "while" }

// IdxRange is an inclusive/exclusive first_idx bound for TakeNode.
type IdxRange struct {
	Lo, Hi int64 // [Lo, Hi)
}

// TakeNode passes reads whose first_idx falls in Range, and signals done
// once a read's index reaches or exceeds Range.Hi.
type TakeNode struct {
	Range IdxRange
}

func NewTake(r IdxRange) *TakeNode { return &TakeNode{Range: r} }

func (n *TakeNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	idx := r.FirstIdx()
	if idx >= n.Range.Hi {
		return nil, true, nil
	}
	if idx < n.Range.Lo {
		return nil, false, nil
	}
	return r, false, nil
}
func (n *TakeNode) RequiredNames() []read.LabelOrAttrName { return nil }
func (n *TakeNode) Name() string                          { return "take" }

// TimeNode wraps a subgraph and adds the wall-clock time spent inside it
// to one counter shared by all workers; it keeps no per-thread totals.
type TimeNode struct {
	Subgraph *Graph
	elapsed  int64 // nanoseconds, atomic
}

func NewTime(g *Graph) *TimeNode { return &TimeNode{Subgraph: g} }

func (n *TimeNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) {
	start := time.Now()
	next, done, err := n.Subgraph.RunOne(s, r)
	atomic.AddInt64(&n.elapsed, int64(time.Since(start)))
	return next, done, err
}
func (n *TimeNode) RequiredNames() []read.LabelOrAttrName { return nil }
func (n *TimeNode) Name() string                          { return "time" }

// Elapsed returns the accumulated time spent inside the subgraph across
// every call, from every worker.
func (n *TimeNode) Elapsed() time.Duration {
	return time.Duration(atomic.LoadInt64(&n.elapsed))
}
