package expr

import (
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// Node is a typed, evaluable expression over a read. Concrete node kinds
// (leaves Label/Attr/Constant/label_exists/attr_exists; internal nodes
// and/or/xor/not, comparisons, arithmetic, len, conversions, concat,
// repeat, in_bounds) are tagged-union variants of this interface, matching
// the "sum types over dynamic dispatch" guidance for a strongly-typed
// port.
type Node interface {
	Eval(r *read.Read) (read.Data, error)
	// RequiredNames lists the labels/attrs this node needs present on a
	// read before it can be evaluated safely; a graph node built on top of
	// an expression is skipped (not evaluated, not failed) when any of
	// these are absent.
	RequiredNames() []read.LabelOrAttrName
}

// EvalBool evaluates n and requires the result to be a bool.
func EvalBool(n Node, r *read.Read) (bool, error) {
	d, err := n.Eval(r)
	if err != nil {
		return false, err
	}
	b, ok := d.AsBool()
	if !ok {
		return false, typeErr("bool", d)
	}
	return b, nil
}

// EvalBytes evaluates n and requires the result to be bytes.
func EvalBytes(n Node, r *read.Read) ([]byte, error) {
	d, err := n.Eval(r)
	if err != nil {
		return nil, err
	}
	b, ok := d.AsBytes()
	if !ok {
		return nil, typeErr("bytes", d)
	}
	return b, nil
}

func typeErr(expected string, found read.Data) error {
	return &seqerr.NameError{Kind: seqerr.TypeMismatch, Expected: expected, Found: found.TypeName(), Context: "evaluating an expression"}
}

// --- Leaves ---

type constNode struct{ d read.Data }

// Const wraps a literal value as a leaf node.
func Const(d read.Data) Node { return constNode{d} }

func (n constNode) Eval(*read.Read) (read.Data, error)        { return n.d, nil }
func (n constNode) RequiredNames() []read.LabelOrAttrName     { return nil }

type labelNode struct{ l Label }

// LabelRef evaluates to the bytes spanned by l.
func LabelRef(l Label) Node { return labelNode{l} }

func (n labelNode) Eval(r *read.Read) (read.Data, error) {
	b, err := r.Substring(n.l.Type, n.l.Label)
	if err != nil {
		return read.Data{}, err
	}
	return read.Bytes(b), nil
}
func (n labelNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.l.Type, Label: n.l.Label}}
}

type attrNode struct{ a Attr }

// AttrRef evaluates to the value of attribute a.
func AttrRef(a Attr) Node { return attrNode{a} }

func (n attrNode) Eval(r *read.Read) (read.Data, error) {
	return r.Data(n.a.Type, n.a.Label, n.a.Attr)
}
func (n attrNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.a.Type, Label: n.a.Label, Attr: n.a.Attr, IsAttr: true}}
}

type labelExistsNode struct{ l Label }

// LabelExists evaluates to whether l's mapping exists, without requiring
// it (so the containing graph node is never skipped on its account).
func LabelExists(l Label) Node { return labelExistsNode{l} }

func (n labelExistsNode) Eval(r *read.Read) (read.Data, error) {
	return read.Bool(r.HasMapping(n.l.Type, n.l.Label)), nil
}
func (n labelExistsNode) RequiredNames() []read.LabelOrAttrName { return nil }

type attrExistsNode struct{ a Attr }

// AttrExists evaluates to whether a exists, without requiring it.
func AttrExists(a Attr) Node { return attrExistsNode{a} }

func (n attrExistsNode) Eval(r *read.Read) (read.Data, error) {
	return read.Bool(r.HasData(n.a.Type, n.a.Label, n.a.Attr)), nil
}
func (n attrExistsNode) RequiredNames() []read.LabelOrAttrName { return nil }

// --- Boolean binary ---

type boolBinOp struct {
	left, right Node
	op          func(a, b bool) bool
}

func (n boolBinOp) Eval(r *read.Read) (read.Data, error) {
	l, err := EvalBool(n.left, r)
	if err != nil {
		return read.Data{}, err
	}
	rr, err := EvalBool(n.right, r)
	if err != nil {
		return read.Data{}, err
	}
	return read.Bool(n.op(l, rr)), nil
}
func (n boolBinOp) RequiredNames() []read.LabelOrAttrName {
	return append(n.left.RequiredNames(), n.right.RequiredNames()...)
}

func And(a, b Node) Node { return boolBinOp{a, b, func(x, y bool) bool { return x && y }} }
func Or(a, b Node) Node  { return boolBinOp{a, b, func(x, y bool) bool { return x || y }} }
func Xor(a, b Node) Node { return boolBinOp{a, b, func(x, y bool) bool { return x != y }} }

type notNode struct{ n Node }

func Not(n Node) Node { return notNode{n} }
func (n notNode) Eval(r *read.Read) (read.Data, error) {
	b, err := EvalBool(n.n, r)
	if err != nil {
		return read.Data{}, err
	}
	return read.Bool(!b), nil
}
func (n notNode) RequiredNames() []read.LabelOrAttrName { return n.n.RequiredNames() }

// --- Numeric binary (int x int -> int, float x float -> float) ---

type numBinOp struct {
	left, right Node
	intOp       func(a, b int64) int64
	floatOp     func(a, b float64) float64
}

func (n numBinOp) Eval(r *read.Read) (read.Data, error) {
	l, err := n.left.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	rr, err := n.right.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	if li, ok := l.AsInt(); ok {
		if ri, ok := rr.AsInt(); ok {
			return read.Int(n.intOp(li, ri)), nil
		}
	}
	if lf, ok := l.AsFloat(); ok {
		if rf, ok := rr.AsFloat(); ok {
			return read.Float(n.floatOp(lf, rf)), nil
		}
	}
	return read.Data{}, &seqerr.NameError{Kind: seqerr.TypeMismatch, Expected: "both int or both float", Found: l.TypeName() + "/" + rr.TypeName(), Context: "evaluating an arithmetic expression"}
}
func (n numBinOp) RequiredNames() []read.LabelOrAttrName {
	return append(n.left.RequiredNames(), n.right.RequiredNames()...)
}

func Add(a, b Node) Node {
	return numBinOp{a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }}
}
func Sub(a, b Node) Node {
	return numBinOp{a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }}
}
func Mul(a, b Node) Node {
	return numBinOp{a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }}
}
func Div(a, b Node) Node {
	return numBinOp{a, b, func(x, y int64) int64 { return x / y }, func(x, y float64) float64 { return x / y }}
}

// --- Numeric comparison (int x int -> bool, float x float -> bool) ---

type numCmpOp struct {
	left, right Node
	intOp       func(a, b int64) bool
	floatOp     func(a, b float64) bool
}

func (n numCmpOp) Eval(r *read.Read) (read.Data, error) {
	l, err := n.left.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	rr, err := n.right.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	if li, ok := l.AsInt(); ok {
		if ri, ok := rr.AsInt(); ok {
			return read.Bool(n.intOp(li, ri)), nil
		}
	}
	if lf, ok := l.AsFloat(); ok {
		if rf, ok := rr.AsFloat(); ok {
			return read.Bool(n.floatOp(lf, rf)), nil
		}
	}
	return read.Data{}, &seqerr.NameError{Kind: seqerr.TypeMismatch, Expected: "both int or both float", Found: l.TypeName() + "/" + rr.TypeName(), Context: "evaluating a comparison"}
}
func (n numCmpOp) RequiredNames() []read.LabelOrAttrName {
	return append(n.left.RequiredNames(), n.right.RequiredNames()...)
}

func Lt(a, b Node) Node {
	return numCmpOp{a, b, func(x, y int64) bool { return x < y }, func(x, y float64) bool { return x < y }}
}
func Le(a, b Node) Node {
	return numCmpOp{a, b, func(x, y int64) bool { return x <= y }, func(x, y float64) bool { return x <= y }}
}
func Gt(a, b Node) Node {
	return numCmpOp{a, b, func(x, y int64) bool { return x > y }, func(x, y float64) bool { return x > y }}
}
func Ge(a, b Node) Node {
	return numCmpOp{a, b, func(x, y int64) bool { return x >= y }, func(x, y float64) bool { return x >= y }}
}

// --- Eq (any matching types) ---

type eqNode struct{ left, right Node }

func Eq(a, b Node) Node { return eqNode{a, b} }
func (n eqNode) Eval(r *read.Read) (read.Data, error) {
	l, err := n.left.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	rr, err := n.right.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	if l.Kind() != rr.Kind() {
		return read.Data{}, &seqerr.NameError{Kind: seqerr.TypeMismatch, Expected: "both the same type", Found: l.TypeName() + "/" + rr.TypeName(), Context: "evaluating eq"}
	}
	return read.Bool(l.Equal(rr)), nil
}
func (n eqNode) RequiredNames() []read.LabelOrAttrName {
	return append(n.left.RequiredNames(), n.right.RequiredNames()...)
}

// --- len, conversions, concat, repeat ---

type lenNode struct{ n Node }

func Len(n Node) Node { return lenNode{n} }
func (n lenNode) Eval(r *read.Read) (read.Data, error) {
	b, err := EvalBytes(n.n, r)
	if err != nil {
		return read.Data{}, err
	}
	return read.Int(int64(len(b))), nil
}
func (n lenNode) RequiredNames() []read.LabelOrAttrName { return n.n.RequiredNames() }

type convKind int

const (
	convInt convKind = iota
	convFloat
	convBytes
)

type convNode struct {
	n    Node
	kind convKind
}

func ToInt(n Node) Node   { return convNode{n, convInt} }
func ToFloat(n Node) Node { return convNode{n, convFloat} }
func ToBytes(n Node) Node { return convNode{n, convBytes} }

func (n convNode) Eval(r *read.Read) (read.Data, error) {
	d, err := n.n.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	switch n.kind {
	case convInt:
		return toInt(d)
	case convFloat:
		return toFloat(d)
	default:
		return toBytes(d), nil
	}
}
func (n convNode) RequiredNames() []read.LabelOrAttrName { return n.n.RequiredNames() }

type concatNode struct{ left, right Node }

func Concat(a, b Node) Node { return concatNode{a, b} }
func (n concatNode) Eval(r *read.Read) (read.Data, error) {
	l, err := EvalBytes(n.left, r)
	if err != nil {
		return read.Data{}, err
	}
	rr, err := EvalBytes(n.right, r)
	if err != nil {
		return read.Data{}, err
	}
	out := make([]byte, 0, len(l)+len(rr))
	out = append(out, l...)
	out = append(out, rr...)
	return read.Bytes(out), nil
}
func (n concatNode) RequiredNames() []read.LabelOrAttrName {
	return append(n.left.RequiredNames(), n.right.RequiredNames()...)
}

type repeatNode struct{ str, times Node }

func Repeat(str, times Node) Node { return repeatNode{str, times} }
func (n repeatNode) Eval(r *read.Read) (read.Data, error) {
	s, err := EvalBytes(n.str, r)
	if err != nil {
		return read.Data{}, err
	}
	td, err := n.times.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	t, ok := td.AsInt()
	if !ok {
		return read.Data{}, typeErr("int", td)
	}
	if t < 0 {
		t = 0
	}
	out := make([]byte, 0, len(s)*int(t))
	for i := int64(0); i < t; i++ {
		out = append(out, s...)
	}
	return read.Bytes(out), nil
}
func (n repeatNode) RequiredNames() []read.LabelOrAttrName {
	return append(n.str.RequiredNames(), n.times.RequiredNames()...)
}

// --- in_bounds ---

// InBounds builds num.in_bounds(lo, hi) with inclusive/exclusive bound
// selection, matching Rust's RangeBounds-based in_bounds(range).
type Bound struct {
	Node   Node
	Incl   bool // Included vs Excluded; ignored when Unbounded is true
	Unbounded bool
}

func Included(n Node) Bound { return Bound{Node: n, Incl: true} }
func Excluded(n Node) Bound { return Bound{Node: n, Incl: false} }
func Unbounded() Bound      { return Bound{Unbounded: true} }

type inBoundsNode struct {
	num      Node
	lo, hi   Bound
}

func InBounds(num Node, lo, hi Bound) Node { return inBoundsNode{num, lo, hi} }

func (n inBoundsNode) Eval(r *read.Read) (read.Data, error) {
	numD, err := n.num.Eval(r)
	if err != nil {
		return read.Data{}, err
	}
	numI, ok := numD.AsInt()
	if !ok {
		return read.Data{}, typeErr("int", numD)
	}

	lo := int64(-1 << 62)
	if !n.lo.Unbounded {
		loD, err := n.lo.Node.Eval(r)
		if err != nil {
			return read.Data{}, err
		}
		loI, ok := loD.AsInt()
		if !ok {
			return read.Data{}, typeErr("int", loD)
		}
		lo = loI
		if !n.lo.Incl {
			lo++
		}
	}

	hi := int64(1 << 62)
	if !n.hi.Unbounded {
		hiD, err := n.hi.Node.Eval(r)
		if err != nil {
			return read.Data{}, err
		}
		hiI, ok := hiD.AsInt()
		if !ok {
			return read.Data{}, typeErr("int", hiD)
		}
		hi = hiI
		if !n.hi.Incl {
			hi--
		}
	}

	return read.Bool(lo <= numI && numI <= hi), nil
}

func (n inBoundsNode) RequiredNames() []read.LabelOrAttrName {
	var out []read.LabelOrAttrName
	out = append(out, n.num.RequiredNames()...)
	if !n.lo.Unbounded {
		out = append(out, n.lo.Node.RequiredNames()...)
	}
	if !n.hi.Unbounded {
		out = append(out, n.hi.Node.RequiredNames()...)
	}
	return out
}

// LengthInBounds is a convenience constructor for len(label).in_bounds(lo,
// hi), supplementing the core tree the way
// src/iter/length_in_bounds_reads.rs's dedicated node did in the original
// crate; here it composes directly from Len and InBounds.
func LengthInBounds(l Label, lo, hi int64) Node {
	return InBounds(Len(LabelRef(l)), Included(Const(read.Int(lo))), Included(Const(read.Int(hi))))
}
