package graph

import (
	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

func strMappings(r *read.Read, t read.StrType, context string) (*read.StrMappings, error) {
	sm, ok := r.StrMappings(t)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: t.String(), Context: context}
	}
	return sm, nil
}

// CutNode splits label into two new labels at a fixed offset from one
// end, discarding a half whose destination label is nil.
type CutNode struct {
	Type                read.StrType
	Label               inline.String
	NewLabel1, NewLabel2 *inline.String
	CutIdx              read.EndIdx
}

func (n *CutNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "cut")
	if err != nil {
		return nil, false, err
	}
	if err := sm.Cut(n.Label, n.NewLabel1, n.NewLabel2, n.CutIdx); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *CutNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *CutNode) Name() string { return "cut" }

// IntersectNode adds NewLabel as the numeric intersection of Label1/Label2.
type IntersectNode struct {
	Type           read.StrType
	Label1, Label2 inline.String
	NewLabel       *inline.String
}

func (n *IntersectNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "intersect")
	if err != nil {
		return nil, false, err
	}
	if err := sm.Intersect(n.Label1, n.Label2, n.NewLabel); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *IntersectNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label1}, {Type: n.Type, Label: n.Label2}}
}
func (n *IntersectNode) Name() string { return "intersect" }

// UnionNode adds NewLabel spanning [min(start), max(end)) of Label1/Label2.
type UnionNode struct {
	Type           read.StrType
	Label1, Label2 inline.String
	NewLabel       *inline.String
}

func (n *UnionNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "union")
	if err != nil {
		return nil, false, err
	}
	if err := sm.Union(n.Label1, n.Label2, n.NewLabel); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *UnionNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label1}, {Type: n.Type, Label: n.Label2}}
}
func (n *UnionNode) Name() string { return "union" }

// SetNode replaces label's bytes (and quality, if present) with the
// result of evaluating Str (and Qual, for quality-carrying strings).
type SetNode struct {
	Type  read.StrType
	Label inline.String
	Str   *expr.FormatExpr
	Qual  *expr.FormatExpr // nil if this string type carries no quality
}

func (n *SetNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "set")
	if err != nil {
		return nil, false, err
	}
	newStr, err := n.Str.Format(r, false)
	if err != nil {
		return nil, false, err
	}
	var newQual []byte
	if n.Qual != nil {
		newQual, err = n.Qual.Format(r, true)
		if err != nil {
			return nil, false, err
		}
	}
	if err := sm.Set(n.Label, newStr, newQual); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *SetNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *SetNode) Name() string { return "set" }

// TrimNode empties label's interval.
type TrimNode struct {
	Type  read.StrType
	Label inline.String
}

func (n *TrimNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "trim")
	if err != nil {
		return nil, false, err
	}
	if err := sm.Trim(n.Label); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *TrimNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *TrimNode) Name() string { return "trim" }

// NormNode pads and length-encodes a variable-length region.
type NormNode struct {
	Type             read.StrType
	Label            inline.String
	ShortLen, LongLen int
}

func (n *NormNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "norm")
	if err != nil {
		return nil, false, err
	}
	if err := sm.Norm(n.Label, n.ShortLen, n.LongLen); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *NormNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *NormNode) Name() string { return "norm" }

// PadNode extends label's interval to TargetLen with deterministic filler.
type PadNode struct {
	Type      read.StrType
	Label     inline.String
	TargetLen int
}

func (n *PadNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "pad")
	if err != nil {
		return nil, false, err
	}
	if err := sm.Pad(n.Label, n.TargetLen); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *PadNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *PadNode) Name() string { return "pad" }

// ReverseComplementNode replaces label's bytes with their reverse
// complement (qualities, if present, are simply reversed to stay
// positionally aligned), supplementing the core mutation set the way the
// original crate's read-orientation helpers did.
type ReverseComplementNode struct {
	Type  read.StrType
	Label inline.String
}

var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	t['A'], t['C'], t['G'], t['T'] = 'T', 'G', 'C', 'A'
	t['a'], t['c'], t['g'], t['t'] = 't', 'g', 'c', 'a'
	t['N'], t['n'] = 'N', 'n'
	return t
}()

func reverseComplement(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = complementTable[c]
	}
	return out
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func (n *ReverseComplementNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "reverse_complement")
	if err != nil {
		return nil, false, err
	}
	m, ok := sm.Mapping(n.Label)
	if !ok {
		return nil, false, &seqerr.NameError{Kind: seqerr.NotInRead, Name: n.Label.String(), Context: "reverse_complement"}
	}
	newStr := reverseComplement(sm.Substring(m))
	var newQual []byte
	if q := sm.SubstringQual(m); q != nil {
		newQual = reverseBytes(q)
	}
	if err := sm.Set(n.Label, newStr, newQual); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *ReverseComplementNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *ReverseComplementNode) Name() string { return "reverse_complement" }

// ReverseNode reverses label's bytes (and quality) without complementing.
type ReverseNode struct {
	Type  read.StrType
	Label inline.String
}

func (n *ReverseNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "reverse")
	if err != nil {
		return nil, false, err
	}
	m, ok := sm.Mapping(n.Label)
	if !ok {
		return nil, false, &seqerr.NameError{Kind: seqerr.NotInRead, Name: n.Label.String(), Context: "reverse"}
	}
	newStr := reverseBytes(sm.Substring(m))
	var newQual []byte
	if q := sm.SubstringQual(m); q != nil {
		newQual = reverseBytes(q)
	}
	if err := sm.Set(n.Label, newStr, newQual); err != nil {
		return nil, false, err
	}
	return r, false, nil
}
func (n *ReverseNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *ReverseNode) Name() string { return "reverse" }
