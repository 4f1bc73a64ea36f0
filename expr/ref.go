// Package expr implements the evaluated expression tree (C4) and the
// selector, transform, and format DSLs (C5) parsed on top of it.
package expr

import (
	"bytes"

	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// Label identifies a mapping: a string type plus a label within it.
type Label struct {
	Type  read.StrType
	Label inline.String
}

// Attr identifies an attribute: a string type, a label, and an attribute
// key within that mapping.
type Attr struct {
	Type  read.StrType
	Label inline.String
	Attr  inline.String
}

// LabelOrAttr is either a Label or an Attr reference, used by transform
// "after" lists and format holes.
type LabelOrAttr struct {
	attr   *Attr
	label  *Label
}

func OfLabel(l Label) LabelOrAttr { return LabelOrAttr{label: &l} }
func OfAttr(a Attr) LabelOrAttr   { return LabelOrAttr{attr: &a} }

func (la LabelOrAttr) IsAttr() bool { return la.attr != nil }
func (la LabelOrAttr) Label() Label {
	if la.label != nil {
		return *la.label
	}
	return Label{Type: la.attr.Type, Label: la.attr.Label}
}
func (la LabelOrAttr) AttrRef() Attr { return *la.attr }
func (la LabelOrAttr) StrType() read.StrType {
	if la.label != nil {
		return la.label.Type
	}
	return la.attr.Type
}

// RequiredName converts la to a read.LabelOrAttrName for scheduling.
func (la LabelOrAttr) RequiredName() read.LabelOrAttrName {
	if la.attr != nil {
		return read.LabelOrAttrName{Type: la.attr.Type, Label: la.attr.Label, Attr: la.attr.Attr, IsAttr: true}
	}
	return read.LabelOrAttrName{Type: la.label.Type, Label: la.label.Label}
}

// ParseReference parses "type.label" or "type.label.attr" into a
// LabelOrAttr. context is used only for error messages.
func ParseReference(s []byte, context string) (LabelOrAttr, error) {
	parts := bytes.SplitN(s, []byte{'.'}, 3)
	if len(parts) < 2 {
		return LabelOrAttr{}, &seqerr.Parse{String: string(s), Context: context, Reason: "expected \"type.label\" or \"type.label.attr\""}
	}
	strType, ok := read.ParseStrType(string(parts[0]))
	if !ok {
		return LabelOrAttr{}, &seqerr.Parse{String: string(s), Context: context, Reason: "unknown string type"}
	}
	label, err := inline.CheckValidName(parts[1], context)
	if err != nil {
		return LabelOrAttr{}, err
	}
	if len(parts) == 2 {
		return OfLabel(Label{Type: strType, Label: label}), nil
	}
	attr, err := inline.CheckValidName(parts[2], context)
	if err != nil {
		return LabelOrAttr{}, err
	}
	return OfAttr(Attr{Type: strType, Label: label, Attr: attr}), nil
}

// ParseLabel parses "type.label" strictly as a Label (no attribute part
// allowed), used by transform "before" lists.
func ParseLabel(s []byte, context string) (Label, error) {
	la, err := ParseReference(s, context)
	if err != nil {
		return Label{}, err
	}
	if la.IsAttr() {
		return Label{}, &seqerr.Parse{String: string(s), Context: context, Reason: "expected a label, not an attribute"}
	}
	return la.Label(), nil
}
