// Package read implements the core read data model: typed strings, named
// interval mappings into them, per-mapping attributes, and the interval
// algebra (cut/intersect/union/set/trim/norm/pad) that keeps every mapping
// consistent as the backing bytes mutate.
package read

import (
	"fmt"

	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/seqerr"
)

// StrType enumerates a read's six possible typed strings.
type StrType int

const (
	Name1 StrType = iota
	Seq1
	Name2
	Seq2
	Index1
	Index2
	numStrTypes
)

func (t StrType) String() string {
	switch t {
	case Name1:
		return "name1"
	case Seq1:
		return "seq1"
	case Name2:
		return "name2"
	case Seq2:
		return "seq2"
	case Index1:
		return "index1"
	case Index2:
		return "index2"
	default:
		return "invalid"
	}
}

// ParseStrType parses one of the six closed string type names.
func ParseStrType(s string) (StrType, bool) {
	switch s {
	case "name1":
		return Name1, true
	case "seq1":
		return Seq1, true
	case "name2":
		return Name2, true
	case "seq2":
		return Seq2, true
	case "index1":
		return Index1, true
	case "index2":
		return Index2, true
	default:
		return 0, false
	}
}

// Read is an ordered collection of typed strings, each with its own
// mapping set. At most one StrMappings exists per StrType.
type Read struct {
	strs     [numStrTypes]*StrMappings
	firstIdx int64
}

// New constructs an empty read with the given record index. Use
// SetStrMappings to attach typed strings.
func New(firstIdx int64) *Read {
	return &Read{firstIdx: firstIdx}
}

// FirstIdx returns the record index assigned at construction. It never
// changes for the lifetime of a read (spec invariant 6/4).
func (r *Read) FirstIdx() int64 { return r.firstIdx }

// SetStrMappings attaches sm as the string of type t. Any existing string
// of that type is replaced.
func (r *Read) SetStrMappings(t StrType, sm *StrMappings) {
	r.strs[t] = sm
}

// StrMappings returns the string of type t, if present.
func (r *Read) StrMappings(t StrType) (*StrMappings, bool) {
	sm := r.strs[t]
	return sm, sm != nil
}

// HasStrType reports whether t is present on r.
func (r *Read) HasStrType(t StrType) bool {
	return r.strs[t] != nil
}

// Clone deep-copies r, used at Fork points.
func (r *Read) Clone() *Read {
	c := &Read{firstIdx: r.firstIdx}
	for t, sm := range r.strs {
		if sm != nil {
			c.strs[t] = sm.clone()
		}
	}
	return c
}

// Mapping looks up the mapping named label within string type t.
func (r *Read) Mapping(t StrType, label inline.String) (*Mapping, error) {
	sm, ok := r.StrMappings(t)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: t.String(), Context: "looking up a mapping"}
	}
	m, ok := sm.Mapping(label)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: fmt.Sprintf("%s.%s", t, label), Context: "looking up a mapping"}
	}
	return m, nil
}

// HasMapping reports whether the mapping t.label exists, without error.
func (r *Read) HasMapping(t StrType, label inline.String) bool {
	sm, ok := r.StrMappings(t)
	if !ok {
		return false
	}
	_, ok = sm.Mapping(label)
	return ok
}

// Data looks up the attribute t.label.attr.
func (r *Read) Data(t StrType, label, attr inline.String) (Data, error) {
	m, err := r.Mapping(t, label)
	if err != nil {
		return Data{}, err
	}
	d, ok := m.Data(attr)
	if !ok {
		return Data{}, &seqerr.NameError{Kind: seqerr.NotInRead, Name: fmt.Sprintf("%s.%s.%s", t, label, attr), Context: "looking up an attribute"}
	}
	return d, nil
}

// HasData reports whether the attribute t.label.attr exists, without error.
func (r *Read) HasData(t StrType, label, attr inline.String) bool {
	m, err := r.Mapping(t, label)
	if err != nil {
		return false
	}
	_, ok := m.Data(attr)
	return ok
}

// Substring returns the bytes spanned by t.label.
func (r *Read) Substring(t StrType, label inline.String) ([]byte, error) {
	sm, ok := r.StrMappings(t)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: t.String(), Context: "reading a substring"}
	}
	m, ok := sm.Mapping(label)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: fmt.Sprintf("%s.%s", t, label), Context: "reading a substring"}
	}
	return sm.Substring(m), nil
}

// SubstringQual returns the quality bytes spanned by t.label, or
// (nil, nil) if that string carries no quality.
func (r *Read) SubstringQual(t StrType, label inline.String) ([]byte, error) {
	sm, ok := r.StrMappings(t)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: t.String(), Context: "reading quality"}
	}
	m, ok := sm.Mapping(label)
	if !ok {
		return nil, &seqerr.NameError{Kind: seqerr.NotInRead, Name: fmt.Sprintf("%s.%s", t, label), Context: "reading quality"}
	}
	return sm.SubstringQual(m), nil
}

// LabelOrAttrName identifies a name a graph node requires on a read before
// it can run: either a mapping (IsAttr false) or a specific attribute
// (IsAttr true).
type LabelOrAttrName struct {
	Type  StrType
	Label inline.String
	Attr  inline.String // used only when IsAttr is set
	IsAttr bool
}

// HasNames reports whether r satisfies every required name: every bare
// label exists, and every attribute exists on its mapping.
func (r *Read) HasNames(names []LabelOrAttrName) bool {
	for _, n := range names {
		if n.IsAttr {
			if !r.HasData(n.Type, n.Label, n.Attr) {
				return false
			}
		} else if !r.HasMapping(n.Type, n.Label) {
			return false
		}
	}
	return true
}
