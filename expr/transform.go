package expr

import (
	"bytes"

	"github.com/grailbio/seqflow/parseutil"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// TransformExpr is a parsed "before -> after" transform: a list of input
// labels read from the current read, and a list of output slots, each
// either a label/attr reference to write or a discard ("_"), matching the
// original crate's map/mapping transform DSL.
type TransformExpr struct {
	Before []Label
	After  []*LabelOrAttr // nil entry means discard
}

// ParseTransform parses "l1, l2 -> l3, _, l4.attr" into a TransformExpr.
func ParseTransform(s []byte) (*TransformExpr, error) {
	const context = "transform"
	idx := bytes.Index(s, []byte("->"))
	if idx < 0 {
		return nil, &seqerr.Parse{String: string(s), Context: context, Reason: "expected \"before -> after\""}
	}
	beforeRaw := parseutil.SplitTrimmed(s[:idx], ',')
	afterRaw := parseutil.SplitTrimmed(s[idx+2:], ',')

	before := make([]Label, 0, len(beforeRaw))
	for _, tok := range beforeRaw {
		if len(tok) == 0 {
			return nil, &seqerr.Parse{String: string(s), Context: context, Reason: "empty label in before-list"}
		}
		l, err := ParseLabel(tok, context)
		if err != nil {
			return nil, err
		}
		before = append(before, l)
	}

	after := make([]*LabelOrAttr, 0, len(afterRaw))
	for _, tok := range afterRaw {
		if len(tok) == 0 {
			return nil, &seqerr.Parse{String: string(s), Context: context, Reason: "empty slot in after-list"}
		}
		if string(tok) == "_" {
			after = append(after, nil)
			continue
		}
		ref, err := ParseReference(tok, context)
		if err != nil {
			return nil, err
		}
		after = append(after, &ref)
	}

	return &TransformExpr{Before: before, After: after}, nil
}

// CheckSameStrType reports whether every before label and every non-discard
// after reference shares one string type, which graph nodes that rewrite a
// single string (e.g. cut, match) require.
func (t *TransformExpr) CheckSameStrType() (read.StrType, bool) {
	var st read.StrType
	set := false
	check := func(s read.StrType) bool {
		if !set {
			st, set = s, true
			return true
		}
		return st == s
	}
	for _, l := range t.Before {
		if !check(l.Type) {
			return 0, false
		}
	}
	for _, a := range t.After {
		if a == nil {
			continue
		}
		if !check(a.StrType()) {
			return 0, false
		}
	}
	return st, set
}

// CheckSize reports whether the before-list and after-list have the sizes
// a particular transform-consuming node requires (e.g. a 1-to-N cut, or an
// N-to-1 combine).
func (t *TransformExpr) CheckSize(beforeLen, afterLen int) bool {
	return len(t.Before) == beforeLen && len(t.After) == afterLen
}
