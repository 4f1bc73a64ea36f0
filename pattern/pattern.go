// Package pattern implements pattern sets (C6): named groups of literal or
// expression-derived byte patterns, each carrying a parallel row of
// per-pattern attribute values, as matched against a read by the matchseq
// package.
package pattern

import (
	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
)

// Pattern is either a literal byte pattern or an expression evaluated
// per-read to produce one, each paired with a row of attribute values
// aligned to the owning Patterns' AttrNames.
type Pattern struct {
	Literal []byte    // non-nil for a literal pattern
	Expr    expr.Node // non-nil for an expression pattern
	Attrs   []read.Data
}

// Bytes resolves the pattern's byte value against r. Literal patterns
// ignore r.
func (p Pattern) Bytes(r *read.Read) ([]byte, error) {
	if p.Literal != nil {
		return p.Literal, nil
	}
	return expr.EvalBytes(p.Expr, r)
}

// Patterns is a named, ordered set of patterns sharing one attribute
// schema: an optional pattern_name (the attribute key stamped with the
// matched pattern's identity, or false on no match) and an ordered list
// of attr_names that each Pattern's Attrs row is indexed against.
type Patterns struct {
	PatternName *inline.String
	AttrNames   []inline.String
	List        []Pattern
}

// FromLiterals builds an unnamed pattern set from plain byte patterns,
// with no attributes, matching Patterns::from_strs in the original crate.
func FromLiterals(patterns [][]byte) *Patterns {
	list := make([]Pattern, len(patterns))
	for i, b := range patterns {
		list[i] = Pattern{Literal: b}
	}
	return &Patterns{List: list}
}

// FromExprs builds an unnamed pattern set from expressions, matching
// Patterns::from_exprs.
func FromExprs(exprs []expr.Node) *Patterns {
	list := make([]Pattern, len(exprs))
	for i, e := range exprs {
		list[i] = Pattern{Expr: e}
	}
	return &Patterns{List: list}
}

// New builds a fully named pattern set.
func New(patternName string, attrNames []string, list []Pattern) *Patterns {
	p := &Patterns{List: list}
	if patternName != "" {
		name := inline.New([]byte(patternName))
		p.PatternName = &name
	}
	p.AttrNames = make([]inline.String, len(attrNames))
	for i, n := range attrNames {
		p.AttrNames[i] = inline.New([]byte(n))
	}
	return p
}

// AllLiterals reports whether every pattern in the set is a literal (no
// per-read expression evaluation needed), which lets callers precompute
// and cache pattern bytes once instead of per read.
func (p *Patterns) AllLiterals() bool {
	for _, pt := range p.List {
		if pt.Literal == nil {
			return false
		}
	}
	return true
}
