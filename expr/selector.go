package expr

import (
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// ParseSelector parses the selector DSL: boolean expressions over bare
// references, built from '&' (and), '|' (or), '!' (not), and parens, with
// '&' binding tighter than '|'. A bare "type.label" reference means "the
// mapping exists and is non-empty"; a bare "type.label.attr" reference
// means "the attribute exists and is truthy" (bool as-is, int/float
// non-zero, bytes non-empty). Both forms are required names of the
// resulting node, so a graph node built on a selector is skipped (not
// evaluated false) when the reference is absent -- this is the DSL's only
// surface for existence testing; label_exists/attr_exists remain Go-API
// constructors on Node, not selector syntax.
func ParseSelector(s []byte) (Node, error) {
	p := &selectorParser{s: s, context: "selector"}
	p.skipSpace()
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, &seqerr.Parse{String: string(s), Context: p.context, Reason: "unexpected trailing input"}
	}
	return n, nil
}

type selectorParser struct {
	s       []byte
	pos     int
	context string
}

func (p *selectorParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *selectorParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *selectorParser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.peek() != '|' {
			return left, nil
		}
		p.pos++
		p.skipSpace()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
}

func (p *selectorParser) parseAnd() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.peek() != '&' {
			return left, nil
		}
		p.pos++
		p.skipSpace()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
}

func (p *selectorParser) parseUnary() (Node, error) {
	p.skipSpace()
	if p.peek() == '!' {
		p.pos++
		p.skipSpace()
		n, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(n), nil
	}
	return p.parsePrimary()
}

func (p *selectorParser) parsePrimary() (Node, error) {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		p.skipSpace()
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, &seqerr.Parse{String: string(p.s), Context: p.context, Reason: "expected ')'"}
		}
		p.pos++
		return n, nil
	}
	return p.parseLiteral()
}

func (p *selectorParser) parseLiteral() (Node, error) {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '&' || c == '|' || c == '!' || c == '(' || c == ')' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return nil, &seqerr.Parse{String: string(p.s), Context: p.context, Reason: "expected a reference or '('"}
	}
	tok := p.s[start:p.pos]
	ref, err := ParseReference(tok, p.context)
	if err != nil {
		return nil, err
	}
	if ref.IsAttr() {
		return attrTruthyNode{ref.AttrRef()}, nil
	}
	return labelNonEmptyNode{ref.Label()}, nil
}

// attrTruthyNode evaluates a bare "type.label.attr" selector literal:
// the attribute must exist and be truthy.
type attrTruthyNode struct{ a Attr }

func (n attrTruthyNode) Eval(r *read.Read) (read.Data, error) {
	d, err := r.Data(n.a.Type, n.a.Label, n.a.Attr)
	if err != nil {
		return read.Data{}, err
	}
	return read.Bool(truthy(d)), nil
}
func (n attrTruthyNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.a.Type, Label: n.a.Label, Attr: n.a.Attr, IsAttr: true}}
}

// labelNonEmptyNode evaluates a bare "type.label" selector literal: the
// mapping must exist and span a non-empty substring.
type labelNonEmptyNode struct{ l Label }

func (n labelNonEmptyNode) Eval(r *read.Read) (read.Data, error) {
	b, err := r.Substring(n.l.Type, n.l.Label)
	if err != nil {
		return read.Data{}, err
	}
	return read.Bool(len(b) > 0), nil
}
func (n labelNonEmptyNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.l.Type, Label: n.l.Label}}
}

func truthy(d read.Data) bool {
	switch d.Kind() {
	case read.KindBool:
		b, _ := d.AsBool()
		return b
	case read.KindInt:
		i, _ := d.AsInt()
		return i != 0
	case read.KindFloat:
		f, _ := d.AsFloat()
		return f != 0
	case read.KindBytes:
		b, _ := d.AsBytes()
		return len(b) > 0
	default:
		return false
	}
}
