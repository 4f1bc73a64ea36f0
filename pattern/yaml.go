package pattern

import (
	"fmt"

	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk shape of a pattern block:
//
//	pattern_name: bc_id
//	attrs: [id, count]
//	patterns:
//	  - bytes: ACGT
//	    attrs: [bc1, 10]
//	  - expr: "{seq1.umi}"
//	    attrs: [bc2, 20]
//
// Each pattern is either a literal "bytes" string or an "expr" string
// (parsed as a format expression, so it may itself reference other
// labels/attrs); its "attrs" list is positional against the top-level
// "attrs" names.
type yamlFile struct {
	PatternName string        `yaml:"pattern_name"`
	Attrs       []string      `yaml:"attrs"`
	Patterns    []yamlPattern `yaml:"patterns"`
}

type yamlPattern struct {
	Bytes string        `yaml:"bytes"`
	Expr  string        `yaml:"expr"`
	Attrs []interface{} `yaml:"attrs"`
}

// ParseYAML parses a pattern block in the form documented on yamlFile.
func ParseYAML(data []byte) (*Patterns, error) {
	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &seqerr.ParsePatterns{Patterns: string(data), Cause: err}
	}

	list := make([]Pattern, 0, len(doc.Patterns))
	for i, yp := range doc.Patterns {
		p, err := yp.toPattern(len(doc.Attrs))
		if err != nil {
			return nil, &seqerr.ParsePatterns{Patterns: string(data), Cause: fmt.Errorf("pattern %d: %w", i, err)}
		}
		list = append(list, p)
	}

	return New(doc.PatternName, doc.Attrs, list), nil
}

func (yp yamlPattern) toPattern(numAttrs int) (Pattern, error) {
	if (yp.Bytes == "") == (yp.Expr == "") {
		return Pattern{}, fmt.Errorf("exactly one of \"bytes\" or \"expr\" must be set")
	}
	if len(yp.Attrs) != numAttrs {
		return Pattern{}, fmt.Errorf("expected %d attrs, found %d", numAttrs, len(yp.Attrs))
	}

	attrs := make([]read.Data, len(yp.Attrs))
	for i, a := range yp.Attrs {
		attrs[i] = toData(a)
	}

	if yp.Bytes != "" {
		return Pattern{Literal: []byte(yp.Bytes), Attrs: attrs}, nil
	}
	f, err := expr.ParseFormat([]byte(yp.Expr))
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Expr: formatNode{f}, Attrs: attrs}, nil
}

func toData(v interface{}) read.Data {
	switch x := v.(type) {
	case bool:
		return read.Bool(x)
	case int:
		return read.Int(int64(x))
	case int64:
		return read.Int(x)
	case float64:
		return read.Float(x)
	case string:
		return read.Bytes([]byte(x))
	default:
		return read.Bytes([]byte(fmt.Sprintf("%v", x)))
	}
}

// formatNode adapts a FormatExpr to expr.Node so a pattern's "expr" form
// can be evaluated like any other expression tree.
type formatNode struct {
	f *expr.FormatExpr
}

func (n formatNode) Eval(r *read.Read) (read.Data, error) {
	b, err := n.f.Format(r, false)
	if err != nil {
		return read.Data{}, err
	}
	return read.Bytes(b), nil
}

func (n formatNode) RequiredNames() []read.LabelOrAttrName { return n.f.RequiredNames() }
