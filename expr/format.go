package expr

import (
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// FormatExpr is a parsed format string: a sequence of literal and hole
// segments, where a hole interpolates either a label's substring or an
// attribute's rendered value. "{ident}" and "{ident; N}" interpolate a
// reference (the optional ";N" is a fixed field width, space-padded on
// the right); "{'literal text'}" and bare text outside braces are
// literal segments; "\\{" and "\\}" escape braces within literal text.
type FormatExpr struct {
	segments []formatSegment
}

type formatSegment struct {
	literal []byte // non-nil for a literal segment
	ref     *LabelOrAttr
	width   int // 0 means no fixed width
}

// ParseFormat parses a format string into a FormatExpr.
func ParseFormat(s []byte) (*FormatExpr, error) {
	const context = "format"
	var segs []formatSegment
	var lit []byte
	flushLit := func() {
		if len(lit) > 0 {
			segs = append(segs, formatSegment{literal: lit})
			lit = nil
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '}' || s[i+1] == '\\'):
			lit = append(lit, s[i+1])
			i += 2
		case c == '{':
			flushLit()
			end := indexByte(s[i:], '}')
			if end < 0 {
				return nil, &seqerr.Parse{String: string(s), Context: context, Reason: "unterminated '{'"}
			}
			inner := s[i+1 : i+end]
			seg, err := parseHole(inner, context)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			i += end + 1
		case c == '}':
			return nil, &seqerr.Parse{String: string(s), Context: context, Reason: "unmatched '}'"}
		default:
			lit = append(lit, c)
			i++
		}
	}
	flushLit()
	return &FormatExpr{segments: segs}, nil
}

func indexByte(s []byte, c byte) int {
	for i, b := range s {
		if b == c {
			return i
		}
	}
	return -1
}

func parseHole(inner []byte, context string) (formatSegment, error) {
	trimmed, ok := trimSpace(inner)
	if !ok {
		return formatSegment{}, &seqerr.Parse{String: string(inner), Context: context, Reason: "empty hole"}
	}
	if trimmed[0] == '\'' {
		if len(trimmed) < 2 || trimmed[len(trimmed)-1] != '\'' {
			return formatSegment{}, &seqerr.Parse{String: string(inner), Context: context, Reason: "unterminated literal in hole"}
		}
		return formatSegment{literal: append([]byte(nil), trimmed[1:len(trimmed)-1]...)}, nil
	}

	width := 0
	identPart := trimmed
	if semi := indexByte(trimmed, ';'); semi >= 0 {
		identPart = trimmed[:semi]
		widthPart, ok := trimSpace(trimmed[semi+1:])
		if !ok {
			return formatSegment{}, &seqerr.Parse{String: string(inner), Context: context, Reason: "expected a width after ';'"}
		}
		w := 0
		for _, c := range widthPart {
			if c < '0' || c > '9' {
				return formatSegment{}, &seqerr.Parse{String: string(inner), Context: context, Reason: "width must be a non-negative integer"}
			}
			w = w*10 + int(c-'0')
		}
		width = w
	}
	identPart, ok = trimSpace(identPart)
	if !ok {
		return formatSegment{}, &seqerr.Parse{String: string(inner), Context: context, Reason: "empty reference in hole"}
	}
	ref, err := ParseReference(identPart, context)
	if err != nil {
		return formatSegment{}, err
	}
	return formatSegment{ref: &ref, width: width}, nil
}

func trimSpace(b []byte) ([]byte, bool) {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	if start == end {
		return nil, false
	}
	return b[start:end], true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// RequiredNames lists every reference the format string's holes need.
func (f *FormatExpr) RequiredNames() []read.LabelOrAttrName {
	var out []read.LabelOrAttrName
	for _, seg := range f.segments {
		if seg.ref != nil {
			out = append(out, seg.ref.RequiredName())
		}
	}
	return out
}

// Format evaluates f against r, rendering each hole's referenced label
// substring or attribute value. If useQual is true, label holes render
// the mapping's quality string instead of its sequence bytes; a mapping
// with a label hole but no quality string (e.g. produced by a
// sequence-only source) fills the hole with 'I' (ASCII 73), matching the
// "unknown quality" filler used elsewhere when quality is absent.
func (f *FormatExpr) Format(r *read.Read, useQual bool) ([]byte, error) {
	var out []byte
	for _, seg := range f.segments {
		var piece []byte
		switch {
		case seg.literal != nil:
			piece = seg.literal
		case seg.ref.IsAttr():
			a := seg.ref.AttrRef()
			d, err := r.Data(a.Type, a.Label, a.Attr)
			if err != nil {
				return nil, err
			}
			piece = []byte(d.String())
		default:
			l := seg.ref.Label()
			if useQual {
				q, err := r.SubstringQual(l.Type, l.Label)
				if err != nil {
					return nil, err
				}
				if q == nil {
					b, err := r.Substring(l.Type, l.Label)
					if err != nil {
						return nil, err
					}
					q = bytesRepeat('I', len(b))
				}
				piece = q
			} else {
				b, err := r.Substring(l.Type, l.Label)
				if err != nil {
					return nil, err
				}
				piece = b
			}
		}
		if seg.width > 0 && len(piece) < seg.width {
			padded := make([]byte, seg.width)
			copy(padded, piece)
			for i := len(piece); i < seg.width; i++ {
				padded[i] = ' '
			}
			piece = padded
		}
		out = append(out, piece...)
	}
	return out, nil
}

func bytesRepeat(c byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return b
}
