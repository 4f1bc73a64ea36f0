package read

import "fmt"

// DataKind tags the variant held by a Data value.
type DataKind int

const (
	KindBool DataKind = iota
	KindInt
	KindFloat
	KindBytes
)

// Data is a tagged union over {bool, integer, float, bytes}, the value type
// of mapping attributes and of evaluated expressions.
type Data struct {
	kind  DataKind
	b     bool
	i     int64
	f     float64
	bytes []byte
}

func Bool(b bool) Data     { return Data{kind: KindBool, b: b} }
func Int(i int64) Data     { return Data{kind: KindInt, i: i} }
func Float(f float64) Data { return Data{kind: KindFloat, f: f} }

// Bytes wraps b. The slice is retained, not copied; callers that mutate the
// read afterward must not keep relying on the returned Data's bytes, since
// they may alias the read's backing string.
func Bytes(b []byte) Data { return Data{kind: KindBytes, bytes: b} }

func (d Data) Kind() DataKind { return d.kind }

func (d Data) AsBool() (bool, bool)      { return d.b, d.kind == KindBool }
func (d Data) AsInt() (int64, bool)      { return d.i, d.kind == KindInt }
func (d Data) AsFloat() (float64, bool)  { return d.f, d.kind == KindFloat }
func (d Data) AsBytes() ([]byte, bool)   { return d.bytes, d.kind == KindBytes }

// TypeName returns a short name for the value's kind, used in error messages.
func (d Data) TypeName() string {
	switch d.kind {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// String renders the value the way Format-expression attribute
// interpolation does: bools as "true"/"false", numbers in decimal, bytes
// verbatim.
func (d Data) String() string {
	switch d.kind {
	case KindBool:
		if d.b {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", d.i)
	case KindFloat:
		return fmt.Sprintf("%g", d.f)
	case KindBytes:
		return string(d.bytes)
	default:
		return ""
	}
}

// Equal reports whether d and o hold the same kind and value.
func (d Data) Equal(o Data) bool {
	if d.kind != o.kind {
		return false
	}
	switch d.kind {
	case KindBool:
		return d.b == o.b
	case KindInt:
		return d.i == o.i
	case KindFloat:
		return d.f == o.f
	case KindBytes:
		if len(d.bytes) != len(o.bytes) {
			return false
		}
		for i := range d.bytes {
			if d.bytes[i] != o.bytes[i] {
				return false
			}
		}
		return true
	}
	return false
}
