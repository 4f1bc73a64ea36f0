// Package inline implements InlineString, a fixed-capacity name used for
// mapping labels and attribute keys. Values are small,
// comparable, and hashable without indirection, so they work directly as Go
// map keys the way biosimd's NibbleLookupTable ([16]byte) does.
package inline

import (
	"fmt"

	"github.com/grailbio/seqflow/seqerr"
)

// Len is the maximum number of bytes an InlineString can hold.
const Len = 16

// String is a fixed-capacity, zero-padded byte string of at most Len bytes.
// The zero value is the empty string.
type String struct {
	data [Len]byte
}

// New constructs a String from b. It panics if len(b) > Len; this is meant
// for literal, compile-time-known names (mirroring the Rust source's
// InlineString::new, which asserts rather than returns an error). Names
// parsed from a DSL string should go through NewChecked instead.
func New(b []byte) String {
	s, err := NewChecked(b)
	if err != nil {
		panic(err)
	}
	return s
}

// NewChecked constructs a String from b, validating that it fits within Len
// bytes.
func NewChecked(b []byte) (String, error) {
	if len(b) > Len {
		return String{}, fmt.Errorf("inline string %q exceeds %d bytes", b, Len)
	}
	var s String
	copy(s.data[:], b)
	return s, nil
}

// CheckValidName validates b against the name grammar
// ([A-Za-z0-9_*]{1,16}) and returns a String, or an InvalidName error.
func CheckValidName(b []byte, context string) (String, error) {
	if len(b) == 0 || len(b) > Len {
		return String{}, &seqerr.InvalidName{String: string(b), Context: context}
	}
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '*':
		default:
			return String{}, &seqerr.InvalidName{String: string(b), Context: context}
		}
	}
	var s String
	copy(s.data[:], b)
	return s, nil
}

// Bytes returns the non-padding bytes of s. The returned slice must not be
// mutated.
func (s String) Bytes() []byte {
	return s.data[:s.Len()]
}

// Len returns the number of non-zero-padding bytes in s.
func (s String) Len() int {
	n := 0
	for n < Len && s.data[n] != 0 {
		n++
	}
	return n
}

// String implements fmt.Stringer.
func (s String) String() string {
	return string(s.Bytes())
}

// IsStar reports whether s is the reserved span-covering label "*".
func (s String) IsStar() bool {
	return s.Len() == 1 && s.data[0] == '*'
}

// Star is the reserved label spanning an entire current string.
var Star = New([]byte("*"))
