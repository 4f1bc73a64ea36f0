// Package seqerr defines the error kinds surfaced by seqflow pipelines.
//
// Errors are represented as a small closed set of tagged types rather than
// opaque fmt.Errorf strings so that callers (in particular graph.Try) can
// switch on kind instead of matching message text.
package seqerr

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// FileIo reports a source/sink I/O failure against a named file.
type FileIo struct {
	File  string
	Cause error
}

func (e *FileIo) Error() string {
	return errors.E(e.Cause, fmt.Sprintf("reading or writing %q", e.File)).Error()
}

func (e *FileIo) Unwrap() error { return e.Cause }

// BytesIo reports an in-memory parse/encode failure with no associated file.
type BytesIo struct {
	Cause error
}

func (e *BytesIo) Error() string {
	return errors.E(e.Cause, "reading or writing bytes").Error()
}

func (e *BytesIo) Unwrap() error { return e.Cause }

// UnpairedRead reports that a paired source produced an odd number of
// records, or that R1/R2 scanners disagreed on EOF.
type UnpairedRead struct {
	Origin string
}

func (e *UnpairedRead) Error() string {
	return fmt.Sprintf("unpaired read in %s", e.Origin)
}

// ParseRecord reports a malformed FASTQ record at a specific index.
type ParseRecord struct {
	Origin string
	Index  int64
	Cause  error
}

func (e *ParseRecord) Error() string {
	return fmt.Sprintf("error parsing record %d in %s: %v", e.Index, e.Origin, e.Cause)
}

func (e *ParseRecord) Unwrap() error { return e.Cause }

// Parse reports a DSL (selector/transform/format/reference) parse failure.
type Parse struct {
	String  string
	Context string
	Reason  string
}

func (e *Parse) Error() string {
	return fmt.Sprintf("could not parse %q in %q: %s", e.String, e.Context, e.Reason)
}

// InvalidName reports a name violating the [A-Za-z0-9_*]{1,16} rule.
type InvalidName struct {
	String  string
	Context string
}

func (e *InvalidName) Error() string {
	return fmt.Sprintf(
		"could not parse %q in %q: names must contain 1-16 alphanumeric characters, '_', or '*'",
		e.String, e.Context,
	)
}

// NameKind distinguishes the three ways a reference to a read can fail.
type NameKind int

const (
	// NotInRead means a referenced string type, label, or attribute is missing.
	NotInRead NameKind = iota
	// Duplicate means a newly created label collides with an existing one.
	Duplicate
	// TypeMismatch means an evaluated value did not have the expected type.
	TypeMismatch
)

// NameError wraps one of NotInRead/Duplicate/TypeMismatch, with the
// operation name and, when the raiser fills it in, a dump of the read.
type NameError struct {
	Kind NameKind
	// Name is the missing/duplicate name (string type, label, or attr path).
	Name string
	// Expected/Found are populated for Kind == TypeMismatch.
	Expected string
	Found    string
	// Context is the operation that raised the error, e.g. "cut" or "retain".
	Context string
	// ReadDump is the textual form of the read at the time of the error.
	ReadDump string
}

func (e *NameError) Error() string {
	switch e.Kind {
	case Duplicate:
		return fmt.Sprintf("label %q already exists in read:\n%s\nwhen %s", e.Name, e.ReadDump, e.Context)
	case TypeMismatch:
		return fmt.Sprintf("expected %s, found %s in read:\n%s\nwhen %s", e.Expected, e.Found, e.ReadDump, e.Context)
	default:
		return fmt.Sprintf("cannot find %q in read:\n%s\nwhen %s", e.Name, e.ReadDump, e.Context)
	}
}

// IsMissingName reports whether err is a NameError for a missing name
// (as opposed to a duplicate-label or type-mismatch error). graph.Try uses
// this to decide whether to redirect into its catch graph.
func IsMissingName(err error) bool {
	ne, ok := err.(*NameError)
	return ok && ne.Kind == NotInRead
}

// ParsePatterns reports a malformed pattern block.
type ParsePatterns struct {
	Patterns string
	Cause    error
}

func (e *ParsePatterns) Error() string {
	return fmt.Sprintf("error parsing patterns:\n%q\n%v", e.Patterns, e.Cause)
}

func (e *ParsePatterns) Unwrap() error { return e.Cause }
