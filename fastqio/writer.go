package fastqio

import "io"

var newline = []byte{'\n'}

// Writer writes FASTQ records to an underlying stream, synthesizing the
// "+" separator line every record needs.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes rec in FASTQ format. Once an error occurs, subsequent
// writes are no-ops that keep returning it.
func (w *Writer) Write(rec *Record) error {
	w.writeln(rec.ID)
	w.writeln(rec.Seq)
	w.writeln([]byte{'+'})
	w.writeln(rec.Qual)
	return w.err
}

func (w *Writer) writeln(line []byte) {
	if w.err != nil {
		return
	}
	if _, w.err = w.w.Write(line); w.err != nil {
		return
	}
	_, w.err = w.w.Write(newline)
}
