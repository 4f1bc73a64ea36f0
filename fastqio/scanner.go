// Package fastqio implements the FASTQ source/sink adapters (C10): record
// scanning (single, paired, and interleaved), record writing, and the
// process-wide writer cache OutputFastq draws from. It generalizes the
// 4-field (ID, Seq, Unk, Qual) record model to the three fields a read's
// seq/index typed strings need (ID, Seq, Qual), since the "+" separator
// line carries no information downstream.
package fastqio

import (
	"bufio"
	"errors"
	"io"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
	// ErrDiscordant is returned when two underlying FASTQ files end at
	// different record counts.
	ErrDiscordant = errors.New("discordant FASTQ pairs")
	// ErrUnpairedRead is returned by an InterleavedScanner when a record's
	// mate is missing (an odd number of records). Record IDs are not
	// compared.
	ErrUnpairedRead = errors.New("unpaired read in interleaved FASTQ stream")
)

var errEOF = errors.New("eof")

// Record is one FASTQ record: an ID line (including the leading "@"),
// sequence, and quality string.
type Record struct {
	ID, Seq, Qual []byte
}

// Scanner reads FASTQ records from a single stream. Scanners are not
// thread-safe; callers needing concurrent access must serialize Scan
// calls themselves (see Source).
type Scanner struct {
	b   *bufio.Scanner
	err error
}

// NewScanner constructs a Scanner reading raw FASTQ data from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Scanner{b: s}
}

// Scan reads the next record into rec, returning false once the stream is
// exhausted or an error occurs; once Scan returns false it never returns
// true again. Check Err to distinguish clean EOF from a parse error.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	if !s.b.Scan() {
		if s.err = s.b.Err(); s.err == nil {
			s.err = errEOF
		}
		return false
	}
	id := copyBytes(s.b.Bytes())
	if len(id) == 0 || id[0] != '@' {
		s.err = ErrInvalid
		return false
	}
	rec.ID = id
	if !s.scanLine() {
		return false
	}
	rec.Seq = copyBytes(s.b.Bytes())
	if !s.scanLine() {
		return false
	}
	unk := s.b.Bytes()
	if len(unk) == 0 || unk[0] != '+' {
		s.err = ErrInvalid
		return false
	}
	if !s.scanLine() {
		return false
	}
	rec.Qual = copyBytes(s.b.Bytes())
	return true
}

func (s *Scanner) scanLine() bool {
	ok := s.b.Scan()
	if !ok {
		if s.err = s.b.Err(); s.err == nil {
			s.err = ErrShort
		}
	}
	return ok
}

// Err returns the scanning error, if any; nil after a clean EOF.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// PairScanner composes two Scanners to read an R1/R2 FASTQ pair in
// lockstep.
type PairScanner struct {
	r1, r2 *Scanner
	err    error
}

// NewPairScanner builds a PairScanner over r1, r2 readers.
func NewPairScanner(r1, r2 io.Reader) *PairScanner {
	return &PairScanner{r1: NewScanner(r1), r2: NewScanner(r2)}
}

// Scan reads the next record pair into rec1, rec2.
func (p *PairScanner) Scan(rec1, rec2 *Record) bool {
	ok1 := p.r1.Scan(rec1)
	ok2 := p.r2.Scan(rec2)
	if ok1 != ok2 {
		p.err = ErrDiscordant
	}
	return ok1 && ok2
}

// Err returns the scanning error, if any.
func (p *PairScanner) Err() error {
	if err := p.r1.Err(); err != nil {
		return err
	}
	if err := p.r2.Err(); err != nil {
		return err
	}
	return p.err
}

// InterleavedScanner reads alternating R1/R2 records from a single
// stream. A trailing unmatched record (odd record count) surfaces as
// ErrUnpairedRead.
type InterleavedScanner struct {
	s   *Scanner
	err error
}

// NewInterleavedScanner builds an InterleavedScanner over r.
func NewInterleavedScanner(r io.Reader) *InterleavedScanner {
	return &InterleavedScanner{s: NewScanner(r)}
}

// Scan reads the next record pair into rec1, rec2.
func (s *InterleavedScanner) Scan(rec1, rec2 *Record) bool {
	if !s.s.Scan(rec1) {
		return false
	}
	if !s.s.Scan(rec2) {
		if s.err = s.s.Err(); s.err == nil {
			s.err = ErrUnpairedRead
		}
		return false
	}
	return true
}

// Err returns the scanning error, if any.
func (s *InterleavedScanner) Err() error {
	if err := s.s.Err(); err != nil {
		return err
	}
	return s.err
}
