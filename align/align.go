// Package align implements the dynamic-programming aligner backing
// GlobalAln/LocalAln/PrefixAln/SuffixAln matching: a resizable-buffer,
// thread-local-style Aligner whose score grid is stored in a gonum matrix
// and only ever grows, mirroring the pattern the original crate's
// block_aligner integration used (monotonically growing padded buffers
// reused across reads rather than reallocated per call).
package align

import (
	"gonum.org/v1/gonum/mat"
)

// Mode selects which ends of the alignment are free to terminate without
// a gap penalty.
type Mode int

const (
	// Global requires the whole of both target and pattern to align
	// end-to-end (GlobalAln).
	Global Mode = iota
	// Local finds the best-scoring aligned sub-window of target
	// (LocalAln).
	Local
	// Prefix anchors the pattern's start to the target's start and lets
	// the alignment end anywhere in target (PrefixAln): free end-gaps on
	// target's tail.
	Prefix
	// Suffix anchors the pattern's end to the target's end and lets the
	// alignment start anywhere in target (SuffixAln): free end-gaps on
	// target's head.
	Suffix
)

const (
	matchScore    = 1.0
	mismatchScore = -1.0
	gapScore      = -1.0
)

const (
	dirNone byte = iota
	dirDiag
	dirUp   // gap in target (consumes pattern only)
	dirLeft // gap in pattern (consumes target only)
)

// Aligner holds score and traceback grids that grow monotonically to the
// largest target/pattern pair seen, so a single instance can be reused
// across an entire thread's worth of matching work without reallocating
// per read.
type Aligner struct {
	score      *mat.Dense
	trace      [][]byte
	rows, cols int
}

// NewAligner returns an aligner with no preallocated buffers; its first
// Align call sizes them to fit.
func NewAligner() *Aligner {
	return &Aligner{}
}

func (a *Aligner) ensure(rows, cols int) {
	if rows <= a.rows && cols <= a.cols {
		return
	}
	if rows > a.rows {
		a.rows = rows
	}
	if cols > a.cols {
		a.cols = cols
	}
	a.score = mat.NewDense(a.rows, a.cols, nil)
	a.trace = make([][]byte, a.rows)
	for i := range a.trace {
		a.trace[i] = make([]byte, a.cols)
	}
}

// Align aligns pattern against target under mode, returning the number of
// matched bases, the [start, end) window in target the alignment covers,
// and whether the alignment clears identityThreshold and overlapThreshold.
// identity = matches / (matches + mismatches + insertions + deletions)
// over the aligned region; overlap = matches / len(pattern).
func (a *Aligner) Align(target, pattern []byte, mode Mode, identityThreshold, overlapThreshold float64) (matches, start, end int, ok bool) {
	rows := len(pattern) + 1
	cols := len(target) + 1
	a.ensure(rows, cols)
	score, trace := a.score, a.trace

	freeStart := mode == Local || mode == Suffix
	freeEnd := mode == Local || mode == Prefix

	for i := 0; i <= len(pattern); i++ {
		for j := 0; j <= len(target); j++ {
			switch {
			case i == 0 && j == 0:
				score.Set(i, j, 0)
				trace[i][j] = dirNone
			case i == 0:
				if freeStart {
					score.Set(i, j, 0)
					trace[i][j] = dirNone
				} else {
					score.Set(i, j, score.At(i, j-1)+gapScore)
					trace[i][j] = dirLeft
				}
			case j == 0:
				score.Set(i, j, score.At(i-1, j)+gapScore)
				trace[i][j] = dirUp
			default:
				s := mismatchScore
				if pattern[i-1] == target[j-1] {
					s = matchScore
				}
				diag := score.At(i-1, j-1) + s
				up := score.At(i-1, j) + gapScore
				left := score.At(i, j-1) + gapScore
				best, dir := diag, dirDiag
				if up > best {
					best, dir = up, dirUp
				}
				if left > best {
					best, dir = left, dirLeft
				}
				if mode == Local && best < 0 {
					best, dir = 0, dirNone
				}
				score.Set(i, j, best)
				trace[i][j] = dir
			}
		}
	}

	endI, endJ := len(pattern), len(target)
	best := score.At(endI, endJ)
	if mode == Local {
		for i := 0; i <= len(pattern); i++ {
			for j := 0; j <= len(target); j++ {
				if score.At(i, j) > best {
					best, endI, endJ = score.At(i, j), i, j
				}
			}
		}
	} else if freeEnd {
		endI = len(pattern)
		for j := 0; j <= len(target); j++ {
			if score.At(endI, j) > best {
				best, endJ = score.At(endI, j), j
			}
		}
	}

	m, mm, ins, del, startJ := traceback(target, pattern, trace, endI, endJ, freeStart)
	start = startJ
	end = endJ

	denom := m + mm + ins + del
	identity := 0.0
	if denom > 0 {
		identity = float64(m) / float64(denom)
	}
	overlap := 0.0
	if len(pattern) > 0 {
		overlap = float64(m) / float64(len(pattern))
	}
	return m, start, end, identity >= identityThreshold && overlap >= overlapThreshold
}

// traceback walks the direction grid from (i, j) back to its origin,
// tallying matches, mismatches, insertions (gaps in pattern), and
// deletions (gaps in target), and returning the column at which the
// alignment started in target.
func traceback(target, pattern []byte, trace [][]byte, i, j int, stopAtNone bool) (matches, mismatches, ins, del, startJ int) {
	for i > 0 || j > 0 {
		if stopAtNone && trace[i][j] == dirNone {
			break
		}
		switch trace[i][j] {
		case dirDiag:
			if pattern[i-1] == target[j-1] {
				matches++
			} else {
				mismatches++
			}
			i--
			j--
		case dirUp:
			del++
			i--
		case dirLeft:
			ins++
			j--
		default:
			i, j = 0, 0
		}
	}
	return matches, mismatches, ins, del, j
}
