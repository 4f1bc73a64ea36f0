// Package matchseq implements the pattern-matching engine (C7): given a
// target substring, a pattern set, and a MatchType, it finds the
// best-scoring pattern and the cut positions needed to split the target
// into the MatchType's mapping cardinality.
package matchseq

import (
	"bytes"
	"math"

	"github.com/grailbio/seqflow/align"
	"github.com/grailbio/seqflow/packedseq"
	"github.com/grailbio/seqflow/pattern"
	"github.com/grailbio/seqflow/read"
)

// Threshold is either an absolute match count or a fraction of the
// pattern's length (floored).
type Threshold struct {
	count  int
	frac   float64
	isFrac bool
}

// CountThreshold builds an absolute-count threshold.
func CountThreshold(k int) Threshold { return Threshold{count: k} }

// FracThreshold builds a fraction-of-pattern-length threshold.
func FracThreshold(f float64) Threshold { return Threshold{frac: f, isFrac: true} }

// Get resolves the threshold against a concrete pattern length.
func (t Threshold) Get(patternLen int) int {
	if t.isFrac {
		return int(math.Floor(t.frac * float64(patternLen)))
	}
	return t.count
}

// Kind is the MatchType taxonomy tag.
type Kind int

const (
	Exact Kind = iota
	ExactPrefix
	ExactSuffix
	ExactSearch
	Hamming
	HammingPrefix
	HammingSuffix
	HammingSearch
	GlobalAln
	LocalAln
	PrefixAln
	SuffixAln
)

// Cardinality returns the number of new mappings Kind produces on a match.
func (k Kind) Cardinality() int {
	switch k {
	case Exact, Hamming, GlobalAln:
		return 1
	case ExactPrefix, ExactSuffix, HammingPrefix, HammingSuffix, PrefixAln, SuffixAln:
		return 2
	case ExactSearch, HammingSearch, LocalAln:
		return 3
	default:
		return 0
	}
}

// MatchType fully describes one matching strategy: its Kind plus whatever
// thresholds that Kind needs.
type MatchType struct {
	Kind             Kind
	HammingThreshold Threshold // Hamming, HammingPrefix, HammingSuffix, HammingSearch
	Identity         float64   // GlobalAln, LocalAln, PrefixAln, SuffixAln
	Overlap          float64   // LocalAln, PrefixAln, SuffixAln
}

// Result is the outcome of matching a target against a pattern set.
type Result struct {
	Matched      bool
	PatternIndex int
	Matches      int
	// CutPositions holds Kind.Cardinality()-1 cut points, relative to the
	// start of target, in increasing order.
	CutPositions []int
	Attrs        []read.Data
	PatternBytes []byte
}

// Match finds the best pattern in patterns against target, under mt. r is
// used to evaluate expression-valued patterns and may be nil if
// patterns.AllLiterals() is true.
func Match(target []byte, patterns *pattern.Patterns, mt MatchType, aligner *align.Aligner, r *read.Read) (Result, error) {
	best := Result{}
	bestMatches := -1

	for idx, p := range patterns.List {
		patBytes, err := p.Bytes(r)
		if err != nil {
			return Result{}, err
		}
		if len(patBytes) <= bestMatches {
			continue // cannot improve on the current best
		}

		matches, cuts, matched := evalOne(target, patBytes, mt, aligner)
		if !matched {
			continue
		}
		if matches > bestMatches {
			bestMatches = matches
			best = Result{
				Matched:      true,
				PatternIndex: idx,
				Matches:      matches,
				CutPositions: cuts,
				Attrs:        p.Attrs,
				PatternBytes: patBytes,
			}
			if matches >= len(patBytes) {
				break
			}
		}
	}

	return best, nil
}

func evalOne(target, pat []byte, mt MatchType, aligner *align.Aligner) (matches int, cuts []int, ok bool) {
	switch mt.Kind {
	case Exact:
		if bytes.Equal(target, pat) {
			return len(pat), nil, true
		}
		return 0, nil, false

	case ExactPrefix:
		if len(pat) <= len(target) && bytes.Equal(target[:len(pat)], pat) {
			return len(pat), []int{len(pat)}, true
		}
		return 0, nil, false

	case ExactSuffix:
		if len(pat) <= len(target) && bytes.Equal(target[len(target)-len(pat):], pat) {
			return len(pat), []int{len(target) - len(pat)}, true
		}
		return 0, nil, false

	case ExactSearch:
		idx := bytes.Index(target, pat)
		if idx < 0 {
			return 0, nil, false
		}
		return len(pat), []int{idx, idx + len(pat)}, true

	case Hamming:
		t := mt.HammingThreshold.Get(len(pat))
		m, ok := packedseq.MatchesAtLeast(target, pat, t)
		if !ok {
			return 0, nil, false
		}
		return m, nil, true

	case HammingPrefix:
		if len(pat) > len(target) {
			return 0, nil, false
		}
		t := mt.HammingThreshold.Get(len(pat))
		m, ok := packedseq.MatchesAtLeast(target[:len(pat)], pat, t)
		if !ok {
			return 0, nil, false
		}
		return m, []int{len(pat)}, true

	case HammingSuffix:
		if len(pat) > len(target) {
			return 0, nil, false
		}
		t := mt.HammingThreshold.Get(len(pat))
		m, ok := packedseq.MatchesAtLeast(target[len(target)-len(pat):], pat, t)
		if !ok {
			return 0, nil, false
		}
		return m, []int{len(target) - len(pat)}, true

	case HammingSearch:
		t := mt.HammingThreshold.Get(len(pat))
		bestM, bestOff, found := -1, 0, false
		for off := 0; off+len(pat) <= len(target); off++ {
			m, ok := packedseq.MatchesAtLeast(target[off:off+len(pat)], pat, t)
			if ok && m > bestM {
				bestM, bestOff, found = m, off, true
			}
		}
		if !found {
			return 0, nil, false
		}
		return bestM, []int{bestOff, bestOff + len(pat)}, true

	case GlobalAln:
		t := mt.Identity
		m, _, _, ok := aligner.Align(target, pat, align.Global, t, 0)
		if !ok {
			return 0, nil, false
		}
		return m, nil, true

	case LocalAln:
		m, start, end, ok := aligner.Align(target, pat, align.Local, mt.Identity, mt.Overlap)
		if !ok {
			return 0, nil, false
		}
		return m, []int{start, end}, true

	case PrefixAln:
		window := min(len(target), len(pat)+int(math.Ceil((1-mt.Identity)*float64(len(pat)))))
		m, _, end, ok := aligner.Align(target[:window], pat, align.Prefix, mt.Identity, mt.Overlap)
		if !ok {
			return 0, nil, false
		}
		return m, []int{end}, true

	case SuffixAln:
		window := min(len(target), len(pat)+int(math.Ceil((1-mt.Identity)*float64(len(pat)))))
		sub := target[len(target)-window:]
		m, start, _, ok := aligner.Align(sub, pat, align.Suffix, mt.Identity, mt.Overlap)
		if !ok {
			return 0, nil, false
		}
		return m, []int{len(target) - window + start}, true

	default:
		return 0, nil, false
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
