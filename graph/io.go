package graph

import (
	"regexp"

	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/fastqio"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// MatchRegexNode runs a compiled regexp against label's substring; each
// named capture group becomes a new mapping (by group name), and an
// optional attribute records whether the regex matched at all.
type MatchRegexNode struct {
	Type  read.StrType
	Label inline.String
	Re    *regexp.Regexp
	Attr  *inline.String // optional
}

func (n *MatchRegexNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "match_regex")
	if err != nil {
		return nil, false, err
	}
	m, ok := sm.Mapping(n.Label)
	if !ok {
		return nil, false, &seqerr.NameError{Kind: seqerr.NotInRead, Name: n.Label.String(), Context: "match_regex"}
	}
	target := sm.Substring(m)

	idx := n.Re.FindSubmatchIndex(target)
	if n.Attr != nil {
		m.SetData(*n.Attr, read.Bool(idx != nil))
	}
	if idx == nil {
		return r, false, nil
	}

	names := n.Re.SubexpNames()
	for i, name := range names {
		if name == "" || i*2+1 >= len(idx) {
			continue
		}
		start, end := idx[i*2], idx[i*2+1]
		if start < 0 || end < 0 {
			continue
		}
		label, err := inline.NewChecked([]byte(name))
		if err != nil {
			return nil, false, err
		}
		if err := sm.AddMapping(label, m.Start+start, end-start); err != nil {
			return nil, false, err
		}
	}
	return r, false, nil
}
func (n *MatchRegexNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *MatchRegexNode) Name() string { return "match_regex" }

// PolyXEnd selects which end of the target a MatchPolyXNode scans from.
type PolyXEnd int

const (
	PolyXPrefix PolyXEnd = iota
	PolyXSuffix
)

// MatchPolyXNode finds the best-scoring run of X at one end of label's
// substring under a +1/-2 scoring scheme, cutting at the discovered
// boundary once the matched-base ratio clears Identity.
type MatchPolyXNode struct {
	Type                read.StrType
	Label               inline.String
	X                   byte
	End                 PolyXEnd
	Identity            float64
	NewLabel1, NewLabel2 *inline.String
}

func (n *MatchPolyXNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "match_poly_x")
	if err != nil {
		return nil, false, err
	}
	m, ok := sm.Mapping(n.Label)
	if !ok {
		return nil, false, &seqerr.NameError{Kind: seqerr.NotInRead, Name: n.Label.String(), Context: "match_poly_x"}
	}
	target := sm.Substring(m)

	cut := n.bestCut(target)
	return r, false, emitMappings(sm, m.Start, m.Len, []*inline.String{n.NewLabel1, n.NewLabel2}, []int{cut})
}

// bestCut scores every prefix (or suffix) length under a +1 match / -2
// mismatch scheme and, among the lengths whose matched-base ratio clears
// Identity, returns the one with the highest running score (the longer
// one on a tie), walking outward from the anchored end. It returns 0 when
// no length qualifies with a score of at least 0.
func (n *MatchPolyXNode) bestCut(target []byte) int {
	length := len(target)
	bestLen, bestScore := 0, 0.0
	score := 0
	matched := 0
	for i := 0; i < length; i++ {
		var c byte
		if n.End == PolyXPrefix {
			c = target[i]
		} else {
			c = target[length-1-i]
		}
		if c == n.X {
			score++
			matched++
		} else {
			score -= 2
		}
		ratio := float64(matched) / float64(i+1)
		if ratio >= n.Identity && float64(score) >= bestScore {
			bestScore = float64(score)
			bestLen = i + 1
		}
	}
	if n.End == PolyXPrefix {
		return bestLen
	}
	return length - bestLen
}

func (n *MatchPolyXNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *MatchPolyXNode) Name() string { return "match_poly_x" }

// OutputFastqNode writes one or two FASTQ streams, one record per read,
// to paths computed per-read by evaluating Path1/Path2. A ".gz" suffix
// selects gzip framing. Cache is shared across every OutputFastqNode (and
// every worker goroutine) that should fan into the same writer pool.
type OutputFastqNode struct {
	Cache *fastqio.WriterCache

	Type1  read.StrType
	Label1 inline.String
	Name1  *expr.FormatExpr
	Path1  *expr.FormatExpr

	HasR2  bool
	Type2  read.StrType
	Label2 inline.String
	Name2  *expr.FormatExpr
	Path2  *expr.FormatExpr
}

func (n *OutputFastqNode) Run(_ *Scratch, r *read.Read) (*read.Read, bool, error) {
	if err := n.writeOne(r, n.Type1, n.Label1, n.Name1, n.Path1); err != nil {
		return nil, false, err
	}
	if n.HasR2 {
		if err := n.writeOne(r, n.Type2, n.Label2, n.Name2, n.Path2); err != nil {
			return nil, false, err
		}
	}
	return r, false, nil
}

func (n *OutputFastqNode) writeOne(r *read.Read, t read.StrType, label inline.String, name, path *expr.FormatExpr) error {
	sm, err := strMappings(r, t, "output_fastq")
	if err != nil {
		return err
	}
	m, ok := sm.Mapping(label)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label.String(), Context: "output_fastq"}
	}

	id, err := name.Format(r, false)
	if err != nil {
		return err
	}
	seq := sm.Substring(m)
	qual := sm.SubstringQual(m)
	if qual == nil {
		qual = bytesRepeat('I', len(seq))
	}
	pathBytes, err := path.Format(r, false)
	if err != nil {
		return err
	}

	cw, err := n.Cache.Get(string(pathBytes))
	if err != nil {
		return &seqerr.FileIo{File: string(pathBytes), Cause: err}
	}
	if err := cw.Write(&fastqio.Record{ID: id, Seq: seq, Qual: qual}); err != nil {
		return &seqerr.FileIo{File: string(pathBytes), Cause: err}
	}
	return nil
}

func (n *OutputFastqNode) RequiredNames() []read.LabelOrAttrName {
	names := []read.LabelOrAttrName{{Type: n.Type1, Label: n.Label1}}
	if n.HasR2 {
		names = append(names, read.LabelOrAttrName{Type: n.Type2, Label: n.Label2})
	}
	return names
}
func (n *OutputFastqNode) Name() string { return "output_fastq" }

func bytesRepeat(c byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return b
}
