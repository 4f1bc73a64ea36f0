package graph

import (
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/matchseq"
	"github.com/grailbio/seqflow/pattern"
	"github.com/grailbio/seqflow/read"
	"github.com/grailbio/seqflow/seqerr"
)

// MatchNode matches Label's substring against Patterns under MatchType,
// stamping pattern_name/attrs onto the target mapping and emitting new
// sub-mappings per the MatchType's cardinality. NewLabels must have
// exactly MatchType.Kind.Cardinality() entries (a nil entry discards that
// piece).
type MatchNode struct {
	Type      read.StrType
	Label     inline.String
	Patterns  *pattern.Patterns
	MatchType matchseq.MatchType
	NewLabels []*inline.String
}

func (n *MatchNode) Run(s *Scratch, r *read.Read) (*read.Read, bool, error) {
	sm, err := strMappings(r, n.Type, "match")
	if err != nil {
		return nil, false, err
	}
	m, ok := sm.Mapping(n.Label)
	if !ok {
		return nil, false, &seqerr.NameError{Kind: seqerr.NotInRead, Name: n.Label.String(), Context: "match"}
	}
	target := sm.Substring(m)

	res, err := matchseq.Match(target, n.Patterns, n.MatchType, s.Aligner, r)
	if err != nil {
		return nil, false, err
	}

	if !res.Matched {
		if n.Patterns.PatternName != nil {
			m.SetData(*n.Patterns.PatternName, read.Bool(false))
		}
		return r, false, nil
	}

	if n.Patterns.PatternName != nil {
		m.SetData(*n.Patterns.PatternName, read.Bytes(res.PatternBytes))
	}
	for i, attrName := range n.Patterns.AttrNames {
		if i < len(res.Attrs) {
			m.SetData(attrName, res.Attrs[i])
		}
	}

	return r, false, emitMappings(sm, m.Start, m.Len, n.NewLabels, res.CutPositions)
}

func (n *MatchNode) RequiredNames() []read.LabelOrAttrName {
	return []read.LabelOrAttrName{{Type: n.Type, Label: n.Label}}
}
func (n *MatchNode) Name() string { return "match" }

// emitMappings turns CutPositions (relative to the target mapping's
// start) into concrete mappings, per the cardinality table in the
// read-model spec: 1 new mapping spans the whole target; 2 cuts the
// target at one offset; 3 splits it into before/match/after.
func emitMappings(sm *read.StrMappings, start, length int, newLabels []*inline.String, cuts []int) error {
	switch len(newLabels) {
	case 1:
		end := length
		if len(cuts) > 0 {
			end = cuts[0]
		}
		return addIfLabeled(sm, newLabels[0], start, end)
	case 2:
		cut := length
		if len(cuts) > 0 {
			cut = cuts[0]
		}
		if err := addIfLabeled(sm, newLabels[0], start, cut); err != nil {
			return err
		}
		return addIfLabeled(sm, newLabels[1], start+cut, length-cut)
	case 3:
		p1, p2 := 0, length
		if len(cuts) == 2 {
			p1, p2 = cuts[0], cuts[1]
		}
		if err := addIfLabeled(sm, newLabels[0], start, p1); err != nil {
			return err
		}
		if err := addIfLabeled(sm, newLabels[1], start+p1, p2-p1); err != nil {
			return err
		}
		return addIfLabeled(sm, newLabels[2], start+p2, length-p2)
	default:
		return nil
	}
}

func addIfLabeled(sm *read.StrMappings, label *inline.String, start, length int) error {
	if label == nil {
		return nil
	}
	return sm.AddMapping(*label, start, length)
}
