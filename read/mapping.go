package read

import "github.com/grailbio/seqflow/inline"

// Mapping is a named interval (start, len) into a backing string, with a
// keyed set of attributes.
type Mapping struct {
	Label inline.String
	Start int
	Len   int
	attrs map[inline.String]Data
}

func newMapping(label inline.String, start, length int) Mapping {
	return Mapping{Label: label, Start: start, Len: length}
}

// newDefaultMapping returns the reserved "*" mapping spanning [0, length).
func newDefaultMapping(length int) Mapping {
	return newMapping(inline.Star, 0, length)
}

// End returns Start+Len.
func (m Mapping) End() int { return m.Start + m.Len }

// Data returns the attribute named attr, if present.
func (m *Mapping) Data(attr inline.String) (Data, bool) {
	if m.attrs == nil {
		return Data{}, false
	}
	d, ok := m.attrs[attr]
	return d, ok
}

// SetData sets the attribute named attr to d, creating the attribute map on
// first use.
func (m *Mapping) SetData(attr inline.String, d Data) {
	if m.attrs == nil {
		m.attrs = make(map[inline.String]Data)
	}
	m.attrs[attr] = d
}

// Attrs returns the attribute map for read-only iteration (e.g. Dbg).
func (m *Mapping) Attrs() map[inline.String]Data {
	return m.attrs
}

// clone returns a deep copy of m, used at Fork points.
func (m Mapping) clone() Mapping {
	c := m
	if m.attrs != nil {
		c.attrs = make(map[inline.String]Data, len(m.attrs))
		for k, v := range m.attrs {
			c.attrs[k] = v
		}
	}
	return c
}

// Intersection is the 7-way relation between a mutation's target mapping A
// and any other mapping B, as defined in spec §4.1.
type Intersection int

const (
	// IEqual: A and B cover the same interval.
	IEqual Intersection = iota
	// IAInsideB: A is strictly inside B.
	IAInsideB
	// IBInsideA: B is strictly inside A.
	IBInsideA
	// IABOverlap: A starts at-or-before B and they overlap.
	IABOverlap
	// IBAOverlap: B starts before A and they overlap, or both start at the
	// same point and B ends first.
	IBAOverlap
	// IABeforeB: A ends at-or-before B starts (no overlap, A first).
	IABeforeB
	// IBBeforeA: B ends at-or-before A starts (no overlap, B first).
	IBBeforeA
)

// intersect classifies the relation of b relative to a (the mutation
// target), returning the relation and, for the two overlap cases, the
// overlap length k. The case order mirrors the reference implementation
// exactly: strict containment requires strict inequalities, so a shared
// start or end point with differing lengths falls through to the overlap
// cases rather than to AInsideB/BInsideA.
func intersect(a, b Mapping) (Intersection, int) {
	aStart, aEnd := a.Start, a.End()
	bStart, bEnd := b.Start, b.End()

	switch {
	case aStart == bStart && aEnd == bEnd:
		return IEqual, 0
	case aStart < bStart && bEnd < aEnd:
		return IBInsideA, 0
	case bStart < aStart && aEnd < bEnd:
		return IAInsideB, 0
	case aStart == bStart:
		if aEnd > bEnd {
			return IBAOverlap, bEnd - aStart
		}
		return IABOverlap, aEnd - bStart
	case aEnd == bEnd:
		if aStart > bStart {
			return IBAOverlap, bEnd - aStart
		}
		return IABOverlap, aEnd - bStart
	case aStart <= bStart && bStart < aEnd:
		return IABOverlap, aEnd - bStart
	case aStart < bEnd && bEnd <= aEnd:
		return IBAOverlap, bEnd - aStart
	case aEnd <= bStart:
		return IABeforeB, 0
	case bEnd <= aStart:
		return IBBeforeA, 0
	default:
		panic("unreachable: mapping intersection")
	}
}

// intersectionInterval returns the numeric intersection of a and b, or
// ok=false if they don't overlap.
func intersectionInterval(a, b Mapping) (start, length int, ok bool) {
	s := a.Start
	if b.Start > s {
		s = b.Start
	}
	e := a.End()
	if b.End() < e {
		e = b.End()
	}
	if e <= s {
		return 0, 0, false
	}
	return s, e - s, true
}

// unionInterval returns [min(start), max(end)) of a and b.
func unionInterval(a, b Mapping) (start, length int) {
	s := a.Start
	if b.Start < s {
		s = b.Start
	}
	e := a.End()
	if b.End() > e {
		e = b.End()
	}
	return s, e - s
}
