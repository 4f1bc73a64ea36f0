package read

import (
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/seqerr"
)

// EndIdx selects which end of a mapping a cut index is measured from.
type EndIdx struct {
	fromRight bool
	n         int
}

// LeftEnd measures a cut position n bytes from the mapping's start.
func LeftEnd(n int) EndIdx { return EndIdx{fromRight: false, n: n} }

// RightEnd measures a cut position n bytes from the mapping's end.
func RightEnd(n int) EndIdx { return EndIdx{fromRight: true, n: n} }

// StrMappings holds one of a read's typed strings: its backing bytes, an
// optional parallel quality string, an ordered set of mappings, and
// provenance (origin + record index).
type StrMappings struct {
	mappings []Mapping
	str      []byte
	qual     []byte // nil if absent
	origin   *Origin
	idx      int64
}

// NewStrMappings constructs a StrMappings with no quality string, and a
// single mapping labeled "*" spanning the whole string.
func NewStrMappings(s []byte, origin *Origin, idx int64) *StrMappings {
	return &StrMappings{
		mappings: []Mapping{newDefaultMapping(len(s))},
		str:      s,
		origin:   origin,
		idx:      idx,
	}
}

// NewStrMappingsWithQual is like NewStrMappings but also carries a quality
// string of identical length.
func NewStrMappingsWithQual(s, qual []byte, origin *Origin, idx int64) *StrMappings {
	sm := NewStrMappings(s, origin, idx)
	sm.qual = qual
	return sm
}

func (sm *StrMappings) clone() *StrMappings {
	c := &StrMappings{
		mappings: make([]Mapping, len(sm.mappings)),
		str:      append([]byte(nil), sm.str...),
		origin:   sm.origin,
		idx:      sm.idx,
	}
	for i, m := range sm.mappings {
		c.mappings[i] = m.clone()
	}
	if sm.qual != nil {
		c.qual = append([]byte(nil), sm.qual...)
	}
	return c
}

// String returns the backing bytes. The slice must not be mutated.
func (sm *StrMappings) String() []byte { return sm.str }

// Qual returns the quality string, or nil if absent.
func (sm *StrMappings) Qual() []byte { return sm.qual }

// Origin returns the provenance of this string.
func (sm *StrMappings) Origin() *Origin { return sm.origin }

// Idx returns the record index this string was constructed with.
func (sm *StrMappings) Idx() int64 { return sm.idx }

// Mapping returns the mapping labeled label, if any.
func (sm *StrMappings) Mapping(label inline.String) (*Mapping, bool) {
	for i := range sm.mappings {
		if sm.mappings[i].Label == label {
			return &sm.mappings[i], true
		}
	}
	return nil, false
}

// Mappings returns all mappings, in creation order, for iteration (e.g. Dbg).
func (sm *StrMappings) Mappings() []Mapping { return sm.mappings }

// Substring returns the bytes spanned by m.
func (sm *StrMappings) Substring(m *Mapping) []byte {
	return sm.str[m.Start : m.Start+m.Len]
}

// SubstringQual returns the quality bytes spanned by m, or nil if this
// string has no quality.
func (sm *StrMappings) SubstringQual(m *Mapping) []byte {
	if sm.qual == nil {
		return nil
	}
	return sm.qual[m.Start : m.Start+m.Len]
}

// AddMapping adds a new mapping spanning [start, start+length) under
// label, failing if label already exists. Used by callers that compute
// an arbitrary sub-interval directly (regex captures, pattern-match cut
// points), as opposed to Cut's two-way split of an existing mapping.
func (sm *StrMappings) AddMapping(label inline.String, start, length int) error {
	return sm.addMapping(&label, start, length, "add mapping")
}

func (sm *StrMappings) addMapping(label *inline.String, start, length int, context string) error {
	if label == nil {
		return nil
	}
	if _, ok := sm.Mapping(*label); ok {
		return &seqerr.NameError{Kind: seqerr.Duplicate, Name: label.String(), Context: context}
	}
	sm.mappings = append(sm.mappings, newMapping(*label, start, length))
	return nil
}

// Cut partitions label's interval into two new intervals at cutIdx, adding
// newLabel1/newLabel2 as new mappings (either may be nil to discard that
// half). It does not mutate the backing string.
func (sm *StrMappings) Cut(label inline.String, newLabel1, newLabel2 *inline.String, cutIdx EndIdx) error {
	m, ok := sm.Mapping(label)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label.String(), Context: "cut"}
	}
	start, length := m.Start, m.Len

	var cut int
	if cutIdx.fromRight {
		cut = cutIdx.n
		if cut > length {
			cut = length
		}
		if err := sm.addMapping(newLabel1, start, length-cut, "cut"); err != nil {
			return err
		}
		return sm.addMapping(newLabel2, start+length-cut, cut, "cut")
	}
	cut = cutIdx.n
	if cut > length {
		cut = length
	}
	if err := sm.addMapping(newLabel1, start, cut, "cut"); err != nil {
		return err
	}
	return sm.addMapping(newLabel2, start+cut, length-cut, "cut")
}

// Intersect adds a new mapping covering the numeric intersection of
// label1 and label2; if empty, no mapping is added.
func (sm *StrMappings) Intersect(label1, label2 inline.String, newLabel *inline.String) error {
	m1, ok := sm.Mapping(label1)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label1.String(), Context: "intersect"}
	}
	m2, ok := sm.Mapping(label2)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label2.String(), Context: "intersect"}
	}
	if start, length, ok := intersectionInterval(*m1, *m2); ok {
		return sm.addMapping(newLabel, start, length, "intersect")
	}
	return nil
}

// Union adds a new mapping spanning [min(start), max(end)) of label1 and
// label2. This may include gap regions between them.
func (sm *StrMappings) Union(label1, label2 inline.String, newLabel *inline.String) error {
	m1, ok := sm.Mapping(label1)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label1.String(), Context: "union"}
	}
	m2, ok := sm.Mapping(label2)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label2.String(), Context: "union"}
	}
	start, length := unionInterval(*m1, *m2)
	return sm.addMapping(newLabel, start, length, "union")
}

// Set replaces the bytes spanned by label with newStr (and newQual, which
// must be supplied when this string carries a quality and is ignored
// otherwise), adjusting every
// other mapping per the relation table in spec §4.1.
func (sm *StrMappings) Set(label inline.String, newStr, newQual []byte) error {
	m, ok := sm.Mapping(label)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label.String(), Context: "set"}
	}
	if sm.qual != nil && newQual == nil {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: "quality", Context: "set requires a quality string to match this read's existing quality"}
	}
	prev := *m
	delta := len(newStr) - prev.Len

	for i := range sm.mappings {
		mm := &sm.mappings[i]
		if mm.Label.IsStar() {
			mm.Len += delta
			continue
		}
		rel, k := intersect(prev, *mm)
		switch rel {
		case IABOverlap:
			if k > len(newStr) {
				mm.Start = prev.Start
				mm.Len -= k - len(newStr)
			} else {
				mm.Start += delta
			}
		case IBAOverlap:
			if k > len(newStr) {
				mm.Len -= k - len(newStr)
			}
		case IAInsideB:
			mm.Len += delta
		case IBInsideA:
			newEnd := prev.Start + len(newStr)
			if mm.Start > newEnd {
				mm.Start = newEnd
			}
			if mm.Start+mm.Len > newEnd {
				mm.Len = newEnd - mm.Start
			}
			if mm.Len < 0 {
				mm.Len = 0
			}
		case IEqual:
			mm.Len = len(newStr)
		case IABeforeB:
			mm.Start += delta
		case IBBeforeA:
			// unchanged
		}
	}

	sm.str = spliceBytes(sm.str, prev.Start, prev.Start+prev.Len, newStr)
	if sm.qual != nil {
		sm.qual = spliceBytes(sm.qual, prev.Start, prev.Start+prev.Len, newQual)
	}
	return nil
}

// Trim is equivalent to Set(label, nil, nil-or-empty-qual).
func (sm *StrMappings) Trim(label inline.String) error {
	var qual []byte
	if sm.qual != nil {
		qual = []byte{}
	}
	return sm.Set(label, []byte{}, qual)
}

// nucMap is the base-4 digit alphabet used by Norm's length encoding, in
// standard nucleotide order, least-significant digit first: with two
// digits, diff=2 encodes as "GA".
var nucMap = [4]byte{'A', 'C', 'G', 'T'}

// log4Ceil returns ceil(log4(n)) for n >= 1, and 0 for n <= 1.
func log4Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	count := 0
	v := 1
	for v < n {
		v *= 4
		count++
	}
	return count
}

// Norm pads label's substring with 'A' bases to length longLen, then
// appends ceil(log4(longLen-shortLen+1)) base-4 encoded bases (least
// significant digit first) recording the original length's deficit from
// longLen, so variable-length regions (e.g. barcodes) become comparable by
// equal-length encoding.
func (sm *StrMappings) Norm(label inline.String, shortLen, longLen int) error {
	m, ok := sm.Mapping(label)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label.String(), Context: "norm"}
	}
	normalized := *m

	lengthDiff := longLen - normalized.Len
	extraLen := log4Ceil(longLen - shortLen + 1)
	normedLen := longLen - normalized.Len + extraLen

	for i := range sm.mappings {
		mm := &sm.mappings[i]
		rel, _ := intersect(normalized, *mm)
		switch rel {
		case IBAOverlap, IABOverlap, IAInsideB, IABeforeB, IEqual:
			mm.Len += normedLen
		}
	}

	insertAt := normalized.Start + normalized.Len
	pad := make([]byte, lengthDiff)
	for i := range pad {
		pad[i] = 'A'
	}
	sm.str = spliceBytes(sm.str, insertAt, insertAt, pad)

	digits := make([]byte, extraLen)
	ld := lengthDiff
	for i := 0; i < extraLen; i++ {
		digits[i] = nucMap[ld&3]
		ld >>= 2
	}
	sm.str = append(sm.str, digits...)

	if sm.qual != nil {
		// All normedLen quality placeholders are inserted at the single
		// fixed position insertAt, including the ones that correspond to
		// the encoding digits appended at the end of the sequence string;
		// this mirrors the reference implementation exactly.
		qpad := make([]byte, normedLen)
		for i := range qpad {
			qpad[i] = '#'
		}
		sm.qual = spliceBytes(sm.qual, insertAt, insertAt, qpad)
	}

	return nil
}

// paddingByte returns byte i (0-indexed) of the infinite deterministic
// sequence "A", "CA", "GAA", "TAAA", "AAAAA", ... used by Pad: term j has
// length j+1, consisting of nucMap[j%4] followed by j copies of 'A'.
func paddingByte(i int) byte {
	term := 0
	consumed := 0
	for consumed+term+1 <= i {
		consumed += term + 1
		term++
	}
	offset := i - consumed
	if offset == 0 {
		return nucMap[term%4]
	}
	return 'A'
}

// paddingBytes returns the first n bytes of the deterministic padding
// sequence.
func paddingBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = paddingByte(i)
	}
	return b
}

// Pad extends label's substring to targetLen (if shorter) by appending a
// deterministic prefix of the padding sequence, and leaves it unchanged
// otherwise. Quality of the appended bases is 'I'. Uses the same
// invariant-preserving table as Set, since padding is implemented as
// replacing label's bytes with its own bytes plus the padding suffix.
func (sm *StrMappings) Pad(label inline.String, targetLen int) error {
	m, ok := sm.Mapping(label)
	if !ok {
		return &seqerr.NameError{Kind: seqerr.NotInRead, Name: label.String(), Context: "pad"}
	}
	if m.Len >= targetLen {
		return nil
	}
	extra := targetLen - m.Len
	newStr := append(append([]byte(nil), sm.Substring(m)...), paddingBytes(extra)...)

	var newQual []byte
	if sm.qual != nil {
		newQual = append([]byte(nil), sm.SubstringQual(m)...)
		for i := 0; i < extra; i++ {
			newQual = append(newQual, 'I')
		}
	}
	return sm.Set(label, newStr, newQual)
}

// spliceBytes replaces s[start:end] with repl, reusing s's backing array
// when possible.
func spliceBytes(s []byte, start, end int, repl []byte) []byte {
	out := make([]byte, 0, start+len(repl)+len(s)-end)
	out = append(out, s[:start]...)
	out = append(out, repl...)
	out = append(out, s[end:]...)
	return out
}
