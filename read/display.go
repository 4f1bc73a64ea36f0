package read

import (
	"fmt"
	"sort"
	"strings"
)

// Display renders r in the textual form used for debugging: for each
// present string type, one row per mapping with an ASCII underline
// positioned at the mapping's interval (a single '.' for a zero-length
// mapping), followed by its attributes, then the str/qual rows, then the
// provenance line.
func (r *Read) Display() string {
	var b strings.Builder
	for t := StrType(0); t < numStrTypes; t++ {
		sm, ok := r.StrMappings(t)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", t)

		mappings := append([]Mapping(nil), sm.mappings...)
		sort.SliceStable(mappings, func(i, j int) bool { return mappings[i].Start < mappings[j].Start })

		for _, m := range mappings {
			fmt.Fprintf(&b, "  %-8s %s\n", m.Label.String(), underline(len(sm.str), m.Start, m.Len))
			if attrs := m.attrs; len(attrs) > 0 {
				keys := make([]string, 0, len(attrs))
				for k := range attrs {
					keys = append(keys, k.String())
				}
				sort.Strings(keys)
				for _, k := range keys {
					var v Data
					for ak, av := range attrs {
						if ak.String() == k {
							v = av
							break
						}
					}
					fmt.Fprintf(&b, "    attr %s = %s (%s)\n", k, v.String(), v.TypeName())
				}
			}
		}

		fmt.Fprintf(&b, "  str:  %s\n", string(sm.str))
		if sm.qual != nil {
			fmt.Fprintf(&b, "  qual: %s\n", string(sm.qual))
		}
		fmt.Fprintf(&b, "  (from record %d in %s)\n", sm.idx, sm.origin.String())
	}
	return b.String()
}

// underline draws a "|-----|" span positioned at [start, start+length)
// within a string of the given total length, or a single "." if length is
// zero.
func underline(total, start, length int) string {
	if length == 0 {
		return strings.Repeat(" ", start) + "."
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", start))
	b.WriteByte('|')
	if length > 2 {
		b.WriteString(strings.Repeat("-", length-2))
	}
	if length > 1 {
		b.WriteByte('|')
	}
	return b.String()
}
