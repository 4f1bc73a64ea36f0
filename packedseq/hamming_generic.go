// +build !amd64 appengine

package packedseq

// match counts equal byte positions one byte at a time. len(a) == len(b)
// is guaranteed by the caller.
func match(a, b []byte) int {
	n := 0
	for i := range a {
		if a[i] == b[i] {
			n++
		}
	}
	return n
}
