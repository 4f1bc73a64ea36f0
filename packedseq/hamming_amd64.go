// +build amd64,!appengine

package packedseq

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

const lowBits = 0x7f7f7f7f7f7f7f7f

// match counts equal byte positions, processing 8 bytes at a time when the
// CPU's POPCNT instruction is available: XOR the two words, fold the
// result into a mask with one high bit per zero (matching) byte lane,
// with no carry between lanes, then popcount the mask. A scalar loop handles the final 0-7 byte residue,
// and the whole scalar path is used as a fallback when POPCNT is absent.
func match(a, b []byte) int {
	if !cpu.X86.HasPOPCNT {
		return matchScalar(a, b)
	}
	n := len(a)
	count := 0
	i := 0
	for ; i+8 <= n; i += 8 {
		x := binary.LittleEndian.Uint64(a[i : i+8])
		y := binary.LittleEndian.Uint64(b[i : i+8])
		xor := x ^ y
		zeroMask := ^(((xor & lowBits) + lowBits) | xor | lowBits)
		count += bits.OnesCount64(zeroMask)
	}
	count += matchScalar(a[i:], b[i:])
	return count
}

func matchScalar(a, b []byte) int {
	n := 0
	for i := range a {
		if a[i] == b[i] {
			n++
		}
	}
	return n
}
