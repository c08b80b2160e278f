//go:build amd64 && !purego

package bitvector

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

var popcount64 = popcount64Software

func init() {
	if cpu.X86.HasPOPCNT {
		popcount64 = popcount64Hardware
	}
}

func popcount64Hardware(w uint64) uint64 { return uint64(bits.OnesCount64(w)) }

func popcount64Software(w uint64) uint64 {
	w = w - ((w >> 1) & 0x5555555555555555)
	w = (w & 0x3333333333333333) + ((w >> 2) & 0x3333333333333333)
	w = (w + (w >> 4)) & 0x0f0f0f0f0f0f0f0f
	return (w * 0x0101010101010101) >> 56
}
