package seqcodec

import (
	"math/bits"

	"github.com/tongrams-go/tongrams/bitvector"
)

// IndexedCodewords is a variable-length codeword sequence: for a
// non-negative value v, it writes cw(v) = v + 2 - 2^len(v) of width
// len(v) = floor(log2(v+2)), concatenated in a bit-stream, with a
// companion bit-vector marking codeword starts (plus a trailing
// sentinel) so select1(i) locates the i-th codeword and
// select1(i+1)-select1(i) gives its length, per spec.md §4.4.
type IndexedCodewords struct {
	bits       *bitvector.BitVector
	starts     *bitvector.BitVector
	startsSel  *bitvector.Darray
	n          uint64
}

func codewordLen(v uint64) uint {
	return uint(bits.Len64(v+2) - 1)
}

func codeword(v uint64) (cw uint64, width uint) {
	width = codewordLen(v)
	cw = v + 2 - (uint64(1) << width)
	return cw, width
}

// BuildIndexedCodewords encodes values as an indexed-codeword sequence.
func BuildIndexedCodewords(values []uint64) *IndexedCodewords {
	bitsBuilder := bitvector.NewBuilder(0)
	startsBuilder := bitvector.NewBuilder(uint64(len(values)) + 1)

	pos := uint64(0)
	for _, v := range values {
		startsBuilder.Set(pos)
		cw, width := codeword(v)
		bitsBuilder.PushBits(cw, width)
		pos += uint64(width)
	}
	// Trailing sentinel marks the end of the last codeword.
	startsBuilder.Set(pos)

	starts := startsBuilder.Build()
	ic := &IndexedCodewords{
		bits:   bitsBuilder.Build(),
		starts: starts,
		n:      uint64(len(values)),
	}
	ic.startsSel = bitvector.BuildDarray(starts, true)
	return ic
}

// Len returns the number of encoded values.
func (ic *IndexedCodewords) Len() uint64 { return ic.n }

// Access decodes and returns the i-th value in constant time.
func (ic *IndexedCodewords) Access(i uint64) uint64 {
	start, _ := ic.startsSel.Select(i)
	end, _ := ic.startsSel.Select(i + 1)
	width := uint(end - start)
	cw := ic.bits.GetBits(start, width)
	return cw + (uint64(1) << width) - 2
}
