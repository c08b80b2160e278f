// Package compact implements fixed-width packed integer vectors: a plain
// single-field vector, and a paired/tripled variant that packs a (key,
// value...) tuple per slot, used by the MPH tables in package mph.
package compact

import "github.com/tongrams-go/tongrams/bitvector"

// Vector is a fixed-width packed array of n unsigned integers, each
// occupying `width` bits (1..64).
type Vector struct {
	bv    *bitvector.BitVector
	width uint
	n     uint64
}

// Builder accumulates fixed-width values before sealing into a Vector.
type Builder struct {
	bb    *bitvector.Builder
	width uint
	n     uint64
}

// NewBuilder returns a Builder that packs values into `width`-bit slots.
// width must be able to hold every value later pushed; callers compute it
// as bits.Len64(maxValue) ahead of time.
func NewBuilder(width uint, hintN uint64) *Builder {
	if width == 0 {
		width = 1
	}
	return &Builder{bb: bitvector.NewBuilder(width * hintN), width: width}
}

// PushBack appends v, truncated to width bits.
func (b *Builder) PushBack(v uint64) {
	b.bb.PushBits(v, b.width)
	b.n++
}

// Build seals the builder.
func (b *Builder) Build() *Vector {
	return &Vector{bv: b.bb.Build(), width: b.width, n: b.n}
}

// Len returns the number of packed values.
func (v *Vector) Len() uint64 { return v.n }

// Width returns the per-slot bit width.
func (v *Vector) Width() uint { return v.width }

// Access returns the i-th value.
func (v *Vector) Access(i uint64) uint64 {
	return v.bv.GetBits(i*uint64(v.width), v.width)
}

// MinWidth returns the minimum bit width able to represent every value in
// [0, maxValue], with a floor of 1 bit (an all-zero vector still needs a
// nominal width to be addressable).
func MinWidth(maxValue uint64) uint {
	w := uint(0)
	for (uint64(1) << w) <= maxValue {
		w++
	}
	if w == 0 {
		w = 1
	}
	return w
}
