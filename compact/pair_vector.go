package compact

import "github.com/tongrams-go/tongrams/bitvector"

// PairVector packs a (key, value) tuple per slot, back to back, each field
// with its own fixed width. Used for single-valued MPH slots: key is the
// verification hash, value is the payload rank.
type PairVector struct {
	bv                  *bitvector.BitVector
	keyWidth, valWidth  uint
	n                   uint64
}

// PairBuilder accumulates (key, value) tuples.
type PairBuilder struct {
	bb                  *bitvector.Builder
	keyWidth, valWidth  uint
	n                   uint64
}

// NewPairBuilder returns a builder for n slots of (keyWidth, valWidth) bits.
func NewPairBuilder(keyWidth, valWidth uint, hintN uint64) *PairBuilder {
	return &PairBuilder{
		bb:       bitvector.NewBuilder((keyWidth + valWidth) * hintN),
		keyWidth: keyWidth,
		valWidth: valWidth,
	}
}

// PushBack appends one (key, value) slot.
func (b *PairBuilder) PushBack(key, value uint64) {
	b.bb.PushBits(key, b.keyWidth)
	b.bb.PushBits(value, b.valWidth)
	b.n++
}

// Build seals the builder.
func (b *PairBuilder) Build() *PairVector {
	return &PairVector{bv: b.bb.Build(), keyWidth: b.keyWidth, valWidth: b.valWidth, n: b.n}
}

// Len returns the number of slots.
func (v *PairVector) Len() uint64 { return v.n }

// KeyWidth returns the bit width of the key field.
func (v *PairVector) KeyWidth() uint { return v.keyWidth }

// ValueWidth returns the bit width of the value field.
func (v *PairVector) ValueWidth() uint { return v.valWidth }

// Access returns the (key, value) tuple stored at slot i.
func (v *PairVector) Access(i uint64) (key, value uint64) {
	stride := uint64(v.keyWidth + v.valWidth)
	pos := i * stride
	key = v.bv.GetBits(pos, v.keyWidth)
	value = v.bv.GetBits(pos+uint64(v.keyWidth), v.valWidth)
	return key, value
}

// TripleVector packs a (key, value1, value2) triplet per slot, used for
// double-valued MPH slots (the prob-trie vocabulary, carrying id and
// packed (prob, back-off)).
type TripleVector struct {
	bv                            *bitvector.BitVector
	keyWidth, val1Width, val2Width uint
	n                             uint64
}

// TripleBuilder accumulates (key, value1, value2) triplets.
type TripleBuilder struct {
	bb                            *bitvector.Builder
	keyWidth, val1Width, val2Width uint
	n                             uint64
}

// NewTripleBuilder returns a builder for n slots of the given widths.
func NewTripleBuilder(keyWidth, val1Width, val2Width uint, hintN uint64) *TripleBuilder {
	return &TripleBuilder{
		bb:        bitvector.NewBuilder((keyWidth + val1Width + val2Width) * hintN),
		keyWidth:  keyWidth,
		val1Width: val1Width,
		val2Width: val2Width,
	}
}

// PushBack appends one (key, value1, value2) slot.
func (b *TripleBuilder) PushBack(key, value1, value2 uint64) {
	b.bb.PushBits(key, b.keyWidth)
	b.bb.PushBits(value1, b.val1Width)
	b.bb.PushBits(value2, b.val2Width)
	b.n++
}

// Build seals the builder.
func (b *TripleBuilder) Build() *TripleVector {
	return &TripleVector{
		bv: b.bb.Build(), keyWidth: b.keyWidth, val1Width: b.val1Width, val2Width: b.val2Width, n: b.n,
	}
}

// Len returns the number of slots.
func (v *TripleVector) Len() uint64 { return v.n }

// KeyWidth returns the bit width of the key field.
func (v *TripleVector) KeyWidth() uint { return v.keyWidth }

// Access returns the (key, value1, value2) triplet stored at slot i.
func (v *TripleVector) Access(i uint64) (key, value1, value2 uint64) {
	stride := uint64(v.keyWidth + v.val1Width + v.val2Width)
	pos := i * stride
	key = v.bv.GetBits(pos, v.keyWidth)
	value1 = v.bv.GetBits(pos+uint64(v.keyWidth), v.val1Width)
	value2 = v.bv.GetBits(pos+uint64(v.keyWidth+v.val1Width), v.val2Width)
	return key, value1, value2
}
