package seqcodec

import (
	"github.com/tongrams-go/tongrams/bitvector"
	"github.com/tongrams-go/tongrams/serialize"
)

// Bits returns the sequence's on-disk size in bits (the select index over
// starts is rebuilt on Load, not stored).
func (ic *IndexedCodewords) Bits() uint64 { return ic.bits.Len() + ic.starts.Len() }

// Save writes ic's scalar field and bit vectors via w.
func (ic *IndexedCodewords) Save(w *serialize.Writer) {
	w.WriteUint64(ic.n)
	w.WriteBitVector(ic.bits)
	w.WriteBitVector(ic.starts)
}

// LoadIndexedCodewords reads back an IndexedCodewords written by Save.
func LoadIndexedCodewords(r *serialize.Reader) (*IndexedCodewords, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	bits, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	starts, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	ic := &IndexedCodewords{bits: bits, starts: starts, n: n}
	ic.startsSel = bitvector.BuildDarray(starts, true)
	return ic, nil
}
