package ef

import (
	"github.com/tongrams-go/tongrams/bitvector"
	"github.com/tongrams-go/tongrams/serialize"
)

// Bits returns the sequence's on-disk size in bits (low and high bit
// vectors only; the select index is rebuilt on Load, not stored).
func (s *Sequence) Bits() uint64 {
	if s.n == 0 {
		return 0
	}
	return s.low.Len() + s.high.Len()
}

// Save writes s's scalar fields and bit vectors via w, per spec.md §6.
func (s *Sequence) Save(w *serialize.Writer) {
	w.WriteUint64(s.n)
	w.WriteUint64(s.u)
	w.WriteUint64(uint64(s.lowBits))
	if s.n == 0 {
		return
	}
	w.WriteBitVector(s.low)
	w.WriteBitVector(s.high)
}

// Load reads back a Sequence written by Save, rebuilding the select index
// rather than serializing it (it is a pure function of high).
func Load(r *serialize.Reader) (*Sequence, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	u, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	lowBitsRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &Sequence{}, nil
	}
	low, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	high, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	s := &Sequence{n: n, u: u, lowBits: uint(lowBitsRaw), low: low, high: high}
	s.highSel = bitvector.BuildDarray(high, true)
	return s, nil
}
