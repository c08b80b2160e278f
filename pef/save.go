package pef

import (
	"github.com/tongrams-go/tongrams/compact"
	"github.com/tongrams-go/tongrams/ef"
	"github.com/tongrams-go/tongrams/serialize"
)

// Bits returns the sequence's on-disk size in bits.
func (s *Sequence) Bits() uint64 {
	total := s.upperBounds.Bits()
	for _, p := range s.partitions {
		total += 64 + p.seq.Bits()
	}
	return total
}

// Save writes s via w: scalar fields, then each partition's base and EF
// block in order, then the outer upper-bounds vector, per spec.md §6.
func (s *Sequence) Save(w *serialize.Writer) {
	w.WriteUint64(s.n)
	w.WriteUint64(s.u)
	w.WriteUint64(uint64(s.partBits))
	if s.n == 0 {
		return
	}
	w.WriteUint64(uint64(len(s.partitions)))
	for _, p := range s.partitions {
		w.WriteUint64(p.base)
		p.seq.Save(w)
	}
	s.upperBounds.Save(w)
}

// Load reads back a Sequence written by Save.
func Load(r *serialize.Reader) (*Sequence, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	u, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	partBitsRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	s := &Sequence{n: n, u: u, partBits: uint(partBitsRaw)}
	if n == 0 {
		return s, nil
	}
	numParts, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	s.partitions = make([]partition, numParts)
	for i := range s.partitions {
		base, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		seq, err := ef.Load(r)
		if err != nil {
			return nil, err
		}
		s.partitions[i] = partition{base: base, seq: seq}
	}
	ub, err := compact.LoadVector(r)
	if err != nil {
		return nil, err
	}
	s.upperBounds = ub
	return s, nil
}
