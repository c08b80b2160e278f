package compact

import "github.com/tongrams-go/tongrams/serialize"

// Bits returns the vector's packed on-disk size in bits.
func (v *Vector) Bits() uint64 { return uint64(v.width) * v.n }

// Save writes v's scalar fields and packed bit vector via w, per spec.md §6.
func (v *Vector) Save(w *serialize.Writer) {
	w.WriteUint64(uint64(v.width))
	w.WriteUint64(v.n)
	w.WriteBitVector(v.bv)
}

// LoadVector reads back a Vector written by Save.
func LoadVector(r *serialize.Reader) (*Vector, error) {
	width, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	bv, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	return &Vector{bv: bv, width: uint(width), n: n}, nil
}

// Bits returns the packed on-disk size in bits.
func (v *PairVector) Bits() uint64 { return uint64(v.keyWidth+v.valWidth) * v.n }

// Save writes v's scalar fields and packed bit vector via w.
func (v *PairVector) Save(w *serialize.Writer) {
	w.WriteUint64(uint64(v.keyWidth))
	w.WriteUint64(uint64(v.valWidth))
	w.WriteUint64(v.n)
	w.WriteBitVector(v.bv)
}

// LoadPairVector reads back a PairVector written by Save.
func LoadPairVector(r *serialize.Reader) (*PairVector, error) {
	keyWidth, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	valWidth, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	bv, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	return &PairVector{bv: bv, keyWidth: uint(keyWidth), valWidth: uint(valWidth), n: n}, nil
}

// Bits returns the packed on-disk size in bits.
func (v *TripleVector) Bits() uint64 { return uint64(v.keyWidth+v.val1Width+v.val2Width) * v.n }

// Save writes v's scalar fields and packed bit vector via w.
func (v *TripleVector) Save(w *serialize.Writer) {
	w.WriteUint64(uint64(v.keyWidth))
	w.WriteUint64(uint64(v.val1Width))
	w.WriteUint64(uint64(v.val2Width))
	w.WriteUint64(v.n)
	w.WriteBitVector(v.bv)
}

// LoadTripleVector reads back a TripleVector written by Save.
func LoadTripleVector(r *serialize.Reader) (*TripleVector, error) {
	keyWidth, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	val1Width, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	val2Width, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	bv, err := r.ReadBitVector()
	if err != nil {
		return nil, err
	}
	return &TripleVector{bv: bv, keyWidth: uint(keyWidth), val1Width: uint(val1Width), val2Width: uint(val2Width), n: n}, nil
}
