package serialize

import "github.com/tongrams-go/tongrams/bitvector"

// WriteBitVector appends bv's bit length and raw words, per spec.md §6
// ("each component writes its scalar fields... then its variable-length
// buffers").
func (w *Writer) WriteBitVector(bv *bitvector.BitVector) {
	w.WriteUint64(bv.Len())
	w.WriteUint64Slice(bv.Words())
}

// ReadBitVector reads back a BitVector written by WriteBitVector.
func (r *Reader) ReadBitVector() (*bitvector.BitVector, error) {
	nbits, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	words, err := r.ReadUint64Slice()
	if err != nil {
		return nil, err
	}
	return bitvector.New(words, nbits)
}
