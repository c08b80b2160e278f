package serialize

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer accumulates the deterministic little-endian component encoding
// of spec.md §6: scalar fields as fixed-width words, variable buffers
// length-prefixed, with a CRC-32 trailer appended by Finish.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// WriteByte appends a single byte (the header, typically).
func (w *Writer) WriteByte(b byte) { w.buf.WriteByte(b) }

// WriteUint64 appends v as a little-endian 8-byte word.
func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf.Write(tmp[:])
}

// WriteUint32 appends v as a little-endian 4-byte word.
func (w *Writer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf.Write(tmp[:])
}

// WriteFloat32 appends v as its IEEE-754 bit pattern, little-endian.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteBuffer appends data prefixed by its length in bytes.
func (w *Writer) WriteBuffer(data []byte) {
	w.WriteUint64(uint64(len(data)))
	w.buf.Write(data)
}

// WriteUint64Slice appends a length-prefixed sequence of uint64 words.
func (w *Writer) WriteUint64Slice(values []uint64) {
	w.WriteUint64(uint64(len(values)))
	for _, v := range values {
		w.WriteUint64(v)
	}
}

// Finish appends the CRC-32 trailer over everything written so far and
// returns the complete serialized buffer.
func (w *Writer) Finish() []byte {
	sum := Checksum(w.buf.Bytes())
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], sum)
	w.buf.Write(tmp[:])
	return w.buf.Bytes()
}
