package serialize

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTruncated is returned when a Reader runs out of bytes mid-field.
var ErrTruncated = errors.New("serialize: truncated input")

// ErrChecksumMismatch is returned by VerifyTrailer when the trailing
// CRC-32 does not match the payload.
var ErrChecksumMismatch = errors.New("serialize: checksum mismatch")

// Reader walks a buffer produced by Writer.Finish.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential decoding.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// VerifyTrailer checks the last 4 bytes of the buffer passed to NewReader
// against the CRC-32 of everything preceding them, then truncates the
// trailer off so subsequent reads see only the payload.
func (r *Reader) VerifyTrailer() error {
	if len(r.data) < 4 {
		return ErrTruncated
	}
	payload := r.data[:len(r.data)-4]
	want := binary.LittleEndian.Uint32(r.data[len(r.data)-4:])
	if Checksum(payload) != want {
		return ErrChecksumMismatch
	}
	r.data = payload
	return nil
}

func (r *Reader) need(n int) error {
	if r.pos+n > len(r.data) {
		return ErrTruncated
	}
	return nil
}

// ReadByte reads a single byte (the header, typically).
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint64 reads a little-endian 8-byte word.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadUint32 reads a little-endian 4-byte word.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadFloat32 reads an IEEE-754 bit pattern, little-endian.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadBuffer reads a length-prefixed byte buffer.
func (r *Reader) ReadBuffer() ([]byte, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n)); err != nil {
		return nil, fmt.Errorf("serialize: buffer of %d bytes: %w", n, err)
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return buf, nil
}

// ReadUint64Slice reads a length-prefixed sequence of uint64 words.
func (r *Reader) ReadUint64Slice() ([]uint64, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
