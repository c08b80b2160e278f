package mph

import (
	"github.com/tongrams-go/tongrams/compact"
	"github.com/tongrams-go/tongrams/serialize"
	"github.com/will-rowe/boomphf"
)

// Bits returns the table's on-disk size in bits: the packed slot vector
// plus one 64-bit word per key for the hashes the MPH is rebuilt from.
func (t *Table) Bits() uint64 { return t.slots.Bits() + 64*uint64(len(t.hashes)) }

// VerifyKeyWidth returns the bit width of the stored per-slot verification
// hash, per spec.md §6's hash-key-bytes header field.
func (t *Table) VerifyKeyWidth() uint { return t.slots.KeyWidth() }

// Save writes t via w. The boomphf minimal-perfect-hash function itself
// is not serialized: it is a deterministic function of (gamma, hashes),
// so Load rebuilds it from the saved hashes rather than persisting its
// internal tables, per spec.md §6's "hash models" component.
func (t *Table) Save(w *serialize.Writer) {
	w.WriteUint64(t.n)
	w.WriteUint64(t.salt)
	w.WriteUint64Slice(t.hashes)
	t.slots.Save(w)
}

// LoadTable reads back a Table written by Save.
func LoadTable(r *serialize.Reader) (*Table, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	salt, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	hashes, err := r.ReadUint64Slice()
	if err != nil {
		return nil, err
	}
	slots, err := compact.LoadPairVector(r)
	if err != nil {
		return nil, err
	}
	var mphf *boomphf.H
	if n > 0 {
		mphf = boomphf.New(defaultGamma, hashes)
	}
	return &Table{mphf: mphf, slots: slots, n: n, salt: salt, hashes: hashes}, nil
}

// Bits returns the table's on-disk size in bits.
func (t *PairTable) Bits() uint64 { return t.slots.Bits() + 64*uint64(len(t.hashes)) }

// VerifyKeyWidth returns the bit width of the stored per-slot verification
// hash.
func (t *PairTable) VerifyKeyWidth() uint { return t.slots.KeyWidth() }

// Save writes t via w, mirroring Table.Save.
func (t *PairTable) Save(w *serialize.Writer) {
	w.WriteUint64(t.n)
	w.WriteUint64(t.salt)
	w.WriteUint64Slice(t.hashes)
	t.slots.Save(w)
}

// LoadPairTable reads back a PairTable written by Save.
func LoadPairTable(r *serialize.Reader) (*PairTable, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	salt, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	hashes, err := r.ReadUint64Slice()
	if err != nil {
		return nil, err
	}
	slots, err := compact.LoadTripleVector(r)
	if err != nil {
		return nil, err
	}
	var mphf *boomphf.H
	if n > 0 {
		mphf = boomphf.New(defaultGamma, hashes)
	}
	return &PairTable{mphf: mphf, slots: slots, n: n, salt: salt, hashes: hashes}, nil
}
