package mph

import (
	"fmt"

	"github.com/tongrams-go/tongrams/compact"
	"github.com/will-rowe/boomphf"
)

// PairTable is a double-valued MPH table: (verification hash, value1,
// value2) per slot. Used for the vocabulary of the prob trie, which
// carries a token id and its packed (prob, back-off) unigram value.
type PairTable struct {
	mphf   *boomphf.H
	slots  *compact.TripleVector
	n      uint64
	salt   uint64
	hashes []uint64 // primaryHash(key)^salt per key in build order, kept to rebuild mphf on Load
}

// BuildPairTable constructs a PairTable over keys with two values per key.
func BuildPairTable(keys [][]byte, values1, values2 []uint64, verifyBits uint) (*PairTable, error) {
	if len(keys) != len(values1) || len(keys) != len(values2) {
		return nil, fmt.Errorf("mph: keys/values length mismatch")
	}
	n := uint64(len(keys))
	mphf, hashes, salt, err := buildMPHF(keys)
	if err != nil {
		return nil, err
	}

	verifyMask := lowMask(verifyBits)
	type slotT struct{ v, v1, v2 uint64 }
	slots := make([]slotT, n)
	for i, k := range keys {
		slot := mphf.Query(primaryHash(k) ^ salt)
		if slot >= n {
			return nil, fmt.Errorf("%w: mphf returned out-of-range slot", ErrBuildFailure)
		}
		slots[slot] = slotT{verifyHash(k) & verifyMask, values1[i], values2[i]}
	}

	w1 := compact.MinWidth(maxOf(values1))
	w2 := compact.MinWidth(maxOf(values2))
	tb := compact.NewTripleBuilder(verifyBits, w1, w2, n)
	for _, s := range slots {
		tb.PushBack(s.v, s.v1, s.v2)
	}

	return &PairTable{mphf: mphf, slots: tb.Build(), n: n, salt: salt, hashes: hashes}, nil
}

// Get looks up key and returns its two stored values.
func (t *PairTable) Get(key []byte) (v1, v2 uint64, ok bool) {
	if t.n == 0 {
		return 0, 0, false
	}
	slot := t.mphf.Query(primaryHash(key) ^ t.salt)
	if slot >= t.n {
		return 0, 0, false
	}
	wantVerify := verifyHash(key) & lowMask(t.slots.KeyWidth())
	gotVerify, a, b := t.slots.Access(slot)
	if gotVerify != wantVerify {
		return 0, 0, false
	}
	return a, b, true
}

// Len returns the number of keys.
func (t *PairTable) Len() uint64 { return t.n }
