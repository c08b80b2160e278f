// Package mph provides minimal-perfect-hash tables over byte-string keys:
// a bijection to [0, n) built by treating the hypergraph-peeling MPH
// algorithm as an external black box (per spec.md §4.5, §9), backed here
// by github.com/will-rowe/boomphf, plus the per-slot verification-hash
// discipline that turns the theoretical MPH (undefined on non-keys) into
// a safe lookup for arbitrary query strings.
package mph

import (
	"errors"
	"fmt"

	"github.com/tongrams-go/tongrams/compact"
	"github.com/will-rowe/boomphf"
)

// ErrBuildFailure is returned when MPH construction exceeds its retry
// budget, per spec.md §4.5/§7.
var ErrBuildFailure = errors.New("mph: construction failed after retry budget exhausted")

// ErrNotFound names the not-found condition. Table.Get and PairTable.Get
// report a miss through their boolean result and do not return it.
var ErrNotFound = errors.New("mph: key not found")

const (
	defaultGamma  = 2.0
	maxHashRetries = 32
)

// Table is a single-valued MPH table: (verification hash, value) per slot.
// Used for the unigram vocabulary and MPH-only (count) language models.
type Table struct {
	mphf   *boomphf.H
	slots  *compact.PairVector // (verifyHash, value)
	n      uint64
	salt   uint64
	hashes []uint64 // primaryHash(key)^salt per key in build order, kept to rebuild mphf on Load
}

// BuildTable constructs a Table over keys with one value per key (same
// order). Values are stored at the minimum width that holds the largest
// value; verifyBits bounds the bit width of the stored verification hash
// (commonly 32 or 64, per spec.md §6's hash-key-bytes header field).
func BuildTable(keys [][]byte, values []uint64, verifyBits uint) (*Table, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("mph: keys and values length mismatch (%d vs %d)", len(keys), len(values))
	}
	n := uint64(len(keys))
	mphf, hashes, salt, err := buildMPHF(keys)
	if err != nil {
		return nil, err
	}

	verifyMask := lowMask(verifyBits)
	slots := make([]struct{ v, val uint64 }, n)
	for i, k := range keys {
		slot := mphf.Query(primaryHash(k) ^ salt)
		if slot >= n {
			return nil, fmt.Errorf("%w: mphf returned out-of-range slot", ErrBuildFailure)
		}
		slots[slot] = struct{ v, val uint64 }{verifyHash(k) & verifyMask, values[i]}
	}

	valWidth := compact.MinWidth(maxOf(values))
	pb := compact.NewPairBuilder(verifyBits, valWidth, n)
	for _, s := range slots {
		pb.PushBack(s.v, s.val)
	}

	return &Table{mphf: mphf, slots: pb.Build(), n: n, salt: salt, hashes: hashes}, nil
}

// Get looks up key and returns its stored value. Unknown keys are
// rejected via verification-hash mismatch, per spec.md §4.5.
func (t *Table) Get(key []byte) (uint64, bool) {
	if t.n == 0 {
		return 0, false
	}
	slot := t.mphf.Query(primaryHash(key) ^ t.salt)
	if slot >= t.n {
		return 0, false
	}
	wantVerify := verifyHash(key) & lowMask(t.slots.KeyWidth())
	gotVerify, val := t.slots.Access(slot)
	if gotVerify != wantVerify {
		return 0, false
	}
	return val, true
}

// Len returns the number of keys in the table.
func (t *Table) Len() uint64 { return t.n }

func buildMPHF(keys [][]byte) (*boomphf.H, []uint64, uint64, error) {
	salt := uint64(0)
	for attempt := 0; attempt < maxHashRetries; attempt++ {
		hashes := make([]uint64, len(keys))
		seen := make(map[uint64]struct{}, len(keys))
		collision := false
		for i, k := range keys {
			h := primaryHash(k) ^ salt
			if _, dup := seen[h]; dup {
				collision = true
				break
			}
			seen[h] = struct{}{}
			hashes[i] = h
		}
		if collision {
			salt = rehash(salt, attempt)
			continue
		}
		mphf := boomphf.New(defaultGamma, hashes)
		if mphf == nil {
			salt = rehash(salt, attempt)
			continue
		}
		return mphf, hashes, salt, nil
	}
	return nil, nil, 0, ErrBuildFailure
}

func rehash(salt uint64, attempt int) uint64 {
	salt += uint64(attempt)*0x9e3779b97f4a7c15 + 1
	salt ^= salt >> 33
	salt *= 0xff51afd7ed558ccd
	salt ^= salt >> 33
	return salt
}

func lowMask(w uint) uint64 {
	if w == 0 {
		return 0
	}
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

func maxOf(values []uint64) uint64 {
	var m uint64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
