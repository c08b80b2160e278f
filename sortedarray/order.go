// Package sortedarray implements the per-order sorted array of spec.md
// §3/§4.6: parallel grams_k/ranks_k/pointers_k structures such that the
// children of any parent occupy a contiguous range, plus the query
// primitives range/position/count_rank/prob_backoff_rank.
package sortedarray

import (
	"errors"
	"fmt"

	"github.com/tongrams-go/tongrams/ef"
)

// ErrNotFound is the routine not-found sentinel for Position.
var ErrNotFound = errors.New("sortedarray: not found")

// ErrMalformedInput is returned by builders when the (k-1)-gram stream is
// exhausted before a parent context is found, per spec.md §4.6 step 2.
var ErrMalformedInput = errors.New("sortedarray: malformed input")

// Range identifies a contiguous span of child positions at some order.
type Range = ef.Range

// GramCodec is the minimal surface a grams_k codec exposes: random
// access, UpperBound (the running maximum of the previous block, used to
// turn a local id into the absolute value Find searches for) and Find
// itself. ef.Sequence, ef.FastSequence and pef.Sequence all satisfy it.
type GramCodec interface {
	Len() uint64
	Access(i uint64) uint64
	UpperBound(pos uint64) uint64
	Find(r Range, target uint64) (uint64, error)
}

// Order holds the grams_k/pointers_k pair for one order k (2 <= k <= N,
// the terminal order included), independent of whether ranks are count-ranks or
// prob/back-off ranks (those live in CountOrder/ProbOrder below, which
// embed *Order for the shared range/position machinery).
type Order struct {
	Grams    GramCodec // nil for unigrams: the vocabulary is the index
	Pointers *ef.Sequence
	n        uint64 // number of k-grams at this order
}

// NewOrder wraps a built grams/pointers pair. n is the number of k-grams
// (len(grams), or for unigrams the vocabulary size).
func NewOrder(grams GramCodec, pointers *ef.Sequence, n uint64) (*Order, error) {
	if pointers != nil {
		if pointers.Len() == 0 {
			return nil, fmt.Errorf("%w: pointers_k must have n_{k-1}+1 entries", ErrMalformedInput)
		}
		if pointers.Access(pointers.Len()-1) != n {
			return nil, fmt.Errorf("%w: pointers_k.back() (%d) != n_k (%d)",
				ErrMalformedInput, pointers.Access(pointers.Len()-1), n)
		}
	}
	return &Order{Grams: grams, Pointers: pointers, n: n}, nil
}

// Len returns n_k, the number of k-grams at this order.
func (o *Order) Len() uint64 { return o.n }

// Range returns the children range of the (k-1)-gram at position pos,
// i.e. [pointers_k[pos], pointers_k[pos+1]).
func (o *Order) Range(pos uint64) Range {
	return Range{Begin: o.Pointers.Access(pos), End: o.Pointers.Access(pos + 1)}
}

// Position locates the child with the given local id within parent range
// r, returning its absolute position in this order's grams_k, or
// ErrNotFound. id is the raw token id (identity mapping) or the
// context-remapped local rank (see package mapper), chosen by the caller.
// Position is only called for orders k >= 2: for unigrams (k=1) the
// vocabulary itself is the index, per spec.md §3.
func (o *Order) Position(r Range, id uint64) (uint64, error) {
	base := o.Grams.UpperBound(r.Begin)
	pos, err := o.Grams.Find(r, base+id)
	if err != nil {
		return 0, ErrNotFound
	}
	return pos, nil
}

// LocalID returns the id stored at absolute position pos, relative to its
// parent's running upper bound — the inverse of the offset Position
// applies, used when a query needs to recover which child an absolute
// position refers to (e.g. context remapping).
func (o *Order) LocalID(r Range, pos uint64) uint64 {
	base := o.Grams.UpperBound(r.Begin)
	return o.Grams.Access(pos) - base
}

// LocalRank satisfies mapper.LocalRanker: it locates rawID within
// [rangeBegin, rangeEnd) and returns its offset from rangeBegin, the
// local rank a build-time context remapping would have assigned it.
func (o *Order) LocalRank(rangeBegin, rangeEnd, rawID uint64) (uint64, bool) {
	pos, err := o.Position(Range{Begin: rangeBegin, End: rangeEnd}, rawID)
	if err != nil {
		return 0, false
	}
	return pos - rangeBegin, true
}
