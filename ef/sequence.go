// Package ef implements the classical Elias-Fano monotone sequence codec
// and its fast-EF extension (a per-range sampled search tree for long
// ranges), per spec.md §4.2.
package ef

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tongrams-go/tongrams/bitvector"
)

// ErrNotFound is returned by Find when the requested id has no matching
// position within the given range.
var ErrNotFound = errors.New("ef: not found")

// Range identifies a contiguous span of positions within a sequence, the
// children of a single parent in the trie.
type Range struct {
	Begin, End uint64
}

// Sequence is an Elias-Fano encoding of a sorted sequence of n
// non-negative integers with universe U.
type Sequence struct {
	n, u    uint64
	lowBits uint
	low     *bitvector.BitVector
	high    *bitvector.BitVector
	highSel *bitvector.Darray // select1 over high, for random access / find
}

// Build constructs an Elias-Fano sequence over the sorted, non-decreasing
// input values (universe U = values[n-1]+1, or 0 if n==0).
func Build(values []uint64) (*Sequence, error) {
	n := uint64(len(values))
	if n == 0 {
		return &Sequence{n: 0, u: 0}, nil
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return nil, fmt.Errorf("ef: input not sorted at index %d", i)
		}
	}
	u := values[n-1] + 1

	l := lowWidth(u, n)
	lowBuilder := bitvector.NewBuilder(n * uint64(l))
	highLen := n + (u >> l) + 1
	highBuilder := bitvector.NewBuilder(highLen)
	highBuilder.Reserve(highLen)

	for i, v := range values {
		if l > 0 {
			lowBuilder.PushBits(v&lowMask(l), l)
		}
		highPos := (v >> l) + uint64(i)
		highBuilder.Set(highPos)
	}
	high := highBuilder.Build()

	s := &Sequence{
		n:       n,
		u:       u,
		lowBits: l,
		low:     lowBuilder.Build(),
		high:    high,
	}
	s.highSel = bitvector.BuildDarray(high, true)
	return s, nil
}

func lowWidth(u, n uint64) uint {
	if n == 0 || u <= n {
		return 0
	}
	l := uint(0)
	for (n << (l + 1)) <= u {
		l++
	}
	return l
}

func lowMask(w uint) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// Len returns the number of elements.
func (s *Sequence) Len() uint64 { return s.n }

// Universe returns U.
func (s *Sequence) Universe() uint64 { return s.u }

// Access returns the i-th value.
func (s *Sequence) Access(i uint64) uint64 {
	highPos, _ := s.highSel.Select(i)
	high := highPos - i
	if s.lowBits == 0 {
		return high
	}
	low := s.low.GetBits(i*uint64(s.lowBits), s.lowBits)
	return (high << s.lowBits) | low
}

// UpperBound returns the value stored at the last element of [0, pos), or
// 0 if pos == 0 — the "running upper bound at r.begin-1" spec.md §4.2
// describes. Callers that maintain a parent/child layout (package
// sortedarray) use this to turn a local child id into the absolute value
// Find searches for; Find itself operates on absolute values only.
func (s *Sequence) UpperBound(pos uint64) uint64 {
	if pos == 0 {
		return 0
	}
	return s.Access(pos - 1)
}

// Find locates the position p in [r.Begin, r.End) such that seq[p] ==
// target, per the concrete find() examples in spec.md §8 scenario 5.
func (s *Sequence) Find(r Range, target uint64) (uint64, error) {
	// Binary search within the range: values are strictly increasing.
	lo, hi := r.Begin, r.End
	for lo < hi {
		mid := lo + (hi-lo)/2
		v := s.Access(mid)
		if v < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < r.End && s.Access(lo) == target {
		return lo, nil
	}
	return 0, ErrNotFound
}

// NextGEQ returns the position of the first element >= x within
// [rangeStart, rangeEnd), or ErrNotFound.
func (s *Sequence) NextGEQ(x uint64, rangeStart, rangeEnd uint64) (uint64, error) {
	lo, hi := rangeStart, rangeEnd
	pos := sort.Search(int(hi-lo), func(i int) bool {
		return s.Access(lo+uint64(i)) >= x
	})
	p := lo + uint64(pos)
	if p >= rangeEnd {
		return 0, ErrNotFound
	}
	return p, nil
}

// Iterator walks the sequence forward from a starting position.
type Iterator struct {
	s   *Sequence
	pos uint64
}

// At returns an iterator positioned at i.
func (s *Sequence) At(i uint64) *Iterator { return &Iterator{s: s, pos: i} }

// Next returns the current value and advances, or false at end.
func (it *Iterator) Next() (uint64, bool) {
	if it.pos >= it.s.n {
		return 0, false
	}
	v := it.s.Access(it.pos)
	it.pos++
	return v, true
}
