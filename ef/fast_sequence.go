package ef

import "math/bits"

// fastThreshold is the range-length boundary above which a sample tree is
// built, per spec.md §4.2 and the reproducible-build-layout contract of
// spec.md §9(c): ranges shorter than this go straight to binary search.
const fastThreshold = 128

// FastSequence augments a Sequence with a per-range sampled search tree for
// long parent ranges (length >= fastThreshold), so Find on a hot, wide
// range does not pay for a full binary search over the whole range.
type FastSequence struct {
	*Sequence
	samples map[uint64][]uint64 // keyed by range.Begin; BFS-ordered midpoint values
}

// BuildFast builds an Elias-Fano sequence over values and attaches sample
// trees for every range in ranges whose length is >= fastThreshold. ranges
// must partition [0, len(values)) into the parent-contiguous children
// ranges the sorted array assigns at this order.
func BuildFast(values []uint64, ranges []Range) (*FastSequence, error) {
	base, err := Build(values)
	if err != nil {
		return nil, err
	}
	fs := &FastSequence{Sequence: base, samples: make(map[uint64][]uint64, len(ranges))}
	for _, r := range ranges {
		n := r.End - r.Begin
		if n < fastThreshold {
			continue
		}
		height := sampleHeight(n)
		fs.samples[r.Begin] = buildSampleTree(base, r, height)
	}
	return fs, nil
}

func sampleHeight(rangeLen uint64) uint {
	h := bits.Len64(rangeLen)
	if h <= 7 {
		return 0
	}
	return uint(h) - 7
}

// buildSampleTree lays out, in BFS order, the values at the midpoints a
// binary search over [begin,end) would visit, down to `height` levels.
func buildSampleTree(s *Sequence, r Range, height uint) []uint64 {
	if height == 0 {
		return nil
	}
	type span struct{ lo, hi uint64 }
	var out []uint64
	level := []span{{r.Begin, r.End}}
	for lvl := uint(0); lvl < height; lvl++ {
		var next []span
		for _, sp := range level {
			if sp.lo >= sp.hi {
				out = append(out, 0)
				next = append(next, span{sp.lo, sp.lo}, span{sp.lo, sp.lo})
				continue
			}
			mid := sp.lo + (sp.hi-sp.lo)/2
			out = append(out, s.Access(mid))
			next = append(next, span{sp.lo, mid}, span{mid + 1, sp.hi})
		}
		level = next
	}
	return out
}

// Find overrides Sequence.Find: for ranges with a sample tree, it uses the
// samples to narrow the search window before delegating to the exact
// binary search; short ranges go straight to Sequence.Find. Both paths
// return identical results — the sample tree is purely an optimization of
// the same predicate Sequence.Find evaluates.
func (fs *FastSequence) Find(r Range, target uint64) (uint64, error) {
	tree, ok := fs.samples[r.Begin]
	if !ok || len(tree) == 0 {
		return fs.Sequence.Find(r, target)
	}

	lo, hi := r.Begin, r.End
	idx := 0
	height := sampleHeight(r.End - r.Begin)
	for lvl := uint(0); lvl < height && idx < len(tree); lvl++ {
		if lo >= hi {
			break
		}
		mid := lo + (hi-lo)/2
		v := tree[idx]
		if v == target {
			if fs.Access(mid) == target {
				return mid, nil
			}
			break
		}
		if v < target {
			lo = mid + 1
			idx = 2*idx + 2
		} else {
			hi = mid
			idx = 2*idx + 1
		}
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		v := fs.Access(mid)
		if v < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < r.End && fs.Access(lo) == target {
		return lo, nil
	}
	return 0, ErrNotFound
}
