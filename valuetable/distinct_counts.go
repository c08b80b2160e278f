package valuetable

import "sort"

// DistinctCounts is the count-model value table for one order: the set of
// distinct raw counts observed at that order, sorted to enable binary
// search during build; at query a count-rank maps through it to the raw
// count, per spec.md §3.
type DistinctCounts struct {
	values []uint64
}

// BuildDistinctCounts computes the sorted distinct values of counts and
// returns the table plus the per-input rank (index into the table) for
// each original count, in input order.
func BuildDistinctCounts(counts []uint64) (*DistinctCounts, []uint32) {
	seen := make(map[uint64]struct{}, len(counts))
	for _, c := range counts {
		seen[c] = struct{}{}
	}
	distinct := make([]uint64, 0, len(seen))
	for c := range seen {
		distinct = append(distinct, c)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })

	ranks := make([]uint32, len(counts))
	for i, c := range counts {
		idx := sort.Search(len(distinct), func(j int) bool { return distinct[j] >= c })
		ranks[i] = uint32(idx)
	}
	return &DistinctCounts{values: distinct}, ranks
}

// Access returns the raw count for rank r.
func (d *DistinctCounts) Access(r uint32) uint64 { return d.values[r] }

// Len returns the number of distinct counts.
func (d *DistinctCounts) Len() int { return len(d.values) }
