package sortedarray

import "github.com/tongrams-go/tongrams/ef"

// ParentGroup is one (k-1)-gram's children at order k, already grouped
// and sorted by the caller (an upstream parser/iterator does the
// parent-context matching spec.md §4.6 describes as "advancing the
// (k-1)-pointer until it matches P"; external-memory sorting itself is
// out of scope per spec.md §1). Every (k-1)-gram must contribute exactly
// one ParentGroup, even if TokenIDs is empty — this is what keeps
// pointers_k at exactly n_{k-1}+1 entries (spec.md §9 open question (b)).
type ParentGroup struct {
	// TokenIDs holds each child's raw token id (or, under context
	// remapping, its remapped local rank), strictly increasing within the
	// group. BuildGramsAndPointers offsets these by the running maximum of
	// prior blocks so the concatenated grams_k sequence is globally
	// non-decreasing (spec.md §3), the same base Order.Position recovers
	// via GramCodec.UpperBound.
	TokenIDs []uint64
	// Values holds the per-child raw value this order stores (a count,
	// for count models) in the same order as TokenIDs; callers that only
	// need grams/pointers (e.g. intermediate non-terminal prob orders
	// that quantize ranks in bulk afterward) may leave Values nil.
	Values []uint64
}

// BuildGramsAndPointers lays out grams_k (the concatenated, globally
// monotone token-id sequence) and pointers_k (the EF sequence of child
// range starts, one entry per parent plus a sentinel) from parent-grouped
// input, per spec.md §4.6.
func BuildGramsAndPointers(groups []ParentGroup) (values []uint64, pointers *ef.Sequence, err error) {
	pointerValues := make([]uint64, 0, len(groups)+1)
	offset := uint64(0)
	pointerValues = append(pointerValues, 0)
	// base is the running maximum stored value of all prior blocks: adding
	// it to each block's own (raw or remapped) local ids is what keeps the
	// concatenated grams_k sequence globally non-decreasing even though
	// each block's own ids independently start near zero, per spec.md §3's
	// pointer/base reconstruction in Order.Position.
	base := uint64(0)
	for _, g := range groups {
		for _, id := range g.TokenIDs {
			values = append(values, base+id)
		}
		if n := len(g.TokenIDs); n > 0 {
			base += g.TokenIDs[n-1]
		}
		offset += uint64(len(g.TokenIDs))
		pointerValues = append(pointerValues, offset)
	}
	pointers, err = ef.Build(pointerValues)
	if err != nil {
		return nil, nil, err
	}
	return values, pointers, nil
}

// FlattenValues concatenates each group's Values in the same order
// BuildGramsAndPointers concatenates TokenIDs, so the two line up
// position-for-position when building the rank table.
func FlattenValues(groups []ParentGroup) []uint64 {
	var out []uint64
	for _, g := range groups {
		out = append(out, g.Values...)
	}
	return out
}
