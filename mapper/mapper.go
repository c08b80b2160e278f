// Package mapper implements the optional context-remapping scheme of
// spec.md §4.2/§4.6: rewriting the last token id of a k-gram (k > r+1)
// into its local rank within the sorted children of its (k-r)-gram
// context, so the stored token-id universe for grams_k shrinks to the
// width of the widest sibling range instead of the whole vocabulary.
package mapper

// LocalRanker resolves a raw token id to its local rank within a child
// range — the order-r sorted array's position() followed by subtracting
// the range's begin offset. *sortedarray.Order satisfies this directly.
type LocalRanker interface {
	LocalRank(rangeBegin, rangeEnd, id uint64) (rank uint64, ok bool)
}

// QueryMapper rewrites a token id looked up via the vocabulary into the
// id that must be searched for in grams_k, dispatched once at Open based
// on the stored remapping order rather than branching per lookup.
type QueryMapper interface {
	// Map returns the id to search for in grams_k given the raw token id
	// and (for the remapping path) the range of the (k-r)-gram context
	// within order r's sorted array. ok is false when the raw token does
	// not occur in that context at all, which propagates as not-found.
	Map(ranker LocalRanker, rangeBegin, rangeEnd, rawID uint64) (id uint64, ok bool)
}

// IdentityMapper is used when remapping_order == 0: grams_k stores raw
// token ids directly, so mapping is the identity.
type IdentityMapper struct{}

// Map implements QueryMapper.
func (IdentityMapper) Map(_ LocalRanker, _, _, rawID uint64) (uint64, bool) {
	return rawID, true
}

// ContextMapper is used when remapping_order >= 1: grams_k stores each
// token's local rank within its (k-r)-gram context's sorted children,
// so a query must first locate that same local rank before searching
// grams_k itself, per spec.md §4.6 step 3.
type ContextMapper struct{}

// Map implements QueryMapper.
func (ContextMapper) Map(ranker LocalRanker, rangeBegin, rangeEnd, rawID uint64) (uint64, bool) {
	return ranker.LocalRank(rangeBegin, rangeEnd, rawID)
}

// Select returns IdentityMapper for remappingOrder == 0 and ContextMapper
// otherwise, per spec.md §4.2 ("remapping order r in {0,1,2}").
func Select(remappingOrder int) QueryMapper {
	if remappingOrder == 0 {
		return IdentityMapper{}
	}
	return ContextMapper{}
}
