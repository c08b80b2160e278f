// Package trie implements the succinct n-gram trie of spec.md §3/§4.6/§4.7:
// a forward count model supporting lookup(gram) -> count, and a backward
// (reversed) probability model supporting score(state, word) with Katz
// back-off composition.
package trie

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tongrams-go/tongrams/mapper"
	"github.com/tongrams-go/tongrams/sortedarray"
	"github.com/tongrams-go/tongrams/valuetable"
	"github.com/tongrams-go/tongrams/vocab"
)

// ErrNotFound is returned by Lookup for a gram absent from the trie.
var ErrNotFound = errors.New("trie: not found")

// CountModel is the forward trie of spec.md §4.7 ("lookup(gram)"): each
// order's sorted array stores raw-token-prefix order, and counts are
// recovered through a per-order distinct-count table.
type CountModel struct {
	Order          int
	RemappingOrder int
	Vocab          *vocab.CountVocabulary
	// Orders[j] holds the sorted array for (j+2)-grams, j = 0..Order-2.
	Orders []*sortedarray.CountOrder
	// DistinctCounts[0] is the unigram table; DistinctCounts[j] for j>=1
	// matches Orders[j-1].
	DistinctCounts []*valuetable.DistinctCounts
	// UnigramRanks holds each vocabulary id's distinct-count rank into
	// DistinctCounts[0].
	UnigramRanks []uint32
	mapper       mapper.QueryMapper
}

// NewCountModel assembles a CountModel from its built components.
func NewCountModel(order, remappingOrder int, v *vocab.CountVocabulary, orders []*sortedarray.CountOrder, distinctCounts []*valuetable.DistinctCounts, unigramRanks []uint32) (*CountModel, error) {
	if len(orders) != order-1 {
		return nil, fmt.Errorf("trie: expected %d non-unigram orders, got %d", order-1, len(orders))
	}
	if len(distinctCounts) != order {
		return nil, fmt.Errorf("trie: expected %d distinct-count tables, got %d", order, len(distinctCounts))
	}
	return &CountModel{
		Order:          order,
		RemappingOrder: remappingOrder,
		Vocab:          v,
		Orders:         orders,
		DistinctCounts: distinctCounts,
		UnigramRanks:   unigramRanks,
		mapper:         mapper.Select(remappingOrder),
	}, nil
}

// Lookup returns the count of gram (whitespace-tokenized), or ErrNotFound
// if gram (or any of its tokens) is absent, per spec.md §4.7.
func (m *CountModel) Lookup(gram string) (uint64, error) {
	tokens := bytes.Fields([]byte(gram))
	k := len(tokens)
	if k == 0 || k > m.Order {
		return 0, ErrNotFound
	}

	ids := make([]uint64, k)
	for i, tok := range tokens {
		id, err := m.Vocab.Lookup(tok)
		if err != nil {
			return 0, ErrNotFound
		}
		ids[i] = id
	}

	if k == 1 {
		rank := m.UnigramRanks[ids[0]]
		return m.DistinctCounts[0].Access(rank), nil
	}

	pos := ids[0]
	var r sortedarray.Range
	for i := 1; i < k; i++ {
		r = m.Orders[i-1].Range(pos)
		targetID, ok := m.resolveTargetID(ids, i, r)
		if !ok {
			return 0, ErrNotFound
		}
		p, err := m.Orders[i-1].Position(r, targetID)
		if err != nil {
			return 0, ErrNotFound
		}
		pos = p
	}
	rank := m.Orders[k-2].CountRank(pos)
	return m.DistinctCounts[k-1].Access(uint32(rank)), nil
}

// resolveTargetID applies context remapping (if enabled and applicable at
// this depth) to obtain the id that must be searched for at step i, per
// spec.md §4.2/§4.6 step 3.
func (m *CountModel) resolveTargetID(ids []uint64, i int, _ sortedarray.Range) (uint64, bool) {
	k := i + 1
	if m.RemappingOrder == 0 || k <= m.RemappingOrder+1 {
		return ids[i], true
	}
	ranker, ctxRange, ok := m.contextRange(ids, i)
	if !ok {
		return 0, false
	}
	return m.mapper.Map(ranker, ctxRange.Begin, ctxRange.End, ids[i])
}

// contextRange performs the shallow secondary descent to locate the
// sorted children of the remappingOrder-length context immediately
// preceding ids[i], per spec.md §4.2 ("position within the sorted
// children of its (k-r)..(k-1)-gram context").
func (m *CountModel) contextRange(ids []uint64, i int) (mapper.LocalRanker, sortedarray.Range, bool) {
	r := m.RemappingOrder
	start := i - r
	pos2 := ids[start]
	for t := 1; t < r; t++ {
		rr := m.Orders[t-1].Range(pos2)
		p, err := m.Orders[t-1].Position(rr, ids[start+t])
		if err != nil {
			return nil, sortedarray.Range{}, false
		}
		pos2 = p
	}
	ranker := m.Orders[r-1]
	return ranker, ranker.Range(pos2), true
}
