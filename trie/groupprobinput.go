package trie

import (
	"fmt"
	"sort"
)

// GroupProbGrams is GroupCountGrams's counterpart for a prob/back-off
// model: it groups order-k reversed (successor-context) id tuples under
// their (k-1)-length parent tuple, per spec.md §4.6, carrying each
// child's log10 probability and (if present) log10 back-off alongside
// its token id. prevOrderGrams must be in the exact position order the
// previous order's ProbParentGroup set concatenated into, same as
// GroupCountGrams.
func GroupProbGrams(prevOrderGrams [][]uint64, curGrams [][]uint64, probs, backoffs []float32, hasBackoff bool) ([]ProbParentGroup, [][]uint64, error) {
	if len(curGrams) != len(probs) {
		return nil, nil, fmt.Errorf("trie: grams/probs length mismatch (%d vs %d)", len(curGrams), len(probs))
	}
	if hasBackoff && len(curGrams) != len(backoffs) {
		return nil, nil, fmt.Errorf("trie: grams/backoffs length mismatch (%d vs %d)", len(curGrams), len(backoffs))
	}

	parentIndex := make(map[string]int, len(prevOrderGrams))
	for i, g := range prevOrderGrams {
		parentIndex[tupleKey(g)] = i
	}

	order := make([]int, len(curGrams))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return lessTuple(curGrams[order[a]], curGrams[order[b]])
	})

	groups := make([]ProbParentGroup, len(prevOrderGrams))
	for _, idx := range order {
		g := curGrams[idx]
		if len(g) < 2 {
			return nil, nil, fmt.Errorf("trie: gram of order < 2 passed to GroupProbGrams")
		}
		parentKey := tupleKey(g[:len(g)-1])
		pi, ok := parentIndex[parentKey]
		if !ok {
			return nil, nil, fmt.Errorf("trie: parent context %v not found in previous order", g[:len(g)-1])
		}
		groups[pi].TokenIDs = append(groups[pi].TokenIDs, g[len(g)-1])
		groups[pi].Probs = append(groups[pi].Probs, probs[idx])
		if hasBackoff {
			groups[pi].Backoffs = append(groups[pi].Backoffs, backoffs[idx])
		}
	}

	var flat [][]uint64
	for pi, g := range groups {
		for _, tokenID := range g.TokenIDs {
			tuple := make([]uint64, len(prevOrderGrams[pi])+1)
			copy(tuple, prevOrderGrams[pi])
			tuple[len(tuple)-1] = tokenID
			flat = append(flat, tuple)
		}
	}
	return groups, flat, nil
}
