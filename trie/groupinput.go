package trie

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tongrams-go/tongrams/sortedarray"
)

// GroupCountGrams turns flat (id-tuple, count) pairs at order k into the
// sortedarray.ParentGroup shape BuildCountModel expects, given the
// previous order's id-tuples in their own sorted-array position order
// (prevOrderGrams[i] is a singleton []uint64{id} for unigrams). This is
// the in-memory equivalent of spec.md §4.6's "parallel stream scan",
// useful for building from already-loaded sources rather than an
// external-memory sorted stream.
// It also returns the full k-length id tuples in the exact order they end
// up concatenated into grams_k (parent blocks in prevOrderGrams order,
// children sorted ascending within each block) — the shape the next
// order up needs as its own prevOrderGrams.
func GroupCountGrams(prevOrderGrams [][]uint64, curGrams [][]uint64, counts []uint64) ([]sortedarray.ParentGroup, [][]uint64, error) {
	if len(curGrams) != len(counts) {
		return nil, nil, fmt.Errorf("trie: grams/counts length mismatch (%d vs %d)", len(curGrams), len(counts))
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

	groups := make([]sortedarray.ParentGroup, len(prevOrderGrams))
	for _, idx := range order {
		g := curGrams[idx]
		if len(g) < 2 {
			return nil, nil, fmt.Errorf("%w: gram of order < 2 passed to GroupCountGrams", sortedarray.ErrMalformedInput)
		}
		parentKey := tupleKey(g[:len(g)-1])
		pi, ok := parentIndex[parentKey]
		if !ok {
			return nil, nil, fmt.Errorf("%w: parent context %v not found in previous order", sortedarray.ErrMalformedInput, g[:len(g)-1])
		}
		groups[pi].TokenIDs = append(groups[pi].TokenIDs, g[len(g)-1])
		groups[pi].Values = append(groups[pi].Values, counts[idx])
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

func tupleKey(ids []uint64) string {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(strconv.FormatUint(id, 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

func lessTuple(a, b []uint64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
