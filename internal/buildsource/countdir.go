// Package buildsource wires package source's count-file reader into
// package trie's in-memory grouping helper, shared by the tongrams-build
// and tongrams-query command shells.
package buildsource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/sortedarray"
	"github.com/tongrams-go/tongrams/source"
	"github.com/tongrams-go/tongrams/trie"
)

// CountModelFromDir reads `1-grams.sorted.gz`..`<order>-grams.sorted.gz`
// from dir and builds a trie.CountModel, per spec.md §6's count-source
// format.
func CountModelFromDir(cfg *config.BuildConfig, dir string) (*trie.CountModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	unigrams, err := readOrderFile(dir, 1)
	if err != nil {
		return nil, err
	}
	unigramTokens := make([][]byte, len(unigrams))
	unigramCounts := make([]uint64, len(unigrams))
	ids := make(map[string]uint64, len(unigrams))
	prevIDTuples := make([][]uint64, len(unigrams))
	for i, g := range unigrams {
		if len(g.Tokens) != 1 {
			return nil, fmt.Errorf("buildsource: malformed unigram line %v", g.Tokens)
		}
		unigramTokens[i] = []byte(g.Tokens[0])
		unigramCounts[i] = g.Count
		ids[g.Tokens[0]] = uint64(i)
		prevIDTuples[i] = []uint64{uint64(i)}
	}

	higherOrderGroups := make([][]sortedarray.ParentGroup, cfg.Order-1)
	for k := 2; k <= cfg.Order; k++ {
		grams, err := readOrderFile(dir, k)
		if err != nil {
			return nil, err
		}
		curIDTuples := make([][]uint64, len(grams))
		counts := make([]uint64, len(grams))
		for i, g := range grams {
			tuple := make([]uint64, len(g.Tokens))
			for j, tok := range g.Tokens {
				id, ok := ids[tok]
				if !ok {
					return nil, fmt.Errorf("buildsource: token %q at order %d not in vocabulary", tok, k)
				}
				tuple[j] = id
			}
			curIDTuples[i] = tuple
			counts[i] = g.Count
		}
		groups, flat, err := trie.GroupCountGrams(prevIDTuples, curIDTuples, counts)
		if err != nil {
			return nil, fmt.Errorf("buildsource: order %d: %w", k, err)
		}
		higherOrderGroups[k-2] = groups
		prevIDTuples = flat
	}

	return trie.BuildCountModel(cfg, unigramTokens, unigramCounts, higherOrderGroups)
}

func readOrderFile(dir string, k int) ([]source.GramCount, error) {
	path := filepath.Join(dir, fmt.Sprintf("%d-grams.sorted.gz", k))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("buildsource: opening %s: %w", path, err)
	}
	defer f.Close()
	return source.ReadCountFile(f)
}
