package buildsource

import (
	"fmt"
	"os"

	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/source"
	"github.com/tongrams-go/tongrams/trie"
)

// ProbModelFromArpa reads an ARPA language model file and builds a
// trie.ProbModel. The ARPA's forward contexts are reversed into the
// successor-context order trie.ProbModel walks, per spec.md §4.2's note
// that backward tries remap using successor context.
func ProbModelFromArpa(cfg *config.BuildConfig, path string) (*trie.ProbModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("buildsource: opening %s: %w", path, err)
	}
	defer f.Close()

	arpa, err := source.ReadArpa(f)
	if err != nil {
		return nil, err
	}
	if len(arpa.Orders) < cfg.Order {
		return nil, fmt.Errorf("buildsource: arpa file has %d orders, need %d", len(arpa.Orders), cfg.Order)
	}

	unigrams := arpa.Orders[0]
	unigramTokens := make([][]byte, len(unigrams))
	unigramProbs := make([]float32, len(unigrams))
	unigramBackoffs := make([]float32, len(unigrams))
	ids := make(map[string]uint64, len(unigrams))
	// Reversed prefix order at order 1 is the unigram id itself.
	prevRevTuples := make([][]uint64, len(unigrams))
	for i, g := range unigrams {
		if len(g.Tokens) != 1 {
			return nil, fmt.Errorf("buildsource: malformed arpa unigram line %v", g.Tokens)
		}
		unigramTokens[i] = []byte(g.Tokens[0])
		unigramProbs[i] = g.LogProb
		unigramBackoffs[i] = g.LogBackoff
		ids[g.Tokens[0]] = uint64(i)
		prevRevTuples[i] = []uint64{uint64(i)}
	}

	higherOrderGroups := make([][]trie.ProbParentGroup, cfg.Order-1)
	for k := 2; k <= cfg.Order; k++ {
		grams := arpa.Orders[k-1]
		hasBackoff := k != cfg.Order

		curRevTuples := make([][]uint64, len(grams))
		probs := make([]float32, len(grams))
		backoffs := make([]float32, len(grams))
		for i, g := range grams {
			if len(g.Tokens) != k {
				return nil, fmt.Errorf("buildsource: arpa order %d line has %d tokens", k, len(g.Tokens))
			}
			tuple := make([]uint64, k)
			for j, tok := range g.Tokens {
				id, ok := ids[tok]
				if !ok {
					return nil, fmt.Errorf("buildsource: token %q at order %d not in vocabulary", tok, k)
				}
				// Reverse: successor (rightmost) word first.
				tuple[k-1-j] = id
			}
			curRevTuples[i] = tuple
			probs[i] = g.LogProb
			if g.HasBackoff {
				backoffs[i] = g.LogBackoff
			}
		}

		groups, flat, err := trie.GroupProbGrams(prevRevTuples, curRevTuples, probs, backoffs, hasBackoff)
		if err != nil {
			return nil, fmt.Errorf("buildsource: arpa order %d: %w", k, err)
		}
		higherOrderGroups[k-2] = groups
		prevRevTuples = flat
	}

	return trie.BuildProbModel(cfg, unigramTokens, unigramProbs, unigramBackoffs, higherOrderGroups)
}
