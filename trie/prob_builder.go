package trie

import (
	"fmt"

	"github.com/tongrams-go/tongrams/compact"
	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/sortedarray"
	"github.com/tongrams-go/tongrams/valuetable"
	"github.com/tongrams-go/tongrams/vocab"
)

// ProbParentGroup is one (k-1)-gram's children at order k of a prob/
// back-off model: TokenIDs parallels sortedarray.ParentGroup, Probs and
// Backoffs carry each child's raw (already clamped) log10 values.
// Backoffs is nil at the terminal order, which stores no back-off per
// spec.md §3.
type ProbParentGroup struct {
	TokenIDs []uint64
	Probs    []float32
	Backoffs []float32
}

func (g ProbParentGroup) asParentGroup() sortedarray.ParentGroup {
	return sortedarray.ParentGroup{TokenIDs: g.TokenIDs}
}

func flattenProbs(groups []ProbParentGroup) (probs, backoffs []float32) {
	for _, g := range groups {
		probs = append(probs, g.Probs...)
		if g.Backoffs != nil {
			backoffs = append(backoffs, g.Backoffs...)
		}
	}
	return probs, backoffs
}

// BuildProbModel assembles a backward prob/back-off trie from per-order
// grouped input (in reversed/suffix context order, per spec.md §4.6),
// clamping positive log10 probabilities to 0 per spec.md §4.7.
func BuildProbModel(cfg *config.BuildConfig, unigramTokens [][]byte, unigramProbs, unigramBackoffs []float32, higherOrderGroups [][]ProbParentGroup) (*ProbModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(higherOrderGroups) != cfg.Order-1 {
		return nil, fmt.Errorf("trie: expected %d higher-order group sets, got %d", cfg.Order-1, len(higherOrderGroups))
	}

	for i, p := range unigramProbs {
		unigramProbs[i] = clampProb(p)
	}

	probTables := make([]*valuetable.ProbBackoffTable, cfg.Order)
	backoffTables := make([]*valuetable.ProbBackoffTable, cfg.Order)

	unigramProbTable, unigramProbRanks, err := valuetable.BuildQuantizer(unigramProbs, cfg.ProbQuantizationBits)
	if err != nil {
		return nil, err
	}
	unigramBackoffTable, unigramBackoffRanks, err := valuetable.BuildQuantizer(unigramBackoffs, cfg.BackoffQuantizationBits)
	if err != nil {
		return nil, err
	}
	probTables[0] = unigramProbTable
	backoffTables[0] = unigramBackoffTable

	entries := make([]vocab.UnigramEntry, len(unigramTokens))
	for i, tok := range unigramTokens {
		packed := (uint64(unigramProbRanks[i]) << cfg.BackoffQuantizationBits) | uint64(unigramBackoffRanks[i])
		entries[i] = vocab.UnigramEntry{Token: tok, ID: uint64(i), PackedProb: packed}
	}
	v, err := vocab.BuildProbVocabulary(entries, cfg.HashKeyBytes*8)
	if err != nil {
		return nil, err
	}

	orders := make([]*sortedarray.ProbOrder, cfg.Order-1)
	for j, groups := range higherOrderGroups {
		plain := make([]sortedarray.ParentGroup, len(groups))
		for i, g := range groups {
			plain[i] = g.asParentGroup()
		}
		values, pointers, err := sortedarray.BuildGramsAndPointers(plain)
		if err != nil {
			return nil, fmt.Errorf("trie: prob order %d: %w", j+2, err)
		}
		gramCodec, err := buildGramCodec(cfg, values, plain)
		if err != nil {
			return nil, fmt.Errorf("trie: prob order %d: %w", j+2, err)
		}
		order, err := sortedarray.NewOrder(gramCodec, pointers, uint64(len(values)))
		if err != nil {
			return nil, fmt.Errorf("trie: prob order %d: %w", j+2, err)
		}

		probs, backoffs := flattenProbs(groups)
		for i, p := range probs {
			probs[i] = clampProb(p)
		}
		isTerminal := j+2 == cfg.Order

		probTable, probRanks, err := valuetable.BuildQuantizer(probs, cfg.ProbQuantizationBits)
		if err != nil {
			return nil, err
		}
		probTables[j+1] = probTable

		if isTerminal {
			// The terminal order stores no back-off; an empty table keeps
			// BackoffTables free of nil entries for Save and Stats.
			backoffTables[j+1], _, _ = valuetable.BuildQuantizer(nil, cfg.BackoffQuantizationBits)
			rb := compact.NewBuilder(compact.MinWidth(uint64(probTable.Size())), uint64(len(probRanks)))
			for _, r := range probRanks {
				rb.PushBack(uint64(r))
			}
			orders[j] = sortedarray.NewTerminalProbOrder(order, rb.Build())
			continue
		}

		backoffTable, backoffRanks, err := valuetable.BuildQuantizer(backoffs, cfg.BackoffQuantizationBits)
		if err != nil {
			return nil, err
		}
		backoffTables[j+1] = backoffTable

		probWidth := compact.MinWidth(uint64(probTable.Size()))
		backoffWidth := compact.MinWidth(uint64(backoffTable.Size()))
		pb := compact.NewPairBuilder(probWidth, backoffWidth, uint64(len(probRanks)))
		for i := range probRanks {
			pb.PushBack(uint64(probRanks[i]), uint64(backoffRanks[i]))
		}
		orders[j] = sortedarray.NewNonTerminalProbOrder(order, pb.Build())
	}

	return NewProbModel(cfg.Order, cfg.RemappingOrder, cfg.UnkProb, v, orders, probTables, backoffTables, cfg.BackoffQuantizationBits), nil
}
