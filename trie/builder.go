package trie

import (
	"fmt"

	"github.com/tongrams-go/tongrams/buildlog"
	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/ef"
	"github.com/tongrams-go/tongrams/pef"
	"github.com/tongrams-go/tongrams/seqcodec"
	"github.com/tongrams-go/tongrams/sortedarray"
	"github.com/tongrams-go/tongrams/valuetable"
	"github.com/tongrams-go/tongrams/vocab"
)

// buildGramCodec encodes the concatenated grams_k values with the codec
// cfg selects, per spec.md §4.2/§4.3.
func buildGramCodec(cfg *config.BuildConfig, values []uint64, groups []sortedarray.ParentGroup) (sortedarray.GramCodec, error) {
	switch cfg.DataStructure {
	case config.DataStructurePEF:
		return pef.Build(values, pef.PartitionBits(cfg.Order))
	case config.DataStructureFastEF:
		ranges := parentRanges(groups)
		return ef.BuildFast(values, ranges)
	default:
		return ef.Build(values)
	}
}

func parentRanges(groups []sortedarray.ParentGroup) []ef.Range {
	ranges := make([]ef.Range, 0, len(groups))
	offset := uint64(0)
	for _, g := range groups {
		n := uint64(len(g.TokenIDs))
		ranges = append(ranges, ef.Range{Begin: offset, End: offset + n})
		offset += n
	}
	return ranges
}

func buildRankCodec(cfg *config.BuildConfig, ranks []uint64) (sortedarray.RankCodec, error) {
	switch cfg.RanksType {
	case config.RanksTypePrefixSummedEF:
		sums, err := ef.Build(seqcodec.Accumulate(ranks))
		if err != nil {
			return nil, err
		}
		return seqcodec.NewPrefixSummed(sums), nil
	case config.RanksTypePrefixSummedPEF:
		sums, err := pef.Build(seqcodec.Accumulate(ranks), pef.PartitionBits(cfg.Order))
		if err != nil {
			return nil, err
		}
		return seqcodec.NewPrefixSummed(sums), nil
	default:
		return seqcodec.BuildIndexedCodewords(ranks), nil
	}
}

// BuildCountModel assembles a forward count trie from per-order grouped
// input, per spec.md §4.6. unigramTokens/unigramCounts are in vocabulary
// id order; higherOrderGroups[j] holds order (j+2)'s parent groups, each
// group's Values carrying that gram's raw count.
func BuildCountModel(cfg *config.BuildConfig, unigramTokens [][]byte, unigramCounts []uint64, higherOrderGroups [][]sortedarray.ParentGroup) (*CountModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(higherOrderGroups) != cfg.Order-1 {
		return nil, fmt.Errorf("trie: expected %d higher-order group sets, got %d", cfg.Order-1, len(higherOrderGroups))
	}

	v, err := vocab.BuildCountVocabulary(unigramTokens, cfg.HashKeyBytes*8)
	if err != nil {
		return nil, err
	}

	distinctCounts := make([]*valuetable.DistinctCounts, cfg.Order)
	unigramTable, unigramRanks := valuetable.BuildDistinctCounts(unigramCounts)
	distinctCounts[0] = unigramTable

	orders := make([]*sortedarray.CountOrder, cfg.Order-1)
	for j, groups := range higherOrderGroups {
		values, pointers, err := sortedarray.BuildGramsAndPointers(groups)
		if err != nil {
			return nil, fmt.Errorf("trie: order %d: %w", j+2, err)
		}
		gramCodec, err := buildGramCodec(cfg, values, groups)
		if err != nil {
			return nil, fmt.Errorf("trie: order %d: %w", j+2, err)
		}
		order, err := sortedarray.NewOrder(gramCodec, pointers, uint64(len(values)))
		if err != nil {
			return nil, fmt.Errorf("trie: order %d: %w", j+2, err)
		}

		rawCounts := sortedarray.FlattenValues(groups)
		table, ranks := valuetable.BuildDistinctCounts(rawCounts)
		distinctCounts[j+1] = table

		ranks64 := make([]uint64, len(ranks))
		for i, r := range ranks {
			ranks64[i] = uint64(r)
		}
		rankCodec, err := buildRankCodec(cfg, ranks64)
		if err != nil {
			return nil, fmt.Errorf("trie: order %d ranks: %w", j+2, err)
		}
		orders[j] = sortedarray.NewCountOrder(order, rankCodec)
	}

	return NewCountModel(cfg.Order, cfg.RemappingOrder, v, orders, distinctCounts, unigramRanks)
}

// clampProb clamps a positive log10 probability to 0, warning once per
// call, per spec.md §4.7's numerics note.
func clampProb(p float32) float32 {
	if p > 0 {
		buildlog.Warnf("clamping positive log-probability %v to 0", p)
		return 0
	}
	return p
}
