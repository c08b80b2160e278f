package sortedarray

// RankCodec is the minimal surface any count-rank codec exposes
// (seqcodec.IndexedCodewords, seqcodec.PrefixSummed-over-EF/PEF).
type RankCodec interface {
	Len() uint64
	Access(i uint64) uint64
}

// CountOrder is a sorted array for one order of a count model: grams_k +
// pointers_k (via the embedded *Order) plus count-rank codewords.
type CountOrder struct {
	*Order
	Ranks RankCodec
}

// NewCountOrder wraps a built Order with its count-rank codec.
func NewCountOrder(order *Order, ranks RankCodec) *CountOrder {
	return &CountOrder{Order: order, Ranks: ranks}
}

// CountRank returns the count-rank stored at absolute position pos.
func (c *CountOrder) CountRank(pos uint64) uint64 {
	return c.Ranks.Access(pos)
}
