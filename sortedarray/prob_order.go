package sortedarray

import "github.com/tongrams-go/tongrams/compact"

// ProbOrder is a sorted array for one order of a prob/back-off model.
// Non-terminal orders store an interleaved (prob-rank, back-off-rank)
// pair per gram; the terminal order (k == N) stores only a prob-rank,
// per spec.md §3 ("For the N-th order (terminal), only per-gram rank is
// stored").
type ProbOrder struct {
	*Order
	pairRanks *compact.PairVector // non-terminal: (probRank, backoffRank)
	soloRanks *compact.Vector     // terminal: probRank only
}

// NewNonTerminalProbOrder wraps a built Order with interleaved prob/
// back-off ranks.
func NewNonTerminalProbOrder(order *Order, ranks *compact.PairVector) *ProbOrder {
	return &ProbOrder{Order: order, pairRanks: ranks}
}

// NewTerminalProbOrder wraps a built Order with prob-only ranks.
func NewTerminalProbOrder(order *Order, ranks *compact.Vector) *ProbOrder {
	return &ProbOrder{Order: order, soloRanks: ranks}
}

// IsTerminal reports whether this order stores no back-off rank.
func (p *ProbOrder) IsTerminal() bool { return p.soloRanks != nil }

// ProbBackoffRank returns the (prob-rank, back-off-rank) pair stored at
// absolute position pos. hasBackoff is false at the terminal order.
func (p *ProbOrder) ProbBackoffRank(pos uint64) (probRank, backoffRank uint32, hasBackoff bool) {
	if p.soloRanks != nil {
		return uint32(p.soloRanks.Access(pos)), 0, false
	}
	pr, br := p.pairRanks.Access(pos)
	return uint32(pr), uint32(br), true
}
