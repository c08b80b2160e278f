package trie

import (
	"bytes"

	"github.com/tongrams-go/tongrams/mapper"
	"github.com/tongrams-go/tongrams/sortedarray"
	"github.com/tongrams-go/tongrams/valuetable"
	"github.com/tongrams-go/tongrams/vocab"
)

// ProbModel is the backward (reversed) prob/back-off trie of spec.md §4.7
// ("score(state, word)"): order-m arrays are keyed by successor context,
// so scoring walks history words from most recent to oldest.
type ProbModel struct {
	Order          int
	RemappingOrder int
	UnkProb        float32
	Vocab          *vocab.ProbVocabulary
	// Orders[j] holds the sorted array for (j+2)-grams (reversed/suffix
	// order), j = 0..Order-2.
	Orders []*sortedarray.ProbOrder
	// ProbTables[j]/BackoffTables[j] are the quantization tables for
	// order j+1 (unigram at j=0). BackoffTables[Order-1] is unused: the
	// terminal order stores no back-off, per spec.md §3.
	ProbTables    []*valuetable.ProbBackoffTable
	BackoffTables []*valuetable.ProbBackoffTable
	// UnigramBackoffWidth is the bit width backoff ranks are packed with
	// inside the vocabulary's combined unigram value, per spec.md §6.
	UnigramBackoffWidth uint

	mapper mapper.QueryMapper
}

// NewProbModel assembles a ProbModel from its built components.
func NewProbModel(order, remappingOrder int, unkProb float32, v *vocab.ProbVocabulary, orders []*sortedarray.ProbOrder, probTables, backoffTables []*valuetable.ProbBackoffTable, unigramBackoffWidth uint) *ProbModel {
	return &ProbModel{
		Order:               order,
		RemappingOrder:      remappingOrder,
		UnkProb:             unkProb,
		Vocab:               v,
		Orders:              orders,
		ProbTables:          probTables,
		BackoffTables:       backoffTables,
		UnigramBackoffWidth: unigramBackoffWidth,
		mapper:              mapper.Select(remappingOrder),
	}
}

// unpackUnigram splits the vocabulary's packed (probRank, backoffRank)
// value for an id into its two fields.
func (m *ProbModel) unpackUnigram(packed uint64) (probRank, backoffRank uint32) {
	mask := (uint64(1) << m.UnigramBackoffWidth) - 1
	return uint32(packed >> m.UnigramBackoffWidth), uint32(packed & mask)
}

// Score implements spec.md §4.7 step 1-5: scores word against state,
// mutating state in place, and returns the log10 probability.
func (m *ProbModel) Score(state *State, word string) float32 {
	tok := []byte(word)
	id, packed, err := m.Vocab.Lookup(tok)
	if err != nil {
		state.oov++
		state.length = 0
		return m.UnkProb
	}

	oldLength := state.length
	probRank, backoffRank := m.unpackUnigram(packed)
	prob := m.ProbTables[0].Access(probRank)
	state.currBackoff[0] = m.BackoffTables[0].Access(backoffRank)
	longestMatch := 0
	if state.currBackoff[0] != 0 {
		longestMatch = 1
	}

	maxM := state.length
	if maxM > m.Order-1 {
		maxM = m.Order - 1
	}

	pos := id
	var r sortedarray.Range
	for mm := 1; mm <= maxM; mm++ {
		r = m.Orders[mm-1].Range(pos)
		histID := state.wordAt(mm)
		targetID, ok := m.resolveTargetID(id, state, mm, histID, r)
		if !ok {
			break
		}
		p, err := m.Orders[mm-1].Position(r, targetID)
		if err != nil {
			break
		}
		pos = p

		probRank, backoffRank, hasBackoff := m.Orders[mm-1].ProbBackoffRank(pos)
		prob = m.ProbTables[mm].Access(probRank)
		if hasBackoff {
			state.currBackoff[mm] = m.BackoffTables[mm].Access(backoffRank)
			if state.currBackoff[mm] != 0 {
				longestMatch = mm + 1
			}
		}
	}

	for ord := longestMatch; ord < oldLength; ord++ {
		prob += state.prevBackoff[ord]
	}

	state.prevBackoff, state.currBackoff = state.currBackoff, state.prevBackoff
	state.pushWord(id)
	state.length = longestMatch
	return prob
}

// resolveTargetID mirrors CountModel's context-remapping resolution but
// over the backward trie's history words, per spec.md §4.2's "backward
// (reversed) tries remap using successor context".
func (m *ProbModel) resolveTargetID(currentID uint64, state *State, mm int, histID uint64, _ sortedarray.Range) (uint64, bool) {
	k := mm + 1
	if m.RemappingOrder == 0 || k <= m.RemappingOrder+1 {
		return histID, true
	}
	r := m.RemappingOrder
	pos2 := currentID
	for t := 1; t < r; t++ {
		rr := m.Orders[t-1].Range(pos2)
		id := state.wordAt(t)
		p, err := m.Orders[t-1].Position(rr, id)
		if err != nil {
			return 0, false
		}
		pos2 = p
	}
	ranker := m.Orders[r-1]
	ctx := ranker.Range(pos2)
	return m.mapper.Map(ranker, ctx.Begin, ctx.End, histID)
}

// TokenizeSentence splits a sentence into whitespace-separated words.
func TokenizeSentence(sentence string) []string {
	fields := bytes.Fields([]byte(sentence))
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
