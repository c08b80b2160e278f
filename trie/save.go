package trie

import (
	"fmt"

	"github.com/tongrams-go/tongrams/ef"
	"github.com/tongrams-go/tongrams/pef"
	"github.com/tongrams-go/tongrams/seqcodec"
	"github.com/tongrams-go/tongrams/serialize"
	"github.com/tongrams-go/tongrams/sortedarray"
	"github.com/tongrams-go/tongrams/valuetable"
	"github.com/tongrams-go/tongrams/vocab"
)

func gramDataStructureTag(orders []*sortedarray.CountOrder) serialize.DataStructureTag {
	if len(orders) == 0 {
		return serialize.DataStructureHash
	}
	return dataStructureTagOf(orders[0].Grams)
}

func probGramDataStructureTag(orders []*sortedarray.ProbOrder) serialize.DataStructureTag {
	if len(orders) == 0 {
		return serialize.DataStructureHash
	}
	return dataStructureTagOf(orders[0].Grams)
}

func dataStructureTagOf(g sortedarray.GramCodec) serialize.DataStructureTag {
	switch g.(type) {
	case *ef.FastSequence:
		return serialize.DataStructureFastEFTrie
	case *pef.Sequence:
		return serialize.DataStructurePEFTrie
	default:
		return serialize.DataStructureEFTrie
	}
}

func countRanksTag(orders []*sortedarray.CountOrder) serialize.RanksTag {
	if len(orders) == 0 {
		return serialize.RanksIC
	}
	switch v := orders[0].Ranks.(type) {
	case *seqcodec.IndexedCodewords:
		return serialize.RanksIC
	case *seqcodec.PrefixSummed:
		switch v.Sums().(type) {
		case *pef.Sequence:
			return serialize.RanksPSPEF
		default:
			return serialize.RanksPSEF
		}
	default:
		return serialize.RanksIC
	}
}

// Save serializes m, per spec.md §6's field order: order; remapping_order;
// value tables (distinct-count tables); vocabulary; per-order sorted
// arrays.
func (m *CountModel) Save() []byte {
	w := serialize.NewWriter()
	w.WriteByte(serialize.FormatVersion)

	header := serialize.Header{
		DataStructure:  gramDataStructureTag(m.Orders),
		Value:          serialize.ValueCount,
		RemappingOrder: uint8(m.RemappingOrder),
		Ranks:          countRanksTag(m.Orders),
	}
	if header.DataStructure == serialize.DataStructureHash {
		header.HashKeyBytes8 = m.Vocab.HashKeyWidth() == 64
	}
	w.WriteByte(header.Encode())

	w.WriteUint64(uint64(m.Order))
	w.WriteUint64(uint64(m.RemappingOrder))

	w.WriteUint64(uint64(len(m.DistinctCounts)))
	for _, dc := range m.DistinctCounts {
		dc.Save(w)
	}
	w.WriteUint64(uint64(len(m.UnigramRanks)))
	for _, rank := range m.UnigramRanks {
		w.WriteUint32(rank)
	}

	m.Vocab.Save(w)

	w.WriteUint64(uint64(len(m.Orders)))
	for _, o := range m.Orders {
		if err := o.Save(w); err != nil {
			panic(fmt.Sprintf("trie: save count order: %v", err))
		}
	}

	return w.Finish()
}

// OpenCountModel reads back a CountModel written by Save, verifying the
// format version and integrity trailer before any structural decoding.
func OpenCountModel(data []byte) (*CountModel, error) {
	r := serialize.NewReader(data)
	if err := r.VerifyTrailer(); err != nil {
		return nil, fmt.Errorf("trie: open count model: %w", err)
	}
	version, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != serialize.FormatVersion {
		return nil, fmt.Errorf("trie: %w: got %d, want %d", serialize.ErrVersionMismatch, version, serialize.FormatVersion)
	}
	headerByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if _, err := serialize.DecodeHeader(headerByte); err != nil {
		return nil, err
	}

	orderRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	remapRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}

	numDC, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	distinctCounts := make([]*valuetable.DistinctCounts, numDC)
	for i := range distinctCounts {
		dc, err := valuetable.LoadDistinctCounts(r)
		if err != nil {
			return nil, err
		}
		distinctCounts[i] = dc
	}

	numRanks, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	unigramRanks := make([]uint32, numRanks)
	for i := range unigramRanks {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		unigramRanks[i] = v
	}

	v, err := vocab.LoadCountVocabulary(r)
	if err != nil {
		return nil, err
	}

	numOrders, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	orders := make([]*sortedarray.CountOrder, numOrders)
	for i := range orders {
		o, err := sortedarray.LoadCountOrder(r)
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}

	return NewCountModel(int(orderRaw), int(remapRaw), v, orders, distinctCounts, unigramRanks)
}

// Save serializes m, per spec.md §6's field order: order; remapping_order;
// unk_prob; value tables (prob/back-off quantization tables); vocabulary;
// per-order sorted arrays.
func (m *ProbModel) Save() []byte {
	w := serialize.NewWriter()
	w.WriteByte(serialize.FormatVersion)

	header := serialize.Header{
		DataStructure:  probGramDataStructureTag(m.Orders),
		Value:          serialize.ValueProbBackoff,
		RemappingOrder: uint8(m.RemappingOrder),
	}
	if header.DataStructure == serialize.DataStructureHash {
		header.HashKeyBytes8 = m.Vocab.HashKeyWidth() == 64
	}
	w.WriteByte(header.Encode())

	w.WriteUint64(uint64(m.Order))
	w.WriteUint64(uint64(m.RemappingOrder))
	w.WriteFloat32(m.UnkProb)

	w.WriteUint64(uint64(m.UnigramBackoffWidth))

	w.WriteUint64(uint64(len(m.ProbTables)))
	for _, t := range m.ProbTables {
		t.Save(w)
	}
	w.WriteUint64(uint64(len(m.BackoffTables)))
	for _, t := range m.BackoffTables {
		t.Save(w)
	}

	m.Vocab.Save(w)

	w.WriteUint64(uint64(len(m.Orders)))
	for _, o := range m.Orders {
		if err := o.Save(w); err != nil {
			panic(fmt.Sprintf("trie: save prob order: %v", err))
		}
	}

	return w.Finish()
}

// OpenProbModel reads back a ProbModel written by Save.
func OpenProbModel(data []byte) (*ProbModel, error) {
	r := serialize.NewReader(data)
	if err := r.VerifyTrailer(); err != nil {
		return nil, fmt.Errorf("trie: open prob model: %w", err)
	}
	version, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != serialize.FormatVersion {
		return nil, fmt.Errorf("trie: %w: got %d, want %d", serialize.ErrVersionMismatch, version, serialize.FormatVersion)
	}
	headerByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if _, err := serialize.DecodeHeader(headerByte); err != nil {
		return nil, err
	}

	orderRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	remapRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	unkProb, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	backoffWidthRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}

	numProbTables, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	probTables := make([]*valuetable.ProbBackoffTable, numProbTables)
	for i := range probTables {
		t, err := valuetable.LoadProbBackoffTable(r)
		if err != nil {
			return nil, err
		}
		probTables[i] = t
	}
	numBackoffTables, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	backoffTables := make([]*valuetable.ProbBackoffTable, numBackoffTables)
	for i := range backoffTables {
		t, err := valuetable.LoadProbBackoffTable(r)
		if err != nil {
			return nil, err
		}
		backoffTables[i] = t
	}

	v, err := vocab.LoadProbVocabulary(r)
	if err != nil {
		return nil, err
	}

	numOrders, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	orders := make([]*sortedarray.ProbOrder, numOrders)
	for i := range orders {
		o, err := sortedarray.LoadProbOrder(r)
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}

	return NewProbModel(int(orderRaw), int(remapRaw), unkProb, v, orders, probTables, backoffTables, uint(backoffWidthRaw)), nil
}
