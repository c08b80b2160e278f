package sortedarray

import (
	"fmt"

	"github.com/tongrams-go/tongrams/compact"
	"github.com/tongrams-go/tongrams/ef"
	"github.com/tongrams-go/tongrams/pef"
	"github.com/tongrams-go/tongrams/seqcodec"
	"github.com/tongrams-go/tongrams/serialize"
)

// gramCodecTag identifies which concrete GramCodec a serialized grams_k
// block holds, written as a one-byte prefix so Load can dispatch to the
// matching constructor (DataStructure is a per-model build choice, not
// something Order can assume).
type gramCodecTag byte

const (
	gramCodecEF gramCodecTag = iota
	gramCodecFastEF
	gramCodecPEF
)

func saveGramCodec(w *serialize.Writer, g GramCodec) error {
	switch v := g.(type) {
	case *ef.Sequence:
		w.WriteByte(byte(gramCodecEF))
		v.Save(w)
	case *ef.FastSequence:
		w.WriteByte(byte(gramCodecFastEF))
		v.Save(w)
	case *pef.Sequence:
		w.WriteByte(byte(gramCodecPEF))
		v.Save(w)
	default:
		return fmt.Errorf("sortedarray: unknown GramCodec implementation %T", g)
	}
	return nil
}

func loadGramCodec(r *serialize.Reader) (GramCodec, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch gramCodecTag(tag) {
	case gramCodecEF:
		return ef.Load(r)
	case gramCodecFastEF:
		return ef.LoadFast(r)
	case gramCodecPEF:
		return pef.Load(r)
	default:
		return nil, fmt.Errorf("sortedarray: invalid GramCodec tag %d", tag)
	}
}

func gramCodecBits(g GramCodec) uint64 {
	switch v := g.(type) {
	case *ef.Sequence:
		return v.Bits()
	case *ef.FastSequence:
		return v.Bits()
	case *pef.Sequence:
		return v.Bits()
	default:
		return 0
	}
}

// GramsBits returns grams_k's on-disk size in bits, 0 for unigrams.
func (o *Order) GramsBits() uint64 {
	if o.Grams == nil {
		return 0
	}
	return gramCodecBits(o.Grams)
}

// PointersBits returns pointers_k's on-disk size in bits, 0 for unigrams.
func (o *Order) PointersBits() uint64 {
	if o.Pointers == nil {
		return 0
	}
	return o.Pointers.Bits()
}

// Bits returns the order's on-disk size in bits (grams_k + pointers_k).
func (o *Order) Bits() uint64 {
	total := uint64(0)
	if o.Grams != nil {
		total += gramCodecBits(o.Grams)
	}
	if o.Pointers != nil {
		total += o.Pointers.Bits()
	}
	return total
}

// Save writes o via w: n, an optional grams_k block (absent for
// unigrams), and an optional pointers_k block (absent for unigrams).
func (o *Order) Save(w *serialize.Writer) error {
	w.WriteUint64(o.n)
	if o.Grams == nil {
		w.WriteByte(0)
	} else {
		w.WriteByte(1)
		if err := saveGramCodec(w, o.Grams); err != nil {
			return err
		}
	}
	if o.Pointers == nil {
		w.WriteByte(0)
	} else {
		w.WriteByte(1)
		o.Pointers.Save(w)
	}
	return nil
}

// LoadOrder reads back an Order written by Save.
func LoadOrder(r *serialize.Reader) (*Order, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	hasGrams, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	var grams GramCodec
	if hasGrams == 1 {
		grams, err = loadGramCodec(r)
		if err != nil {
			return nil, err
		}
	}
	hasPointers, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	var pointers *ef.Sequence
	if hasPointers == 1 {
		pointers, err = ef.Load(r)
		if err != nil {
			return nil, err
		}
	}
	return &Order{Grams: grams, Pointers: pointers, n: n}, nil
}

// rankCodecTag identifies which concrete RankCodec a count order's
// ranks_k block holds.
type rankCodecTag byte

const (
	rankCodecIndexed rankCodecTag = iota
	rankCodecPrefixSummedEF
	rankCodecPrefixSummedPEF
)

func saveRankCodec(w *serialize.Writer, ranks RankCodec) error {
	switch v := ranks.(type) {
	case *seqcodec.IndexedCodewords:
		w.WriteByte(byte(rankCodecIndexed))
		v.Save(w)
	case *seqcodec.PrefixSummed:
		switch sums := v.Sums().(type) {
		case *ef.Sequence:
			w.WriteByte(byte(rankCodecPrefixSummedEF))
			sums.Save(w)
		case *pef.Sequence:
			w.WriteByte(byte(rankCodecPrefixSummedPEF))
			sums.Save(w)
		default:
			return fmt.Errorf("sortedarray: unknown PrefixSummed sums codec %T", sums)
		}
	default:
		return fmt.Errorf("sortedarray: unknown RankCodec implementation %T", ranks)
	}
	return nil
}

func loadRankCodec(r *serialize.Reader) (RankCodec, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch rankCodecTag(tag) {
	case rankCodecIndexed:
		return seqcodec.LoadIndexedCodewords(r)
	case rankCodecPrefixSummedEF:
		sums, err := ef.Load(r)
		if err != nil {
			return nil, err
		}
		return seqcodec.NewPrefixSummed(sums), nil
	case rankCodecPrefixSummedPEF:
		sums, err := pef.Load(r)
		if err != nil {
			return nil, err
		}
		return seqcodec.NewPrefixSummed(sums), nil
	default:
		return nil, fmt.Errorf("sortedarray: invalid RankCodec tag %d", tag)
	}
}

// RanksBits returns ranks_k's on-disk size in bits.
func (c *CountOrder) RanksBits() uint64 {
	switch v := c.Ranks.(type) {
	case *seqcodec.IndexedCodewords:
		return v.Bits()
	case *seqcodec.PrefixSummed:
		switch sums := v.Sums().(type) {
		case *ef.Sequence:
			return sums.Bits()
		case *pef.Sequence:
			return sums.Bits()
		}
	}
	return 0
}

// Save writes c via w: the embedded Order, then a tagged ranks_k block.
func (c *CountOrder) Save(w *serialize.Writer) error {
	if err := c.Order.Save(w); err != nil {
		return err
	}
	return saveRankCodec(w, c.Ranks)
}

// LoadCountOrder reads back a CountOrder written by Save.
func LoadCountOrder(r *serialize.Reader) (*CountOrder, error) {
	order, err := LoadOrder(r)
	if err != nil {
		return nil, err
	}
	ranks, err := loadRankCodec(r)
	if err != nil {
		return nil, err
	}
	return &CountOrder{Order: order, Ranks: ranks}, nil
}

// RanksBits returns the (prob-rank[, back-off-rank]) block's on-disk
// size in bits.
func (p *ProbOrder) RanksBits() uint64 {
	if p.soloRanks != nil {
		return p.soloRanks.Bits()
	}
	return p.pairRanks.Bits()
}

// Save writes p via w: the embedded Order, a terminal flag, and either
// the interleaved pair-rank vector (non-terminal) or the solo prob-rank
// vector (terminal).
func (p *ProbOrder) Save(w *serialize.Writer) error {
	if err := p.Order.Save(w); err != nil {
		return err
	}
	if p.IsTerminal() {
		w.WriteByte(1)
		p.soloRanks.Save(w)
		return nil
	}
	w.WriteByte(0)
	p.pairRanks.Save(w)
	return nil
}

// LoadProbOrder reads back a ProbOrder written by Save.
func LoadProbOrder(r *serialize.Reader) (*ProbOrder, error) {
	order, err := LoadOrder(r)
	if err != nil {
		return nil, err
	}
	terminal, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if terminal == 1 {
		solo, err := compact.LoadVector(r)
		if err != nil {
			return nil, err
		}
		return &ProbOrder{Order: order, soloRanks: solo}, nil
	}
	pair, err := compact.LoadPairVector(r)
	if err != nil {
		return nil, err
	}
	return &ProbOrder{Order: order, pairRanks: pair}, nil
}
