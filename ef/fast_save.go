package ef

import (
	"sort"

	"github.com/tongrams-go/tongrams/serialize"
)

// Bits returns the sequence's on-disk size in bits, including the sample
// trees.
func (fs *FastSequence) Bits() uint64 {
	total := fs.Sequence.Bits()
	for _, tree := range fs.samples {
		total += 64 * uint64(len(tree))
	}
	return total
}

// Save writes fs via w: the base Sequence, then the sample trees keyed by
// range start, in ascending order of range start, per spec.md §6. The
// sample trees are persisted rather than rebuilt on Load since the
// partition ranges that generated them are not retained on the sequence
// itself.
func (fs *FastSequence) Save(w *serialize.Writer) {
	fs.Sequence.Save(w)
	begins := make([]uint64, 0, len(fs.samples))
	for begin := range fs.samples {
		begins = append(begins, begin)
	}
	sort.Slice(begins, func(i, j int) bool { return begins[i] < begins[j] })
	w.WriteUint64(uint64(len(begins)))
	for _, begin := range begins {
		w.WriteUint64(begin)
		w.WriteUint64Slice(fs.samples[begin])
	}
}

// LoadFast reads back a FastSequence written by Save.
func LoadFast(r *serialize.Reader) (*FastSequence, error) {
	base, err := Load(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	samples := make(map[uint64][]uint64, count)
	for i := uint64(0); i < count; i++ {
		begin, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		tree, err := r.ReadUint64Slice()
		if err != nil {
			return nil, err
		}
		samples[begin] = tree
	}
	return &FastSequence{Sequence: base, samples: samples}, nil
}
