package valuetable

import "github.com/tongrams-go/tongrams/serialize"

// StorageBits returns the table's on-disk size in bits.
func (d *DistinctCounts) StorageBits() uint64 { return 64 * uint64(len(d.values)) }

// Save writes d via w: a length-prefixed slice of raw counts in rank
// order.
func (d *DistinctCounts) Save(w *serialize.Writer) {
	w.WriteUint64Slice(d.values)
}

// LoadDistinctCounts reads back a DistinctCounts written by Save.
func LoadDistinctCounts(r *serialize.Reader) (*DistinctCounts, error) {
	values, err := r.ReadUint64Slice()
	if err != nil {
		return nil, err
	}
	return &DistinctCounts{values: values}, nil
}

// StorageBits returns the table's on-disk size in bits.
func (t *ProbBackoffTable) StorageBits() uint64 { return 32 * uint64(len(t.bins)) }

// Save writes t via w: the quantization width, then the bin values.
func (t *ProbBackoffTable) Save(w *serialize.Writer) {
	w.WriteUint64(uint64(t.bits))
	w.WriteUint64(uint64(len(t.bins)))
	for _, v := range t.bins {
		w.WriteFloat32(v)
	}
}

// LoadProbBackoffTable reads back a ProbBackoffTable written by Save.
func LoadProbBackoffTable(r *serialize.Reader) (*ProbBackoffTable, error) {
	bitsRaw, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	bins := make([]float32, n)
	for i := range bins {
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		bins[i] = v
	}
	return &ProbBackoffTable{bins: bins, bits: uint(bitsRaw)}, nil
}
