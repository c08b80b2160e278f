package trie

// ModelStats reports a model's on-disk footprint broken down by
// component, per spec.md §11.2. All fields are byte counts.
type ModelStats struct {
	VocabularyBytes uint64
	ValueTableBytes uint64
	GramsBytes      uint64
	PointersBytes   uint64
	RanksBytes      uint64
	TotalBytes      uint64
}

func bitsToBytes(bits uint64) uint64 { return (bits + 7) / 8 }

// Stats reports m's on-disk footprint by component.
func (m *CountModel) Stats() ModelStats {
	var s ModelStats
	s.VocabularyBytes = bitsToBytes(m.Vocab.Bits())
	for _, dc := range m.DistinctCounts {
		s.ValueTableBytes += bitsToBytes(dc.StorageBits())
	}
	s.ValueTableBytes += bitsToBytes(32 * uint64(len(m.UnigramRanks)))
	for _, o := range m.Orders {
		s.GramsBytes += bitsToBytes(o.GramsBits())
		s.PointersBytes += bitsToBytes(o.PointersBits())
		s.RanksBytes += bitsToBytes(o.RanksBits())
	}
	s.TotalBytes = s.VocabularyBytes + s.ValueTableBytes + s.GramsBytes + s.PointersBytes + s.RanksBytes
	return s
}

// Stats reports m's on-disk footprint by component.
func (m *ProbModel) Stats() ModelStats {
	var s ModelStats
	s.VocabularyBytes = bitsToBytes(m.Vocab.Bits())
	for _, t := range m.ProbTables {
		s.ValueTableBytes += bitsToBytes(t.StorageBits())
	}
	for _, t := range m.BackoffTables {
		s.ValueTableBytes += bitsToBytes(t.StorageBits())
	}
	for _, o := range m.Orders {
		s.GramsBytes += bitsToBytes(o.GramsBits())
		s.PointersBytes += bitsToBytes(o.PointersBits())
		s.RanksBytes += bitsToBytes(o.RanksBits())
	}
	s.TotalBytes = s.VocabularyBytes + s.ValueTableBytes + s.GramsBytes + s.PointersBytes + s.RanksBytes
	return s
}
