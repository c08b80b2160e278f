// Package pef implements the Partitioned Elias-Fano sequence codec:
// a sorted input divided into fixed-size partitions, each compressed as
// its own Elias-Fano sequence relative to its own base and universe, with
// an outer upper-bounds vector indexing partition boundaries, per
// spec.md §4.3.
package pef

import (
	"errors"
	"fmt"

	"github.com/tongrams-go/tongrams/compact"
	"github.com/tongrams-go/tongrams/ef"
)

// ErrNotFound mirrors ef.ErrNotFound for the partitioned codec.
var ErrNotFound = errors.New("pef: not found")

// Range identifies a contiguous span of global positions.
type Range = ef.Range

// PartitionBits returns the partition-size exponent p (partition size
// 2^p) for a given order, per spec.md §4.3: p=6 for orders <=2, p=7
// otherwise.
func PartitionBits(order int) uint {
	if order <= 2 {
		return 6
	}
	return 7
}

// partition holds one partition's independent Elias-Fano block.
type partition struct {
	base uint64
	seq  *ef.Sequence
}

// Sequence is a partitioned Elias-Fano monotone sequence.
type Sequence struct {
	n, u         uint64
	partBits     uint
	partitions   []partition
	upperBounds  *compact.Vector // length partitions+1: inclusive partition boundaries (global values)
}

// Build constructs a partitioned Elias-Fano sequence over the sorted input,
// using partitions of size 2^partBits.
func Build(values []uint64, partBits uint) (*Sequence, error) {
	n := uint64(len(values))
	if n == 0 {
		return &Sequence{}, nil
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return nil, fmt.Errorf("pef: input not sorted at index %d", i)
		}
	}
	partSize := uint64(1) << partBits
	numParts := (n + partSize - 1) / partSize

	s := &Sequence{n: n, u: values[n-1] + 1, partBits: partBits}
	bounds := make([]uint64, 0, numParts+1)
	bounds = append(bounds, values[0])

	for p := uint64(0); p < numParts; p++ {
		start := p * partSize
		end := start + partSize
		if end > n {
			end = n
		}
		base := values[start]
		rel := make([]uint64, end-start)
		for i := range rel {
			rel[i] = values[start+i] - base
		}
		seq, err := ef.Build(rel)
		if err != nil {
			return nil, fmt.Errorf("pef: partition %d: %w", p, err)
		}
		s.partitions = append(s.partitions, partition{base: base, seq: seq})
		bounds = append(bounds, values[end-1])
	}

	maxBound := bounds[len(bounds)-1]
	width := compact.MinWidth(maxBound)
	vb := compact.NewBuilder(width, uint64(len(bounds)))
	for _, b := range bounds {
		vb.PushBack(b)
	}
	s.upperBounds = vb.Build()
	return s, nil
}

// Len returns the number of elements.
func (s *Sequence) Len() uint64 { return s.n }

// partitionOf returns the index of the partition containing global
// position pos.
func (s *Sequence) partitionOf(pos uint64) uint64 {
	return pos >> s.partBits
}

// Access returns the i-th global value.
func (s *Sequence) Access(i uint64) uint64 {
	p := s.partitionOf(i)
	part := s.partitions[p]
	local := i - p*(uint64(1)<<s.partBits)
	return part.base + part.seq.Access(local)
}

// UpperBound mirrors ef.Sequence.UpperBound for the partitioned codec.
func (s *Sequence) UpperBound(pos uint64) uint64 {
	if pos == 0 {
		return 0
	}
	return s.Access(pos - 1)
}

// Find locates the position p in [r.Begin, r.End) such that seq[p] ==
// target. Resolves inside the owning partition when the whole range sits
// in one partition (hot path), otherwise binary-searches the outer
// upper-bounds vector for the containing partition and re-enters, per
// spec.md §4.3.
func (s *Sequence) Find(r Range, target uint64) (uint64, error) {
	startPart := s.partitionOf(r.Begin)
	endPart := s.partitionOf(r.End - 1)
	if r.Begin >= r.End {
		return 0, ErrNotFound
	}
	if startPart == endPart {
		part := s.partitions[startPart]
		partBegin := startPart * (uint64(1) << s.partBits)
		if target < part.base {
			return 0, ErrNotFound
		}
		rel := target - part.base
		localR := ef.Range{Begin: r.Begin - partBegin, End: r.End - partBegin}
		pos, err := part.seq.NextGEQ(rel, localR.Begin, localR.End)
		if err != nil {
			return 0, ErrNotFound
		}
		if part.seq.Access(pos) != rel {
			return 0, ErrNotFound
		}
		return partBegin + pos, nil
	}

	// Spans multiple partitions: binary search outer bounds for the
	// partition that could contain target, then search within the
	// intersection of that partition and [r.Begin, r.End).
	lo, hi := startPart, endPart+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s.upperBounds.Access(mid+1) < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	part := s.partitions[lo]
	partBegin := lo * (uint64(1) << s.partBits)
	partEnd := partBegin + uint64(lenOfPartition(s, lo))
	begin := max64(r.Begin, partBegin)
	end := min64(r.End, partEnd)
	if begin >= end || target < part.base {
		return 0, ErrNotFound
	}
	rel := target - part.base
	pos, err := part.seq.NextGEQ(rel, begin-partBegin, end-partBegin)
	if err != nil {
		return 0, ErrNotFound
	}
	if part.seq.Access(pos) != rel {
		return 0, ErrNotFound
	}
	return partBegin + pos, nil
}

func lenOfPartition(s *Sequence, p uint64) uint64 { return s.partitions[p].seq.Len() }

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
