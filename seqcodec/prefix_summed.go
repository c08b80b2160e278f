// Package seqcodec implements the two higher-level sequence wrappers of
// spec.md §4.4: a prefix-summed sequence (exposes a non-monotone sequence
// as successive differences over any monotone codec) and the
// indexed-codeword sequence (variable-length codewords with a bit-index
// for O(1) random access).
package seqcodec

// Monotone is the minimal surface any monotone sequence codec (ef.Sequence,
// ef.FastSequence, pef.Sequence) exposes; PrefixSummed is generic over it.
type Monotone interface {
	Len() uint64
	Access(i uint64) uint64
}

// PrefixSummed wraps a monotone codec holding the cumulative sums of an
// originally non-monotone sequence, and exposes the original elements via
// successive differences. Used for count-rank encoding when ranks are
// small but their cumulative distribution compresses well.
type PrefixSummed struct {
	sums Monotone
}

// NewPrefixSummed wraps an already-built monotone cumulative-sum sequence.
// Builders (see Accumulate) are responsible for producing that sequence.
func NewPrefixSummed(sums Monotone) *PrefixSummed {
	return &PrefixSummed{sums: sums}
}

// Accumulate turns a sequence of non-negative values into its prefix sums
// (length n+1, sums[0]=0), ready to be handed to a monotone codec builder.
func Accumulate(values []uint64) []uint64 {
	sums := make([]uint64, len(values)+1)
	for i, v := range values {
		sums[i+1] = sums[i] + v
	}
	return sums
}

// Sums returns the underlying cumulative-sum codec, for callers (e.g. the
// sortedarray package's tagged serialization) that need to dispatch on its
// concrete type.
func (p *PrefixSummed) Sums() Monotone { return p.sums }

// Len returns the number of original (non-monotone) elements.
func (p *PrefixSummed) Len() uint64 {
	if p.sums.Len() == 0 {
		return 0
	}
	return p.sums.Len() - 1
}

// Access returns the i-th original element, sums[i+1] - sums[i].
func (p *PrefixSummed) Access(i uint64) uint64 {
	return p.sums.Access(i+1) - p.sums.Access(i)
}
