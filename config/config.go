// Package config holds the build-time configuration for a trie and its
// validation, in the small-pure-predicate style the teacher uses for
// sample-rate/channel validation.
package config

import "fmt"

// DataStructure selects the monotone codec used for grams_k, per spec.md
// §4.2/§4.3; pointers_k is always plain Elias-Fano.
type DataStructure int

const (
	DataStructureEF DataStructure = iota
	DataStructureFastEF
	DataStructurePEF
)

// ValueType selects whether a model stores counts or probabilities/back-offs.
type ValueType int

const (
	ValueTypeCount ValueType = iota
	ValueTypeProb
)

// RanksType selects the count-rank codec, per spec.md §6 ("ranks tag").
type RanksType int

const (
	RanksTypeIndexedCodewords RanksType = iota
	RanksTypePrefixSummedEF
	RanksTypePrefixSummedPEF
)

// BuildConfig is every build-time knob of spec.md §6/§7.
type BuildConfig struct {
	Order          int
	DataStructure  DataStructure
	ValueType      ValueType
	RemappingOrder int
	RanksType      RanksType

	ProbQuantizationBits   uint
	BackoffQuantizationBits uint

	UnkProb float32

	HashKeyBytes uint // verification-hash width for MPH tables, in bytes
}

// Validate reports the first violated invariant, or nil. Checked before
// any allocation, per spec.md §7 ("Input validation... reported before
// any allocation; abort with message").
func (c *BuildConfig) Validate() error {
	if c.Order < 1 {
		return fmt.Errorf("config: order must be >= 1, got %d", c.Order)
	}
	if c.RemappingOrder < 0 || c.RemappingOrder > 2 {
		return fmt.Errorf("config: remapping_order must be in {0,1,2}, got %d", c.RemappingOrder)
	}
	if c.RemappingOrder >= c.Order {
		return fmt.Errorf("config: remapping_order (%d) must be < order (%d)", c.RemappingOrder, c.Order)
	}
	if c.RemappingOrder > 0 {
		return fmt.Errorf("config: remapping_order > 0 is not yet supported: the build path does not apply context remapping to grams_k, so it would silently mismatch the query path's remapped lookups")
	}
	if c.ValueType == ValueTypeProb {
		if c.ProbQuantizationBits < 2 || c.ProbQuantizationBits > 32 {
			return fmt.Errorf("config: probs quantization bits %d out of [2,32]", c.ProbQuantizationBits)
		}
		if c.BackoffQuantizationBits < 2 || c.BackoffQuantizationBits > 32 {
			return fmt.Errorf("config: backoffs quantization bits %d out of [2,32]", c.BackoffQuantizationBits)
		}
		if c.UnkProb > 0 {
			return fmt.Errorf("config: unk_prob must be <= 0 (log10 probability), got %v", c.UnkProb)
		}
	}
	if c.HashKeyBytes != 4 && c.HashKeyBytes != 8 {
		return fmt.Errorf("config: hash_key_bytes must be 4 or 8, got %d", c.HashKeyBytes)
	}
	return nil
}
