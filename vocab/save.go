package vocab

import (
	"github.com/tongrams-go/tongrams/mph"
	"github.com/tongrams-go/tongrams/serialize"
)

// Bits returns the vocabulary's on-disk size in bits.
func (v *CountVocabulary) Bits() uint64 { return v.table.Bits() }

// HashKeyWidth returns the bit width of the stored per-token verification
// hash.
func (v *CountVocabulary) HashKeyWidth() uint { return v.table.VerifyKeyWidth() }

// Save writes v via w by delegating to the underlying MPH table.
func (v *CountVocabulary) Save(w *serialize.Writer) { v.table.Save(w) }

// LoadCountVocabulary reads back a CountVocabulary written by Save.
func LoadCountVocabulary(r *serialize.Reader) (*CountVocabulary, error) {
	t, err := mph.LoadTable(r)
	if err != nil {
		return nil, err
	}
	return &CountVocabulary{table: t}, nil
}

// Bits returns the vocabulary's on-disk size in bits.
func (v *ProbVocabulary) Bits() uint64 { return v.table.Bits() }

// HashKeyWidth returns the bit width of the stored per-token verification
// hash.
func (v *ProbVocabulary) HashKeyWidth() uint { return v.table.VerifyKeyWidth() }

// Save writes v via w by delegating to the underlying MPH table.
func (v *ProbVocabulary) Save(w *serialize.Writer) { v.table.Save(w) }

// LoadProbVocabulary reads back a ProbVocabulary written by Save.
func LoadProbVocabulary(r *serialize.Reader) (*ProbVocabulary, error) {
	t, err := mph.LoadPairTable(r)
	if err != nil {
		return nil, err
	}
	return &ProbVocabulary{table: t}, nil
}
