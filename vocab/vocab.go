// Package vocab implements the token vocabulary of spec.md §3/§4.5: a
// minimal-perfect-hash mapping from token byte-strings to dense ids
// (count models), or to (id, packed unigram prob/back-off) pairs (prob
// models), with safe rejection of out-of-vocabulary strings.
package vocab

import (
	"errors"

	"github.com/tongrams-go/tongrams/mph"
)

// ErrUnknownToken is returned by Lookup for a string not in the vocabulary.
var ErrUnknownToken = errors.New("vocab: unknown token")

// CountVocabulary is the vocabulary of a count model: token -> id only.
type CountVocabulary struct {
	table *mph.Table
}

// BuildCountVocabulary constructs the vocabulary from tokens in id order
// (tokens[i] has id i).
func BuildCountVocabulary(tokens [][]byte, verifyBits uint) (*CountVocabulary, error) {
	ids := make([]uint64, len(tokens))
	for i := range tokens {
		ids[i] = uint64(i)
	}
	t, err := mph.BuildTable(tokens, ids, verifyBits)
	if err != nil {
		return nil, err
	}
	return &CountVocabulary{table: t}, nil
}

// Lookup returns the id of token, or ErrUnknownToken.
func (v *CountVocabulary) Lookup(token []byte) (uint64, error) {
	id, ok := v.table.Get(token)
	if !ok {
		return 0, ErrUnknownToken
	}
	return id, nil
}

// Size returns the number of unigrams.
func (v *CountVocabulary) Size() uint64 { return v.table.Len() }

// ProbVocabulary is the vocabulary of a prob/back-off model: token -> id
// plus its packed unigram (prob-rank, back-off-rank), per spec.md §4.5
// ("double-valued... carries id + packed (prob, back-off)").
type ProbVocabulary struct {
	table *mph.PairTable
}

// UnigramEntry is one row of the vocabulary build input.
type UnigramEntry struct {
	Token      []byte
	ID         uint64
	PackedProb uint64 // (probRank<<backoffWidth)|backoffRank, see trie package
}

// BuildProbVocabulary constructs the vocabulary from unigram entries.
func BuildProbVocabulary(entries []UnigramEntry, verifyBits uint) (*ProbVocabulary, error) {
	keys := make([][]byte, len(entries))
	ids := make([]uint64, len(entries))
	packed := make([]uint64, len(entries))
	for i, e := range entries {
		keys[i] = e.Token
		ids[i] = e.ID
		packed[i] = e.PackedProb
	}
	t, err := mph.BuildPairTable(keys, ids, packed, verifyBits)
	if err != nil {
		return nil, err
	}
	return &ProbVocabulary{table: t}, nil
}

// Lookup returns token's id and packed unigram (prob, back-off) value, or
// ErrUnknownToken.
func (v *ProbVocabulary) Lookup(token []byte) (id, packed uint64, err error) {
	id, packed, ok := v.table.Get(token)
	if !ok {
		return 0, 0, ErrUnknownToken
	}
	return id, packed, nil
}

// Size returns the number of unigrams.
func (v *ProbVocabulary) Size() uint64 { return v.table.Len() }
