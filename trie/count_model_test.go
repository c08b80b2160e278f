package trie

import (
	"testing"

	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/sortedarray"
)

// buildToyCountModel assembles a tiny 3-gram count model over a five-word
// vocabulary, exercising CountModel.Lookup across all three orders.
func buildToyCountModel(t *testing.T) *CountModel {
	t.Helper()

	cfg := &config.BuildConfig{
		Order:          3,
		DataStructure:  config.DataStructureEF,
		RemappingOrder: 0,
		RanksType:      config.RanksTypeIndexedCodewords,
		HashKeyBytes:   4,
	}

	// ids: the=0 cat=1 sat=2 on=3 mat=4
	unigramTokens := [][]byte{[]byte("the"), []byte("cat"), []byte("sat"), []byte("on"), []byte("mat")}
	unigramCounts := []uint64{10, 5, 5, 3, 2}

	prevOrder1 := [][]uint64{{0}, {1}, {2}, {3}, {4}}

	bigramTuples := [][]uint64{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	bigramCounts := []uint64{4, 3, 3, 1}
	bigramGroups, bigramFlat, err := GroupCountGrams(prevOrder1, bigramTuples, bigramCounts)
	if err != nil {
		t.Fatalf("GroupCountGrams(order 2): %v", err)
	}

	trigramTuples := [][]uint64{{0, 1, 2}, {1, 2, 3}, {2, 3, 0}}
	trigramCounts := []uint64{2, 2, 1}
	trigramGroups, _, err := GroupCountGrams(bigramFlat, trigramTuples, trigramCounts)
	if err != nil {
		t.Fatalf("GroupCountGrams(order 3): %v", err)
	}

	model, err := BuildCountModel(cfg, unigramTokens, unigramCounts, [][]sortedarray.ParentGroup{bigramGroups, trigramGroups})
	if err != nil {
		t.Fatalf("BuildCountModel: %v", err)
	}
	return model
}

func TestCountModelLookupUnigram(t *testing.T) {
	model := buildToyCountModel(t)
	got, err := model.Lookup("cat")
	if err != nil {
		t.Fatalf("Lookup(\"cat\"): %v", err)
	}
	if got != 5 {
		t.Fatalf("Lookup(\"cat\") = %d, want 5", got)
	}
}

func TestCountModelLookupBigram(t *testing.T) {
	model := buildToyCountModel(t)
	got, err := model.Lookup("the cat")
	if err != nil {
		t.Fatalf("Lookup(\"the cat\"): %v", err)
	}
	if got != 4 {
		t.Fatalf("Lookup(\"the cat\") = %d, want 4", got)
	}

	got, err = model.Lookup("on the")
	if err != nil {
		t.Fatalf("Lookup(\"on the\"): %v", err)
	}
	if got != 1 {
		t.Fatalf("Lookup(\"on the\") = %d, want 1", got)
	}
}

func TestCountModelLookupTrigram(t *testing.T) {
	model := buildToyCountModel(t)
	got, err := model.Lookup("cat sat on")
	if err != nil {
		t.Fatalf("Lookup(\"cat sat on\"): %v", err)
	}
	if got != 2 {
		t.Fatalf("Lookup(\"cat sat on\") = %d, want 2", got)
	}
}

func TestCountModelLookupMissingGram(t *testing.T) {
	model := buildToyCountModel(t)
	if _, err := model.Lookup("the mat"); err != ErrNotFound {
		t.Fatalf("Lookup(\"the mat\") error = %v, want ErrNotFound", err)
	}
}

func TestCountModelLookupUnknownToken(t *testing.T) {
	model := buildToyCountModel(t)
	if _, err := model.Lookup("the dog"); err != ErrNotFound {
		t.Fatalf("Lookup(\"the dog\") error = %v, want ErrNotFound", err)
	}
}

func TestCountModelLookupOrderTooLong(t *testing.T) {
	model := buildToyCountModel(t)
	if _, err := model.Lookup("the cat sat on mat"); err != ErrNotFound {
		t.Fatalf("Lookup of a 5-gram against a 3-gram model = %v, want ErrNotFound", err)
	}
}
