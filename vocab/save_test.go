package vocab

import (
	"testing"

	"github.com/tongrams-go/tongrams/serialize"
)

func TestCountVocabularySaveLoadRoundTrip(t *testing.T) {
	tokens := [][]byte{[]byte("<unk>"), []byte("the"), []byte("cat"), []byte("sat")}
	v, err := BuildCountVocabulary(tokens, 32)
	if err != nil {
		t.Fatalf("BuildCountVocabulary: %v", err)
	}

	w := serialize.NewWriter()
	v.Save(w)
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadCountVocabulary(r)
	if err != nil {
		t.Fatalf("LoadCountVocabulary: %v", err)
	}
	if loaded.Size() != v.Size() {
		t.Fatalf("loaded.Size() = %d, want %d", loaded.Size(), v.Size())
	}
	for i, tok := range tokens {
		id, err := loaded.Lookup(tok)
		if err != nil {
			t.Fatalf("loaded.Lookup(%q): %v", tok, err)
		}
		if id != uint64(i) {
			t.Errorf("loaded.Lookup(%q) = %d, want %d", tok, id, i)
		}
	}
	if _, err := loaded.Lookup([]byte("dog")); err != ErrUnknownToken {
		t.Fatalf("loaded.Lookup(\"dog\") error = %v, want ErrUnknownToken", err)
	}
}

func TestProbVocabularySaveLoadRoundTrip(t *testing.T) {
	entries := []UnigramEntry{
		{Token: []byte("the"), ID: 0, PackedProb: (5 << 4) | 2},
		{Token: []byte("cat"), ID: 1, PackedProb: (9 << 4) | 1},
	}
	v, err := BuildProbVocabulary(entries, 32)
	if err != nil {
		t.Fatalf("BuildProbVocabulary: %v", err)
	}

	w := serialize.NewWriter()
	v.Save(w)
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadProbVocabulary(r)
	if err != nil {
		t.Fatalf("LoadProbVocabulary: %v", err)
	}
	id, packed, err := loaded.Lookup([]byte("cat"))
	if err != nil {
		t.Fatalf("loaded.Lookup(\"cat\"): %v", err)
	}
	if id != 1 || packed != (9<<4)|1 {
		t.Errorf("loaded.Lookup(\"cat\") = (%d,%d), want (1,%d)", id, packed, (9<<4)|1)
	}
	if _, _, err := loaded.Lookup([]byte("dog")); err != ErrUnknownToken {
		t.Fatalf("loaded.Lookup(\"dog\") error = %v, want ErrUnknownToken", err)
	}
}
