package seqcodec

import (
	"testing"

	"github.com/tongrams-go/tongrams/serialize"
)

func TestIndexedCodewordsSaveLoadRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 5, 8, 100, 1000, 1 << 20, 0, 3}
	ic := BuildIndexedCodewords(values)

	w := serialize.NewWriter()
	ic.Save(w)
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadIndexedCodewords(r)
	if err != nil {
		t.Fatalf("LoadIndexedCodewords: %v", err)
	}
	if loaded.Len() != ic.Len() {
		t.Fatalf("loaded.Len() = %d, want %d", loaded.Len(), ic.Len())
	}
	for i, want := range values {
		if got := loaded.Access(uint64(i)); got != want {
			t.Errorf("loaded.Access(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestIndexedCodewordsSaveLoadEmpty(t *testing.T) {
	ic := BuildIndexedCodewords(nil)

	w := serialize.NewWriter()
	ic.Save(w)
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadIndexedCodewords(r)
	if err != nil {
		t.Fatalf("LoadIndexedCodewords: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("loaded.Len() = %d, want 0", loaded.Len())
	}
}
