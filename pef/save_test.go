package pef

import (
	"testing"

	"github.com/tongrams-go/tongrams/serialize"
)

func TestSequenceSaveLoadRoundTrip(t *testing.T) {
	values := make([]uint64, 0, 20)
	v := uint64(0)
	for i := 0; i < 20; i++ {
		v += uint64(i % 3)
		values = append(values, v)
	}
	seq, err := Build(values, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	w := serialize.NewWriter()
	seq.Save(w)
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := Load(r)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != seq.Len() {
		t.Fatalf("loaded.Len() = %d, want %d", loaded.Len(), seq.Len())
	}
	for i, want := range values {
		if got := loaded.Access(uint64(i)); got != want {
			t.Errorf("loaded.Access(%d) = %d, want %d", i, got, want)
		}
	}

	pos, err := loaded.Find(Range{Begin: 0, End: loaded.Len()}, values[7])
	if err != nil {
		t.Fatalf("loaded.Find: %v", err)
	}
	if loaded.Access(pos) != values[7] {
		t.Fatalf("loaded.Find returned position %d accessing to %d, want %d", pos, loaded.Access(pos), values[7])
	}
}

func TestSequenceSaveLoadEmpty(t *testing.T) {
	seq, err := Build(nil, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	w := serialize.NewWriter()
	seq.Save(w)
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := Load(r)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("loaded.Len() = %d, want 0", loaded.Len())
	}
}
