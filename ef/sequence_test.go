package ef

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tongrams-go/tongrams/serialize"
)

func TestSequenceAccessRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 1, 4, 7, 7, 7, 20, 1000}
	seq, err := Build(values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, v := range values {
		if got := seq.Access(uint64(i)); got != v {
			t.Errorf("Access(%d) = %d, want %d", i, got, v)
		}
	}
}

func TestSequenceBuildRejectsUnsorted(t *testing.T) {
	if _, err := Build([]uint64{3, 1, 2}); err == nil {
		t.Fatal("expected error for unsorted input")
	}
}

func TestSequenceFind(t *testing.T) {
	values := []uint64{2, 5, 5, 9, 12, 12, 12, 30}
	seq, err := Build(values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := Range{Begin: 0, End: seq.Len()}

	pos, err := seq.Find(r, 9)
	if err != nil {
		t.Fatalf("Find(9): %v", err)
	}
	if pos != 3 {
		t.Fatalf("Find(9) = %d, want 3", pos)
	}

	if _, err := seq.Find(r, 8); err != ErrNotFound {
		t.Fatalf("Find(8) error = %v, want ErrNotFound", err)
	}
}

func TestSequenceNextGEQ(t *testing.T) {
	values := []uint64{1, 3, 5, 7, 9}
	seq, err := Build(values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pos, err := seq.NextGEQ(6, 0, seq.Len())
	if err != nil {
		t.Fatalf("NextGEQ(6): %v", err)
	}
	if pos != 3 {
		t.Fatalf("NextGEQ(6) = %d, want 3", pos)
	}
	if _, err := seq.NextGEQ(100, 0, seq.Len()); err != ErrNotFound {
		t.Fatalf("NextGEQ(100) error = %v, want ErrNotFound", err)
	}
}

func TestSequenceUpperBound(t *testing.T) {
	values := []uint64{4, 10, 10, 15}
	seq, err := Build(values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := seq.UpperBound(0); got != 0 {
		t.Fatalf("UpperBound(0) = %d, want 0", got)
	}
	if got := seq.UpperBound(2); got != 10 {
		t.Fatalf("UpperBound(2) = %d, want 10", got)
	}
}

func TestSequenceIterator(t *testing.T) {
	values := []uint64{2, 4, 6, 8}
	seq, err := Build(values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	it := seq.At(1)
	var got []uint64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]uint64{4, 6, 8}, got); diff != "" {
		t.Fatalf("iterator mismatch (-want +got):\n%s", diff)
	}
}

func TestSequenceSaveLoadRoundTrip(t *testing.T) {
	values := []uint64{0, 3, 3, 9, 40, 40, 41, 1000, 1000, 1001}
	seq, err := Build(values)
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

	if loaded.Len() != seq.Len() || loaded.Universe() != seq.Universe() {
		t.Fatalf("loaded (len,u) = (%d,%d), want (%d,%d)", loaded.Len(), loaded.Universe(), seq.Len(), seq.Universe())
	}
	for i, v := range values {
		if got := loaded.Access(uint64(i)); got != v {
			t.Errorf("loaded.Access(%d) = %d, want %d", i, got, v)
		}
	}
}

func TestSequenceEmpty(t *testing.T) {
	seq, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil): %v", err)
	}
	if seq.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", seq.Len())
	}
}
