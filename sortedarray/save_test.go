package sortedarray

import (
	"testing"

	"github.com/tongrams-go/tongrams/compact"
	"github.com/tongrams-go/tongrams/ef"
	"github.com/tongrams-go/tongrams/pef"
	"github.com/tongrams-go/tongrams/seqcodec"
	"github.com/tongrams-go/tongrams/serialize"
)

func buildTestOrder(t *testing.T, pefGrams bool) *Order {
	t.Helper()
	groups := []ParentGroup{
		{TokenIDs: []uint64{0, 2, 4}},
		{TokenIDs: []uint64{1, 3}},
	}
	values, pointers, err := BuildGramsAndPointers(groups)
	if err != nil {
		t.Fatalf("BuildGramsAndPointers: %v", err)
	}
	var grams GramCodec
	if pefGrams {
		grams, err = pef.Build(values, 2)
	} else {
		grams, err = ef.Build(values)
	}
	if err != nil {
		t.Fatalf("build grams: %v", err)
	}
	order, err := NewOrder(grams, pointers, uint64(len(values)))
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	return order
}

func TestOrderSaveLoadRoundTrip(t *testing.T) {
	for _, pefGrams := range []bool{false, true} {
		order := buildTestOrder(t, pefGrams)

		w := serialize.NewWriter()
		if err := order.Save(w); err != nil {
			t.Fatalf("Save: %v", err)
		}
		buf := w.Finish()

		r := serialize.NewReader(buf)
		if err := r.VerifyTrailer(); err != nil {
			t.Fatalf("VerifyTrailer: %v", err)
		}
		loaded, err := LoadOrder(r)
		if err != nil {
			t.Fatalf("LoadOrder: %v", err)
		}
		if loaded.Len() != order.Len() {
			t.Fatalf("loaded.Len() = %d, want %d", loaded.Len(), order.Len())
		}
		r0 := loaded.Range(0)
		pos, err := loaded.Position(r0, 2)
		if err != nil {
			t.Fatalf("loaded.Position: %v", err)
		}
		if pos != 1 {
			t.Fatalf("loaded.Position(r0,2) = %d, want 1", pos)
		}
	}
}

func TestCountOrderSaveLoadRoundTrip(t *testing.T) {
	order := buildTestOrder(t, false)
	ranks := seqcodec.BuildIndexedCodewords([]uint64{3, 1, 0, 2, 5})
	co := NewCountOrder(order, ranks)

	w := serialize.NewWriter()
	if err := co.Save(w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadCountOrder(r)
	if err != nil {
		t.Fatalf("LoadCountOrder: %v", err)
	}
	for i := uint64(0); i < 5; i++ {
		if got, want := loaded.CountRank(i), co.CountRank(i); got != want {
			t.Errorf("loaded.CountRank(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCountOrderSaveLoadWithPrefixSummedRanks(t *testing.T) {
	order := buildTestOrder(t, false)
	values := []uint64{3, 0, 7, 2, 2}
	sums, err := ef.Build(seqcodec.Accumulate(values))
	if err != nil {
		t.Fatalf("ef.Build: %v", err)
	}
	ranks := seqcodec.NewPrefixSummed(sums)
	co := NewCountOrder(order, ranks)

	w := serialize.NewWriter()
	if err := co.Save(w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadCountOrder(r)
	if err != nil {
		t.Fatalf("LoadCountOrder: %v", err)
	}
	for i, want := range values {
		if got := loaded.CountRank(uint64(i)); got != want {
			t.Errorf("loaded.CountRank(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestProbOrderSaveLoadNonTerminal(t *testing.T) {
	order := buildTestOrder(t, false)
	pb := compact.NewPairBuilder(4, 4, order.Len())
	probs := [][2]uint64{{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}}
	for _, pr := range probs {
		pb.PushBack(pr[0], pr[1])
	}
	po := NewNonTerminalProbOrder(order, pb.Build())
	if po.IsTerminal() {
		t.Fatal("IsTerminal() = true, want false")
	}

	w := serialize.NewWriter()
	if err := po.Save(w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadProbOrder(r)
	if err != nil {
		t.Fatalf("LoadProbOrder: %v", err)
	}
	if loaded.IsTerminal() {
		t.Fatal("loaded.IsTerminal() = true, want false")
	}
	for i, want := range probs {
		probRank, backoffRank, hasBackoff := loaded.ProbBackoffRank(uint64(i))
		if !hasBackoff {
			t.Fatalf("loaded.ProbBackoffRank(%d) hasBackoff = false, want true", i)
		}
		if uint64(probRank) != want[0] || uint64(backoffRank) != want[1] {
			t.Errorf("loaded.ProbBackoffRank(%d) = (%d,%d), want (%d,%d)", i, probRank, backoffRank, want[0], want[1])
		}
	}
}

func TestProbOrderSaveLoadTerminal(t *testing.T) {
	order := buildTestOrder(t, false)
	b := compact.NewBuilder(4, order.Len())
	probs := []uint64{1, 3, 5, 7, 9}
	for _, v := range probs {
		b.PushBack(v)
	}
	po := NewTerminalProbOrder(order, b.Build())
	if !po.IsTerminal() {
		t.Fatal("IsTerminal() = false, want true")
	}

	w := serialize.NewWriter()
	if err := po.Save(w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf := w.Finish()

	r := serialize.NewReader(buf)
	if err := r.VerifyTrailer(); err != nil {
		t.Fatalf("VerifyTrailer: %v", err)
	}
	loaded, err := LoadProbOrder(r)
	if err != nil {
		t.Fatalf("LoadProbOrder: %v", err)
	}
	if !loaded.IsTerminal() {
		t.Fatal("loaded.IsTerminal() = false, want true")
	}
	for i, want := range probs {
		probRank, _, hasBackoff := loaded.ProbBackoffRank(uint64(i))
		if hasBackoff {
			t.Fatalf("loaded.ProbBackoffRank(%d) hasBackoff = true, want false", i)
		}
		if uint64(probRank) != want {
			t.Errorf("loaded.ProbBackoffRank(%d) = %d, want %d", i, probRank, want)
		}
	}
}
