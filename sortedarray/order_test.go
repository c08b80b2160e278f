package sortedarray

import (
	"testing"

	"github.com/tongrams-go/tongrams/ef"
)

func TestBuildGramsAndPointersOffsetsAcrossBlocks(t *testing.T) {
	// Two parent blocks whose raw child ids are NOT globally increasing
	// across the block boundary (second block's first id is smaller than
	// the first block's last id): without the running-max offset the
	// concatenated grams_k sequence would not be monotone.
	groups := []ParentGroup{
		{TokenIDs: []uint64{5, 9}},
		{TokenIDs: []uint64{1, 3}},
	}
	values, pointers, err := BuildGramsAndPointers(groups)
	if err != nil {
		t.Fatalf("BuildGramsAndPointers: %v", err)
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("values not monotone: %v", values)
		}
	}
	if pointers.Access(0) != 0 || pointers.Access(1) != 2 || pointers.Access(2) != 4 {
		t.Fatalf("unexpected pointers: 0=%d 1=%d 2=%d", pointers.Access(0), pointers.Access(1), pointers.Access(2))
	}
}

func TestOrderRangeAndPosition(t *testing.T) {
	groups := []ParentGroup{
		{TokenIDs: []uint64{0, 2, 4}},
		{TokenIDs: []uint64{1, 3}},
		{TokenIDs: nil},
	}
	values, pointers, err := BuildGramsAndPointers(groups)
	if err != nil {
		t.Fatalf("BuildGramsAndPointers: %v", err)
	}
	gramCodec, err := ef.Build(values)
	if err != nil {
		t.Fatalf("ef.Build: %v", err)
	}
	order, err := NewOrder(gramCodec, pointers, uint64(len(values)))
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	r0 := order.Range(0)
	if r0.Begin != 0 || r0.End != 3 {
		t.Fatalf("Range(0) = %+v, want {0,3}", r0)
	}
	pos, err := order.Position(r0, 2)
	if err != nil {
		t.Fatalf("Position(r0, 2): %v", err)
	}
	if pos != 1 {
		t.Fatalf("Position(r0, 2) = %d, want 1", pos)
	}

	r1 := order.Range(1)
	if r1.Begin != 3 || r1.End != 5 {
		t.Fatalf("Range(1) = %+v, want {3,5}", r1)
	}
	pos, err = order.Position(r1, 3)
	if err != nil {
		t.Fatalf("Position(r1, 3): %v", err)
	}
	if pos != 4 {
		t.Fatalf("Position(r1, 3) = %d, want 4", pos)
	}

	if _, err := order.Position(r1, 9); err != ErrNotFound {
		t.Fatalf("Position(r1, 9) error = %v, want ErrNotFound", err)
	}

	r2 := order.Range(2)
	if r2.Begin != r2.End {
		t.Fatalf("Range(2) = %+v, want an empty range", r2)
	}
}

func TestOrderLocalRank(t *testing.T) {
	groups := []ParentGroup{{TokenIDs: []uint64{0, 2, 5}}}
	values, pointers, err := BuildGramsAndPointers(groups)
	if err != nil {
		t.Fatalf("BuildGramsAndPointers: %v", err)
	}
	gramCodec, err := ef.Build(values)
	if err != nil {
		t.Fatalf("ef.Build: %v", err)
	}
	order, err := NewOrder(gramCodec, pointers, uint64(len(values)))
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	rank, ok := order.LocalRank(0, 3, 2)
	if !ok {
		t.Fatal("LocalRank(0,3,2) not found")
	}
	if rank != 1 {
		t.Fatalf("LocalRank(0,3,2) = %d, want 1", rank)
	}

	if _, ok := order.LocalRank(0, 3, 9); ok {
		t.Fatal("LocalRank(0,3,9) unexpectedly found")
	}
}

func TestNewOrderRejectsBadPointers(t *testing.T) {
	values := []uint64{0, 1}
	gramCodec, err := ef.Build(values)
	if err != nil {
		t.Fatalf("ef.Build: %v", err)
	}
	badPointers, err := ef.Build([]uint64{0, 5})
	if err != nil {
		t.Fatalf("ef.Build: %v", err)
	}
	if _, err := NewOrder(gramCodec, badPointers, uint64(len(values))); err == nil {
		t.Fatal("expected error for pointers_k back() != n_k")
	}
}
