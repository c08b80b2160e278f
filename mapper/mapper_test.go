package mapper

import "testing"

type fakeRanker struct {
	ranks map[[3]uint64]uint64
}

func (f fakeRanker) LocalRank(rangeBegin, rangeEnd, id uint64) (uint64, bool) {
	rank, ok := f.ranks[[3]uint64{rangeBegin, rangeEnd, id}]
	return rank, ok
}

func TestIdentityMapperReturnsRawID(t *testing.T) {
	m := IdentityMapper{}
	id, ok := m.Map(nil, 0, 0, 42)
	if !ok || id != 42 {
		t.Fatalf("Map() = (%d, %v), want (42, true)", id, ok)
	}
}

func TestContextMapperDelegatesToRanker(t *testing.T) {
	ranker := fakeRanker{ranks: map[[3]uint64]uint64{
		{10, 20, 15}: 5,
	}}
	m := ContextMapper{}
	rank, ok := m.Map(ranker, 10, 20, 15)
	if !ok || rank != 5 {
		t.Fatalf("Map() = (%d, %v), want (5, true)", rank, ok)
	}

	if _, ok := m.Map(ranker, 10, 20, 999); ok {
		t.Fatal("Map() for unknown id unexpectedly succeeded")
	}
}

func TestSelectDispatchesOnRemappingOrder(t *testing.T) {
	if _, ok := Select(0).(IdentityMapper); !ok {
		t.Fatal("Select(0) did not return IdentityMapper")
	}
	if _, ok := Select(1).(ContextMapper); !ok {
		t.Fatal("Select(1) did not return ContextMapper")
	}
	if _, ok := Select(2).(ContextMapper); !ok {
		t.Fatal("Select(2) did not return ContextMapper")
	}
}
