package valuetable

import "testing"

func TestBuildDistinctCountsRoundTrip(t *testing.T) {
	counts := []uint64{5, 1, 5, 3, 1, 9}
	table, ranks := BuildDistinctCounts(counts)
	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 distinct values", table.Len())
	}
	for i, c := range counts {
		if got := table.Access(ranks[i]); got != c {
			t.Errorf("Access(rank(%d)) = %d, want %d", c, got, c)
		}
	}
}

func TestBuildDistinctCountsRanksAreSortOrder(t *testing.T) {
	counts := []uint64{10, 20, 10, 30}
	table, ranks := BuildDistinctCounts(counts)
	// distinct sorted: [10, 20, 30] -> ranks 0,1,0,2
	want := []uint32{0, 1, 0, 2}
	for i := range counts {
		if ranks[i] != want[i] {
			t.Errorf("ranks[%d] = %d, want %d", i, ranks[i], want[i])
		}
	}
	if table.Access(0) != 10 || table.Access(1) != 20 || table.Access(2) != 30 {
		t.Fatalf("unexpected table contents")
	}
}

func TestBuildDistinctCountsEmpty(t *testing.T) {
	table, ranks := BuildDistinctCounts(nil)
	if table.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", table.Len())
	}
	if len(ranks) != 0 {
		t.Fatalf("len(ranks) = %d, want 0", len(ranks))
	}
}
