package valuetable

import "testing"

func TestBuildQuantizerRoundTripWithinBucketWidth(t *testing.T) {
	values := []float32{-1, -2, -3, -4, -5, -6, -7, -8}
	table, ranks, err := BuildQuantizer(values, 2) // 4 bins over 8 values
	if err != nil {
		t.Fatalf("BuildQuantizer: %v", err)
	}
	if len(ranks) != len(values) {
		t.Fatalf("len(ranks) = %d, want %d", len(ranks), len(values))
	}
	if table.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", table.Size())
	}
	for i, v := range values {
		got := table.Access(ranks[i])
		if diff := float64(got) - float64(v); diff > 1.5 || diff < -1.5 {
			t.Errorf("value %v quantized to %v, drifted more than a bucket width", v, got)
		}
	}
}

func TestBuildQuantizerRejectsOutOfRangeBits(t *testing.T) {
	if _, _, err := BuildQuantizer([]float32{1, 2}, 1); err == nil {
		t.Fatal("expected error for bits < 2")
	}
	if _, _, err := BuildQuantizer([]float32{1, 2}, 33); err == nil {
		t.Fatal("expected error for bits > 32")
	}
}

func TestBuildQuantizerEmpty(t *testing.T) {
	table, ranks, err := BuildQuantizer(nil, 8)
	if err != nil {
		t.Fatalf("BuildQuantizer(nil): %v", err)
	}
	if ranks != nil {
		t.Fatalf("ranks = %v, want nil", ranks)
	}
	if table.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", table.Size())
	}
}

func TestBuildQuantizerFewerValuesThanBins(t *testing.T) {
	values := []float32{-1, -2, -3}
	table, ranks, err := BuildQuantizer(values, 8) // 256 bins but only 3 values
	if err != nil {
		t.Fatalf("BuildQuantizer: %v", err)
	}
	if table.Size() != 3 {
		t.Fatalf("Size() = %d, want 3 (one bin per distinct value)", table.Size())
	}
	for i, v := range values {
		if got := table.Access(ranks[i]); got != v {
			t.Errorf("Access(rank(%v)) = %v, want exact %v", v, got, v)
		}
	}
}
