package trie

import (
	"testing"

	"github.com/tongrams-go/tongrams/serialize"
)

func TestCountModelSaveOpenRoundTrip(t *testing.T) {
	model := buildToyCountModel(t)
	data := model.Save()

	reopened, err := OpenCountModel(data)
	if err != nil {
		t.Fatalf("OpenCountModel: %v", err)
	}

	for _, gram := range []string{"cat", "the cat", "on the", "cat sat on"} {
		want, wantErr := model.Lookup(gram)
		got, gotErr := reopened.Lookup(gram)
		if wantErr != gotErr {
			t.Fatalf("Lookup(%q) error mismatch: original=%v reopened=%v", gram, wantErr, gotErr)
		}
		if got != want {
			t.Errorf("Lookup(%q) = %d after round-trip, want %d", gram, got, want)
		}
	}
	if _, err := reopened.Lookup("the mat"); err != ErrNotFound {
		t.Fatalf("Lookup(\"the mat\") after round-trip = %v, want ErrNotFound", err)
	}
}

func TestCountModelOpenRejectsCorruptTrailer(t *testing.T) {
	model := buildToyCountModel(t)
	data := model.Save()
	data[len(data)-1] ^= 0xFF
	if _, err := OpenCountModel(data); err == nil {
		t.Fatal("OpenCountModel with a corrupted trailer: got nil error, want a checksum mismatch")
	}
}

func TestCountModelOpenRejectsVersionMismatch(t *testing.T) {
	model := buildToyCountModel(t)
	data := model.Save()
	data[0] = serialize.FormatVersion + 1
	w := serialize.NewWriter()
	// Re-derive a valid trailer over the tampered payload so the version
	// check (not the checksum check) is what rejects this input.
	payload := data[:len(data)-4]
	for _, b := range payload {
		w.WriteByte(b)
	}
	retagged := w.Finish()
	if _, err := OpenCountModel(retagged); err == nil {
		t.Fatal("OpenCountModel with a bumped version byte: got nil error, want ErrVersionMismatch")
	}
}

func TestProbModelSaveOpenRoundTrip(t *testing.T) {
	model := buildToyProbModel(t)
	data := model.Save()

	reopened, err := OpenProbModel(data)
	if err != nil {
		t.Fatalf("OpenProbModel: %v", err)
	}

	sentence := []string{"the", "cat", "sat"}
	state1 := NewState(model.Order)
	state2 := NewState(reopened.Order)
	state1.Init()
	state2.Init()
	for _, word := range sentence {
		got := reopened.Score(state2, word)
		want := model.Score(state1, word)
		if !approxEqual(got, want) {
			t.Errorf("Score(%q) = %v after round-trip, want %v", word, got, want)
		}
	}
}

func TestModelStatsReportsPositiveTotals(t *testing.T) {
	model := buildToyCountModel(t)
	stats := model.Stats()
	if stats.TotalBytes == 0 {
		t.Fatal("Stats().TotalBytes = 0, want > 0")
	}
	if stats.VocabularyBytes == 0 {
		t.Fatal("Stats().VocabularyBytes = 0, want > 0")
	}
}
