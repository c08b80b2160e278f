package source

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func gzipString(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return &buf
}

func TestReadCountFileParsesGrams(t *testing.T) {
	content := "2\n" +
		"the cat\t4\n" +
		"cat sat\t3\n"
	grams, err := ReadCountFile(gzipString(t, content))
	if err != nil {
		t.Fatalf("ReadCountFile: %v", err)
	}
	if len(grams) != 2 {
		t.Fatalf("len(grams) = %d, want 2", len(grams))
	}
	if grams[0].Count != 4 || len(grams[0].Tokens) != 2 || grams[0].Tokens[0] != "the" || grams[0].Tokens[1] != "cat" {
		t.Errorf("grams[0] = %+v", grams[0])
	}
	if grams[1].Count != 3 {
		t.Errorf("grams[1].Count = %d, want 3", grams[1].Count)
	}
}

func TestReadCountFileRejectsHeaderMismatch(t *testing.T) {
	content := "5\n" +
		"the cat\t4\n"
	if _, err := ReadCountFile(gzipString(t, content)); err == nil {
		t.Fatal("expected error for header/line count mismatch")
	}
}

func TestReadCountFileRejectsMissingTab(t *testing.T) {
	content := "1\n" +
		"the cat nocount\n"
	if _, err := ReadCountFile(gzipString(t, content)); err == nil {
		t.Fatal("expected error for missing count field")
	}
}

func TestReadCountFileRejectsNonGzip(t *testing.T) {
	if _, err := ReadCountFile(bytes.NewReader([]byte("not gzip"))); err == nil {
		t.Fatal("expected error opening non-gzip input")
	}
}
