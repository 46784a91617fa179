package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write(Record{Start: 0, End: 9, ArmLength: 5, Sequence: "ACGTACGTAC", SequenceName: "chr1 extra"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Write(Record{Start: 10, End: 19, ArmLength: 5, Sequence: "TTTTTAAAAA", SequenceName: "chr1 extra"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 records)", len(lines))
	}
	if lines[0] != header {
		t.Fatalf("got header %q, want %q", lines[0], header)
	}
}

func TestRecordNameHeadTruncatesAtWhitespace(t *testing.T) {
	r := Record{SequenceName: "chr1 some description"}
	if got := r.NameHead(); got != "chr1" {
		t.Fatalf("got %q, want %q", got, "chr1")
	}
}

func TestRecordNameHeadNoWhitespace(t *testing.T) {
	r := Record{SequenceName: "chr1"}
	if got := r.NameHead(); got != "chr1" {
		t.Fatalf("got %q, want %q", got, "chr1")
	}
}
