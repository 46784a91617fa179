package encode

import (
	"bytes"
	"testing"
)

func TestSequenceComplementXOR(t *testing.T) {
	enc, err := Sequence([]byte("ACGTacgt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{baseA, baseC, baseG, baseT, baseA, baseC, baseG, baseT}
	if !bytes.Equal(enc, want) {
		t.Fatalf("got %v, want %v", enc, want)
	}

	if enc[0]^enc[3] != 0xFF {
		t.Errorf("A^T = %#x, want 0xFF", enc[0]^enc[3])
	}
	if enc[1]^enc[2] != 0xFF {
		t.Errorf("C^G = %#x, want 0xFF", enc[1]^enc[2])
	}
}

func TestSequenceRejectsInvalidBase(t *testing.T) {
	if _, err := Sequence([]byte("ACGXT")); err == nil {
		t.Fatal("expected an error for an invalid base")
	}
}

func TestSequenceEmpty(t *testing.T) {
	enc, err := Sequence(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc) != 0 {
		t.Fatalf("expected empty output, got %v", enc)
	}
}
