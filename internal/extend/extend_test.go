package extend

import (
	"testing"

	"github.com/invpal/invpal/internal/encode"
)

func mustEncode(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := encode.Sequence([]byte(s))
	if err != nil {
		t.Fatalf("encode %q: %v", s, err)
	}
	return enc
}

func TestCountMatchingFullRun(t *testing.T) {
	// ACGT is its own reverse-complement.
	enc := mustEncode(t, "ACGT")
	n, err := CountMatching(enc[0:2], enc[2:4])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d matches, want 2", n)
	}
}

func TestCountMatchingStopsAtMismatch(t *testing.T) {
	// fwd = AC, rev = AA: complement(AA reversed) = TT, so A != T at
	// the first position.
	fwd := mustEncode(t, "AC")
	rev := mustEncode(t, "AA")
	n, err := CountMatching(fwd, rev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d matches, want 0", n)
	}
}

func TestCountMatchingRejectsOversizeSlice(t *testing.T) {
	big := make([]byte, 9)
	if _, err := CountMatching(big, big[:1]); err == nil {
		t.Fatal("expected a length error")
	}
	if _, err := CountMatching(big[:1], big); err == nil {
		t.Fatal("expected a length error")
	}
}

func TestExtendWalksOutwardAcrossChunks(t *testing.T) {
	// Build a sequence whose first half is the reverse complement of
	// its second half.
	half := "GATTACAGAT"
	full := half + revComp(half)
	enc := mustEncode(t, full)
	index := len(half)

	n, err := Extend(index, 0, index, enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(half) {
		t.Fatalf("got %d matches, want %d", n, len(half))
	}
}

func revComp(s string) string {
	comp := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}
	return string(out)
}
