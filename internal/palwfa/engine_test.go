package palwfa

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

func revComp(s string) string {
	comp := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}
	return string(out)
}

func TestRunPerfectPalindromeNoGap(t *testing.T) {
	half := "GATTACAGAT"
	full := half + revComp(half)
	enc := mustEncode(t, full)
	index := len(half)

	cfg := Config{
		GapLen:             0,
		MatchBonus:         1,
		MismatchPenalty:    4,
		XDrop:              20,
		MismatchProportion: 0.05,
	}

	e := NewEngine()
	defer RecycleEngine(e)

	result := e.Run(enc, index, cfg)

	if result.EditDist != 0 {
		t.Fatalf("got edit distance %d, want 0", result.EditDist)
	}
	if result.Extent != len(half) {
		t.Fatalf("got extent %d, want %d", result.Extent, len(half))
	}
}

func TestRunStopsAtSequenceBoundary(t *testing.T) {
	// A palindrome flush against both ends of a short sequence: the
	// wave must stop via the x==len(enc) condition, not run off the
	// backing array.
	seq := "ACGT"
	enc := mustEncode(t, seq)
	index := 2

	cfg := Config{
		GapLen:             0,
		MatchBonus:         1,
		MismatchPenalty:    4,
		XDrop:              20,
		MismatchProportion: 0.5,
	}

	e := NewEngine()
	defer RecycleEngine(e)

	result := e.Run(enc, index, cfg)
	if result.Extent != 2 {
		t.Fatalf("got extent %d, want 2", result.Extent)
	}
}
