package adapters

import (
	"testing"

	"github.com/invpal/invpal/internal/seqio"
)

func TestTrimPolyRunsStripsLeadingPolyT(t *testing.T) {
	seq := "GGGGTTTTTTTTACGTACGT"
	got := TrimPolyRuns(seq)
	if got != "ACGTACGT" {
		t.Fatalf("got %q, want %q", got, "ACGTACGT")
	}
}

func TestTrimPolyRunsStripsTrailingPolyAWhenNoPolyT(t *testing.T) {
	seq := "ACGTACGTAAAAAAAAGGGG"
	got := TrimPolyRuns(seq)
	if got != "ACGTACGT" {
		t.Fatalf("got %q, want %q", got, "ACGTACGT")
	}
}

func TestTrimPolyRunsLeavesUnmatchedSequence(t *testing.T) {
	seq := "ACGTACGTACGT"
	if got := TrimPolyRuns(seq); got != seq {
		t.Fatalf("got %q, want unchanged %q", got, seq)
	}
}

func TestAlignBestPicksLowestScore(t *testing.T) {
	read := seqio.Record{Name: "read1", Sequence: "TTTTTAGATCGGAAGAGCGGGGG"}
	adapterList := []seqio.Record{
		{Name: "adapter-exact", Sequence: "AGATCGGAAGAGC"},
		{Name: "adapter-unrelated", Sequence: "CCCCCCCCCCCCC"},
	}

	opts := Options{Penalties: DefaultOptions.Penalties, ScoreCutoff: 1000}
	match, ok := AlignBest(read, adapterList, opts)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.AdapterName != "adapter-exact" {
		t.Fatalf("got best adapter %q, want adapter-exact", match.AdapterName)
	}
}

func TestAlignBestRejectsAboveCutoff(t *testing.T) {
	read := seqio.Record{Name: "read1", Sequence: "CCCCCCCCCCCCCCCCCCCCCCC"}
	adapterList := []seqio.Record{
		{Name: "adapter", Sequence: "AGATCGGAAGAGC"},
	}

	opts := Options{Penalties: DefaultOptions.Penalties, ScoreCutoff: 0}
	_, ok := AlignBest(read, adapterList, opts)
	if ok {
		t.Fatal("expected no match under a zero score cutoff")
	}
}
