package scan

import "testing"

func TestFindSinglePerfectPalindrome(t *testing.T) {
	seq := []byte("TTTTGATTACAGATATCTGTAATCTTTT")
	// Interior inverted repeat: GATTACAGAT | ATCTGTAATC, flanked by
	// unrelated filler on both sides. The arms stop short of both ends,
	// so the engine advances one more wave before the mismatch-ratio
	// guard stops it; the reported arm therefore covers one flanking
	// base on each side and counts that edit as a mismatch.
	cfg := Config{
		MinLength: 5,
	}
	cfg.GapLen = 0
	cfg.MatchBonus = 1
	cfg.MismatchPenalty = 4
	cfg.XDrop = 20
	cfg.MismatchProportion = 0.05

	records, err := Find("test", seq, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(records), records)
	}
	r := records[0]
	if r.ArmLength != 11 {
		t.Fatalf("got arm length %d, want 11", r.ArmLength)
	}
	if r.Mismatches != 1 {
		t.Fatalf("got %d mismatches, want 1", r.Mismatches)
	}
	if r.Sequence != "TGATTACAGATATCTGTAATCT" {
		t.Fatalf("got sequence %q", r.Sequence)
	}
}

func TestFindRejectsBelowMinLength(t *testing.T) {
	seq := []byte("GATTACAGATATCTGTAATC")
	cfg := Config{MinLength: 50}
	cfg.GapLen = 0
	cfg.MatchBonus = 1
	cfg.MismatchPenalty = 4
	cfg.XDrop = 20
	cfg.MismatchProportion = 0.05

	records, err := Find("test", seq, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}
