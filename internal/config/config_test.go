package config

import "testing"

func TestWFAValidate(t *testing.T) {
	good := WFA{MatchBonus: 1, MismatchPenalty: 4, XDrop: 20, MismatchProportion: 0.05}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []WFA{
		{MatchBonus: 0, MismatchPenalty: 4, XDrop: 20, MismatchProportion: 0.05},
		{MatchBonus: 1, MismatchPenalty: 0, XDrop: 20, MismatchProportion: 0.05},
		{MatchBonus: 1, MismatchPenalty: 4, XDrop: 20, MismatchProportion: 1.0},
		{MatchBonus: 1, MismatchPenalty: 4, XDrop: 0, MismatchProportion: 0.05},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected an error", i)
		}
	}
}

func TestExactValidate(t *testing.T) {
	if err := (Exact{Mismatches: -1}).Validate(); err == nil {
		t.Fatal("expected an error for a negative mismatch budget")
	}
	if err := (Exact{Mismatches: 4, GapLen: 3}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapterValidate(t *testing.T) {
	if err := (Adapter{}).Validate(); err == nil {
		t.Fatal("expected an error for missing files")
	}
	good := Adapter{InputFile: "in.fa", AdaptersFile: "adapters.fa", OutputFile: "out.tsv", LongestAdapter: 20}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
