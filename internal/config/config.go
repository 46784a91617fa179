// Package config holds the validated parameter bundles each
// subcommand passes down to its scan or alignment package.
package config

import (
	"fmt"

	"github.com/invpal/invpal/internal/errs"
)

// WFA bundles the wavefront palindrome finder's tuning parameters.
type WFA struct {
	MinLength          int
	GapLen             int
	MatchBonus         float64
	MismatchPenalty    float64
	XDrop              float64
	MismatchProportion float64
}

// Validate applies the same bounds the original CLI enforced before
// running the wavefront scan.
func (c WFA) Validate() error {
	if c.MatchBonus <= 0.0 {
		return errs.NewConfigError("Match bonus not positive")
	}
	if c.MismatchPenalty <= 0.0 {
		return errs.NewConfigError("Mismatch penalty not positive")
	}
	if !(0.0 < c.MismatchProportion && c.MismatchProportion < 1.0) {
		return errs.NewConfigError("Mismatch-length ratio not between 0 and 1")
	}
	if c.XDrop <= 0.0 {
		return errs.NewConfigError("X-drop not positive")
	}
	return nil
}

// String renders the settings the way the CLI echoes them back to the
// user on a successful run.
func (c WFA) String() string {
	return fmt.Sprintf(
		"min_length=%d gap_len=%d match_bonus=%g mismatch_penalty=%g x_drop=%g mismatch_proportion=%g",
		c.MinLength, c.GapLen, c.MatchBonus, c.MismatchPenalty, c.XDrop, c.MismatchProportion,
	)
}

// Exact bundles the fixed-budget exact-match finder's parameters.
type Exact struct {
	MinLength  int
	GapLen     int
	Mismatches int
}

// Validate rejects a negative mismatch budget or a negative gap length;
// there is no analogous Rust ensure! for this variant, so both checks
// are additions beyond the original's bounds.
func (c Exact) Validate() error {
	if c.Mismatches < 0 {
		return errs.NewConfigError("Mismatch budget must not be negative")
	}
	if c.GapLen < 0 {
		return errs.NewConfigError("Gap length must not be negative")
	}
	return nil
}

// String renders the settings the way the CLI echoes them back to the
// user on a successful run.
func (c Exact) String() string {
	return fmt.Sprintf("min_length=%d gap_len=%d mismatches=%d", c.MinLength, c.GapLen, c.Mismatches)
}

// Adapter bundles the adapter-alignment pipeline's parameters.
type Adapter struct {
	InputFile      string
	AdaptersFile   string
	OutputFile     string
	LongestAdapter int
	ScoreCutoff    float64
	RemoveT        bool
}

// Validate checks the file parameters the pipeline cannot proceed
// without.
func (c Adapter) Validate() error {
	if c.InputFile == "" {
		return errs.NewConfigError("input file is required")
	}
	if c.AdaptersFile == "" {
		return errs.NewConfigError("adapters file is required")
	}
	if c.OutputFile == "" {
		return errs.NewConfigError("output file is required")
	}
	if c.LongestAdapter <= 0 {
		return errs.NewConfigError("longest adapter length must be positive")
	}
	return nil
}

// String renders the settings the way the CLI echoes them back to the
// user on a successful run.
func (c Adapter) String() string {
	return fmt.Sprintf(
		"input=%s adapters=%s output=%s longest_adapter=%d score_cutoff=%g remove_t=%t",
		c.InputFile, c.AdaptersFile, c.OutputFile, c.LongestAdapter, c.ScoreCutoff, c.RemoveT,
	)
}
