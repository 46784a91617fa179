// Package scan implements the anchor-walking loop shared by the
// wavefront and exact-match palindrome finders: at every candidate
// center it asks a strategy for the best arm, accepts or rejects the
// result against a minimum arm length, and skips ahead past whatever
// it accepted.
package scan

import (
	"github.com/invpal/invpal/internal/encode"
	"github.com/invpal/invpal/internal/output"
	"github.com/invpal/invpal/internal/palwfa"
)

// Candidate is one anchor's best arm. X and Y are the absolute
// right-arm and left-arm spans from the anchor; Extent is how far the
// winning diagonal reached, counting mismatched positions as well as
// matched ones (X and Y coincide with Extent only when that diagonal
// sits exactly on center).
// Gap is derived as Y - Extent, never from Y - X.
type Candidate struct {
	X, Y, Extent, Mismatches int
}

// Arm is a per-anchor search strategy. ok is false when nothing
// extends from index at all (the anchor contributes no record).
type Arm func(index int) (Candidate, bool)

// Walk runs the greedy anchor-skip scan over seq (length len(seq)+1
// anchor positions, 0..=len(seq)): evaluate arm at each index, accept
// into the result if X meets minLength and advance by X, otherwise
// advance by one position.
func Walk(seq []byte, minLength int, arm Arm, name string) []output.Record {
	var records []output.Record
	length := len(seq)

	for index := 0; index <= length; {
		cand, ok := arm(index)
		if !ok {
			index++
			continue
		}

		increment := 1
		if cand.X >= minLength {
			records = append(records, output.Record{
				Start:         index - cand.Y,
				End:           index + cand.X - 1,
				ArmLength:     cand.X,
				Gap:           cand.Y - cand.Extent,
				OverallLength: cand.X + cand.Y,
				Mismatches:    cand.Mismatches,
				SequenceName:  name,
				Sequence:      string(seq[index-cand.Y : index+cand.X]),
			})
			increment = cand.X
		}
		index += increment
	}

	return records
}

// Config bundles the wavefront tuning parameters plus the acceptance
// threshold applied to each anchor's best diagonal.
type Config struct {
	MinLength int
	palwfa.Config
}

// Find walks every anchor position in seq and returns the accepted
// wavefront palindromes, in left-to-right order. name is recorded on
// every Record as SequenceName.
func Find(name string, seq []byte, cfg Config) ([]output.Record, error) {
	enc, err := encode.Sequence(seq)
	if err != nil {
		return nil, err
	}

	engine := palwfa.NewEngine()
	defer palwfa.RecycleEngine(engine)

	arm := func(index int) (Candidate, bool) {
		result := engine.Run(enc, index, cfg.Config)
		if result.Extent == 0 {
			return Candidate{}, false
		}
		x, y := palwfa.GetXY(result.WaveLen, result.MaxIndex, result.Extent, cfg.GapLen)
		return Candidate{X: x, Y: y, Extent: result.Extent, Mismatches: result.EditDist}, true
	}

	return Walk(seq, cfg.MinLength, arm, name), nil
}
