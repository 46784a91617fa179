// Package exactscan implements the fixed-budget palindrome finder: a
// simpler sibling of palwfa that fixes its mismatch allowance up
// front instead of growing an edit-distance wavefront, and allows no
// indels. It shares its anchor-walking and acceptance logic with
// package scan through scan.Walk.
package exactscan

import (
	"github.com/invpal/invpal/internal/encode"
	"github.com/invpal/invpal/internal/extend"
	"github.com/invpal/invpal/internal/output"
	"github.com/invpal/invpal/internal/palwfa"
	"github.com/invpal/invpal/internal/scan"
)

// Config bundles the exact-match tuning parameters.
type Config struct {
	MinLength  int
	GapLen     int
	Mismatches int
}

// Scan walks every anchor in seq and returns the accepted exact-match
// palindromes, in left-to-right order.
func Scan(name string, seq []byte, cfg Config) ([]output.Record, error) {
	enc, err := encode.Sequence(seq)
	if err != nil {
		return nil, err
	}

	waveLen := cfg.GapLen + 1
	length := len(enc)

	arm := func(index int) (scan.Candidate, bool) {
		bestExtent := -1
		var best scan.Candidate

		for i := 0; i < waveLen; i++ {
			x0, y0 := palwfa.GetXY(waveLen, i, 0, cfg.GapLen)
			x := x0 + index
			y := y0
			extentCount := 0
			mismatches := 0

			for {
				n, _ := extend.Extend(x, y, index, enc)
				extentCount += n
				x += n
				y += n

				if x == length || y == index {
					break
				}
				if mismatches >= cfg.Mismatches {
					break
				}
				mismatches++
				x++
				y++
			}

			if extentCount > bestExtent {
				bestExtent = extentCount
				// x was seeded with index added; report it relative to
				// the anchor, the same convention scan.Walk expects for
				// both variants (y is already anchor-relative). Extent
				// counts the mismatched positions too, so Y - Extent is
				// the center offset alone.
				best = scan.Candidate{X: x - index, Y: y, Extent: extentCount + mismatches, Mismatches: mismatches}
			}
		}

		if bestExtent <= 0 {
			return scan.Candidate{}, false
		}
		return best, true
	}

	return scan.Walk(seq, cfg.MinLength, arm, name), nil
}
