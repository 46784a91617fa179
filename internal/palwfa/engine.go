package palwfa

import "github.com/invpal/invpal/internal/extend"

// Run expands the wavefront anchored at index until either arm walks
// off the sequence, the x-drop bound is exceeded, or the mismatch
// ratio for the next wave would exceed cfg.MismatchProportion. It
// returns the state of the winning diagonal at the point the
// expansion stopped.
func (e *Engine) Run(enc []byte, index int, cfg Config) Result {
	waveLen := cfg.GapLen + 1
	// nextWave reads wf[1] even when the first wave is a single diagonal,
	// so one slot past the live prefix is cleared as well.
	e.ensureCap(waveLen + 1)
	for i := 0; i <= waveLen; i++ {
		e.wf[i] = 0
	}

	editDist := 0
	maxIndex := 0
	maxScore := 0.0

outer:
	for float64(editDist)/(float64(e.wf[maxIndex])+0.001) <= cfg.MismatchProportion {
		waveScore := 0.0

		for i := 0; i < waveLen; i++ {
			x, y := GetXY(waveLen, i, e.wf[i], cfg.GapLen)
			x += index

			n, _ := extend.Extend(x, y, index, enc)
			e.wf[i] += n
			x += n
			y += n

			score := float64(x+y)*cfg.MatchBonus/2 - float64(editDist)*(cfg.MatchBonus+cfg.MismatchPenalty)
			if score > waveScore {
				waveScore = score
			}
			if e.wf[i] > e.wf[maxIndex] {
				maxIndex = i
			}

			if x == len(enc) || y == index {
				break outer
			}
		}

		if waveScore > maxScore {
			maxScore = waveScore
		}

		drop := cfg.XDrop
		if adaptive := 0.1 * float64(e.wf[maxIndex]); adaptive > drop {
			drop = adaptive
		}
		if waveScore < maxScore-drop {
			break
		}

		e.nextWave(waveLen)
		maxIndex++
		editDist++
		waveLen += 2
		e.ensureCap(waveLen)
	}

	return Result{MaxIndex: maxIndex, Extent: e.wf[maxIndex], EditDist: editDist, WaveLen: waveLen}
}
