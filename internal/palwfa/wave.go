// Package palwfa is the wavefront engine at the core of the palindrome
// finder: a flat array of per-diagonal match extents grown in fixed
// chunks, advanced wave by wave under x-drop and mismatch-ratio
// pruning. It is a single-sequence, self-complementary wavefront —
// distinct from internal/walign's two-sequence edit-distance wavefront,
// though both share the same growable-array-plus-pool shape.
package palwfa

import "sync"

// growChunk is the number of extents appended when a wavefront array
// needs more room, matching the original implementation's fixed-size
// growth step.
const growChunk = 1000

// Config bundles the tuning knobs a single Engine.Run call needs.
type Config struct {
	GapLen             int
	MatchBonus         float64
	MismatchPenalty    float64
	XDrop              float64
	MismatchProportion float64
}

// Result is the outcome of expanding the wavefront at one anchor.
type Result struct {
	MaxIndex int // diagonal index with the largest extent
	Extent   int // wf[MaxIndex], the extent on that diagonal (edit steps included)
	EditDist int // number of edit-distance waves expanded
	WaveLen  int // live width of the final wave
}

// Engine owns the two flat extent arrays. It is reused across anchors
// and across records: each Run call re-zeroes only the live prefix it
// needs (plus the one slot nextWave reads past it), never shrinking the
// backing arrays.
type Engine struct {
	wf, wfNext []int
}

var enginePool = sync.Pool{New: func() any { return &Engine{} }}

// NewEngine returns an Engine from the pool. Pair with RecycleEngine.
func NewEngine() *Engine {
	return enginePool.Get().(*Engine)
}

// RecycleEngine returns e to the pool for reuse by a later record.
func RecycleEngine(e *Engine) {
	if e != nil {
		enginePool.Put(e)
	}
}

func (e *Engine) ensureCap(n int) {
	for len(e.wf) < n {
		e.wf = append(e.wf, make([]int, growChunk)...)
	}
	for len(e.wfNext) < n {
		e.wfNext = append(e.wfNext, make([]int, growChunk)...)
	}
}

// GetXY computes the asymmetric (x, y) arm split for diagonal i in a
// wave of width waveLen whose centerline is gapLen+1 wide.
func GetXY(waveLen, i, length, gapLen int) (x, y int) {
	offset := waveLen - (waveLen-(gapLen+1))/2 - i - 1
	if offset >= 0 {
		return length, length + offset
	}
	return length - offset, length
}

// nextWave relaxes extents outward by one edit, propagating the best
// of "diagonal continues" and "diagonal shifted by an edit" to each
// neighboring diagonal of the next, wider wave.
func (e *Engine) nextWave(waveLen int) {
	e.ensureCap(waveLen + 2)
	wf, wfNext := e.wf, e.wfNext

	for i := 0; i < waveLen; i++ {
		switch {
		case i == 0:
			wfNext[0] = wf[0]
			wfNext[1] = max(wf[0]+1, wf[1])
		case i != waveLen-1:
			wfNext[i+1] = max(wf[i]+1, max(wf[i-1], wf[i+1]))
		default:
			wfNext[i+2] = wf[i]
			wfNext[i+1] = max(wf[i-1], wf[i]+1)
		}
		if waveLen == 1 {
			wfNext[i+2] = wf[i]
		}
	}

	e.wf, e.wfNext = wfNext, wf
}
