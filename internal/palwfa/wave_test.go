package palwfa

import "testing"

func TestGetXYCenterDiagonal(t *testing.T) {
	// waveLen=1 (gapLen=0) puts the single diagonal exactly on center:
	// offset == 0, so both arms start level with the anchor.
	x, y := GetXY(1, 0, 5, 0)
	if x != 5 || y != 5 {
		t.Fatalf("got (%d,%d), want (5,5)", x, y)
	}
}

func TestGetXYOffDiagonal(t *testing.T) {
	// waveLen=3, gapLen=0: centerline is at i=1. i=0 sits one step to
	// the gap-heavy side, i=2 one step to the arm-heavy side.
	x0, y0 := GetXY(3, 0, 4, 0)
	if x0 != 4 || y0 != 5 {
		t.Fatalf("i=0: got (%d,%d), want (4,5)", x0, y0)
	}
	x2, y2 := GetXY(3, 2, 4, 0)
	if x2 != 5 || y2 != 4 {
		t.Fatalf("i=2: got (%d,%d), want (5,4)", x2, y2)
	}
}

func TestNextWaveSingleDiagonal(t *testing.T) {
	e := NewEngine()
	defer RecycleEngine(e)

	e.ensureCap(1)
	e.wf[0] = 5

	e.nextWave(1)

	if e.wf[0] != 5 {
		t.Fatalf("wf[0] = %d, want 5 (diagonal carried through unchanged)", e.wf[0])
	}
	if e.wf[1] != 6 {
		t.Fatalf("wf[1] = %d, want 6 (one edit ahead of the center)", e.wf[1])
	}
	if e.wf[2] != 5 {
		t.Fatalf("wf[2] = %d, want 5 (wave-length-1 special case)", e.wf[2])
	}
}

func TestNextWaveGrowsBackingArray(t *testing.T) {
	e := NewEngine()
	defer RecycleEngine(e)

	e.ensureCap(1)
	e.nextWave(1)
	if len(e.wf) < 3 {
		t.Fatalf("backing array len = %d, want at least 3", len(e.wf))
	}
}
