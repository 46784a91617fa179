// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package walign

import (
	"bytes"
	"strings"
	"testing"
)

func TestWFASemiGlobalAdapterAlignment(_t *testing.T) {
	// A short adapter embedded in a longer read: semi-global
	// alignment should not charge end gaps for the read's flanks.
	algn := New(DefaultPenalties)

	adapter := []byte("AGATCGGAAGAGC")
	read := []byte("TTTTTTTTTTAGATCGGAAGAGCGGGGGGGGGG")

	cigar, err := algn.Align(adapter, read)
	if err != nil {
		_t.Fatal(err)
	}
	if cigar == nil {
		_t.Fatal("expected a non-nil alignment")
	}
	if cigar.Matches == 0 {
		_t.Error("expected at least one matching base")
	}
	if !strings.Contains(cigar.CIGAR(), "M") {
		_t.Errorf("expected CIGAR to contain a match run, got %q", cigar.CIGAR())
	}

	RecycleAlignmentResult(cigar)
	RecycleAligner(algn)
}

func TestWFAAdaptiveReductionStillFindsAdapter(_t *testing.T) {
	// Adaptive reduction prunes distant diagonals as the wavefront
	// grows; it should not change which adapter is found in a read
	// with a single clean placement.
	algn := New(DefaultPenalties)
	if err := algn.AdaptiveReduction(DefaultAdaptiveOption); err != nil {
		_t.Fatal(err)
	}

	adapter := []byte("AGATCGGAAGAGC")
	read := []byte("TTTTTTTTTTAGATCGGAAGAGCGGGGGGGGGG")

	cigar, err := algn.Align(adapter, read)
	if err != nil {
		_t.Fatal(err)
	}
	if cigar.Score != 0 {
		_t.Errorf("expected a perfect-score alignment, got score %d", cigar.Score)
	}

	RecycleAlignmentResult(cigar)
	RecycleAligner(algn)
}

func TestWFAAdaptiveReductionRejectsZeroMinWFLen(_t *testing.T) {
	algn := New(DefaultPenalties)
	err := algn.AdaptiveReduction(&AdaptiveReductionOption{MinWFLen: 0, MaxDistDiff: 50})
	if err == nil {
		_t.Fatal("expected an error for MinWFLen: 0")
	}
	RecycleAligner(algn)
}

func TestAlignerPlotAndComponentPrintAndAlignmentText(_t *testing.T) {
	// Exercises the -debug-plot diagnostic path: Plot, Component.Print
	// and AlignmentText should all produce readable output for a
	// completed alignment.
	algn := New(&Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2})

	q := bytes.ToUpper([]byte("ACCATACTCG"))
	t := bytes.ToUpper([]byte("AGGATGCTCG"))

	cigar, err := algn.Align(q, t)
	if err != nil {
		_t.Fatal(err)
	}

	var plotBuf bytes.Buffer
	algn.Plot(&q, &t, &plotBuf, algn.M, false, -1)
	if plotBuf.Len() == 0 {
		_t.Error("expected Plot to write a non-empty matrix")
	}

	var printBuf bytes.Buffer
	algn.M.Print(&printBuf, "M")
	if printBuf.Len() == 0 {
		_t.Error("expected Component.Print to write non-empty output")
	}

	Q, A, T := cigar.AlignmentText(&q, &t)
	if len(*Q) == 0 || len(*A) == 0 || len(*T) == 0 {
		_t.Error("expected non-empty alignment text")
	}
	if len(*Q) != len(*A) || len(*A) != len(*T) {
		_t.Errorf("expected aligned tracks of equal length, got %d/%d/%d", len(*Q), len(*A), len(*T))
	}
	RecycleAlignmentText(Q, A, T)

	RecycleAlignmentResult(cigar)
	RecycleAligner(algn)
}
