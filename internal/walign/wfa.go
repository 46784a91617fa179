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

// Package walign is a gap-affine wavefront aligner (Marco-Sola et al.,
// Bioinformatics 2021), pared down to the one mode the adapter-trimming
// pipeline needs: semi-global alignment of a short adapter against a
// read, so end gaps on the read's flanks are free, and adapter bases
// that overhang either end of the read are clipped (CIGAR 'H') without
// charge. There is no global-alignment mode here —
// every Aligner is a semi-global adapter aligner.
package walign

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"sync"
)

// Penalties contains the gap-affine penalties, Match is 0.
type Penalties struct {
	Mismatch uint32
	GapOpen  uint32
	GapExt   uint32
}

// DefaultPenalties is from the WFA paper.
var DefaultPenalties = &Penalties{
	Mismatch: 4,
	GapOpen:  6,
	GapExt:   2,
}

// AdaptiveReductionOption contains the parameters for adaptive reduction,
// the heuristic that drops far-from-best diagonals as the wavefront
// grows. Adapter sequences are short, but reads can be long, so pruning
// keeps per-read alignment cost roughly constant instead of growing
// with read length.
type AdaptiveReductionOption struct {
	MinWFLen    uint32
	MaxDistDiff uint32
	CutoffStep  uint32 // not used yet.
}

// DefaultAdaptiveOption mirrors the WFA2 library's own suggested
// heuristic parameters and is what AlignBest applies to every aligner.
var DefaultAdaptiveOption = &AdaptiveReductionOption{
	MinWFLen:    10,
	MaxDistDiff: 50,
	CutoffStep:  1,
}

// Aligner holds one alignment's working wavefronts. It is reused across
// many read/adapter pairs but is not goroutine-safe — give each worker
// goroutine its own Aligner, drawn from New and returned with
// RecycleAligner.
type Aligner struct {
	p *Penalties

	ad *AdaptiveReductionOption

	M, I, D *Component
}

// object pool of aligners.
var poolAligner = &sync.Pool{New: func() interface{} {
	algn := Aligner{
		p: nil,
		M: NewComponent(),
		I: NewComponent(),
		D: NewComponent(),
	}
	algn.M.IsM = true
	return &algn
}}

// RecycleAligner recycles an Aligner object.
func RecycleAligner(algn *Aligner) {
	if algn != nil {
		// the M/I/D components are left attached to the aligner; Align
		// clears their wavefronts itself, so there's nothing to recycle here.
		poolAligner.Put(algn)
	}
}

// New returns a semi-global Aligner from the object pool, using
// penalties p. Do not forget to call RecycleAligner() after using it.
func New(p *Penalties) *Aligner {
	algn := poolAligner.Get().(*Aligner)
	algn.p = p
	algn.ad = nil
	return algn
}

// AdaptiveReduction turns on adaptive reduction with the given
// parameters for every subsequent Align call on this Aligner.
func (algn *Aligner) AdaptiveReduction(ad *AdaptiveReductionOption) error {
	if ad.MinWFLen == 0 {
		return fmt.Errorf("MinWFLen should not be 0")
	}
	algn.ad = ad
	return nil
}

// initComponents seeds M[0] with the free end-gaps of a semi-global
// alignment: every starting cell along the first row and first column
// is seeded with no gap cost (score 0 if its two bases match, the
// mismatch penalty otherwise), so the adapter can start matching
// anywhere in the read without paying for the bases that precede it.
func (algn *Aligner) initComponents(q, t *[]byte) {
	m, n := len(*t), len(*q)
	M := algn.M

	var wfaType, score uint32

	// have to check the first bases
	if (*q)[0] == (*t)[0] { // M[0,0] = 0
		wfaType, score = wfaMatch, 0
	} else { // M[0,0] = 4
		wfaType, score = wfaMismatch, algn.p.Mismatch
	}
	M.Set(score, 0, 1, wfaType)

	for k := 1; k < m; k++ { // first row
		if (*q)[0] == (*t)[k] {
			wfaType, score = wfaMatch, 0
		} else {
			wfaType, score = wfaMismatch, algn.p.Mismatch
		}

		M.Set(score, k, uint32(k+1), wfaType)
	}

	for k := 1; k < n; k++ { // first column
		if (*q)[k] == (*t)[0] {
			wfaType, score = wfaMatch, 0
		} else {
			wfaType, score = wfaMismatch, algn.p.Mismatch
		}

		M.Set(score, -k, 1, wfaType)
	}
}

// ErrEmptySeq means the query or target sequence is empty.
var ErrEmptySeq error = fmt.Errorf("wfa: invalid empty sequence")

// MaxSeqLen is the allowed longest sequence length.
const MaxSeqLen int = 1<<(32-wfaTypeBits) - 1

// ErrSeqTooLong means the sequence is too long.
var ErrSeqTooLong error = fmt.Errorf("wfa: sequences longer than %d are not supported", MaxSeqLen)

// Align aligns the adapter q against the read t, keeping end gaps on
// t's flanks free.
func (algn *Aligner) Align(q, t []byte) (*AlignmentResult, error) {
	return algn.AlignPointers(&q, &t)
}

// AlignPointers is Align taking its sequences by pointer, to avoid
// copying slice headers on hot paths.
func (algn *Aligner) AlignPointers(q, t *[]byte) (*AlignmentResult, error) {
	m, n := len(*t), len(*q)

	if n == 0 || m == 0 {
		return nil, ErrEmptySeq
	}
	if n > MaxSeqLen || m > MaxSeqLen {
		return nil, ErrSeqTooLong
	}

	// Clear any wavefronts left over from this Aligner's previous use.
	// They are deliberately NOT cleared at the end of this call, so
	// Plot/Component.Print can still inspect the DP matrix that
	// produced the result returned below.
	algn.M.Reset()
	algn.I.Reset()
	algn.D.Reset()

	algn.initComponents(q, t)

	Ak := m - n
	Aoffset := uint32(m)
	var offset uint32

	M := algn.M

	var s uint32
	var lo, hi int
	reduce := algn.ad != nil
	var minWFLen int
	if reduce {
		minWFLen = int(algn.ad.MinWFLen)
	}
	for {
		if M.HasScore(s) {
			lo, hi = algn.extend(q, t, s)

			offset, _, _ = M.GetAfterDiff(s, 0, Ak)
			if offset >= Aoffset { // reached the end
				break
			}

			if reduce && hi-lo+1 >= minWFLen {
				algn.reduce(q, t, s)
			}
		}

		s++
		algn.next(q, t, s)
	}

	// find the minimum-score cell on the read's last row/column: a
	// semi-global alignment may finish before consuming every read base.
	minS, lastK := algn.backtraceStartPosistion(q, t, s)

	r := algn.backTrace(q, t, minS, lastK)

	return r, nil
}

// backtraceStartPosistion finds the lowest-scoring cell that reaches
// either the last row or last column, which is where a semi-global
// traceback must begin.
func (algn *Aligner) backtraceStartPosistion(q, t *[]byte, s uint32) (uint32, int) {
	M := algn.M
	m, n := len(*t), len(*q)
	minS := s
	Ak := m - n
	lastK := Ak

	var offset uint32
	var ok bool
	var k int
	var lastRowOrCol bool
	var h, v int
	var lo, hi int

	for _s := s; _s >= 0; _s-- {
		if !M.HasScore(_s) {
			if _s == 0 {
				break
			}
			continue
		}

		lo, hi = M.KRange(_s, 0)

		lastRowOrCol = false
		k = Ak
		for {
			if k < lo {
				break
			}

			offset, _, ok = M.GetAfterDiff(_s, 0, k)
			if !ok {
				k--
				continue
			}
			h = int(offset)
			v = h - k

			if v <= 0 || v > n || h > m { // bound check
				break
			}

			if (v == n && h >= n) || (h == m && v >= m) {
				lastRowOrCol = true
				break
			}

			k--
		}

		if lastRowOrCol && _s <= minS {
			lastK = k
			minS = _s
		}

		lastRowOrCol = false
		k = Ak + 1
		for {
			if k > hi {
				break
			}

			offset, _, ok = M.GetAfterDiff(_s, 0, k)
			if !ok {
				k++
				continue
			}
			h = int(offset)
			v = h - k

			if v <= 0 || v > n || h > m { // bound check
				break
			}

			if (v == n && h >= n) || (h == m && v >= m) {
				lastRowOrCol = true
				break
			}

			k++
		}

		if lastRowOrCol && _s <= minS {
			lastK = k
			minS = _s
		}

		if _s == 0 {
			break
		}
	}

	return minS, lastK
}

var be = binary.BigEndian

// extend runs WF_EXTEND: for every diagonal in the current wave,
// advance the match as far as the adapter and read agree, first
// 8 bases at a time via a packed XOR-and-count-zeros comparison, then
// byte by byte for the remainder.
func (algn *Aligner) extend(q, t *[]byte, s uint32) (int, int) {
	wf := algn.M.WaveFronts[s]
	lo, hi := wf.Lo, wf.Hi

	var offset uint32
	var v, h int
	lenQ := len(*q)
	lenT := len(*t)
	var q8, t8 uint64
	var n, N int

	var ok bool
	for k := hi; k >= lo; k-- {
		offset, _, ok = wf.Get(k)
		if !ok {
			continue
		}

		h = int(offset)                      // x
		v = h - k                            // y
		if v <= 0 || v >= lenQ || h >= lenT { // bound check
			continue
		}

		// offset is 1-based, here it's checking the base in the next position.

		if v+8 <= lenQ && h+8 <= lenT {
			N = 0
			for {
				q8, t8 = be.Uint64((*q)[v:v+8]), be.Uint64((*t)[h:h+8])
				n = bits.LeadingZeros64(q8^t8) >> 3 // divide 8
				v += n
				h += n
				N += n
				if n < 8 || v+8 >= lenQ || h+8 >= lenT {
					break
				}
			}
			if N == 0 {
				continue
			}

			wf.Increase(k, uint32(N))

			if !(n == 8 && v < lenQ && h < lenT) {
				continue
			}
		}

		// compare each base

		N = 0
		for (*q)[v] == (*t)[h] {
			v++
			h++
			N++

			if v == lenQ || h == lenT {
				break
			}
		}
		if N == 0 {
			continue
		}

		wf.Increase(k, uint32(N))
	}

	return lo, hi
}

// reduce drops diagonals whose distance to the target cell trails the
// best diagonal in this wave by more than MaxDistDiff (adaptive
// reduction, WFA2's heuristic).
func (algn *Aligner) reduce(q, t *[]byte, s uint32) {
	wf := algn.M.WaveFronts[s] // previously, we've checked. M.HasScore(s)
	lo, hi := wf.Lo, wf.Hi
	var offset uint32
	var v, h int
	lenQ := len(*q)
	lenT := len(*t)
	var ok bool

	var d, minDist int
	ds := poolDist.Get().(*[]int)
	*ds = (*ds)[:0]
	minDist = math.MaxInt
	for k := lo; k <= hi; k++ {
		offset, _, ok = wf.Get(k)
		if !ok {
			*ds = append(*ds, -1)
			continue
		}

		h = int(offset) // x
		v = h - k       // y
		if v < 0 || v >= lenQ || h >= lenT {
			*ds = append(*ds, -1)
			continue
		}

		d = max(lenT-h, lenQ-v)
		*ds = append(*ds, d)

		if d < minDist {
			minDist = d
		}
	}

	_lo := lo
	_hi := hi
	maxDistDiff := int(algn.ad.MaxDistDiff)
	updateLo := true
	found := false
	I := algn.I
	D := algn.D
	for i, d := range *ds {
		if d < 0 {
			continue
		}
		if d-minDist > maxDistDiff {
			found = true
			if updateLo {
				_lo = lo + i + 1
			}
			(*ds)[i] = -1 // mark it
		} else {
			updateLo = false
		}
	}
	if found { // found some distance where d-minDist > maxDistDiff
		for i := len(*ds) - 1; i >= 0; i-- {
			if (*ds)[i] >= 0 {
				_hi = lo + i
				break
			}
		}
	}

	for k := lo; k < _lo; k++ {
		wf.Delete(k)
		I.Delete(s, k)
		D.Delete(s, k)
	}
	for k := _hi + 1; k <= hi; k++ {
		wf.Delete(k)
		I.Delete(s, k)
		D.Delete(s, k)
	}

	wf.Lo, wf.Hi = _lo, _hi

	poolDist.Put(ds)
}

// poolDist is used in reduce()
var poolDist = &sync.Pool{New: func() interface{} {
	tmp := make([]int, 0, 128)
	return &tmp
}}

// next runs WF_NEXT: expand the M/I/D components from score s-1 (by
// mismatch or gap open/extend) into wave s.
func (algn *Aligner) next(q, t *[]byte, s uint32) {
	M := algn.M
	I := algn.I
	D := algn.D
	p := algn.p
	lenQ := len(*q)
	lenT := len(*t)

	loMismatch, hiMismatch := M.KRange(s, p.Mismatch)       // M[s-x]
	loGapOpen, hiGapOpen := M.KRange(s, p.GapOpen+p.GapExt) // M[s-o-e]
	loInsert, hiInsert := I.KRange(s, p.GapExt)             // I[s-e]
	loDelete, hiDelete := D.KRange(s, p.GapExt)              // D[s-e]

	hi := min(int(lenT-1), max(hiMismatch, hiGapOpen, hiInsert, hiDelete)+1)
	lo := max(-int(lenQ-1), min(loMismatch, loGapOpen, loInsert, loDelete)-1)

	var fromI, fromD, fromM bool
	var v1, v2 uint32
	var Isk, Dsk, Msk uint32
	var updatedI, updatedD bool
	var wfaTypeI, wfaTypeD, wfaTypeM uint32
	for k := lo; k <= hi; k++ {
		updatedI, updatedD = false, false
		wfaTypeI, wfaTypeD, wfaTypeM = 0, 0, 0

		// --------------------------------------
		// insertion: 🠦
		v1, _, fromM = M.GetAfterDiff(s, p.GapOpen+p.GapExt, k-1)
		v2, _, fromI = I.GetAfterDiff(s, p.GapExt, k-1)
		if fromM && int(v1) > lenT {
			fromM = false
			v1 = 0
		}
		if fromI && int(v2) > lenT {
			fromI = false
			v2 = 0
		}
		Isk = max(v1, v2) + 1
		if fromM || fromI {
			if fromM && fromI {
				if v1 >= v2 {
					wfaTypeI = wfaInsertOpen
				} else {
					wfaTypeI = wfaInsertExt
				}
			} else if fromM {
				wfaTypeI = wfaInsertOpen
			} else {
				wfaTypeI = wfaInsertExt
			}

			updatedI = true
			I.Set(s, k, Isk, wfaTypeI)
		} else {
			Isk = 0
		}

		// --------------------------------------
		// deletion: 🠧

		v1, _, fromM = M.GetAfterDiff(s, p.GapOpen+p.GapExt, k+1)
		v2, _, fromD = D.GetAfterDiff(s, p.GapExt, k+1)
		if fromM && int(v1)-k > lenQ {
			fromM = false
			v1 = 0
		}
		if fromD && int(v2)-k > lenQ {
			fromD = false
			v2 = 0
		}

		Dsk = max(v1, v2)
		if fromM || fromD {
			if fromM && fromD {
				if v1 >= v2 {
					wfaTypeD = wfaDeleteOpen
				} else {
					wfaTypeD = wfaDeleteExt
				}
			} else if fromM {
				wfaTypeD = wfaDeleteOpen
			} else {
				wfaTypeD = wfaDeleteExt
			}

			updatedD = true
			D.Set(s, k, Dsk, wfaTypeD)
		} else {
			Dsk = 0
		}

		// --------------------------------------
		// mismatch: ⬂

		v1, _, fromM = M.GetAfterDiff(s, p.Mismatch, k)
		if fromM && (int(v1) > lenT || int(v1)-k > lenQ) { // it's the last column/row
			fromM = false
			v1 = 0
		}
		Msk = max(Isk, Dsk, v1+1)
		if updatedI || updatedD || fromM {
			if updatedI && updatedD && fromM {
				if Msk == v1+1 { // mismatch is prefered if it might come from 3 ways
					wfaTypeM = wfaMismatch
				} else if Msk == Isk {
					wfaTypeM = wfaTypeI
				} else {
					wfaTypeM = wfaTypeD
				}
			} else if updatedI {
				if updatedD { // updatedI && updatedD && !fromM
					if Msk == Isk {
						wfaTypeM = wfaTypeI
					} else {
						wfaTypeM = wfaTypeD
					}
				} else if fromM { // updatedI && !updatedD && fromM
					if Msk == v1+1 { // mismatch is prefered
						wfaTypeM = wfaMismatch
					} else {
						wfaTypeM = wfaTypeI
					}
				} else { // updatedI && !updatedD && !fromM
					wfaTypeM = wfaTypeI
				}
			} else if updatedD {
				if fromM { // !updatedI && updatedD && fromM
					if Msk == v1+1 { // mismatch is prefered
						wfaTypeM = wfaMismatch
					} else {
						wfaTypeM = wfaTypeD
					}
				} else { // !updatedI && updatedD && !fromM
					wfaTypeM = wfaTypeD
				}
			} else { // !updatedI && !updatedD && fromM
				wfaTypeM = wfaMismatch
			}

			M.Set(s, k, Msk, wfaTypeM)
		}
	}
}

// backTrace walks the backpointers from M[s, Ak] back to the start of
// the alignment, producing its CIGAR. Because this is always a
// semi-global alignment, the walk stops as soon as it reaches the first
// row or column rather than continuing to [0,0].
func (algn *Aligner) backTrace(q, t *[]byte, s uint32, Ak int) *AlignmentResult {
	var M0 *Component
	M := algn.M
	I := algn.I
	D := algn.D
	p := algn.p
	lenQ := len(*q)
	lenT := len(*t)

	cigar := NewAlignmentResult()
	cigar.Score = s

	var ok bool
	var k, h, v int
	var offset, wfaType uint32
	var h0 int
	var op byte
	var qBegin, tBegin int

	var v1, v2, Isk, Dsk, offset0 uint32
	var fromMI, fromMD, fromItself bool
	var fromI, fromD, fromM bool
	var sMismatch, sGapOpen, sGapExt uint32
	var previousFromM bool
	var nMatches int

	k = Ak
	firstMatch := true

	// ------------------------------------------------
	// start point

	offset, _ = M.GetRaw(s, k)

	previousFromM = true
	wfaType = offset & wfaTypeMask
	h = int(offset >> wfaTypeBits)
	v = h - k

	if h < lenT {
		cigar.AddN(wfaOps[wfaInsertOpen], uint32(lenT)-uint32(h))
	} else if v < lenQ {
		cigar.AddN('H', uint32(lenQ)-uint32(v))
	}

LOOP:
	for v > 0 && h > 0 {
		// score of source
		sMismatch = s - p.Mismatch
		sGapOpen = s - p.GapOpen - p.GapExt
		sGapExt = s - p.GapExt

		// offset of the source
		fromMI, fromMD = false, false
		switch wfaType {
		case wfaInsertExt:
			v1, _, fromM = M.Get(sGapOpen, k-1)
			v2, _, fromI = I.Get(sGapExt, k-1)
			if fromM || fromI {
				fromMI = true
				offset0 = max(v1, v2) + 1
			} else {
				offset0 = 0
			}

			M0 = I // for get the wfaType of the next one
		case wfaDeleteExt:
			v1, _, fromM = M.Get(sGapOpen, k+1)
			v2, _, fromD = D.Get(sGapExt, k+1)
			if fromM || fromD {
				fromMD = true
				offset0 = max(v1, v2)
			} else {
				offset0 = 0
			}

			M0 = D
		default:
			v1, _, fromM = M.Get(sGapOpen, k-1)
			v2, _, fromI = I.Get(sGapExt, k-1)
			if fromM || fromI {
				fromMI = true
				Isk = max(v1, v2) + 1
			} else {
				Isk = 0
			}

			v1, _, fromM = M.Get(sGapOpen, k+1)
			v2, _, fromD = D.Get(sGapExt, k+1)
			if fromM || fromD {
				fromMD = true
				Dsk = max(v1, v2)
			} else {
				Dsk = 0
			}

			v1, _, fromM = M.Get(sMismatch, k)
			if fromMI || fromMD || fromM {
				offset0 = max(Isk, Dsk, v1+1)
				fromItself = false
			} else {
				fromItself = true
			}

			M0 = M
		}
		if fromItself {
			break
		}
		if offset0 == 0 {
			break
		}

		h0 = int(offset0)

		// traceback matches
		if previousFromM {
			nMatches = h - h0

			// record matches
			if nMatches > 0 {
				if firstMatch { // record the end position of matched region
					firstMatch = false
					cigar.TEnd, cigar.QEnd = h, v
				}

				op = wfaOps[wfaMatch] // correct it as M
				cigar.AddN(op, uint32(nMatches))
			}

			// update coordinates with the offset before extention
			offset = offset0
			h = int(offset)
			v = h - k

			// update the start position of matched region
			if wfaType == wfaMatch { // first line/row
				tBegin, qBegin = h, v
			} else if nMatches > 0 {
				tBegin, qBegin = h+1, v+1
			}

			if h <= 0 || v <= 0 {
				break
			}
		}

		// record
		op = wfaOps[wfaType]
		cigar.AddN(op, 1)

		if h == 1 || v == 1 {
			break
		}

		// -----------------------------------------------------------------------------
		// for next one

		// update score, h, k according to wfaType of current one
		previousFromM = true
		switch wfaType {
		case wfaMismatch:
			s = sMismatch
			h--
		case wfaInsertOpen:
			s = sGapOpen
			k--
			h--
		case wfaInsertExt:
			s = sGapExt
			k--
			h--
			previousFromM = false
		case wfaDeleteOpen:
			s = sGapOpen
			k++
		case wfaDeleteExt:
			s = sGapExt
			k++
			previousFromM = false
		default:
			break LOOP
		}
		// update coordinates
		v = h - k

		// wfaType of the next one
		offset, ok = M0.GetRaw(s, k)
		if !ok {
			break
		}
		wfaType = offset & wfaTypeMask
	}

	// -----------------------------------------------------------------------------
	// the last one

	if h > 0 && v > 0 {
		nMatches = min(h, v) - 1
		if nMatches > 0 {
			if firstMatch { // record the end position of matched region
				firstMatch = false
				cigar.TEnd, cigar.QEnd = h, v
			}

			op = wfaOps[wfaMatch] // correct it as M
			cigar.AddN(op, uint32(nMatches))
			h -= nMatches
			v -= nMatches

			// update the start position of matched region
			if wfaType == wfaMatch { // first line/row
				tBegin, qBegin = h, v
			} else if nMatches > 0 {
				tBegin, qBegin = h+1, v+1
			}
		} else if wfaType == wfaMatch { // first line/row
			tBegin, qBegin = h, v
			if firstMatch { // record the end position of matched region
				firstMatch = false
				cigar.TEnd, cigar.QEnd = h, v
			}
		}

		op = wfaOps[wfaType]
		cigar.AddN(op, 1)
	}

	if v > 1 {
		cigar.AddN('H', uint32(v-1))
	}

	if h > 1 {
		cigar.AddN(wfaOps[wfaInsertOpen], uint32(h-1))
	}

	cigar.TBegin, cigar.QBegin = tBegin, qBegin

	cigar.process()
	return cigar
}
