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
	"strconv"
	"sync"
)

// AlignmentResult is one read/adapter alignment: its CIGAR (packed as
// Ops, one uint64 per run: 8-bit op in bits 32-39, 32-bit count in
// the low bits) plus the score and coordinates AlignBest reports.
type AlignmentResult struct {
	Ops []uint64

	Score uint32 // alignment score (lower is better; 0 is a perfect match)

	TBegin, TEnd int // 1-based span of the alignment within the read, excluding flanking clip
	QBegin, QEnd int // 1-based span of the alignment within the adapter, excluding flanking clip

	// Stats over the aligned region only (flanking clip/insertion excluded).
	AlignLen   uint32
	Matches    uint32
	Gaps       uint32
	GapRegions uint32

	proccessed bool
}

// Op extracts the operation byte and run length packed into one Ops entry.
func Op(op uint64) (byte, uint32) {
	return byte(op >> 32), uint32(op & MaskLower32)
}

const OpM = uint64('M')
const OpD = uint64('D')
const OpI = uint64('I')
const OpX = uint64('X')
const OpH = uint64('H')
const MaskLower32 = 4294967295

// NewAlignmentResult returns an AlignmentResult from the object pool.
func NewAlignmentResult() *AlignmentResult {
	cigar := poolCIGAR.Get().(*AlignmentResult)
	cigar.reset()
	return cigar
}

func (cigar *AlignmentResult) reset() {
	cigar.Ops = cigar.Ops[:0]
	cigar.Score = 0
	cigar.proccessed = false

	cigar.AlignLen = 0
	cigar.Matches = 0
	cigar.Gaps = 0
	cigar.GapRegions = 0
}

// RecycleAlignmentResult returns an AlignmentResult to the object pool.
func RecycleAlignmentResult(cigar *AlignmentResult) {
	if cigar != nil {
		poolCIGAR.Put(cigar)
	}
}

var poolCIGAR = &sync.Pool{New: func() interface{} {
	cigar := AlignmentResult{
		Ops: make([]uint64, 0, 1024),
	}
	return &cigar
}}

// Add appends a single-base backtrace op.
func (cigar *AlignmentResult) Add(op byte) {
	cigar.AddN(op, 1)
}

// AddN appends a backtrace op with run length n.
func (cigar *AlignmentResult) AddN(op byte, n uint32) {
	cigar.Ops = append(cigar.Ops, uint64(op)<<32|uint64(n))
}

// Update adds n to the run length of the most recently added op.
func (cigar *AlignmentResult) Update(n uint32) {
	l := len(cigar.Ops)
	if l > 0 {
		cigar.Ops[l-1] += uint64(n)
	}
}

// process reverses the backtrace order (backTrace walks the alignment
// end to start), merges adjacent runs of the same op, and tallies
// match/gap stats over the span between the first and last match.
func (cigar *AlignmentResult) process() {
	if cigar.proccessed {
		return
	}
	s := &cigar.Ops

	var i, j int
	for i, j = 0, len(*s)-1; i < j; i, j = i+1, j-1 {
		(*s)[i], (*s)[j] = (*s)[j], (*s)[i]
	}

	var opPre, op uint64
	var iPre int
	var newOp bool
	i, j = 0, 0
	opPre = (*s)[0]
	iPre = 0
	for i = 1; i < len(*s); i++ {
		op = (*s)[i]
		if op>>32 == opPre>>32 {
			(*s)[iPre] = opPre + op&MaskLower32

			if !newOp {
				j = i // mark insert position
				newOp = true
			}
			continue
		}

		if newOp {
			(*s)[j] = op
			j++
		}

		opPre = op
		iPre = i
	}
	if j > 0 {
		*s = (*s)[:j]
	}

	var begin, end int
	for i, op = range *s {
		if op>>32 == OpM {
			begin = i
			break
		}
	}
	for i = len(*s) - 1; i >= 0; i-- {
		op = (*s)[i]
		if op>>32 == OpM {
			end = i
			break
		}
	}
	var alen uint32
	var matches uint32
	var gaps uint32
	var gapRegions uint32

	for i = begin; i <= end; i++ {
		op = (*s)[i]
		alen += uint32(op & MaskLower32)
		switch op >> 32 {
		case OpM:
			matches += uint32(op & MaskLower32)
		case OpI, OpD:
			gaps += uint32(op & MaskLower32)
			gapRegions++
		}
	}
	cigar.AlignLen = alen
	cigar.Matches = matches
	cigar.Gaps = gaps
	cigar.GapRegions = gapRegions

	cigar.proccessed = true
}

// CIGAR renders the alignment as a CIGAR string (run length + op byte,
// repeated), e.g. "10I13M10I" for a 13-base adapter found after 10 free
// read bases and followed by 10 more.
func (cigar *AlignmentResult) CIGAR() string {
	cigar.process()
	buf := poolBytesBuffer.Get().(*bytes.Buffer)
	buf.Reset()

	for _, op := range cigar.Ops {
		buf.WriteString(strconv.Itoa(int(op & MaskLower32)))
		buf.WriteByte(byte(op >> 32))
	}

	text := buf.String()
	poolBytesBuffer.Put(buf)
	return text
}

// AlignmentText renders the alignment as three parallel byte slices —
// adapter, a '|' match track, and read — for human inspection of a
// surprising alignment. Callers must return them with
// RecycleAlignmentText.
func (cigar *AlignmentResult) AlignmentText(q, t *[]byte) (*[]byte, *[]byte, *[]byte) {
	cigar.process()

	Q := poolBytes.Get().(*[]byte)
	A := poolBytes.Get().(*[]byte)
	T := poolBytes.Get().(*[]byte)

	var h, v int
	var i, n uint64
	for _, op := range cigar.Ops {
		n = op & MaskLower32

		switch op >> 32 {
		case OpM:
			for i = 0; i < n; i++ {
				*Q = append(*Q, (*q)[v])
				*A = append(*A, '|')
				*T = append(*T, (*t)[h])
				v++
				h++
			}
		case OpX:
			for i = 0; i < n; i++ {
				*Q = append(*Q, (*q)[v])
				*A = append(*A, ' ')
				*T = append(*T, (*t)[h])
				v++
				h++
			}
		case OpI:
			for i = 0; i < n; i++ {
				*Q = append(*Q, '-')
				*A = append(*A, ' ')
				*T = append(*T, (*t)[h])
				h++
			}
		case OpD, OpH:
			for i = 0; i < n; i++ {
				*Q = append(*Q, (*q)[v])
				*A = append(*A, ' ')
				*T = append(*T, '-')
				v++
			}
		}
	}

	return Q, A, T
}

var poolBytesBuffer = &sync.Pool{New: func() interface{} {
	buf := make([]byte, 1024)
	return bytes.NewBuffer(buf)
}}

var poolBytes = &sync.Pool{New: func() interface{} {
	buf := make([]byte, 0, 1024)
	return &buf
}}

// RecycleAlignmentText returns the three AlignmentText slices to the
// object pool.
func RecycleAlignmentText(Q, A, T *[]byte) {
	if Q != nil {
		*Q = (*Q)[:0]
		poolBytes.Put(Q)
	}
	if A != nil {
		*A = (*A)[:0]
		poolBytes.Put(A)
	}
	if T != nil {
		*T = (*T)[:0]
		poolBytes.Put(T)
	}
}
