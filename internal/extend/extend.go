// Package extend walks outward from an anchor counting matching
// reverse-complement base pairs, comparing 8-base windows packed into
// 64-bit words so a run of matches collapses to one XOR and a
// trailing-zero count.
package extend

import (
	"encoding/binary"
	"math/bits"

	"github.com/invpal/invpal/internal/errs"
)

// chunk is the number of bases compared per packed word.
const chunk = 8

// Extend walks outward from index, counting additional matching
// complementary base pairs. x is the forward cursor (x >= index), y is
// the reverse cursor measured backward from index (the reverse window
// is enc[index-y-len2 : index-y]). It stops when a packed chunk returns
// fewer than 8 matches or a cursor reaches its boundary.
func Extend(x, y, index int, enc []byte) (int, error) {
	length := len(enc)
	count := chunk
	total := 0

	for x < length && y < index && count >= chunk {
		len1 := min(length-x, chunk)
		len2 := min(index-y, chunk)

		var err error
		count, err = CountMatching(enc[x:x+len1], enc[index-y-len2:index-y])
		if err != nil {
			return 0, err
		}

		x += count
		y += count
		total += count
	}
	return total, nil
}

// CountMatching returns how many leading bases of fwd are the
// reverse-complement of the trailing bases of rev, reading rev back to
// front. Both slices must be at most 8 bytes; each is zero-padded to a
// full word before packing.
func CountMatching(fwd, rev []byte) (int, error) {
	if len(fwd) > chunk {
		return 0, errs.NewLengthError("Sequence length too long when processing bits")
	}
	if len(rev) > chunk {
		return 0, errs.NewLengthError("Sequence length too long when processing bits")
	}

	var buf1, buf2 [chunk]byte
	copy(buf1[:], fwd)
	copy(buf2[chunk-len(rev):], rev)

	num1 := binary.LittleEndian.Uint64(buf1[:])
	num2 := ^binary.BigEndian.Uint64(buf2[:])

	// Zero-padding on the fwd side and bit-inverted zero-padding on the
	// rev side never compare equal (real encoded bases are never 0x00
	// or 0xFF), so a short slice naturally terminates the run at its
	// own boundary without an explicit clamp.
	diff := num1 ^ num2
	return bits.TrailingZeros64(diff) / 8, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
