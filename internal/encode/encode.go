// Package encode maps ASCII nucleotide bytes to a numeric form in which
// complementary bases are bitwise complements of one another, so a
// perfect reverse-complement match can be tested with a single XOR.
package encode

import (
	"github.com/invpal/invpal/internal/errs"
	"github.com/pkg/errors"
)

// Encoded byte values. Chosen so that enc(complement(b)) == ^enc(b):
// A (2) ^ T (253) == 0xFF, C (3) ^ G (252) == 0xFF.
const (
	baseA byte = 2
	baseT byte = 253
	baseC byte = 3
	baseG byte = 252
)

// Sequence returns the encoded form of seq. Any byte outside
// {A,a,C,c,G,g,T,t} is rejected with an *errs.FormatError.
func Sequence(seq []byte) ([]byte, error) {
	enc := make([]byte, len(seq))
	for i, b := range seq {
		v, ok := encodeByte(b)
		if !ok {
			return nil, errors.Wrapf(
				errs.NewFormatError("Not a base pair - check format"),
				"invalid base %q at position %d", b, i,
			)
		}
		enc[i] = v
	}
	return enc, nil
}

func encodeByte(b byte) (byte, bool) {
	switch b {
	case 'A', 'a':
		return baseA, true
	case 'T', 't':
		return baseT, true
	case 'C', 'c':
		return baseC, true
	case 'G', 'g':
		return baseG, true
	default:
		return 0, false
	}
}
