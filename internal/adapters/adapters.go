// Package adapters aligns each input read against every sequence in
// an adapter FASTA file, using a semi-global wavefront alignment, and
// keeps the best-scoring placement that clears a score cutoff.
package adapters

import (
	"fmt"
	"io"
	"strings"

	"github.com/invpal/invpal/internal/seqio"
	"github.com/invpal/invpal/internal/walign"
)

// polyRunLen is the minimum run length treated as a poly-T or poly-A
// tract by TrimPolyRuns.
const polyRunLen = 8

// Match is the best adapter alignment found for one read.
type Match struct {
	ReadName    string
	AdapterName string
	CIGAR       string
	Score       int
}

// Options bundles the pipeline's tuning parameters.
type Options struct {
	Penalties   *walign.Penalties
	ScoreCutoff int
	TrimPolyTA  bool

	// Debug, if non-nil, receives a DP-matrix plot, raw wavefront dump,
	// and aligned-text rendering for the best match of every read —
	// for tracking down a surprising alignment score.
	Debug io.Writer
}

// DefaultOptions uses the aligner's own suggested gap-affine penalties.
var DefaultOptions = Options{
	Penalties:   walign.DefaultPenalties,
	ScoreCutoff: 0,
}

// AlignBest aligns read against every adapter and returns the match
// with the lowest alignment score (best, since Score is a penalty
// sum), or ok=false if none of them clears opts.ScoreCutoff.
func AlignBest(read seqio.Record, adapterList []seqio.Record, opts Options) (Match, bool) {
	sequence := read.Sequence
	if opts.TrimPolyTA {
		sequence = TrimPolyRuns(sequence)
	}

	algn := walign.New(opts.Penalties)
	if err := algn.AdaptiveReduction(walign.DefaultAdaptiveOption); err != nil {
		panic(err) // DefaultAdaptiveOption is always valid
	}
	defer walign.RecycleAligner(algn)

	readBytes := []byte(strings.ToUpper(sequence))

	var best Match
	found := false

	for _, adapter := range adapterList {
		adapterBytes := []byte(strings.ToUpper(adapter.Sequence))

		result, err := algn.Align(adapterBytes, readBytes)
		if err != nil || result == nil {
			continue
		}

		score := int(result.Score)
		if score > opts.ScoreCutoff {
			walign.RecycleAlignmentResult(result)
			continue
		}

		if !found || score < best.Score {
			best = Match{
				ReadName:    read.Name,
				AdapterName: adapter.Name,
				CIGAR:       result.CIGAR(),
				Score:       score,
			}
			found = true

			if opts.Debug != nil {
				debugAlignment(opts.Debug, algn, read.Name, adapter.Name, &adapterBytes, &readBytes, result)
			}
		}
		walign.RecycleAlignmentResult(result)
	}

	return best, found
}

// debugAlignment writes the DP matrix, raw wavefront dump, and aligned
// text for one alignment. It must run before the Aligner's next Align
// call, which clears the wavefronts this reads.
func debugAlignment(w io.Writer, algn *walign.Aligner, readName, adapterName string, adapter, read *[]byte, result *walign.AlignmentResult) {
	fmt.Fprintf(w, "=== %s vs %s (score %d) ===\n", readName, adapterName, result.Score)

	Q, A, T := result.AlignmentText(adapter, read)
	fmt.Fprintf(w, "adapter: %s\n         %s\n read:    %s\n", *Q, *A, *T)
	walign.RecycleAlignmentText(Q, A, T)

	algn.M.Print(w, "M")
	algn.Plot(adapter, read, w, algn.M, false, -1)
}

// TrimPolyRuns implements the remove_t behavior: strip everything up
// to and including the first poly-T run, or, if none is found, strip
// a trailing poly-A run instead.
func TrimPolyRuns(seq string) string {
	if i := indexOfRun(seq, 'T', polyRunLen); i >= 0 {
		end := i + polyRunLen
		for end < len(seq) && upper(seq[end]) == 'T' {
			end++
		}
		return seq[end:]
	}
	if i := lastIndexOfRun(seq, 'A', polyRunLen); i >= 0 {
		for i > 0 && upper(seq[i-1]) == 'A' {
			i--
		}
		return seq[:i]
	}
	return seq
}

func indexOfRun(seq string, base byte, runLen int) int {
	run := 0
	for i := 0; i < len(seq); i++ {
		if upper(seq[i]) == base {
			run++
			if run == runLen {
				return i - runLen + 1
			}
		} else {
			run = 0
		}
	}
	return -1
}

func lastIndexOfRun(seq string, base byte, runLen int) int {
	run := 0
	for i := len(seq) - 1; i >= 0; i-- {
		if upper(seq[i]) == base {
			run++
			if run == runLen {
				return i
			}
		} else {
			run = 0
		}
	}
	return -1
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
