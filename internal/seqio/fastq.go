package seqio

import (
	"bufio"
	"io"
	"strings"

	"github.com/invpal/invpal/internal/errs"
)

// FastqReader parses FASTQ four-line blocks, again one header ahead:
// the accumulated block is only emitted once the following '@' header
// line, or EOF, is seen.
type FastqReader struct {
	sc       *bufio.Scanner
	currName string
	counter  int
	pending  FastqRecord
	err      error
	done     bool
}

// NewFastqReader wraps r as a FASTQ Reader.
func NewFastqReader(r io.Reader) *FastqReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	return &FastqReader{sc: sc}
}

// Next advances to the next record, returning false at EOF or on
// error.
func (f *FastqReader) Next() bool {
	if f.err != nil || f.done {
		return false
	}

	var seq, qual strings.Builder
	for f.sc.Scan() {
		line := f.sc.Text()

		switch {
		case f.counter == 0 && strings.HasPrefix(line, "@"):
			f.counter++
			name := line[1:]
			if seq.Len() == 0 {
				f.currName = name
				continue
			}
			f.pending = FastqRecord{
				Record:  Record{Name: f.currName, Sequence: seq.String()},
				Quality: qual.String(),
			}
			f.currName = name
			return true
		case f.counter == 1:
			seq.WriteString(line)
			f.counter++
		case f.counter == 2:
			f.counter++
		case f.counter == 3:
			qual.WriteString(line)
			f.counter = 0
		default:
			f.err = errs.NewFormatError("Invalid fastq format")
			return false
		}
	}

	if err := f.sc.Err(); err != nil {
		f.err = err
		return false
	}
	f.done = true
	if seq.Len() == 0 {
		return false
	}
	f.pending = FastqRecord{
		Record:  Record{Name: f.currName, Sequence: seq.String()},
		Quality: qual.String(),
	}
	return true
}

// Record returns the Name/Sequence of the most recently produced
// record, dropping its quality string.
func (f *FastqReader) Record() Record { return f.pending.Record }

// FastqRecord returns the full record, quality string included.
func (f *FastqReader) FastqRecord() FastqRecord { return f.pending }

// Err returns the first error encountered, if any.
func (f *FastqReader) Err() error { return f.err }
