package seqio

import (
	"bufio"
	"io"
	"strings"

	"github.com/invpal/invpal/internal/errs"
)

// FastaReader parses FASTA by looking one header ahead: a record is
// only complete once the following '>' line, or EOF, is seen.
type FastaReader struct {
	sc       *bufio.Scanner
	currName string
	pending  Record
	err      error
	done     bool
}

// NewFastaReader wraps r as a FASTA Reader.
func NewFastaReader(r io.Reader) *FastaReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	return &FastaReader{sc: sc}
}

// Next advances to the next record, returning false at EOF or on
// error.
func (f *FastaReader) Next() bool {
	if f.err != nil || f.done {
		return false
	}

	var seq strings.Builder
	for f.sc.Scan() {
		line := f.sc.Text()

		if strings.HasPrefix(line, ">") {
			name := line[1:]
			if seq.Len() == 0 {
				f.currName = name
				continue
			}
			f.pending = Record{Name: f.currName, Sequence: seq.String()}
			f.currName = name
			return true
		}

		if f.currName == "" {
			f.err = errs.NewFormatError("Invalid fasta format")
			return false
		}
		seq.WriteString(line)
	}

	if err := f.sc.Err(); err != nil {
		f.err = err
		return false
	}
	f.done = true
	if seq.Len() == 0 {
		return false
	}
	f.pending = Record{Name: f.currName, Sequence: seq.String()}
	return true
}

// Record returns the record produced by the most recent true-returning
// call to Next.
func (f *FastaReader) Record() Record { return f.pending }

// Err returns the first error encountered, if any.
func (f *FastaReader) Err() error { return f.err }
