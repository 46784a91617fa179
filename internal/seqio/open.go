package seqio

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/invpal/invpal/internal/errs"
)

// Format selects how an input file's bytes are framed.
type Format int

const (
	// FormatFasta reads the input as plain FASTA.
	FormatFasta Format = iota
	// FormatFastaGZ reads the input as gzip-compressed FASTA.
	FormatFastaGZ
	// FormatFastq reads the input as plain FASTQ.
	FormatFastq
	// FormatFastqGZ reads the input as gzip-compressed FASTQ.
	FormatFastqGZ
)

// Open opens path under the given format and returns a Reader over
// its records, plus the underlying *os.File for the caller to close.
func Open(path string, format Format) (Reader, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}

	var body io.Reader = file
	fastq := format == FormatFastq || format == FormatFastqGZ
	gzipped := format == FormatFastaGZ || format == FormatFastqGZ

	if gzipped {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, errors.Wrapf(err, "reading gzip header of %s", path)
		}
		body = gz
	}

	if fastq {
		return NewFastqReader(body), file, nil
	}
	return NewFastaReader(body), file, nil
}

// ParseFormat resolves the four mutually-exclusive, jointly-required
// input-format flags into a single Format, mirroring the original
// CLI's ArgGroup validation.
func ParseFormat(fa, fgz, fq, fqgz bool) (Format, error) {
	flags := []struct {
		set    bool
		format Format
	}{
		{fa, FormatFasta},
		{fgz, FormatFastaGZ},
		{fq, FormatFastq},
		{fqgz, FormatFastqGZ},
	}

	var format Format
	count := 0
	for _, f := range flags {
		if f.set {
			count++
			format = f.format
		}
	}
	if count != 1 {
		return 0, errs.NewConfigError("exactly one of -fa, -fgz, -fq, -fqgz must be set")
	}
	return format, nil
}
