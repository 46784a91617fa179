package seqio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastaReaderMultipleRecords(t *testing.T) {
	input := ">seq1 description\nACGT\nACGT\n>seq2\nTTTT\n"
	r := NewFastaReader(strings.NewReader(input))

	var got []Record
	for r.Next() {
		got = append(got, r.Record())
	}
	require.NoError(t, r.Err())
	require.Len(t, got, 2)

	assert.Equal(t, Record{Name: "seq1 description", Sequence: "ACGTACGT"}, got[0])
	assert.Equal(t, Record{Name: "seq2", Sequence: "TTTT"}, got[1])
}

func TestFastaReaderRejectsMissingHeader(t *testing.T) {
	r := NewFastaReader(strings.NewReader("ACGT\n"))
	assert.False(t, r.Next())
	assert.Error(t, r.Err())
}

func TestFastqReaderSingleRecord(t *testing.T) {
	input := "@read1\nACGTACGT\n+\nIIIIIIII\n"
	r := NewFastqReader(strings.NewReader(input))

	require.True(t, r.Next(), "err=%v", r.Err())
	rec := r.Record()
	assert.Equal(t, "read1", rec.Name)
	assert.Equal(t, "ACGTACGT", rec.Sequence)
	assert.Equal(t, "IIIIIIII", r.FastqRecord().Quality)
	assert.False(t, r.Next(), "expected only one record")
}

func TestFastqReaderMultipleRecords(t *testing.T) {
	input := "@read1\nACGT\n+\nIIII\n@read2\nTTTT\n+\nJJJJ\n"
	r := NewFastqReader(strings.NewReader(input))

	var got []Record
	for r.Next() {
		got = append(got, r.Record())
	}
	require.NoError(t, r.Err())
	require.Len(t, got, 2)
	assert.Equal(t, "read1", got[0].Name)
	assert.Equal(t, "read2", got[1].Name)
}

func TestParseFormatRequiresExactlyOne(t *testing.T) {
	_, err := ParseFormat(false, false, false, false)
	assert.Error(t, err, "expected an error when no format flag is set")

	_, err = ParseFormat(true, true, false, false)
	assert.Error(t, err, "expected an error when two format flags are set")

	f, err := ParseFormat(false, false, true, false)
	require.NoError(t, err)
	assert.Equal(t, FormatFastq, f)
}
