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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/profile"

	"github.com/invpal/invpal/internal/adapters"
	"github.com/invpal/invpal/internal/config"
	"github.com/invpal/invpal/internal/exactscan"
	"github.com/invpal/invpal/internal/output"
	"github.com/invpal/invpal/internal/palwfa"
	"github.com/invpal/invpal/internal/scan"
	"github.com/invpal/invpal/internal/seqio"
	"github.com/invpal/invpal/internal/walign"
)

var version = "0.1.0"

func main() {
	app := filepath.Base(os.Args[0])
	if len(os.Args) < 2 {
		usage(app)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "wfa":
		runWFA(app, os.Args[2:])
	case "exact":
		runExact(app, os.Args[2:])
	case "adapters":
		runAdapters(app, os.Args[2:])
	case "-h", "--help", "help":
		usage(app)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		usage(app)
		os.Exit(1)
	}
}

func usage(app string) {
	fmt.Fprintf(os.Stderr, `
Approximate palindrome (inverted repeat) finder, v%s

Usage:
  %s wfa      -input reads.fa -fa [options]
  %s exact    -input reads.fa -fa [options]
  %s adapters -input reads.fa -fa -adapters adapters.fa -output out.fa [options]

Run '%s <subcommand> -h' for a subcommand's own flags.
`, version, app, app, app, app)
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func inputFlags(fs *flag.FlagSet) (input *string, fa, fgz, fq, fqgz *bool) {
	input = fs.String("input", "", "input file path")
	fa = fs.Bool("fa", false, "read the input file as FASTA")
	fgz = fs.Bool("fgz", false, "read the input file as gzip-compressed FASTA")
	fq = fs.Bool("fq", false, "read the input file as FASTQ")
	fqgz = fs.Bool("fqgz", false, "read the input file as gzip-compressed FASTQ")
	return
}

func openInput(input string, fa, fgz, fq, fqgz bool) (seqio.Reader, func()) {
	format, err := seqio.ParseFormat(fa, fgz, fq, fqgz)
	checkError(err)

	reader, file, err := seqio.Open(input, format)
	checkError(err)

	return reader, func() { file.Close() }
}

func profileFlags(fs *flag.FlagSet) (cpu, mem *string) {
	cpu = fs.String("cpuprofile", "", "write a CPU profile (cpu.pprof) into this directory")
	mem = fs.String("memprofile", "", "write a memory profile (mem.pprof) into this directory")
	return
}

func startProfile(cpu, mem string) func() {
	switch {
	case cpu != "":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(cpu)).Stop
	case mem != "":
		return profile.Start(profile.MemProfile, profile.ProfilePath(mem)).Stop
	default:
		return func() {}
	}
}

func runWFA(app string, args []string) {
	fs := flag.NewFlagSet(app+" wfa", flag.ExitOnError)
	input, fa, fgz, fq, fqgz := inputFlags(fs)
	output_ := fs.String("output", "", "output TSV path (default: stdout)")

	minLength := fs.Int("min-length", 10, "minimum arm length to report")
	gapLen := fs.Int("gap-len", 3, "number of diagonals searched off-center")
	matchBonus := fs.Float64("match-bonus", 1.0, "score bonus per matching base pair")
	mismatchPenalty := fs.Float64("mismatch-penalty", 4.0, "score penalty per edit")
	xDrop := fs.Float64("x-drop", 20.0, "x-drop pruning bound")
	mismatchProportion := fs.Float64("mismatch-proportion", 0.05, "maximum edits per matched base")
	cpu, mem := profileFlags(fs)
	fs.Parse(args)

	defer startProfile(*cpu, *mem)()

	cfg := config.WFA{
		MinLength:          *minLength,
		GapLen:             *gapLen,
		MatchBonus:         *matchBonus,
		MismatchPenalty:    *mismatchPenalty,
		XDrop:              *xDrop,
		MismatchProportion: *mismatchProportion,
	}
	checkError(cfg.Validate())

	reader, closeInput := openInput(*input, *fa, *fgz, *fq, *fqgz)
	defer closeInput()

	w, closeOutput := openOutput(*output_)
	defer closeOutput()

	start := time.Now()
	for reader.Next() {
		rec := reader.Record()
		records, err := scan.Find(rec.Name, []byte(rec.Sequence), scan.Config{
			MinLength: cfg.MinLength,
			Config: palwfa.Config{
				GapLen:             cfg.GapLen,
				MatchBonus:         cfg.MatchBonus,
				MismatchPenalty:    cfg.MismatchPenalty,
				XDrop:              cfg.XDrop,
				MismatchProportion: cfg.MismatchProportion,
			},
		})
		checkError(err)
		for _, r := range records {
			checkError(w.Write(r))
		}
	}
	checkError(reader.Err())
	checkError(w.Flush())

	log.Printf("Total elapsed time: %s", time.Since(start))
	log.Printf("Settings: %s", cfg)
}

func runExact(app string, args []string) {
	fs := flag.NewFlagSet(app+" exact", flag.ExitOnError)
	input, fa, fgz, fq, fqgz := inputFlags(fs)
	output_ := fs.String("output", "", "output TSV path (default: stdout)")

	minLength := fs.Int("len", 10, "minimum arm length to report")
	gapLen := fs.Int("gap", 3, "number of diagonals searched off-center")
	mismatches := fs.Int("mismatches", 4, "maximum mismatches allowed per arm")
	cpu, mem := profileFlags(fs)
	fs.Parse(args)

	defer startProfile(*cpu, *mem)()

	cfg := config.Exact{MinLength: *minLength, GapLen: *gapLen, Mismatches: *mismatches}
	checkError(cfg.Validate())

	reader, closeInput := openInput(*input, *fa, *fgz, *fq, *fqgz)
	defer closeInput()

	w, closeOutput := openOutput(*output_)
	defer closeOutput()

	start := time.Now()
	for reader.Next() {
		rec := reader.Record()
		records, err := exactscan.Scan(rec.Name, []byte(rec.Sequence), exactscan.Config{
			MinLength:  cfg.MinLength,
			GapLen:     cfg.GapLen,
			Mismatches: cfg.Mismatches,
		})
		checkError(err)
		for _, r := range records {
			checkError(w.Write(r))
		}
	}
	checkError(reader.Err())
	checkError(w.Flush())

	log.Printf("Total elapsed time: %s", time.Since(start))
	log.Printf("Settings: %s", cfg)
}

func runAdapters(app string, args []string) {
	fs := flag.NewFlagSet(app+" adapters", flag.ExitOnError)
	input, fa, fgz, fq, fqgz := inputFlags(fs)

	outputPath := fs.String("output", "", "output FASTA path")
	adaptersPath := fs.String("adapters", "", "adapter sequences, FASTA format")
	longestAdapter := fs.Int("longest-adapter", 0, "length of the longest adapter in the file")
	scoreCutoff := fs.Int("score-cutoff", 0, "largest alignment score (lower is better) to report")
	removeT := fs.Bool("remove-t", false, "trim a leading poly-T (or trailing poly-A) run before aligning")
	debugPlot := fs.Bool("debug-plot", false, "write each read's best alignment matrix and aligned text to stderr")
	cpu, mem := profileFlags(fs)
	fs.Parse(args)

	defer startProfile(*cpu, *mem)()

	cfg := config.Adapter{
		InputFile:      *input,
		AdaptersFile:   *adaptersPath,
		OutputFile:     *outputPath,
		LongestAdapter: *longestAdapter,
		ScoreCutoff:    float64(*scoreCutoff),
		RemoveT:        *removeT,
	}
	checkError(cfg.Validate())

	reader, closeInput := openInput(*input, *fa, *fgz, *fq, *fqgz)
	defer closeInput()

	adapterFile, err := os.Open(*adaptersPath)
	checkError(err)
	defer adapterFile.Close()

	var adapterList []seqio.Record
	adapterReader := seqio.NewFastaReader(adapterFile)
	for adapterReader.Next() {
		adapterList = append(adapterList, adapterReader.Record())
	}
	checkError(adapterReader.Err())

	outFile, err := os.Create(*outputPath)
	checkError(err)
	defer outFile.Close()

	opts := adapters.Options{
		Penalties:   walign.DefaultPenalties,
		ScoreCutoff: *scoreCutoff,
		TrimPolyTA:  *removeT,
	}
	if *debugPlot {
		opts.Debug = os.Stderr
	}

	start := time.Now()
	for reader.Next() {
		rec := reader.Record()
		match, ok := adapters.AlignBest(rec, adapterList, opts)
		if !ok {
			continue
		}
		fmt.Fprintf(outFile, ">%s\n%s\n", match.ReadName, match.CIGAR)
	}
	checkError(reader.Err())

	log.Printf("Total elapsed time: %s", time.Since(start))
	log.Printf("Settings: %s", cfg)
}

func openOutput(path string) (*output.Writer, func()) {
	if path == "" {
		return output.NewWriter(os.Stdout), func() {}
	}
	f, err := os.Create(path)
	checkError(err)
	return output.NewWriter(f), func() { f.Close() }
}
