// Command aecdec decodes CCSDS 121.0-B-3 (AEC) coded files.
//
// Usage:
//
//	aecdec -n 16 -j 32 -r 128 -m data.rz            # writes data.raw
//	aecdec -n 8 -N -o out.raw data.rz.xz            # xz or zstd wrapped input
//	aecdec -n 12 -glob 'scans/**/*.rz' -jobs 4 -sum # batch
//
// Options follow the reference aec tool: preprocessing is on unless -N is
// given. Decoded samples are written bytesPerSample wide, little-endian
// unless -m is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"github.com/llehouerou/go-aec"
)

func main() {
	bitsPerSample := flag.Int("n", 8, "Bits per sample (1-32)")
	blockSize := flag.Int("j", 32, "Block size in samples")
	rsi := flag.Int("r", 128, "Reference sample interval in blocks")
	signed := flag.Bool("s", false, "Samples are signed")
	msb := flag.Bool("m", false, "Write samples big-endian")
	threeByte := flag.Bool("3", false, "Write 17-24 bit samples as 3 bytes")
	noPreprocess := flag.Bool("N", false, "Stream is not preprocessed")
	padRSI := flag.Bool("p", false, "Reference sample intervals are byte aligned")
	restricted := flag.Bool("t", false, "Restricted code options for samples of up to 4 bits")
	chunk := flag.Int("b", 1<<16, "Chunk size in bytes")
	out := flag.String("o", "", "Output file (single input only)")
	pattern := flag.String("glob", "", "Also decode files matching this pattern (** allowed)")
	jobs := flag.Int("jobs", 1, "Files to decode in parallel")
	sum := flag.Bool("sum", false, "Print an xxhash64 digest of each output")
	verbose := flag.Bool("v", false, "Log progress")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var flags aec.Flags
	if *signed {
		flags |= aec.DataSigned
	}
	if *msb {
		flags |= aec.DataMSB
	}
	if *threeByte {
		flags |= aec.Data3Byte
	}
	if !*noPreprocess {
		flags |= aec.DataPreprocess
	}
	if *padRSI {
		flags |= aec.PadRSI
	}
	if *restricted {
		flags |= aec.Restricted
	}

	o := options{
		cfg: aec.Config{
			BitsPerSample: *bitsPerSample,
			BlockSize:     *blockSize,
			RSI:           *rsi,
			Flags:         flags,
		},
		chunk:   max(*chunk, 1),
		out:     *out,
		pattern: *pattern,
		jobs:    *jobs,
		sum:     *sum,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, afero.NewOsFs(), os.Stdout, flag.Args(), o); err != nil {
		fmt.Fprintf(os.Stderr, "aecdec: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run decodes the inputs named by args and o.pattern.
func run(ctx context.Context, fsys afero.Fs, stdout io.Writer, args []string, o options) error {
	// Reject a bad configuration before touching any file.
	dec, err := aec.NewDecoder(o.cfg)
	if err != nil {
		return err
	}
	dec.Close()

	inputs, err := expandInputs(fsys, args, o.pattern)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no input files")
	}
	if o.out != "" && len(inputs) > 1 {
		return fmt.Errorf("-o needs exactly one input, got %d", len(inputs))
	}

	results, err := decodeAll(ctx, fsys, inputs, o)
	if err != nil {
		return err
	}
	if o.sum {
		return writeSums(stdout, results)
	}
	return nil
}
