package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/therootcompany/xz"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/go-aec"
)

// options control one run of the tool.
type options struct {
	cfg     aec.Config
	chunk   int    // bytes per read and per decode call
	out     string // output path for a single input
	pattern string // doublestar pattern of extra inputs
	jobs    int    // files decoded in parallel
	sum     bool   // print output digests
}

// result describes one decoded file.
type result struct {
	in, out  string
	bytesIn  uint64 // coded bytes, after unwrapping xz or zstd
	bytesOut uint64
	sum      uint64 // xxhash64 of the decoded bytes
}

var (
	xzMagic   = []byte("\xfd7zXZ\x00")
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// openInput opens name and unwraps xz or zstd compression, detected from
// the leading magic bytes.
func openInput(fsys afero.Fs, name string) (io.ReadCloser, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	head, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, xzMagic):
		r, err := xz.NewReader(br, xz.DefaultDictMax)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz: %w", err)
		}
		return readCloser{r, f}, nil
	case bytes.HasPrefix(head, zstdMagic):
		d, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		rc := d.IOReadCloser()
		return readCloser{rc, closers{rc, f}}, nil
	default:
		return readCloser{br, f}, nil
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, cl := range c {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

// outputName derives the output path of a batch input: compression and
// coded-data suffixes are removed and ".raw" is appended.
func outputName(in string) string {
	name := in
	for _, ext := range []string{".xz", ".zst", ".rz", ".aec"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name + ".raw"
}

// expandInputs returns the explicit arguments followed by the sorted
// matches of pattern.
func expandInputs(fsys afero.Fs, args []string, pattern string) ([]string, error) {
	inputs := slices.Clone(args)
	if pattern == "" {
		return inputs, nil
	}
	matches, err := doublestar.Glob(afero.NewIOFS(fsys), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	slices.Sort(matches)
	return append(inputs, matches...), nil
}

// decodeFile decodes in to out.
func decodeFile(fsys afero.Fs, in, out string, o options) (res result, err error) {
	res = result{in: in, out: out}

	r, err := openInput(fsys, in)
	if err != nil {
		return res, err
	}
	defer r.Close()

	f, err := fsys.Create(out)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	dec, err := aec.NewDecoder(o.cfg)
	if err != nil {
		return res, err
	}
	defer dec.Close()

	h := xxhash.New()
	w := bufio.NewWriter(io.MultiWriter(f, h))
	if err := decodeStream(dec, r, w, o.chunk); err != nil {
		return res, err
	}
	if err := w.Flush(); err != nil {
		return res, err
	}

	res.bytesIn = dec.TotalIn()
	res.bytesOut = dec.TotalOut()
	res.sum = h.Sum64()
	return res, nil
}

// decodeStream feeds r to dec in chunks and writes everything it decodes.
// At end of input it keeps calling Decode until no more samples come out.
func decodeStream(dec *aec.Decoder, r io.Reader, w io.Writer, chunk int) error {
	bps := dec.BytesPerSample()
	inBuf := make([]byte, chunk)
	outBuf := make([]byte, max(chunk-chunk%bps, bps))

	src := inBuf[:0]
	eof := false
	for {
		if !eof {
			n := copy(inBuf, src)
			m, err := r.Read(inBuf[n:])
			src = inBuf[:n+m]
			switch {
			case errors.Is(err, io.EOF):
				eof = true
			case err != nil:
				return err
			}
		}

		nDst, nSrc, err := dec.Decode(outBuf, src)
		if _, werr := w.Write(outBuf[:nDst]); werr != nil {
			return werr
		}
		if err != nil {
			return err
		}
		src = src[nSrc:]
		if eof && nDst == 0 && nSrc == 0 {
			return nil
		}
	}
}

// decodeAll decodes every input, at most o.jobs at a time. A single input
// goes to o.out when it is set.
func decodeAll(ctx context.Context, fsys afero.Fs, inputs []string, o options) ([]result, error) {
	results := make([]result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.jobs, 1))
	for i, in := range inputs {
		out := outputName(in)
		if o.out != "" && len(inputs) == 1 {
			out = o.out
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("decodeStart", "path", in, "output", out)
			res, err := decodeFile(fsys, in, out, o)
			if err != nil {
				slog.Error("decodeError", "path", in, "err", err)
				return fmt.Errorf("%s: %w", in, err)
			}
			slog.Info("decodeDone", "path", in, "output", out,
				"in", res.bytesIn, "out", res.bytesOut)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeSums prints one "digest  path" line per result.
func writeSums(w io.Writer, results []result) error {
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "%016x  %s\n", res.sum, path.Clean(res.out)); err != nil {
			return err
		}
	}
	return nil
}
