package aec

import (
	"errors"
	"io"

	"golang.org/x/text/transform"
)

// Streaming API
//
// A Decoder is a transform.Transformer, so it plugs into the
// golang.org/x/text/transform machinery. NewReader wraps an io.Reader of
// coded bytes into an io.Reader of decoded samples:
//
//	r, err := aec.NewReader(f, aec.Config{BitsPerSample: 16, BlockSize: 16, RSI: 128,
//	    Flags: aec.DataPreprocess | aec.DataMSB})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := io.Copy(out, r); err != nil {
//	    log.Fatal(err)
//	}

var _ transform.Transformer = (*Decoder)(nil)

// Transform implements transform.Transformer.
//
// The coded format has no end marker: trailing bits that do not complete a
// sample are ignored at EOF.
func (d *Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst, nSrc, err = d.Decode(dst, src)
	if errors.Is(err, ErrOutputTooSmall) {
		return nDst, nSrc, transform.ErrShortDst
	}
	if err != nil {
		return nDst, nSrc, err
	}
	// Decode only stops with input left over, or with decodable bits still
	// buffered, when it ran out of output space.
	if nSrc < len(src) || d.availOut < d.bytesPerSample {
		return nDst, nSrc, transform.ErrShortDst
	}
	return nDst, nSrc, nil
}

// NewReader returns a reader of the samples decoded from r.
func NewReader(r io.Reader, cfg Config) (io.Reader, error) {
	d, err := NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, d), nil
}

// DecodeBuffer decodes the whole of src into dst in one call and returns
// the number of bytes written. It returns ErrOutputTooSmall if dst filled
// up before src was used up.
//
// Ported from: aec_buffer_decode() in ~/dev/libaec/src/decode.c
func DecodeBuffer(dst, src []byte, cfg Config) (int, error) {
	d, err := NewDecoder(cfg)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	n, consumed, err := d.Decode(dst, src)
	if err != nil {
		return n, err
	}
	if consumed < len(src) {
		return n, ErrOutputTooSmall
	}
	return n, nil
}
