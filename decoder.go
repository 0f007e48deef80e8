package aec

import (
	"github.com/llehouerou/go-aec/internal/bits"
	"github.com/llehouerou/go-aec/internal/output"
)

// Decoder is a resumable CCSDS 121.0-B-3 decoder for one stream.
//
// A Decoder buffers one reference sample interval of decoded samples and
// the unconsumed bits of the last input byte, so a stream can be fed in
// chunks of any size and drained in chunks as small as one sample.
// It is not safe for concurrent use.
type Decoder struct {
	cfg Config

	br bits.Reader

	// Code option identifier.
	idLen uint
	id    uint32

	// Output layout.
	layout         output.Layout
	bytesPerSample int
	outBlockLen    int // bytes produced by one block
	inBlockLen     int // input bytes that guarantee a whole block

	// Reference sample of the current block and the samples it codes.
	ref              int
	encodedBlockSize int

	// Preprocessing.
	pp   bool
	post *output.Postprocessor

	// One reference sample interval of decoded samples.
	rsi        []uint32
	rsiPos     int // next sample to decode
	flushStart int // next sample to write out

	step step

	// Per-call output.
	dst      []byte
	dstPos   int // bytes written to dst
	availOut int // bytes of dst not yet claimed by a decoded sample

	totalIn  uint64
	totalOut uint64

	err    error // sticky data error
	closed bool
}

// NewDecoder returns a Decoder for streams described by cfg.
//
// It returns ErrConfiguration for an invalid cfg and ErrAllocation if the
// sample buffer for one reference sample interval would exceed
// MaxIntervalSamples.
//
// Ported from: aec_decode_init() in ~/dev/libaec/src/decode.c
func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.RSI > MaxIntervalSamples/cfg.BlockSize {
		return nil, ErrAllocation
	}

	d := &Decoder{
		cfg:   cfg,
		idLen: idLength(cfg),
		pp:    cfg.Flags&DataPreprocess != 0,
		post:  output.NewPostprocessor(cfg.BitsPerSample, cfg.Flags&DataSigned != 0),
	}
	d.layout = output.SelectLayout(cfg.BitsPerSample, cfg.Flags&DataMSB != 0, cfg.Flags&Data3Byte != 0)
	d.bytesPerSample = d.layout.BytesPerSample()
	d.outBlockLen = cfg.BlockSize * d.bytesPerSample
	d.inBlockLen = (cfg.BlockSize*cfg.BitsPerSample+int(d.idLen))/8 + 16
	d.rsi = make([]uint32, cfg.RSI*cfg.BlockSize)
	d.Reset()
	return d, nil
}

// idLength returns the width of the code option identifier.
func idLength(cfg Config) uint {
	switch {
	case cfg.BitsPerSample > 16:
		return 5
	case cfg.BitsPerSample > 8:
		return 4
	case cfg.Flags&Restricted == 0:
		return 3
	case cfg.BitsPerSample <= 2:
		return 1
	default:
		return 2
	}
}

// Reset discards all decoding progress and returns d to the state
// NewDecoder left it in. It also clears a previous data error.
func (d *Decoder) Reset() {
	if d.closed {
		return
	}
	d.br.Reset()
	d.id = 0
	if d.pp {
		d.ref = 1
		d.encodedBlockSize = d.cfg.BlockSize - 1
	} else {
		d.ref = 0
		d.encodedBlockSize = d.cfg.BlockSize
	}
	d.rsiPos = 0
	d.flushStart = 0
	d.step = step{mode: modeSelectOption}
	d.dst = nil
	d.dstPos = 0
	d.availOut = 0
	d.totalIn = 0
	d.totalOut = 0
	d.err = nil
}

// Close releases the decoder's buffers. Later calls to Decode return
// ErrStream.
//
// Ported from: aec_decode_end() in ~/dev/libaec/src/decode.c
func (d *Decoder) Close() {
	d.rsi = nil
	d.post = nil
	d.dst = nil
	d.br.Reset()
	d.closed = true
}

// Config returns the configuration the decoder was created with.
func (d *Decoder) Config() Config {
	return d.cfg
}

// BytesPerSample returns the size of one output sample.
func (d *Decoder) BytesPerSample() int {
	return d.bytesPerSample
}

// TotalIn returns the number of input bytes consumed since creation or the
// last Reset.
func (d *Decoder) TotalIn() uint64 {
	return d.totalIn
}

// TotalOut returns the number of output bytes produced since creation or
// the last Reset.
func (d *Decoder) TotalOut() uint64 {
	return d.totalOut
}
