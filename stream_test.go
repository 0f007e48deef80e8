package aec

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"golang.org/x/text/transform"

	"github.com/llehouerou/go-aec/internal/testenc"
)

func TestNewReader(t *testing.T) {
	configs := []Config{
		{16, 16, 8, DataPreprocess | DataSigned},
		{24, 8, 4, DataPreprocess | Data3Byte},
		{8, 32, 2, 0},
	}

	for _, cfg := range configs {
		samples := testSamples(cfg, 200, 5)
		stream := testenc.Encode(samples, encodeOptions(cfg))
		want := expectedOutput(cfg, samples)

		for _, oneByte := range []bool{false, true} {
			var src io.Reader = bytes.NewReader(stream)
			if oneByte {
				src = iotest.OneByteReader(src)
			}
			r, err := NewReader(src, cfg)
			if err != nil {
				t.Fatalf("NewReader(%+v): %v", cfg, err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("%+v: ReadAll: %v", cfg, err)
			}
			if i := firstDiff(got, want); i >= 0 {
				t.Errorf("%+v oneByte=%v: %d bytes, want %d, first difference at %d",
					cfg, oneByte, len(got), len(want), i)
			}
		}
	}
}

func TestNewReader_DataError(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 2}
	r, err := NewReader(bytes.NewReader([]byte{0x02}), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadAll(r); !errors.Is(err, ErrData) {
		t.Errorf("ReadAll: err = %v, want ErrData", err)
	}
}

func TestNewReader_ConfigurationError(t *testing.T) {
	r, err := NewReader(bytes.NewReader(nil), Config{BitsPerSample: 8, BlockSize: 3, RSI: 1})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
	if r != nil {
		t.Error("reader returned with error")
	}
}

func TestDecoder_TransformShortDst(t *testing.T) {
	d, err := NewDecoder(Config{BitsPerSample: 16, BlockSize: 8, RSI: 1})
	if err != nil {
		t.Fatal(err)
	}
	stream := []byte{0xF0, 0x10, 0x20, 0x30}
	nDst, _, err := d.Transform(make([]byte, 1), stream, true)
	if err != transform.ErrShortDst {
		t.Errorf("err = %v, want ErrShortDst", err)
	}
	if nDst != 0 {
		t.Errorf("nDst = %d, want 0", nDst)
	}
}

func TestDecodeBuffer(t *testing.T) {
	cfg := Config{BitsPerSample: 12, BlockSize: 16, RSI: 4, Flags: DataPreprocess | DataMSB}
	samples := testSamples(cfg, 40, 11)
	stream := testenc.Encode(samples, encodeOptions(cfg))
	want := expectedOutput(cfg, samples)

	out := make([]byte, len(want))
	n, err := DecodeBuffer(out, stream, cfg)
	if err != nil {
		t.Fatalf("DecodeBuffer: %v", err)
	}
	compareOutput(t, out[:n], want)
}

func TestDecodeBuffer_OutputTooSmall(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 2}
	samples := make([]uint32, 128)
	for i := range samples {
		samples[i] = uint32(i * 3)
	}
	opts := encodeOptions(cfg)
	opts.Force = testenc.Uncompressed
	stream := testenc.Encode(samples, opts)

	out := make([]byte, 64)
	n, err := DecodeBuffer(out, stream, cfg)
	if !errors.Is(err, ErrOutputTooSmall) {
		t.Fatalf("err = %v, want ErrOutputTooSmall", err)
	}
	if n != 64 {
		t.Errorf("n = %d, want 64", n)
	}
	compareOutput(t, out[:n], expectedOutput(cfg, samples[:64]))
}

func TestDecodeBuffer_ConfigurationError(t *testing.T) {
	_, err := DecodeBuffer(make([]byte, 8), []byte{0}, Config{BitsPerSample: 6, BlockSize: 8, RSI: 1, Flags: Restricted})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}
