package aec

// Flags select the sample format and coding variant of a stream.
// The values match the flag bits of the reference CCSDS library.
type Flags uint32

// Stream flags.
const (
	DataSigned     Flags = 1 << 0 // samples are two's complement
	Data3Byte      Flags = 1 << 1 // 17-24 bit samples take 3 output bytes
	DataMSB        Flags = 1 << 2 // big-endian output
	DataPreprocess Flags = 1 << 3 // stream was preprocessed (delta mapped)
	Restricted     Flags = 1 << 4 // narrow identifiers for samples of up to 4 bits
	PadRSI         Flags = 1 << 5 // each reference sample interval starts on a byte
)

// MaxIntervalSamples bounds RSI*BlockSize, the number of samples a decoder
// buffers for one reference sample interval.
const MaxIntervalSamples = 1 << 26

// Zero-block coding (CCSDS 121.0-B-3, table 3-4).
const (
	rosCode       = 5  // zero-block count meaning "remainder of segment"
	segmentBlocks = 64 // zero-block runs never cross a 64-block boundary
)

// Config describes a stream. The same values must be used to encode and
// decode it.
type Config struct {
	BitsPerSample int   // sample width, 1-32
	BlockSize     int   // samples per block, usually 8, 16, 32 or 64
	RSI           int   // blocks per reference sample interval
	Flags         Flags // format and coding variant
}

// validate checks the parts of the configuration that do not depend on
// derived layout.
func (c Config) validate() error {
	if c.BitsPerSample <= 0 || c.BitsPerSample > 32 {
		return ErrConfiguration
	}
	if c.BlockSize <= 0 || c.BlockSize%2 != 0 {
		return ErrConfiguration
	}
	if c.RSI <= 0 {
		return ErrConfiguration
	}
	if c.Flags&Restricted != 0 && c.BitsPerSample > 4 && c.BitsPerSample <= 8 {
		return ErrConfiguration
	}
	return nil
}
