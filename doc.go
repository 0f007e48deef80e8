// Package aec provides a pure Go decoder for the CCSDS 121.0-B-3 Adaptive
// Entropy Coder (AEC), the lossless compression used for instrument and
// satellite data in formats such as HDF, GRIB2 and NetCDF.
//
// # Basic Usage
//
// To decode a buffer in one call:
//
//	cfg := aec.Config{
//	    BitsPerSample: 16,
//	    BlockSize:     32,
//	    RSI:           128,
//	    Flags:         aec.DataPreprocess | aec.DataMSB,
//	}
//	out := make([]byte, samples*2)
//	n, err := aec.DecodeBuffer(out, coded, cfg)
//
// To decode a stream in chunks:
//
//	dec, err := aec.NewDecoder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dec.Close()
//
//	for {
//	    nDst, nSrc, err := dec.Decode(out, in)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    consume(out[:nDst])
//	    in = in[nSrc:] // then append more input
//	}
//
// Decode can be fed input and output chunks of any size, down to one byte
// of input and one sample of output. NewReader wraps an io.Reader instead.
//
// # Stream Format
//
// A stream is a sequence of blocks of Config.BlockSize samples grouped into
// reference sample intervals of Config.RSI blocks. Each block starts with a
// code option identifier selecting one of:
//   - zero-block: a run of all-zero blocks
//   - second extension: sample pairs coded jointly
//   - split (Rice) coding with parameter k
//   - uncompressed samples
//
// With DataPreprocess the first sample of each interval is stored raw and
// the others as mapped differences from the previous sample.
//
// # Output
//
// Samples of up to 8 bits take one byte, up to 16 bits two bytes, and wider
// samples four bytes (three with Data3Byte for up to 24 bits), little-endian
// unless DataMSB is set.
//
// # Thread Safety
//
// Decoder instances are NOT safe for concurrent use. Each stream needs its
// own Decoder.
//
// # Reference
//
// CCSDS 121.0-B-3, Lossless Data Compression, Blue Book, August 2020.
package aec
