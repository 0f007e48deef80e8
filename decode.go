package aec

// Decode decodes as much of src into dst as it can.
//
// It returns the number of bytes written to dst and consumed from src.
// Decode consumes input bits as they are needed and keeps any partial byte
// internally, so the caller should pass the unconsumed rest of src, followed
// by more input, to the next call. A call that stops for lack of input or
// output space returns a nil error; the next call continues from the exact
// sample where this one stopped.
//
// Errors:
//   - ErrData (wrapped with detail): the stream is corrupt. The decoder
//     stays in error until Reset; output written before the error is valid.
//   - ErrOutputTooSmall: dst had room left but not for one whole sample.
//     Everything decoded so far has been written; retry with a larger dst.
//   - ErrStream: the decoder was closed.
//
// Ported from: aec_decode() in ~/dev/libaec/src/decode.c
func (d *Decoder) Decode(dst, src []byte) (nDst, nSrc int, err error) {
	if d.closed {
		return 0, 0, ErrStream
	}
	if d.err != nil {
		return 0, 0, d.err
	}

	d.br.SetInput(src)
	d.dst = dst
	d.dstPos = 0
	d.availOut = len(dst)

	st := d.run()

	nSrc = d.br.Consumed()
	d.br.SetInput(nil)
	d.totalIn += uint64(nSrc)

	if st == statusError {
		nDst = d.dstPos
		d.dst = nil
		d.totalOut += uint64(nDst)
		return nDst, nSrc, d.err
	}

	d.flush()
	nDst = d.dstPos
	d.dst = nil
	d.totalOut += uint64(nDst)

	if st == statusExit && d.availOut > 0 && d.availOut < d.bytesPerSample {
		return nDst, nSrc, ErrOutputTooSmall
	}
	return nDst, nSrc, nil
}

// flush writes the samples decoded since the last flush to dst. Their
// output space was claimed when they were decoded.
//
// Ported from: FLUSH() in ~/dev/libaec/src/decode.c
func (d *Decoder) flush() {
	start, end := d.flushStart, d.rsiPos
	if start == end {
		return
	}
	pending := d.rsi[start:end]

	if d.pp {
		i := 0
		if start == 0 {
			// The interval's first sample is its reference sample.
			pending[0] = d.post.Reference(pending[0])
			i = 1
		}
		for ; i < len(pending); i++ {
			pending[i] = d.post.Next(pending[i])
		}
	}

	d.dstPos += d.layout.Pack(d.dst[d.dstPos:], pending)
	d.flushStart = end
}
