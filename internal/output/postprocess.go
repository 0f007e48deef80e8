package output

// Postprocessor inverts the CCSDS 121.0-B-3 preprocessing stage: it turns
// mapped prediction residuals back into samples, predicting each sample
// from the one before it.
//
// Values are carried as uint32 bit patterns. For signed data a negative
// sample is its two's complement pattern, so wrapping uint32 arithmetic
// gives the signed results.
type Postprocessor struct {
	signed bool
	bits   uint
	xmin   uint32 // smallest legal sample (two's complement when signed)
	xmax   uint32 // largest legal sample
	last   uint32 // previous reconstructed sample
}

// NewPostprocessor returns a Postprocessor for samples of bitsPerSample
// bits (1-32).
func NewPostprocessor(bitsPerSample int, signed bool) *Postprocessor {
	p := &Postprocessor{signed: signed, bits: uint(bitsPerSample)}
	if signed {
		p.xmax = uint32(uint64(1)<<(bitsPerSample-1) - 1)
		p.xmin = ^p.xmax
	} else {
		p.xmax = uint32(uint64(1)<<bitsPerSample - 1)
	}
	return p
}

// Reference starts a new reference sample interval from the raw
// reference sample, sign-extending it for signed data.
func (p *Postprocessor) Reference(raw uint32) uint32 {
	if p.signed {
		m := uint32(1) << (p.bits - 1)
		raw = (raw ^ m) - m
	}
	p.last = raw
	return raw
}

// Next reconstructs the sample following Last from the mapped residual d.
//
// With theta the distance from the prediction to the nearer range limit,
// residuals up to 2*theta alternate around the prediction (even values
// above, odd values below) and larger residuals step outward from the
// nearer limit.
//
// Ported from: FLUSH() in ~/dev/libaec/src/decode.c
func (p *Postprocessor) Next(d uint32) uint32 {
	data := p.last
	half := d>>1 + d&1
	// d odd: step down by half; d even: step up by d/2.
	step := (d >> 1) ^ ^(d&1 - 1)

	if p.xmin == 0 {
		var mask uint32
		if data&(p.xmax>>1+1) != 0 {
			// Upper half: xmax-data == xmax^data.
			mask = p.xmax
		}
		if half <= mask^data {
			data += step
		} else {
			data = mask ^ d
		}
	} else {
		if int32(data) < 0 {
			if half <= p.xmax+data+1 {
				data += step
			} else {
				data = d - p.xmax - 1
			}
		} else {
			if half <= p.xmax-data {
				data += step
			} else {
				data = p.xmax - d
			}
		}
	}

	p.last = data
	return data
}
