package testenc

// Mapper is the forward preprocessing stage: it maps each sample to a
// non-negative residual relative to the previous sample.
type Mapper struct {
	bits   int
	signed bool
	xmin   int64
	xmax   int64
}

// NewMapper returns a Mapper for samples of bitsPerSample bits.
func NewMapper(bitsPerSample int, signed bool) Mapper {
	m := Mapper{bits: bitsPerSample, signed: signed}
	if signed {
		m.xmin = -(int64(1) << (bitsPerSample - 1))
		m.xmax = int64(1)<<(bitsPerSample-1) - 1
	} else {
		m.xmax = int64(1)<<bitsPerSample - 1
	}
	return m
}

// Bounds returns the legal sample range.
func (m Mapper) Bounds() (xmin, xmax int64) {
	return m.xmin, m.xmax
}

// Value interprets a sample bit pattern as a number. Signed samples are
// sign-extended from the sample width.
func (m Mapper) Value(x uint32) int64 {
	if m.signed {
		shift := 64 - uint(m.bits)
		return int64(uint64(x)<<shift) >> shift
	}
	return int64(uint64(x) & (uint64(1)<<m.bits - 1))
}

// Raw returns the low sample-width bits of x.
func (m Mapper) Raw(x uint32) uint32 {
	return uint32(uint64(x) & (uint64(1)<<m.bits - 1))
}

// Map returns the residual of x predicted by prev.
func (m Mapper) Map(prev, x int64) uint32 {
	delta := x - prev
	theta := min(prev-m.xmin, m.xmax-prev)
	switch {
	case delta >= 0 && delta <= theta:
		return uint32(2 * delta)
	case delta < 0 && -delta <= theta:
		return uint32(-2*delta - 1)
	case delta < 0:
		return uint32(theta - delta)
	default:
		return uint32(theta + delta)
	}
}
