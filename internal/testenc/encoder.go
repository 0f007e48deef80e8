// Package testenc is a small CCSDS 121.0-B-3 encoder used to build test
// streams for the decoder. It favours clarity over speed.
package testenc

// Option forces the coding option of non-zero blocks.
type Option int

// Coding options.
const (
	Auto Option = iota
	Uncompressed
	Split
	SecondExtension
)

// rosCode is the zero-block code meaning "to the end of the segment".
const rosCode = 4

// segmentBlocks bounds a zero-block run.
const segmentBlocks = 64

// Options describe the stream to produce.
type Options struct {
	BitsPerSample int
	BlockSize     int
	RSI           int

	Signed     bool
	Preprocess bool
	PadRSI     bool
	Restricted bool

	// Force selects the option for blocks that are not all zero. K is the
	// split parameter when Force is Split. Blocks that cannot be coded with
	// the forced option fall back to automatic selection.
	Force Option
	K     int
}

// IDLen returns the width of the code option identifier.
func IDLen(bitsPerSample int, restricted bool) uint {
	switch {
	case bitsPerSample > 16:
		return 5
	case bitsPerSample > 8:
		return 4
	case restricted && bitsPerSample <= 2:
		return 1
	case restricted && bitsPerSample <= 4:
		return 2
	default:
		return 3
	}
}

// Encode codes samples, given as bit patterns of BitsPerSample bits
// (signed samples may be sign-extended). len(samples) must be a multiple of
// BlockSize.
func Encode(samples []uint32, o Options) []byte {
	e := &encoder{
		o:     o,
		w:     &BitWriter{},
		m:     NewMapper(o.BitsPerSample, o.Signed),
		idLen: IDLen(o.BitsPerSample, o.Restricted),
	}
	interval := o.RSI * o.BlockSize
	for start := 0; start < len(samples); start += interval {
		end := min(start+interval, len(samples))
		e.interval(samples[start:end])
		if o.PadRSI && end-start == interval {
			e.w.Align()
		}
	}
	return e.w.Bytes()
}

type encoder struct {
	o     Options
	w     *BitWriter
	m     Mapper
	idLen uint
}

func (e *encoder) interval(x []uint32) {
	v := make([]uint32, len(x))
	for i := range x {
		switch {
		case !e.o.Preprocess:
			v[i] = e.m.Raw(x[i])
		case i == 0:
			v[i] = e.m.Raw(x[i])
		default:
			v[i] = e.m.Map(e.m.Value(x[i-1]), e.m.Value(x[i]))
		}
	}

	bs := e.o.BlockSize
	blocks := len(v) / bs
	for b := 0; b < blocks; {
		ref := 0
		if e.o.Preprocess && b == 0 {
			ref = 1
		}
		blk := v[b*bs : (b+1)*bs]
		if allZero(blk[ref:]) {
			b += e.zeroRun(v, b, blocks, ref)
			continue
		}
		e.block(blk, ref)
		b++
	}
}

// zeroRun codes the run of all-zero blocks starting at block b and returns
// its length in blocks.
func (e *encoder) zeroRun(v []uint32, b, blocks, ref int) int {
	bs := e.o.BlockSize
	segEnd := min((b/segmentBlocks+1)*segmentBlocks, blocks)
	n := 1
	for b+n < segEnd && allZero(v[(b+n)*bs:(b+n+1)*bs]) {
		n++
	}

	e.w.PutBits(0, e.idLen)
	e.w.PutBits(0, 1)
	if ref == 1 {
		e.w.PutBits(v[b*bs], uint(e.o.BitsPerSample))
	}

	rosEnd := min((b/segmentBlocks+1)*segmentBlocks, e.o.RSI)
	switch {
	case b+n == rosEnd && n > 4:
		e.w.PutFS(rosCode)
	case n <= 4:
		e.w.PutFS(uint32(n - 1))
	default:
		e.w.PutFS(uint32(n))
	}
	return n
}

func (e *encoder) block(blk []uint32, ref int) {
	bps := uint(e.o.BitsPerSample)
	data := blk[ref:]

	best, bestK, bestBits := Uncompressed, 0, uint64(len(blk))*uint64(bps)
	maxK := int(1)<<e.idLen - 3
	for k := 0; k <= maxK; k++ {
		bits := splitBits(data, k) + uint64(ref)*uint64(bps)
		if bits < bestBits || (e.o.Force == Split && k == e.o.K) {
			best, bestK, bestBits = Split, k, bits
			if e.o.Force == Split && k == e.o.K {
				break
			}
		}
	}
	if bits, ok := e.secondExtensionBits(blk, ref); ok {
		bits += 1 + uint64(ref)*uint64(bps)
		if (e.o.Force == Auto && bits < bestBits) || e.o.Force == SecondExtension {
			best = SecondExtension
		}
	}
	if e.o.Force == Uncompressed {
		best = Uncompressed
	}

	switch best {
	case Split:
		e.w.PutBits(uint32(bestK+1), e.idLen)
		if ref == 1 {
			e.w.PutBits(blk[0], bps)
		}
		for _, d := range data {
			e.w.PutFS(d >> bestK)
		}
		if bestK > 0 {
			for _, d := range data {
				e.w.PutBits(d, uint(bestK))
			}
		}
	case SecondExtension:
		e.w.PutBits(0, e.idLen)
		e.w.PutBits(1, 1)
		if ref == 1 {
			e.w.PutBits(blk[0], bps)
		}
		for i := 0; i < len(blk); i += 2 {
			d0, d1 := blk[i], blk[i+1]
			if i < ref {
				d0 = 0
			}
			s := d0 + d1
			e.w.PutFS(s*(s+1)/2 + d1)
		}
	default:
		e.w.PutBits(uint32(1)<<e.idLen-1, e.idLen)
		for _, d := range blk {
			e.w.PutBits(d, bps)
		}
	}
}

func splitBits(data []uint32, k int) uint64 {
	n := uint64(len(data)) * uint64(k)
	for _, d := range data {
		n += uint64(d>>k) + 1
	}
	return n
}

// secondExtensionBits returns the size of the pair codes of blk, or false
// if a pair sum is too large for the option.
func (e *encoder) secondExtensionBits(blk []uint32, ref int) (uint64, bool) {
	var n uint64
	for i := 0; i < len(blk); i += 2 {
		d0, d1 := uint64(blk[i]), uint64(blk[i+1])
		if i < ref {
			d0 = 0
		}
		s := d0 + d1
		if s > 12 {
			return 0, false
		}
		n += s*(s+1)/2 + d1 + 1
	}
	return n, true
}

func allZero(v []uint32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
