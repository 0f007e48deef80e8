// Package output packs decoded samples into the caller's byte buffer and
// undoes the preprocessing transform.
package output

import "encoding/binary"

// Layout selects the byte width and byte order of output samples.
type Layout uint8

// Output layouts.
const (
	Layout8     Layout = iota // 1 byte per sample
	LayoutMSB16               // 2 bytes, big-endian
	LayoutLSB16               // 2 bytes, little-endian
	LayoutMSB24               // 3 bytes, big-endian
	LayoutLSB24               // 3 bytes, little-endian
	LayoutMSB32               // 4 bytes, big-endian
	LayoutLSB32               // 4 bytes, little-endian
)

var layoutNames = [...]string{"8", "msb16", "lsb16", "msb24", "lsb24", "msb32", "lsb32"}

func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "unknown"
}

// SelectLayout returns the layout for samples of the given width.
//
// Samples of up to 8 bits take one byte and samples of 9-16 bits two.
// Wider samples take four bytes, or three when threeByte is set and they
// fit in 24 bits.
func SelectLayout(bitsPerSample int, msb, threeByte bool) Layout {
	switch {
	case bitsPerSample > 16:
		if bitsPerSample <= 24 && threeByte {
			if msb {
				return LayoutMSB24
			}
			return LayoutLSB24
		}
		if msb {
			return LayoutMSB32
		}
		return LayoutLSB32
	case bitsPerSample > 8:
		if msb {
			return LayoutMSB16
		}
		return LayoutLSB16
	default:
		return Layout8
	}
}

// BytesPerSample returns the packed size of one sample.
func (l Layout) BytesPerSample() int {
	switch l {
	case LayoutMSB16, LayoutLSB16:
		return 2
	case LayoutMSB24, LayoutLSB24:
		return 3
	case LayoutMSB32, LayoutLSB32:
		return 4
	default:
		return 1
	}
}

// Pack writes samples to dst and returns the number of bytes written.
// Each sample is truncated to the layout's width. dst must hold
// len(samples)*BytesPerSample bytes.
func (l Layout) Pack(dst []byte, samples []uint32) int {
	switch l {
	case Layout8:
		dst = dst[:len(samples)]
		for i, v := range samples {
			dst[i] = byte(v)
		}
	case LayoutMSB16:
		for i, v := range samples {
			binary.BigEndian.PutUint16(dst[2*i:], uint16(v))
		}
	case LayoutLSB16:
		for i, v := range samples {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(v))
		}
	case LayoutMSB24:
		for i, v := range samples {
			b := dst[3*i : 3*i+3]
			b[0] = byte(v >> 16)
			b[1] = byte(v >> 8)
			b[2] = byte(v)
		}
	case LayoutLSB24:
		for i, v := range samples {
			b := dst[3*i : 3*i+3]
			b[0] = byte(v)
			b[1] = byte(v >> 8)
			b[2] = byte(v >> 16)
		}
	case LayoutMSB32:
		for i, v := range samples {
			binary.BigEndian.PutUint32(dst[4*i:], v)
		}
	case LayoutLSB32:
		for i, v := range samples {
			binary.LittleEndian.PutUint32(dst[4*i:], v)
		}
	}
	return len(samples) * l.BytesPerSample()
}
