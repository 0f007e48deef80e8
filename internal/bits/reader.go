// Package bits implements the MSB-first bit cursor used by the AEC decoder.
package bits

import (
	"math"
	mathbits "math/bits"
)

// Reader consumes bits from successive input chunks.
//
// The low bitp bits of acc are the valid, not yet consumed input bits, most
// significant first. Bytes move from the current input chunk into acc and
// count as consumed once they do, so a Reader carries partial bytes across
// chunks and a decode can stop and resume at any bit.
//
// Two families of operations share the cursor:
//   - Bounded (Ask, Peek, Drop, AskFS, FS, DropFS): never read past the
//     current chunk. Ask reports false when the chunk runs out, leaving the
//     cursor where a later call with more input can continue.
//   - Direct (Get, GetFS): refill up to 7 bytes at once without per-call
//     exhaustion checks. The caller must already know that the chunk holds
//     enough bytes for everything it is about to read.
type Reader struct {
	src []byte // current input chunk
	pos int    // next byte of src to load

	acc  uint64 // bit accumulator
	bitp uint   // valid bits in acc (0-64)
	fs   uint32 // zero bits counted by AskFS so far

	overrun bool // a direct refill ran past src
}

// Mark is a saved cursor position for Rewind.
type Mark struct {
	acc  uint64
	bitp uint
	pos  int
}

// SetInput makes src the current input chunk. Bits already in the
// accumulator are kept.
func (r *Reader) SetInput(src []byte) {
	r.src = src
	r.pos = 0
}

// Reset drops all buffered bits and the current chunk.
func (r *Reader) Reset() {
	*r = Reader{}
}

// Consumed returns the number of bytes taken from the current chunk.
func (r *Reader) Consumed() int {
	return r.pos
}

// Avail returns the number of bytes left in the current chunk.
func (r *Reader) Avail() int {
	return len(r.src) - r.pos
}

// Ask makes at least n bits available, loading one byte at a time.
// It returns false if the chunk runs out first. n must be 0-32.
//
// Ported from: bits_ask() in ~/dev/libaec/src/decode.c
func (r *Reader) Ask(n uint) bool {
	for r.bitp < n {
		if r.pos == len(r.src) {
			return false
		}
		r.acc = r.acc<<8 | uint64(r.src[r.pos])
		r.pos++
		r.bitp += 8
	}
	return true
}

// Peek returns the next n bits without consuming them.
// The bits must have been made available by Ask.
//
// Ported from: bits_get() in ~/dev/libaec/src/decode.c
func (r *Reader) Peek(n uint) uint32 {
	return uint32((r.acc >> (r.bitp - n)) & (math.MaxUint64 >> (64 - n)))
}

// Drop consumes n bits.
//
// Ported from: bits_drop() in ~/dev/libaec/src/decode.c
func (r *Reader) Drop(n uint) {
	r.bitp -= n
}

// AskFS scans for the 1 bit terminating a fundamental sequence, counting
// the 0 bits before it. It returns false if the chunk runs out first; the
// count so far is kept and the next call continues the scan.
//
// Ported from: fs_ask() in ~/dev/libaec/src/decode.c
func (r *Reader) AskFS() bool {
	if !r.Ask(1) {
		return false
	}
	for r.acc&(1<<(r.bitp-1)) == 0 {
		if r.bitp == 1 {
			if r.pos == len(r.src) {
				return false
			}
			r.acc = r.acc<<8 | uint64(r.src[r.pos])
			r.pos++
			r.bitp += 8
		}
		r.fs++
		r.bitp--
	}
	return true
}

// FS returns the value of the fundamental sequence found by AskFS.
func (r *Reader) FS() uint32 {
	return r.fs
}

// DropFS consumes the terminating 1 bit and clears the zero count.
//
// Ported from: fs_drop() in ~/dev/libaec/src/decode.c
func (r *Reader) DropFS() {
	r.fs = 0
	r.bitp--
}

// fill tops the accumulator up to at least 56 valid bits.
// Past the end of the chunk it shifts in zeros and records the overrun.
//
// Ported from: direct_get() in ~/dev/libaec/src/decode.c
func (r *Reader) fill() {
	for b := (63 - r.bitp) >> 3; b > 0; b-- {
		var c byte
		if r.pos < len(r.src) {
			c = r.src[r.pos]
			r.pos++
		} else {
			r.overrun = true
		}
		r.acc = r.acc<<8 | uint64(c)
		r.bitp += 8
	}
}

// Get reads and consumes n bits on the direct path. n must be 1-32.
//
// Ported from: direct_get() in ~/dev/libaec/src/decode.c
func (r *Reader) Get(n uint) uint32 {
	if r.bitp < n {
		r.fill()
	}
	r.bitp -= n
	return uint32((r.acc >> r.bitp) & (math.MaxUint64 >> (64 - n)))
}

// GetFS reads and consumes a whole fundamental sequence on the direct path.
//
// Ported from: direct_get_fs() in ~/dev/libaec/src/decode.c
func (r *Reader) GetFS() uint32 {
	var fs uint32
	if r.bitp > 0 {
		r.acc &= math.MaxUint64 >> (64 - r.bitp)
	} else {
		r.acc = 0
	}
	for r.acc == 0 {
		if r.overrun {
			return fs
		}
		fs += uint32(r.bitp)
		r.bitp = 0
		r.fill()
	}
	i := uint(63 - mathbits.LeadingZeros64(r.acc))
	fs += uint32(r.bitp - i - 1)
	r.bitp = i
	return fs
}

// AlignByte discards the unread bits of a partially consumed byte.
func (r *Reader) AlignByte() {
	r.bitp -= r.bitp % 8
}

// Mark saves the cursor and clears the overrun flag.
func (r *Reader) Mark() Mark {
	r.overrun = false
	return Mark{acc: r.acc, bitp: r.bitp, pos: r.pos}
}

// Rewind restores a cursor saved by Mark.
func (r *Reader) Rewind(m Mark) {
	r.acc = m.acc
	r.bitp = m.bitp
	r.pos = m.pos
	r.overrun = false
}

// Overrun reports whether a direct read since the last Mark needed bytes
// beyond the current chunk. Values read after an overrun are meaningless.
func (r *Reader) Overrun() bool {
	return r.overrun
}
