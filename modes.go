package aec

import (
	"fmt"

	"github.com/llehouerou/go-aec/internal/tables"
)

// mode is a state of the block decoder.
type mode uint8

const (
	modeSelectOption mode = iota
	modeStartBlock
	modeLowEntropy
	modeLowEntropyRef
	modeZeroBlock
	modeZeroOutput
	modeSecondExtension
	modeSecondExtensionDecode
	modeSplit
	modeSplitFS
	modeSplitOutput
	modeUncompressed
	modeUncompressedCopy
)

// step is the current mode together with its progress through the block.
// count is the number of samples of the block already decoded
// (split, second extension) or still to produce (zero run, uncompressed).
type step struct {
	mode  mode
	count int
}

// status is the outcome of running one mode.
type status uint8

const (
	statusContinue status = iota // mode finished, run the next one
	statusExit                   // out of input or output
	statusError                  // corrupt stream, d.err is set
)

// run advances the state machine until it needs more input or output, or
// finds corrupt data.
func (d *Decoder) run() status {
	for {
		var st status
		switch d.step.mode {
		case modeSelectOption:
			st = d.selectOption()
		case modeStartBlock:
			st = d.startBlock()
		case modeLowEntropy:
			st = d.lowEntropy()
		case modeLowEntropyRef:
			st = d.lowEntropyRef()
		case modeZeroBlock:
			st = d.zeroBlock()
		case modeZeroOutput:
			st = d.zeroOutput()
		case modeSecondExtension:
			st = d.secondExtension()
		case modeSecondExtensionDecode:
			st = d.secondExtensionDecode()
		case modeSplit:
			st = d.split()
		case modeSplitFS:
			st = d.splitFS()
		case modeSplitOutput:
			st = d.splitOutput()
		case modeUncompressed:
			st = d.uncompressed()
		case modeUncompressedCopy:
			st = d.uncompressedCopy()
		}
		if st != statusContinue {
			return st
		}
	}
}

// optionMode maps a code option identifier to the mode that decodes it.
func (d *Decoder) optionMode(id uint32) mode {
	switch {
	case id == 0:
		return modeLowEntropy
	case id == 1<<d.idLen-1:
		return modeUncompressed
	default:
		return modeSplit
	}
}

// bufferSpace reports whether a whole block can be decoded on the direct
// path: enough input for the longest possible block and enough output for
// all its samples.
//
// Ported from: buffer_space() in ~/dev/libaec/src/decode.c
func (d *Decoder) bufferSpace() bool {
	return d.br.Avail() >= d.inBlockLen && d.availOut >= d.outBlockLen
}

// Ported from: put_sample() in ~/dev/libaec/src/decode.c
func (d *Decoder) putSample(v uint32) {
	d.rsi[d.rsiPos] = v
	d.rsiPos++
	d.availOut -= d.bytesPerSample
}

// copySample moves one raw sample from the input to the buffer.
//
// Ported from: copysample() in ~/dev/libaec/src/decode.c
func (d *Decoder) copySample() bool {
	n := uint(d.cfg.BitsPerSample)
	if !d.br.Ask(n) || d.availOut < d.bytesPerSample {
		return false
	}
	d.putSample(d.br.Peek(n))
	d.br.Drop(n)
	return true
}

// Ported from: m_id() in ~/dev/libaec/src/decode.c
func (d *Decoder) selectOption() status {
	if d.br.Avail() >= d.inBlockLen {
		d.id = d.br.Get(d.idLen)
	} else {
		if !d.br.Ask(d.idLen) {
			return statusExit
		}
		d.id = d.br.Peek(d.idLen)
		d.br.Drop(d.idLen)
	}
	d.step = step{mode: d.optionMode(d.id)}
	return statusContinue
}

// startBlock prepares the next block. At the end of a reference sample
// interval it writes the interval out, and the next block carries a
// reference sample if the stream is preprocessed.
//
// Ported from: m_next_cds() in ~/dev/libaec/src/decode.c
func (d *Decoder) startBlock() status {
	if d.rsiPos == len(d.rsi) {
		d.flush()
		d.flushStart = 0
		d.rsiPos = 0
		if d.pp {
			d.ref = 1
			d.encodedBlockSize = d.cfg.BlockSize - 1
		}
		if d.cfg.Flags&PadRSI != 0 {
			d.br.AlignByte()
		}
	} else {
		d.ref = 0
		d.encodedBlockSize = d.cfg.BlockSize
	}
	d.step = step{mode: modeSelectOption}
	return statusContinue
}

// lowEntropy reads the bit choosing between zero-block and second
// extension coding. It precedes the reference sample.
//
// Ported from: m_low_entropy() in ~/dev/libaec/src/decode.c
func (d *Decoder) lowEntropy() status {
	if !d.br.Ask(1) {
		return statusExit
	}
	d.id = d.br.Peek(1)
	d.br.Drop(1)
	d.step = step{mode: modeLowEntropyRef}
	return statusContinue
}

// Ported from: m_low_entropy_ref() in ~/dev/libaec/src/decode.c
func (d *Decoder) lowEntropyRef() status {
	if d.ref == 1 && !d.copySample() {
		return statusExit
	}
	if d.id == 1 {
		d.step = step{mode: modeSecondExtension}
	} else {
		d.step = step{mode: modeZeroBlock}
	}
	return statusContinue
}

// Ported from: m_zero_block() in ~/dev/libaec/src/decode.c
func (d *Decoder) zeroBlock() status {
	if !d.br.AskFS() {
		return statusExit
	}
	zeroBlocks := uint64(d.br.FS()) + 1
	d.br.DropFS()

	bs := d.cfg.BlockSize
	if zeroBlocks == rosCode {
		b := d.rsiPos / bs
		zeroBlocks = uint64(min(d.cfg.RSI-b, segmentBlocks-b%segmentBlocks))
	} else if zeroBlocks > rosCode {
		zeroBlocks--
	}

	free := len(d.rsi) - d.rsiPos
	if zeroBlocks > uint64(d.cfg.RSI) || int(zeroBlocks)*bs-d.ref > free {
		d.err = fmt.Errorf("%w: zero-block run of %d blocks exceeds the %d samples left in the interval",
			ErrData, zeroBlocks, free)
		return statusError
	}

	n := int(zeroBlocks)*bs - d.ref
	if d.availOut >= n*d.bytesPerSample {
		clear(d.rsi[d.rsiPos : d.rsiPos+n])
		d.rsiPos += n
		d.availOut -= n * d.bytesPerSample
		d.step = step{mode: modeStartBlock}
	} else {
		d.step = step{mode: modeZeroOutput, count: n}
	}
	return statusContinue
}

// Ported from: m_zero_output() in ~/dev/libaec/src/decode.c
func (d *Decoder) zeroOutput() status {
	for d.step.count > 0 {
		if d.availOut < d.bytesPerSample {
			return statusExit
		}
		d.putSample(0)
		d.step.count--
	}
	d.step = step{mode: modeStartBlock}
	return statusContinue
}

// secondExtensionError reports a joint code value outside the table.
func (d *Decoder) secondExtensionError(m uint32) status {
	d.err = fmt.Errorf("%w: second extension code %d exceeds %d", ErrData, m, tables.SecondExtensionMax)
	return statusError
}

// Ported from: m_se() in ~/dev/libaec/src/decode.c
func (d *Decoder) secondExtension() status {
	if d.bufferSpace() {
		mark := d.br.Mark()
		rsiPos, availOut := d.rsiPos, d.availOut
		if st, ok := d.secondExtensionDirect(); ok {
			return st
		}
		d.br.Rewind(mark)
		d.rsiPos, d.availOut = rsiPos, availOut
	}
	d.step = step{mode: modeSecondExtensionDecode, count: d.ref}
	return statusContinue
}

// secondExtensionDirect decodes a whole second-extension block on the
// direct path. It returns false if the block ran past the input.
func (d *Decoder) secondExtensionDirect() (status, bool) {
	for i := d.ref; i < d.cfg.BlockSize; {
		m := d.br.GetFS()
		if d.br.Overrun() {
			return statusExit, false
		}
		if m > tables.SecondExtensionMax {
			return d.secondExtensionError(m), true
		}
		d0, d1 := tables.SecondExtension[m].Split(m)
		// A pair's first sample falls on an even index; a reference sample
		// takes the place of the first sample of the first pair.
		if i&1 == 0 {
			d.putSample(d0)
			i++
		}
		d.putSample(d1)
		i++
	}
	d.step = step{mode: modeStartBlock}
	return statusContinue, true
}

// Ported from: m_se_decode() in ~/dev/libaec/src/decode.c
func (d *Decoder) secondExtensionDecode() status {
	for d.step.count < d.cfg.BlockSize {
		if !d.br.AskFS() {
			return statusExit
		}
		m := d.br.FS()
		if m > tables.SecondExtensionMax {
			return d.secondExtensionError(m)
		}
		d0, d1 := tables.SecondExtension[m].Split(m)
		if d.step.count&1 == 0 {
			if d.availOut < d.bytesPerSample {
				return statusExit
			}
			d.putSample(d0)
			d.step.count++
		}
		if d.availOut < d.bytesPerSample {
			return statusExit
		}
		d.putSample(d1)
		d.step.count++
		d.br.DropFS()
	}
	d.step = step{mode: modeStartBlock}
	return statusContinue
}

// Ported from: m_split() in ~/dev/libaec/src/decode.c
func (d *Decoder) split() status {
	if d.bufferSpace() {
		mark := d.br.Mark()
		rsiPos := d.rsiPos
		if d.splitDirect() {
			return statusContinue
		}
		d.br.Rewind(mark)
		d.rsiPos = rsiPos
	}
	if d.ref == 1 && !d.copySample() {
		return statusExit
	}
	d.step = step{mode: modeSplitFS}
	return statusContinue
}

// splitDirect decodes a whole split block on the direct path: first the
// fundamental sequence of every sample, then every k-bit low part.
// It returns false if the block ran past the input.
func (d *Decoder) splitDirect() bool {
	k := uint(d.id - 1)
	pos := d.rsiPos
	if d.ref == 1 {
		d.rsi[pos] = d.br.Get(uint(d.cfg.BitsPerSample))
		pos++
	}
	blk := d.rsi[pos : pos+d.encodedBlockSize]
	for i := range blk {
		blk[i] = d.br.GetFS() << k
		if d.br.Overrun() {
			return false
		}
	}
	if k > 0 {
		for i := range blk {
			blk[i] += d.br.Get(k)
		}
		if d.br.Overrun() {
			return false
		}
	}
	d.rsiPos = pos + len(blk)
	d.availOut -= d.outBlockLen
	d.step = step{mode: modeStartBlock}
	return true
}

// Ported from: m_split_fs() in ~/dev/libaec/src/decode.c
func (d *Decoder) splitFS() status {
	k := uint(d.id - 1)
	for d.step.count < d.encodedBlockSize {
		if !d.br.AskFS() {
			return statusExit
		}
		d.rsi[d.rsiPos+d.step.count] = d.br.FS() << k
		d.br.DropFS()
		d.step.count++
	}
	d.step = step{mode: modeSplitOutput}
	return statusContinue
}

// Ported from: m_split_output() in ~/dev/libaec/src/decode.c
func (d *Decoder) splitOutput() status {
	k := uint(d.id - 1)
	for d.step.count < d.encodedBlockSize {
		if !d.br.Ask(k) || d.availOut < d.bytesPerSample {
			return statusExit
		}
		d.rsi[d.rsiPos] += d.br.Peek(k)
		d.br.Drop(k)
		d.rsiPos++
		d.availOut -= d.bytesPerSample
		d.step.count++
	}
	d.step = step{mode: modeStartBlock}
	return statusContinue
}

// Ported from: m_uncomp() in ~/dev/libaec/src/decode.c
func (d *Decoder) uncompressed() status {
	if d.bufferSpace() {
		n := uint(d.cfg.BitsPerSample)
		blk := d.rsi[d.rsiPos : d.rsiPos+d.cfg.BlockSize]
		for i := range blk {
			blk[i] = d.br.Get(n)
		}
		d.rsiPos += len(blk)
		d.availOut -= d.outBlockLen
		d.step = step{mode: modeStartBlock}
		return statusContinue
	}
	d.step = step{mode: modeUncompressedCopy, count: d.cfg.BlockSize}
	return statusContinue
}

// Ported from: m_uncomp_copy() in ~/dev/libaec/src/decode.c
func (d *Decoder) uncompressedCopy() status {
	for d.step.count > 0 {
		if !d.copySample() {
			return statusExit
		}
		d.step.count--
	}
	d.step = step{mode: modeStartBlock}
	return statusContinue
}
