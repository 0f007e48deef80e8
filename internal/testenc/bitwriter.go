package testenc

// BitWriter builds an MSB-first bitstream.
type BitWriter struct {
	buf []byte
	acc uint64
	n   uint // pending bits in acc, always < 8 between calls
}

// PutBits appends the low n bits of v. n must be 0-32.
func (w *BitWriter) PutBits(v uint32, n uint) {
	w.acc = w.acc<<n | uint64(v)&(1<<n-1)
	w.n += n
	for w.n >= 8 {
		w.n -= 8
		w.buf = append(w.buf, byte(w.acc>>w.n))
	}
}

// PutFS appends the fundamental sequence for v: v zero bits and a one.
func (w *BitWriter) PutFS(v uint32) {
	for v >= 32 {
		w.PutBits(0, 32)
		v -= 32
	}
	w.PutBits(1, uint(v)+1)
}

// Align pads with zero bits to the next byte boundary.
func (w *BitWriter) Align() {
	if w.n > 0 {
		w.PutBits(0, 8-w.n)
	}
}

// BitLen returns the number of bits written so far.
func (w *BitWriter) BitLen() int {
	return len(w.buf)*8 + int(w.n)
}

// Bytes pads the stream to a byte boundary and returns it.
func (w *BitWriter) Bytes() []byte {
	w.Align()
	return w.buf
}
