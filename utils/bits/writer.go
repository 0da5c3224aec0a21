package bits

import (
	"fmt"
	"io"
)

// Writer accumulates bits MSB-first and emits whole bytes to W.
type Writer struct {
	W     io.Writer
	cur   byte
	nbits int
}

// WriteBits writes the low n bits (0 <= n <= 32) of val.
func (w *Writer) WriteBits(val uint, n int) error {
	if n < 0 || n > maxReadBits {
		return fmt.Errorf("bits: invalid write width %d", n)
	}
	for i := n - 1; i >= 0; i-- {
		w.cur = w.cur<<1 | byte(val>>uint(i)&1)
		w.nbits++
		if w.nbits == 8 { //nolint:mnd
			if _, err := w.W.Write([]byte{w.cur}); err != nil {
				return err
			}
			w.cur = 0
			w.nbits = 0
		}
	}
	return nil
}

// FlushBits pads the pending partial byte with zero bits and writes it.
func (w *Writer) FlushBits() error {
	if w.nbits == 0 {
		return nil
	}
	b := w.cur << (8 - w.nbits)
	w.cur = 0
	w.nbits = 0
	_, err := w.W.Write([]byte{b})
	return err
}
