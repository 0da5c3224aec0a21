// Package bits implements MSB-first bit access over byte slices and writers.
package bits

import (
	"errors"
	"fmt"
)

// ErrOverread is returned when a read or skip goes past the end of the window.
var ErrOverread = errors.New("bits: read past end of buffer")

const maxReadBits = 32

// Reader reads bits MSB-first from a fixed byte window. The position only
// moves forward.
type Reader struct {
	buf []byte
	pos int // bit position
}

// NewReader creates a Reader over buf. The buffer is not copied and must not
// change while the Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadBits returns the next n bits (1 <= n <= 32) as an unsigned integer.
func (r *Reader) ReadBits(n int) (uint, error) {
	if n < 1 || n > maxReadBits {
		return 0, fmt.Errorf("bits: invalid read width %d", n)
	}
	if n > r.Left() {
		return 0, fmt.Errorf("%w: need %d bits, have %d", ErrOverread, n, r.Left())
	}

	var val uint
	for n > 0 {
		byteIdx := r.pos >> 3
		bitOff := r.pos & 7
		avail := 8 - bitOff
		take := min(avail, n)

		chunk := uint(r.buf[byteIdx]>>(avail-take)) & (1<<take - 1)
		val = val<<take | chunk

		r.pos += take
		n -= take
	}
	return val, nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

// Skip advances the position by n bits without returning them.
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("bits: invalid skip width %d", n)
	}
	if n > r.Left() {
		return fmt.Errorf("%w: skip %d bits, have %d", ErrOverread, n, r.Left())
	}
	r.pos += n
	return nil
}

// Left reports the number of unread bits.
func (r *Reader) Left() int {
	return len(r.buf)*8 - r.pos
}

// Pos reports the number of bits consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}
