// Package buffer pools the byte slices that back packet payloads.
package buffer

import "sync"

// PooledBuffer is a byte slice borrowed from a pool. It must not be used
// after Release.
type PooledBuffer interface {
	Data() []byte
	Len() int
	Release()
}

// Size classes. Stereo and 5.1 frames fit the first; object-heavy frames the
// second. Larger buffers are left to the GC.
var classes = [...]int{4 << 10, 64 << 10}

var pools [len(classes)]sync.Pool

func init() {
	for i, size := range classes {
		pools[i].New = func() any { return &slab{class: i, b: make([]byte, 0, size)} }
	}
}

// classFor returns the smallest class that holds size bytes, or -1.
func classFor(size int) int {
	for i, c := range classes {
		if size <= c {
			return i
		}
	}
	return -1
}

// Get returns a buffer of length size. Its contents are unspecified.
func Get(size int) PooledBuffer {
	class := classFor(size)
	if class < 0 {
		return &slab{class: -1, b: make([]byte, size)}
	}
	s := pools[class].Get().(*slab) //nolint:forcetypeassert // pool only holds *slab
	s.b = s.b[:size]
	return s
}

// From returns a buffer holding a copy of data.
func From(data []byte) PooledBuffer {
	b := Get(len(data))
	copy(b.Data(), data)
	return b
}

type slab struct {
	class int
	b     []byte
}

func (s *slab) Data() []byte { return s.b }

func (s *slab) Len() int { return len(s.b) }

func (s *slab) Release() {
	if s.class < 0 {
		return
	}
	s.b = s.b[:0]
	pools[s.class].Put(s)
}
