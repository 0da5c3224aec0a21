package codec

import (
	"sync/atomic"

	"github.com/ugparu/vivid/utils/buffer"
)

// Payload is a pooled buffer shared by a packet and its clones. The buffer
// goes back to the pool when the last holder releases it.
type Payload struct {
	buf  buffer.PooledBuffer
	refs atomic.Int32
}

// NewPayload takes ownership of buf with a single reference.
func NewPayload(buf buffer.PooledBuffer) *Payload {
	p := &Payload{buf: buf}
	p.refs.Store(1)
	return p
}

// Bytes is nil for a nil payload.
func (p *Payload) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.buf.Data()
}

func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return p.buf.Len()
}

// Share adds a reference and returns p.
func (p *Payload) Share() *Payload {
	if p != nil {
		p.refs.Add(1)
	}
	return p
}

// Copy returns an independent payload with the same bytes.
func (p *Payload) Copy() *Payload {
	if p == nil {
		return nil
	}
	return NewPayload(buffer.From(p.buf.Data()))
}

// Release drops one reference.
func (p *Payload) Release() {
	if p == nil {
		return
	}
	switch n := p.refs.Add(-1); {
	case n == 0:
		p.buf.Release()
	case n < 0:
		panic("codec: payload released too many times")
	}
}
