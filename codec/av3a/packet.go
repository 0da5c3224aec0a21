package av3a

import (
	"fmt"
	"time"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/codec"
	"github.com/ugparu/vivid/utils/buffer"
)

// Packet stores one complete frame, header included.
type Packet struct {
	codec.Meta
	payload *codec.Payload
	par     *CodecParameters
	Pos     int64 // byte offset of the frame in its source, -1 when unknown
}

// NewPacket wraps buf, which the packet takes ownership of.
func NewPacket(buf buffer.PooledBuffer, ts time.Duration, url string,
	absTime time.Time, par *CodecParameters, dur time.Duration) *Packet {
	return &Packet{
		Meta: codec.Meta{
			Index:  par.StreamIndex(),
			PTS:    ts,
			Dur:    dur,
			Source: url,
			Wall:   absTime,
		},
		payload: codec.NewPayload(buf),
		par:     par,
		Pos:     -1,
	}
}

// Clone copies the packet. Without copyData the clone shares the frame bytes
// and keeps them alive until it is closed too.
func (p *Packet) Clone(copyData bool) vivid.Packet {
	c := &Packet{Meta: p.Meta, par: p.par, Pos: p.Pos}
	if copyData {
		c.payload = p.payload.Copy()
	} else {
		c.payload = p.payload.Share()
	}
	return c
}

func (p *Packet) Data() []byte { return p.payload.Bytes() }

func (p *Packet) Len() int { return p.payload.Len() }

// Close releases this packet's hold on the frame bytes.
func (p *Packet) Close() { p.payload.Release() }

func (p *Packet) CodecParameters() vivid.AudioCodecParameters { return p.par }

// Header decodes the header at the start of the frame.
func (p *Packet) Header() (Header, error) {
	return DecodeHeader(p.Data())
}

func (p *Packet) String() string {
	return fmt.Sprintf("AV3A_PACKET sz=%d ts=%v pos=%d", p.Len(), p.PTS, p.Pos)
}
