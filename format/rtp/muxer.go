package rtp

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/utils"
	"github.com/ugparu/vivid/utils/logger"
)

// Config configures a Muxer. Zero fields take defaults: DefaultPayloadType,
// DefaultMTU and a random SSRC.
type Config struct {
	PayloadType uint8
	SSRC        uint32
	MTU         int
	Framing     Framing
	Channel     uint8 // interleaved channel
}

// Muxer writes AV3A packets to w as RTP.
type Muxer struct {
	w   io.Writer
	cfg Config
	enc *Encoder
	par vivid.AudioCodecParameters

	buf     []byte
	nextTS  time.Duration // expected timestamp of the next packet
	started bool
	packets uint64
}

// NewMuxer creates a Muxer writing to w.
func NewMuxer(w io.Writer, cfg Config) *Muxer {
	if cfg.PayloadType == 0 {
		cfg.PayloadType = DefaultPayloadType
	}
	if cfg.MTU == 0 {
		cfg.MTU = DefaultMTU
	}
	if cfg.SSRC == 0 {
		cfg.SSRC = rand.Uint32() //nolint:gosec // non-crypto random is sufficient here
	}
	return &Muxer{w: w, cfg: cfg}
}

func (m *Muxer) String() string {
	return fmt.Sprintf("AV3A_RTP_MUXER pt=%d ssrc=%08x %s", m.cfg.PayloadType, m.cfg.SSRC, m.cfg.Framing)
}

// Mux accepts a single AV3A audio stream. The RTP clock rate is its sampling
// rate.
func (m *Muxer) Mux(streams vivid.CodecParametersPair) (err error) {
	if streams.AudioCodecParameters == nil {
		return utils.NoCodecDataError{}
	}
	if streams.Type() != vivid.AV3A {
		return fmt.Errorf("rtp: codec type=%v is not supported", streams.Type())
	}
	clockRate := uint32(streams.SampleRate()) //nolint:gosec // table value
	if m.enc, err = NewEncoder(m.cfg.PayloadType, m.cfg.SSRC, clockRate, m.cfg.MTU); err != nil {
		return
	}
	m.par = streams.AudioCodecParameters
	m.started = false
	logger.Debugf(m, "muxing %d Hz, mtu %d", clockRate, m.cfg.MTU)
	return nil
}

// WritePacket sends one frame. A timestamp jump of more than half a frame
// advances the RTP clock by the skipped samples.
func (m *Muxer) WritePacket(pkt vivid.Packet) error {
	if pkt == nil {
		return utils.NilPacketError{}
	}
	if m.enc == nil {
		return utils.NoCodecDataError{}
	}

	if m.started {
		if gap := pkt.Timestamp() - m.nextTS; gap > pkt.Duration()/2 {
			skipped := uint64(gap) * uint64(m.enc.clockRate) / uint64(time.Second) //nolint:gosec // positive
			logger.Debugf(m, "timestamp gap %v, skipping %d samples", gap, skipped)
			m.enc.packetizer.SkipSamples(uint32(skipped)) //nolint:gosec // wraps like the RTP clock
		}
	}
	m.started = true
	m.nextTS = pkt.Timestamp() + pkt.Duration()

	packets, err := m.enc.Encode(pkt.Data())
	if err != nil {
		return err
	}
	for _, p := range packets {
		raw, err := p.Marshal()
		if err != nil {
			return err
		}
		if m.buf, err = writePacket(m.w, m.cfg.Framing, m.cfg.Channel, raw, m.buf); err != nil {
			return fmt.Errorf("rtp: write failed for stream %d: %w", m.par.StreamIndex(), err)
		}
		m.packets++
	}
	return nil
}

// Close ends the session. The writer is left open.
func (m *Muxer) Close() {
	logger.Debugf(m, "closed after %d packets", m.packets)
}
