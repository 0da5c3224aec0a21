// Package rtp carries AV3A frames over RTP. A frame is sent under a single RTP
// timestamp, split into as many packets as the MTU requires; the marker bit
// flags the packet holding the end of the frame.
package rtp

import (
	"fmt"

	"github.com/pion/rtp"
	"github.com/ugparu/vivid/codec/av3a"
	"github.com/ugparu/vivid/utils/logger"
)

const (
	// DefaultMTU bounds the size of an RTP packet, header included.
	DefaultMTU = 1200
	// DefaultPayloadType is a dynamic payload type.
	DefaultPayloadType = 96

	rtpHeaderSize = 12
)

// Payloader splits an AV3A frame into RTP payloads. It implements
// rtp.Payloader.
type Payloader struct{}

// Payload splits frame into chunks of at most mtu bytes. The chunks are copies.
func (p *Payloader) Payload(mtu uint16, frame []byte) [][]byte {
	if mtu == 0 || len(frame) == 0 {
		return nil
	}
	out := make([][]byte, 0, (len(frame)+int(mtu)-1)/int(mtu))
	for len(frame) > 0 {
		n := min(int(mtu), len(frame))
		chunk := make([]byte, n)
		copy(chunk, frame[:n])
		out = append(out, chunk)
		frame = frame[n:]
	}
	return out
}

// Encoder turns AV3A frames into RTP packets.
type Encoder struct {
	packetizer  rtp.Packetizer
	payloadType uint8
	ssrc        uint32
	clockRate   uint32
}

// NewEncoder creates an Encoder. The clock rate is the sampling rate of the
// stream; mtu is the maximum RTP packet size, header included.
func NewEncoder(payloadType uint8, ssrc uint32, clockRate uint32, mtu int) (*Encoder, error) {
	if mtu <= rtpHeaderSize || mtu > 0xFFFF {
		return nil, fmt.Errorf("rtp: mtu %d out of range", mtu)
	}
	if clockRate == 0 {
		return nil, fmt.Errorf("rtp: zero clock rate")
	}
	return &Encoder{
		packetizer: rtp.NewPacketizer(
			uint16(mtu), //nolint:gosec // checked above
			payloadType,
			ssrc,
			&Payloader{},
			rtp.NewRandomSequencer(),
			clockRate,
		),
		payloadType: payloadType,
		ssrc:        ssrc,
		clockRate:   clockRate,
	}, nil
}

func (e *Encoder) String() string {
	return fmt.Sprintf("AV3A_RTP_ENCODER pt=%d ssrc=%08x", e.payloadType, e.ssrc)
}

// Encode packetizes one frame. The frame must start with a valid header and
// hold exactly one frame. Successive calls advance the RTP timestamp by one
// frame.
func (e *Encoder) Encode(frame []byte) ([]*rtp.Packet, error) {
	_, framelen, err := av3a.ParseFrameHeader(frame)
	if err != nil {
		return nil, err
	}
	if framelen != len(frame) {
		return nil, fmt.Errorf("%w: frame length %d, buffer holds %d bytes", av3a.ErrInvalidData, framelen, len(frame))
	}
	return e.packetizer.Packetize(frame, av3a.FrameSamples), nil
}

// Decoder reassembles AV3A frames from RTP packets. Packets must be delivered
// in order; a sequence gap drops the frame being assembled.
type Decoder struct {
	buf       []byte
	timestamp uint32
	nextSeq   uint16
	started   bool // a frame is being assembled
	synced    bool // nextSeq is valid
	dropping  bool // skip packets until a frame start or a marker
}

// NewDecoder creates a Decoder. Packets are skipped until one starts a frame
// or ends one, so a receiver may join a stream in the middle of a frame.
func NewDecoder() *Decoder {
	return &Decoder{dropping: true}
}

func (d *Decoder) String() string {
	return "AV3A_RTP_DECODER"
}

// startsFrame reports whether payload begins with a valid frame header.
func startsFrame(payload []byte) bool {
	_, err := av3a.DecodeHeader(payload)
	return err == nil
}

// Decode consumes one packet. It returns the frame completed by pkt, or nil
// while a frame is still incomplete. Completed frames are validated with the
// header decoder.
func (d *Decoder) Decode(pkt *rtp.Packet) ([]byte, error) {
	if d.synced && pkt.SequenceNumber != d.nextSeq {
		if d.started {
			logger.Warningf(d, "sequence gap %d -> %d, dropping %d buffered bytes",
				d.nextSeq, pkt.SequenceNumber, len(d.buf))
		}
		d.reset()
		d.dropping = true
	}
	d.synced = true
	d.nextSeq = pkt.SequenceNumber + 1

	if d.started && pkt.Timestamp != d.timestamp {
		logger.Warningf(d, "timestamp changed inside a frame, dropping %d buffered bytes", len(d.buf))
		d.reset()
	}

	if d.dropping {
		if !startsFrame(pkt.Payload) {
			if pkt.Marker {
				d.dropping = false
			}
			return nil, nil
		}
		d.dropping = false
	}

	if !d.started {
		d.started = true
		d.timestamp = pkt.Timestamp
		d.buf = d.buf[:0]
	}
	d.buf = append(d.buf, pkt.Payload...)
	if !pkt.Marker {
		return nil, nil
	}

	frame := make([]byte, len(d.buf))
	copy(frame, d.buf)
	d.reset()

	frames, err := av3a.SplitFrames(frame)
	if err != nil {
		return nil, err
	}
	if len(frames) != 1 {
		return nil, fmt.Errorf("%w: %d frames under one timestamp", av3a.ErrInvalidData, len(frames))
	}
	return frame, nil
}

// Timestamp returns the RTP timestamp of the last completed or pending frame.
func (d *Decoder) Timestamp() uint32 {
	return d.timestamp
}

func (d *Decoder) reset() {
	d.started = false
	d.buf = d.buf[:0]
}
