package rtp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Framing selects how RTP packets are delimited on a byte stream.
type Framing int

const (
	// FramingDatagram maps one packet to one Read or Write call, as on UDP.
	FramingDatagram Framing = iota
	// FramingInterleaved prefixes each packet with the RTSP interleaved
	// header: '$', channel, 16-bit big-endian length.
	FramingInterleaved
)

const (
	interleavedMagic      = 0x24
	interleavedHeaderSize = 4
	maxPacketSize         = 0xFFFF

	rtcpSenderReport   = 200
	rtcpReceiverReport = 201
	rtcpApp            = 204
)

func (f Framing) String() string {
	switch f {
	case FramingDatagram:
		return "datagram"
	case FramingInterleaved:
		return "interleaved"
	}
	return fmt.Sprintf("Framing(%d)", int(f))
}

// writePacket writes one marshaled RTP packet. buf is scratch space reused
// between calls; the grown buffer is returned.
func writePacket(w io.Writer, framing Framing, channel uint8, raw, buf []byte) ([]byte, error) {
	if len(raw) > maxPacketSize {
		return buf, fmt.Errorf("rtp: packet of %d bytes is too large", len(raw))
	}
	out := raw
	if framing == FramingInterleaved {
		buf = append(buf[:0], interleavedMagic, channel, 0, 0)
		binary.BigEndian.PutUint16(buf[2:4], uint16(len(raw))) //nolint:gosec // checked above
		buf = append(buf, raw...)
		out = buf
	}

	n, err := w.Write(out)
	if err != nil {
		return buf, err
	}
	if n != len(out) {
		return buf, io.ErrShortWrite
	}
	return buf, nil
}

// readPacket reads one RTP or RTCP packet into buf, which must hold
// maxPacketSize bytes. It returns io.EOF when the stream ends between
// packets.
func readPacket(r io.Reader, framing Framing, buf []byte) (raw []byte, channel uint8, err error) {
	if framing == FramingDatagram {
		var n int
		for n == 0 {
			if n, err = r.Read(buf[:maxPacketSize]); n == 0 && err != nil {
				return nil, 0, err
			}
		}
		return buf[:n], 0, nil
	}

	head := buf[:interleavedHeaderSize]
	if _, err = io.ReadFull(r, head); err != nil {
		return nil, 0, err
	}
	if head[0] != interleavedMagic {
		return nil, 0, fmt.Errorf("rtp: interleaved magic 0x%02x", head[0])
	}
	channel = head[1]
	length := int(binary.BigEndian.Uint16(head[2:4]))
	if length < rtpHeaderSize {
		return nil, 0, fmt.Errorf("rtp: incorrect packet size %d", length)
	}
	if _, err = io.ReadFull(r, buf[:length]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, 0, err
	}
	return buf[:length], channel, nil
}

// isRTCP reports whether raw is an RTCP packet sharing the transport.
func isRTCP(raw []byte) bool {
	return len(raw) > 1 && raw[1] >= rtcpSenderReport && raw[1] <= rtcpApp
}
