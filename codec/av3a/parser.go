package av3a

import (
	"fmt"
)

// ParseFrameHeader decodes the header at the start of buf and returns it with
// the length of the frame it starts. buf needs only hold the header.
func ParseFrameHeader(buf []byte) (hdr Header, framelen int, err error) {
	if hdr, err = DecodeHeader(buf); err != nil {
		return
	}
	framelen = hdr.FrameSize()
	if framelen < HeaderSize {
		return hdr, 0, invalidf("frame length %d shorter than header", framelen)
	}
	return
}

// SplitFrames splits a contiguous run of frames. Frames are sub-slices of data.
// On error the frames found before the failing offset are returned with it.
func SplitFrames(data []byte) (frames [][]byte, err error) {
	for off := 0; off < len(data); {
		var framelen int
		if _, framelen, err = ParseFrameHeader(data[off:]); err != nil {
			return frames, fmt.Errorf("offset %d: %w", off, err)
		}
		if off+framelen > len(data) {
			return frames, fmt.Errorf("%w: offset %d: frame needs %d bytes, have %d",
				ErrTruncated, off, framelen, len(data)-off)
		}
		frames = append(frames, data[off:off+framelen])
		off += framelen
	}
	return frames, nil
}

// Parser tracks stream parameters for consumers that receive raw buffers
// instead of demuxed frames. Buffers are passed through unmodified.
type Parser struct {
	par *CodecParameters
}

// NewParser creates a Parser with no stream parameters yet.
func NewParser() *Parser {
	return &Parser{}
}

// Parse refreshes the stream parameters from the header at the start of buf
// and returns buf unchanged. Buffers shorter than a header are passed through
// without inspection. On a malformed header the previous parameters are kept
// and the error is returned alongside buf.
func (p *Parser) Parse(buf []byte) ([]byte, error) {
	if len(buf) < HeaderSize {
		return buf, nil
	}
	hdr, err := DecodeHeader(buf)
	if err != nil {
		return buf, err
	}
	if p.par == nil || p.par.Header != hdr {
		idx := uint8(0)
		if p.par != nil {
			idx = p.par.StreamIndex()
		}
		p.par = NewCodecParameters(hdr)
		p.par.SetStreamIndex(idx)
	}
	return buf, nil
}

// CodecParameters returns the parameters of the last valid header, nil before
// the first one.
func (p *Parser) CodecParameters() *CodecParameters {
	return p.par
}
