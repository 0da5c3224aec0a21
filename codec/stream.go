// Package codec holds the pieces of packets and codec parameters that do not
// depend on the bitstream.
package codec

import (
	"fmt"
	"math"

	"github.com/ugparu/vivid"
)

// Stream identifies a stream within its source: which codec it carries, at
// which index, and at what bitrate.
type Stream struct {
	Codec   vivid.CodecType
	Index   uint8
	Bitrate uint // bits per second
}

// Type returns the codec, or an invalid type for a nil stream.
func (s *Stream) Type() vivid.CodecType {
	if s == nil {
		return math.MaxUint32
	}
	return s.Codec
}

// StreamIndex returns math.MaxUint8 for a nil stream.
func (s *Stream) StreamIndex() uint8 {
	if s == nil {
		return math.MaxUint8
	}
	return s.Index
}

func (s *Stream) SetStreamIndex(idx uint8) { s.Index = idx }

// BitRate returns the nominal bitrate in bits per second.
func (s *Stream) BitRate() uint {
	if s == nil {
		return 0
	}
	return s.Bitrate
}

func (s *Stream) SetBitRate(br uint) { s.Bitrate = br }

func (s *Stream) String() string {
	if s == nil {
		return "EMPTY_STREAM"
	}
	return fmt.Sprintf("STREAM codec=%v idx=%d", s.Codec, s.Index)
}
