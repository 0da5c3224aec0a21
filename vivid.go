// Package vivid holds the media interfaces shared by the Audio Vivid (AV3A)
// codec, container and transport packages.
package vivid

import "time"

// CodecParameters identifies a stream and its codec.
type CodecParameters interface {
	Type() CodecType
	Tag() string
	StreamIndex() uint8
	SetStreamIndex(uint8)
	// BitRate is the nominal bitrate in bits per second.
	BitRate() uint
	SetBitRate(uint)
}

// AudioCodecParameters adds what a decoder needs to size its output.
type AudioCodecParameters interface {
	CodecParameters
	SampleRate() uint64
	SampleFormat() SampleFormat
	// Channels counts every decoded channel, objects included.
	Channels() uint8
}

// CodecParametersPair is what a demuxer found in its source. Audio Vivid
// sources carry a single audio stream.
type CodecParametersPair struct {
	URL string
	AudioCodecParameters
}

// Packet is one coded frame with its timing.
//
// Timestamp is relative to the start of the stream and StartTime is the wall
// clock time it maps to. Packets may share their data with clones; Close
// releases this packet's hold on it.
type Packet interface {
	Clone(copyData bool) Packet
	URL() string
	SetURL(string)
	StreamIndex() uint8
	SetStreamIndex(uint8)
	Timestamp() time.Duration
	SetTimestamp(time.Duration)
	StartTime() time.Time
	SetStartTime(time.Time)
	Duration() time.Duration
	SetDuration(time.Duration)
	Data() []byte
	Close()
}

// AudioPacket is a packet that knows its stream parameters.
type AudioPacket interface {
	Packet
	CodecParameters() AudioCodecParameters
}

// Demuxer reads packets out of a source. Demux must be called first.
type Demuxer interface {
	Demux() (CodecParametersPair, error)
	ReadPacket() (Packet, error)
	Close()
}

// Muxer writes packets into a sink. Mux must be called first.
type Muxer interface {
	Mux(CodecParametersPair) error
	WritePacket(Packet) error
	Close()
}

// Reader delivers packets from a background goroutine.
type Reader interface {
	// Read opens the source and starts delivery.
	Read() (CodecParametersPair, error)
	// Packets is closed when delivery ends.
	Packets() <-chan Packet
	// Err reports why delivery ended, nil for a clean end of input.
	Err() error
	Close()
}
