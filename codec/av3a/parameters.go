package av3a

import (
	"fmt"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/codec"
)

// CodecParameters describes an Audio Vivid stream. The channel layout is
// exposed only as a channel count; no speaker order is asserted.
type CodecParameters struct {
	codec.Stream
	Header    Header
	Extradata []byte
}

// NewCodecParameters derives stream parameters from the first frame header.
func NewCodecParameters(hdr Header) *CodecParameters {
	side := NewSideRecord(&hdr)
	extradata, _ := side.MarshalBinary()
	return &CodecParameters{
		Stream: codec.Stream{
			Codec:   vivid.AV3A,
			Bitrate: uint(hdr.TotalBitrate), //nolint:gosec // positive by construction
		},
		Header:    hdr,
		Extradata: extradata,
	}
}

func (par *CodecParameters) SampleRate() uint64 {
	return uint64(par.Header.SamplingRate) //nolint:gosec // table value
}

func (par *CodecParameters) SampleFormat() vivid.SampleFormat {
	return par.Header.SampleFormat
}

// Channels returns the total channel count, objects included.
func (par *CodecParameters) Channels() uint8 {
	return uint8(par.Header.TotalChannels) //nolint:gosec // at most 12 + 128
}

// BitsPerRawSample returns the coded sample resolution.
func (par *CodecParameters) BitsPerRawSample() int {
	return par.Header.Resolution
}

// FrameSize returns the number of samples per channel in a frame.
func (par *CodecParameters) FrameSize() int {
	return FrameSamples
}

// SideRecord decodes the extradata.
func (par *CodecParameters) SideRecord() (s SideRecord, err error) {
	err = s.UnmarshalBinary(par.Extradata)
	return
}

func (par *CodecParameters) Tag() string {
	return "av3a"
}

func (par *CodecParameters) String() string {
	if par == nil {
		return "EMPTY_CODEC_PARAMETERS"
	}
	return fmt.Sprintf("AV3A_PARAMETERS %s", par.Header.String())
}
