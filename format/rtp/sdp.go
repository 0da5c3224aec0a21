package rtp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ugparu/vivid/codec/av3a"
	"github.com/ugparu/vivid/utils"
	"github.com/ugparu/vivid/utils/sdp"
)

// EncodingName is the rtpmap encoding name of AV3A.
const EncodingName = "AV3A"

// ErrNoStream is returned when a session description announces no AV3A stream.
var ErrNoStream = errors.New("rtp: no AV3A stream in session description")

// StreamDescription is an AV3A stream announced by a session description.
type StreamDescription struct {
	Port          int
	PayloadType   uint8
	ClockRate     int
	Channels      int
	SideRecord    av3a.SideRecord
	HasSideRecord bool
}

// SessionDescription announces the muxed stream to a receiver listening on
// addr:port. The side record of the stream travels as the fmtp config.
func (m *Muxer) SessionDescription(addr string, port int) (string, error) {
	if m.par == nil {
		return "", utils.NoCodecDataError{}
	}
	media := sdp.Media{
		AVType:      "audio",
		Port:        port,
		PayloadType: int(m.cfg.PayloadType),
		Encoding:    EncodingName,
		ClockRate:   int(m.par.SampleRate()), //nolint:gosec // table value
		Channels:    int(m.par.Channels()),
	}
	if par, ok := m.par.(*av3a.CodecParameters); ok {
		media.Config = par.Extradata
	}
	return sdp.Generate(sdp.Session{Address: addr}, []sdp.Media{media}), nil
}

// ParseSessionDescription returns the first AV3A stream of content.
func ParseSessionDescription(content string) (desc StreamDescription, err error) {
	_, medias, err := sdp.Parse(content)
	if err != nil {
		return desc, err
	}
	for _, m := range medias {
		if m.AVType != "audio" || !strings.EqualFold(m.Encoding, EncodingName) {
			continue
		}
		if m.PayloadType < 0 || m.PayloadType > 127 { //nolint:mnd
			return desc, fmt.Errorf("rtp: payload type %d out of range", m.PayloadType)
		}
		desc = StreamDescription{
			Port:        m.Port,
			PayloadType: uint8(m.PayloadType),
			ClockRate:   m.ClockRate,
			Channels:    m.Channels,
		}
		if len(m.Config) == 0 {
			return desc, nil
		}
		if err = desc.SideRecord.UnmarshalBinary(m.Config); err != nil {
			return desc, err
		}
		rate, ok := av3a.SamplingRate(uint(desc.SideRecord.SamplingRateIndex))
		if !ok || rate != desc.ClockRate {
			return desc, fmt.Errorf("%w: config sampling rate index %d does not match clock rate %d",
				av3a.ErrInvalidData, desc.SideRecord.SamplingRateIndex, desc.ClockRate)
		}
		desc.HasSideRecord = true
		return desc, nil
	}
	return desc, ErrNoStream
}
