package av3a

import (
	"fmt"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/utils/bits"
)

// Header is a decoded AATF frame header together with the values derived from
// its table indices.
type Header struct {
	CodecID           uint8
	NNType            NNType
	Profile           Profile
	SamplingRateIndex uint
	ResolutionIndex   uint
	Content           Content

	SamplingRate  int                // Hz
	ChannelConfig ChannelConfig      // ChannelConfigUnknown for pure object content
	Channels      int                // loudspeaker or ambisonic channels
	Objects       int                // audio objects
	TotalChannels int                // Channels + Objects
	Resolution    int                // bits per sample
	SampleFormat  vivid.SampleFormat // sample format for Resolution
	TotalBitrate  int64              // bits per second
}

// ContentType returns the content type tag of the header.
func (h *Header) ContentType() ContentType {
	if h.Content == nil {
		return ContentChannelBased
	}
	return h.Content.ContentType()
}

// HOAOrder returns the ambisonic order, zero for non-ambisonic content.
func (h *Header) HOAOrder() int {
	if a, ok := h.Content.(Ambisonic); ok {
		return a.Order
	}
	return 0
}

// FrameSize returns the number of bytes of the frame this header starts.
func (h *Header) FrameSize() int {
	return FrameSize(h.TotalBitrate, h.SamplingRate)
}

func (h *Header) String() string {
	return fmt.Sprintf("AV3A %s %s %dHz %dch+%dobj %dbit %dbps",
		h.ContentType(), h.ChannelConfig, h.SamplingRate, h.Channels, h.Objects, h.Resolution, h.TotalBitrate)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidData}, args...)...)
}

type fieldReader struct {
	r *bits.Reader
}

func (f fieldReader) read(n int, name string) (uint, error) {
	v, err := f.r.ReadBits(n)
	if err != nil {
		return 0, invalidf("%s: %v", name, err)
	}
	return v, nil
}

func (f fieldReader) skip(n int, name string) error {
	if err := f.r.Skip(n); err != nil {
		return invalidf("%s: %v", name, err)
	}
	return nil
}

func (f fieldReader) channelConfig() (ChannelConfig, error) {
	v, err := f.read(7, "channel_number_index") //nolint:mnd
	if err != nil {
		return 0, err
	}
	cfg := ChannelConfig(v) //nolint:gosec // 7-bit value
	if v >= uint(ChannelConfigUnknown) || cfg.Reserved() {
		return 0, invalidf("channel configuration %d", v)
	}
	return cfg, nil
}

func (f fieldReader) objects() (int, error) {
	v, err := f.read(7, "object_channel_number") //nolint:mnd
	if err != nil {
		return 0, err
	}
	return int(v) + 1, nil //nolint:gosec // 7-bit value
}

// DecodeHeader decodes the frame header at the start of buf. Only the first
// HeaderSize bytes are examined. Malformed headers are reported as
// ErrInvalidData and short buffers as ErrTruncated.
//
//nolint:mnd,funlen // field widths are the bitstream syntax
func DecodeHeader(buf []byte) (hdr Header, err error) {
	if len(buf) < HeaderSize {
		return hdr, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, HeaderSize, len(buf))
	}
	f := fieldReader{r: bits.NewReader(buf[:HeaderSize])}

	var v uint
	if v, err = f.read(12, "sync_word"); err != nil {
		return
	}
	if v != SyncWord {
		return hdr, invalidf("sync word 0x%03x", v)
	}

	if v, err = f.read(4, "audio_codec_id"); err != nil {
		return
	}
	if v != LossyCodecID {
		return hdr, invalidf("codec id %d", v)
	}
	hdr.CodecID = uint8(v)

	if v, err = f.read(1, "anc_data"); err != nil {
		return
	}
	if v != 0 {
		return hdr, invalidf("ancillary data is not supported")
	}

	if v, err = f.read(3, "nn_type"); err != nil {
		return
	}
	if v > uint(NNTypeLC) {
		return hdr, invalidf("neural network type %d", v)
	}
	hdr.NNType = NNType(v)

	if v, err = f.read(3, "coding_profile"); err != nil {
		return
	}
	hdr.Profile = Profile(v)

	if hdr.SamplingRateIndex, err = f.read(4, "sampling_frequency_index"); err != nil {
		return
	}
	var ok bool
	if hdr.SamplingRate, ok = SamplingRate(hdr.SamplingRateIndex); !ok {
		return hdr, invalidf("sampling frequency index %d", hdr.SamplingRateIndex)
	}

	if err = f.skip(8, "checksum"); err != nil {
		return
	}

	cfg := ChannelConfigUnknown
	var content Content
	switch hdr.Profile {
	case ProfileChannelBased:
		if cfg, err = f.channelConfig(); err != nil {
			return
		}
		content = ChannelBased{Config: cfg}
	case ProfileObjectContent:
		if content, cfg, err = f.objectContent(); err != nil {
			return
		}
	case ProfileAmbisonic:
		if v, err = f.read(4, "order"); err != nil {
			return
		}
		order := v + 1
		if cfg, ok = ambisonicConfig(order); !ok {
			return hdr, invalidf("ambisonic order %d", order)
		}
		content = Ambisonic{Order: int(order)} //nolint:gosec // 1..3
	default:
		return hdr, invalidf("coding profile %d", hdr.Profile)
	}

	hdr.ChannelConfig = cfg
	if cfg != ChannelConfigUnknown {
		hdr.Channels = cfg.Channels()
	}
	switch c := content.(type) {
	case ObjectBased:
		hdr.Objects = c.Objects
	case ChannelObject:
		hdr.Objects = c.Objects
	}
	hdr.TotalChannels = hdr.Channels + hdr.Objects

	if hdr.ResolutionIndex, err = f.read(2, "resolution"); err != nil {
		return
	}
	if hdr.Resolution, hdr.SampleFormat, ok = Resolution(hdr.ResolutionIndex); !ok {
		return hdr, invalidf("resolution index %d", hdr.ResolutionIndex)
	}

	switch c := content.(type) {
	case ObjectBased:
		hdr.TotalBitrate, _ = objectBitrate(c.ObjectBitrateIndex, c.Objects)
	case ChannelObject:
		bed, _ := cfg.Bitrate(c.BedBitrateIndex)
		objs, _ := objectBitrate(c.ObjectBitrateIndex, c.Objects)
		hdr.TotalBitrate = bed + objs
	default:
		var idx uint
		if idx, err = f.read(4, "bitrate_index"); err != nil {
			return
		}
		if hdr.TotalBitrate, ok = cfg.Bitrate(idx); !ok {
			return hdr, invalidf("bitrate index %d for %s", idx, cfg)
		}
		switch c := content.(type) {
		case ChannelBased:
			c.BitrateIndex = idx
			content = c
		case Ambisonic:
			c.BitrateIndex = idx
			content = c
		}
	}

	if err = f.skip(8, "checksum"); err != nil {
		return
	}

	hdr.Content = content
	return hdr, nil
}

// objectContent decodes the coding profile 1 fields that follow the common
// header part.
//
//nolint:mnd
func (f fieldReader) objectContent() (content Content, cfg ChannelConfig, err error) {
	cfg = ChannelConfigUnknown

	var soundbed uint
	if soundbed, err = f.read(2, "soundbed_type"); err != nil {
		return
	}

	switch soundbed {
	case soundbedObjectsOnly:
		var c ObjectBased
		if c.Objects, err = f.objects(); err != nil {
			return
		}
		if c.ObjectBitrateIndex, err = f.read(4, "bitrate_index_per_channel"); err != nil {
			return
		}
		if _, ok := objectBitrate(c.ObjectBitrateIndex, c.Objects); !ok {
			return nil, cfg, invalidf("object bitrate index %d", c.ObjectBitrateIndex)
		}
		return c, cfg, nil
	case soundbedWithObjects:
		var c ChannelObject
		if c.Config, err = f.channelConfig(); err != nil {
			return
		}
		if c.BedBitrateIndex, err = f.read(4, "bitrate_index"); err != nil {
			return
		}
		if _, ok := c.Config.Bitrate(c.BedBitrateIndex); !ok {
			return nil, cfg, invalidf("soundbed bitrate index %d for %s", c.BedBitrateIndex, c.Config)
		}
		if c.Objects, err = f.objects(); err != nil {
			return
		}
		if c.ObjectBitrateIndex, err = f.read(4, "bitrate_index_per_channel"); err != nil {
			return
		}
		if _, ok := objectBitrate(c.ObjectBitrateIndex, c.Objects); !ok {
			return nil, cfg, invalidf("object bitrate index %d", c.ObjectBitrateIndex)
		}
		return c, c.Config, nil
	}
	return nil, cfg, invalidf("soundbed type %d", soundbed)
}
