package av3a

import (
	"bytes"
	"fmt"

	"github.com/ugparu/vivid/utils/bits"
)

type fieldWriter struct {
	w   *bits.Writer
	err error
}

func (f *fieldWriter) put(val uint, n int) {
	if f.err != nil {
		return
	}
	if val >= 1<<n {
		f.err = fmt.Errorf("value %d does not fit in %d bits", val, n)
		return
	}
	f.err = f.w.WriteBits(val, n)
}

// EncodeHeader serializes the fields of hdr that are carried in the
// bitstream. Profile and the derived fields are ignored: the profile follows
// from hdr.Content. Both checksum bytes are written as zero. The result is
// validated with DecodeHeader, so only headers that decode successfully can be
// encoded.
//
//nolint:mnd
func EncodeHeader(hdr Header) ([]byte, error) {
	if hdr.Content == nil {
		return nil, fmt.Errorf("av3a: header has no content")
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	f := &fieldWriter{w: &bits.Writer{W: buf}}

	f.put(SyncWord, 12)
	f.put(LossyCodecID, 4)
	f.put(0, 1)
	f.put(uint(hdr.NNType), 3)
	f.put(uint(hdr.Content.profile()), 3)
	f.put(hdr.SamplingRateIndex, 4)
	f.put(0, 8)

	var bitrateIndex uint
	hasBitrateIndex := true
	switch c := hdr.Content.(type) {
	case ChannelBased:
		f.put(uint(c.Config), 7)
		bitrateIndex = c.BitrateIndex
	case ObjectBased:
		if c.Objects < 1 || c.Objects > maxObjects {
			return nil, fmt.Errorf("av3a: object count %d out of range", c.Objects)
		}
		f.put(soundbedObjectsOnly, 2)
		f.put(uint(c.Objects-1), 7)
		f.put(c.ObjectBitrateIndex, 4)
		hasBitrateIndex = false
	case ChannelObject:
		if c.Objects < 1 || c.Objects > maxObjects {
			return nil, fmt.Errorf("av3a: object count %d out of range", c.Objects)
		}
		f.put(soundbedWithObjects, 2)
		f.put(uint(c.Config), 7)
		f.put(c.BedBitrateIndex, 4)
		f.put(uint(c.Objects-1), 7)
		f.put(c.ObjectBitrateIndex, 4)
		hasBitrateIndex = false
	case Ambisonic:
		if c.Order < 1 || c.Order > 16 {
			return nil, fmt.Errorf("av3a: ambisonic order %d out of range", c.Order)
		}
		f.put(uint(c.Order-1), 4)
		bitrateIndex = c.BitrateIndex
	default:
		return nil, fmt.Errorf("av3a: unsupported content %T", hdr.Content)
	}

	f.put(hdr.ResolutionIndex, 2)
	if hasBitrateIndex {
		f.put(bitrateIndex, 4)
	}
	f.put(0, 8)
	if f.err == nil {
		f.err = f.w.FlushBits()
	}
	if f.err != nil {
		return nil, fmt.Errorf("av3a: encode header: %w", f.err)
	}

	out := buf.Bytes()
	if len(out) < HeaderSize {
		out = append(out, make([]byte, HeaderSize-len(out))...)
	}
	if _, err := DecodeHeader(out); err != nil {
		return nil, err
	}
	return out, nil
}
