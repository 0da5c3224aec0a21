package av3a

import (
	"encoding/binary"
	"fmt"
)

// SideRecordSize is the encoded size of a SideRecord.
const SideRecordSize = 10

// SideRecord carries the raw header indices of a stream for consumers that
// need them rather than the derived values. It is produced once when a stream
// is opened and stored as the codec extradata.
type SideRecord struct {
	CodecID           uint8
	SamplingRateIndex uint8
	NNType            NNType
	ContentType       ContentType
	ChannelConfig     ChannelConfig
	Objects           uint8
	HOAOrder          uint8
	ResolutionIndex   uint8
	TotalBitrateKbps  uint16
}

// NewSideRecord builds the side record of a decoded header.
func NewSideRecord(hdr *Header) SideRecord {
	return SideRecord{
		CodecID:           hdr.CodecID,
		SamplingRateIndex: uint8(hdr.SamplingRateIndex), //nolint:gosec // 4-bit field
		NNType:            hdr.NNType,
		ContentType:       hdr.ContentType(),
		ChannelConfig:     hdr.ChannelConfig,
		Objects:           uint8(hdr.Objects),              //nolint:gosec // at most 128
		HOAOrder:          uint8(hdr.HOAOrder()),           //nolint:gosec // at most 3
		ResolutionIndex:   uint8(hdr.ResolutionIndex),      //nolint:gosec // 2-bit field
		TotalBitrateKbps:  uint16(hdr.TotalBitrate / 1000), //nolint:gosec,mnd // fits by table construction
	}
}

// MarshalBinary encodes the record: eight single-byte fields followed by the
// little-endian bitrate in kbps.
func (s SideRecord) MarshalBinary() ([]byte, error) {
	b := make([]byte, SideRecordSize)
	b[0] = s.CodecID
	b[1] = s.SamplingRateIndex
	b[2] = uint8(s.NNType)
	b[3] = uint8(s.ContentType)
	b[4] = uint8(s.ChannelConfig)
	b[5] = s.Objects
	b[6] = s.HOAOrder
	b[7] = s.ResolutionIndex
	binary.LittleEndian.PutUint16(b[8:], s.TotalBitrateKbps)
	return b, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (s *SideRecord) UnmarshalBinary(b []byte) error {
	if len(b) < SideRecordSize {
		return fmt.Errorf("%w: side record needs %d bytes, got %d", ErrTruncated, SideRecordSize, len(b))
	}
	s.CodecID = b[0]
	s.SamplingRateIndex = b[1]
	s.NNType = NNType(b[2])
	s.ContentType = ContentType(b[3])
	s.ChannelConfig = ChannelConfig(b[4])
	s.Objects = b[5]
	s.HOAOrder = b[6]
	s.ResolutionIndex = b[7]
	s.TotalBitrateKbps = binary.LittleEndian.Uint16(b[8:])
	return nil
}
