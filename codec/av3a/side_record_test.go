package av3a

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSideRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hdr      Header
		expected []byte
	}{
		{
			name: "stereo",
			hdr: Header{SamplingRateIndex: 2, ResolutionIndex: 1,
				Content: ChannelBased{Config: ChannelConfigStereo, BitrateIndex: 6}},
			expected: []byte{2, 2, 0, 0, 1, 0, 0, 1, 128, 0},
		},
		{
			name: "objects",
			hdr: Header{NNType: NNTypeLC, SamplingRateIndex: 3, ResolutionIndex: 2,
				Content: ObjectBased{Objects: 4, ObjectBitrateIndex: 8}},
			expected: []byte{2, 3, 1, 1, 14, 4, 0, 2, 0x00, 0x02},
		},
		{
			name: "bed and objects",
			hdr: Header{SamplingRateIndex: 2, ResolutionIndex: 1,
				Content: ChannelObject{Config: ChannelConfig5_1, BedBitrateIndex: 0, Objects: 2, ObjectBitrateIndex: 0}},
			expected: []byte{2, 2, 0, 2, 2, 2, 0, 1, 224, 0},
		},
		{
			name: "hoa2",
			hdr: Header{SamplingRateIndex: 2, ResolutionIndex: 1,
				Content: Ambisonic{Order: 2, BitrateIndex: 6}},
			expected: []byte{2, 2, 0, 3, 12, 0, 2, 1, 0x80, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hdr, err := DecodeHeader(mustEncode(t, tt.hdr))
			require.NoError(t, err)

			rec := NewSideRecord(&hdr)
			b, err := rec.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, b, SideRecordSize)
			require.Equal(t, tt.expected, b)

			var decoded SideRecord
			require.NoError(t, decoded.UnmarshalBinary(b))
			require.Equal(t, rec, decoded)
		})
	}
}

func TestSideRecordTruncated(t *testing.T) {
	t.Parallel()

	var rec SideRecord
	err := rec.UnmarshalBinary(make([]byte, SideRecordSize-1))
	require.ErrorIs(t, err, ErrTruncated)
}
