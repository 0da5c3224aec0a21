package av3a

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hdr  Header
	}{
		{"mono", Header{SamplingRateIndex: 7, ResolutionIndex: 0,
			Content: ChannelBased{Config: ChannelConfigMono, BitrateIndex: 11}}},
		{"7.1.4 lc", Header{NNType: NNTypeLC, SamplingRateIndex: 2, ResolutionIndex: 2,
			Content: ChannelBased{Config: ChannelConfig7_1_4, BitrateIndex: 4}}},
		{"foa as channels", Header{SamplingRateIndex: 2, ResolutionIndex: 1,
			Content: ChannelBased{Config: ChannelConfigHOA1, BitrateIndex: 2}}},
		{"objects", Header{SamplingRateIndex: 1, ResolutionIndex: 1,
			Content: ObjectBased{Objects: 128, ObjectBitrateIndex: 3}}},
		{"bed and objects", Header{SamplingRateIndex: 3, ResolutionIndex: 2,
			Content: ChannelObject{Config: ChannelConfig5_1_2, BedBitrateIndex: 3, Objects: 1, ObjectBitrateIndex: 11}}},
		{"hoa3", Header{SamplingRateIndex: 0, ResolutionIndex: 1,
			Content: Ambisonic{Order: 3, BitrateIndex: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := mustEncode(t, tt.hdr)
			hdr, err := DecodeHeader(buf)
			require.NoError(t, err)
			require.Equal(t, tt.hdr.Content, hdr.Content)
			require.Equal(t, tt.hdr.Content.profile(), hdr.Profile)
			require.Equal(t, tt.hdr.NNType, hdr.NNType)
			require.Equal(t, tt.hdr.SamplingRateIndex, hdr.SamplingRateIndex)
			require.Equal(t, tt.hdr.ResolutionIndex, hdr.ResolutionIndex)

			again, err := EncodeHeader(hdr)
			require.NoError(t, err)
			require.Equal(t, buf, again)
		})
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	t.Parallel()

	buf := mustEncode(t, Header{
		SamplingRateIndex: 2,
		ResolutionIndex:   1,
		Content:           ChannelBased{Config: ChannelConfigStereo, BitrateIndex: 6},
	})
	// sync, codec id 2, anc 0, nn 0, profile 0, rate 2, checksum,
	// config 1, resolution 1, bitrate 6, checksum, padding
	require.Equal(t, []byte{0xFF, 0xF2, 0x00, 0x40, 0x00, 0x56, 0x00, 0x00, 0x00}, buf)
}

func TestEncodeHeaderRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hdr     Header
		invalid bool
	}{
		{"no content", Header{SamplingRateIndex: 2}, false},
		{"zero objects", Header{SamplingRateIndex: 2, Content: ObjectBased{Objects: 0}}, false},
		{"too many objects", Header{SamplingRateIndex: 2, Content: ObjectBased{Objects: 129}}, false},
		{"bed without objects", Header{SamplingRateIndex: 2,
			Content: ChannelObject{Config: ChannelConfigStereo}}, false},
		{"ambisonic order 0", Header{SamplingRateIndex: 2, Content: Ambisonic{Order: 0}}, false},
		{"bitrate index too wide", Header{SamplingRateIndex: 2,
			Content: ChannelBased{Config: ChannelConfigStereo, BitrateIndex: 16}}, false},
		{"sampling rate index too wide", Header{SamplingRateIndex: 16,
			Content: ChannelBased{Config: ChannelConfigStereo}}, false},
		{"reserved config", Header{SamplingRateIndex: 2,
			Content: ChannelBased{Config: ChannelConfig10_2}}, true},
		{"unknown config", Header{SamplingRateIndex: 2,
			Content: ChannelBased{Config: ChannelConfigUnknown}}, true},
		{"bitrate padding", Header{SamplingRateIndex: 2,
			Content: ChannelBased{Config: ChannelConfigStereo, BitrateIndex: 12}}, true},
		{"sampling rate index", Header{SamplingRateIndex: 9,
			Content: ChannelBased{Config: ChannelConfigStereo}}, true},
		{"resolution", Header{SamplingRateIndex: 2, ResolutionIndex: 3,
			Content: ChannelBased{Config: ChannelConfigStereo}}, true},
		{"nn type", Header{NNType: 3, SamplingRateIndex: 2,
			Content: ChannelBased{Config: ChannelConfigStereo}}, true},
		{"ambisonic order 4", Header{SamplingRateIndex: 2, Content: Ambisonic{Order: 4}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf, err := EncodeHeader(tt.hdr)
			require.Error(t, err)
			require.Nil(t, buf)
			if tt.invalid {
				require.ErrorIs(t, err, ErrInvalidData)
			}
		})
	}
}
