package av3a

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/vivid"
)

func TestSamplingRateTable(t *testing.T) {
	t.Parallel()

	expected := []int{192000, 96000, 48000, 44100, 32000, 24000, 22050, 16000, 8000}
	for i, rate := range expected {
		got, ok := SamplingRate(uint(i))
		require.True(t, ok)
		require.Equal(t, rate, got)

		idx, ok := SamplingRateIndex(rate)
		require.True(t, ok)
		require.Equal(t, uint(i), idx)
	}

	_, ok := SamplingRate(uint(len(expected)))
	require.False(t, ok)
	_, ok = SamplingRateIndex(11025)
	require.False(t, ok)
}

func TestChannelConfigTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg      ChannelConfig
		name     string
		channels int
		layout   vivid.ChannelLayout
		reserved bool
	}{
		{ChannelConfigMono, "Mono", 1, vivid.ChMono, false},
		{ChannelConfigStereo, "Stereo", 2, vivid.ChStereo, false},
		{ChannelConfig5_1, "5.1", 6, vivid.Ch5Point1, false},
		{ChannelConfig7_1, "7.1", 8, vivid.Ch7Point1, false},
		{ChannelConfig10_2, "10.2", 12, 0, true},
		{ChannelConfig22_2, "22.2", 24, 0, true},
		{ChannelConfig4_0, "4.0", 4, vivid.Ch4Point0, false},
		{ChannelConfig5_1_2, "5.1.2", 8, vivid.Ch5Point1P2, false},
		{ChannelConfig5_1_4, "5.1.4", 10, vivid.Ch5Point1P4, false},
		{ChannelConfig7_1_2, "7.1.2", 10, vivid.Ch7Point1P2, false},
		{ChannelConfig7_1_4, "7.1.4", 12, vivid.Ch7Point1P4, false},
		{ChannelConfigHOA1, "FOA", 4, 0, false},
		{ChannelConfigHOA2, "HOA2", 9, 0, false},
		{ChannelConfigHOA3, "HOA3", 16, 0, false},
		{ChannelConfigUnknown, "Unknown", 0, 0, false},
	}

	require.Len(t, tests, channelConfigCount)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.name, tt.cfg.String())
			require.Equal(t, tt.channels, tt.cfg.Channels())
			require.Equal(t, tt.layout, tt.cfg.Layout())
			require.Equal(t, tt.reserved, tt.cfg.Reserved())

			positions := tt.cfg.Positions()
			if tt.layout == 0 {
				require.Nil(t, positions)
				return
			}
			require.Len(t, positions, tt.channels)
			var mask vivid.ChannelLayout
			for _, p := range positions {
				require.Equal(t, 1, p.Count(), "position must be a single speaker")
				mask |= p
			}
			require.Equal(t, tt.layout, mask)
			require.Equal(t, tt.channels, mask.Count())
		})
	}

	require.Equal(t, "Invalid", ChannelConfig(99).String())
	require.Zero(t, ChannelConfig(99).Channels())
}

func TestBitrateLadders(t *testing.T) {
	t.Parallel()

	counts := map[ChannelConfig]int{
		ChannelConfigMono:    12,
		ChannelConfigStereo:  11,
		ChannelConfig5_1:     12,
		ChannelConfig7_1:     8,
		ChannelConfig10_2:    0,
		ChannelConfig22_2:    0,
		ChannelConfig4_0:     5,
		ChannelConfig5_1_2:   4,
		ChannelConfig5_1_4:   6,
		ChannelConfig7_1_2:   5,
		ChannelConfig7_1_4:   5,
		ChannelConfigHOA1:    5,
		ChannelConfigHOA2:    7,
		ChannelConfigHOA3:    6,
		ChannelConfigUnknown: 0,
	}

	for cfg, n := range counts {
		require.Equal(t, n, cfg.BitrateCount(), cfg.String())
		for idx := uint(0); idx < bitrateLadderSize; idx++ {
			br, ok := cfg.Bitrate(idx)
			if int(idx) < n {
				require.True(t, ok, "%s[%d]", cfg, idx)
				require.Positive(t, br)
			} else {
				require.False(t, ok, "%s[%d] is padding", cfg, idx)
			}
		}
		_, ok := cfg.Bitrate(bitrateLadderSize)
		require.False(t, ok)
	}

	br, ok := ChannelConfigMono.Bitrate(11)
	require.True(t, ok)
	require.Equal(t, int64(192000), br)

	br, ok = ChannelConfig7_1_4.Bitrate(4)
	require.True(t, ok)
	require.Equal(t, int64(832000), br)
}

func TestResolutionTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		idx    uint
		depth  int
		format vivid.SampleFormat
	}{
		{0, 8, vivid.U8},
		{1, 16, vivid.S16},
		{2, 24, vivid.S32},
	}
	for _, tt := range tests {
		depth, format, ok := Resolution(tt.idx)
		require.True(t, ok)
		require.Equal(t, tt.depth, depth)
		require.Equal(t, tt.format, format)
	}
	_, _, ok := Resolution(3)
	require.False(t, ok)
}
