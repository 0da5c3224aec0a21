//nolint:mnd // .
package av3a

import (
	"github.com/ugparu/vivid"
)

// Frame header constants.
const (
	HeaderSize   = 9     // fixed header window in bytes
	SyncWord     = 0xFFF // 12-bit frame sync pattern
	FrameSamples = 1024  // samples per channel in one frame
	LossyCodecID = 2     // the only accepted audio_codec_id

	bitrateLadderSize = 16
)

// NNType is the neural network type signalled in the header.
type NNType uint8

// Accepted neural network types.
const (
	NNTypeBaseline NNType = 0
	NNTypeLC       NNType = 1
)

// Profile selects the content sub-grammar of a frame header.
type Profile uint8

// Coding profiles.
const (
	ProfileChannelBased  Profile = 0
	ProfileObjectContent Profile = 1
	ProfileAmbisonic     Profile = 2
)

// ContentType tags the kind of audio content carried by a stream.
type ContentType uint8

// Content types, in the order they are signalled in the side record.
const (
	ContentChannelBased ContentType = iota
	ContentObjectBased
	ContentChannelObject
	ContentAmbisonic
)

func (ct ContentType) String() string {
	switch ct {
	case ContentChannelBased:
		return "channel"
	case ContentObjectBased:
		return "object"
	case ContentChannelObject:
		return "channel+object"
	case ContentAmbisonic:
		return "ambisonic"
	}
	return "unknown"
}

// ChannelConfig indexes the channel configuration table.
type ChannelConfig uint8

// Channel configurations.
const (
	ChannelConfigMono ChannelConfig = iota
	ChannelConfigStereo
	ChannelConfig5_1
	ChannelConfig7_1
	ChannelConfig10_2 // reserved
	ChannelConfig22_2 // reserved
	ChannelConfig4_0
	ChannelConfig5_1_2
	ChannelConfig5_1_4
	ChannelConfig7_1_2
	ChannelConfig7_1_4
	ChannelConfigHOA1
	ChannelConfigHOA2
	ChannelConfigHOA3
	ChannelConfigUnknown

	channelConfigCount = int(ChannelConfigUnknown) + 1
)

type channelConfigEntry struct {
	name      string
	channels  int
	layout    vivid.ChannelLayout
	positions []vivid.ChannelLayout
	ladder    *bitrateLadder
}

var (
	positions5_1 = []vivid.ChannelLayout{
		vivid.ChFrontLeft, vivid.ChFrontRight, vivid.ChFrontCenter,
		vivid.ChLowFreq,
		vivid.ChSideLeft, vivid.ChSideRight,
	}
	positions7_1     = append(append([]vivid.ChannelLayout{}, positions5_1...), vivid.ChBackLeft, vivid.ChBackRight)
	positionsTopSide = []vivid.ChannelLayout{vivid.ChTopSideLeft, vivid.ChTopSideRight}
	positionsTopQuad = []vivid.ChannelLayout{
		vivid.ChTopFrontLeft, vivid.ChTopFrontRight,
		vivid.ChTopBackLeft, vivid.ChTopBackRight,
	}
)

func concatPositions(parts ...[]vivid.ChannelLayout) (out []vivid.ChannelLayout) {
	for _, p := range parts {
		out = append(out, p...)
	}
	return
}

var channelConfigTable = [channelConfigCount]channelConfigEntry{
	ChannelConfigMono: {
		name: "Mono", channels: 1, layout: vivid.ChMono,
		positions: []vivid.ChannelLayout{vivid.ChFrontCenter},
		ladder:    &monoLadder,
	},
	ChannelConfigStereo: {
		name: "Stereo", channels: 2, layout: vivid.ChStereo,
		positions: []vivid.ChannelLayout{vivid.ChFrontLeft, vivid.ChFrontRight},
		ladder:    &stereoLadder,
	},
	ChannelConfig5_1: {
		name: "5.1", channels: 6, layout: vivid.Ch5Point1,
		positions: positions5_1,
		ladder:    &mc5p1Ladder,
	},
	ChannelConfig7_1: {
		name: "7.1", channels: 8, layout: vivid.Ch7Point1,
		positions: positions7_1,
		ladder:    &mc7p1Ladder,
	},
	ChannelConfig10_2: {name: "10.2", channels: 12},
	ChannelConfig22_2: {name: "22.2", channels: 24},
	ChannelConfig4_0: {
		name: "4.0", channels: 4, layout: vivid.Ch4Point0,
		positions: []vivid.ChannelLayout{
			vivid.ChFrontLeft, vivid.ChFrontRight,
			vivid.ChFrontCenter, vivid.ChBackCenter,
		},
		ladder: &mc4p0Ladder,
	},
	ChannelConfig5_1_2: {
		name: "5.1.2", channels: 8, layout: vivid.Ch5Point1P2,
		positions: concatPositions(positions5_1, positionsTopSide),
		ladder:    &mc5p1p2Ladder,
	},
	ChannelConfig5_1_4: {
		name: "5.1.4", channels: 10, layout: vivid.Ch5Point1P4,
		positions: concatPositions(positions5_1, positionsTopQuad),
		ladder:    &mc5p1p4Ladder,
	},
	ChannelConfig7_1_2: {
		name: "7.1.2", channels: 10, layout: vivid.Ch7Point1P2,
		positions: concatPositions(positions7_1, positionsTopSide),
		ladder:    &mc7p1p2Ladder,
	},
	ChannelConfig7_1_4: {
		name: "7.1.4", channels: 12, layout: vivid.Ch7Point1P4,
		positions: concatPositions(positions7_1, positionsTopQuad),
		ladder:    &mc7p1p4Ladder,
	},
	ChannelConfigHOA1:    {name: "FOA", channels: 4, ladder: &foaLadder},
	ChannelConfigHOA2:    {name: "HOA2", channels: 9, ladder: &hoa2Ladder},
	ChannelConfigHOA3:    {name: "HOA3", channels: 16, ladder: &hoa3Ladder},
	ChannelConfigUnknown: {name: "Unknown"},
}

func (c ChannelConfig) entry() (*channelConfigEntry, bool) {
	if int(c) >= channelConfigCount {
		return nil, false
	}
	return &channelConfigTable[c], true
}

// Reserved reports whether the configuration has a table slot but may never
// appear in a stream.
func (c ChannelConfig) Reserved() bool {
	return c == ChannelConfig10_2 || c == ChannelConfig22_2
}

// String returns the layout name, e.g. "5.1.4".
func (c ChannelConfig) String() string {
	if e, ok := c.entry(); ok {
		return e.name
	}
	return "Invalid"
}

// Channels returns the channel count of the configuration.
func (c ChannelConfig) Channels() int {
	if e, ok := c.entry(); ok {
		return e.channels
	}
	return 0
}

// Layout returns the loudspeaker mask, zero for reserved, ambisonic and unknown
// configurations.
func (c ChannelConfig) Layout() vivid.ChannelLayout {
	if e, ok := c.entry(); ok {
		return e.layout
	}
	return 0
}

// Positions returns the ordered loudspeaker positions, nil when the
// configuration has no fixed layout.
func (c ChannelConfig) Positions() []vivid.ChannelLayout {
	if e, ok := c.entry(); ok && e.positions != nil {
		return append([]vivid.ChannelLayout(nil), e.positions...)
	}
	return nil
}

// bitrateLadder lists the bitrates selectable for one channel configuration.
// Zero slots only pad the table to its fixed width.
type bitrateLadder [bitrateLadderSize]int64

// lookup returns the bitrate at idx, false when idx is outside the ladder or
// selects a padding slot.
func (l *bitrateLadder) lookup(idx uint) (int64, bool) {
	if l == nil || idx >= uint(len(l)) || l[idx] == 0 {
		return 0, false
	}
	return l[idx], true
}

// Len returns the number of selectable entries.
func (l *bitrateLadder) Len() (n int) {
	if l == nil {
		return 0
	}
	for _, br := range l {
		if br != 0 {
			n++
		}
	}
	return
}

// Bitrate returns the ladder entry idx for configuration c.
func (c ChannelConfig) Bitrate(idx uint) (int64, bool) {
	e, ok := c.entry()
	if !ok {
		return 0, false
	}
	return e.ladder.lookup(idx)
}

// BitrateCount returns the number of selectable bitrates for c.
func (c ChannelConfig) BitrateCount() int {
	e, ok := c.entry()
	if !ok {
		return 0
	}
	return e.ladder.Len()
}

var (
	monoLadder = bitrateLadder{
		16000, 32000, 44000, 56000, 64000, 72000, 80000, 96000, 128000, 144000,
		164000, 192000,
	}
	stereoLadder = bitrateLadder{
		24000, 32000, 48000, 64000, 80000, 96000, 128000, 144000, 192000, 256000,
		320000,
	}
	mc5p1Ladder = bitrateLadder{
		192000, 256000, 320000, 384000, 448000, 512000, 640000, 720000, 144000, 96000,
		128000, 160000,
	}
	mc7p1Ladder = bitrateLadder{
		192000, 480000, 256000, 384000, 576000, 640000, 128000, 160000,
	}
	mc4p0Ladder   = bitrateLadder{48000, 96000, 128000, 192000, 256000}
	mc5p1p2Ladder = bitrateLadder{152000, 320000, 480000, 576000}
	mc5p1p4Ladder = bitrateLadder{176000, 384000, 576000, 704000, 256000, 448000}
	mc7p1p2Ladder = bitrateLadder{216000, 480000, 576000, 384000, 768000}
	mc7p1p4Ladder = bitrateLadder{240000, 608000, 384000, 512000, 832000}
	foaLadder     = bitrateLadder{48000, 96000, 128000, 192000, 256000}
	hoa2Ladder    = bitrateLadder{192000, 256000, 320000, 384000, 480000, 512000, 640000}
	hoa3Ladder    = bitrateLadder{256000, 320000, 384000, 512000, 640000, 896000}
)

var samplingRateTable = [...]int{
	192000, 96000, 48000, 44100, 32000, 24000, 22050, 16000, 8000,
}

// SamplingRate resolves a sampling_frequency_index.
func SamplingRate(idx uint) (int, bool) {
	if idx >= uint(len(samplingRateTable)) {
		return 0, false
	}
	return samplingRateTable[idx], true
}

// SamplingRateIndex returns the index of rate in the sampling rate table.
func SamplingRateIndex(rate int) (uint, bool) {
	for i, r := range samplingRateTable {
		if r == rate {
			return uint(i), true //nolint:gosec // table is tiny
		}
	}
	return 0, false
}

type resolutionEntry struct {
	bits   int
	format vivid.SampleFormat
}

var resolutionTable = [...]resolutionEntry{
	{8, vivid.U8},
	{16, vivid.S16},
	{24, vivid.S32},
}

// Resolution resolves a resolution index to its bit depth and sample format.
func Resolution(idx uint) (depth int, format vivid.SampleFormat, ok bool) {
	if idx >= uint(len(resolutionTable)) {
		return 0, 0, false
	}
	e := resolutionTable[idx]
	return e.bits, e.format, true
}

// ambisonicConfig maps an ambisonic order (1..3) to its channel configuration.
func ambisonicConfig(order uint) (ChannelConfig, bool) {
	switch order {
	case 1:
		return ChannelConfigHOA1, true
	case 2:
		return ChannelConfigHOA2, true
	case 3:
		return ChannelConfigHOA3, true
	}
	return ChannelConfigUnknown, false
}
