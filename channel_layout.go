package vivid

import "fmt"

// ChannelLayout is a bit mask of loudspeaker positions.
type ChannelLayout uint32

// String returns the human-readable string representation of a ChannelLayout.
func (ch ChannelLayout) String() string {
	return fmt.Sprintf("%dch", ch.Count())
}

// Speaker positions. Each constant has exactly one bit set.
const (
	ChFrontCenter = ChannelLayout(1 << iota)
	ChFrontLeft
	ChFrontRight
	ChBackCenter
	ChBackLeft
	ChBackRight
	ChSideLeft
	ChSideRight
	ChLowFreq
	ChTopFrontLeft
	ChTopFrontRight
	ChTopBackLeft
	ChTopBackRight
	ChTopSideLeft
	ChTopSideRight
	ChNr
)

// Named layouts used by the Audio Vivid channel configurations.
const (
	ChMono      = ChFrontCenter
	ChStereo    = ChFrontLeft | ChFrontRight
	Ch4Point0   = ChStereo | ChFrontCenter | ChBackCenter
	Ch5Point1   = ChStereo | ChFrontCenter | ChLowFreq | ChSideLeft | ChSideRight
	Ch7Point1   = Ch5Point1 | ChBackLeft | ChBackRight
	Ch5Point1P2 = Ch5Point1 | ChTopSideLeft | ChTopSideRight
	Ch7Point1P2 = Ch7Point1 | ChTopSideLeft | ChTopSideRight
	ChTopQuad   = ChTopFrontLeft | ChTopFrontRight | ChTopBackLeft | ChTopBackRight
	Ch5Point1P4 = Ch5Point1 | ChTopQuad
	Ch7Point1P4 = Ch7Point1 | ChTopQuad
)

// Count returns the number of channels in the ChannelLayout.
func (ch ChannelLayout) Count() (n int) {
	for ch != 0 {
		n++
		ch = (ch - 1) & ch
	}
	return
}
