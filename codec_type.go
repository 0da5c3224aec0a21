package vivid

// CodecType identifies a codec. The lowest bit marks audio codecs.
type CodecType uint32

const audioBit CodecType = 1

// AV3A is the Audio Vivid codec (AVS3 part 3 audio), keyed by its fourcc.
const AV3A = CodecType(0x41563341)<<1 | audioBit //nolint:mnd

func (ct CodecType) String() string {
	if ct == AV3A {
		return "AV3A"
	}
	return "UNKNOWN"
}

// IsAudio reports whether ct is an audio codec.
func (ct CodecType) IsAudio() bool {
	return ct&audioBit != 0
}
