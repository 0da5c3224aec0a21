package av3a

import (
	"math"
	"time"
)

const (
	bitsPerByte = 8

	// quirkSamplingRate is the only rate whose bit count is floored before
	// the bytes are rounded up. Existing encoders frame 44.1 kHz streams
	// this way.
	quirkSamplingRate = 44100
)

// FrameSize returns the size in bytes of a frame coded at totalBitrate bits
// per second and samplingRate Hz. The size includes the header bytes, so the
// next header starts FrameSize bytes after the current one.
//
// Arithmetic is carried out in single precision, which is what produced the
// framing of existing streams.
func FrameSize(totalBitrate int64, samplingRate int) int {
	if totalBitrate <= 0 || samplingRate <= 0 {
		return 0
	}

	frameBits := float32(float32(totalBitrate)/float32(samplingRate)) * FrameSamples

	if samplingRate == quirkSamplingRate {
		wholeBits := int(math.Floor(float64(frameBits)))
		return int(math.Ceil(float64(float32(wholeBits) / bitsPerByte)))
	}
	return int(math.Ceil(float64(float32(frameBits / bitsPerByte))))
}

// FrameDuration returns the playback duration of one frame.
func FrameDuration(samplingRate int) time.Duration {
	if samplingRate <= 0 {
		return 0
	}
	return FrameSamples * time.Second / time.Duration(samplingRate)
}

// FrameTimestamp returns the presentation time of frame n of a stream
// starting at zero. It is computed from n directly so that rounding does not
// accumulate.
func FrameTimestamp(n int64, samplingRate int) time.Duration {
	if samplingRate <= 0 {
		return 0
	}
	samples := n * FrameSamples
	sr := int64(samplingRate)
	return time.Duration(samples/sr)*time.Second + time.Duration(samples%sr)*time.Second/time.Duration(sr)
}
