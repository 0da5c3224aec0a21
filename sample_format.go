package vivid

// SampleFormat is the layout of decoded PCM samples. Samples are
// interleaved; 24-bit audio is carried in 32-bit words.
type SampleFormat uint8

// Unsigned 8-bit, signed 16-bit and signed 32-bit samples.
const (
	U8 SampleFormat = iota + 1
	S16
	S32
)

var sampleFormats = [...]struct {
	name string
	size int
}{
	U8:  {"U8", 1},
	S16: {"S16", 2}, //nolint:mnd
	S32: {"S32", 4}, //nolint:mnd
}

func (sf SampleFormat) valid() bool {
	return sf != 0 && int(sf) < len(sampleFormats)
}

// BytesPerSample returns 0 for an unknown format.
func (sf SampleFormat) BytesPerSample() int {
	if !sf.valid() {
		return 0
	}
	return sampleFormats[sf].size
}

func (sf SampleFormat) String() string {
	if !sf.valid() {
		return "?"
	}
	return sampleFormats[sf].name
}
