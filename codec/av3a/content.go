package av3a

// Content is the profile-specific part of a frame header. It is one of
// ChannelBased, ObjectBased, ChannelObject or Ambisonic.
type Content interface {
	ContentType() ContentType
	profile() Profile
}

// ChannelBased is loudspeaker content (coding profile 0).
type ChannelBased struct {
	Config       ChannelConfig
	BitrateIndex uint
}

// ObjectBased is pure object content (coding profile 1, soundbed type 0).
// Every object is coded at a mono ladder bitrate.
type ObjectBased struct {
	Objects            int // 1..128
	ObjectBitrateIndex uint
}

// ChannelObject is a loudspeaker soundbed plus objects (coding profile 1,
// soundbed type 1).
type ChannelObject struct {
	Config             ChannelConfig
	BedBitrateIndex    uint
	Objects            int // 1..128
	ObjectBitrateIndex uint
}

// Ambisonic is scene-based content (coding profile 2).
type Ambisonic struct {
	Order        int // 1..3
	BitrateIndex uint
}

func (ChannelBased) ContentType() ContentType  { return ContentChannelBased }
func (ObjectBased) ContentType() ContentType   { return ContentObjectBased }
func (ChannelObject) ContentType() ContentType { return ContentChannelObject }
func (Ambisonic) ContentType() ContentType     { return ContentAmbisonic }

func (ChannelBased) profile() Profile  { return ProfileChannelBased }
func (ObjectBased) profile() Profile   { return ProfileObjectContent }
func (ChannelObject) profile() Profile { return ProfileObjectContent }
func (Ambisonic) profile() Profile     { return ProfileAmbisonic }

const (
	soundbedObjectsOnly = 0
	soundbedWithObjects = 1

	maxObjects = 1 << 7
)

// objectBitrate is the bitrate of n objects each coded at the mono ladder
// entry idx. Objects always index the mono ladder whatever their layout.
func objectBitrate(idx uint, n int) (int64, bool) {
	br, ok := ChannelConfigMono.Bitrate(idx)
	if !ok {
		return 0, false
	}
	return br * int64(n), true
}
