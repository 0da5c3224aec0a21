// Package sdp writes and reads the subset of SDP needed to announce an RTP
// audio stream.
package sdp

// Session holds session-level fields.
type Session struct {
	Name    string // s=, defaults to "vivid"
	Address string // IPv4 address for c=, defaults to 0.0.0.0
	URI     string
}

// Media describes one m= section.
type Media struct {
	AVType      string // "audio" unless set
	Port        int
	PayloadType int
	Encoding    string // rtpmap encoding name
	ClockRate   int
	Channels    int
	Config      []byte // fmtp config, hex encoded on the wire
	Control     string
}
