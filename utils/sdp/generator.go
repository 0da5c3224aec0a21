package sdp

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Generate renders sess and medias. Lines end in CRLF.
func Generate(sess Session, medias []Media) string {
	name := sess.Name
	if name == "" {
		name = "vivid"
	}
	addr := sess.Address
	if addr == "" {
		addr = "0.0.0.0"
	}

	lines := make([]string, 0, 8+4*len(medias)) //nolint:mnd
	lines = append(lines,
		"v=0",
		"o=- 0 0 IN IP4 "+addr,
		"s="+name,
		"c=IN IP4 "+addr,
		"t=0 0",
	)
	if sess.URI != "" {
		lines = append(lines, "u="+sess.URI)
	}

	for _, m := range medias {
		lines = append(lines, marshalMedia(m)...)
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

func marshalMedia(m Media) []string {
	av := m.AVType
	if av == "" {
		av = "audio"
	}

	lines := []string{fmt.Sprintf("m=%s %d RTP/AVP %d", av, m.Port, m.PayloadType)}
	if m.Encoding != "" {
		rtpmap := fmt.Sprintf("a=rtpmap:%d %s/%d", m.PayloadType, m.Encoding, m.ClockRate)
		if m.Channels > 0 {
			rtpmap += fmt.Sprintf("/%d", m.Channels)
		}
		lines = append(lines, rtpmap)
	}
	if len(m.Config) > 0 {
		lines = append(lines, fmt.Sprintf("a=fmtp:%d config=%s", m.PayloadType, strings.ToUpper(hex.EncodeToString(m.Config))))
	}
	if m.Control != "" {
		lines = append(lines, "a=control:"+m.Control)
	}
	return lines
}
