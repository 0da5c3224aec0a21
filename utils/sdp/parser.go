package sdp

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a session description. Unknown lines and attributes are
// skipped. Only a malformed m= line or fmtp config is an error.
func Parse(content string) (sess Session, medias []Media, err error) {
	var media *Media

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch key {
		case "s":
			sess.Name = val
		case "u":
			sess.URI = val
		case "c":
			if f := strings.Fields(val); len(f) == 3 && media == nil { //nolint:mnd
				sess.Address = f[2]
			}
		case "m":
			var m Media
			if m, err = parseMediaLine(val); err != nil {
				return sess, nil, err
			}
			medias = append(medias, m)
			media = &medias[len(medias)-1]
		case "a":
			if media != nil {
				if err = parseAttribute(media, val); err != nil {
					return sess, nil, err
				}
			}
		}
	}
	return sess, medias, nil
}

// parseMediaLine reads "<media> <port> <proto> <fmt>".
func parseMediaLine(val string) (m Media, err error) {
	f := strings.Fields(val)
	if len(f) < 4 { //nolint:mnd
		return m, fmt.Errorf("sdp: malformed media line %q", val)
	}
	m.AVType = f[0]
	if m.Port, err = strconv.Atoi(f[1]); err != nil {
		return m, fmt.Errorf("sdp: media port: %w", err)
	}
	if m.PayloadType, err = strconv.Atoi(f[3]); err != nil {
		return m, fmt.Errorf("sdp: media format: %w", err)
	}
	return m, nil
}

func parseAttribute(m *Media, val string) error {
	name, rest, _ := strings.Cut(val, ":")
	switch name {
	case "control":
		m.Control = rest
	case "rtpmap":
		// <pt> <encoding>/<clock>[/<channels>]
		pt, enc, ok := strings.Cut(rest, " ")
		if !ok || !m.matches(pt) {
			return nil
		}
		parts := strings.Split(enc, "/")
		m.Encoding = parts[0]
		if len(parts) > 1 {
			m.ClockRate, _ = strconv.Atoi(parts[1])
		}
		if len(parts) > 2 { //nolint:mnd
			m.Channels, _ = strconv.Atoi(parts[2])
		}
	case "fmtp":
		pt, params, ok := strings.Cut(rest, " ")
		if !ok || !m.matches(pt) {
			return nil
		}
		for _, p := range strings.Split(params, ";") {
			k, v, _ := strings.Cut(strings.TrimSpace(p), "=")
			if k != "config" {
				continue
			}
			cfg, err := hex.DecodeString(v)
			if err != nil {
				return fmt.Errorf("sdp: fmtp config: %w", err)
			}
			m.Config = cfg
		}
	}
	return nil
}

func (m *Media) matches(pt string) bool {
	n, err := strconv.Atoi(pt)
	return err == nil && n == m.PayloadType
}
