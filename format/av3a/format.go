// Package av3a reads and writes raw Audio Vivid elementary streams: a plain
// concatenation of AV3A frames with no container around them.
package av3a

import (
	"path/filepath"
	"strings"

	"github.com/ugparu/vivid/codec/av3a"
)

// Format identity.
const (
	FormatName     = "av3a"
	FormatLongName = "Audio Vivid"
	Extension      = "av3a"
	MimeType       = "audio/av3a"
)

// ProbeScoreMax is returned by Probe for a certain match.
const ProbeScoreMax = 100

// Probe scores how likely buf, the start of the file named filename, is a raw
// AV3A stream. Only the sync word and the file extension are examined.
func Probe(buf []byte, filename string) int {
	if len(buf) < 2 { //nolint:mnd
		return 0
	}
	sync := (uint16(buf[0])<<8 | uint16(buf[1])) >> 4 //nolint:mnd
	if sync != av3a.SyncWord || !matchExtension(filename) {
		return 0
	}
	return ProbeScoreMax
}

func matchExtension(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.EqualFold(ext, Extension)
}
