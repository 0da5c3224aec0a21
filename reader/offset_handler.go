package reader

import (
	"time"

	"github.com/ugparu/vivid"
)

// offsetHandler keeps timestamps increasing across source restarts.
type offsetHandler struct {
	offset time.Duration // added to every packet of the current pass
	end    time.Duration // end of the latest packet seen
}

func (oh *offsetHandler) apply(pkt vivid.Packet) {
	ts := pkt.Timestamp() + oh.offset
	pkt.SetTimestamp(ts)
	if end := ts + pkt.Duration(); end > oh.end {
		oh.end = end
	}
}

// rewind makes the next pass start where the previous one ended.
func (oh *offsetHandler) rewind() {
	oh.offset = oh.end
}
