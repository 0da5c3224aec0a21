package rtp

import (
	"fmt"
	"io"
	"time"

	"github.com/pion/rtp"
	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/codec/av3a"
	"github.com/ugparu/vivid/utils/buffer"
	"github.com/ugparu/vivid/utils/logger"
)

// Demuxer reads AV3A frames from an RTP stream. RTCP packets sharing the
// transport are skipped. A frame that fails validation is reported once and
// reading may continue with the next frame.
type Demuxer struct {
	r       io.Reader
	framing Framing
	url     string

	dec     *Decoder
	par     *av3a.CodecParameters
	pending *av3a.Packet
	buf     []byte

	startTime time.Time
	haveTS    bool
	lastTS    uint32
	elapsed   int64 // RTP clock ticks since the first frame
}

// NewDemuxer creates a Demuxer reading packets from r. url only labels the
// packets.
func NewDemuxer(r io.Reader, framing Framing, url string) *Demuxer {
	return &Demuxer{
		r:       r,
		framing: framing,
		url:     url,
		dec:     NewDecoder(),
		buf:     make([]byte, maxPacketSize),
	}
}

func (d *Demuxer) String() string {
	return fmt.Sprintf("AV3A_RTP_DEMUXER url=%s", d.url)
}

// Demux reads until the first complete frame and returns the stream
// parameters taken from its header. The frame is returned by the next
// ReadPacket call.
func (d *Demuxer) Demux() (params vivid.CodecParametersPair, err error) {
	if d.par == nil {
		if d.pending, err = d.readFrame(); err != nil {
			return
		}
	}
	params.URL = d.url
	params.AudioCodecParameters = d.par
	return params, nil
}

// ReadPacket returns the next complete frame.
func (d *Demuxer) ReadPacket() (vivid.Packet, error) {
	if d.pending != nil {
		pkt := d.pending
		d.pending = nil
		return pkt, nil
	}
	pkt, err := d.readFrame()
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

func (d *Demuxer) readFrame() (*av3a.Packet, error) {
	for {
		raw, _, err := readPacket(d.r, d.framing, d.buf)
		if err != nil {
			return nil, err
		}
		if isRTCP(raw) {
			continue
		}

		var p rtp.Packet
		if err = p.Unmarshal(raw); err != nil {
			logger.Warningf(d, "malformed RTP packet: %v", err)
			continue
		}

		frame, err := d.dec.Decode(&p)
		if err != nil {
			return nil, err
		}
		if frame == nil {
			continue
		}
		return d.newPacket(frame, p.Timestamp)
	}
}

func (d *Demuxer) newPacket(frame []byte, rtpTS uint32) (*av3a.Packet, error) {
	hdr, err := av3a.DecodeHeader(frame)
	if err != nil {
		return nil, err
	}
	if d.par == nil {
		d.par = av3a.NewCodecParameters(hdr)
		d.startTime = time.Now()
		logger.Debugf(d, "stream opened: %s", hdr.String())
	} else if d.par.Header != hdr {
		idx := d.par.StreamIndex()
		d.par = av3a.NewCodecParameters(hdr)
		d.par.SetStreamIndex(idx)
		logger.Debugf(d, "parameters changed: %s", hdr.String())
	}

	if d.haveTS {
		d.elapsed += int64(int32(rtpTS - d.lastTS)) //nolint:gosec // signed distance on the RTP clock
	}
	d.haveTS = true
	d.lastTS = rtpTS

	clockRate := int64(d.par.Header.SamplingRate)
	ts := time.Duration(d.elapsed/clockRate)*time.Second +
		time.Duration(d.elapsed%clockRate)*time.Second/time.Duration(clockRate)

	pkt := av3a.NewPacket(buffer.From(frame), ts, d.url, d.startTime.Add(ts), d.par,
		av3a.FrameDuration(hdr.SamplingRate))
	logger.Tracef(d, "frame ts=%v size=%d", ts, len(frame))
	return pkt, nil
}

// Close drops a frame read by Demux but never returned.
func (d *Demuxer) Close() {
	if d.pending != nil {
		d.pending.Close()
		d.pending = nil
	}
}
