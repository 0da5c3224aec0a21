package av3a

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/codec/av3a"
	"github.com/ugparu/vivid/utils/buffer"
	"github.com/ugparu/vivid/utils/logger"
)

const readBufferSize = 64 * 1024

// Demuxer splits a raw AV3A stream into frames. Every frame is validated with
// the full header grammar; a malformed header ends the stream, no attempt is
// made to resynchronize.
type Demuxer struct {
	url    string
	src    io.Reader
	closer io.Closer
	r      *bufio.Reader

	par       *av3a.CodecParameters
	startTime time.Time
	pos       int64 // byte offset of the next frame

	tsBase time.Duration // timestamp of the first frame at the current rate
	frames int64         // frames read since tsBase
}

// NewDemuxer creates a Demuxer reading the file at url. The file is opened by
// Demux.
func NewDemuxer(url string) *Demuxer {
	return &Demuxer{url: url}
}

// NewReaderDemuxer creates a Demuxer over r. url only labels the packets.
// If r is an io.Closer it is closed by Close.
func NewReaderDemuxer(r io.Reader, url string) *Demuxer {
	dmx := &Demuxer{url: url, src: r}
	if c, ok := r.(io.Closer); ok {
		dmx.closer = c
	}
	return dmx
}

func (dmx *Demuxer) String() string {
	return fmt.Sprintf("AV3A_DEMUXER url=%s", dmx.url)
}

// Demux reads the first frame header and returns the stream parameters. The
// header is not consumed; it is returned again as part of the first packet.
func (dmx *Demuxer) Demux() (params vivid.CodecParametersPair, err error) {
	if err = dmx.open(); err != nil {
		return
	}
	params.URL = dmx.url
	params.AudioCodecParameters = dmx.par
	return params, nil
}

func (dmx *Demuxer) open() (err error) {
	if dmx.par != nil {
		return nil
	}
	if dmx.src == nil {
		var f *os.File
		if f, err = os.Open(dmx.url); err != nil {
			return
		}
		dmx.src, dmx.closer = f, f
	}
	if dmx.r == nil {
		dmx.r = bufio.NewReaderSize(dmx.src, readBufferSize)
	}

	head, err := dmx.r.Peek(av3a.HeaderSize)
	if len(head) < av3a.HeaderSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return fmt.Errorf("%w: stream holds %d of %d header bytes", av3a.ErrTruncated, len(head), av3a.HeaderSize)
	}

	hdr, err := av3a.DecodeHeader(head)
	if err != nil {
		return err
	}
	dmx.par = av3a.NewCodecParameters(hdr)
	dmx.startTime = time.Now()
	logger.Debugf(dmx, "stream opened: %s frame=%dB", hdr.String(), hdr.FrameSize())
	return nil
}

// CodecParameters returns the current stream parameters, nil before Demux.
func (dmx *Demuxer) CodecParameters() *av3a.CodecParameters {
	return dmx.par
}

// ReadPacket returns the next frame, header included. It returns io.EOF when
// the stream ends on a frame boundary, an av3a.ErrTruncated error when it ends
// inside a frame and an av3a.ErrInvalidData error on a malformed header.
func (dmx *Demuxer) ReadPacket() (pkt vivid.Packet, err error) {
	if err = dmx.open(); err != nil {
		return
	}

	head, err := dmx.r.Peek(av3a.HeaderSize)
	if len(head) < av3a.HeaderSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if len(head) == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: offset %d: %d of %d header bytes",
			av3a.ErrTruncated, dmx.pos, len(head), av3a.HeaderSize)
	}

	hdr, framelen, err := av3a.ParseFrameHeader(head)
	if err != nil {
		return nil, fmt.Errorf("offset %d: %w", dmx.pos, err)
	}
	dmx.refresh(hdr)

	buf := buffer.Get(framelen)
	if n, rerr := io.ReadFull(dmx.r, buf.Data()); rerr != nil {
		buf.Release()
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: offset %d: %d of %d frame bytes",
				av3a.ErrTruncated, dmx.pos, n, framelen)
		}
		return nil, rerr
	}

	ts := dmx.tsBase + av3a.FrameTimestamp(dmx.frames, hdr.SamplingRate)
	dur := av3a.FrameDuration(hdr.SamplingRate)
	p := av3a.NewPacket(buf, ts, dmx.url, dmx.startTime.Add(ts), dmx.par, dur)
	p.Pos = dmx.pos
	logger.Tracef(dmx, "frame %d pos=%d size=%d ts=%v", dmx.frames, dmx.pos, framelen, ts)

	dmx.pos += int64(framelen)
	dmx.frames++
	return p, nil
}

// refresh replaces the stream parameters when a frame header differs from the
// current one. A sampling rate change restarts the frame count so that
// timestamps stay continuous.
func (dmx *Demuxer) refresh(hdr av3a.Header) {
	if dmx.par.Header == hdr {
		return
	}
	if hdr.SamplingRate != dmx.par.Header.SamplingRate {
		dmx.tsBase += av3a.FrameTimestamp(dmx.frames, dmx.par.Header.SamplingRate)
		dmx.frames = 0
	}
	idx := dmx.par.StreamIndex()
	dmx.par = av3a.NewCodecParameters(hdr)
	dmx.par.SetStreamIndex(idx)
	logger.Debugf(dmx, "parameters changed at offset %d: %s", dmx.pos, hdr.String())
}

// Close releases the underlying reader.
func (dmx *Demuxer) Close() {
	if dmx.closer != nil {
		if err := dmx.closer.Close(); err != nil {
			logger.Warningf(dmx, "close: %v", err)
		}
		dmx.closer = nil
	}
}
