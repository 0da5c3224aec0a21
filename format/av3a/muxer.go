package av3a

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/utils"
	"github.com/ugparu/vivid/utils/logger"
)

// Muxer writes AV3A frames back to back, producing a raw stream that Demuxer
// can read.
type Muxer struct {
	w        *bufio.Writer
	par      vivid.AudioCodecParameters
	frames   int64
	written  int64
	writeErr error
}

// NewMuxer creates a Muxer writing to w.
func NewMuxer(w io.Writer) *Muxer {
	return &Muxer{w: bufio.NewWriterSize(w, readBufferSize)}
}

func (mux *Muxer) String() string {
	return fmt.Sprintf("AV3A_MUXER frames=%d", mux.frames)
}

// Mux accepts a single AV3A audio stream. Nothing is written: the raw format
// has no file header.
func (mux *Muxer) Mux(streams vivid.CodecParametersPair) error {
	if streams.AudioCodecParameters == nil {
		return utils.NoCodecDataError{}
	}
	if streams.Type() != vivid.AV3A {
		return fmt.Errorf("av3a: codec type=%v is not supported", streams.Type())
	}
	mux.par = streams.AudioCodecParameters
	return nil
}

// WritePacket writes the frame bytes of pkt verbatim.
func (mux *Muxer) WritePacket(pkt vivid.Packet) error {
	if pkt == nil {
		return utils.NilPacketError{}
	}
	if mux.par == nil {
		return utils.NoCodecDataError{}
	}
	if pkt.StreamIndex() != mux.par.StreamIndex() {
		return fmt.Errorf("av3a: packet stream index %d, muxing stream %d", pkt.StreamIndex(), mux.par.StreamIndex())
	}
	n, err := mux.w.Write(pkt.Data())
	mux.written += int64(n)
	if err != nil {
		mux.writeErr = err
		return err
	}
	mux.frames++
	return nil
}

// Flush writes any buffered frames to the underlying writer.
func (mux *Muxer) Flush() error {
	if err := mux.w.Flush(); err != nil {
		mux.writeErr = err
		return err
	}
	return mux.writeErr
}

// Close flushes buffered frames. The underlying writer is left open.
func (mux *Muxer) Close() {
	if err := mux.Flush(); err != nil {
		logger.Errorf(mux, "flush after %d bytes: %v", mux.written, err)
	}
}
