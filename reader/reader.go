// Package reader pulls packets from a demuxer in the background and
// delivers them on a channel.
package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/format/av3a"
	"github.com/ugparu/vivid/utils/lifecycle"
	"github.com/ugparu/vivid/utils/logger"
)

const defaultChanSize = 16

// Option configures a Reader.
type Option func(*Reader)

// WithLoop restarts the source when it ends. Timestamps continue from the
// end of the previous pass.
func WithLoop() Option {
	return func(rdr *Reader) { rdr.loop = true }
}

// WithChanSize sets the capacity of the packet channel.
func WithChanSize(n int) Option {
	return func(rdr *Reader) {
		if n >= 0 {
			rdr.chanSize = n
		}
	}
}

// Reader runs a demuxer on its own goroutine.
type Reader struct {
	runner     *lifecycle.Runner[*Reader]
	newDemuxer func() vivid.Demuxer
	dmx        vivid.Demuxer
	params     vivid.CodecParametersPair
	packets    chan vivid.Packet
	offset     offsetHandler
	name       string
	chanSize   int
	loop       bool
	passes     int
	err        error
}

// New creates a reader over demuxers produced by newDemuxer. A fresh
// demuxer is requested for every pass over the source.
func New(name string, newDemuxer func() vivid.Demuxer, opts ...Option) *Reader {
	rdr := &Reader{
		newDemuxer: newDemuxer,
		name:       name,
		chanSize:   defaultChanSize,
	}
	for _, opt := range opts {
		opt(rdr)
	}
	rdr.packets = make(chan vivid.Packet, rdr.chanSize)
	rdr.runner = lifecycle.NewRunner(rdr)
	return rdr
}

// NewFile creates a reader over a raw .av3a file.
func NewFile(path string, opts ...Option) *Reader {
	return New(path, func() vivid.Demuxer { return av3a.NewDemuxer(path) }, opts...)
}

func (rdr *Reader) String() string {
	return fmt.Sprintf("READER name=%s", rdr.name)
}

// Read opens the source and starts delivering packets. The returned
// parameters are those of the first frame.
func (rdr *Reader) Read() (vivid.CodecParametersPair, error) {
	err := rdr.runner.Start(func(rdr *Reader) error { return rdr.open() })
	return rdr.params, err
}

// Packets is closed when the source ends, fails or the reader is closed.
func (rdr *Reader) Packets() <-chan vivid.Packet {
	return rdr.packets
}

// Err returns the error that stopped the reader. It is nil after a clean end
// of input and is only meaningful once Packets has been closed.
func (rdr *Reader) Err() error {
	return rdr.err
}

// Passes reports how many times the source has been opened.
// Like Err, read it after Packets has been closed.
func (rdr *Reader) Passes() int {
	return rdr.passes
}

// Close stops the reader and waits for the demuxer to be released.
// Packets still buffered in the channel stay readable.
func (rdr *Reader) Close() {
	rdr.runner.Close()
}

func (rdr *Reader) open() error {
	dmx := rdr.newDemuxer()
	params, err := dmx.Demux()
	if err != nil {
		dmx.Close()
		return err
	}
	if rdr.passes == 0 {
		rdr.params = params
	}
	rdr.dmx = dmx
	rdr.passes++
	logger.Debugf(rdr, "Opened pass %d", rdr.passes)
	return nil
}

// Step moves one packet from the demuxer to the channel.
func (rdr *Reader) Step(stop <-chan struct{}) error {
	pkt, err := rdr.dmx.ReadPacket()
	switch {
	case errors.Is(err, io.EOF):
		if !rdr.loop {
			logger.Debug(rdr, "End of input")
			return lifecycle.ErrStop
		}
		rdr.dmx.Close()
		rdr.dmx = nil
		rdr.offset.rewind()
		if err = rdr.open(); err != nil {
			rdr.err = fmt.Errorf("reopen %s: %w", rdr.name, err)
			return rdr.err
		}
		return nil
	case err != nil:
		rdr.err = err
		return err
	}

	rdr.offset.apply(pkt)
	select {
	case rdr.packets <- pkt:
		return nil
	case <-stop:
		pkt.Close()
		return lifecycle.ErrStop
	}
}

// Release closes the demuxer and the packet channel.
func (rdr *Reader) Release() {
	if rdr.dmx != nil {
		rdr.dmx.Close()
		rdr.dmx = nil
	}
	close(rdr.packets)
}

var _ vivid.Reader = (*Reader)(nil)
