package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/vivid"
	"github.com/ugparu/vivid/codec/av3a"
	"github.com/ugparu/vivid/utils/lifecycle"
)

var stereo48k = av3a.Header{SamplingRateIndex: 2, ResolutionIndex: 1,
	Content: av3a.ChannelBased{Config: av3a.ChannelConfigStereo, BitrateIndex: 6}}

func writeFile(t *testing.T, frames int) string {
	t.Helper()
	head, err := av3a.EncodeHeader(stereo48k)
	require.NoError(t, err)
	hdr, err := av3a.DecodeHeader(head)
	require.NoError(t, err)

	var data []byte
	for i := range frames {
		frame := make([]byte, hdr.FrameSize())
		copy(frame, head)
		frame[len(frame)-1] = byte(i)
		data = append(data, frame...)
	}
	path := filepath.Join(t.TempDir(), "in.av3a")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func collect(t *testing.T, rdr *Reader, limit int) (pkts []vivid.Packet) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for limit <= 0 || len(pkts) < limit {
		select {
		case pkt, ok := <-rdr.Packets():
			if !ok {
				return pkts
			}
			pkts = append(pkts, pkt)
		case <-timeout:
			t.Fatal("timed out waiting for packets")
		}
	}
	return pkts
}

func TestReaderFile(t *testing.T) {
	t.Parallel()

	rdr := NewFile(writeFile(t, 5), WithChanSize(2))
	params, err := rdr.Read()
	require.NoError(t, err)
	require.NotNil(t, params.AudioCodecParameters)
	require.Equal(t, uint64(48000), params.SampleRate())

	pkts := collect(t, rdr, 0)
	require.Len(t, pkts, 5)
	for i, pkt := range pkts {
		require.Equal(t, av3a.FrameTimestamp(int64(i), 48000), pkt.Timestamp())
		require.Equal(t, byte(i), pkt.Data()[len(pkt.Data())-1])
		pkt.Close()
	}
	require.NoError(t, rdr.Err())
	require.Equal(t, 1, rdr.Passes())
	rdr.Close()

	_, err = rdr.Read()
	require.ErrorIs(t, err, lifecycle.ErrClosed)
}

func TestReaderLoop(t *testing.T) {
	t.Parallel()

	rdr := NewFile(writeFile(t, 3), WithLoop())
	_, err := rdr.Read()
	require.NoError(t, err)

	pkts := collect(t, rdr, 7)
	rdr.Close()

	step := av3a.FrameDuration(48000)
	require.Equal(t, av3a.FrameTimestamp(2, 48000)+step, pkts[3].Timestamp())
	for i, pkt := range pkts {
		if i > 0 {
			gap := pkt.Timestamp() - pkts[i-1].Timestamp()
			require.GreaterOrEqual(t, gap, step, "packet %d", i)
			require.LessOrEqual(t, gap, step+time.Nanosecond, "packet %d", i)
		}
		require.Equal(t, byte(i%3), pkt.Data()[len(pkt.Data())-1])
	}
	for _, pkt := range pkts {
		pkt.Close()
	}

	// Drain whatever was buffered before the channel closed.
	for pkt := range rdr.Packets() {
		pkt.Close()
	}
	require.GreaterOrEqual(t, rdr.Passes(), 3)
}

func TestReaderOpenError(t *testing.T) {
	t.Parallel()

	rdr := NewFile(filepath.Join(t.TempDir(), "missing.av3a"))
	_, err := rdr.Read()
	require.Error(t, err)

	_, ok := <-rdr.Packets()
	require.False(t, ok)
	rdr.Close()
}

func TestReaderStreamError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, 2)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-3], 0o600))

	rdr := NewFile(path)
	_, err = rdr.Read()
	require.NoError(t, err)

	pkts := collect(t, rdr, 0)
	require.Len(t, pkts, 1)
	pkts[0].Close()
	require.ErrorIs(t, rdr.Err(), av3a.ErrTruncated)
	rdr.Close()
}

func TestReaderCloseWhileBlocked(t *testing.T) {
	t.Parallel()

	rdr := NewFile(writeFile(t, 10), WithChanSize(0))
	_, err := rdr.Read()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		rdr.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("close blocked")
	}
	_, ok := <-rdr.Packets()
	require.False(t, ok)
}

func TestReaderCustomSource(t *testing.T) {
	t.Parallel()

	errSource := errors.New("source")
	opened := 0
	rdr := New("custom", func() vivid.Demuxer {
		opened++
		return failingDemuxer{err: errSource}
	})
	_, err := rdr.Read()
	require.ErrorIs(t, err, errSource)
	require.Equal(t, 1, opened)
	rdr.Close()
}

type failingDemuxer struct{ err error }

func (d failingDemuxer) Demux() (vivid.CodecParametersPair, error) {
	return vivid.CodecParametersPair{}, d.err
}

func (d failingDemuxer) ReadPacket() (vivid.Packet, error) { return nil, d.err }

func (failingDemuxer) Close() {}
