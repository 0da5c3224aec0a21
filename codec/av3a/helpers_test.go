package av3a

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/vivid/utils/bits"
)

// field is a raw bitstream field: value and width.
type field struct {
	val uint
	n   int
}

// rawHeader writes fields verbatim and pads the result to HeaderSize.
func rawHeader(t testing.TB, fields ...field) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := &bits.Writer{W: buf}
	for _, f := range fields {
		require.NoError(t, w.WriteBits(f.val, f.n))
	}
	require.NoError(t, w.FlushBits())
	out := buf.Bytes()
	require.LessOrEqual(t, len(out), HeaderSize)
	return append(out, make([]byte, HeaderSize-len(out))...)
}

// commonFields returns the fields up to and including the first checksum.
func commonFields(profile, srIdx uint) []field {
	return []field{
		{SyncWord, 12}, {LossyCodecID, 4}, {0, 1}, {uint(NNTypeBaseline), 3},
		{profile, 3}, {srIdx, 4}, {0, 8},
	}
}

// channelHeader builds a profile 0 header without validating its values.
func channelHeader(t testing.TB, srIdx, cfg, resIdx, brIdx uint) []byte {
	t.Helper()
	f := commonFields(uint(ProfileChannelBased), srIdx)
	f = append(f, field{cfg, 7}, field{resIdx, 2}, field{brIdx, 4}, field{0, 8})
	return rawHeader(t, f...)
}

func mustEncode(t testing.TB, hdr Header) []byte {
	t.Helper()
	b, err := EncodeHeader(hdr)
	require.NoError(t, err)
	require.Len(t, b, HeaderSize)
	return b
}

// frame returns a complete frame for hdr: header followed by filler bytes.
func frame(t testing.TB, hdr Header) []byte {
	t.Helper()
	h := mustEncode(t, hdr)
	decoded, err := DecodeHeader(h)
	require.NoError(t, err)
	out := make([]byte, decoded.FrameSize())
	copy(out, h)
	for i := HeaderSize; i < len(out); i++ {
		out[i] = byte(i)
	}
	return out
}
