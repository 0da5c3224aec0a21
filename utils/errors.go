// Package utils holds errors shared by the muxers.
package utils

// NoCodecDataError is returned when a muxer is used before it was given
// stream parameters, or was given none.
type NoCodecDataError struct{}

func (NoCodecDataError) Error() string {
	return "no codec data"
}

// NilPacketError is returned when a nil packet is written.
type NilPacketError struct{}

func (NilPacketError) Error() string {
	return "nil packet"
}
