package av3a

import "errors"

var (
	// ErrInvalidData reports a malformed frame header: sync mismatch,
	// unsupported codec or profile, reserved flag, or an out-of-range index.
	ErrInvalidData = errors.New("av3a: invalid data")

	// ErrTruncated reports that fewer bytes were available than a header or
	// frame requires.
	ErrTruncated = errors.New("av3a: truncated data")
)
