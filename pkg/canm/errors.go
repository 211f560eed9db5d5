package canm

import (
	"errors"
	"fmt"
)

var (
	ErrFormat    = errors.New("canm: invalid format")
	ErrTruncated = errors.New("canm: truncated input")
	ErrIO        = errors.New("canm: i/o failure")

	ErrInvalidMagic     = fmt.Errorf("%w: bad magic", ErrFormat)
	ErrInvalidFrameType = fmt.Errorf("%w: unknown frame type", ErrFormat)
)

func trackError(s TrackSelection, err error) error {
	return fmt.Errorf("track %s: %w", s, err)
}
