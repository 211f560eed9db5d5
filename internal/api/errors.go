package api

import (
	"errors"

	"github.com/samcharles93/camkit/internal/document"
	"github.com/samcharles93/camkit/pkg/canm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// errorType maps codec and document errors onto API error types.
func errorType(err error) string {
	switch {
	case errors.Is(err, canm.ErrFormat), errors.Is(err, canm.ErrTruncated):
		return "invalid_file"
	case errors.Is(err, document.ErrInvalidDocument), errors.Is(err, ErrInvalidRequest):
		return "invalid_request_error"
	default:
		return "server_error"
	}
}

// errorCode narrows invalid_file errors to the failing check.
func errorCode(err error) string {
	switch {
	case errors.Is(err, canm.ErrInvalidMagic):
		return "bad_magic"
	case errors.Is(err, canm.ErrInvalidFrameType):
		return "bad_frame_type"
	case errors.Is(err, canm.ErrTruncated):
		return "truncated"
	default:
		return ""
	}
}
