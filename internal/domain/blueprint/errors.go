package blueprint

import (
	"errors"
)

// Causes of a rejected blueprint. Match them with errors.Is.
var (
	ErrHeader       = errors.New("header error")
	ErrBase64       = errors.New("base64 error")
	ErrTruncated    = errors.New("truncated data")
	ErrVersion      = errors.New("unexpected version number")
	ErrEmpty        = errors.New("blueprint has zero area")
	ErrBlockSize    = errors.New("invalid layer block size")
	ErrDecompress   = errors.New("zstd error")
	ErrImageSize    = errors.New("unexpected image size")
	ErrNoLogicLayer = errors.New("blueprint contains no logic layer")
)

// causeCodes gives every cause a short stable label for metrics and logs.
var causeCodes = map[error]string{
	ErrHeader:       "header",
	ErrBase64:       "base64",
	ErrTruncated:    "truncated",
	ErrVersion:      "version",
	ErrEmpty:        "empty",
	ErrBlockSize:    "block_size",
	ErrDecompress:   "decompress",
	ErrImageSize:    "image_size",
	ErrNoLogicLayer: "no_logic_layer",
}

// Error reports an invalid blueprint. The message is meant to be shown to
// the user verbatim.
type Error struct {
	Cause  error
	Detail string
}

func (e *Error) Error() string {
	msg := "Invalid vcb blueprint - " + e.Cause.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the short label of the cause.
func (e *Error) Code() string {
	if code, ok := causeCodes[e.Cause]; ok {
		return code
	}
	return "unknown"
}

// CauseCode returns the cause label of err if it is a blueprint error, and
// "" otherwise.
func CauseCode(err error) string {
	var bpErr *Error
	if errors.As(err, &bpErr) {
		return bpErr.Code()
	}
	return ""
}

// IsInvalid reports whether err describes a malformed blueprint rather than
// an infrastructure failure.
func IsInvalid(err error) bool {
	var bpErr *Error
	return errors.As(err, &bpErr)
}

func invalid(cause error, detail string) error {
	return &Error{Cause: cause, Detail: detail}
}
