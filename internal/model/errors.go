package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so front ends can pick a message and exit code
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInvalidInput is a bad URL, tier or format, rejected before any network call
	KindInvalidInput
	// KindResourceUnavailable is a private, deleted or region-blocked video
	KindResourceUnavailable
	// KindNetworkFailure is a transient connectivity problem
	KindNetworkFailure
	// KindMissingDependency is an absent FFmpeg (or yt-dlp) binary
	KindMissingDependency
	// KindFormatUnavailable means a format expression matched nothing
	KindFormatUnavailable
	// KindIOFailure is a local filesystem problem
	KindIOFailure
	// KindCancelled means the user stopped the request
	KindCancelled
)

// String returns a short label for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindResourceUnavailable:
		return "resource unavailable"
	case KindNetworkFailure:
		return "network failure"
	case KindMissingDependency:
		return "missing dependency"
	case KindFormatUnavailable:
		return "format unavailable"
	case KindIOFailure:
		return "i/o failure"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ExitCode maps the kind to the CLI process exit status
func (k ErrorKind) ExitCode() int {
	switch k {
	case KindInvalidInput:
		return 2
	case KindResourceUnavailable:
		return 3
	case KindNetworkFailure:
		return 4
	case KindMissingDependency:
		return 5
	case KindFormatUnavailable:
		return 6
	case KindIOFailure:
		return 7
	case KindCancelled:
		return 130
	default:
		return 1
	}
}

// Error is a classified failure. Op names the operation that failed
// ("validate", "download", "probe"...), Msg is the human-readable summary.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error
func NewError(kind ErrorKind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// Errorf builds a classified error with a formatted message and no cause
func Errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
