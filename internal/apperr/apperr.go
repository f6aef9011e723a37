// Package apperr defines the failure kinds shared by every gateway
// collaborator. Collaborators return *Error values; the gateway is the single
// place that turns them into response envelopes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal is used for failures that carry no explicit kind, including
	// recovered panics.
	Internal Kind = iota
	NoProjectBound
	InvalidPath
	IOError
	NotFound
	ExecutableNotFound
	Timeout
	ConnectionError
	UnknownOperation
	MalformedInput
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	NoProjectBound:     "no_project_bound",
	InvalidPath:        "invalid_path",
	IOError:            "io_error",
	NotFound:           "not_found",
	ExecutableNotFound: "executable_not_found",
	Timeout:            "timeout",
	ConnectionError:    "connection_error",
	UnknownOperation:   "unknown_operation",
	MalformedInput:     "malformed_input",
}

// String returns the snake_case name used on the wire.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Msg is the user-visible text; Err is the
// optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, prefixing it with a formatted message.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
