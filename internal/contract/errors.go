package contract

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrArgument       = errors.New("invalid argument")
	ErrInputNotFound  = errors.New("input not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrDataAnomaly    = errors.New("data anomaly")
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Wrapf wraps err with the given kind and a formatted message.
func Wrapf(err error, kind error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ArgumentError reports a missing or invalid option.
func ArgumentError(format string, args ...any) *Error {
	return Wrapf(nil, ErrArgument, format, args...)
}

// InputNotFound reports an input path that does not resolve.
func InputNotFound(path string, err error) *Error {
	return Wrapf(err, ErrInputNotFound, "cannot open %s", path)
}

// MalformedInput reports unparseable input or an invalid record.
func MalformedInput(err error, format string, args ...any) *Error {
	return Wrapf(err, ErrMalformedInput, format, args...)
}

// DataAnomaly reports data that is well-formed but violates a domain invariant.
func DataAnomaly(format string, args ...any) *Error {
	return Wrapf(nil, ErrDataAnomaly, format, args...)
}
