package logger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeverity is returned for unknown severity names or values.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrUnknownLogMethod is returned when a method name matches no
	// (severity, variant) combination.
	ErrUnknownLogMethod = errors.New("unknown log method")
	// ErrBadArguments is returned when a dynamic call receives arguments of
	// the wrong shape for its variant.
	ErrBadArguments = errors.New("bad log method arguments")
	// ErrSinkWrite matches every *SinkWriteError via errors.Is.
	ErrSinkWrite = errors.New("sink write failed")
)

// SinkWriteError wraps a failure of the underlying Sink.
type SinkWriteError struct {
	Severity Severity
	Line     string
	Err      error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("sink write failed (%s): %v", e.Severity, e.Err)
}

// Unwrap returns the sink's own error.
func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSinkWrite) true.
func (e *SinkWriteError) Is(target error) bool {
	return target == ErrSinkWrite
}

// ErrorFactory builds the error returned by the log-and-throw variant.
type ErrorFactory func(message string, code int, cause error) error

// LoggedError is the default error produced by the log-and-throw variant.
type LoggedError struct {
	Message string
	Code    int
	Cause   error
}

// NewLoggedError is the default ErrorFactory.
func NewLoggedError(message string, code int, cause error) error {
	return &LoggedError{Message: message, Code: code, Cause: cause}
}

func (e *LoggedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *LoggedError) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the numeric code passed to the factory.
func (e *LoggedError) ErrorCode() int {
	return e.Code
}
