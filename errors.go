package termline

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfInput indicates the session ended gracefully, either because
	// ^D was received, or the input source reached EOF. It ends the session,
	// not just the current line.
	ErrEndOfInput = errors.New("termline: end of input")

	// ErrCapacityExceeded indicates that content did not fit within a fixed
	// capacity. It is never fatal.
	ErrCapacityExceeded = errors.New("termline: capacity exceeded")
)

// TransportError wraps an I/O failure of the input source or the output sink.
// It ends the session.
type TransportError struct {
	// Op is "read", "write" or "flush".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("termline: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying I/O error, for use with [errors.Is] and
// [errors.As].
func (e *TransportError) Unwrap() error { return e.Err }

// EncodingError indicates that an accepted line was not valid UTF-8. The
// buffer has already been cleared, and the session may continue.
type EncodingError struct {
	// Line is a copy of the raw bytes that were rejected.
	Line []byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("termline: invalid utf-8 in line %q", e.Line)
}
