package termline

import (
	"unicode/utf8"
)

// DefaultBufferCapacity is the default maximum line length, in bytes.
const DefaultBufferCapacity = 128

// Buffer is a fixed capacity, cursor addressed line of bytes.
//
// Storage is allocated once, by NewBuffer, and never grows. Every mutation
// that would exceed the capacity is rejected rather than truncated.
// Invariant: 0 <= cursor <= len <= capacity.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	data   []byte
	n      int
	cursor int
}

// NewBuffer allocates a Buffer able to hold up to capacity bytes. It panics
// if capacity is not positive.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic(`termline: buffer capacity must be positive`)
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return b.n }

// Cursor returns the cursor index, in [0, Len()].
func (b *Buffer) Cursor() int { return b.cursor }

// Bytes returns the current content. The slice aliases internal storage, and
// is only valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// String returns a copy of the current content.
func (b *Buffer) String() string { return string(b.data[:b.n]) }

// Reset empties the buffer and moves the cursor to 0.
func (b *Buffer) Reset() {
	b.n = 0
	b.cursor = 0
}

// Take returns a copy of the content, then resets the buffer.
func (b *Buffer) Take() []byte {
	line := make([]byte, b.n)
	copy(line, b.data[:b.n])
	b.Reset()
	return line
}

// TakeString is Take, validating the content as UTF-8. The buffer is reset
// regardless, and invalid content is reported as an *EncodingError.
func (b *Buffer) TakeString() (string, error) {
	line := b.Take()
	if !utf8.Valid(line) {
		return "", &EncodingError{Line: line}
	}
	return string(line), nil
}

// Replace sets the content, placing the cursor at the end. Content longer
// than the capacity is rejected with ErrCapacityExceeded, leaving the buffer
// unchanged.
func (b *Buffer) Replace(content []byte) error {
	if len(content) > len(b.data) {
		return ErrCapacityExceeded
	}
	b.n = copy(b.data, content)
	b.cursor = b.n
	return nil
}

// Apply performs the edit for key, returning the resulting event.
func (b *Buffer) Apply(key Key) Event {
	switch key.Code {
	case KeyEnter:
		if b.n == 0 {
			return EventEmptyLine
		}
		return EventLineReady

	case KeyBackspace:
		if b.cursor == 0 {
			return EventNoChange
		}
		copy(b.data[b.cursor-1:], b.data[b.cursor:b.n])
		b.n--
		b.cursor--
		return EventBufferChanged

	case KeyDelete:
		if b.cursor >= b.n {
			return EventNoChange
		}
		copy(b.data[b.cursor:], b.data[b.cursor+1:b.n])
		b.n--
		return EventBufferChanged

	case KeyLeft:
		if b.cursor == 0 {
			return EventNoChange
		}
		b.cursor--
		return EventCursorMoved

	case KeyRight:
		if b.cursor >= b.n {
			return EventNoChange
		}
		b.cursor++
		return EventCursorMoved

	case KeyUp:
		return EventRecallPrevious

	case KeyDown:
		return EventRecallNext

	case KeyPrintable:
		if b.n == len(b.data) {
			return EventBufferFull
		}
		// shift the tail right by one, then insert
		copy(b.data[b.cursor+1:b.n+1], b.data[b.cursor:b.n])
		b.data[b.cursor] = key.Char
		b.n++
		b.cursor++
		return EventBufferChanged

	case KeyInterrupt:
		return EventInterrupted

	case KeyEndOfInput:
		return EventEndOfInput

	default:
		// tab, escape
		return EventNoChange
	}
}
