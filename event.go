package termline

//go:generate go tool stringer -type=Event -trimprefix=Event

// Event is the observable result of applying one Key to a Buffer.
type Event uint8

const (
	EventNoChange Event = iota
	EventBufferChanged
	EventCursorMoved
	// EventLineReady indicates Enter on a non-empty buffer, the buffer is
	// left intact, for the caller to Take.
	EventLineReady
	EventEmptyLine
	// EventBufferFull indicates an insert was rejected, nothing changed.
	EventBufferFull
	EventInterrupted
	EventEndOfInput
	EventRecallPrevious
	EventRecallNext
)
