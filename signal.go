package termline

// Signal is a single-slot notification, used to request that the line being
// edited is repainted, e.g. after other output was written to the terminal.
//
// Set may be called from any goroutine. Multiple calls to Set before the
// signal is observed coalesce into one. The zero value is not usable, use
// NewSignal.
type Signal struct {
	ch chan struct{}
}

// NewSignal returns a Signal that is not set.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Set raises the signal, if it is not already raised. It never blocks.
func (s *Signal) Set() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Reset lowers the signal, if it is raised.
func (s *Signal) Reset() {
	select {
	case <-s.ch:
	default:
	}
}

// IsSet reports whether the signal is raised, without consuming it.
func (s *Signal) IsSet() bool {
	return len(s.ch) != 0
}

// C returns the channel that receives when the signal is raised. Receiving
// from it lowers the signal.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}
