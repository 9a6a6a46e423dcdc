package termline

import (
	"errors"
	"time"

	"github.com/joeycumines/logiface"
)

// DefaultPrompt is the prompt used if none is configured.
const DefaultPrompt = "> "

// DefaultBellRates throttles the bell emitted when the buffer is full.
var DefaultBellRates = map[time.Duration]int{
	time.Second:     3,
	time.Second * 5: 6,
}

// Option configures a Terminal, see New.
type Option func(t *Terminal) error

// WithBufferCapacity sets the maximum line length, in bytes. The default is
// DefaultBufferCapacity.
func WithBufferCapacity(capacity int) Option {
	return func(t *Terminal) error {
		if capacity <= 0 {
			return errors.New("buffer capacity must be positive")
		}
		t.capacity = capacity
		return nil
	}
}

// WithPrompt sets the text shown before each line. The default is
// DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(t *Terminal) error {
		t.prompt = prompt
		return nil
	}
}

// WithEcho controls whether edits are reflected back. Enabled by default.
func WithEcho(echo bool) Option {
	return func(t *Terminal) error {
		t.echo = echo
		return nil
	}
}

// WithANSI controls whether escape sequences are used for clearing lines,
// positioning the cursor and colors. Enabled by default.
func WithANSI(ansi bool) Option {
	return func(t *Terminal) error {
		t.ansi = ansi
		return nil
	}
}

// WithHistory enables recall of accepted lines. The History may be shared by
// sessions that never read concurrently. Its entry capacity must not exceed
// the buffer capacity.
func WithHistory(history *History) Option {
	return func(t *Terminal) error {
		t.history = history
		t.historyConfig = nil
		return nil
	}
}

// WithHistoryConfig is WithHistory, allocating a new History from cfg once
// all options are applied. An EntryCapacity that is unset, or larger than
// the buffer capacity, is set to the buffer capacity.
func WithHistoryConfig(cfg HistoryConfig) Option {
	return func(t *Terminal) error {
		t.history = nil
		t.historyConfig = &cfg
		return nil
	}
}

// WithRedrawSignal configures a signal that, when set, causes the line being
// edited to be repainted.
func WithRedrawSignal(signal *Signal) Option {
	return func(t *Terminal) error {
		t.redraw = signal
		return nil
	}
}

// WithLogger configures structured logging. A nil logger disables logging,
// which is the default.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return func(t *Terminal) error {
		t.logger = logger
		return nil
	}
}

// WithBell emits BEL when a keystroke is rejected because the buffer is
// full, throttled per rates (see DefaultBellRates). A nil or empty rates
// disables throttling. The bell is disabled by default.
func WithBell(rates map[time.Duration]int) Option {
	return func(t *Terminal) error {
		t.bell = true
		t.bellRates = rates
		return nil
	}
}
