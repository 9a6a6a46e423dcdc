package termtest

import (
	"errors"
	"time"

	termline "github.com/joeycumines/go-termline"
)

// Option configures a Harness.
type Option func(c *harnessConfig) error

// LineHandler is called by the harness with each accepted line, from the
// goroutine reading lines. Anything written to w is flushed after it
// returns. A non-nil error ends the session, and is returned by WaitExit.
type LineHandler func(w *termline.Writer, line string) error

type harnessConfig struct {
	pty             bool
	rows            uint16
	cols            uint16
	defaultTimeout  time.Duration
	terminalOptions []termline.Option
	handler         LineHandler
}

func resolveOptions(opts []Option) (*harnessConfig, error) {
	c := harnessConfig{
		rows:           24,
		cols:           80,
		defaultTimeout: 5 * time.Second,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(&c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// WithPTY connects the editor to the slave of a pseudo-terminal, in raw
// mode, instead of a pair of pipes.
func WithPTY() Option {
	return func(c *harnessConfig) error {
		c.pty = true
		return nil
	}
}

// WithSize sets the PTY dimensions. Default is 24x80. Implies WithPTY.
func WithSize(rows, cols uint16) Option {
	return func(c *harnessConfig) error {
		if rows == 0 || cols == 0 {
			return errors.New("termtest: invalid size")
		}
		c.pty = true
		c.rows = rows
		c.cols = cols
		return nil
	}
}

// WithDefaultTimeout sets the timeout used by Console.Expect. Default is 5s.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *harnessConfig) error {
		if d < 0 {
			return errors.New("termtest: negative timeout")
		}
		c.defaultTimeout = d
		return nil
	}
}

// WithTerminalOptions configures the termline.Terminal under test. They are
// applied after the harness's own options (the redraw signal).
func WithTerminalOptions(options ...termline.Option) Option {
	return func(c *harnessConfig) error {
		c.terminalOptions = append(c.terminalOptions, options...)
		return nil
	}
}

// WithLineHandler sets a handler for each accepted line.
func WithLineHandler(handler LineHandler) Option {
	return func(c *harnessConfig) error {
		c.handler = handler
		return nil
	}
}
