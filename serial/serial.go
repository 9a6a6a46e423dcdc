//go:build unix

// Package serial opens a serial device (or any tty) configured for line
// editing, for use as both the byte source and the output sink of a
// termline.Terminal.
package serial

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/term"
)

const (
	DefaultBaud        = 115200
	DefaultReadTimeout = 100 * time.Millisecond
)

// Config models the configuration of a Port.
type Config struct {
	// Baud is the line speed. Defaults to DefaultBaud, if <= 0.
	Baud int

	// ReadTimeout bounds each Read, which returns 0, nil on expiry, so that
	// readers may observe cancellation. Defaults to DefaultReadTimeout, if
	// 0. A negative value blocks until at least one byte is available.
	ReadTimeout time.Duration

	// HardwareFlowControl enables RTS/CTS. Software flow control is always
	// disabled, as ^Q and ^S are passed through as input.
	HardwareFlowControl bool
}

// Port is an open serial device in raw mode. It implements
// io.ReadWriteCloser. Read and Write may be called concurrently with each
// other.
type Port struct {
	name      string
	t         *term.Term
	closeOnce sync.Once
	closeErr  error
}

// Open opens and configures device, e.g. /dev/ttyUSB0.
func Open(device string, cfg Config) (*Port, error) {
	if cfg.Baud <= 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}

	flow := term.NONE
	if cfg.HardwareFlowControl {
		flow = term.HARDWARE
	}
	options := []func(*term.Term) error{
		term.RawMode,
		term.Speed(cfg.Baud),
		term.FlowControl(flow),
	}
	if cfg.ReadTimeout > 0 {
		options = append(options, term.ReadTimeout(cfg.ReadTimeout))
	}

	t, err := term.Open(device, options...)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	return &Port{name: device, t: t}, nil
}

// Name returns the device path.
func (p *Port) Name() string { return p.name }

func (p *Port) Read(b []byte) (int, error) {
	return p.t.Read(b)
}

func (p *Port) Write(b []byte) (int, error) {
	return p.t.Write(b)
}

// Flush discards any data received but not read, and any data written but
// not transmitted.
func (p *Port) Flush() error {
	return p.t.Flush()
}

// SetSpeed changes the line speed.
func (p *Port) SetSpeed(baud int) error {
	if baud <= 0 {
		return fmt.Errorf("serial: invalid baud rate: %d", baud)
	}
	return p.t.SetSpeed(baud)
}

// Close restores the original attributes of the device, then closes it.
// Subsequent calls return the same error.
func (p *Port) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = errors.Join(p.t.Restore(), p.t.Close())
	})
	return p.closeErr
}
