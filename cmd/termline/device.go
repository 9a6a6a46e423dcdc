package main

import (
	"errors"
	"io"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
)

// device is the user's side of the shell.
type device struct {
	name  string
	in    io.Reader
	out   io.Writer
	close func() error
}

func openDevice(cfg *config) (*device, error) {
	if cfg.device != `` {
		return openSerial(cfg.device, cfg.baud)
	}
	return openConsole()
}

// openConsole opens the controlling terminal, in raw mode.
func openConsole() (*device, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	restore, err := t.Raw()
	if err != nil {
		_ = t.Close()
		return nil, err
	}
	return &device{
		name: `console`,
		in:   t.Input(),
		out:  colorable.NewColorable(t.Output()),
		close: func() error {
			return errors.Join(restore(), t.Close())
		},
	}, nil
}
