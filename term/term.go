//go:build unix

// Package term switches a terminal file descriptor into, and back out of,
// the raw mode required for byte at a time line editing.
package term

import (
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

var (
	saveTermios     unix.Termios
	saveTermiosErr  error
	saveTermiosFD   int
	saveTermiosOnce sync.Once
)

// getOriginalTermios captures the attributes of the first fd it is called
// with, returning a copy. Subsequent calls return the same attributes,
// whatever fd they pass.
func getOriginalTermios(fd int) (*unix.Termios, error) {
	saveTermiosOnce.Do(func() {
		saveTermiosFD = fd
		t, err := termios.Tcgetattr(uintptr(fd))
		if err != nil {
			saveTermiosErr = err
			return
		}
		saveTermios = *t
	})
	if saveTermiosErr != nil {
		return nil, saveTermiosErr
	}
	o := saveTermios
	return &o, nil
}

// SetRaw puts fd into raw mode, saving the original attributes (only once,
// per process) for Restore.
func SetRaw(fd int) error {
	t, err := getOriginalTermios(fd)
	if err != nil {
		return err
	}
	makeRaw(t)
	return termios.Tcsetattr(uintptr(fd), termios.TCSANOW, t)
}

// Restore reverts the fd first passed to SetRaw to its original attributes.
func Restore() error {
	return RestoreFD(saveTermiosFD)
}

// RestoreFD applies the saved original attributes to fd.
func RestoreFD(fd int) error {
	t, err := getOriginalTermios(fd)
	if err != nil {
		return err
	}
	return termios.Tcsetattr(uintptr(fd), termios.TCSANOW, t)
}

// State is the terminal attributes of a single fd, as returned by MakeRaw.
type State struct {
	fd      int
	termios unix.Termios
}

// MakeRaw puts fd into raw mode, returning the prior state. Unlike SetRaw,
// no process wide state is kept, so it is suitable for devices other than
// the controlling terminal (e.g. a serial console or pty).
func MakeRaw(fd int) (*State, error) {
	t, err := termios.Tcgetattr(uintptr(fd))
	if err != nil {
		return nil, err
	}
	state := State{fd: fd, termios: *t}
	makeRaw(t)
	if err := termios.Tcsetattr(uintptr(fd), termios.TCSANOW, t); err != nil {
		return nil, err
	}
	return &state, nil
}

// Restore reverts the fd to the state captured by MakeRaw.
func (s *State) Restore() error {
	t := s.termios
	return termios.Tcsetattr(uintptr(s.fd), termios.TCSANOW, &t)
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	_, err := termios.Tcgetattr(uintptr(fd))
	return err == nil
}

// makeRaw disables echo, canonical mode, signal generation and input
// translation, so that every byte (including CR, ^C and ^D) is delivered
// as is. Reads block for at least one byte. Output processing is left
// enabled.
func makeRaw(t *unix.Termios) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}
