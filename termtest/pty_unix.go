//go:build unix

package termtest

import (
	"os"

	"github.com/creack/pty"
	"github.com/joeycumines/go-termline/term"
)

// openPTY opens a pty pair, with the slave in raw mode.
func openPTY(rows, cols uint16) (ptm, pts *os.File, err error) {
	ptm, pts, err = pty.Open()
	if err != nil {
		return nil, nil, err
	}
	// best effort, the size does not affect the editor
	_ = pty.Setsize(ptm, &pty.Winsize{Rows: rows, Cols: cols})
	// Fd would switch pts to blocking mode, preventing Close from
	// interrupting reads
	raw, err := pts.SyscallConn()
	if err == nil {
		ctrlErr := raw.Control(func(fd uintptr) {
			_, err = term.MakeRaw(int(fd))
		})
		if ctrlErr != nil {
			err = ctrlErr
		}
	}
	if err != nil {
		_ = pts.Close()
		_ = ptm.Close()
		return nil, nil, err
	}
	return ptm, pts, nil
}
