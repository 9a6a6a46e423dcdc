//go:build !unix

package termtest

import (
	"errors"
	"os"
)

func openPTY(rows, cols uint16) (ptm, pts *os.File, err error) {
	return nil, nil, errors.ErrUnsupported
}
