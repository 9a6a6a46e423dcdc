//go:build !unix

package main

import (
	"errors"
	"fmt"
)

func openSerial(name string, _ int) (*device, error) {
	return nil, fmt.Errorf(`serial: open %s: %w`, name, errors.ErrUnsupported)
}
