//go:build unix

package main

import (
	"github.com/joeycumines/go-termline/serial"
)

func openSerial(name string, baud int) (*device, error) {
	port, err := serial.Open(name, serial.Config{Baud: baud})
	if err != nil {
		return nil, err
	}
	return &device{
		name:  port.Name(),
		in:    port,
		out:   port,
		close: port.Close,
	}, nil
}
