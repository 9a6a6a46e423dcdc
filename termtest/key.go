package termtest

import (
	"fmt"
	"strings"
)

// LookupKey returns the bytes a terminal sends for the friendly key name k,
// e.g. "ctrl+c" or "up". Names are case-insensitive.
func LookupKey(k string) (string, error) {
	if seq, ok := keyMap[strings.ToLower(k)]; ok {
		return seq, nil
	}
	return "", fmt.Errorf("termtest: unknown key: %s", k)
}

// keyMap maps friendly key names (aligned with bubbletea's) to the bytes
// sent by a VT100 style terminal. It includes keys the editor does not
// recognise, so their handling can be tested.
var keyMap = map[string]string{
	"ctrl+@":  "\x00",
	"ctrl+a":  "\x01",
	"ctrl+b":  "\x02",
	"ctrl+c":  "\x03",
	"ctrl+d":  "\x04",
	"ctrl+e":  "\x05",
	"ctrl+f":  "\x06",
	"ctrl+g":  "\x07",
	"ctrl+h":  "\x08",
	"ctrl+i":  "\x09",
	"ctrl+j":  "\x0a",
	"ctrl+k":  "\x0b",
	"ctrl+l":  "\x0c",
	"ctrl+m":  "\x0d",
	"ctrl+n":  "\x0e",
	"ctrl+o":  "\x0f",
	"ctrl+p":  "\x10",
	"ctrl+q":  "\x11",
	"ctrl+r":  "\x12",
	"ctrl+s":  "\x13",
	"ctrl+t":  "\x14",
	"ctrl+u":  "\x15",
	"ctrl+v":  "\x16",
	"ctrl+w":  "\x17",
	"ctrl+x":  "\x18",
	"ctrl+y":  "\x19",
	"ctrl+z":  "\x1a",
	"ctrl+[":  "\x1b",
	"ctrl+\\": "\x1c",
	"ctrl+]":  "\x1d",
	"ctrl+^":  "\x1e",
	"ctrl+_":  "\x1f",
	"ctrl+?":  "\x7f",

	// "enter" is CR, as sent by most terminals, "ctrl+j" is LF
	"enter":     "\r",
	"tab":       "\t",
	"backspace": "\x7f",
	"esc":       "\x1b",
	"escape":    "\x1b",
	"space":     " ",
	" ":         " ",

	"up":    "\x1b[A",
	"down":  "\x1b[B",
	"right": "\x1b[C",
	"left":  "\x1b[D",

	"shift+tab": "\x1b[Z",
	"insert":    "\x1b[2~",
	"delete":    "\x1b[3~",
	"pgup":      "\x1b[5~",
	"pgdown":    "\x1b[6~",
	"home":      "\x1b[H",
	"end":       "\x1b[F",

	"f1": "\x1bOP",
	"f2": "\x1bOQ",
	"f3": "\x1bOR",
	"f4": "\x1bOS",
}
