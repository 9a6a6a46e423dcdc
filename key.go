package termline

//go:generate go tool stringer -type=KeyCode -trimprefix=Key

// KeyCode identifies a logical key, decoded from one or more raw input bytes.
type KeyCode uint8

const (
	// KeyNone is the zero value, it is never produced by the Decoder.
	KeyNone KeyCode = iota
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	// KeyInterrupt is ^C (ETX).
	KeyInterrupt
	// KeyEndOfInput is ^D (EOT).
	KeyEndOfInput
	// KeyPrintable carries a printable ASCII byte, see Key.Char.
	KeyPrintable
)

// Key is a decoded, semantically meaningful input event.
//
// Char is only meaningful for KeyPrintable.
type Key struct {
	Code KeyCode
	Char byte
}

// Printable returns the KeyPrintable Key for b.
func Printable(b byte) Key {
	return Key{Code: KeyPrintable, Char: b}
}

// ASCII control bytes recognised by the Decoder.
const (
	ETX = 0x03
	EOT = 0x04
	BS  = 0x08
	TAB = 0x09
	LF  = 0x0a
	CR  = 0x0d
	ESC = 0x1b
	DEL = 0x7f
)

func (k Key) String() string {
	if k.Code == KeyPrintable {
		return "Printable(" + string(rune(k.Char)) + ")"
	}
	return k.Code.String()
}
