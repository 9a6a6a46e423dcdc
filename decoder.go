package termline

// DecoderState is the escape sequence state of a Decoder.
type DecoderState uint8

const (
	// StateIdle is the ground state, no escape sequence is pending.
	StateIdle DecoderState = iota
	// StateEscape follows an ESC byte.
	StateEscape
	// StateBracket follows ESC [.
	StateBracket
)

func (s DecoderState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateEscape:
		return "Escape"
	case StateBracket:
		return "Bracket"
	default:
		return "DecoderState(?)"
	}
}

// Decoder turns raw input bytes into logical keys, one byte at a time.
//
// Only the handful of sequences needed for line editing are recognised:
// ESC [ A/B/C/D (arrows) and ESC [ 3 (delete). Anything else degrades to
// "no key", it is never an error.
//
// Known limitation: the byte that breaks an ESC sequence (ESC followed by
// anything but '[') is consumed along with it, and reported only as
// KeyEscape. Likewise, an unrecognised byte after ESC [ is dropped.
//
// Besides the DecoderState, the Decoder remembers whether the previous key
// was the Delete of ESC [ 3, in which case one directly following '~' (the
// end of the usual ESC [ 3 ~) is swallowed. This is the only behavior not
// covered by the pure transition function, decode.
//
// The zero value is ready to use.
type Decoder struct {
	state DecoderState
	// afterDelete is set after ESC [ 3, so the '~' that completes the usual
	// ESC [ 3 ~ sequence is swallowed instead of being typed.
	afterDelete bool
}

// State returns the current escape state.
func (d *Decoder) State() DecoderState { return d.state }

// Reset returns the decoder to StateIdle, discarding any partial sequence.
func (d *Decoder) Reset() {
	d.state = StateIdle
	d.afterDelete = false
}

// Feed consumes one byte, returning the decoded key, if any.
func (d *Decoder) Feed(b byte) (Key, bool) {
	if d.afterDelete {
		d.afterDelete = false
		if d.state == StateIdle && b == '~' {
			return Key{}, false
		}
	}
	var (
		key Key
		ok  bool
	)
	d.state, key, ok = decode(d.state, b)
	if ok && key.Code == KeyDelete {
		d.afterDelete = true
	}
	return key, ok
}

// decode is the pure transition function of the Decoder, for the escape
// state only. Swallowing the '~' after a Delete is handled by Feed.
func decode(state DecoderState, b byte) (DecoderState, Key, bool) {
	switch state {
	case StateEscape:
		if b == '[' {
			return StateBracket, Key{}, false
		}
		return StateIdle, Key{Code: KeyEscape}, true

	case StateBracket:
		switch b {
		case 'A':
			return StateIdle, Key{Code: KeyUp}, true
		case 'B':
			return StateIdle, Key{Code: KeyDown}, true
		case 'C':
			return StateIdle, Key{Code: KeyRight}, true
		case 'D':
			return StateIdle, Key{Code: KeyLeft}, true
		case '3':
			return StateIdle, Key{Code: KeyDelete}, true
		default:
			return StateIdle, Key{}, false
		}
	}

	switch {
	case b == CR || b == LF:
		return StateIdle, Key{Code: KeyEnter}, true
	case b == BS || b == DEL:
		return StateIdle, Key{Code: KeyBackspace}, true
	case b == ETX:
		return StateIdle, Key{Code: KeyInterrupt}, true
	case b == EOT:
		return StateIdle, Key{Code: KeyEndOfInput}, true
	case b == TAB:
		return StateIdle, Key{Code: KeyTab}, true
	case b == ESC:
		return StateEscape, Key{}, false
	case b >= 0x20 && b <= 0x7e:
		return StateIdle, Printable(b), true
	default:
		return StateIdle, Key{}, false
	}
}
