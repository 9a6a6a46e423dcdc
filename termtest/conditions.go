package termtest

import (
	"regexp"
	"strings"
)

// Condition tests the output written since a Snapshot.
type Condition func(outputSinceSnapshot string) bool

// All requires every cond to be true.
func All(conds ...Condition) Condition {
	return func(s string) bool {
		for _, cond := range conds {
			if !cond(s) {
				return false
			}
		}
		return true
	}
}

// Any requires at least one cond to be true.
func Any(conds ...Condition) Condition {
	return func(s string) bool {
		for _, cond := range conds {
			if cond(s) {
				return true
			}
		}
		return false
	}
}

// Not negates cond.
func Not(cond Condition) Condition {
	return func(s string) bool { return !cond(s) }
}

// Contains checks for substr in the output, either raw or with escape
// sequences and carriage returns stripped.
func Contains(substr string) Condition {
	return func(s string) bool {
		return strings.Contains(s, substr) || strings.Contains(stripTTYOutput(s), substr)
	}
}

// ContainsRaw checks for substr in the raw output, e.g. an escape sequence.
func ContainsRaw(substr string) Condition {
	return func(s string) bool { return strings.Contains(s, substr) }
}

// Matches checks the stripped output against re.
func Matches(re *regexp.Regexp) Condition {
	return func(s string) bool { return re.MatchString(stripTTYOutput(s)) }
}

// LineEquals checks that the line the cursor is on, as a terminal would
// display it, is exactly line. The snapshot should be taken at the start of
// a line.
func LineEquals(line string) Condition {
	return func(s string) bool {
		got, _ := renderLine(s)
		return got == line
	}
}

// CursorAt checks the column of the cursor, as a terminal would display it.
// See also LineEquals.
func CursorAt(col int) Condition {
	return func(s string) bool {
		_, got := renderLine(s)
		return got == col
	}
}

// stripTTYOutput removes CR, BEL, and ESC sequences (CSI, or two bytes).
func stripTTYOutput(s string) string {
	if !strings.ContainsAny(s, "\x1b\r\a") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\r', '\a':
		case 0x1b:
			i = skipEscape(s, i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// skipEscape returns the index of the last byte of the escape sequence that
// starts at s[i].
func skipEscape(s string, i int) int {
	if i+1 >= len(s) {
		return i
	}
	if s[i+1] != '[' {
		return i + 1
	}
	for j := i + 2; j < len(s); j++ {
		if s[j] >= 0x40 && s[j] <= 0x7e {
			return j
		}
	}
	return len(s) - 1
}

// renderLine interprets s as a terminal would, returning the content and
// cursor column of the final line. Only the sequences the line editor emits
// are interpreted: CR, LF, BS, ESC [ K, ESC [ n C, ESC [ n D and ESC [ 2 J.
func renderLine(s string) (string, int) {
	var (
		line []byte
		col  int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\r':
			col = 0
		case c == '\n':
			line = line[:0]
			col = 0
		case c == '\b':
			if col > 0 {
				col--
			}
		case c == 0x1b:
			end := skipEscape(s, i)
			if end >= i+2 && s[i+1] == '[' && s[end] >= 0x40 && s[end] <= 0x7e {
				line, col = applyCSI(line, col, s[i+2:end], s[end])
			}
			i = end
		case c >= 0x20 && c < 0x7f:
			for len(line) < col {
				line = append(line, ' ')
			}
			if col < len(line) {
				line[col] = c
			} else {
				line = append(line, c)
			}
			col++
		}
	}
	return string(line), col
}

func applyCSI(line []byte, col int, params string, final byte) ([]byte, int) {
	n := 0
	for i := 0; i < len(params); i++ {
		if params[i] < '0' || params[i] > '9' {
			break
		}
		n = n*10 + int(params[i]-'0')
	}
	switch final {
	case 'K':
		if col < len(line) {
			line = line[:col]
		}
	case 'C':
		col += max(n, 1)
	case 'D':
		col = max(col-max(n, 1), 0)
	case 'J':
		if n == 2 {
			line = line[:0]
		}
	case 'H':
		line = line[:0]
		col = 0
	}
	return line, col
}
