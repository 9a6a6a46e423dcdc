package termline

import (
	"io"
	"strconv"
	"sync"
)

// ANSI color numbers, for use with Writer.SetColor. Values 8-15 are the
// bright variants.
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Writer buffers terminal output, and writes it to the underlying sink on
// Flush. Escape sequences are only emitted if ANSI is enabled, otherwise the
// terminal is assumed to understand nothing beyond CR and LF.
//
// A Writer is not safe for concurrent use, see SyncWriter for sharing the
// sink.
type Writer struct {
	out    io.Writer
	buffer []byte
	ansi   bool
}

// NewWriter returns a Writer that flushes to out.
func NewWriter(out io.Writer, ansi bool) *Writer {
	return &Writer{out: out, ansi: ansi}
}

// ANSI reports whether escape sequences are enabled.
func (w *Writer) ANSI() bool { return w.ansi }

// WriteRaw appends data without any processing.
func (w *Writer) WriteRaw(data []byte) {
	w.buffer = append(w.buffer, data...)
}

// WriteRawString appends data without any processing.
func (w *Writer) WriteRawString(data string) {
	w.buffer = append(w.buffer, data...)
}

// WriteString appends s. It implements io.StringWriter, and never fails.
func (w *Writer) WriteString(s string) (int, error) {
	w.WriteRawString(s)
	return len(s), nil
}

// Write appends p. It implements io.Writer, and never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.WriteRaw(p)
	return len(p), nil
}

// Writeln appends s followed by CRLF.
func (w *Writer) Writeln(s string) {
	w.WriteRawString(s)
	w.WriteRawString("\r\n")
}

// WritePrompt appends the prompt text.
func (w *Writer) WritePrompt(prompt string) {
	w.WriteRawString(prompt)
}

// ClearLine moves to the start of the line, erasing it if ANSI is enabled.
func (w *Writer) ClearLine() {
	if w.ansi {
		w.WriteRawString("\r\x1b[K")
	} else {
		w.WriteRawString("\r")
	}
}

// ClearScreen erases the screen and homes the cursor. Without ANSI, it
// scrolls the old content away with blank lines.
func (w *Writer) ClearScreen() {
	if w.ansi {
		w.WriteRawString("\x1b[2J\x1b[H")
		return
	}
	for range 10 {
		w.WriteRawString("\r\n")
	}
}

// CursorUp moves the cursor up n lines, negative values move down.
func (w *Writer) CursorUp(n int) {
	if n < 0 {
		w.CursorDown(-n)
		return
	}
	w.cursor(n, 'A')
}

// CursorDown moves the cursor down n lines, negative values move up.
func (w *Writer) CursorDown(n int) {
	if n < 0 {
		w.CursorUp(-n)
		return
	}
	w.cursor(n, 'B')
}

// CursorForward moves the cursor right n columns, negative values move left.
func (w *Writer) CursorForward(n int) {
	if n < 0 {
		w.CursorBackward(-n)
		return
	}
	w.cursor(n, 'C')
}

// CursorBackward moves the cursor left n columns, negative values move right.
func (w *Writer) CursorBackward(n int) {
	if n < 0 {
		w.CursorForward(-n)
		return
	}
	w.cursor(n, 'D')
}

func (w *Writer) cursor(n int, code byte) {
	if !w.ansi || n == 0 {
		return
	}
	w.buffer = append(w.buffer, ESC, '[')
	w.buffer = strconv.AppendInt(w.buffer, int64(n), 10)
	w.buffer = append(w.buffer, code)
}

// SetColor sets the foreground color, see the color constants.
func (w *Writer) SetColor(color uint8) {
	if !w.ansi {
		return
	}
	w.buffer = append(w.buffer, ESC, '[')
	if color < 8 {
		w.buffer = append(w.buffer, '3', '0'+color)
	} else {
		w.buffer = append(w.buffer, '9', '0'+(color-8)%8)
	}
	w.buffer = append(w.buffer, 'm')
}

// ResetFormat resets all display attributes.
func (w *Writer) ResetFormat() {
	if w.ansi {
		w.WriteRawString("\x1b[0m")
	}
}

// SetBold enables or disables bold text.
func (w *Writer) SetBold(enable bool) {
	if !w.ansi {
		return
	}
	if enable {
		w.WriteRawString("\x1b[1m")
	} else {
		w.WriteRawString("\x1b[22m")
	}
}

// WriteColored writes text in the given color, resetting the format after.
func (w *Writer) WriteColored(text string, color uint8) {
	w.SetColor(color)
	w.WriteRawString(text)
	w.ResetFormat()
}

// WriteError writes msg in red, or as a plain line if ANSI is disabled.
func (w *Writer) WriteError(msg string) { w.writeStatus(msg, Red) }

// WriteSuccess writes msg in green, or as a plain line if ANSI is disabled.
func (w *Writer) WriteSuccess(msg string) { w.writeStatus(msg, Green) }

// WriteWarning writes msg in yellow, or as a plain line if ANSI is disabled.
func (w *Writer) WriteWarning(msg string) { w.writeStatus(msg, Yellow) }

// WriteInfo writes msg in cyan, or as a plain line if ANSI is disabled.
func (w *Writer) WriteInfo(msg string) { w.writeStatus(msg, Cyan) }

func (w *Writer) writeStatus(msg string, color uint8) {
	if w.ansi {
		w.WriteColored(msg, color)
	} else {
		w.Writeln(msg)
	}
}

// Bell appends BEL.
func (w *Writer) Bell() {
	w.buffer = append(w.buffer, 0x07)
}

// Buffered returns the number of bytes pending a Flush.
func (w *Writer) Buffered() int { return len(w.buffer) }

// Flush writes all pending output to the sink. The pending output is
// discarded even if the write fails.
func (w *Writer) Flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	_, err := w.out.Write(w.buffer)
	w.buffer = w.buffer[:0]
	return err
}

// SyncWriter serialises writes to an io.Writer, so that a terminal may be
// shared by a Terminal and other producers (see package notify). Each Write
// is performed atomically with respect to the others.
type SyncWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewSyncWriter wraps out.
func NewSyncWriter(out io.Writer) *SyncWriter {
	return &SyncWriter{out: out}
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}
