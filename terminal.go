package termline

import (
	"context"
	"fmt"
	"io"
	"time"

	catrate "github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

const bellCategory = "buffer-full"

// Terminal reads edited lines from a Source, echoing to an output sink.
//
// It exclusively owns its Decoder, Buffer and (optional) History, which all
// survive across calls to ReadLine. ReadLine must not be called concurrently.
type Terminal struct {
	source  Source
	out     *Writer
	decoder Decoder
	buffer  *Buffer
	history *History
	redraw  *Signal
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter

	historyConfig *HistoryConfig

	prompt    string
	capacity  int
	echo      bool
	ansi      bool
	bell      bool
	bellRates map[time.Duration]int
}

// New constructs a Terminal reading from source and writing to out.
func New(source Source, out io.Writer, options ...Option) (*Terminal, error) {
	if source == nil {
		return nil, fmt.Errorf("termline: nil source")
	}
	if out == nil {
		return nil, fmt.Errorf("termline: nil output")
	}
	t := &Terminal{
		source:   source,
		prompt:   DefaultPrompt,
		capacity: DefaultBufferCapacity,
		echo:     true,
		ansi:     true,
	}
	for _, o := range options {
		if err := o(t); err != nil {
			return nil, fmt.Errorf("termline: invalid option: %w", err)
		}
	}
	if t.bell && len(t.bellRates) != 0 {
		limiter, err := newBellLimiter(t.bellRates)
		if err != nil {
			return nil, fmt.Errorf("termline: invalid option: %w", err)
		}
		t.limiter = limiter
	}
	if cfg := t.historyConfig; cfg != nil {
		if cfg.EntryCapacity <= 0 || cfg.EntryCapacity > t.capacity {
			cfg.EntryCapacity = t.capacity
		}
		t.history = NewHistory(*cfg)
		t.historyConfig = nil
	}
	if t.history != nil && t.history.EntryCap() > t.capacity {
		return nil, fmt.Errorf("termline: invalid option: history entry capacity %d exceeds buffer capacity %d", t.history.EntryCap(), t.capacity)
	}
	t.buffer = NewBuffer(t.capacity)
	t.out = NewWriter(out, t.ansi)
	return t, nil
}

func newBellLimiter(rates map[time.Duration]int) (limiter *catrate.Limiter, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bell rates: %v", r)
		}
	}()
	return catrate.NewLimiter(rates), nil
}

// Buffer returns the edit buffer. It must not be mutated while ReadLine is
// in progress.
func (t *Terminal) Buffer() *Buffer { return t.buffer }

// History returns the configured History, or nil.
func (t *Terminal) History() *History { return t.history }

// Writer returns the output writer, which may be used to write between
// calls to ReadLine. Remember to Flush.
func (t *Terminal) Writer() *Writer { return t.out }

// Prompt returns the prompt text.
func (t *Terminal) Prompt() string { return t.prompt }

// SetPrompt changes the prompt text, taking effect on the next repaint. It
// must not be called while ReadLine is in progress.
func (t *Terminal) SetPrompt(prompt string) { t.prompt = prompt }

// ReadLine displays the prompt, then edits a line until it is accepted with
// Enter, returning it.
//
// The error is ErrEndOfInput if ^D was received or the source is exhausted,
// a *TransportError on any I/O failure, an *EncodingError if the accepted
// line was not valid UTF-8 (the session may continue), or ctx.Err().
func (t *Terminal) ReadLine(ctx context.Context) (string, error) {
	t.out.WritePrompt(t.prompt)
	if err := t.flush(); err != nil {
		return "", err
	}

	var redraw <-chan struct{}
	if t.redraw != nil {
		redraw = t.redraw.C()
	}
	input := t.source.Bytes()

	for {
		var b byte
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case <-redraw:
			// receiving lowered the signal, not logged as the logger may
			// be what raised it (see package notify)
			t.repaint()
			if err := t.flush(); err != nil {
				return "", err
			}
			continue

		case v, ok := <-input:
			if !ok {
				err := sourceError(t.source.Err())
				if err != ErrEndOfInput {
					t.logger.Err().Err(err).Log("input failed")
				}
				return "", err
			}
			b = v
		}

		key, ok := t.decoder.Feed(b)
		if !ok {
			continue
		}

		line, done, err := t.dispatch(key)
		if err == nil {
			err = t.flush()
		}
		if done || err != nil {
			return line, err
		}
	}
}

// dispatch applies key to the buffer, and reacts to the resulting event.
// The done result indicates that ReadLine must return.
func (t *Terminal) dispatch(key Key) (line string, done bool, err error) {
	event := t.buffer.Apply(key)

	t.logger.Debug().
		Stringer("key", key).
		Stringer("event", event).
		Int("len", t.buffer.Len()).
		Int("cursor", t.buffer.Cursor()).
		Log("key applied")

	switch event {
	case EventLineReady:
		t.out.WriteRawString("\r\n")
		raw := t.buffer.Bytes()
		if t.history != nil {
			if err := t.history.Record(raw); err != nil {
				t.logger.Warning().Err(err).Int("len", len(raw)).Log("line not recorded in history")
			}
		}
		line, err = t.buffer.TakeString()
		if err != nil {
			t.logger.Warning().Err(err).Log("line rejected")
			return "", true, err
		}
		t.logger.Info().Int("len", len(line)).Log("line accepted")
		return line, true, nil

	case EventEmptyLine:
		t.out.WriteRawString("\r\n")
		t.out.WritePrompt(t.prompt)

	case EventBufferChanged, EventCursorMoved:
		if t.echo {
			t.repaint()
		}

	case EventInterrupted:
		t.buffer.Reset()
		if t.history != nil {
			t.history.ResetBrowse()
		}
		t.out.WriteRawString("^C\r\n")
		t.out.WritePrompt(t.prompt)

	case EventEndOfInput:
		t.logger.Debug().Log("end of input")
		return "", true, ErrEndOfInput

	case EventRecallPrevious:
		if t.history == nil {
			break
		}
		if entry, ok := t.history.Previous(); ok {
			t.recall(entry)
		}

	case EventRecallNext:
		if t.history == nil {
			break
		}
		if entry, ok := t.history.Next(); ok {
			t.recall(entry)
		} else {
			t.buffer.Reset()
			t.repaint()
		}

	case EventBufferFull:
		t.ring()
	}

	return "", false, nil
}

func (t *Terminal) recall(entry []byte) {
	if err := t.buffer.Replace(entry); err != nil {
		// unreachable, New rejects entries larger than the buffer
		t.logger.Warning().Err(err).Int("len", len(entry)).Log("history entry too long")
		return
	}
	t.repaint()
}

func (t *Terminal) ring() {
	if !t.bell {
		return
	}
	if t.limiter != nil {
		if _, ok := t.limiter.Allow(bellCategory); !ok {
			return
		}
	}
	t.out.Bell()
}

// repaint clears the current line, then writes the prompt and buffer,
// leaving the terminal cursor at the edit cursor (if ANSI is enabled).
func (t *Terminal) repaint() {
	t.out.ClearLine()
	t.out.WritePrompt(t.prompt)
	t.out.WriteRaw(t.buffer.Bytes())
	t.out.CursorBackward(t.buffer.Len() - t.buffer.Cursor())
}

func (t *Terminal) flush() error {
	if err := t.out.Flush(); err != nil {
		err = &TransportError{Op: "write", Err: err}
		t.logger.Err().Err(err).Log("output failed")
		return err
	}
	return nil
}
