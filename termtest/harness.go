package termtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	termline "github.com/joeycumines/go-termline"
)

const harnessWaitOnCloseTimeout = 2 * time.Second

// Harness runs a termline.Terminal in-process, reading lines in a loop,
// with a Console attached to the other end.
type Harness struct {
	console  *Console
	terminal *termline.Terminal
	redraw   *termline.Signal
	output   *termline.SyncWriter
	handler  LineHandler

	ctx         context.Context
	cancel      context.CancelFunc
	closeEditor func() error

	linesMu sync.Mutex
	lines   []string

	done      chan struct{}
	err       error
	closeOnce sync.Once
	closeErr  error
}

// NewHarness starts a Terminal, reading lines until ctx is canceled, the
// session ends, or Close is called.
func NewHarness(ctx context.Context, opts ...Option) (*Harness, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	var (
		editorIn    io.Reader
		editorOut   io.Writer
		closeEditor func() error
		console     *Console
	)
	if cfg.pty {
		ptm, pts, err := openPTY(cfg.rows, cfg.cols)
		if err != nil {
			return nil, fmt.Errorf("termtest: failed to open pty: %w", err)
		}
		editorIn, editorOut = pts, pts
		closeEditor = pts.Close
		console = newConsole(ptm, ptm, cfg.defaultTimeout)
	} else {
		inR, inW := io.Pipe()
		outR, outW := io.Pipe()
		editorIn, editorOut = inR, outW
		closeEditor = func() error {
			return errors.Join(inR.Close(), outW.Close())
		}
		console = newConsole(inW, outR, cfg.defaultTimeout)
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &Harness{
		console:     console,
		redraw:      termline.NewSignal(),
		output:      termline.NewSyncWriter(editorOut),
		handler:     cfg.handler,
		ctx:         runCtx,
		cancel:      cancel,
		closeEditor: closeEditor,
		done:        make(chan struct{}),
	}

	options := append([]termline.Option{termline.WithRedrawSignal(h.redraw)}, cfg.terminalOptions...)
	h.terminal, err = termline.New(termline.NewReaderSource(runCtx, editorIn), h.output, options...)
	if err != nil {
		cancel()
		_ = closeEditor()
		_ = console.Close()
		return nil, err
	}

	go h.run()

	return h, nil
}

func (h *Harness) run() {
	defer close(h.done)
	for {
		line, err := h.terminal.ReadLine(h.ctx)
		var encErr *termline.EncodingError
		if errors.As(err, &encErr) {
			continue
		}
		if err != nil {
			h.err = err
			return
		}

		h.linesMu.Lock()
		h.lines = append(h.lines, line)
		h.linesMu.Unlock()

		if h.handler != nil {
			w := h.terminal.Writer()
			err := h.handler(w, line)
			if flushErr := w.Flush(); err == nil && flushErr != nil {
				err = &termline.TransportError{Op: "write", Err: flushErr}
			}
			if err != nil {
				h.err = err
				return
			}
		}
	}
}

// Console returns the user's side of the session.
func (h *Harness) Console() *Console { return h.console }

// Redraw returns the redraw signal the Terminal was configured with.
func (h *Harness) Redraw() *termline.Signal { return h.redraw }

// Output returns the writer shared with the Terminal, for use by other
// producers (see package notify).
func (h *Harness) Output() io.Writer { return h.output }

// Terminal returns the Terminal under test. It must not be used until the
// session has ended (see WaitExit).
func (h *Harness) Terminal() *termline.Terminal { return h.terminal }

// Lines returns the lines accepted so far.
func (h *Harness) Lines() []string {
	h.linesMu.Lock()
	defer h.linesMu.Unlock()
	return append([]string(nil), h.lines...)
}

// AwaitLines waits until at least n lines have been accepted, or the session
// ends, returning the lines.
func (h *Harness) AwaitLines(ctx context.Context, n int) ([]string, error) {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		if lines := h.Lines(); len(lines) >= n {
			return lines, nil
		}
		select {
		case <-ctx.Done():
			return h.Lines(), ctx.Err()
		case <-h.done:
			if lines := h.Lines(); len(lines) >= n {
				return lines, nil
			}
			return h.Lines(), fmt.Errorf("termtest: session ended: %w", h.err)
		case <-ticker.C:
		}
	}
}

// WaitExit waits for the session to end, returning the error that ended it,
// e.g. termline.ErrEndOfInput.
func (h *Harness) WaitExit(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return h.err
	}
}

// Close ends the session, if it is still running, and releases all
// resources.
func (h *Harness) Close() error {
	h.closeOnce.Do(func() {
		h.cancel()

		var errs []error

		// editor side first, so the console observes EOF
		if err := h.closeEditor(); err != nil {
			errs = append(errs, fmt.Errorf("close editor: %w", err))
		}

		select {
		case <-h.done:
		case <-time.After(harnessWaitOnCloseTimeout):
			errs = append(errs, errors.New("timeout waiting for the session to end"))
		}

		if err := h.console.Close(); err != nil {
			errs = append(errs, err)
		}

		if len(errs) != 0 {
			h.closeErr = fmt.Errorf("termtest: %w", errors.Join(errs...))
		}
	})
	return h.closeErr
}
