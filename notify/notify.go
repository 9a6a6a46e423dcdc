// Package notify prints asynchronous messages (e.g. logs, or events from a
// device) above the line being edited, then requests that the line be
// repainted.
//
// A Notifier shares its output with a termline.Terminal, which must be
// configured with the same redraw signal, and should write through the same
// termline.SyncWriter:
//
//	out := termline.NewSyncWriter(port)
//	redraw := termline.NewSignal()
//	n := notify.New(out, redraw)
//	go n.Run(ctx)
//	t, err := termline.New(src, out, termline.WithRedrawSignal(redraw))
package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	termline "github.com/joeycumines/go-termline"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("notify: closed")

const (
	DefaultQueueSize = 64
	DefaultMaxBatch  = 16
	DefaultLinger    = 10 * time.Millisecond
)

type (
	// Notifier queues messages, and prints them in batches, from Run.
	Notifier struct {
		out       io.Writer
		redraw    *termline.Signal
		queue     chan []byte
		closed    chan struct{}
		closeOnce sync.Once
		ansi      bool
		maxBatch  int
		linger    time.Duration
	}

	// Option configures a Notifier, see New.
	Option func(n *notifierConfig)

	notifierConfig struct {
		queueSize int
		maxBatch  int
		linger    time.Duration
		ansi      bool
	}
)

// WithQueueSize sets the number of messages that may be pending before Write
// blocks. Defaults to DefaultQueueSize.
func WithQueueSize(size int) Option {
	return func(c *notifierConfig) { c.queueSize = size }
}

// WithBatch sets the maximum number of messages printed at once, and how
// long to wait for more messages after the first. Defaults to
// DefaultMaxBatch and DefaultLinger.
func WithBatch(maxBatch int, linger time.Duration) Option {
	return func(c *notifierConfig) {
		c.maxBatch = maxBatch
		c.linger = linger
	}
}

// WithANSI controls whether the line is erased with ESC [ K before printing.
// Enabled by default.
func WithANSI(ansi bool) Option {
	return func(c *notifierConfig) { c.ansi = ansi }
}

// New constructs a Notifier printing to out. The redraw signal is raised
// after each batch, it may be nil.
func New(out io.Writer, redraw *termline.Signal, options ...Option) *Notifier {
	if out == nil {
		panic(`notify: nil output`)
	}
	c := notifierConfig{
		queueSize: DefaultQueueSize,
		maxBatch:  DefaultMaxBatch,
		linger:    DefaultLinger,
		ansi:      true,
	}
	for _, o := range options {
		o(&c)
	}
	if c.queueSize < 0 {
		c.queueSize = 0
	}
	if c.maxBatch <= 0 {
		c.maxBatch = DefaultMaxBatch
	}
	return &Notifier{
		out:      out,
		redraw:   redraw,
		queue:    make(chan []byte, c.queueSize),
		closed:   make(chan struct{}),
		ansi:     c.ansi,
		maxBatch: c.maxBatch,
		linger:   c.linger,
	}
}

// Write queues a copy of p as one message, blocking while the queue is full.
// A single trailing newline is removed, as each message is printed on its
// own line.
func (n *Notifier) Write(p []byte) (int, error) {
	msg := bytes.Clone(bytes.TrimSuffix(bytes.TrimSuffix(p, []byte("\n")), []byte("\r")))
	select {
	case <-n.closed:
		return 0, ErrClosed
	default:
	}
	select {
	case <-n.closed:
		return 0, ErrClosed
	case n.queue <- msg:
		return len(p), nil
	}
}

// Print queues msg, see Write.
func (n *Notifier) Print(msg string) error {
	_, err := n.Write([]byte(msg))
	return err
}

// Close stops Run, after it prints any messages already queued. Subsequent
// writes fail with ErrClosed.
func (n *Notifier) Close() error {
	n.closeOnce.Do(func() { close(n.closed) })
	return nil
}

// Run prints queued messages until ctx is canceled, or Close is called, in
// which case it returns nil. It must be called at most once.
func (n *Notifier) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-n.closed:
			cancel()
		case <-ctx.Done():
		}
	}()

	w := termline.NewWriter(n.out, n.ansi)
	cfg := batchConfig{maxSize: n.maxBatch, linger: n.linger}
	var batch [][]byte
	handler := func(msg []byte) { batch = append(batch, msg) }

	for {
		batch = batch[:0]
		err := receiveBatch(ctx, cfg, n.queue, handler)
		if len(batch) != 0 {
			if err := n.print(w, batch); err != nil {
				return err
			}
		}
		if err != nil {
			select {
			case <-n.closed:
				return n.drain(w)
			default:
			}
			return err
		}
	}
}

// drain prints whatever is queued, without waiting.
func (n *Notifier) drain(w *termline.Writer) error {
	for {
		var batch [][]byte
	Receive:
		for len(batch) < n.maxBatch {
			select {
			case msg := <-n.queue:
				batch = append(batch, msg)
			default:
				break Receive
			}
		}
		if len(batch) == 0 {
			return nil
		}
		if err := n.print(w, batch); err != nil {
			return err
		}
	}
}

func (n *Notifier) print(w *termline.Writer, batch [][]byte) error {
	w.ClearLine()
	for _, msg := range batch {
		for line := range bytes.Lines(msg) {
			w.WriteRaw(bytes.TrimRight(line, "\r\n"))
			w.WriteRawString("\r\n")
		}
		if len(msg) == 0 {
			w.WriteRawString("\r\n")
		}
	}
	if err := w.Flush(); err != nil {
		return &termline.TransportError{Op: "write", Err: err}
	}
	if n.redraw != nil {
		n.redraw.Set()
	}
	return nil
}
