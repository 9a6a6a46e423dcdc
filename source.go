package termline

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Source delivers input one byte at a time.
//
// Bytes returns a channel that is closed once the source is exhausted, after
// which Err reports why: io.EOF for a graceful end, any other error for an
// I/O failure. Bytes that have not been received remain pending in the
// channel.
type Source interface {
	Bytes() <-chan byte
	Err() error
}

// ReaderSource is a Source that pumps bytes from an io.Reader, in a
// dedicated goroutine. Reads may return any positive count, each byte is
// delivered individually, in order.
type ReaderSource struct {
	ch   chan byte
	done chan struct{}
	mu   sync.Mutex
	err  error
}

var _ Source = (*ReaderSource)(nil)

// NewReaderSource starts pumping r, until it returns an error, or ctx is
// canceled. Note that a read already blocked in r cannot be interrupted by
// ctx, close r to unblock it.
func NewReaderSource(ctx context.Context, r io.Reader) *ReaderSource {
	s := &ReaderSource{
		ch:   make(chan byte),
		done: make(chan struct{}),
	}
	go s.run(ctx, r)
	return s
}

func (s *ReaderSource) run(ctx context.Context, r io.Reader) {
	defer close(s.done)
	defer close(s.ch)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case <-ctx.Done():
				s.setErr(ctx.Err())
				return
			case s.ch <- b:
			}
		}
		if err != nil {
			s.setErr(err)
			return
		}
		if err := ctx.Err(); err != nil {
			s.setErr(err)
			return
		}
	}
}

func (s *ReaderSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Bytes implements Source.
func (s *ReaderSource) Bytes() <-chan byte { return s.ch }

// Err implements Source. It returns nil until the source is exhausted.
func (s *ReaderSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed once the pump goroutine has exited.
func (s *ReaderSource) Done() <-chan struct{} { return s.done }

// sourceError maps the terminal error of a source to the session outcome.
func sourceError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return ErrEndOfInput
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &TransportError{Op: "read", Err: err}
}
