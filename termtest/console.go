package termtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

const consoleWaitOnDoneCloseTimeout = time.Second

var errConsoleReaderLoopTimeout = errors.New("termtest: timeout waiting for console reader loop to exit")

// Console is the user's side of a session: it sends keystrokes, and records
// everything displayed. It is safe for concurrent use, and implements
// io.Writer, io.StringWriter and io.Closer.
type Console struct {
	mu             sync.RWMutex
	output         bytes.Buffer
	in             io.WriteCloser // keystrokes, towards the editor
	out            io.ReadCloser  // display, from the editor
	defaultTimeout time.Duration
	done           chan struct{}
	closed         bool
	closeOnce      sync.Once
	closeErr       error
}

// Snapshot marks a point in the recorded output.
type Snapshot struct {
	offset int
}

// newConsole starts recording out. If in and out are the same (e.g. a pty
// master), it is closed once.
func newConsole(in io.WriteCloser, out io.ReadCloser, timeout time.Duration) *Console {
	c := &Console{
		in:             in,
		out:            out,
		defaultTimeout: timeout,
		done:           make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Snapshot captures the current end of the output. Take it immediately
// before an action, to assert on what the action displayed.
func (c *Console) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{offset: c.output.Len()}
}

// Await blocks until the output since the snapshot satisfies cond, or ctx
// is done.
func (c *Console) Await(ctx context.Context, since Snapshot, cond Condition) error {
	if c.checkCondition(since, cond) {
		return nil
	}

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if c.checkCondition(since, cond) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if c.checkCondition(since, cond) {
				return nil
			}
		}
	}
}

// Expect is Await with a descriptive error, applying the default timeout if
// ctx has no deadline.
func (c *Console) Expect(ctx context.Context, since Snapshot, cond Condition, description string) error {
	waitCtx := ctx
	if _, ok := ctx.Deadline(); !ok && c.defaultTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.defaultTimeout)
		defer cancel()
	}
	if err := c.Await(waitCtx, since, cond); err != nil {
		return fmt.Errorf("termtest: expected %s: %w\noutput since snapshot: %q", description, err, c.since(since))
	}
	return nil
}

func (c *Console) checkCondition(since Snapshot, cond Condition) bool {
	return cond(c.since(since))
}

func (c *Console) since(s Snapshot) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.output.String()
	if s.offset > len(out) {
		return out
	}
	return out[s.offset:]
}

// Write sends raw bytes to the editor.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return 0, io.ErrClosedPipe
	}
	return c.in.Write(p)
}

// WriteString sends a raw string to the editor.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Send sends each of keys, see LookupKey for the names.
func (c *Console) Send(keys ...string) error {
	var b []byte
	for _, k := range keys {
		seq, err := LookupKey(k)
		if err != nil {
			return err
		}
		b = append(b, seq...)
	}
	_, err := c.Write(b)
	return err
}

// SendLine sends input followed by Enter.
func (c *Console) SendLine(input string) error {
	_, err := c.WriteString(input + "\r")
	return err
}

// String returns all output recorded so far.
func (c *Console) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.output.String()
}

// Line returns the line the cursor is on, as a terminal would display it,
// and the cursor column.
func (c *Console) Line() (string, int) {
	return renderLine(c.String())
}

// Close stops recording, and closes both directions.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.close()
	})
	return c.closeErr
}

func (c *Console) close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	var errs []error
	if err := c.in.Close(); err != nil {
		errs = append(errs, err)
	}
	if any(c.out) != any(c.in) {
		if err := c.out.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	select {
	case <-c.done:
	case <-time.After(consoleWaitOnDoneCloseTimeout):
		errs = append(errs, errConsoleReaderLoopTimeout)
	}

	if len(errs) != 0 {
		return fmt.Errorf("termtest: close: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Console) readLoop() {
	defer close(c.done)
	buf := make([]byte, 4096)
	for {
		n, err := c.out.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.output.Write(buf[:n])
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}
