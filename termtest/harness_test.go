package termtest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	termline "github.com/joeycumines/go-termline"
	"github.com/joeycumines/go-termline/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarness(t *testing.T, opts ...Option) *Harness {
	t.Helper()
	h, err := NewHarness(context.Background(), opts...)
	if errors.Is(err, errors.ErrUnsupported) {
		t.Skip(err)
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

var transports = []struct {
	name string
	opts []Option
}{
	{name: "pipe"},
	{name: "pty", opts: []Option{WithPTY()}},
}

func TestHarness_editing(t *testing.T) {
	for _, tr := range transports {
		t.Run(tr.name, func(t *testing.T) {
			ctx := testContext(t)
			h := newHarness(t, tr.opts...)
			c := h.Console()

			require.NoError(t, c.Expect(ctx, Snapshot{}, LineEquals("> "), "prompt"))

			snap := c.Snapshot()
			_, err := c.WriteString("ab")
			require.NoError(t, err)
			require.NoError(t, c.Send("left"))
			require.NoError(t, c.Expect(ctx, snap, All(LineEquals("> ab"), CursorAt(3)), "cursor moved left"))

			_, err = c.WriteString("c")
			require.NoError(t, err)
			require.NoError(t, c.Expect(ctx, snap, All(LineEquals("> acb"), CursorAt(4)), "inserted mid line"))

			require.NoError(t, c.Send("backspace", "delete"))
			require.NoError(t, c.Expect(ctx, snap, All(LineEquals("> a"), CursorAt(3)), "deleted both sides"))

			require.NoError(t, c.Send("enter"))
			lines, err := h.AwaitLines(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"a"}, lines)
		})
	}
}

func TestHarness_history(t *testing.T) {
	for _, tr := range transports {
		t.Run(tr.name, func(t *testing.T) {
			ctx := testContext(t)
			history := termline.NewHistory(termline.DefaultHistoryConfig())
			h := newHarness(t, append(tr.opts, WithTerminalOptions(termline.WithHistory(history)))...)
			c := h.Console()

			require.NoError(t, c.SendLine("foo"))
			require.NoError(t, c.SendLine("bar"))
			_, err := h.AwaitLines(ctx, 2)
			require.NoError(t, err)

			snap := c.Snapshot()
			require.NoError(t, c.Send("up"))
			require.NoError(t, c.Expect(ctx, snap, LineEquals("> bar"), "newest entry"))
			require.NoError(t, c.Send("up"))
			require.NoError(t, c.Expect(ctx, snap, LineEquals("> foo"), "older entry"))
			require.NoError(t, c.Send("up"))
			require.NoError(t, c.Expect(ctx, snap, LineEquals("> foo"), "oldest entry sticks"))
			require.NoError(t, c.Send("down"))
			require.NoError(t, c.Expect(ctx, snap, LineEquals("> bar"), "newer entry"))
			require.NoError(t, c.Send("down"))
			require.NoError(t, c.Expect(ctx, snap, LineEquals("> "), "past the newest"))

			require.NoError(t, c.Send("up", "enter"))
			lines, err := h.AwaitLines(ctx, 3)
			require.NoError(t, err)
			assert.Equal(t, []string{"foo", "bar", "bar"}, lines)

			require.NoError(t, c.Send("ctrl+d"))
			assert.ErrorIs(t, h.WaitExit(ctx), termline.ErrEndOfInput)
			assert.Equal(t, []string{"foo", "bar"}, history.Entries())
		})
	}
}

func TestHarness_interrupt(t *testing.T) {
	ctx := testContext(t)
	h := newHarness(t)
	c := h.Console()

	snap := c.Snapshot()
	_, err := c.WriteString("oops")
	require.NoError(t, err)
	require.NoError(t, c.Send("ctrl+c"))
	require.NoError(t, c.Expect(ctx, snap, All(Contains("^C\n"), LineEquals("> ")), "interrupted"))

	require.NoError(t, c.SendLine("ok"))
	lines, err := h.AwaitLines(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, lines)
}

func TestHarness_lineHandler(t *testing.T) {
	ctx := testContext(t)
	stop := errors.New("stop")
	h := newHarness(t, WithLineHandler(func(w *termline.Writer, line string) error {
		if line == "quit" {
			return stop
		}
		w.Writeln("you said: " + strings.ToUpper(line))
		return nil
	}))
	c := h.Console()

	snap := c.Snapshot()
	require.NoError(t, c.SendLine("hello"))
	require.NoError(t, c.Expect(ctx, snap, Contains("you said: HELLO\n> "), "handler output"))

	require.NoError(t, c.SendLine("quit"))
	assert.ErrorIs(t, h.WaitExit(ctx), stop)

	_, err := h.AwaitLines(ctx, 3)
	assert.ErrorContains(t, err, "session ended")
}

func TestHarness_notify(t *testing.T) {
	for _, tr := range transports {
		t.Run(tr.name, func(t *testing.T) {
			ctx := testContext(t)
			h := newHarness(t, tr.opts...)
			c := h.Console()

			n := notify.New(h.Output(), h.Redraw())
			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() { _ = n.Run(runCtx) }()

			snap := c.Snapshot()
			_, err := c.WriteString("partial")
			require.NoError(t, err)
			require.NoError(t, c.Expect(ctx, snap, LineEquals("> partial"), "typed"))

			require.NoError(t, n.Print("link up"))
			require.NoError(t, c.Expect(ctx, snap, All(Contains("link up\n"), LineEquals("> partial")), "notification above the prompt"))

			require.NoError(t, c.Send("enter"))
			lines, err := h.AwaitLines(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"partial"}, lines)
		})
	}
}

func TestHarness_Close(t *testing.T) {
	for _, tr := range transports {
		t.Run(tr.name, func(t *testing.T) {
			h := newHarness(t, tr.opts...)
			require.NoError(t, h.Close())
			require.NoError(t, h.Close())

			err := h.WaitExit(context.Background())
			assert.Error(t, err)

			_, err = h.Console().WriteString("x")
			assert.Error(t, err)
		})
	}
}

func TestNewHarness_invalidOptions(t *testing.T) {
	_, err := NewHarness(context.Background(), WithSize(0, 80))
	assert.Error(t, err)

	_, err = NewHarness(context.Background(), WithDefaultTimeout(-1))
	assert.Error(t, err)

	_, err = NewHarness(context.Background(), WithTerminalOptions(termline.WithBufferCapacity(-1)))
	assert.ErrorContains(t, err, "invalid option")
}
