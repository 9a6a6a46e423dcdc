package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	termline "github.com/joeycumines/go-termline"
	"github.com/joeycumines/go-termline/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, input string, options ...termline.Option) (*shell, *bytes.Buffer) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	var out bytes.Buffer
	terminal, err := termline.New(
		termline.NewReaderSource(ctx, strings.NewReader(input)),
		&out,
		append([]termline.Option{termline.WithANSI(false)}, options...)...,
	)
	require.NoError(t, err)
	return &shell{terminal: terminal}, &out
}

func TestShell_run(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    string
		history  bool
		contains []string
		excludes []string
	}{
		{
			name:     "echo",
			input:    "echo \"a b\"  c\r",
			contains: []string{"\r\na b c\r\n"},
		},
		{
			name:     "help",
			input:    "help\r",
			contains: []string{"commands:\r\n", "  quit, exit       end the session\r\n"},
		},
		{
			name:    "history",
			input:   "echo \"a b\" c\rhistory\r",
			history: true,
			contains: []string{
				"   1  echo \"a b\" c\r\n",
				"   2  history\r\n",
			},
		},
		{
			name:     "history clear",
			input:    "a\rhistory clear\rhistory\r",
			history:  true,
			contains: []string{"history cleared\r\n", "   1  history\r\n"},
			excludes: []string{"   1  a\r\n", "   2  "},
		},
		{
			name:     "history disabled",
			input:    "history\r",
			contains: []string{"history is disabled\r\n"},
		},
		{
			name:     "history bad argument",
			input:    "history frob\r",
			history:  true,
			contains: []string{"history: unknown argument: frob\r\n"},
		},
		{
			name:     "prompt",
			input:    "prompt $$\recho hi\r",
			contains: []string{"\r$$ echo hi\r\n", "\r\nhi\r\n$$ "},
		},
		{
			name:     "prompt missing text",
			input:    "prompt\r",
			contains: []string{"prompt: missing text\r\n"},
		},
		{
			name:     "unknown",
			input:    "frob\r",
			contains: []string{"unknown command: frob (try help)\r\n"},
		},
		{
			name:     "parse error",
			input:    "echo \"oops\r",
			contains: []string{"parser: unclosed quote\r\n"},
		},
		{
			name:     "empty lines ignored",
			input:    "\r   \r",
			excludes: []string{"parser:"},
		},
		{
			name:     "notify disabled",
			input:    "notify x\r",
			contains: []string{"notifications are disabled\r\n"},
		},
		{
			name:     "quit",
			input:    "quit\recho unreachable\r",
			contains: []string{"bye\r\n"},
			excludes: []string{"unreachable\r\n"},
		},
		{
			name:     "exit",
			input:    "exit\r",
			contains: []string{"bye\r\n"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var options []termline.Option
			if tc.history {
				options = append(options, termline.WithHistoryConfig(termline.DefaultHistoryConfig()))
			}
			sh, out := newTestShell(t, tc.input, options...)
			require.NoError(t, sh.run(context.Background()))
			for _, s := range tc.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestShell_notify(t *testing.T) {
	var messages []string
	sh, out := newTestShell(t, "notify link  up\rnotify fail\r")
	sh.notify = func(msg string) error {
		if msg == `fail` {
			return errors.New(`notify: closed`)
		}
		messages = append(messages, msg)
		return nil
	}
	require.NoError(t, sh.run(context.Background()))
	assert.Equal(t, []string{`link up`}, messages)
	assert.Contains(t, out.String(), "notify: closed\r\n")
}

func TestShell_maxArgs(t *testing.T) {
	sh, out := newTestShell(t, "echo a b c\recho a b\r")
	sh.parser = parser.Parser{MaxArgs: 2}
	require.NoError(t, sh.run(context.Background()))
	assert.Contains(t, out.String(), "parser: too many arguments: limit is 2\r\n")
	assert.Contains(t, out.String(), "\r\na b\r\n")
}

func TestShell_encodingError(t *testing.T) {
	history := termline.NewHistory(termline.DefaultHistoryConfig())
	require.NoError(t, history.Record([]byte{'a', 0xff}))
	sh, out := newTestShell(t, "\x1b[A\recho ok\r", termline.WithHistory(history))
	require.NoError(t, sh.run(context.Background()))
	assert.Contains(t, out.String(), "input is not valid UTF-8\r\n")
	assert.Contains(t, out.String(), "\r\nok\r\n")
}

func TestShell_ansiStatus(t *testing.T) {
	sh, out := newTestShell(t, "quit\r", termline.WithANSI(true))
	require.NoError(t, sh.run(context.Background()))
	assert.True(t, strings.HasSuffix(out.String(), "\x1b[36mbye\x1b[0m\r\n"), "%q", out.String())
}

func TestShell_writeError(t *testing.T) {
	terminal, err := termline.New(
		termline.NewReaderSource(context.Background(), strings.NewReader("echo x\r")),
		failingWriter{},
	)
	require.NoError(t, err)
	sh := shell{terminal: terminal}
	err = sh.run(context.Background())
	var transportErr *termline.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, `write`, transportErr.Op)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New(`broken`) }
