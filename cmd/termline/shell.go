package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	termline "github.com/joeycumines/go-termline"
	"github.com/joeycumines/go-termline/parser"
	"github.com/joeycumines/logiface"
)

var errQuit = errors.New(`quit`)

const helpText = `commands:
  help             show this text
  echo ARGS...     print the arguments, "quoted words" are grouped
  history [clear]  list, or forget, recalled lines
  prompt TEXT      change the prompt
  notify TEXT      print TEXT asynchronously, above the prompt
  clear            clear the screen
  quit, exit       end the session`

// shell reads and runs commands until the session ends.
type shell struct {
	terminal *termline.Terminal
	parser   parser.Parser
	notify   func(msg string) error
	logger   *logiface.Logger[logiface.Event]
}

func (s *shell) run(ctx context.Context) error {
	for {
		line, err := s.terminal.ReadLine(ctx)
		if err != nil {
			var encErr *termline.EncodingError
			if !errors.As(err, &encErr) {
				if errors.Is(err, termline.ErrEndOfInput) {
					return nil
				}
				return err
			}
			s.status(s.terminal.Writer().WriteError, `input is not valid UTF-8`)
		} else {
			err = s.exec(line)
		}

		if flushErr := s.terminal.Writer().Flush(); flushErr != nil && err == nil {
			err = &termline.TransportError{Op: `write`, Err: flushErr}
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *shell) exec(line string) error {
	w := s.terminal.Writer()

	cmd, err := s.parser.Parse(line)
	if errors.Is(err, parser.ErrEmptyInput) {
		return nil
	}
	if err != nil {
		s.status(w.WriteError, err.Error())
		return nil
	}

	s.logger.Debug().
		Str(`command`, cmd.Name()).
		Int(`args`, cmd.ArgCount()).
		Log(`exec`)

	switch cmd.Name() {
	case `help`:
		for _, line := range strings.Split(helpText, "\n") {
			w.Writeln(line)
		}

	case `echo`:
		w.Writeln(cmd.ArgsJoined(` `))

	case `history`:
		history := s.terminal.History()
		if history == nil {
			s.status(w.WriteWarning, `history is disabled`)
			break
		}
		switch arg, _ := cmd.Arg(0); arg {
		case ``:
			i := 0
			for entry := range history.All() {
				i++
				w.Writeln(fmt.Sprintf(`%4d  %s`, i, entry))
			}
		case `clear`:
			history.Clear()
			s.status(w.WriteSuccess, `history cleared`)
		default:
			s.status(w.WriteError, fmt.Sprintf(`history: unknown argument: %s`, arg))
		}

	case `prompt`:
		// re-parsed to preserve the text verbatim
		cmd, err := s.parser.ParseMaxSplit(line, 1)
		if err != nil {
			s.status(w.WriteError, err.Error())
			break
		}
		text, ok := cmd.Arg(0)
		if !ok {
			s.status(w.WriteError, `prompt: missing text`)
			break
		}
		s.terminal.SetPrompt(text + ` `)

	case `notify`:
		if s.notify == nil {
			s.status(w.WriteWarning, `notifications are disabled`)
			break
		}
		if err := s.notify(cmd.ArgsJoined(` `)); err != nil {
			s.status(w.WriteError, err.Error())
		}

	case `clear`:
		w.ClearScreen()

	case `quit`, `exit`:
		s.status(w.WriteInfo, `bye`)
		return errQuit

	default:
		s.status(w.WriteError, fmt.Sprintf(`unknown command: %s (try help)`, cmd.Name()))
	}

	return nil
}

// status writes a colored message as a complete line.
func (s *shell) status(write func(msg string), msg string) {
	write(msg)
	if w := s.terminal.Writer(); w.ANSI() {
		w.Writeln(``)
	}
}
