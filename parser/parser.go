// Package parser splits an accepted line into a command name and arguments.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput    = errors.New("parser: empty input")
	ErrTooManyArgs   = errors.New("parser: too many arguments")
	ErrArgTooLong    = errors.New("parser: argument too long")
	ErrUnclosedQuote = errors.New("parser: unclosed quote")
)

const (
	DefaultMaxArgs   = 8
	DefaultMaxArgLen = 64
)

type (
	// Parser tokenizes command lines, enforcing limits on the number of
	// arguments and the length of each token (including the command name).
	// The zero value uses the defaults.
	Parser struct {
		// MaxArgs is the maximum number of arguments, not counting the
		// command name. Defaults to DefaultMaxArgs, if <= 0.
		MaxArgs int

		// MaxArgLen is the maximum length of any token, in bytes. Defaults
		// to DefaultMaxArgLen, if <= 0.
		MaxArgLen int
	}

	// Command is a parsed command line.
	Command struct {
		name string
		args []string
	}
)

// Parse is Parser.Parse using the default limits.
func Parse(input string) (*Command, error) { return (&Parser{}).Parse(input) }

// ParseSimple is Parser.ParseSimple using the default limits.
func ParseSimple(input string) (*Command, error) { return (&Parser{}).ParseSimple(input) }

// ParseMaxSplit is Parser.ParseMaxSplit using the default limits.
func ParseMaxSplit(input string, maxSplits int) (*Command, error) {
	return (&Parser{}).ParseMaxSplit(input, maxSplits)
}

// Parse splits input on spaces, grouping words within double quotes. The
// quotes themselves are removed, and may appear mid-token, e.g. a"b c" is
// the single token ab c. Empty tokens are never produced.
func (p *Parser) Parse(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	if input == `` {
		return nil, ErrEmptyInput
	}

	t := p.tokens()
	var (
		current  strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case (c == ' ' || c == '\t') && !inQuotes:
			if current.Len() != 0 {
				if err := t.push(current.String()); err != nil {
					return nil, err
				}
				current.Reset()
			}
		default:
			if current.Len() >= t.maxLen {
				return nil, fmt.Errorf("%w: %q...", ErrArgTooLong, current.String())
			}
			current.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, ErrUnclosedQuote
	}
	if current.Len() != 0 {
		if err := t.push(current.String()); err != nil {
			return nil, err
		}
	}
	return t.command()
}

// ParseSimple splits input on whitespace, without quote handling.
func (p *Parser) ParseSimple(input string) (*Command, error) {
	t := p.tokens()
	for _, field := range strings.Fields(input) {
		if err := t.push(field); err != nil {
			return nil, err
		}
	}
	return t.command()
}

// ParseMaxSplit splits input on spaces at most maxSplits times, the
// remainder (if any) becoming the final token, verbatim. The first split
// separates the command name, so a maxSplits of 1 yields at most one
// argument.
func (p *Parser) ParseMaxSplit(input string, maxSplits int) (*Command, error) {
	remaining := strings.TrimSpace(input)
	t := p.tokens()
	for split := 0; split < maxSplits; split++ {
		part, rest, ok := strings.Cut(remaining, ` `)
		if !ok {
			break
		}
		if err := t.push(part); err != nil {
			return nil, err
		}
		remaining = strings.TrimLeft(rest, ` `)
	}
	if remaining != `` {
		if err := t.push(remaining); err != nil {
			return nil, err
		}
	}
	return t.command()
}

type tokens struct {
	parts   []string
	maxArgs int
	maxLen  int
}

func (p *Parser) tokens() *tokens {
	t := tokens{maxArgs: p.MaxArgs, maxLen: p.MaxArgLen}
	if t.maxArgs <= 0 {
		t.maxArgs = DefaultMaxArgs
	}
	if t.maxLen <= 0 {
		t.maxLen = DefaultMaxArgLen
	}
	return &t
}

func (t *tokens) push(s string) error {
	if len(s) > t.maxLen {
		return fmt.Errorf("%w: %q", ErrArgTooLong, s)
	}
	if len(t.parts) > t.maxArgs {
		return fmt.Errorf("%w: limit is %d", ErrTooManyArgs, t.maxArgs)
	}
	t.parts = append(t.parts, s)
	return nil
}

func (t *tokens) command() (*Command, error) {
	if len(t.parts) == 0 {
		return nil, ErrEmptyInput
	}
	return &Command{name: t.parts[0], args: t.parts[1:]}, nil
}

// Name returns the command name, the first token.
func (c *Command) Name() string { return c.name }

// ArgCount returns the number of arguments, excluding the name.
func (c *Command) ArgCount() int { return len(c.args) }

// Arg returns the argument at index, if present.
func (c *Command) Arg(index int) (string, bool) {
	if index < 0 || index >= len(c.args) {
		return ``, false
	}
	return c.args[index], true
}

// Args returns a copy of the arguments.
func (c *Command) Args() []string {
	return append([]string(nil), c.args...)
}

// ArgsJoined joins the arguments with sep.
func (c *Command) ArgsJoined(sep string) string {
	return strings.Join(c.args, sep)
}

// FullCommand returns the name and arguments joined by single spaces. Quotes
// are not restored.
func (c *Command) FullCommand() string {
	if len(c.args) == 0 {
		return c.name
	}
	return c.name + ` ` + c.ArgsJoined(` `)
}

func (c *Command) String() string { return c.FullCommand() }
