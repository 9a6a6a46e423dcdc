package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	termline "github.com/joeycumines/go-termline"
	"github.com/joeycumines/go-termline/parser"
	"github.com/joeycumines/logiface"
)

type config struct {
	device    string
	baud      int
	prompt    string
	history   int
	dedupe    bool
	noEcho    bool
	noANSI    bool
	capacity  int
	maxArgs   int
	logLevel  logiface.Level
	heartbeat time.Duration
	bell      bool
}

func parseFlags(args []string, output io.Writer) (*config, error) {
	cfg := config{
		logLevel: logiface.LevelInformational,
	}

	fs := flag.NewFlagSet(`termline`, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.device, `device`, ``, `serial device to use instead of the controlling terminal, e.g. /dev/ttyUSB0`)
	fs.IntVar(&cfg.baud, `baud`, 115200, `serial baud rate`)
	fs.StringVar(&cfg.prompt, `prompt`, termline.DefaultPrompt, `prompt text`)
	fs.IntVar(&cfg.history, `history`, 10, `number of lines kept for recall, 0 disables history`)
	fs.BoolVar(&cfg.dedupe, `dedupe`, true, `skip recording a line equal to the previous one`)
	fs.BoolVar(&cfg.noEcho, `no-echo`, false, `do not echo edits`)
	fs.BoolVar(&cfg.noANSI, `no-ansi`, false, `do not emit escape sequences`)
	fs.IntVar(&cfg.capacity, `buffer`, termline.DefaultBufferCapacity, `maximum line length, in bytes`)
	fs.IntVar(&cfg.maxArgs, `max-args`, parser.DefaultMaxArgs, `maximum number of command arguments`)
	fs.Func(`log-level`, `log level: emerg, alert, crit, err, warning, notice, info, debug, trace or disabled`, func(s string) (err error) {
		cfg.logLevel, err = parseLevel(s)
		return
	})
	fs.DurationVar(&cfg.heartbeat, `heartbeat`, 0, `interval between heartbeat notifications, 0 disables them`)
	fs.BoolVar(&cfg.bell, `bell`, true, `ring the bell when the line is full`)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf(`unexpected arguments: %q`, fs.Args())
	}
	if cfg.baud <= 0 {
		return nil, fmt.Errorf(`invalid -baud: %d`, cfg.baud)
	}
	if cfg.capacity <= 0 {
		return nil, fmt.Errorf(`invalid -buffer: %d`, cfg.capacity)
	}
	if cfg.history < 0 {
		return nil, fmt.Errorf(`invalid -history: %d`, cfg.history)
	}
	if cfg.maxArgs <= 0 {
		return nil, fmt.Errorf(`invalid -max-args: %d`, cfg.maxArgs)
	}
	if cfg.heartbeat < 0 {
		return nil, fmt.Errorf(`invalid -heartbeat: %s`, cfg.heartbeat)
	}

	return &cfg, nil
}

// parseLevel accepts the keywords produced by logiface.Level.String.
func parseLevel(s string) (logiface.Level, error) {
	for level := logiface.LevelDisabled; level <= logiface.LevelTrace; level++ {
		if level.String() == s {
			return level, nil
		}
	}
	switch s {
	case `error`:
		return logiface.LevelError, nil
	case `warn`:
		return logiface.LevelWarning, nil
	}
	return 0, fmt.Errorf(`unknown log level: %q`, s)
}
