// Command termline is a small interactive shell, on the controlling terminal
// or a serial device, built using the termline packages.
//
// Logs, and other asynchronous output, are printed above the line being
// edited. See the help command for usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	termline "github.com/joeycumines/go-termline"
	"github.com/joeycumines/go-termline/notify"
	"github.com/joeycumines/go-termline/parser"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, `termline:`, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		stop()
		fmt.Fprintln(os.Stderr, `termline:`, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config) (err error) {
	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dev.close(); err == nil {
			err = closeErr
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := termline.NewSyncWriter(dev.out)
	redraw := termline.NewSignal()

	n := notify.New(out, redraw, notify.WithANSI(!cfg.noANSI))
	notifyDone := make(chan error, 1)
	go func() { notifyDone <- n.Run(ctx) }()
	defer func() {
		_ = n.Close()
		if notifyErr := <-notifyDone; err == nil {
			err = notifyErr
		}
	}()

	logger := newLogger(n, cfg.logLevel)
	logger.Info().
		Str(`device`, dev.name).
		Log(`session started`)

	terminal, err := termline.New(termline.NewReaderSource(ctx, dev.in), out, terminalOptions(cfg, redraw, logger)...)
	if err != nil {
		return err
	}

	if cfg.heartbeat > 0 {
		go heartbeat(ctx, n, cfg.heartbeat)
	}

	sh := shell{
		terminal: terminal,
		parser:   parser.Parser{MaxArgs: cfg.maxArgs},
		notify:   n.Print,
		logger:   logger,
	}
	err = sh.run(ctx)

	logger.Info().Log(`session ended`)

	return err
}

func terminalOptions(cfg *config, redraw *termline.Signal, logger *logiface.Logger[logiface.Event]) []termline.Option {
	options := []termline.Option{
		termline.WithBufferCapacity(cfg.capacity),
		termline.WithPrompt(cfg.prompt),
		termline.WithEcho(!cfg.noEcho),
		termline.WithANSI(!cfg.noANSI),
		termline.WithRedrawSignal(redraw),
		termline.WithLogger(logger),
	}
	if cfg.history > 0 {
		options = append(options, termline.WithHistoryConfig(termline.HistoryConfig{
			MaxEntries:    cfg.history,
			EntryCapacity: cfg.capacity,
			Deduplicate:   cfg.dedupe,
		}))
	}
	if cfg.bell {
		options = append(options, termline.WithBell(termline.DefaultBellRates))
	}
	return options
}

// newLogger writes JSON logs to the notifier, one message per event.
func newLogger(n *notify.Notifier, level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(n)),
		stumpy.L.WithLevel(level),
	).Logger()
}

func heartbeat(ctx context.Context, n *notify.Notifier, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for count := 1; ; count++ {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if err := n.Print(fmt.Sprintf(`heartbeat %d at %s`, count, t.Format(time.TimeOnly))); err != nil {
				return
			}
		}
	}
}
