package main

import (
	"flag"
	"io"
	"testing"
	"time"

	termline "github.com/joeycumines/go-termline"
	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_defaults(t *testing.T) {
	cfg, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, &config{
		baud:     115200,
		prompt:   termline.DefaultPrompt,
		history:  10,
		dedupe:   true,
		capacity: termline.DefaultBufferCapacity,
		maxArgs:  8,
		logLevel: logiface.LevelInformational,
		bell:     true,
	}, cfg)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		`-device`, `/dev/ttyUSB0`,
		`-baud`, `9600`,
		`-prompt`, `$ `,
		`-history`, `0`,
		`-dedupe=false`,
		`-no-echo`,
		`-no-ansi`,
		`-buffer`, `32`,
		`-max-args`, `3`,
		`-log-level`, `debug`,
		`-heartbeat`, `2s`,
		`-bell=false`,
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, &config{
		device:    `/dev/ttyUSB0`,
		baud:      9600,
		prompt:    `$ `,
		noEcho:    true,
		noANSI:    true,
		capacity:  32,
		maxArgs:   3,
		logLevel:  logiface.LevelDebug,
		heartbeat: 2 * time.Second,
	}, cfg)
}

func TestParseFlags_invalid(t *testing.T) {
	for _, args := range [][]string{
		{`-baud`, `0`},
		{`-buffer`, `-1`},
		{`-history`, `-1`},
		{`-max-args`, `0`},
		{`-heartbeat`, `-1s`},
		{`-log-level`, `loud`},
		{`-unknown`},
		{`extra`},
	} {
		_, err := parseFlags(args, io.Discard)
		assert.Error(t, err, args)
	}

	_, err := parseFlags([]string{`-h`}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]logiface.Level{
		`disabled`: logiface.LevelDisabled,
		`emerg`:    logiface.LevelEmergency,
		`err`:      logiface.LevelError,
		`error`:    logiface.LevelError,
		`warning`:  logiface.LevelWarning,
		`warn`:     logiface.LevelWarning,
		`info`:     logiface.LevelInformational,
		`trace`:    logiface.LevelTrace,
	} {
		got, err := parseLevel(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, want, got, s)
		}
	}

	_, err := parseLevel(`INFO`)
	assert.Error(t, err)
}

func TestTerminalOptions(t *testing.T) {
	cfg, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	terminal, err := termline.New(
		termline.NewReaderSource(t.Context(), eofReader{}),
		io.Discard,
		terminalOptions(cfg, termline.NewSignal(), nil)...,
	)
	require.NoError(t, err)
	require.NotNil(t, terminal.History())
	assert.Equal(t, 10, terminal.History().Cap())
	assert.Equal(t, termline.DefaultBufferCapacity, terminal.Buffer().Cap())

	cfg.history = 0
	terminal, err = termline.New(
		termline.NewReaderSource(t.Context(), eofReader{}),
		io.Discard,
		terminalOptions(cfg, nil, nil)...,
	)
	require.NoError(t, err)
	assert.Nil(t, terminal.History())
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
