package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	LogLevelFlag  = "log-level"
	LogOutputFlag = "log-output"

	EnableTerminalLog  = false
	DisableTerminalLog = true
)

// CreateLoggerFromContext builds the console logger used for operator
// facing messages of the command line: preflight problems, service exits.
// With disableTerminal set, and a log file configured, messages only go
// to the service log.
func CreateLoggerFromContext(c *cli.Context, disableTerminal bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if c != nil {
		if lvl, err := zerolog.ParseLevel(c.String(LogLevelFlag)); err == nil && lvl != zerolog.NoLevel {
			level = lvl
		}
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if disableTerminal && c != nil {
		switch c.String(LogOutputFlag) {
		case "", "stderr", "stdout":
		default:
			out = io.Discard
		}
	}
	log := zerolog.New(out).With().Timestamp().Logger().Level(level)
	return &log
}
