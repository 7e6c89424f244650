package logger

import (
	"io"

	"github.com/jxo-me/ddns-updater/core/logger"
)

// Nop returns a logger that discards everything.
func Nop() logger.ILogger {
	return NewLogger(OutputLoggerOption(io.Discard))
}
