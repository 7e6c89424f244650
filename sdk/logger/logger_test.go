package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/ddns-updater/core/logger"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(
		OutputLoggerOption(&buf),
		FormatLoggerOption(logger.JSONFormat),
		LevelLoggerOption(logger.DebugLevel),
	)
	assert.Equal(t, logger.DebugLevel, log.GetLevel())
	assert.True(t, log.IsLevelEnabled(logger.DebugLevel))
	assert.False(t, log.IsLevelEnabled(logger.TraceLevel))

	log.WithFields(map[string]any{"provider": "namecheap"}).Infof("Reported updated %s => %s", "1.1.1.1", "2.2.2.2")
	log.Trace("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "namecheap", entry["provider"])
	assert.Equal(t, "Reported updated 1.1.1.1 => 2.2.2.2", entry["msg"])
}

func TestNewLoggerDefaults(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(OutputLoggerOption(&buf), LevelLoggerOption("bogus"))
	assert.Equal(t, logger.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "shown")
}
