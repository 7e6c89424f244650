package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jxo-me/ddns-updater/consts"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), s.Period)
	assert.Equal(t, consts.DefaultHTTPTimeout, s.Timeout)
	assert.Equal(t, consts.DefaultWhatsMyIPURL, s.WhatsMyIPURL)
	require.NotNil(t, s.Log)
	assert.Equal(t, "stderr", s.Log.Output)
	assert.Equal(t, "info", s.Log.Level)
	assert.Nil(t, s.Log.Rotation)
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", `
period: 15m
schedule: "*/5 * * * *"
whats_my_ip_url: https://ip.example.com
log:
  output: /var/log/ddns/ddns.log
  level: debug
  rotation:
    max_size: 1
    max_backups: 5
webhook:
  url: https://hooks.example.com/?ip=#{ip}
`)
	t.Setenv("DDNS_LOG_LEVEL", "warn")
	t.Setenv("DDNS_TIMEOUT", "3s")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, s.Period)
	assert.Equal(t, "*/5 * * * *", s.Schedule)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, "https://ip.example.com", s.WhatsMyIPURL)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, "/var/log/ddns/ddns.log", s.Log.Output)
	require.NotNil(t, s.Log.Rotation)
	assert.Equal(t, 5, s.Log.Rotation.MaxBackups)
	require.NotNil(t, s.Webhook)
	assert.Equal(t, "https://hooks.example.com/?ip=#{ip}", s.Webhook.WebhookURL)
}

func TestLoadSettingsPeriodInMinutes(t *testing.T) {
	t.Setenv("DDNS_PERIOD", "15")
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, s.Period)

	t.Setenv("DDNS_PERIOD", "90s")
	s, err = LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, s.Period)

	t.Setenv("DDNS_PERIOD", "-2")
	_, err = LoadSettings("")
	assert.Error(t, err)
}

func TestLoadSettingsFilePeriodAsNumber(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.yaml", "period: 30\n")
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, s.Period)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings("/nonexistent/settings.yaml")
	assert.Error(t, err)
}

func TestParsePeriod(t *testing.T) {
	cases := map[string]time.Duration{
		"":    0,
		"0":   0,
		"15":  15 * time.Minute,
		"90s": 90 * time.Second,
		"1h":  time.Hour,
	}
	for in, want := range cases {
		got, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"-1", "soon", "-5m"} {
		_, err := ParsePeriod(in)
		assert.Error(t, err, in)
	}
}

func TestSettingsWrite(t *testing.T) {
	s := &Settings{
		Period:       5 * time.Minute,
		Timeout:      time.Second,
		WhatsMyIPURL: "https://ip.example.com",
		Log:          &LogConfig{Output: "stderr", Level: "info", Format: "text"},
		Webhook:      &Webhook{},
	}

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf, "yaml"))
	var y map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &y))
	assert.Equal(t, "5m0s", y["period"])
	assert.NotContains(t, y, "webhook")

	buf.Reset()
	require.NoError(t, s.Write(&buf, "json"))
	var j map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &j))
	assert.Equal(t, "https://ip.example.com", j["whats_my_ip_url"])

	assert.Error(t, s.Write(&buf, "xml"))
}
