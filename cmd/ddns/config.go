package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/core/logger"
	pkglogger "github.com/jxo-me/ddns-updater/pkg/logger"
	xlogger "github.com/jxo-me/ddns-updater/sdk/logger"
)

// settingsFromContext loads the settings file and lets explicitly set
// flags override it.
func settingsFromContext(c *cli.Context) (*config.Settings, error) {
	s, err := config.LoadSettings(c.String(settingsFlag))
	if err != nil {
		return nil, err
	}
	if s.Log == nil {
		s.Log = &config.LogConfig{}
	}
	if c.IsSet(periodFlag) {
		if s.Period, err = config.ParsePeriod(c.String(periodFlag)); err != nil {
			return nil, err
		}
	}
	if c.IsSet(scheduleFlag) {
		s.Schedule = c.String(scheduleFlag)
	}
	if c.IsSet(pkglogger.LogLevelFlag) {
		s.Log.Level = c.String(pkglogger.LogLevelFlag)
	}
	if c.IsSet(pkglogger.LogOutputFlag) {
		s.Log.Output = c.String(pkglogger.LogOutputFlag)
	}
	if c.IsSet(logFormatFlag) {
		s.Log.Format = c.String(logFormatFlag)
	}
	if c.IsSet(whatsMyIPFlag) {
		s.WhatsMyIPURL = c.String(whatsMyIPFlag)
	}
	if c.IsSet(dnsServerFlag) {
		s.DNSServer = c.String(dnsServerFlag)
	}
	return s, nil
}

func configPathFromContext(c *cli.Context) string {
	if p := c.String(configPathFlag); p != "" {
		return config.ExpandPath(p)
	}
	return config.GetConfigFilePath()
}

func logFromConfig(cfg *config.LogConfig) logger.ILogger {
	if cfg == nil {
		cfg = &config.LogConfig{}
	}
	opts := []xlogger.LoggerOption{
		xlogger.FormatLoggerOption(logger.LogFormat(cfg.Format)),
		xlogger.LevelLoggerOption(logger.LogLevel(cfg.Level)),
	}

	output, rotation := cfg.Output, cfg.Rotation
	// "file" means logs/ddns.log, relative to the working directory, rotated
	if output == "file" {
		output = consts.DefaultLogFile
		if rotation == nil {
			rotation = &config.LogRotationConfig{MaxSize: 1}
		}
	}

	var out io.Writer = os.Stderr
	switch output {
	case "none", "null":
		return xlogger.Nop()
	case "stdout":
		out = os.Stdout
	case "stderr", "":
		out = os.Stderr
	default:
		if rotation != nil {
			backups := rotation.MaxBackups
			if backups == 0 {
				backups = consts.DefaultLogMaxBackups
			}
			out = &lumberjack.Logger{
				Filename:   output,
				MaxSize:    rotation.MaxSize,
				MaxAge:     rotation.MaxAge,
				MaxBackups: backups,
				LocalTime:  rotation.LocalTime,
				Compress:   rotation.Compress,
			}
		} else {
			_ = os.MkdirAll(filepath.Dir(output), 0755)
			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				logger.Default().Warn(err)
			} else {
				out = f
			}
		}
	}
	opts = append(opts, xlogger.OutputLoggerOption(out))

	return xlogger.NewLogger(opts...)
}
