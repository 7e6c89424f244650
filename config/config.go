package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/internal/util"
)

// Settings are the process options, as opposed to the provider ini file:
// scheduling, timeouts, discovery endpoints, logging and the webhook.
type Settings struct {
	Period       time.Duration `mapstructure:"period"`
	Schedule     string        `mapstructure:"schedule"`
	Timeout      time.Duration `mapstructure:"timeout"`
	WhatsMyIPURL string        `mapstructure:"whats_my_ip_url"`
	DNSServer    string        `mapstructure:"dns_server"`
	Log          *LogConfig    `mapstructure:"log"`
	Webhook      *Webhook      `mapstructure:"webhook"`
}

// LoadSettings reads settings from defaults, DDNS_* environment variables
// and, when path is not empty, a yaml/json/toml settings file.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(consts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("period", "0s")
	v.SetDefault("schedule", "")
	v.SetDefault("timeout", consts.DefaultHTTPTimeout.String())
	v.SetDefault("whats_my_ip_url", consts.DefaultWhatsMyIPURL)
	v.SetDefault("dns_server", "")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.request_body", "")
	v.SetDefault("webhook.headers", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "error reading settings file '%s'", path)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		minutesHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}
	return s, nil
}

// minutesHookFunc decodes durations from files and the environment the
// same way the command line does: a bare number is minutes.
func minutesHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType {
			return data, nil
		}
		switch f.Kind() {
		case reflect.String:
			return ParsePeriod(data.(string))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return ParsePeriod(strconv.FormatInt(reflect.ValueOf(data).Int(), 10))
		default:
			return data, nil
		}
	}
}

// ParsePeriod accepts a bare number of minutes ("15") or a Go duration
// ("90s", "1h").
func ParsePeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("period must not be negative: %d", n)
		}
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: expected minutes or a duration like 15m", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("period must not be negative: %s", s)
	}
	return d, nil
}

type settingsView struct {
	Period       string     `json:"period" yaml:"period"`
	Schedule     string     `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Timeout      string     `json:"timeout" yaml:"timeout"`
	WhatsMyIPURL string     `json:"whats_my_ip_url" yaml:"whats_my_ip_url"`
	DNSServer    string     `json:"dns_server,omitempty" yaml:"dns_server,omitempty"`
	Log          *LogConfig `json:"log,omitempty" yaml:"log,omitempty"`
	Webhook      *Webhook   `json:"webhook,omitempty" yaml:"webhook,omitempty"`
}

// Write renders the effective settings as yaml or json.
func (s *Settings) Write(w io.Writer, format string) error {
	view := settingsView{
		Period:       s.Period.String(),
		Schedule:     s.Schedule,
		Timeout:      s.Timeout.String(),
		WhatsMyIPURL: s.WhatsMyIPURL,
		DNSServer:    s.DNSServer,
		Log:          s.Log,
	}
	if s.Webhook != nil && s.Webhook.WebhookURL != "" {
		view.Webhook = s.Webhook
	}

	switch format {
	case "json":
		enc := util.Json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// GetConfigFilePath 获得配置文件路径
func GetConfigFilePath() string {
	configFilePath := os.Getenv(consts.ConfigPathENV)
	if configFilePath != "" {
		return configFilePath
	}
	return GetConfigFilePathDefault()
}

// GetConfigFilePathDefault 获得默认的配置文件路径: ddns.ini next to the executable
func GetConfigFilePathDefault() string {
	exe, err := os.Executable()
	if err != nil {
		return consts.DefaultConfigFileName
	}
	return filepath.Join(filepath.Dir(exe), consts.DefaultConfigFileName)
}
