package logger

import "sync"

// LogFormat is format type
type LogFormat string

const (
	TextFormat LogFormat = "text"
	JSONFormat LogFormat = "json"
)

// LogLevel is Logger Level type
type LogLevel string

const (
	// TraceLevel level. Designates finer-grained informational events than the Debug.
	TraceLevel LogLevel = "trace"
	// DebugLevel level. Usually only enabled when debugging. Very verbose logging.
	DebugLevel LogLevel = "debug"
	// InfoLevel is the default logging priority.
	// General operational entries about what's going on inside the application.
	InfoLevel LogLevel = "info"
	// WarnLevel level. Non-critical entries that deserve eyes.
	WarnLevel LogLevel = "warn"
	// ErrorLevel level. Logs. Used for errors that should definitely be noted.
	ErrorLevel LogLevel = "error"
	// FatalLevel level. Logs and then calls `logger.Exit(1)`. highest level of severity.
	FatalLevel LogLevel = "fatal"
)

type ILogger interface {
	WithFields(map[string]any) ILogger
	Trace(args ...any)
	Tracef(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	GetLevel() LogLevel
	IsLevelEnabled(level LogLevel) bool
}

var (
	mu            sync.RWMutex
	defaultLogger ILogger = &nopLogger{}
)

func Default() ILogger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func SetDefault(l ILogger) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

type nopLogger struct{}

func (l *nopLogger) WithFields(map[string]any) ILogger { return l }
func (l *nopLogger) Trace(args ...any) {}
func (l *nopLogger) Tracef(format string, args ...any) {}
func (l *nopLogger) Debug(args ...any) {}
func (l *nopLogger) Debugf(format string, args ...any) {}
func (l *nopLogger) Info(args ...any) {}
func (l *nopLogger) Infof(format string, args ...any) {}
func (l *nopLogger) Warn(args ...any) {}
func (l *nopLogger) Warnf(format string, args ...any) {}
func (l *nopLogger) Error(args ...any) {}
func (l *nopLogger) Errorf(format string, args ...any) {}
func (l *nopLogger) Fatal(args ...any) {}
func (l *nopLogger) Fatalf(format string, args ...any) {}
func (l *nopLogger) GetLevel() LogLevel { return InfoLevel }
func (l *nopLogger) IsLevelEnabled(level LogLevel) bool { return false }
