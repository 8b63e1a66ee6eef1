// Package logging provides a leveled logger backed by zap.
package logging

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.FatalLevel
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger. Loggers derived with With share the level.
type Logger struct {
	mu     sync.Mutex
	level  zap.AtomicLevel
	fields []interface{}
	sugar  atomic.Pointer[zap.SugaredLogger]
}

// New creates a new logger writing console-encoded lines to stderr.
func New(level Level) *Logger {
	l := &Logger{level: zap.NewAtomicLevelAt(level.zapLevel())}
	l.build(os.Stderr)
	return l
}

// NewWithCore creates a logger on an existing zap core. The core's own
// level filter applies in addition to the logger's.
func NewWithCore(core zapcore.Core, level Level) *Logger {
	l := &Logger{level: zap.NewAtomicLevelAt(level.zapLevel())}
	if leveled, err := zapcore.NewIncreaseLevelCore(core, l.level); err == nil {
		core = leveled
	}
	l.sugar.Store(zap.New(core).Sugar())
	return l
}

func (l *Logger) build(w io.Writer) {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), l.level)
	l.sugar.Store(zap.New(core).Sugar().With(l.fields...))
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.build(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// With returns a child logger that adds key/value pairs to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	child := &Logger{
		level:  l.level,
		fields: append(append([]interface{}{}, l.fields...), keysAndValues...),
	}
	child.sugar.Store(l.sugar.Load().With(keysAndValues...))
	return child
}

// Zap returns the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Load().Desugar()
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Load().Sync()
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Load().Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Load().Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Load().Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Load().Errorf(format, args...)
}

// Infow logs a message with key/value context.
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Load().Infow(msg, keysAndValues...)
}

// Warnw logs a warning with key/value context.
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Load().Warnw(msg, keysAndValues...)
}

func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Load().Errorw(msg, keysAndValues...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := &Logger{level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
	l.sugar.Store(zap.NewNop().Sugar())
	return l
}
