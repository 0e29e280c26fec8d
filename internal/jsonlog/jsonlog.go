package jsonlog

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Define a Level type to represent the severity level for a log entry.
type Level int8

// Initialize constants which represent a specific severity level. We use the iota keyword as a shortcut to
// assign successive integer values to the constants.
const (
	LevelInfo  Level = iota // Has the value 0.
	LevelError              // Has the value 1.
	LevelFatal              // Has the value 2.
	LevelOff                // Has the value 3.
)

// Return a human-friendly string for the severity level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

// ParseLevel converts the value of the -log-level command-line flag into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelOff, fmt.Errorf("jsonlog: unknown log level %q", s)
	}
}

// Logger writes one JSON object per line to the output destination. The encoding, locking of the writer
// and stack trace capture are handled by a zap core, we only hold the minimum severity level that log
// entries will be written for.
type Logger struct {
	zl       *zap.Logger
	minLevel Level
}

// New returns a Logger instance which writes log entries at or above a minimum severity level to a
// specific output destination.
func New(out io.Writer, minLevel Level) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "message",
		StacktraceKey:  "trace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	enabled := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel != LevelOff && fromZapLevel(lvl) >= minLevel
	})

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(out)), enabled)

	return &Logger{
		zl:       zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)),
		minLevel: minLevel,
	}
}

// Declare some helper methods for writing log entries at the different levels. Notice that these all
// accept a map as the second parameter which can contain any arbitrary 'properties' that you want to
// appear in the log entry.
func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.zl.Info(message, fieldsFor(properties)...)
}

func (l *Logger) PrintError(err error, properties map[string]string) {
	l.zl.Error(err.Error(), fieldsFor(properties)...)
}

// PrintFatal writes the entry and terminates the application with exit status 1.
func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.zl.Fatal(err.Error(), fieldsFor(properties)...)
}

// We also implement a Write() method on our Logger type so that it satisfies the io.Writer interface.
// This writes a log entry at the ERROR level with no additional properties, and lets us hand the logger
// to http.Server as its ErrorLog.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.zl.Error(string(bytes.TrimSpace(message)))
	return len(message), nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func fieldsFor(properties map[string]string) []zap.Field {
	if len(properties) == 0 {
		return nil
	}
	return []zap.Field{zap.Any("properties", properties)}
}

func fromZapLevel(lvl zapcore.Level) Level {
	switch {
	case lvl < zapcore.ErrorLevel:
		return LevelInfo
	case lvl < zapcore.FatalLevel:
		return LevelError
	default:
		return LevelFatal
	}
}
