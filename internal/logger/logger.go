// Package logger is the process-wide zap logger. Until Init is called every
// call is a no-op, so packages and tests may log freely.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zapLog = zap.NewNop()

// Init builds a development-style console logger writing to w, normally the
// command's stderr.
func Init(level zapcore.Level, w io.Writer) {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("Jan _2 15:04:05.000")
	encoderConfig.StacktraceKey = "" // to hide stacktrace info

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), level)
	zapLog = zap.New(core, zap.Development(), zap.AddCaller(), zap.AddCallerSkip(1))
}

// ParseLevel maps "debug", "info", "warn", "error" to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	err := lvl.UnmarshalText([]byte(s))
	return lvl, err
}

// Set swaps the logger, e.g. zap.NewNop() or an observer in tests.
func Set(l *zap.Logger) { zapLog = l }

func Info(message string, fields ...zap.Field) {
	zapLog.Info(message, fields...)
}

func Warn(message string, fields ...zap.Field) {
	zapLog.Warn(message, fields...)
}

func Debug(message string, fields ...zap.Field) {
	zapLog.Debug(message, fields...)
}

func Error(message string, fields ...zap.Field) {
	zapLog.Error(message, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return zapLog.Sync()
}

// Nop silences the logger again.
func Nop() { zapLog = zap.NewNop() }
