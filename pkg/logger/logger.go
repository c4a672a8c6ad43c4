// pkg/logger/logger.go

package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// L returns the process-wide logger, initializing a console fallback if
// nothing has been set up yet.
func L() *zap.Logger {
	if log == nil {
		InitFallback()
	}
	return log
}

// Sync flushes buffered log entries.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}

// ParseLogLevel maps the LOG_LEVEL environment convention onto zap levels.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// DefaultConsoleEncoderConfig returns the console encoder used for operator
// facing output.
func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// NewFallbackLogger builds a console-only logger for environments where no
// log path is writable.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		ParseLogLevel(os.Getenv("LOG_LEVEL")),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitFallback installs the console fallback logger if none is active.
func InitFallback() {
	if log != nil {
		return
	}
	log = NewFallbackLogger()
	zap.ReplaceGlobals(log)
}
