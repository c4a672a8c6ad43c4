// pkg/logger/lifecycle.go

package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runLogPath records where this invocation's transcript landed, for the
// end-of-run summary.
var runLogPath string

// RunLogPath returns the transcript path for this invocation, or "" when
// logging fell back to console only.
func RunLogPath() string {
	return runLogPath
}

// InitializeWithFallback sets up the dual-sink logger: colored console for
// the operator plus a JSON transcript file, falling back to console only
// when no candidate directory is writable.
func InitializeWithFallback() {
	path := ResolveRunLogPath(time.Now())
	if path == "" {
		fmt.Fprintln(os.Stderr, "⚠️  No writable log path found. Logging to console only.")
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
		return
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Could not open transcript file, falling back to console:", err)
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := ParseLogLevel(os.Getenv("LOG_LEVEL"))
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(file), level),
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(log)
	runLogPath = path

	log.Info("Logger initialized",
		zap.String("log_level", os.Getenv("LOG_LEVEL")),
		zap.String("transcript", path),
	)
}
