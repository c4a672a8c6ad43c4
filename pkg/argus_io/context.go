// pkg/argus_io/context.go

package argus_io

import (
	"context"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries the per-invocation context, logger and span that
// every package operates against.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up tracing and a scoped logger for one command invocation.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := telemetry.Start(ctx, cmdName)
	traceID := span.SpanContext().TraceID().String()

	comp, action := resolveCallContext(3)
	logger := zap.L().With(
		zap.String("component", comp),
		zap.String("action", action),
		zap.String("trace_id", traceID),
	).Named(comp)

	logEnv(logger)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        logger,
		Timestamp:  time.Now(),
		Component:  comp,
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome, emits a final telemetry span, and flushes.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	duration := time.Since(rc.Timestamp)
	success := (*errPtr == nil)

	if success {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(*errPtr))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", strings.Join(os.Args[1:], " ")),
		attribute.String("version", shared.Version),
		attribute.String("error_type", classifyError(*errPtr)),
	}

	_, span := telemetry.Start(rc.Ctx, rc.Command, attrs...)
	span.End()

	shared.SafeSync()
}

func logEnv(log *zap.Logger) {
	if u, err := user.Current(); err == nil {
		log.Info("user context",
			zap.String("username", u.Username),
			zap.String("uid", u.Uid),
			zap.String("gid", u.Gid),
		)
	}
	if exe, err := os.Executable(); err == nil {
		log.Debug("executable path", zap.String("path", exe))
	}
}

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	component = parts[len(parts)-2]
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		fields := strings.Split(name, ".")
		action = fields[len(fields)-1]
	} else {
		action = "unknown"
	}
	return
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if argus_err.IsExpectedUserError(err) {
		return "user"
	}
	return "system"
}
