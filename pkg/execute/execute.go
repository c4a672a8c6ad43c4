// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Run executes a command with structured logging and proper error handling.
// Shell execution is not supported; pass argv explicitly.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	runCtx, span := telemetry.Start(runCtx, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	if opts.DryRun || DefaultDryRun {
		logger.Info("Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	logger.Debug("Starting execution", zap.String("command", cmdStr))

	cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		summary := argus_err.ExtractSummary(output, 2)
		span.RecordError(err)
		logger.Error("Execution failed",
			zap.Error(err),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)
		return output, cerr.Wrapf(err, "command %q failed", cmdStr)
	}

	logger.Debug("Execution succeeded", zap.String("command", cmdStr))

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// RunSimple executes a command with minimal options.
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{
		Command: cmd,
		Args:    args,
	})
	return err
}

// Capture executes a command and returns its combined output.
func Capture(ctx context.Context, cmd string, args ...string) (string, error) {
	return Run(ctx, Options{
		Command: cmd,
		Args:    args,
		Capture: true,
	})
}

// ExitCode extracts a process exit code from a Run error, or -1 when the
// command never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if cerr.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// LookPath reports whether a binary is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 {
		return t
	}
	return 30 * time.Second
}

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
