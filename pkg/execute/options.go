// pkg/execute/options.go

package execute

import (
	"time"

	"go.uber.org/zap"
)

// Options controls a single external command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string

	// Capture returns combined stdout/stderr from Run instead of "".
	Capture bool

	// DryRun logs the command without executing it.
	DryRun bool

	// Timeout bounds the invocation; zero means the 30s default.
	Timeout time.Duration

	Logger *zap.Logger
}

// DefaultLogger is used when Options.Logger is nil.
var DefaultLogger *zap.Logger

// DefaultDryRun forces dry-run mode process-wide (used by --dry-run).
var DefaultDryRun bool
