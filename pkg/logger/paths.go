// pkg/logger/paths.go

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
)

// runLogName builds the per-run transcript filename, e.g.
// argus-20250114-133702.log. One file per invocation keeps the enrollment
// transcript reviewable after the fact.
func runLogName(now time.Time) string {
	return fmt.Sprintf("argus-%s.log", now.Format("20060102-150405"))
}

// PlatformLogDirs returns candidate transcript directories in priority order.
func PlatformLogDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(os.Getenv("HOME"), "Library", "Logs", "argus"),
			"/tmp/argus",
		}
	case "linux":
		return []string{
			shared.LogDir, // best if writable (root installs)
			filepath.Join(xdgStateHome(), "argus"),
			"/tmp/argus",
		}
	default:
		return []string{"."}
	}
}

func xdgStateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}

// ResolveRunLogPath finds the first writable directory and returns the
// timestamped transcript path, or "" when nothing is writable.
func ResolveRunLogPath(now time.Time) string {
	name := runLogName(now)
	for _, dir := range PlatformLogDirs() {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			continue
		}
		path := filepath.Join(dir, name)
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			continue
		}
		if err := file.Close(); err != nil {
			continue
		}
		return path
	}
	return ""
}
