package logger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLogName(t *testing.T) {
	ts := time.Date(2025, 1, 14, 13, 37, 2, 0, time.UTC)
	assert.Equal(t, "argus-20250114-133702.log", runLogName(ts))
}

func TestXDGStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state", xdgStateHome())

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/argus")
	assert.Equal(t, "/home/argus/.local/state", xdgStateHome())
}

func TestResolveRunLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	ts := time.Date(2025, 1, 14, 13, 37, 2, 0, time.UTC)
	path := ResolveRunLogPath(ts)
	require.NotEmpty(t, path)
	assert.Equal(t, "argus-20250114-133702.log", filepath.Base(path))
}

func TestPlatformLogDirsNonEmpty(t *testing.T) {
	dirs := PlatformLogDirs()
	require.NotEmpty(t, dirs)
	for _, dir := range dirs {
		assert.NotEmpty(t, dir)
	}
}
