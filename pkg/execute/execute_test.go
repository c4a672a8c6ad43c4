package execute

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX tools required")
	}

	out, err := Capture(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunWithoutCaptureReturnsEmpty(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX tools required")
	}

	out, err := Run(context.Background(), Options{Command: "true"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunFailureIncludesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX tools required")
	}

	_, err := Run(context.Background(), Options{Command: "false"})
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestDryRunSkipsExecution(t *testing.T) {
	out, err := Run(context.Background(), Options{
		Command: "definitely-not-a-binary",
		DryRun:  true,
		Capture: true,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDefaultTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, defaultTimeout(0))
	assert.Equal(t, time.Minute, defaultTimeout(time.Minute))
}

func TestBuildCommandString(t *testing.T) {
	assert.Equal(t, "systemctl", buildCommandString("systemctl"))
	assert.Equal(t, "systemctl enable --now zabbix-agent",
		buildCommandString("systemctl", "enable", "--now", "zabbix-agent"))
}

func TestLookPath(t *testing.T) {
	assert.False(t, LookPath("definitely-not-a-binary-argus"))
}
