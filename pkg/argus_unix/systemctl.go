// pkg/argus_unix/systemctl.go

package argus_unix

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Systemctl exit codes, per systemctl(1). Different subcommands reuse the
// same small numbers with different meanings.
const (
	ExitSuccess     = 0
	ExitGenericFail = 1

	// is-active, is-enabled, is-failed
	ExitInactive  = 3
	ExitUnknown   = 4
	ExitNotLoaded = 5
)

// SystemctlCommand represents the systemctl subcommands argus uses.
type SystemctlCommand string

const (
	CmdIsActive     SystemctlCommand = "is-active"
	CmdIsEnabled    SystemctlCommand = "is-enabled"
	CmdEnable       SystemctlCommand = "enable"
	CmdRestart      SystemctlCommand = "restart"
	CmdStatus       SystemctlCommand = "status"
	CmdDaemonReload SystemctlCommand = "daemon-reload"
)

// InterpretExitCode maps a systemctl exit code onto a human-readable state
// for the given subcommand.
func InterpretExitCode(cmd SystemctlCommand, exitCode int) string {
	switch cmd {
	case CmdIsActive:
		switch exitCode {
		case ExitSuccess:
			return "active"
		case ExitInactive:
			return "inactive"
		case ExitUnknown:
			return "unknown"
		case ExitNotLoaded:
			return "not loaded"
		default:
			return fmt.Sprintf("unknown exit code %d", exitCode)
		}
	case CmdIsEnabled:
		switch exitCode {
		case ExitSuccess:
			return "enabled"
		case ExitGenericFail:
			return "disabled"
		default:
			return fmt.Sprintf("unknown exit code %d", exitCode)
		}
	default:
		if exitCode == ExitSuccess {
			return "success"
		}
		return fmt.Sprintf("failed with exit code %d", exitCode)
	}
}

// ServiceController is the narrow interface the enrollment flow needs from
// the service manager.
type ServiceController interface {
	// EnableNow enables the unit and starts it immediately.
	EnableNow(rc *argus_io.RuntimeContext, unit string) error
	// Restart restarts the unit, picking up configuration changes.
	Restart(rc *argus_io.RuntimeContext, unit string) error
	// IsActive reports whether the unit is running, with the state string.
	IsActive(rc *argus_io.RuntimeContext, unit string) (bool, string)
	// Status returns the unit's status output for operator display.
	Status(rc *argus_io.RuntimeContext, unit string) (string, error)
}

// Systemd drives systemctl on the local host.
type Systemd struct{}

// NewSystemd checks that systemctl exists before handing out a controller.
func NewSystemd() (*Systemd, error) {
	if !execute.LookPath("systemctl") {
		return nil, cerr.New("systemctl not found in PATH")
	}
	return &Systemd{}, nil
}

func (s *Systemd) EnableNow(rc *argus_io.RuntimeContext, unit string) error {
	logger := otelzap.Ctx(rc.Ctx)

	logger.Info("Reloading systemd daemon")
	if _, err := execute.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{string(CmdDaemonReload)},
		Capture: true,
		Logger:  rc.Log,
	}); err != nil {
		return cerr.Wrap(err, "daemon-reload")
	}

	logger.Info("Enabling and starting systemd unit", zap.String("unit", unit))
	out, err := execute.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{string(CmdEnable), "--now", unit},
		Capture: true,
		Logger:  rc.Log,
	})
	if err != nil {
		logger.Error("Failed to enable/start service",
			zap.String("unit", unit),
			zap.Error(err),
			zap.String("output", out),
		)
		return cerr.Wrapf(err, "enable --now %s", unit)
	}
	return nil
}

func (s *Systemd) Restart(rc *argus_io.RuntimeContext, unit string) error {
	logger := otelzap.Ctx(rc.Ctx)

	logger.Info("Restarting systemd unit", zap.String("unit", unit))
	out, err := execute.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{string(CmdRestart), unit},
		Capture: true,
		Logger:  rc.Log,
	})
	if err != nil {
		logger.Error("Failed to restart service",
			zap.String("unit", unit),
			zap.Error(err),
			zap.String("output", out),
		)
		return cerr.Wrapf(err, "restart %s", unit)
	}
	return nil
}

func (s *Systemd) IsActive(rc *argus_io.RuntimeContext, unit string) (bool, string) {
	out, err := execute.Capture(rc.Ctx, "systemctl", string(CmdIsActive), unit)
	state := strings.TrimSpace(out)
	if err != nil {
		if state == "" {
			state = InterpretExitCode(CmdIsActive, execute.ExitCode(err))
		}
		return false, state
	}
	return state == "active", state
}

func (s *Systemd) Status(rc *argus_io.RuntimeContext, unit string) (string, error) {
	// status exits non-zero for inactive units; the output is still the
	// useful part.
	out, err := execute.Capture(rc.Ctx, "systemctl", string(CmdStatus), "--no-pager", unit)
	if out != "" {
		return out, nil
	}
	return "", cerr.Wrapf(err, "status %s", unit)
}
