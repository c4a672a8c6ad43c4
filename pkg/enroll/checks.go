// pkg/enroll/checks.go

package enroll

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CheckReport is the outcome of a standalone `check agent` run.
type CheckReport struct {
	ServiceState string        `yaml:"service_state"`
	Checks       []probeResult `yaml:"checks"`
}

type probeResult struct {
	Target    string `yaml:"target"`
	Reachable bool   `yaml:"reachable"`
	Detail    string `yaml:"detail"`
}

// Check runs the post-install checks on their own: service state, passive
// port on the local agent, trapper port on the server. Individual failures
// are collected, not short-circuited, and the aggregate comes back as an
// expected user error so the command reports without failing hard.
func (e *Enroller) Check(rc *argus_io.RuntimeContext) (*CheckReport, error) {
	logger := otelzap.Ctx(rc.Ctx)
	report := &CheckReport{}
	var errs *multierror.Error

	active, state := e.Services.IsActive(rc, shared.AgentService)
	report.ServiceState = state
	if !active {
		errs = multierror.Append(errs, cerr.Newf("service %s is %s", shared.AgentService, state))
	}

	passive := e.ProbeTCP(rc, "127.0.0.1", shared.PortAgentPassive, e.Opts.ProbeTimeout)
	report.Checks = append(report.Checks, probeResult{
		Target:    passive.Target,
		Reachable: passive.Reachable,
		Detail:    passive.Describe(),
	})
	if !passive.Reachable {
		errs = multierror.Append(errs, cerr.Newf("passive check port closed: %s", passive.Describe()))
	}

	trapper := e.ProbeTCP(rc, e.Opts.Server, shared.PortAgentActive, e.Opts.ProbeTimeout)
	report.Checks = append(report.Checks, probeResult{
		Target:    trapper.Target,
		Reachable: trapper.Reachable,
		Detail:    trapper.Describe(),
	})
	if !trapper.Reachable {
		errs = multierror.Append(errs, cerr.Newf("trapper port unreachable: %s", trapper.Describe()))
	}

	if err := errs.ErrorOrNil(); err != nil {
		logger.Warn("Agent checks reported problems", zap.Error(err))
		return report, argus_err.NewExpectedError(err)
	}

	logger.Info("All agent checks passed", zap.String("service_state", state))
	return report, nil
}
