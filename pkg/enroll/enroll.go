// pkg/enroll/enroll.go

package enroll

import (
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/agentconfig"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_unix"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/config"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/hostinfo"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/probe"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Enroller wires the narrow OS interfaces together for one enrollment run.
// Fields are exported so tests can substitute fakes.
type Enroller struct {
	Opts     *config.Options
	Resolver *hostinfo.Resolver
	Packages platform.PackageManager
	Services argus_unix.ServiceController
	ProbeTCP func(rc *argus_io.RuntimeContext, host string, port int, timeout time.Duration) probe.Result
	Now      func() time.Time
}

// Result summarizes an enrollment run for operator output.
type Result struct {
	RunID      string                `yaml:"run_id"`
	Identity   hostinfo.HostIdentity `yaml:"identity"`
	BackupPath string                `yaml:"backup_path,omitempty"`
	Checks     []probe.Result        `yaml:"checks"`
	Advisories []string              `yaml:"advisories,omitempty"`
}

// New builds an Enroller backed by the real host: detected platform,
// systemd, OS resolver.
func New(rc *argus_io.RuntimeContext, opts *config.Options) (*Enroller, error) {
	release, err := platform.Detect(rc)
	if err != nil {
		return nil, err
	}
	packages, err := platform.ManagerFor(release)
	if err != nil {
		return nil, err
	}
	services, err := argus_unix.NewSystemd()
	if err != nil {
		return nil, err
	}
	return &Enroller{
		Opts:     opts,
		Resolver: hostinfo.NewResolver(),
		Packages: packages,
		Services: services,
		ProbeTCP: probe.TCP,
		Now:      time.Now,
	}, nil
}

// Install performs the full enrollment: identity, vendor repository, agent
// package, configuration upsert, service enablement, then advisory checks.
func (e *Enroller) Install(rc *argus_io.RuntimeContext) (*Result, error) {
	logger := otelzap.Ctx(rc.Ctx)
	result := &Result{RunID: uuid.New().String()}
	rc.Attributes["run_id"] = result.RunID

	// ASSESS
	logger.Info("Starting agent enrollment",
		zap.String("run_id", result.RunID),
		zap.String("server", e.Opts.Server),
		zap.String("agent_version", e.Opts.AgentVersion),
		zap.String("package_manager", e.Packages.Name()),
	)
	result.Identity = e.Resolver.Resolve(rc)

	// INTERVENE - vendor repository and agent package
	if err := e.Packages.SetupRepo(rc, e.Opts.AgentVersion); err != nil {
		return result, cerr.Wrap(err, "set up vendor repository")
	}
	if err := e.Packages.Refresh(rc); err != nil {
		return result, cerr.Wrap(err, "refresh package indexes")
	}

	installed, err := e.Packages.IsInstalled(rc, shared.AgentPackage)
	if err != nil {
		return result, cerr.Wrap(err, "query package state")
	}
	if installed {
		logger.Info("Agent package already installed", zap.String("package", shared.AgentPackage))
	} else if err := e.Packages.Install(rc, shared.AgentPackage); err != nil {
		return result, cerr.Wrapf(err, "install %s", shared.AgentPackage)
	}

	// INTERVENE - configuration
	backupPath, err := e.configure(rc, result.Identity)
	if err != nil {
		return result, err
	}
	result.BackupPath = backupPath

	// INTERVENE - service
	if err := e.Services.EnableNow(rc, shared.AgentService); err != nil {
		return result, cerr.Wrapf(err, "enable %s", shared.AgentService)
	}
	if err := e.Services.Restart(rc, shared.AgentService); err != nil {
		return result, cerr.Wrapf(err, "restart %s", shared.AgentService)
	}

	// EVALUATE - advisory checks only, never fatal
	e.evaluate(rc, result)

	logger.Info("Agent enrollment complete",
		zap.String("run_id", result.RunID),
		zap.Int("advisories", len(result.Advisories)),
	)
	return result, nil
}

// configure snapshots the agent configuration and upserts the managed
// keys. A missing configuration file is fatal: the package install should
// have put it in place.
func (e *Enroller) configure(rc *argus_io.RuntimeContext, identity hostinfo.HostIdentity) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	doc, err := agentconfig.Load(e.Opts.ConfPath)
	if err != nil {
		return "", err
	}

	backupPath, err := agentconfig.Backup(rc, e.Opts.ConfPath, e.Now())
	if err != nil {
		return "", err
	}

	changed := doc.Upsert(agentconfig.KeyServer, e.Opts.Server)
	changed = doc.Upsert(agentconfig.KeyServerActive, e.Opts.Server) || changed
	changed = doc.Upsert(agentconfig.KeyHostname, identity.Hostname) || changed

	if !changed {
		logger.Info("Agent configuration already canonical, nothing to write")
		return backupPath, nil
	}

	if err := agentconfig.Save(e.Opts.ConfPath, doc); err != nil {
		return backupPath, err
	}
	logger.Info("Agent configuration updated",
		zap.String("path", e.Opts.ConfPath),
		zap.String("server", e.Opts.Server),
		zap.String("hostname", identity.Hostname),
	)
	return backupPath, nil
}

// evaluate runs the post-install checks. Failures are advisory: they are
// logged and reported, never fatal. A failed active-check probe usually
// means a firewall rule, not a broken install.
func (e *Enroller) evaluate(rc *argus_io.RuntimeContext, result *Result) {
	logger := otelzap.Ctx(rc.Ctx)

	if active, state := e.Services.IsActive(rc, shared.AgentService); !active {
		result.Advisories = append(result.Advisories,
			"service "+shared.AgentService+" is "+state)
	}

	passive := e.ProbeTCP(rc, "127.0.0.1", shared.PortAgentPassive, e.Opts.ProbeTimeout)
	result.Checks = append(result.Checks, passive)
	if !passive.Reachable {
		result.Advisories = append(result.Advisories,
			"agent not listening for passive checks: "+passive.Describe())
	}

	active := e.ProbeTCP(rc, e.Opts.Server, shared.PortAgentActive, e.Opts.ProbeTimeout)
	result.Checks = append(result.Checks, active)
	if !active.Reachable {
		result.Advisories = append(result.Advisories,
			"server trapper port unreachable, active checks will not work: "+active.Describe())
	}

	for _, advisory := range result.Advisories {
		logger.Warn("Post-install advisory", zap.String("advisory", advisory))
	}
}
