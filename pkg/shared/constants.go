// pkg/shared/constants.go

package shared

import "time"

const (
	// Zabbix agent listening port (passive checks, server connects to agent).
	PortAgentPassive = 10050
	// Zabbix trapper port (active checks, agent connects to server).
	PortAgentActive = 10051

	// AgentConfPath is the stock location of the agent configuration file
	// installed by the vendor package.
	AgentConfPath = "/etc/zabbix/zabbix_agentd.conf"

	// AgentService is the systemd unit managed by argus.
	AgentService = "zabbix-agent"

	// AgentPackage is the package name installed from the vendor repository.
	AgentPackage = "zabbix-agent"

	// LogDir is the default directory for per-run transcripts.
	LogDir = "/var/log/argus"

	// DefaultProbeTimeout bounds a single reachability attempt.
	DefaultProbeTimeout = 3 * time.Second

	DirPermStandard  = 0o755
	FilePermStandard = 0o644
	FilePermOwnerRW  = 0o600
)

// Version is the argus release string, overridable at build time via
// -ldflags "-X github.com/CodeMonkeyCybersecurity/argus/pkg/shared.Version=...".
var Version = "dev"
