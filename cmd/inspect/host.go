// cmd/inspect/host.go

package inspect

import (
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/agentconfig"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/hostinfo"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// hostReport is what `inspect host` renders: the resolved identity plus
// the current values of the managed configuration keys.
type hostReport struct {
	Identity hostinfo.HostIdentity `yaml:"identity"`
	Agent    map[string]string     `yaml:"agent,omitempty"`
}

var inspectHostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show resolved host identity and managed agent settings",
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		log := otelzap.Ctx(rc.Ctx)

		report := hostReport{
			Identity: hostinfo.NewResolver().Resolve(rc),
		}

		confPath, _ := cmd.Flags().GetString("conf")
		if doc, err := agentconfig.Load(confPath); err == nil {
			report.Agent = map[string]string{}
			for _, key := range []string{agentconfig.KeyServer, agentconfig.KeyServerActive, agentconfig.KeyHostname} {
				if value, ok := doc.Get(key); ok {
					report.Agent[key] = value
				}
			}
		} else {
			// Inspection stays read-only and best-effort: no agent config
			// just means the agent is not installed yet.
			log.Debug("No agent configuration to inspect", zap.Error(err))
		}

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}

		fmt.Printf("hostname: %s\n", report.Identity.Hostname)
		fmt.Printf("primary ipv4: %s\n", report.Identity.PrimaryIPv4)
		if !report.Identity.HasIP() {
			fmt.Fprintln(os.Stderr, "⚠️  no primary IPv4 found")
		}
		for key, value := range report.Agent {
			fmt.Printf("%s=%s\n", key, value)
		}
		return nil
	}),
}

func init() {
	inspectHostCmd.Flags().String("conf", shared.AgentConfPath, "Agent configuration file path")
	inspectHostCmd.Flags().Bool("yaml", false, "Render the report as YAML")
	InspectCmd.AddCommand(inspectHostCmd)
}
