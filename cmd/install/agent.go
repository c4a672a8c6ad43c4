// cmd/install/agent.go

package install

import (
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/config"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/enroll"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var installAgentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Enroll the monitoring agent on this host",
	Long: `Enrolls the Zabbix monitoring agent: adds the vendor package repository,
installs the agent package, backs up and rewrites the agent configuration
(Server, ServerActive, Hostname), enables the service, and probes the
passive and active check ports. Probe failures are advisory only.`,
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		log := otelzap.Ctx(rc.Ctx)

		opts, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		execute.DefaultDryRun = opts.DryRun

		enroller, err := enroll.New(rc, opts)
		if err != nil {
			return err
		}

		result, err := enroller.Install(rc)
		if err != nil {
			log.Error("Agent enrollment failed", zap.Error(err))
			return err
		}

		printSummary(result)
		return nil
	}),
}

func printSummary(result *enroll.Result) {
	fmt.Println("Agent enrollment complete")
	fmt.Printf("  host:      %s\n", result.Identity.Hostname)
	fmt.Printf("  ip:        %s\n", result.Identity.PrimaryIPv4)
	if result.BackupPath != "" {
		fmt.Printf("  backup:    %s\n", result.BackupPath)
	}
	for _, check := range result.Checks {
		fmt.Printf("  check:     %s\n", check.Describe())
	}
	for _, advisory := range result.Advisories {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", advisory)
	}
	if path := logger.RunLogPath(); path != "" {
		fmt.Printf("  transcript: %s\n", path)
	}
}

func init() {
	InstallCmd.AddCommand(installAgentCmd)
}
