// cmd/check/agent.go

package check

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/config"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/enroll"
	"github.com/spf13/cobra"
)

var checkAgentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the post-install agent checks",
	Long: `Checks the agent service state, the passive check port on this host,
and the trapper port on the monitoring server. Failures are reported as
advice, not treated as fatal.`,
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		opts, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		enroller, err := enroll.New(rc, opts)
		if err != nil {
			return err
		}

		report, checkErr := enroller.Check(rc)
		if report != nil {
			fmt.Printf("service: %s\n", report.ServiceState)
			for _, check := range report.Checks {
				fmt.Printf("check:   %s\n", check.Detail)
			}
		}
		// checkErr is an expected user error carrying the advisories.
		return checkErr
	}),
}

func init() {
	CheckCmd.AddCommand(checkAgentCmd)
}
