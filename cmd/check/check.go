// cmd/check/check.go

package check

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/config"
	"github.com/spf13/cobra"
)

// CheckCmd groups verification subcommands.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify monitoring components on this host",
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

func init() {
	config.RegisterFlags(CheckCmd.PersistentFlags())
}
