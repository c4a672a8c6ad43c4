// cmd/inspect/inspect.go

package inspect

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/spf13/cobra"
)

// InspectCmd groups read-only inspection subcommands.
var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect host identity and agent configuration",
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}
