// cmd/install/install.go

package install

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/config"
	"github.com/spf13/cobra"
)

// InstallCmd groups installation subcommands.
var InstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and configure monitoring components",
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

func init() {
	config.RegisterFlags(InstallCmd.PersistentFlags())
}
