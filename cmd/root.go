/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/argus/cmd/check"
	"github.com/CodeMonkeyCybersecurity/argus/cmd/inspect"
	"github.com/CodeMonkeyCybersecurity/argus/cmd/install"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command for argus.
var RootCmd = &cobra.Command{
	Use:     "argus",
	Short:   "Argus enrolls and checks the monitoring agent on this host",
	Long:    `Argus installs the Zabbix monitoring agent from the vendor repository, points it at your monitoring server, enables the service, and verifies reachability.`,
	Version: shared.Version,
	RunE: argus_cli.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		install.InstallCmd,
		check.CheckCmd,
		inspect.InspectCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command.
func Execute() {
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Failed to flush logs: %v\n", err)
		}
	}()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if argus_err.IsExpectedUserError(err) {
			logger.L().Warn("CLI completed with user error", zap.Error(err))
		} else {
			logger.L().Error("CLI execution failed", zap.Error(err))
		}
		os.Exit(argus_err.GetExitCode(err))
	}
}
