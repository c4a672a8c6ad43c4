// pkg/argus_cli/wrap.go

package argus_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap ensures panic recovery, telemetry, logging and timing around a
// cobra RunE function.
func Wrap(fn func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := argus_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		return fn(rc, cmd, args)
	}
}
