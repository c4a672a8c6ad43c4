// pkg/shared/sync.go

package shared

import (
	"strings"

	"go.uber.org/zap"
)

// SafeSync flushes the global logger, swallowing the EINVAL that zap returns
// when stdout/stderr are not syncable (terminals, CI pipes).
func SafeSync() {
	if err := zap.L().Sync(); err != nil {
		if strings.Contains(err.Error(), "invalid argument") {
			return
		}
	}
}
