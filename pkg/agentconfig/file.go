// pkg/agentconfig/file.go

package agentconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Load reads and parses the agent configuration file. A missing file is a
// hard failure: it means the package install did not put the stock
// configuration in place.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerr.Wrapf(err, "read agent configuration %s", path)
	}
	return Parse(data), nil
}

// Save writes the document back, preserving the conventional mode for
// agent configuration files.
func Save(path string, doc *Document) error {
	if err := os.WriteFile(path, doc.Bytes(), shared.FilePermStandard); err != nil {
		return cerr.Wrapf(err, "write agent configuration %s", path)
	}
	return nil
}

// Backup copies the configuration to a timestamped sibling before the
// first mutation. The upserter itself never versions or undoes; callers
// needing rollback snapshot here first.
func Backup(rc *argus_io.RuntimeContext, path string, now time.Time) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", cerr.Wrapf(err, "read %s for backup", path)
	}

	backupPath := fmt.Sprintf("%s.%s.bak", path, now.Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, shared.FilePermOwnerRW); err != nil {
		return "", cerr.Wrapf(err, "write backup %s", backupPath)
	}

	logger.Info("Configuration backed up",
		zap.String("source", path),
		zap.String("backup", backupPath),
	)
	return backupPath, nil
}
