package agentconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err, "missing config file is a hard failure")
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zabbix_agentd.conf")
	content := "# stock config\nServer=127.0.0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)

	doc.Upsert(KeyServer, "10.1.2.3")
	require.NoError(t, Save(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# stock config\nServer=10.1.2.3\n", string(data))
}

func TestBackupWritesTimestampedCopy(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")
	path := filepath.Join(t.TempDir(), "zabbix_agentd.conf")
	content := "Server=127.0.0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	now := time.Date(2025, 1, 14, 13, 37, 2, 0, time.UTC)
	backupPath, err := Backup(rc, path, now)
	require.NoError(t, err)
	assert.Equal(t, path+".20250114-133702.bak", backupPath)

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestBackupMissingSourceFails(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")
	_, err := Backup(rc, filepath.Join(t.TempDir(), "nope.conf"), time.Now())
	require.Error(t, err)
}
