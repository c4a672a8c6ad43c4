package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ubuntuRelease = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
VERSION_CODENAME=jammy
ID=ubuntu
ID_LIKE=debian
`

const rockyRelease = `NAME="Rocky Linux"
VERSION="9.3 (Blue Onyx)"
ID="rocky"
ID_LIKE="rhel centos fedora"
VERSION_ID="9.3"
PRETTY_NAME="Rocky Linux 9.3 (Blue Onyx)"
`

func TestParseOSRelease(t *testing.T) {
	info := parseOSRelease(ubuntuRelease)

	assert.Equal(t, "ubuntu", info.ID)
	assert.Equal(t, "22.04", info.VersionID)
	assert.Equal(t, "jammy", info.VersionCodename)
	assert.Equal(t, "Ubuntu 22.04.4 LTS", info.PrettyName)
}

func TestFamilyClassification(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Family
	}{
		{"ubuntu", ubuntuRelease, FamilyDebian},
		{"rocky via id_like", rockyRelease, FamilyRHEL},
		{"plain debian", "ID=debian\nVERSION_ID=\"12\"\n", FamilyDebian},
		{"alpine unsupported", "ID=alpine\nVERSION_ID=3.19\n", FamilyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOSRelease(tt.content).Family())
		})
	}
}

func TestMajorVersion(t *testing.T) {
	assert.Equal(t, "9", parseOSRelease(rockyRelease).MajorVersion())
	assert.Equal(t, "22", (&OSRelease{VersionID: "22.04"}).MajorVersion())
	assert.Equal(t, "12", (&OSRelease{VersionID: "12"}).MajorVersion())
}

func TestDetect(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")

	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(ubuntuRelease), 0o644))

	orig := osReleasePath
	osReleasePath = path
	defer func() { osReleasePath = orig }()

	release, err := Detect(rc)
	require.NoError(t, err)
	assert.Equal(t, FamilyDebian, release.Family())

	t.Run("unsupported platform is a user error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("ID=plan9\nVERSION_ID=1\n"), 0o644))
		_, err := Detect(rc)
		assert.Error(t, err)
	})
}

func TestReleasePackageURL(t *testing.T) {
	ubuntu := parseOSRelease(ubuntuRelease)
	rocky := parseOSRelease(rockyRelease)

	t.Run("ubuntu deb", func(t *testing.T) {
		url, err := ReleasePackageURL(ubuntu, "6.0")
		assert.NoError(t, err)
		assert.Equal(t,
			"https://repo.zabbix.com/zabbix/6.0/ubuntu/pool/main/z/zabbix-release/zabbix-release_6.0-4+ubuntu22.04_all.deb",
			url)
	})

	t.Run("rhel rpm", func(t *testing.T) {
		url, err := ReleasePackageURL(rocky, "6.0")
		assert.NoError(t, err)
		assert.Equal(t,
			"https://repo.zabbix.com/zabbix/6.0/rhel/9/x86_64/zabbix-release-6.0-4.el9.noarch.rpm",
			url)
	})

	t.Run("agent version too old", func(t *testing.T) {
		_, err := ReleasePackageURL(ubuntu, "4.0")
		assert.Error(t, err)
	})

	t.Run("garbage agent version", func(t *testing.T) {
		_, err := ReleasePackageURL(ubuntu, "latest")
		assert.Error(t, err)
	})

	t.Run("distro below minimum", func(t *testing.T) {
		old := &OSRelease{ID: "ubuntu", IDLike: "debian", VersionID: "18.04"}
		_, err := ReleasePackageURL(old, "6.0")
		assert.Error(t, err)
	})
}
