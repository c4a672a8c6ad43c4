// pkg/platform/package.go

package platform

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// PackageManager is the narrow interface the enrollment flow needs from
// the OS package tooling, so it can be unit-tested against fakes.
type PackageManager interface {
	Name() string
	// SetupRepo downloads and installs the vendor release package for the
	// given agent version, making the vendor repository available.
	SetupRepo(rc *argus_io.RuntimeContext, agentVersion string) error
	// Refresh updates package indexes.
	Refresh(rc *argus_io.RuntimeContext) error
	// Install installs a package non-interactively, one shot.
	Install(rc *argus_io.RuntimeContext, pkg string) error
	// IsInstalled reports whether a package is already present.
	IsInstalled(rc *argus_io.RuntimeContext, pkg string) (bool, error)
}

// ManagerFor returns the package manager matching the platform family.
func ManagerFor(release *OSRelease) (PackageManager, error) {
	switch release.Family() {
	case FamilyDebian:
		return &AptManager{Release: release, Download: downloadFile}, nil
	case FamilyRHEL:
		return &DnfManager{Release: release, Download: downloadFile}, nil
	default:
		return nil, cerr.Newf("no package manager for platform family %s", release.Family())
	}
}

// AptManager drives apt/dpkg on Debian-family systems.
type AptManager struct {
	Release  *OSRelease
	Download func(rc *argus_io.RuntimeContext, url, dest string) error
}

func (m *AptManager) Name() string { return "apt" }

func (m *AptManager) SetupRepo(rc *argus_io.RuntimeContext, agentVersion string) error {
	url, err := ReleasePackageURL(m.Release, agentVersion)
	if err != nil {
		return err
	}
	dest := filepath.Join(os.TempDir(), path.Base(url))
	if err := m.Download(rc, url, dest); err != nil {
		return err
	}
	defer os.Remove(dest)

	if err := execute.RunSimple(rc.Ctx, "dpkg", "-i", dest); err != nil {
		return cerr.Wrap(err, "install vendor release package")
	}
	return nil
}

func (m *AptManager) Refresh(rc *argus_io.RuntimeContext) error {
	_, err := execute.Run(rc.Ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"update"},
		Timeout: 5 * time.Minute,
		Logger:  rc.Log,
	})
	return err
}

func (m *AptManager) Install(rc *argus_io.RuntimeContext, pkg string) error {
	_, err := execute.Run(rc.Ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"install", "-y", pkg},
		Timeout: 10 * time.Minute,
		Logger:  rc.Log,
	})
	return err
}

func (m *AptManager) IsInstalled(rc *argus_io.RuntimeContext, pkg string) (bool, error) {
	out, err := execute.Capture(rc.Ctx, "dpkg-query", "-W", "-f=${Status}", pkg)
	if err != nil {
		// dpkg-query exits non-zero for unknown packages.
		return false, nil
	}
	return strings.Contains(out, "install ok installed"), nil
}

// DnfManager drives dnf/rpm on RHEL-family systems.
type DnfManager struct {
	Release  *OSRelease
	Download func(rc *argus_io.RuntimeContext, url, dest string) error
}

func (m *DnfManager) Name() string { return "dnf" }

func (m *DnfManager) SetupRepo(rc *argus_io.RuntimeContext, agentVersion string) error {
	url, err := ReleasePackageURL(m.Release, agentVersion)
	if err != nil {
		return err
	}
	dest := filepath.Join(os.TempDir(), path.Base(url))
	if err := m.Download(rc, url, dest); err != nil {
		return err
	}
	defer os.Remove(dest)

	if err := execute.RunSimple(rc.Ctx, "rpm", "-Uvh", "--replacepkgs", dest); err != nil {
		return cerr.Wrap(err, "install vendor release package")
	}
	return nil
}

func (m *DnfManager) Refresh(rc *argus_io.RuntimeContext) error {
	_, err := execute.Run(rc.Ctx, execute.Options{
		Command: "dnf",
		Args:    []string{"makecache", "-y"},
		Timeout: 5 * time.Minute,
		Logger:  rc.Log,
	})
	return err
}

func (m *DnfManager) Install(rc *argus_io.RuntimeContext, pkg string) error {
	_, err := execute.Run(rc.Ctx, execute.Options{
		Command: "dnf",
		Args:    []string{"install", "-y", pkg},
		Timeout: 10 * time.Minute,
		Logger:  rc.Log,
	})
	return err
}

func (m *DnfManager) IsInstalled(rc *argus_io.RuntimeContext, pkg string) (bool, error) {
	if err := execute.RunSimple(rc.Ctx, "rpm", "-q", pkg); err != nil {
		return false, nil
	}
	return true, nil
}

// downloadFile fetches a vendor package over HTTPS to dest.
func downloadFile(rc *argus_io.RuntimeContext, url, dest string) error {
	logger := otelzap.Ctx(rc.Ctx)
	logger.Info("Downloading vendor package",
		zap.String("url", url),
		zap.String("dest", dest),
	)

	client := &http.Client{Timeout: 2 * time.Minute}
	req, err := http.NewRequestWithContext(rc.Ctx, http.MethodGet, url, nil)
	if err != nil {
		return cerr.Wrap(err, "build download request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return cerr.Wrapf(err, "download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cerr.Newf("download %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return cerr.Wrapf(err, "create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return cerr.Wrapf(err, "write %s", dest)
	}
	return nil
}
