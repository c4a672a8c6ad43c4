// pkg/platform/repo.go

package platform

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	cerr "github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
)

// Vendor repository layout: https://repo.zabbix.com/zabbix/VERSION/...
const vendorRepoBaseURL = "https://repo.zabbix.com/zabbix"

// Minimum distro releases the vendor publishes agent packages for.
var (
	minUbuntu = goversion.Must(goversion.NewVersion("20.04"))
	minDebian = goversion.Must(goversion.NewVersion("11"))
	minRHEL   = goversion.Must(goversion.NewVersion("8"))
	minAgent  = goversion.Must(goversion.NewVersion("5.0"))
)

// ReleasePackageURL returns the vendor release-package URL for the agent
// version on the detected platform, validating that the vendor actually
// publishes for this distro release.
func ReleasePackageURL(release *OSRelease, agentVersion string) (string, error) {
	agent, err := goversion.NewVersion(agentVersion)
	if err != nil {
		return "", argus_err.NewValidationError(
			fmt.Sprintf("invalid agent version %q", agentVersion),
			"Use a release line such as 6.0 or 7.0",
		)
	}
	if agent.LessThan(minAgent) {
		return "", argus_err.NewValidationError(
			fmt.Sprintf("agent version %s is no longer published by the vendor", agentVersion),
			"Use 5.0 or newer",
		)
	}

	distro, err := goversion.NewVersion(release.VersionID)
	if err != nil {
		return "", cerr.Wrapf(err, "parse distro version %q", release.VersionID)
	}

	switch release.Family() {
	case FamilyDebian:
		min := minDebian
		if release.ID == "ubuntu" {
			min = minUbuntu
		}
		if distro.LessThan(min) {
			return "", argus_err.NewExpectedError(cerr.Newf(
				"%s %s is below the minimum supported release %s", release.ID, release.VersionID, min))
		}
		return fmt.Sprintf("%s/%s/%s/pool/main/z/zabbix-release/zabbix-release_%s-4+%s%s_all.deb",
			vendorRepoBaseURL, agentVersion, release.ID, agentVersion, release.ID, release.VersionID), nil

	case FamilyRHEL:
		major := release.MajorVersion()
		if distro.LessThan(minRHEL) {
			return "", argus_err.NewExpectedError(cerr.Newf(
				"%s %s is below the minimum supported release %s", release.ID, release.VersionID, minRHEL))
		}
		return fmt.Sprintf("%s/%s/rhel/%s/x86_64/zabbix-release-%s-4.el%s.noarch.rpm",
			vendorRepoBaseURL, agentVersion, major, agentVersion, major), nil

	default:
		return "", cerr.Newf("no vendor repository for platform family %s", release.Family())
	}
}
