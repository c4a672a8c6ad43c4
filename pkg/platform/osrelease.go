// pkg/platform/osrelease.go

package platform

import (
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Family groups distributions by package tooling.
type Family string

const (
	FamilyDebian  Family = "debian"
	FamilyRHEL    Family = "rhel"
	FamilyUnknown Family = "unknown"
)

// OSRelease represents parsed /etc/os-release information.
type OSRelease struct {
	Name            string
	ID              string
	IDLike          string
	VersionID       string
	VersionCodename string
	PrettyName      string
}

// osReleasePath is a variable for tests.
var osReleasePath = "/etc/os-release"

// Detect parses /etc/os-release and classifies the distribution.
func Detect(rc *argus_io.RuntimeContext) (*OSRelease, error) {
	logger := otelzap.Ctx(rc.Ctx)

	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return nil, cerr.Wrapf(err, "read %s", osReleasePath)
	}

	info := parseOSRelease(string(data))
	logger.Info("Platform detected",
		zap.String("id", info.ID),
		zap.String("version_id", info.VersionID),
		zap.String("pretty_name", info.PrettyName),
		zap.String("family", string(info.Family())),
	)

	if info.Family() == FamilyUnknown {
		return nil, argus_err.NewExpectedError(cerr.Newf(
			"unsupported platform %q (need a Debian- or RHEL-family distribution)", info.ID))
	}
	return info, nil
}

func parseOSRelease(content string) *OSRelease {
	info := &OSRelease{}
	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")

		switch key {
		case "NAME":
			info.Name = value
		case "ID":
			info.ID = value
		case "ID_LIKE":
			info.IDLike = value
		case "VERSION_ID":
			info.VersionID = value
		case "VERSION_CODENAME":
			info.VersionCodename = value
		case "PRETTY_NAME":
			info.PrettyName = value
		}
	}
	return info
}

// Family classifies the release by package tooling, using ID_LIKE when the
// ID itself is unfamiliar.
func (o *OSRelease) Family() Family {
	id := strings.ToLower(o.ID)
	like := strings.ToLower(o.IDLike)

	switch {
	case id == "ubuntu" || id == "debian" || strings.Contains(like, "debian"):
		return FamilyDebian
	case id == "rhel" || id == "centos" || id == "rocky" || id == "almalinux" || id == "fedora" ||
		strings.Contains(like, "rhel") || strings.Contains(like, "fedora"):
		return FamilyRHEL
	default:
		return FamilyUnknown
	}
}

// MajorVersion returns the leading numeric component of VERSION_ID
// ("9.3" -> "9").
func (o *OSRelease) MajorVersion() string {
	if i := strings.IndexByte(o.VersionID, '.'); i > 0 {
		return o.VersionID[:i]
	}
	return o.VersionID
}
