// pkg/hostinfo/hostinfo.go

package hostinfo

import (
	"net"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"go.uber.org/zap"
)

// NoIPSentinel marks an absent primary IPv4. Downstream naming must
// tolerate it; absence is a degraded result, never an error.
const NoIPSentinel = "NOIP"

// PlaceholderHostname is used when both FQDN and short-hostname lookups
// come back empty.
const PlaceholderHostname = "unknown-host"

// HostIdentity is resolved once at process start and immutable thereafter.
type HostIdentity struct {
	Hostname    string `yaml:"hostname"`
	PrimaryIPv4 string `yaml:"primary_ipv4"`
}

// HasIP reports whether a primary IPv4 was found.
func (h HostIdentity) HasIP() bool {
	return h.PrimaryIPv4 != "" && h.PrimaryIPv4 != NoIPSentinel
}

// RouteTableQuery answers "which source address would the OS pick to reach
// this destination". Narrow by design so the resolver is testable against
// fakes.
type RouteTableQuery interface {
	PreferredSource(destination string) (string, error)
}

// Resolver determines host identity from OS state. Zero-value fields are
// filled with the real OS implementations by NewResolver; tests swap them.
type Resolver struct {
	Routes     RouteTableQuery
	Hostname   func() (string, error)
	LookupFQDN func(host string) (string, error)
	Addrs      func() ([]net.Addr, error)
}

// NewResolver returns a Resolver backed by the local OS.
func NewResolver() *Resolver {
	return &Resolver{
		Routes:     &udpRouteQuery{},
		Hostname:   osHostname,
		LookupFQDN: lookupFQDN,
		Addrs:      interfaceAddrs,
	}
}

// Resolve produces the host identity. It never fails: missing pieces
// degrade to the placeholder hostname and the NOIP sentinel.
func (r *Resolver) Resolve(rc *argus_io.RuntimeContext) HostIdentity {
	logger := otelzap.Ctx(rc.Ctx)

	identity := HostIdentity{
		Hostname:    r.resolveHostname(rc),
		PrimaryIPv4: r.resolvePrimaryIPv4(rc),
	}

	logger.Info("Host identity resolved",
		zap.String("hostname", identity.Hostname),
		zap.String("primary_ipv4", identity.PrimaryIPv4),
	)
	return identity
}

func (r *Resolver) resolveHostname(rc *argus_io.RuntimeContext) string {
	logger := otelzap.Ctx(rc.Ctx)

	short, err := r.Hostname()
	if err != nil {
		logger.Warn("Short hostname lookup failed", zap.Error(err))
		short = ""
	}
	short = strings.TrimSpace(short)

	if short != "" {
		if fqdn, err := r.LookupFQDN(short); err == nil {
			fqdn = strings.TrimSuffix(strings.TrimSpace(fqdn), ".")
			if fqdn != "" {
				return fqdn
			}
		} else {
			logger.Debug("FQDN lookup failed, using short hostname", zap.Error(err))
		}
		return short
	}

	logger.Warn("Both FQDN and short hostname lookups were empty, using placeholder",
		zap.String("placeholder", PlaceholderHostname))
	return PlaceholderHostname
}

func (r *Resolver) resolvePrimaryIPv4(rc *argus_io.RuntimeContext) string {
	logger := otelzap.Ctx(rc.Ctx)

	// Preferred-source lookup against a fixed external address. No traffic
	// is generated; the OS only consults its routing table.
	if src, err := r.Routes.PreferredSource(routeProbeAddr); err == nil {
		if ip := net.ParseIP(src); ip != nil && ip.To4() != nil {
			return ip.String()
		}
	} else {
		logger.Debug("Routing-table source lookup failed", zap.Error(err))
	}

	// Fallback: first global-scope IPv4 in interface-enumeration order.
	if ip := r.firstGlobalIPv4(rc); ip != "" {
		return ip
	}

	logger.Warn("No primary IPv4 found", zap.String("sentinel", NoIPSentinel))
	return NoIPSentinel
}

func (r *Resolver) firstGlobalIPv4(rc *argus_io.RuntimeContext) string {
	logger := otelzap.Ctx(rc.Ctx)

	addrs, err := r.Addrs()
	if err != nil {
		logger.Warn("Interface enumeration failed", zap.Error(err))
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil {
			continue
		}
		if ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip.String()
	}
	return ""
}
