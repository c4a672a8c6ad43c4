// pkg/hostinfo/route.go

package hostinfo

import (
	"net"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// routeProbeAddr is a fixed external address used only as a routing-table
// lookup key (TEST-NET-3, never actually contacted).
const routeProbeAddr = "203.0.113.1:80"

// udpRouteQuery asks the kernel for the preferred source address by
// "connecting" a UDP socket. UDP connect sends no packets; it only binds
// the socket to the route the kernel would use.
type udpRouteQuery struct{}

func (udpRouteQuery) PreferredSource(destination string) (string, error) {
	conn, err := net.Dial("udp4", destination)
	if err != nil {
		return "", cerr.Wrapf(err, "route lookup toward %s", destination)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || local.IP == nil {
		return "", cerr.New("no local address on routed socket")
	}
	return local.IP.String(), nil
}

func osHostname() (string, error) {
	return os.Hostname()
}

// lookupFQDN resolves the canonical name for the short hostname via the
// system resolver.
func lookupFQDN(host string) (string, error) {
	cname, err := net.LookupCNAME(host)
	if err != nil {
		return "", err
	}
	cname = strings.TrimSuffix(cname, ".")
	if cname == "" {
		return "", cerr.Newf("empty canonical name for %s", host)
	}
	return cname, nil
}

func interfaceAddrs() ([]net.Addr, error) {
	return net.InterfaceAddrs()
}
