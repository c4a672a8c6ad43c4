package hostinfo

import (
	"context"
	"net"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoutes struct {
	source string
	err    error
}

func (f *fakeRoutes) PreferredSource(destination string) (string, error) {
	return f.source, f.err
}

func addrList(cidrs ...string) func() ([]net.Addr, error) {
	return func() ([]net.Addr, error) {
		var addrs []net.Addr
		for _, cidr := range cidrs {
			ip, ipNet, err := net.ParseCIDR(cidr)
			if err != nil {
				return nil, err
			}
			ipNet.IP = ip
			addrs = append(addrs, ipNet)
		}
		return addrs, nil
	}
}

func testResolver() *Resolver {
	return &Resolver{
		Routes:     &fakeRoutes{source: "192.0.2.10"},
		Hostname:   func() (string, error) { return "web01", nil },
		LookupFQDN: func(host string) (string, error) { return "web01.example.com.", nil },
		Addrs:      addrList("10.0.0.5/24"),
	}
}

func rcForTest() *argus_io.RuntimeContext {
	return argus_io.NewContext(context.Background(), "test")
}

func TestResolvePreferredSource(t *testing.T) {
	identity := testResolver().Resolve(rcForTest())

	assert.Equal(t, "web01.example.com", identity.Hostname)
	assert.Equal(t, "192.0.2.10", identity.PrimaryIPv4)
	assert.True(t, identity.HasIP())
}

func TestResolveFallsBackToInterfaceEnumeration(t *testing.T) {
	r := testResolver()
	r.Routes = &fakeRoutes{err: cerr.New("network is unreachable")}
	r.Addrs = addrList("127.0.0.1/8", "169.254.1.1/16", "10.0.0.5/24", "10.0.0.6/24")

	identity := r.Resolve(rcForTest())

	assert.Equal(t, "10.0.0.5", identity.PrimaryIPv4,
		"first global-scope IPv4 in enumeration order, skipping loopback and link-local")
}

func TestResolveNoIPSentinel(t *testing.T) {
	r := testResolver()
	r.Routes = &fakeRoutes{err: cerr.New("no route")}
	r.Addrs = addrList("127.0.0.1/8")

	identity := r.Resolve(rcForTest())

	assert.Equal(t, NoIPSentinel, identity.PrimaryIPv4)
	assert.False(t, identity.HasIP())
}

func TestResolveIgnoresNonIPv4Source(t *testing.T) {
	r := testResolver()
	r.Routes = &fakeRoutes{source: "fd00::1"}

	identity := r.Resolve(rcForTest())

	assert.Equal(t, "10.0.0.5", identity.PrimaryIPv4, "IPv6 source falls through to enumeration")
}

func TestResolveHostnameFallbacks(t *testing.T) {
	t.Run("short name when FQDN lookup fails", func(t *testing.T) {
		r := testResolver()
		r.LookupFQDN = func(host string) (string, error) { return "", cerr.New("no such host") }

		identity := r.Resolve(rcForTest())
		assert.Equal(t, "web01", identity.Hostname)
	})

	t.Run("placeholder when everything is empty", func(t *testing.T) {
		r := testResolver()
		r.Hostname = func() (string, error) { return "", nil }

		identity := r.Resolve(rcForTest())
		assert.Equal(t, PlaceholderHostname, identity.Hostname)
	})

	t.Run("never errors", func(t *testing.T) {
		r := &Resolver{
			Routes:     &fakeRoutes{err: cerr.New("down")},
			Hostname:   func() (string, error) { return "", cerr.New("down") },
			LookupFQDN: func(string) (string, error) { return "", cerr.New("down") },
			Addrs:      func() ([]net.Addr, error) { return nil, cerr.New("down") },
		}
		identity := r.Resolve(rcForTest())
		require.Equal(t, PlaceholderHostname, identity.Hostname)
		require.Equal(t, NoIPSentinel, identity.PrimaryIPv4)
	})
}

func TestUDPRouteQueryLocalhost(t *testing.T) {
	// Routing toward loopback must pick a loopback source without sending
	// any traffic.
	src, err := udpRouteQuery{}.PreferredSource("127.0.0.1:80")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", src)
}
