package internal

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

var resolver = net.Resolver{PreferGo: true}

// resolve looks up exactly one address of the requested family and packs
// it into a sockaddr on the given port. There is no cross-family retry:
// asking for IPv6 on a v4-only host is a terminal failure.
func resolve(ctx context.Context, host string, ipv6 bool, port int) (unix.Sockaddr, error) {
	network := "ip4"
	if ipv6 {
		network = "ip6"
	}
	ips, err := resolver.LookupIP(ctx, network, host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolve, err)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: no %s address for %s", ErrResolve, network, host)
	}

	if ipv6 {
		sa := &unix.SockaddrInet6{Port: port}
		copy(sa.Addr[:], ips[0].To16())
		return sa, nil
	}
	ip4 := ips[0].To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%w: %s resolved to a non-IPv4 address", ErrResolve, host)
	}
	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip4)
	return sa, nil
}
