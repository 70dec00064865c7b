package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// ErrNameResolution marks a host that could not be resolved to an IPv4 address.
var ErrNameResolution = errors.New("name resolution failed")

// Resolver turns a hostname or literal address into an IPv4 address.
// The zero value uses net.DefaultResolver.
type Resolver struct {
	LookupNetIP func(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Addr resolves host. Literal addresses bypass DNS entirely.
func (r Resolver) Addr(ctx context.Context, host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		if !addr.Is4() && !addr.Is4In6() {
			return netip.Addr{}, fmt.Errorf("%w: %q is not an IPv4 address", ErrNameResolution, host)
		}
		return addr.Unmap(), nil
	}

	lookup := r.LookupNetIP
	if lookup == nil {
		lookup = net.DefaultResolver.LookupNetIP
	}

	addrs, err := lookup(ctx, "ip4", host)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q: %v", ErrNameResolution, host, err)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("%w: %q: no addresses", ErrNameResolution, host)
	}
	return addrs[0].Unmap(), nil
}
