package transport

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"golang.org/x/net/icmp"
)

// ErrUnavailable marks a raw ICMP endpoint that could not be created,
// typically because the process lacks the needed privilege.
var ErrUnavailable = errors.New("icmp endpoint unavailable")

// Conn is the raw endpoint an echo engine probes through. It carries bytes
// only; framing and matching belong to the caller.
type Conn interface {
	// WriteTo sends one frame to addr.
	WriteTo(b []byte, addr netip.Addr) (int, error)
	// ReadFrom blocks for one inbound frame until deadline. A deadline
	// expiry is reported as an error satisfying os.ErrDeadlineExceeded.
	ReadFrom(b []byte, deadline time.Time) (int, netip.Addr, error)
	Close() error
}

type icmpConn struct {
	conn *icmp.PacketConn
}

// Open creates a privileged raw IPv4 ICMP endpoint.
func Open() (Conn, error) {
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &icmpConn{conn: conn}, nil
}

func (c *icmpConn) WriteTo(b []byte, addr netip.Addr) (int, error) {
	dst := &net.IPAddr{IP: addr.Unmap().AsSlice()}
	return c.conn.WriteTo(b, dst)
}

func (c *icmpConn) ReadFrom(b []byte, deadline time.Time) (int, netip.Addr, error) {
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return 0, netip.Addr{}, err
	}
	n, peer, err := c.conn.ReadFrom(b)
	if err != nil {
		return 0, netip.Addr{}, err
	}
	var src netip.Addr
	if ipAddr, ok := peer.(*net.IPAddr); ok {
		src, _ = netip.AddrFromSlice(ipAddr.IP)
		src = src.Unmap()
	}
	return n, src, nil
}

func (c *icmpConn) Close() error {
	return c.conn.Close()
}
