package netio

import (
	"context"
	"errors"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/webcraft-project/async-core/asyncerrors"
)

// Datagram is one received UDP payload together with the address it came
// from, returned by UDPSocket.RecvFrom.
type Datagram struct {
	Payload []byte
	Host    string
	Port    uint16
}

// UDPSocket is a bound UDP endpoint supporting multicast group membership.
// Loopback is enabled by default on every platform this module targets, so a
// local sender is receivable by a local joiner on the same host, matching
// async_udp.cpp's macOS-specific IP_MULTICAST_LOOP/IPV6_MULTICAST_LOOP
// default generalized to every platform here.
type UDPSocket struct {
	conn   *net.UDPConn
	p4     *ipv4.PacketConn
	p6     *ipv6.PacketConn
	closed bool
}

// BindUDP resolves ep (taking the first successful candidate) and binds a
// UDP socket to it, enabling multicast loopback on both the IPv4 and IPv6
// control planes.
func BindUDP(ctx context.Context, ep Endpoint) (*UDPSocket, error) {
	candidates, err := resolveHostCandidates(ctx, ep)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, addr := range candidates {
		udpAddr := &net.UDPAddr{IP: addr.IP, Port: addr.Port, Zone: addr.Zone}
		conn, err := net.ListenUDP("udp", udpAddr)
		if err != nil {
			lastErr = err

			continue
		}

		s := &UDPSocket{
			conn: conn,
			p4:   ipv4.NewPacketConn(conn),
			p6:   ipv6.NewPacketConn(conn),
		}
		_ = s.p4.SetMulticastLoopback(true)
		_ = s.p6.SetMulticastLoopback(true)

		return s, nil
	}

	return nil, &asyncerrors.IoError{Op: "bind", Code: lastErr}
}

// LocalPort returns the UDP port this socket is bound to, e.g. to discover
// the ephemeral port chosen when Port == 0 was requested.
func (s *UDPSocket) LocalPort() uint16 {
	addr, _ := s.conn.LocalAddr().(*net.UDPAddr)
	if addr == nil {
		return 0
	}

	return uint16(addr.Port)
}

// RecvFrom reads the next datagram. ok == false signals the socket has been
// closed.
func (s *UDPSocket) RecvFrom(ctx context.Context) (Datagram, bool, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return Datagram{}, false, context.Cause(ctx)
	}
	if s.closed {
		return Datagram{}, false, nil
	}

	buf := make([]byte, chunkSize)
	n, addr, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return Datagram{}, false, nil
		}

		return Datagram{}, false, &asyncerrors.IoError{Op: "recvfrom", Code: err}
	}

	return Datagram{Payload: buf[:n], Host: addr.IP.String(), Port: uint16(addr.Port)}, true, nil
}

// SendTo sends payload to the given endpoint.
func (s *UDPSocket) SendTo(ctx context.Context, ep Endpoint, payload []byte) error {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return context.Cause(ctx)
	}

	addr, err := net.ResolveUDPAddr("udp", ep.String())
	if err != nil {
		return &asyncerrors.AddressError{Addr: ep.Host, Reason: err.Error()}
	}

	if _, err := s.conn.WriteToUDP(payload, addr); err != nil {
		return &asyncerrors.IoError{Op: "sendto", Code: err}
	}

	return nil
}

// SendToGroup sends payload to a multicast group.
func (s *UDPSocket) SendToGroup(ctx context.Context, group MulticastGroup, payload []byte) error {
	return s.SendTo(ctx, Endpoint{Host: group.Host, Port: group.Port}, payload)
}

// Join enables membership in group on every local interface, setting
// IP_ADD_MEMBERSHIP or IPV6_JOIN_GROUP as appropriate for the group's
// address family.
func (s *UDPSocket) Join(group MulticastGroup) error {
	if group.isIPv4() {
		if err := s.p4.JoinGroup(nil, &net.UDPAddr{IP: group.ip}); err != nil {
			return &asyncerrors.IoError{Op: "join_group", Code: err}
		}

		return nil
	}

	if err := s.p6.JoinGroup(nil, &net.UDPAddr{IP: group.ip}); err != nil {
		return &asyncerrors.IoError{Op: "join_group", Code: err}
	}

	return nil
}

// Leave drops membership in group, the inverse of Join.
func (s *UDPSocket) Leave(group MulticastGroup) error {
	if group.isIPv4() {
		if err := s.p4.LeaveGroup(nil, &net.UDPAddr{IP: group.ip}); err != nil {
			return &asyncerrors.IoError{Op: "leave_group", Code: err}
		}

		return nil
	}

	if err := s.p6.LeaveGroup(nil, &net.UDPAddr{IP: group.ip}); err != nil {
		return &asyncerrors.IoError{Op: "leave_group", Code: err}
	}

	return nil
}

// Close shuts down the socket. It is idempotent.
func (s *UDPSocket) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return &asyncerrors.IoError{Op: "close", Code: err}
	}

	return nil
}
