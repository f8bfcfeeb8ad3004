package netio

import (
	"context"
	"net"
	"strconv"

	"github.com/webcraft-project/async-core/asyncerrors"
)

// Endpoint is an unresolved host/port pair, resolved through the platform
// name service at dial/bind time.
type Endpoint struct {
	Host string
	Port uint16
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// MulticastGroup is a validated multicast group address and port, created
// only by ParseMulticastGroup. IPv4 groups must fall in 224.0.0.0/4; IPv6
// groups must fall in ff00::/8.
type MulticastGroup struct {
	Host string
	Port uint16
	ip   net.IP
}

// ParseMulticastGroup validates host as a multicast literal and pairs it
// with port. It returns asyncerrors.AddressError for any address that is
// not a multicast address.
func ParseMulticastGroup(host string, port uint16) (MulticastGroup, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		return MulticastGroup{}, &asyncerrors.AddressError{
			Addr: host, Reason: "not a valid IP literal",
		}
	}
	if !ip.IsMulticast() {
		return MulticastGroup{}, &asyncerrors.AddressError{
			Addr: host, Reason: "not a multicast address",
		}
	}

	return MulticastGroup{Host: host, Port: port, ip: ip}, nil
}

func (g MulticastGroup) String() string {
	return net.JoinHostPort(g.Host, strconv.Itoa(int(g.Port)))
}

func (g MulticastGroup) isIPv4() bool {
	return g.ip.To4() != nil
}

// resolveHostCandidates resolves ep.Host into every candidate address,
// IPv4 first then IPv6, matching the original's getaddrinfo(AF_UNSPEC) +
// try-each-in-turn connect loop.
func resolveHostCandidates(ctx context.Context, ep Endpoint) ([]*net.TCPAddr, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, ep.Host)
	if err != nil {
		return nil, &asyncerrors.AddressError{Addr: ep.Host, Reason: err.Error()}
	}
	if len(addrs) == 0 {
		return nil, &asyncerrors.AddressError{Addr: ep.Host, Reason: "no addresses found"}
	}

	var v4, v6 []*net.TCPAddr
	for _, a := range addrs {
		tcpAddr := &net.TCPAddr{IP: a.IP, Port: int(ep.Port), Zone: a.Zone}
		if a.IP.To4() != nil {
			v4 = append(v4, tcpAddr)
		} else {
			v6 = append(v6, tcpAddr)
		}
	}

	return append(v4, v6...), nil
}
