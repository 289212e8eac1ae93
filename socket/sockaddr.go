//go:build unix

// File: socket/sockaddr.go
// Author: momentics <momentics@gmail.com>
//
// Conversions between netip and unix.Sockaddr. These are the only helpers in
// the package that do not forward to a primitive; they exist so callers can
// build Bind/Connect/SendTo arguments without hand-filling byte arrays.

package socket

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"

	"golang.org/x/sys/unix"
)

var errInvalidAddr = errors.New("socket: invalid address")

// SockaddrFromAddrPort returns a *unix.SockaddrInet4 for IPv4 (including
// IPv4-mapped IPv6) addresses and a *unix.SockaddrInet6 otherwise. An IPv6
// zone is either a decimal interface index or an interface name; a name
// that does not resolve is an error.
func SockaddrFromAddrPort(ap netip.AddrPort) (unix.Sockaddr, error) {
	addr := ap.Addr()
	switch {
	case !addr.IsValid():
		return nil, errInvalidAddr
	case addr.Is4() || addr.Is4In6():
		return &unix.SockaddrInet4{Port: int(ap.Port()), Addr: addr.Unmap().As4()}, nil
	}
	sa := &unix.SockaddrInet6{Port: int(ap.Port()), Addr: addr.As16()}
	if zone := addr.Zone(); zone != "" {
		id, err := zoneIndex(zone)
		if err != nil {
			return nil, err
		}
		sa.ZoneId = id
	}
	return sa, nil
}

func zoneIndex(zone string) (uint32, error) {
	if n, err := strconv.ParseUint(zone, 10, 32); err == nil {
		return uint32(n), nil
	}
	ifi, err := net.InterfaceByName(zone)
	if err != nil {
		return 0, fmt.Errorf("socket: zone %q: %w", zone, err)
	}
	return uint32(ifi.Index), nil
}

// zoneName is the interface name for index, or its decimal form when no
// such interface exists.
func zoneName(index uint32) string {
	if ifi, err := net.InterfaceByIndex(int(index)); err == nil {
		return ifi.Name
	}
	return strconv.FormatUint(uint64(index), 10)
}

// AddrPortFromSockaddr converts an inet sockaddr back to netip, restoring
// the IPv6 zone from ZoneId. It reports false for unix-domain and other
// families.
func AddrPortFromSockaddr(sa unix.Sockaddr) (netip.AddrPort, bool) {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(sa.Addr), uint16(sa.Port)), true
	case *unix.SockaddrInet6:
		addr := netip.AddrFrom16(sa.Addr)
		if sa.ZoneId != 0 {
			addr = addr.WithZone(zoneName(sa.ZoneId))
		}
		return netip.AddrPortFrom(addr, uint16(sa.Port)), true
	default:
		return netip.AddrPort{}, false
	}
}

// FamilyOf returns AF_INET or AF_INET6 for addr.
func FamilyOf(addr netip.Addr) int {
	if addr.Is4() || addr.Is4In6() {
		return unix.AF_INET
	}
	return unix.AF_INET6
}
