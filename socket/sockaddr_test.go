//go:build unix

package socket

import (
	"net"
	"net/netip"
	"strconv"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSockaddrFromAddrPort(t *testing.T) {
	cases := []struct {
		in     string
		family int
		port   int
	}{
		{"127.0.0.1:80", unix.AF_INET, 80},
		{"[::ffff:10.0.0.1]:443", unix.AF_INET, 443},
		{"[::1]:8080", unix.AF_INET6, 8080},
	}
	for _, tc := range cases {
		ap := netip.MustParseAddrPort(tc.in)
		sa, err := SockaddrFromAddrPort(ap)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		switch sa := sa.(type) {
		case *unix.SockaddrInet4:
			if tc.family != unix.AF_INET || sa.Port != tc.port {
				t.Errorf("%s: got inet4 port %d", tc.in, sa.Port)
			}
			if sa.Addr != ap.Addr().Unmap().As4() {
				t.Errorf("%s: addr %v", tc.in, sa.Addr)
			}
		case *unix.SockaddrInet6:
			if tc.family != unix.AF_INET6 || sa.Port != tc.port {
				t.Errorf("%s: got inet6 port %d", tc.in, sa.Port)
			}
		default:
			t.Errorf("%s: unexpected %T", tc.in, sa)
		}
		if got := FamilyOf(ap.Addr()); got != tc.family {
			t.Errorf("%s: FamilyOf = %d, want %d", tc.in, got, tc.family)
		}
	}

	if sa, err := SockaddrFromAddrPort(netip.AddrPort{}); sa != nil || err == nil {
		t.Errorf("invalid addr gave %v, %v", sa, err)
	}
}

func TestAddrPortFromSockaddr(t *testing.T) {
	for _, in := range []string{"192.0.2.7:9000", "[2001:db8::1]:53"} {
		ap := netip.MustParseAddrPort(in)
		sa, err := SockaddrFromAddrPort(ap)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := AddrPortFromSockaddr(sa)
		if !ok || got != ap {
			t.Errorf("%s round trip = %v, %v", in, got, ok)
		}
	}
	if _, ok := AddrPortFromSockaddr(&unix.SockaddrUnix{Name: "/tmp/x"}); ok {
		t.Error("unix sockaddr should not convert")
	}
}

func TestLinkLocalZoneByIndex(t *testing.T) {
	// An index with no interface behind it still round-trips numerically.
	sa, err := SockaddrFromAddrPort(netip.MustParseAddrPort("[fe80::1%4000000]:80"))
	if err != nil {
		t.Fatal(err)
	}
	if id := sa.(*unix.SockaddrInet6).ZoneId; id != 4000000 {
		t.Fatalf("ZoneId = %d, want 4000000", id)
	}
	got, _ := AddrPortFromSockaddr(sa)
	if got.String() != "[fe80::1%4000000]:80" {
		t.Errorf("round trip = %v", got)
	}
}

func TestLinkLocalZoneByName(t *testing.T) {
	ifs, err := net.Interfaces()
	if err != nil || len(ifs) == 0 {
		t.Skip("no interfaces")
	}
	ifi := ifs[0]

	ap := netip.MustParseAddrPort("[fe80::1%" + ifi.Name + "]:80")
	sa, err := SockaddrFromAddrPort(ap)
	if err != nil {
		t.Fatal(err)
	}
	if id := sa.(*unix.SockaddrInet6).ZoneId; id != uint32(ifi.Index) {
		t.Fatalf("ZoneId = %d, want %d", id, ifi.Index)
	}
	got, _ := AddrPortFromSockaddr(sa)
	if got != ap {
		t.Errorf("round trip = %v, want %v", got, ap)
	}

	// A numeric zone naming the same interface comes back by name.
	sa, err = SockaddrFromAddrPort(netip.AddrPortFrom(netip.MustParseAddr("fe80::1").WithZone(strconv.Itoa(ifi.Index)), 80))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := AddrPortFromSockaddr(sa); got.Addr().Zone() != ifi.Name {
		t.Errorf("zone = %q, want %q", got.Addr().Zone(), ifi.Name)
	}
}

func TestUnknownZoneName(t *testing.T) {
	sa, err := SockaddrFromAddrPort(netip.MustParseAddrPort("[fe80::1%nosuchif0]:80"))
	if err == nil || sa != nil {
		t.Fatalf("unknown zone = %v, %v; want error", sa, err)
	}
}
