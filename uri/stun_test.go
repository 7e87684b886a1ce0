package uri_test

import (
	"testing"

	"github.com/ghettovoice/sipparse/uri"
)

func TestStun(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		uri        *uri.Stun
		wantScheme string
		wantStr    string
		wantPort   uint16
		wantSRV    string
	}{
		{
			"stun",
			&uri.Stun{Addr: uri.Host("stun.example.com")},
			"stun", "stun:stun.example.com", 3478, "_stun._udp.stun.example.com.",
		},
		{
			"stuns with port",
			&uri.Stun{Secured: true, Addr: uri.HostPort("Stun.Example.com", 443)},
			"stuns", "stuns:Stun.Example.com:443", 443, "_stuns._tcp.stun.example.com.",
		},
		{
			"turn over tcp",
			&uri.Stun{Relay: true, Addr: uri.Host("turn.example.com"), Transport: "TCP"},
			"turn", "turn:turn.example.com?transport=tcp", 3478, "_turn._tcp.turn.example.com.",
		},
		{
			"turns",
			&uri.Stun{Relay: true, Secured: true, Addr: uri.Host("turn.example.com")},
			"turns", "turns:turn.example.com", 5349, "_turns._tcp.turn.example.com.",
		},
		{
			"IPv4 host has no SRV name",
			&uri.Stun{Addr: uri.HostPort("192.0.2.1", 3479)},
			"stun", "stun:192.0.2.1:3479", 3479, "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.uri.Scheme(); got != c.wantScheme {
				t.Errorf("uri.Scheme() = %q, want %q", got, c.wantScheme)
			}
			if got := c.uri.String(); got != c.wantStr {
				t.Errorf("uri.String() = %q, want %q", got, c.wantStr)
			}
			if got := c.uri.Port(); got != c.wantPort {
				t.Errorf("uri.Port() = %d, want %d", got, c.wantPort)
			}
			if got := c.uri.SRVName(); got != c.wantSRV {
				t.Errorf("uri.SRVName() = %q, want %q", got, c.wantSRV)
			}
			if !c.uri.IsValid() {
				t.Error("uri.IsValid() = false, want true")
			}
			if !c.uri.Equal(c.uri.Clone()) {
				t.Error("uri.Equal(uri.Clone()) = false, want true")
			}
		})
	}
}

func TestStun_Validity(t *testing.T) {
	t.Parallel()

	if (&uri.Stun{Addr: uri.Host("example.com"), Transport: "tcp"}).IsValid() {
		t.Error("stun URI with transport is valid, want invalid")
	}
	if (&uri.Stun{Addr: uri.Host("")}).IsValid() {
		t.Error("stun URI without host is valid, want invalid")
	}
	if (*uri.Stun)(nil).IsValid() {
		t.Error("(*Stun)(nil).IsValid() = true, want false")
	}

	a := &uri.Stun{Relay: true, Addr: uri.Host("example.com"), Transport: "UDP"}
	b := uri.Stun{Relay: true, Addr: uri.Host("EXAMPLE.com"), Transport: "udp"}
	if !a.Equal(b) {
		t.Errorf("a.Equal(b) = false, want true")
	}
	if a.Equal(&uri.Stun{Addr: uri.Host("example.com"), Transport: "udp"}) {
		t.Errorf("turn URI equals stun URI")
	}
}
