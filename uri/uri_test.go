package uri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparse/uri"
)

func TestGetAddr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  uri.URI
		want string
	}{
		{"nil", nil, ""},
		{"nil sip", (*uri.SIP)(nil), ""},
		{"sip", &uri.SIP{Addr: uri.HostPort("atlanta.com", 5060)}, "atlanta.com:5060"},
		{"stun", &uri.Stun{Addr: uri.Host("::1")}, "[::1]"},
		{"any", mustAny(t, "http://example.com/a/b"), "example.com/a/b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := uri.GetAddr(c.uri); got != c.want {
				t.Errorf("uri.GetAddr(u) = %q, want %q", got, c.want)
			}
		})
	}
}

func TestGetParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  uri.URI
		want uri.Values
	}{
		{"nil", nil, nil},
		{"sip", &uri.SIP{Addr: uri.Host("a.com"), Params: uri.Values{"lr": {""}}}, uri.Values{"lr": {""}}},
		{"stun without transport", &uri.Stun{Addr: uri.Host("a.com")}, nil},
		{"turn", &uri.Stun{Relay: true, Addr: uri.Host("a.com"), Transport: "tcp"}, uri.Values{"transport": {"tcp"}}},
		{"any query", mustAny(t, "http://a.com/?x=1&x=2"), uri.Values{"x": {"1", "2"}}},
		{"any without query", mustAny(t, "urn:a"), nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(c.want, uri.GetParams(c.uri)); diff != "" {
				t.Errorf("uri.GetParams(u) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
