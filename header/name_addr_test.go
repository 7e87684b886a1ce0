package header_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/uri"
)

func aliceAddr() header.NameAddr {
	return header.NameAddr{
		DisplayName: "Alice",
		URI:         &uri.SIP{User: uri.User("alice"), Addr: uri.Host("atlanta.com")},
		Params:      header.Values{"tag": {"1928301774"}},
	}
}

func TestNameAddr_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		addr header.NameAddr
		want string
	}{
		{"zero", header.NameAddr{}, "<>"},
		{"full", aliceAddr(), `"Alice" <sip:alice@atlanta.com>;tag=1928301774`},
		{
			"q first",
			header.NameAddr{
				URI:    &uri.SIP{Addr: uri.HostPort("192.0.2.4", 5060)},
				Params: header.Values{"expires": {"3600"}, "q": {"0.7"}},
			},
			"<sip:192.0.2.4:5060>;q=0.7;expires=3600",
		},
		{
			"quoted display name",
			header.NameAddr{
				DisplayName: `Bob "the" Builder`,
				URI:         &uri.SIP{User: uri.User("bob"), Addr: uri.Host("biloxi.com"), Secured: true},
			},
			`"Bob \"the\" Builder" <sips:bob@biloxi.com>`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.String(); got != c.want {
				t.Errorf("addr.String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestNameAddr_Equal(t *testing.T) {
	t.Parallel()

	ptr := aliceAddr()
	other := aliceAddr()
	other.DisplayName = "A."

	noTag := aliceAddr()
	noTag.DelParam("tag")

	extra := aliceAddr()
	extra.SetParam("x-foo", "bar")

	cases := []struct {
		name string
		addr header.NameAddr
		val  any
		want bool
	}{
		{"nil", aliceAddr(), nil, false},
		{"same", aliceAddr(), aliceAddr(), true},
		{"ptr", aliceAddr(), &ptr, true},
		{"display name ignored", aliceAddr(), other, true},
		{"tag missing", aliceAddr(), noTag, false},
		{"extension param ignored", aliceAddr(), extra, true},
		{"tag value", aliceAddr(), header.NameAddr{URI: aliceAddr().URI, Params: header.Values{"tag": {"x"}}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.Equal(c.val); got != c.want {
				t.Errorf("addr.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestNameAddr_Params(t *testing.T) {
	t.Parallel()

	addr := aliceAddr()
	if !addr.HasParam("TAG") {
		t.Error("addr.HasParam(\"TAG\") = false, want true")
	}
	addr.SetParam("Expires", "60")
	if got, ok := addr.Expires(); !ok || got != time.Minute {
		t.Errorf("addr.Expires() = (%v, %v), want (1m0s, true)", got, ok)
	}
	if got, ok := addr.Q(); ok || got != 1 {
		t.Errorf("addr.Q() = (%v, %v), want (1, false)", got, ok)
	}
	addr.SetParam("q", "0.5")
	if got, ok := addr.Q(); !ok || got != 0.5 {
		t.Errorf("addr.Q() = (%v, %v), want (0.5, true)", got, ok)
	}
	addr.DelParam("tag")
	if _, ok := addr.Tag(); ok {
		t.Error("addr.Tag() found deleted param")
	}

	var zero header.NameAddr
	zero.SetParam("lr", "")
	if !zero.HasParam("lr") {
		t.Error("zero.HasParam(\"lr\") = false, want true")
	}
}

func TestNameAddr_Clone(t *testing.T) {
	t.Parallel()

	addr := aliceAddr()
	clone := addr.Clone()
	if diff := cmp.Diff(clone.String(), addr.String()); diff != "" {
		t.Errorf("addr.Clone() mismatch (-got +want):\n%v", diff)
	}
	clone.SetParam("tag", "changed")
	clone.URI.(*uri.SIP).Addr = uri.Host("example.com")
	if got := addr.String(); got != `"Alice" <sip:alice@atlanta.com>;tag=1928301774` {
		t.Errorf("original changed after clone modification: %q", got)
	}
}

func TestNameAddr_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		addr header.NameAddr
		want bool
	}{
		{"zero", header.NameAddr{}, false},
		{"full", aliceAddr(), true},
		{"bad param", header.NameAddr{URI: aliceAddr().URI, Params: header.Values{"a b": {"1"}}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.IsValid(); got != c.want {
				t.Errorf("addr.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFrom_To(t *testing.T) {
	t.Parallel()

	from := header.From(aliceAddr())
	if got, want := from.Render(nil), `From: "Alice" <sip:alice@atlanta.com>;tag=1928301774`; got != want {
		t.Errorf("from.Render(nil) = %q, want %q", got, want)
	}
	if got, ok := from.Tag(); !ok || got != "1928301774" {
		t.Errorf("from.Tag() = (%q, %v), want (\"1928301774\", true)", got, ok)
	}

	to := header.To(aliceAddr())
	if got, want := to.Render(&header.RenderOptions{Compact: true}), `t: "Alice" <sip:alice@atlanta.com>;tag=1928301774`; got != want {
		t.Errorf("to.Render(compact) = %q, want %q", got, want)
	}
	if from.Equal(&to) {
		t.Error("from.Equal(to) = true, want false")
	}
	if !to.Equal(to.Clone()) {
		t.Error("to.Equal(to.Clone()) = false, want true")
	}

	var nilFrom *header.From
	if got := nilFrom.Render(nil); got != "" {
		t.Errorf("nil.Render(nil) = %q, want \"\"", got)
	}
	if nilFrom.Clone() != nil {
		t.Error("nil.Clone() != nil")
	}
}
