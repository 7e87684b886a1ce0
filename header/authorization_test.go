package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparse/header"
)

func aliceCredentials() *header.DigestCredentials {
	return &header.DigestCredentials{
		Username:   "alice",
		Realm:      "atlanta.com",
		Nonce:      "84a4cc6f3082121f32b42a2187831a9b",
		URI:        "sip:registrar.atlanta.com",
		Response:   "576ac601ef3cf8e9af6afb7872f5416c",
		Algorithm:  "MD5",
		QOP:        "auth",
		CNonce:     "0a4f113b",
		NonceCount: 1,
	}
}

func TestAuthorization_Render(t *testing.T) {
	t.Parallel()

	noQOP := aliceCredentials()
	noQOP.QOP = ""
	noQOP.Opaque = "5ccc069c403ebaf9f0171e9517f40e41"

	ext := aliceCredentials()
	ext.Params = header.Values{"userhash": {"false"}}

	cases := []struct {
		name string
		hdr  header.Header
		want string
	}{
		{"nil", (*header.Authorization)(nil), ""},
		{
			"digest",
			&header.Authorization{AuthCredentials: aliceCredentials()},
			`Authorization: Digest algorithm=MD5, username="alice", realm="atlanta.com", ` +
				`nonce="84a4cc6f3082121f32b42a2187831a9b", uri="sip:registrar.atlanta.com", ` +
				`response="576ac601ef3cf8e9af6afb7872f5416c", qop=auth, cnonce="0a4f113b", nc=00000001`,
		},
		{
			"digest without qop",
			&header.ProxyAuthorization{AuthCredentials: noQOP},
			`Proxy-Authorization: Digest algorithm=MD5, username="alice", realm="atlanta.com", ` +
				`nonce="84a4cc6f3082121f32b42a2187831a9b", uri="sip:registrar.atlanta.com", ` +
				`response="576ac601ef3cf8e9af6afb7872f5416c", opaque="5ccc069c403ebaf9f0171e9517f40e41"`,
		},
		{
			"digest extension",
			&header.Authorization{AuthCredentials: ext},
			`Authorization: Digest algorithm=MD5, username="alice", realm="atlanta.com", ` +
				`nonce="84a4cc6f3082121f32b42a2187831a9b", uri="sip:registrar.atlanta.com", ` +
				`response="576ac601ef3cf8e9af6afb7872f5416c", qop=auth, cnonce="0a4f113b", nc=00000001, userhash=false`,
		},
		{
			"other scheme",
			&header.Authorization{AuthCredentials: &header.AnyCredentials{
				AuthScheme: "Bearer",
				Params:     header.Values{"token": {`"abc"`}},
			}},
			`Authorization: Bearer token="abc"`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Render(nil); got != c.want {
				t.Errorf("hdr.Render(nil) = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDigestCredentials_Equal(t *testing.T) {
	t.Parallel()

	upper := aliceCredentials()
	upper.Realm = "ATLANTA.COM"
	upper.Algorithm = "md5"
	upper.QOP = "AUTH"
	upper.Response = "576AC601EF3CF8E9AF6AFB7872F5416C"

	otherUser := aliceCredentials()
	otherUser.Username = "Alice"

	otherNC := aliceCredentials()
	otherNC.NonceCount = 2

	cases := []struct {
		name string
		crd  *header.DigestCredentials
		val  any
		want bool
	}{
		{"nil to nil", nil, (*header.DigestCredentials)(nil), true},
		{"nil to val", nil, aliceCredentials(), false},
		{"same", aliceCredentials(), aliceCredentials(), true},
		{"value", aliceCredentials(), *aliceCredentials(), true},
		{"case-insensitive fields", aliceCredentials(), upper, true},
		{"username is case-sensitive", aliceCredentials(), otherUser, false},
		{"nonce count differs", aliceCredentials(), otherNC, false},
		{"other type", aliceCredentials(), &header.AnyCredentials{AuthScheme: "Digest"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.crd.Equal(c.val); got != c.want {
				t.Errorf("crd.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestDigestCredentials_IsValid(t *testing.T) {
	t.Parallel()

	noURI := aliceCredentials()
	noURI.URI = ""
	shortResp := aliceCredentials()
	shortResp.Response = "576ac601"
	noCNonce := aliceCredentials()
	noCNonce.CNonce = ""
	noNC := aliceCredentials()
	noNC.NonceCount = 0
	noQOP := aliceCredentials()
	noQOP.QOP, noQOP.CNonce, noQOP.NonceCount = "", "", 0

	cases := []struct {
		name string
		crd  *header.DigestCredentials
		want bool
	}{
		{"nil", nil, false},
		{"full", aliceCredentials(), true},
		{"without qop", noQOP, true},
		{"no uri", noURI, false},
		{"short response", shortResp, false},
		{"qop without cnonce", noCNonce, false},
		{"qop without nc", noNC, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.crd.IsValid(); got != c.want {
				t.Errorf("crd.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAuthorization_Clone(t *testing.T) {
	t.Parallel()

	crd := aliceCredentials()
	crd.Params = header.Values{"userhash": {"false"}}
	hdr := &header.Authorization{AuthCredentials: crd}

	clone := hdr.Clone().(*header.Authorization)
	if diff := cmp.Diff(clone, hdr); diff != "" {
		t.Errorf("hdr.Clone() mismatch (-got +want):\n%v", diff)
	}
	crdClone, ok := clone.Digest()
	if !ok {
		t.Fatal("clone.Digest() = false, want true")
	}
	crdClone.Params.Set("userhash", "true")
	if v, _ := crd.Params.Last("userhash"); v != "false" {
		t.Errorf("original params changed after clone modification: userhash = %q", v)
	}

	proxy := header.ProxyAuthorization(*hdr)
	if !proxy.Equal(proxy.Clone()) {
		t.Error("proxy.Equal(proxy.Clone()) = false, want true")
	}
	if proxy.Equal(hdr) {
		t.Error("Proxy-Authorization equals Authorization")
	}
	if !proxy.IsValid() {
		t.Error("proxy.IsValid() = false, want true")
	}
}
