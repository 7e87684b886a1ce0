package digest_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/sipparse/digest"
	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/testutil/digestmock"
	"github.com/ghettovoice/sipparse/uri"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	atlantaNonce = "84a4cc6f3082121f32b42a2187831a9b"
	fixedCNonce  = "0a4f113b"
)

var registerReq = digest.Request{Method: "REGISTER", URI: "sip:registrar.atlanta.com"}

func atlantaChallenge(qop ...string) *header.DigestChallenge {
	return &header.DigestChallenge{Realm: "atlanta.com", Nonce: atlantaNonce, QOP: qop}
}

func fixedTokens(t *testing.T) digest.TokenGenerator {
	t.Helper()
	gen := digestmock.NewMockTokenGenerator(gomock.NewController(t))
	gen.EXPECT().Token(digest.DefaultCNonceLength).Return(fixedCNonce).AnyTimes()
	return gen
}

func newAlice(t *testing.T, opts ...digest.Option) *digest.Credentials {
	t.Helper()
	return digest.NewCredentials("alice", digest.Password("secret"), append([]digest.Option{digest.WithTokenGenerator(fixedTokens(t))}, opts...)...)
}

func TestCredentials_Authenticate_Auth(t *testing.T) {
	t.Parallel()

	c := newAlice(t)
	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))

	assert.Equal(t, digest.StateReady, c.State())
	assert.Equal(t, "4c00389f118405a62dc666c595d7e0d8", c.HA1())
	assert.Equal(t, "576ac601ef3cf8e9af6afb7872f5416c", c.Response())
	assert.Equal(t, "auth", c.QOP())
	assert.Equal(t, fixedCNonce, c.CNonce())
	assert.Equal(t, uint64(1), c.NonceCount())
	assert.Equal(t, "00000001", c.NonceCountHex())
	assert.Equal(t, "atlanta.com", c.Realm())
	assert.Equal(t, atlantaNonce, c.Nonce())
	assert.Equal(t, registerReq, c.Request())

	got, err := c.Serialize()
	require.NoError(t, err)
	assert.Equal(t,
		`Digest algorithm=MD5, username="alice", realm="atlanta.com", nonce="84a4cc6f3082121f32b42a2187831a9b", `+
			`uri="sip:registrar.atlanta.com", response="576ac601ef3cf8e9af6afb7872f5416c", `+
			`qop=auth, cnonce="0a4f113b", nc=00000001`,
		got,
	)

	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
	assert.Equal(t, "00000002", c.NonceCountHex())
	assert.Equal(t, "929546e1ffa5b96f25825ecad0b77563", c.Response())
}

func TestCredentials_Authenticate_QOP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		qop      []string
		body     []byte
		wantQOP  string
		wantResp string
	}{
		{"auth preferred", []string{"auth-int", "auth"}, []byte("v=0\r\n"), "auth", "576ac601ef3cf8e9af6afb7872f5416c"},
		{"auth-int with body", []string{"auth-int"}, []byte("v=0\r\n"), "auth-int", "3700801a67f9a31c93e61411821da16f"},
		{"auth-int without body", []string{"auth-int"}, nil, "auth-int", "d6e9670968beb95f1bb7b1e33312dcb8"},
		{"case-insensitive token", []string{"AUTH"}, nil, "auth", "576ac601ef3cf8e9af6afb7872f5416c"},
		{"no qop", nil, nil, "", "7edbff1e15af84a34e38465c13d16fd1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cr := newAlice(t)
			require.True(t, cr.Authenticate(registerReq, atlantaChallenge(c.qop...), c.body))
			assert.Equal(t, c.wantQOP, cr.QOP())
			assert.Equal(t, c.wantResp, cr.Response())
		})
	}
}

func TestCredentials_Serialize_NoQOP(t *testing.T) {
	t.Parallel()

	c := digest.NewCredentials("bob", digest.Password("zanzibar"))
	cln := &header.DigestChallenge{
		Realm:     "biloxi.com",
		Nonce:     "dcd98b7102dd2f0e8b11d0f600bfb0c093",
		Opaque:    "5ccc069c403ebaf9f0171e9517f40e41",
		Algorithm: "md5",
	}
	req := digest.RequestFromLine(&header.RequestLine{
		Method: "INVITE",
		URI:    &uri.SIP{User: uri.User("bob"), Addr: uri.Host("biloxi.com")},
		Proto:  header.ProtoInfo{Name: "SIP", Version: "2.0"},
	})
	require.True(t, c.Authenticate(req, cln, nil))

	got, err := c.Serialize()
	require.NoError(t, err)
	assert.Equal(t,
		`Digest algorithm=MD5, username="bob", realm="biloxi.com", nonce="dcd98b7102dd2f0e8b11d0f600bfb0c093", `+
			`uri="sip:bob@biloxi.com", response="bf57e4e0d0bffc0fbaedce64d59add5e", opaque="5ccc069c403ebaf9f0171e9517f40e41"`,
		got,
	)
}

func TestCredentials_Authenticate_Reject(t *testing.T) {
	t.Parallel()

	password := func() (string, error) { return "secret", nil }

	cases := []struct {
		name        string
		cln         header.AuthChallenge
		secret      func() (string, error)
		reason      string
		secretCalls int
	}{
		{"missing realm", &header.DigestChallenge{Nonce: atlantaNonce}, password, "missing realm or nonce", 0},
		{"missing nonce", &header.DigestChallenge{Realm: "atlanta.com"}, password, "missing realm or nonce", 0},
		{
			"unsupported algorithm",
			&header.DigestChallenge{Realm: "atlanta.com", Nonce: atlantaNonce, Algorithm: "SHA-256", QOP: []string{"auth"}},
			password,
			"unsupported algorithm",
			0,
		},
		{"unsupported qop", atlantaChallenge("auth-conf"), password, "unsupported qop", 0},
		{
			"other scheme",
			&header.AnyChallenge{AuthScheme: "Bearer", Params: make(header.Values).Append("realm", `"a"`)},
			password,
			"not a Digest challenge",
			0,
		},
		{"nil challenge", nil, password, "not a Digest challenge", 0},
		{
			"secret error",
			atlantaChallenge("auth"),
			func() (string, error) { return "", errors.New("vault is sealed") },
			"secret resolution failed",
			1,
		},
		{"no secret", atlantaChallenge("auth"), nil, "secret resolution failed", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			// no cnonce is drawn and the secret is not touched before the challenge is accepted
			gen := digestmock.NewMockTokenGenerator(gomock.NewController(t))
			gen.EXPECT().Token(gomock.Any()).Times(0)
			var (
				calls  int
				secret digest.Secret
			)
			if c.secret != nil {
				secret = digest.SecretFunc(func() (string, error) {
					calls++
					return c.secret()
				})
			}
			cr := digest.NewCredentials("alice", secret, digest.WithLogger(logger), digest.WithTokenGenerator(gen))

			assert.False(t, cr.Authenticate(registerReq, c.cln, nil))
			assert.Equal(t, c.secretCalls, calls, "secret calls")
			assert.Equal(t, digest.StateIdle, cr.State())
			assert.Equal(t, uint64(0), cr.NonceCount())
			assert.Empty(t, cr.Response())
			assert.Empty(t, cr.HA1())
			assert.Contains(t, buf.String(), "level=WARN")
			assert.Contains(t, buf.String(), c.reason)

			_, err := cr.Serialize()
			assert.ErrorIs(t, err, digest.ErrNotAuthenticated)
			_, err = cr.Authorization()
			assert.ErrorIs(t, err, digest.ErrNotAuthenticated)
		})
	}
}

func TestCredentials_Authenticate_RejectKeepsState(t *testing.T) {
	t.Parallel()

	c := newAlice(t)
	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
	before, err := c.Serialize()
	require.NoError(t, err)

	assert.False(t, c.Authenticate(registerReq, &header.DigestChallenge{Realm: "atlanta.com"}, nil))
	assert.Equal(t, digest.StateReady, c.State())
	assert.Equal(t, uint64(1), c.NonceCount())
	after, err := c.Serialize()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCredentials_Authorization(t *testing.T) {
	t.Parallel()

	c := newAlice(t)
	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))

	hdr, err := c.Authorization()
	require.NoError(t, err)
	crd, ok := hdr.Digest()
	require.True(t, ok)
	assert.Equal(t, &header.DigestCredentials{
		Username:   "alice",
		Realm:      "atlanta.com",
		Nonce:      atlantaNonce,
		URI:        "sip:registrar.atlanta.com",
		Response:   "576ac601ef3cf8e9af6afb7872f5416c",
		Algorithm:  digest.Algorithm,
		QOP:        digest.QOPAuth,
		CNonce:     fixedCNonce,
		NonceCount: 1,
	}, crd)
	assert.True(t, hdr.IsValid())

	serialized, err := c.Serialize()
	require.NoError(t, err)
	assert.Equal(t, hdr.RenderValue(), serialized)
	assert.Equal(t, "Authorization: "+serialized, hdr.Render(nil))

	proxy, err := c.ProxyAuthorization()
	require.NoError(t, err)
	assert.Equal(t, "Proxy-Authorization: "+serialized, proxy.Render(nil))
}

func TestCredentials_Authorization_NoQOP(t *testing.T) {
	t.Parallel()

	c := newAlice(t)
	cln := atlantaChallenge()
	cln.Opaque = "5ccc069c403ebaf9f0171e9517f40e41"
	require.True(t, c.Authenticate(registerReq, cln, nil))

	hdr, err := c.Authorization()
	require.NoError(t, err)
	crd, ok := hdr.Digest()
	require.True(t, ok)
	assert.Empty(t, crd.QOP)
	assert.Empty(t, crd.CNonce)
	assert.Zero(t, crd.NonceCount)
	assert.Equal(t, cln.Opaque, crd.Opaque)
	assert.NotContains(t, hdr.RenderValue(), "cnonce")
	assert.NotContains(t, hdr.RenderValue(), "nc=")
}

func TestCredentials_Serialize_Idle(t *testing.T) {
	t.Parallel()

	c := digest.NewCredentials("alice", digest.Password("secret"))
	assert.Equal(t, digest.StateIdle, c.State())
	_, err := c.Serialize()
	assert.ErrorIs(t, err, digest.ErrNotAuthenticated)
}

func TestCredentials_NonceCountWrap(t *testing.T) {
	t.Parallel()

	c := newAlice(t, digest.WithNonceCount(0xfffffffe))
	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
	assert.Equal(t, uint64(0xffffffff), c.NonceCount())
	assert.Equal(t, "ffffffff", c.NonceCountHex())

	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
	assert.Equal(t, uint64(1), c.NonceCount())
	assert.Equal(t, "00000001", c.NonceCountHex())
	assert.Equal(t, "576ac601ef3cf8e9af6afb7872f5416c", c.Response())
}

func TestCredentials_HA1(t *testing.T) {
	t.Parallel()

	const aliceHA1 = "4c00389f118405a62dc666c595d7e0d8"

	t.Run("precomputed without password", func(t *testing.T) {
		t.Parallel()

		c := digest.NewCredentials("alice", nil,
			digest.WithHA1(aliceHA1, ""),
			digest.WithTokenGenerator(fixedTokens(t)),
		)
		require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
		assert.Equal(t, "576ac601ef3cf8e9af6afb7872f5416c", c.Response())
	})

	t.Run("bound to another realm", func(t *testing.T) {
		t.Parallel()

		c := digest.NewCredentials("alice", digest.Password("secret"), digest.WithHA1("00000000000000000000000000000000", "biloxi.com"))
		require.True(t, c.Authenticate(registerReq, atlantaChallenge(), nil))
		assert.Equal(t, aliceHA1, c.HA1())
	})

	t.Run("lazy secret", func(t *testing.T) {
		t.Parallel()

		calls := 0
		c := digest.NewCredentials("alice", digest.SecretFunc(func() (string, error) {
			calls++
			return "secret", nil
		}))
		assert.Equal(t, 0, calls)
		require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
		assert.Equal(t, 1, calls)
		assert.Equal(t, aliceHA1, c.HA1())

		// the hash is kept for the realm
		require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
		assert.Equal(t, 1, calls)

		cln := &header.DigestChallenge{Realm: "biloxi.com", Nonce: atlantaNonce}
		require.True(t, c.Authenticate(registerReq, cln, nil))
		assert.Equal(t, 2, calls)
		assert.Equal(t, "biloxi.com", c.Realm())
	})
}

func TestCredentials_CNonceLength(t *testing.T) {
	t.Parallel()

	gen := digestmock.NewMockTokenGenerator(gomock.NewController(t))
	gen.EXPECT().Token(32).Return("abcdefghijklmnopqrstuvwxyz012345").Times(1)

	c := digest.NewCredentials("alice", digest.Password("secret"), digest.WithTokenGenerator(gen), digest.WithCNonceLength(32))
	require.True(t, c.Authenticate(registerReq, atlantaChallenge("auth"), nil))
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz012345", c.CNonce())

	def := digest.NewCredentials("alice", digest.Password("secret"))
	require.True(t, def.Authenticate(registerReq, atlantaChallenge("auth"), nil))
	assert.Len(t, def.CNonce(), digest.DefaultCNonceLength)
}
