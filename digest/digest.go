// Package digest computes Digest credentials (RFC 2617) answering a SIP authentication challenge.
//
// A [Credentials] instance is long-lived: it keeps the nonce count across calls
// for the same username and must not be used from several goroutines at once.
// Only the MD5 algorithm is supported.
package digest

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -package digestmock -destination ../internal/testutil/digestmock/token_generator.go . TokenGenerator

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/log"
	"github.com/ghettovoice/sipparse/internal/randutils"
	"github.com/ghettovoice/sipparse/internal/util"
)

// ErrNotAuthenticated is returned by [Credentials.Serialize] and [Credentials.Authorization] before a successful [Credentials.Authenticate].
const ErrNotAuthenticated errorutil.Error = "credentials are not authenticated"

// Algorithm is the only supported digest algorithm.
const Algorithm = "MD5"

const (
	QOPAuth    = "auth"
	QOPAuthInt = "auth-int"
)

// DefaultCNonceLength is the length of generated client nonces.
const DefaultCNonceLength = 12

// maxNonceCount is the exclusive upper bound of the nonce count, it wraps to 1.
const maxNonceCount = 1 << 32

// State is the state of [Credentials].
type State string

const (
	StateIdle  State = "idle"
	StateReady State = "ready"
)

const trigAuthenticated = "authenticated"

// Secret is the long-term password, either [Password] or [SecretFunc].
type Secret interface {
	secret() (string, error)
}

// Password is a literal password.
type Password string

func (p Password) secret() (string, error) { return string(p), nil }

// SecretFunc resolves the password when the HA1 hash is computed.
type SecretFunc func() (string, error)

func (fn SecretFunc) secret() (string, error) { return errtrace.Wrap2(fn()) }

// TokenGenerator generates client nonces.
type TokenGenerator interface {
	Token(n int) string
}

// TokenGeneratorFunc is an adapter to use a function as [TokenGenerator].
type TokenGeneratorFunc func(n int) string

func (fn TokenGeneratorFunc) Token(n int) string { return fn(n) }

var defTokenGen = TokenGeneratorFunc(randutils.RandString)

// Request identifies the request being authenticated.
type Request struct {
	Method string
	URI    string
}

// RequestFromLine returns the method and Request-URI of the request line.
func RequestFromLine(ln *header.RequestLine) Request {
	if ln == nil {
		return Request{}
	}
	req := Request{Method: string(ln.Method)}
	if ln.URI != nil {
		req.URI = ln.URI.Render(nil)
	}
	return req
}

// Option configures [Credentials].
type Option func(c *Credentials)

// WithHA1 sets a precomputed MD5(username:realm:password) hash.
// It is used for challenges of the given realm, an empty realm matches any challenge.
func WithHA1(ha1, realm string) Option {
	return func(c *Credentials) {
		c.ha1 = util.LCase(ha1)
		c.ha1Realm = realm
	}
}

// WithTokenGenerator sets the client nonce generator, defaults to a crypto/rand based one.
func WithTokenGenerator(gen TokenGenerator) Option {
	return func(c *Credentials) {
		if gen != nil {
			c.tokens = gen
		}
	}
}

// WithLogger sets the logger receiving challenge rejections.
func WithLogger(l *slog.Logger) Option {
	return func(c *Credentials) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCNonceLength sets the generated client nonce length.
func WithCNonceLength(n int) Option {
	return func(c *Credentials) {
		if n > 0 {
			c.cnonceLen = n
		}
	}
}

// WithNonceCount resumes a session at the given nonce count.
func WithNonceCount(nc uint32) Option {
	return func(c *Credentials) { c.nc = uint64(nc) }
}

type session struct {
	realm, nonce, opaque string
	qop                  string
	method, uri          string
	cnonce               string
	nc                   uint64
	ha1                  string
	response             string
}

// Credentials computes the Authorization or Proxy-Authorization header value.
type Credentials struct {
	username  string
	secret    Secret
	ha1       string
	ha1Realm  string
	tokens    TokenGenerator
	cnonceLen int
	log       *slog.Logger
	fsm       *stateless.StateMachine

	nc   uint64
	sess session
}

// NewCredentials creates credentials in the [StateIdle] state.
// secret may be nil when the HA1 hash is given with [WithHA1].
func NewCredentials(username string, secret Secret, opts ...Option) *Credentials {
	c := &Credentials{
		username:  username,
		secret:    secret,
		tokens:    defTokenGen,
		cnonceLen: DefaultCNonceLength,
		log:       log.Noop,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.fsm = stateless.NewStateMachine(StateIdle)
	c.fsm.Configure(StateIdle).
		Permit(trigAuthenticated, StateReady)
	c.fsm.Configure(StateReady).
		PermitReentry(trigAuthenticated)
	return c
}

// Authenticate answers the Digest challenge for the request.
// body is hashed only when the "auth-int" protection is selected.
//
// It returns false when the challenge is rejected: another scheme or algorithm, missing realm or nonce,
// no supported qop or an unresolved secret. The reason is logged at warning level and the credentials
// stay as they were.
func (c *Credentials) Authenticate(req Request, cln header.AuthChallenge, body []byte) bool {
	ctx := context.Background()
	dig, ok := cln.(*header.DigestChallenge)
	if !ok || dig == nil {
		c.reject(ctx, "not a Digest challenge", slog.Any("challenge", cln))
		return false
	}
	if dig.Algorithm != "" && !util.EqFold(dig.Algorithm, Algorithm) {
		c.reject(ctx, "unsupported algorithm", slog.String("algorithm", dig.Algorithm))
		return false
	}
	if dig.Realm == "" || dig.Nonce == "" {
		c.reject(ctx, "missing realm or nonce", slog.String("realm", dig.Realm), slog.String("nonce", dig.Nonce))
		return false
	}

	sess := session{
		realm:  dig.Realm,
		nonce:  dig.Nonce,
		opaque: dig.Opaque,
		method: req.Method,
		uri:    req.URI,
	}
	if len(dig.QOP) > 0 {
		switch {
		case dig.HasQOP(QOPAuth):
			sess.qop = QOPAuth
		case dig.HasQOP(QOPAuthInt):
			sess.qop = QOPAuthInt
		default:
			c.reject(ctx, "unsupported qop", slog.Any("qop", dig.QOP))
			return false
		}
	}

	ha1, computed, err := c.ha1For(sess.realm)
	if err != nil {
		c.reject(ctx, "secret resolution failed", slog.Any("error", err))
		return false
	}
	sess.ha1 = ha1
	sess.cnonce = c.tokens.Token(c.cnonceLen)
	sess.nc = c.nc + 1
	if sess.nc >= maxNonceCount {
		sess.nc = 1
	}
	sess.response = response(sess, body)

	if err := c.fsm.FireCtx(ctx, trigAuthenticated); err != nil {
		c.reject(ctx, "state transition failed", slog.Any("error", err))
		return false
	}
	c.nc = sess.nc
	c.sess = sess
	if computed {
		c.ha1, c.ha1Realm = ha1, sess.realm
	}
	c.log.LogAttrs(ctx, slog.LevelDebug, "digest challenge answered",
		slog.String("username", c.username),
		slog.String("realm", sess.realm),
		slog.String("qop", sess.qop),
		slog.String("nc", ncHex(sess.nc)),
	)
	return true
}

func (c *Credentials) reject(ctx context.Context, reason string, attrs ...slog.Attr) {
	attrs = append([]slog.Attr{slog.String("reason", reason), slog.String("username", c.username)}, attrs...)
	c.log.LogAttrs(ctx, slog.LevelWarn, "digest challenge rejected", attrs...)
}

// ha1For returns the HA1 hash for the realm, computed reports whether it was derived from the secret.
func (c *Credentials) ha1For(realm string) (ha1 string, computed bool, err error) {
	if c.ha1 != "" && (c.ha1Realm == "" || c.ha1Realm == realm) {
		return c.ha1, false, nil
	}
	if c.secret == nil {
		return "", false, errtrace.Wrap(errorutil.Errorf("no secret for realm %q", realm))
	}
	pwd, err := c.secret.secret()
	if err != nil {
		return "", false, errtrace.Wrap(err)
	}
	return hash(c.username + ":" + realm + ":" + pwd), true, nil
}

func response(sess session, body []byte) string {
	ha2 := sess.method + ":" + sess.uri
	if sess.qop == QOPAuthInt {
		ha2 += ":" + hash(string(body))
	}
	ha2 = hash(ha2)
	if sess.qop == "" {
		return hash(sess.ha1 + ":" + sess.nonce + ":" + ha2)
	}
	return hash(strings.Join([]string{sess.ha1, sess.nonce, ncHex(sess.nc), sess.cnonce, sess.qop, ha2}, ":"))
}

func hash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func ncHex(nc uint64) string { return fmt.Sprintf("%08x", nc) }

// Serialize returns the credentials header value:
//
//	Digest algorithm=MD5, username="...", realm="...", nonce="...", uri="...", response="..."[, opaque="..."][, qop=..., cnonce="...", nc=...]
func (c *Credentials) Serialize() (string, error) {
	hdr, err := c.Authorization()
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return hdr.RenderValue(), nil
}

// Authorization returns the credentials as the Authorization header.
func (c *Credentials) Authorization() (*header.Authorization, error) {
	if c.State() != StateReady {
		return nil, errtrace.Wrap(ErrNotAuthenticated)
	}
	return &header.Authorization{AuthCredentials: c.digestCredentials()}, nil
}

// ProxyAuthorization returns the credentials as the Proxy-Authorization header.
func (c *Credentials) ProxyAuthorization() (*header.ProxyAuthorization, error) {
	hdr, err := c.Authorization()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return (*header.ProxyAuthorization)(hdr), nil
}

func (c *Credentials) digestCredentials() *header.DigestCredentials {
	crd := &header.DigestCredentials{
		Algorithm: Algorithm,
		Username:  c.username,
		Realm:     c.sess.realm,
		Nonce:     c.sess.nonce,
		URI:       c.sess.uri,
		Response:  c.sess.response,
		Opaque:    c.sess.opaque,
	}
	if c.sess.qop != "" {
		crd.QOP = c.sess.qop
		crd.CNonce = c.sess.cnonce
		crd.NonceCount = uint32(c.sess.nc) //nolint:gosec
	}
	return crd
}

// State returns the current state.
func (c *Credentials) State() State {
	st, _ := c.fsm.MustState().(State)
	return st
}

// Username returns the username.
func (c *Credentials) Username() string { return c.username }

// Realm returns the realm of the last answered challenge.
func (c *Credentials) Realm() string { return c.sess.realm }

// Nonce returns the server nonce of the last answered challenge.
func (c *Credentials) Nonce() string { return c.sess.nonce }

// Opaque returns the opaque value echoed back to the server.
func (c *Credentials) Opaque() string { return c.sess.opaque }

// CNonce returns the last generated client nonce.
func (c *Credentials) CNonce() string { return c.sess.cnonce }

// NonceCount returns the nonce count of the last computed response.
func (c *Credentials) NonceCount() uint64 { return c.nc }

// NonceCountHex returns the nonce count as 8 zero-padded hex digits.
func (c *Credentials) NonceCountHex() string { return ncHex(c.nc) }

// QOP returns the selected quality of protection, empty when the challenge offered none.
func (c *Credentials) QOP() string { return c.sess.qop }

// Response returns the last computed response.
func (c *Credentials) Response() string { return c.sess.response }

// HA1 returns the hash used for the last computed response.
func (c *Credentials) HA1() string { return c.sess.ha1 }

// Request returns the method and URI of the last authenticated request.
func (c *Credentials) Request() Request { return Request{Method: c.sess.method, URI: c.sess.uri} }

func (c *Credentials) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Credentials{username=%s, state=%s, nc=%s}", c.username, c.State(), c.NonceCountHex())
}
