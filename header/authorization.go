package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
)

// AuthCredentials are the credentials of the Authorization or Proxy-Authorization header,
// either [*DigestCredentials] or [*AnyCredentials].
type AuthCredentials interface {
	types.Renderer
	types.ValidFlag
	types.Equalable
	types.Cloneable[AuthCredentials]
	Scheme() string
}

// Authorization represents the Authorization header field.
type Authorization struct {
	AuthCredentials
}

// CanonicName returns the canonical name of the header.
func (*Authorization) CanonicName() Name { return "Authorization" }

// CompactName returns the compact name of the header, Authorization has no compact form.
func (*Authorization) CompactName() Name { return "Authorization" }

// RenderTo writes the header with its name to w.
func (hdr *Authorization) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *Authorization) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *Authorization) RenderValue() string {
	if hdr == nil || hdr.AuthCredentials == nil {
		return ""
	}
	return hdr.AuthCredentials.Render(nil)
}

// String returns the header value.
func (hdr *Authorization) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *Authorization) Format(f fmt.State, verb rune) {
	type hideMethods Authorization
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *Authorization) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	if hdr.AuthCredentials != nil {
		hdr2.AuthCredentials = hdr.AuthCredentials.Clone()
	}
	return &hdr2
}

// Equal reports whether val is an equal Authorization header.
func (hdr *Authorization) Equal(val any) bool {
	other, ok := cast[Authorization](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return types.IsEqual(hdr.AuthCredentials, other.AuthCredentials)
}

// IsValid reports whether the credentials are present and valid.
func (hdr *Authorization) IsValid() bool {
	return hdr != nil && types.IsValid(hdr.AuthCredentials)
}

// Digest returns the credentials as Digest ones.
func (hdr *Authorization) Digest() (*DigestCredentials, bool) {
	if hdr == nil {
		return nil, false
	}
	crd, ok := hdr.AuthCredentials.(*DigestCredentials)
	return crd, ok && crd != nil
}

// ProxyAuthorization represents the Proxy-Authorization header field.
type ProxyAuthorization Authorization

// CanonicName returns the canonical name of the header.
func (*ProxyAuthorization) CanonicName() Name { return "Proxy-Authorization" }

// CompactName returns the compact name of the header, Proxy-Authorization has no compact form.
func (*ProxyAuthorization) CompactName() Name { return "Proxy-Authorization" }

// RenderTo writes the header with its name to w.
func (hdr *ProxyAuthorization) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *ProxyAuthorization) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *ProxyAuthorization) RenderValue() string { return (*Authorization)(hdr).RenderValue() }

// String returns the header value.
func (hdr *ProxyAuthorization) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *ProxyAuthorization) Format(f fmt.State, verb rune) {
	type hideMethods ProxyAuthorization
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *ProxyAuthorization) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := ProxyAuthorization(*(*Authorization)(hdr).Clone().(*Authorization))
	return &hdr2
}

// Equal reports whether val is an equal Proxy-Authorization header.
func (hdr *ProxyAuthorization) Equal(val any) bool {
	other, ok := cast[ProxyAuthorization](val)
	if !ok {
		return false
	}
	return (*Authorization)(hdr).Equal((*Authorization)(other))
}

// IsValid reports whether the credentials are present and valid.
func (hdr *ProxyAuthorization) IsValid() bool { return (*Authorization)(hdr).IsValid() }

// Digest returns the credentials as Digest ones.
func (hdr *ProxyAuthorization) Digest() (*DigestCredentials, bool) {
	return (*Authorization)(hdr).Digest()
}

// DigestCredentials is the Digest response (RFC 2617, RFC 3261 Section 25.1).
// String fields hold unquoted values, URI is the digest-uri as sent in the request.
type DigestCredentials struct {
	Username   string
	Realm      string
	Nonce      string
	URI        string
	Response   string
	Algorithm  string
	Opaque     string
	QOP        string
	CNonce     string
	NonceCount uint32
	Params     Values // auth-param extensions
}

// Scheme returns "Digest".
func (*DigestCredentials) Scheme() string { return "Digest" }

// Clone returns a deep copy of the credentials.
func (crd *DigestCredentials) Clone() AuthCredentials {
	if crd == nil {
		return nil
	}
	crd2 := *crd
	crd2.Params = crd.Params.Clone()
	return &crd2
}

// RenderTo writes the credentials as algorithm, username, realm, nonce, uri, response, opaque.
// The qop, cnonce and nc parameters follow when a qop is selected,
// extension parameters close the list in alphabetical order.
func (crd *DigestCredentials) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if crd == nil {
		return 0, nil
	}

	kvs := make([][2]string, 0, 10+len(crd.Params))
	add := func(k, v string, quote bool) {
		if v == "" {
			return
		}
		if quote {
			v = grammar.Quote(v)
		}
		kvs = append(kvs, [2]string{k, v})
	}
	add("algorithm", crd.Algorithm, false)
	add("username", crd.Username, true)
	add("realm", crd.Realm, true)
	add("nonce", crd.Nonce, true)
	add("uri", crd.URI, true)
	add("response", crd.Response, true)
	add("opaque", crd.Opaque, true)
	if crd.QOP != "" {
		add("qop", crd.QOP, false)
		add("cnonce", crd.CNonce, true)
		add("nc", fmt.Sprintf("%08x", crd.NonceCount), false)
	}
	for _, k := range crd.Params.Keys() {
		v, _ := crd.Params.Last(k)
		kvs = append(kvs, [2]string{k, v})
	}
	return errtrace.Wrap2(renderChallenge(w, crd.Scheme(), kvs))
}

// Render returns the credentials text.
func (crd *DigestCredentials) Render(opts *RenderOptions) string {
	if crd == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	crd.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the credentials text.
func (crd *DigestCredentials) String() string { return crd.Render(nil) }

// Format implements [fmt.Formatter].
func (crd *DigestCredentials) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, crd.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(crd.String()))
	default:
		type hideMethods DigestCredentials
		type DigestCredentials hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*DigestCredentials)(crd))
	}
}

// Equal compares credentials, realm, algorithm and qop case-insensitively.
func (crd *DigestCredentials) Equal(val any) bool {
	other, ok := cast[DigestCredentials](val)
	if !ok {
		return false
	}
	if crd == nil || other == nil {
		return crd == other
	}
	return crd.Username == other.Username &&
		util.EqFold(crd.Realm, other.Realm) &&
		crd.Nonce == other.Nonce &&
		crd.URI == other.URI &&
		util.EqFold(crd.Response, other.Response) &&
		util.EqFold(crd.Algorithm, other.Algorithm) &&
		crd.Opaque == other.Opaque &&
		util.EqFold(crd.QOP, other.QOP) &&
		crd.CNonce == other.CNonce &&
		crd.NonceCount == other.NonceCount &&
		equalHdrParams(crd.Params, other.Params)
}

// IsValid checks the mandatory parameters are present, the response is an MD5 hex digest
// and cnonce and nc accompany a qop.
func (crd *DigestCredentials) IsValid() bool {
	return crd != nil &&
		crd.Username != "" && crd.Realm != "" && crd.Nonce != "" && crd.URI != "" &&
		len(crd.Response) == 32 &&
		(crd.Algorithm == "" || grammar.IsToken(crd.Algorithm)) &&
		(crd.QOP == "" || (grammar.IsToken(crd.QOP) && crd.CNonce != "" && crd.NonceCount > 0)) &&
		validHdrParams(crd.Params)
}

// AnyCredentials are credentials of a scheme other than Digest.
// Params keep values as written, quoted strings stay quoted.
type AnyCredentials struct {
	AuthScheme string
	Params     Values
}

// Scheme returns the authentication scheme.
func (crd *AnyCredentials) Scheme() string {
	if crd == nil {
		return ""
	}
	return crd.AuthScheme
}

// Clone returns a deep copy of the credentials.
func (crd *AnyCredentials) Clone() AuthCredentials {
	if crd == nil {
		return nil
	}
	crd2 := *crd
	crd2.Params = crd.Params.Clone()
	return &crd2
}

// RenderTo writes the scheme followed by the parameters.
func (crd *AnyCredentials) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if crd == nil {
		return 0, nil
	}
	kvs := make([][2]string, 0, len(crd.Params))
	for _, k := range crd.Params.Keys() {
		v, _ := crd.Params.Last(k)
		kvs = append(kvs, [2]string{k, v})
	}
	return errtrace.Wrap2(renderChallenge(w, crd.AuthScheme, kvs))
}

// Render returns the credentials text.
func (crd *AnyCredentials) Render(opts *RenderOptions) string {
	if crd == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	crd.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the credentials text.
func (crd *AnyCredentials) String() string { return crd.Render(nil) }

// Equal compares the scheme case-insensitively and the parameters.
func (crd *AnyCredentials) Equal(val any) bool {
	other, ok := cast[AnyCredentials](val)
	if !ok {
		return false
	}
	if crd == nil || other == nil {
		return crd == other
	}
	return util.EqFold(crd.AuthScheme, other.AuthScheme) && equalHdrParams(crd.Params, other.Params)
}

// IsValid reports whether the scheme is a token and the parameters are well-formed.
func (crd *AnyCredentials) IsValid() bool {
	return crd != nil && grammar.IsToken(crd.AuthScheme) && len(crd.Params) > 0 && validHdrParams(crd.Params)
}
