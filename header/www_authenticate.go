package header

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/ioutil"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
)

// AuthChallenge is a challenge of the WWW-Authenticate or Proxy-Authenticate header,
// either [*DigestChallenge] or [*AnyChallenge].
type AuthChallenge interface {
	types.Renderer
	types.ValidFlag
	types.Equalable
	types.Cloneable[AuthChallenge]
	Scheme() string
}

// WWWAuthenticate represents the WWW-Authenticate header field.
type WWWAuthenticate struct {
	AuthChallenge
}

// CanonicName returns the canonical name of the header.
func (*WWWAuthenticate) CanonicName() Name { return "WWW-Authenticate" }

// CompactName returns the compact name of the header, WWW-Authenticate has no compact form.
func (*WWWAuthenticate) CompactName() Name { return "WWW-Authenticate" }

// RenderTo writes the header with its name to w.
func (hdr *WWWAuthenticate) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *WWWAuthenticate) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *WWWAuthenticate) RenderValue() string {
	if hdr == nil || hdr.AuthChallenge == nil {
		return ""
	}
	return hdr.AuthChallenge.Render(nil)
}

// String returns the header value.
func (hdr *WWWAuthenticate) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *WWWAuthenticate) Format(f fmt.State, verb rune) {
	type hideMethods WWWAuthenticate
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *WWWAuthenticate) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	if hdr.AuthChallenge != nil {
		hdr2.AuthChallenge = hdr.AuthChallenge.Clone()
	}
	return &hdr2
}

// Equal reports whether val is an equal WWW-Authenticate header.
func (hdr *WWWAuthenticate) Equal(val any) bool {
	other, ok := cast[WWWAuthenticate](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return types.IsEqual(hdr.AuthChallenge, other.AuthChallenge)
}

// IsValid reports whether the header is syntactically valid.
func (hdr *WWWAuthenticate) IsValid() bool {
	return hdr != nil && types.IsValid(hdr.AuthChallenge)
}

// Digest returns the challenge as a Digest one.
func (hdr *WWWAuthenticate) Digest() (*DigestChallenge, bool) {
	if hdr == nil {
		return nil, false
	}
	cln, ok := hdr.AuthChallenge.(*DigestChallenge)
	return cln, ok && cln != nil
}

// DigestChallenge is the Digest challenge (RFC 2617, RFC 3261 Section 25.1).
// Realm, Nonce and Opaque hold unquoted values.
type DigestChallenge struct {
	Realm     string
	Nonce     string
	Opaque    string
	Algorithm string
	Domain    []string
	QOP       []string
	Stale     bool
	Params    Values // auth-param extensions
}

// Scheme returns "Digest".
func (*DigestChallenge) Scheme() string { return "Digest" }

// Clone returns a deep copy of the challenge.
func (cln *DigestChallenge) Clone() AuthChallenge {
	if cln == nil {
		return nil
	}
	cln2 := *cln
	cln2.Domain = slices.Clone(cln.Domain)
	cln2.QOP = slices.Clone(cln.QOP)
	cln2.Params = cln.Params.Clone()
	return &cln2
}

// RenderTo writes the challenge as realm, domain, nonce, opaque, stale, algorithm, qop
// followed by extension parameters in alphabetical order.
func (cln *DigestChallenge) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if cln == nil {
		return 0, nil
	}

	kvs := make([][2]string, 0, 7+len(cln.Params))
	add := func(k, v string, quote bool) {
		if v == "" {
			return
		}
		if quote {
			v = grammar.Quote(v)
		}
		kvs = append(kvs, [2]string{k, v})
	}
	add("realm", cln.Realm, true)
	add("domain", strings.Join(cln.Domain, " "), true)
	add("nonce", cln.Nonce, true)
	add("opaque", cln.Opaque, true)
	if cln.Stale {
		add("stale", "true", false)
	}
	add("algorithm", cln.Algorithm, false)
	add("qop", strings.Join(cln.QOP, ","), true)
	for _, k := range cln.Params.Keys() {
		v, _ := cln.Params.Last(k)
		kvs = append(kvs, [2]string{k, v})
	}
	return errtrace.Wrap2(renderChallenge(w, cln.Scheme(), kvs))
}

func renderChallenge(w io.Writer, scheme string, kvs [][2]string) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(scheme)
	for i, kv := range kvs {
		if i == 0 {
			cw.Fprint(" ")
		} else {
			cw.Fprint(", ")
		}
		cw.Fprint(kv[0], "=", kv[1])
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the challenge text.
func (cln *DigestChallenge) Render(opts *RenderOptions) string {
	if cln == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	cln.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the challenge text.
func (cln *DigestChallenge) String() string { return cln.Render(nil) }

// Format implements [fmt.Formatter].
func (cln *DigestChallenge) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, cln.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(cln.String()))
	default:
		type hideMethods DigestChallenge
		type DigestChallenge hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*DigestChallenge)(cln))
	}
}

// Equal compares challenges, realm and algorithm case-insensitively.
func (cln *DigestChallenge) Equal(val any) bool {
	other, ok := cast[DigestChallenge](val)
	if !ok {
		return false
	}
	if cln == nil || other == nil {
		return cln == other
	}
	return util.EqFold(cln.Realm, other.Realm) &&
		cln.Nonce == other.Nonce &&
		cln.Opaque == other.Opaque &&
		util.EqFold(cln.Algorithm, other.Algorithm) &&
		slices.Equal(cln.Domain, other.Domain) &&
		slices.EqualFunc(cln.QOP, other.QOP, util.EqFold[string, string]) &&
		cln.Stale == other.Stale &&
		equalHdrParams(cln.Params, other.Params)
}

// IsValid checks the realm and nonce are present and the tokens are well-formed.
func (cln *DigestChallenge) IsValid() bool {
	return cln != nil &&
		cln.Realm != "" && cln.Nonce != "" &&
		(cln.Algorithm == "" || grammar.IsToken(cln.Algorithm)) &&
		!slices.ContainsFunc(cln.QOP, func(v string) bool { return !grammar.IsToken(v) }) &&
		validHdrParams(cln.Params)
}

// HasQOP reports whether the qop option is offered.
func (cln *DigestChallenge) HasQOP(qop string) bool {
	return cln != nil && slices.ContainsFunc(cln.QOP, func(v string) bool { return util.EqFold(v, qop) })
}

// AnyChallenge is a challenge of a scheme other than Digest.
// Params keep values as written, quoted strings stay quoted.
type AnyChallenge struct {
	AuthScheme string
	Params     Values
}

// Scheme returns the authentication scheme.
func (cln *AnyChallenge) Scheme() string {
	if cln == nil {
		return ""
	}
	return cln.AuthScheme
}

// Clone returns a deep copy of the challenge.
func (cln *AnyChallenge) Clone() AuthChallenge {
	if cln == nil {
		return nil
	}
	cln2 := *cln
	cln2.Params = cln.Params.Clone()
	return &cln2
}

// RenderTo writes the challenge to w.
func (cln *AnyChallenge) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if cln == nil {
		return 0, nil
	}
	kvs := make([][2]string, 0, len(cln.Params))
	for _, k := range cln.Params.Keys() {
		v, _ := cln.Params.Last(k)
		kvs = append(kvs, [2]string{k, v})
	}
	return errtrace.Wrap2(renderChallenge(w, cln.AuthScheme, kvs))
}

// Render returns the challenge text.
func (cln *AnyChallenge) Render(opts *RenderOptions) string {
	if cln == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	cln.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the challenge text.
func (cln *AnyChallenge) String() string { return cln.Render(nil) }

// Equal reports whether val is an equal challenge.
func (cln *AnyChallenge) Equal(val any) bool {
	other, ok := cast[AnyChallenge](val)
	if !ok {
		return false
	}
	if cln == nil || other == nil {
		return cln == other
	}
	return util.EqFold(cln.AuthScheme, other.AuthScheme) && equalHdrParams(cln.Params, other.Params)
}

// IsValid reports whether the challenge is syntactically valid.
func (cln *AnyChallenge) IsValid() bool {
	return cln != nil && grammar.IsToken(cln.AuthScheme) && len(cln.Params) > 0 && validHdrParams(cln.Params)
}
