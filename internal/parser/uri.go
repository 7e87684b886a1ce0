package parser

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
	"github.com/ghettovoice/sipparse/uri"
)

const (
	uricChars         = "a-zA-Z0-9\\-_.!~*'();/?:@&=+$,#[\\]"
	uricNoParamsChars = "a-zA-Z0-9\\-_.!~*'()/:@&=+$#[\\]"
)

func uriRules() []*peg.Rule {
	return []*peg.Rule{
		// SIP-URI = "sip:" [ userinfo ] hostport uri-parameters [ headers ]
		rule("SIP-URI", action(
			seq(ref("sip-scheme"), lit(":"), opt(ref("userinfo")), ref("uri-hostport"), ref("uri-params"), opt(ref("uri-headers"))),
			buildSIPURI,
		)),
		// Bare addr-spec of a header: parameters after it belong to the header (RFC 3261 Section 20).
		rule("SIP-URI-noparams", action(
			seq(ref("sip-scheme"), lit(":"), opt(ref("userinfo")), ref("uri-hostport")),
			buildSIPURI,
		)),
		rule("sip-scheme", txt(choice(litI("sips"), litI("sip")))),
		rule("userinfo", seq(txt(ref("user")), opt(seq(lit(":"), txt(ref("password")))), lit("@"))),
		rule("uri-hostport", action(seq(txt(ref("host")), opt(seq(lit(":"), txt(ref("port"))))), buildAddr)),
		rule("uri-params", action(star(seq(lit(";"), ref("uri-param"))), buildURIParams)),
		rule("uri-param", seq(txt(ref("pname")), opt(seq(lit("="), txt(ref("pvalue")))))),
		rule("uri-headers", action(seq(lit("?"), ref("uri-header"), star(seq(lit("&"), ref("uri-header")))), buildURIHeaders)),
		rule("uri-header", seq(txt(ref("hname")), lit("="), txt(ref("hvalue")))),

		// stunURI = scheme ":" host [ ":" port ] (RFC 7064)
		rule("stun-URI", action(
			seq(txt(choice(litI("stuns"), litI("stun"))), lit(":"), ref("uri-hostport")),
			buildStunURI,
		)),
		// turnURI = scheme ":" host [ ":" port ] [ "?transport=" transport ] (RFC 7065)
		rule("turn-URI", action(
			seq(
				txt(choice(litI("turns"), litI("turn"))), lit(":"), ref("uri-hostport"),
				opt(seq(litI("?transport="), txt(plus(ref("unreserved"))))),
			),
			buildStunURI,
		)),

		rule("uri-scheme", seq(ref("ALPHA"), star(class("[a-zA-Z0-9+.\\-]")))),
		rule("uric", choice(class("["+uricChars+"]"), ref("escaped"))),
		rule("uric-noparams", choice(class("["+uricNoParamsChars+"]"), ref("escaped"))),
		rule("absoluteURI", action(txt(seq(ref("uri-scheme"), lit(":"), plus(ref("uric")))), buildAnyURI)),
		// Any other scheme inside a header, a malformed SIP URI must not fall back to it.
		rule("other-uri", action(
			txt(seq(not(seq(ref("sip-scheme"), lit(":"))), ref("uri-scheme"), lit(":"), plus(ref("uric")))),
			buildAnyURI,
		)),
		rule("other-uri-noparams", action(
			txt(seq(not(seq(ref("sip-scheme"), lit(":"))), ref("uri-scheme"), lit(":"), plus(ref("uric-noparams")))),
			buildAnyURI,
		)),
	}
}

func buildAddr(_ *peg.Context, m peg.Match) (any, error) {
	host := str(at(m.Value, 0))
	if strings.HasPrefix(host, "[") && !grammar.IsIPv6(host[1:len(host)-1]) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "IPv6 reference %s", host))
	}
	pp := at(m.Value, 1)
	if pp == nil {
		return types.Host(host), nil
	}
	ps := str(at(pp, len(list(pp))-1))
	port, err := strconv.ParseUint(ps, 10, 16)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrOutOfRange, "port %s", ps))
	}
	return types.HostPort(host, uint16(port)), nil
}

func buildSIPURI(c *peg.Context, m peg.Match) (any, error) {
	addr, ok := at(m.Value, 3).(types.Addr)
	if !ok {
		// the host action has already reported the failure
		return nil, nil
	}

	u := &uri.SIP{
		Addr:    addr,
		Secured: util.LCase(str(at(m.Value, 0))) == "sips",
		Params:  values(at(m.Value, 4)),
		Headers: values(at(m.Value, 5)),
	}
	if ui := at(m.Value, 2); ui != nil {
		user := grammar.Unescape(str(at(ui, 0)))
		if pw := at(ui, 1); pw != nil {
			u.User = uri.UserPassword(user, grammar.Unescape(str(at(pw, 1))))
		} else {
			u.User = uri.User(user)
		}
	}
	recordURI(c, util.LCase(str(at(m.Value, 0))), u.User.Username(), addr)
	return u, nil
}

func buildURIParams(_ *peg.Context, m peg.Match) (any, error) {
	var params types.Values
	for _, it := range list(m.Value) {
		p := at(it, 1)
		if params == nil {
			params = make(types.Values)
		}
		params.Append(grammar.Unescape(str(at(p, 0))), grammar.Unescape(str(at(at(p, 1), 1))))
	}
	return params, nil
}

func buildURIHeaders(_ *peg.Context, m peg.Match) (any, error) {
	hdrs := make(types.Values)
	add := func(h any) {
		hdrs.Append(grammar.Unescape(str(at(h, 0))), grammar.Unescape(str(at(h, 2))))
	}
	add(at(m.Value, 1))
	for _, it := range list(at(m.Value, 2)) {
		add(at(it, 1))
	}
	return hdrs, nil
}

func buildStunURI(c *peg.Context, m peg.Match) (any, error) {
	addr, ok := at(m.Value, 2).(types.Addr)
	if !ok {
		return nil, nil
	}
	scheme := util.LCase(str(at(m.Value, 0)))
	u := &uri.Stun{
		Addr:    addr,
		Relay:   strings.HasPrefix(scheme, "turn"),
		Secured: strings.HasSuffix(scheme, "s"),
	}
	if tr := at(m.Value, 3); tr != nil {
		u.Transport = uri.TransportProto(str(at(tr, 1)))
	}
	recordURI(c, scheme, "", addr)
	return u, nil
}

func buildAnyURI(c *peg.Context, m peg.Match) (any, error) {
	u, err := uri.NewAny(m.Text)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	recordURI(c, u.Scheme(), u.User.Username(), types.Host(u.Hostname()))
	return u, nil
}
