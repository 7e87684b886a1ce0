package parser

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
)

func authRules() []*peg.Rule {
	return []*peg.Rule{
		// challenge = ("Digest" LWS digest-cln *(COMMA digest-cln)) / other-challenge
		rule("challenge", choice(
			action(seq(litI("Digest"), ref("LWS"), ref("auth-params")), buildDigestChallenge),
			action(seq(txt(ref("token")), ref("LWS"), ref("auth-params")), buildAnyChallenge),
		)),
		rule("auth-params", action(
			seq(ref("auth-param"), star(seq(ref("COMMA"), ref("auth-param")))),
			func(_ *peg.Context, m peg.Match) (any, error) {
				ps := []param{at(m.Value, 0).(param)}
				for _, it := range list(at(m.Value, 1)) {
					ps = append(ps, at(it, 1).(param))
				}
				return ps, nil
			},
		)),
		// auth-param = auth-param-name EQUAL ( token / quoted-string )
		rule("auth-param", action(
			seq(txt(ref("token")), seq(ref("EQUAL"), txt(choice(ref("token"), ref("quoted-string"))))),
			buildParam,
		)),
		// credentials = ("Digest" LWS dig-resp *(COMMA dig-resp)) / other-response
		rule("credentials", choice(
			action(seq(litI("Digest"), ref("LWS"), ref("auth-params")), buildDigestCredentials),
			action(seq(txt(ref("token")), ref("LWS"), ref("auth-params")), buildAnyCredentials),
		)),
		rule("Authorization", action(ref("credentials"), func(_ *peg.Context, m peg.Match) (any, error) {
			crd, ok := m.Value.(header.AuthCredentials)
			if !ok {
				return nil, nil
			}
			return &header.Authorization{AuthCredentials: crd}, nil
		})),
		rule("ProxyAuthorization", action(ref("credentials"), func(_ *peg.Context, m peg.Match) (any, error) {
			crd, ok := m.Value.(header.AuthCredentials)
			if !ok {
				return nil, nil
			}
			return &header.ProxyAuthorization{AuthCredentials: crd}, nil
		})),
		rule("WWWAuthenticate", action(ref("challenge"), func(_ *peg.Context, m peg.Match) (any, error) {
			cln, ok := m.Value.(header.AuthChallenge)
			if !ok {
				return nil, nil
			}
			return &header.WWWAuthenticate{AuthChallenge: cln}, nil
		})),
		rule("ProxyAuthenticate", action(ref("challenge"), func(_ *peg.Context, m peg.Match) (any, error) {
			cln, ok := m.Value.(header.AuthChallenge)
			if !ok {
				return nil, nil
			}
			return &header.ProxyAuthenticate{AuthChallenge: cln}, nil
		})),
	}
}

func authParams(v any) []param {
	ps, _ := v.([]param)
	return ps
}

func quotedValue(p param) (string, error) {
	if !grammar.IsQuoted(p.value) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue,
			"%s must be a quoted string, got %s", p.name, util.Ellipsis(p.value, 16)))
	}
	return grammar.Unquote(p.value), nil
}

func buildDigestChallenge(_ *peg.Context, m peg.Match) (any, error) {
	var (
		cln = new(header.DigestChallenge)
		err error
	)
	for _, p := range authParams(at(m.Value, 2)) {
		switch util.LCase(p.name) {
		case "realm":
			cln.Realm, err = quotedValue(p)
		case "nonce":
			cln.Nonce, err = quotedValue(p)
		case "opaque":
			cln.Opaque, err = quotedValue(p)
		case "domain":
			var s string
			if s, err = quotedValue(p); err == nil {
				cln.Domain = strings.Fields(s)
			}
		case "qop":
			var s string
			if s, err = quotedValue(p); err == nil {
				cln.QOP = cln.QOP[:0]
				for q := range strings.SplitSeq(s, ",") {
					if q = strings.TrimSpace(q); q != "" {
						cln.QOP = append(cln.QOP, q)
					}
				}
			}
		case "stale":
			switch {
			case util.EqFold(p.value, "true"):
				cln.Stale = true
			case util.EqFold(p.value, "false"):
				cln.Stale = false
			default:
				err = errorutil.NewWrapperError(ErrInvalidValue, "stale %s", util.Ellipsis(p.value, 16))
			}
		case "algorithm":
			cln.Algorithm = grammar.Unquote(p.value)
		default:
			if cln.Params == nil {
				cln.Params = make(types.Values)
			}
			cln.Params.Append(p.name, p.value)
		}
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return cln, nil
}

func buildAnyChallenge(_ *peg.Context, m peg.Match) (any, error) {
	cln := &header.AnyChallenge{AuthScheme: str(at(m.Value, 0)), Params: make(types.Values)}
	for _, p := range authParams(at(m.Value, 2)) {
		cln.Params.Append(p.name, p.value)
	}
	return cln, nil
}

func buildDigestCredentials(_ *peg.Context, m peg.Match) (any, error) {
	var (
		crd = new(header.DigestCredentials)
		err error
	)
	for _, p := range authParams(at(m.Value, 2)) {
		switch util.LCase(p.name) {
		case "username":
			crd.Username, err = quotedValue(p)
		case "realm":
			crd.Realm, err = quotedValue(p)
		case "nonce":
			crd.Nonce, err = quotedValue(p)
		case "uri":
			crd.URI, err = quotedValue(p)
		case "response":
			crd.Response, err = quotedValue(p)
		case "cnonce":
			crd.CNonce, err = quotedValue(p)
		case "opaque":
			crd.Opaque, err = quotedValue(p)
		case "algorithm":
			crd.Algorithm = grammar.Unquote(p.value)
		case "qop":
			crd.QOP = grammar.Unquote(p.value)
		case "nc":
			// nonce-count = 8LHEX
			var nc uint64
			if len(p.value) != 8 {
				err = errorutil.NewWrapperError(ErrInvalidValue, "nc %s", util.Ellipsis(p.value, 16))
			} else if nc, err = strconv.ParseUint(p.value, 16, 32); err != nil {
				err = errorutil.NewWrapperError(ErrInvalidValue, "nc %s", util.Ellipsis(p.value, 16))
			} else {
				crd.NonceCount = uint32(nc)
			}
		default:
			if crd.Params == nil {
				crd.Params = make(types.Values)
			}
			crd.Params.Append(p.name, p.value)
		}
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return crd, nil
}

func buildAnyCredentials(_ *peg.Context, m peg.Match) (any, error) {
	crd := &header.AnyCredentials{AuthScheme: str(at(m.Value, 0)), Params: make(types.Values)}
	for _, p := range authParams(at(m.Value, 2)) {
		crd.Params.Append(p.name, p.value)
	}
	return crd, nil
}
