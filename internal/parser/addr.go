package parser

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/util"
	"github.com/ghettovoice/sipparse/uri"
)

func addrRules() []*peg.Rule {
	return []*peg.Rule{
		// name-addr = [ display-name ] LAQUOT addr-spec RAQUOT
		rule("name-addr", action(
			seq(opt(txt(ref("display-name"))), ref("LAQUOT"), ref("addr-uri"), ref("RAQUOT")),
			buildNameAddr,
		)),
		rule("addr-uri", choice(ref("SIP-URI"), ref("other-uri"))),
		rule("addr-spec", action(choice(ref("SIP-URI-noparams"), ref("other-uri-noparams")), buildAddrSpec)),
		rule("addr-with-params", action(seq(choice(ref("name-addr"), ref("addr-spec")), ref("hparams")), withParams)),
		rule("rec-route", action(seq(ref("name-addr"), ref("hparams")), withParams)),

		rule("NameAddrHeader", action(ref("addr-with-params"), nameAddrAs(func(a header.NameAddr) *header.NameAddr { return &a }))),
		rule("From", action(ref("addr-with-params"), nameAddrAs(func(a header.NameAddr) *header.From {
			h := header.From(a)
			return &h
		}))),
		rule("To", action(ref("addr-with-params"), nameAddrAs(func(a header.NameAddr) *header.To {
			h := header.To(a)
			return &h
		}))),
		rule("ReferTo", action(ref("addr-with-params"), nameAddrAs(func(a header.NameAddr) *header.ReferTo {
			h := header.ReferTo(a)
			return &h
		}))),
		rule("ReferredBy", action(ref("addr-with-params"), nameAddrAs(func(a header.NameAddr) *header.ReferredBy {
			h := header.ReferredBy(a)
			return &h
		}))),

		// Contact = STAR / contact-param *(COMMA contact-param)
		rule("Contact", choice(
			action(ref("STAR"), func(*peg.Context, peg.Match) (any, error) {
				return header.Multi[header.NameAddr]{Wildcard: true}, nil
			}),
			ref("contact-list"),
		)),
		rule("contact-list", action(seq(ref("contact-param"), star(seq(ref("COMMA"), ref("contact-param")))), buildMulti)),
		rule("contact-param", action(peg.Recover(action(ref("addr-with-params"), checkContact)), multiEntryAt)),
		rule("RecordRoute", ref("route-list")),
		rule("Route", ref("route-list")),
		rule("route-list", action(seq(ref("route-param"), star(seq(ref("COMMA"), ref("route-param")))), buildMulti)),
		rule("route-param", action(peg.Recover(action(ref("rec-route"), nameAddrAs(func(a header.NameAddr) *header.NameAddr {
			return &a
		}))), multiEntryAt)),

		rule("Replaces", action(seq(txt(ref("callid")), ref("hparams")), buildReplaces)),
	}
}

func buildNameAddr(_ *peg.Context, m peg.Match) (any, error) {
	u, ok := at(m.Value, 2).(uri.URI)
	if !ok {
		return nil, nil
	}
	return header.NameAddr{DisplayName: displayName(str(at(m.Value, 0))), URI: u}, nil
}

func displayName(s string) string {
	s = util.TrimSP(s)
	if strings.HasPrefix(s, `"`) {
		return grammar.Unquote(s)
	}
	return s
}

func buildAddrSpec(_ *peg.Context, m peg.Match) (any, error) {
	u, ok := m.Value.(uri.URI)
	if !ok {
		return nil, nil
	}
	return header.NameAddr{URI: u}, nil
}

func withParams(_ *peg.Context, m peg.Match) (any, error) {
	addr, ok := at(m.Value, 0).(header.NameAddr)
	if !ok {
		return nil, nil
	}
	addr.Params = values(at(m.Value, 1))
	return addr, nil
}

func nameAddrAs[T any](conv func(header.NameAddr) T) peg.ActionFunc {
	return func(_ *peg.Context, m peg.Match) (any, error) {
		addr, ok := m.Value.(header.NameAddr)
		if !ok {
			return nil, nil
		}
		return conv(addr), nil
	}
}

// checkContact validates the q and expires parameters (RFC 3261 Section 20.10).
func checkContact(_ *peg.Context, m peg.Match) (any, error) {
	addr, ok := m.Value.(header.NameAddr)
	if !ok {
		return nil, nil
	}
	if q, ok := addr.Params.Last("q"); ok && !isQValue(q) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "q %s", q))
	}
	if exp, ok := addr.Params.Last("expires"); ok {
		if _, err := strconv.ParseUint(exp, 10, 32); err != nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "expires %s", exp))
		}
	}
	return &addr, nil
}

// isQValue reports whether s is a qvalue: ( "0" [ "." 0*3DIGIT ] ) / ( "1" [ "." 0*3("0") ] ).
func isQValue(s string) bool {
	ip, frac, _ := strings.Cut(s, ".")
	if len(frac) > 3 {
		return false
	}
	switch ip {
	case "0":
		return strings.Trim(frac, "0123456789") == ""
	case "1":
		return strings.Trim(frac, "0") == ""
	}
	return false
}

type multiEntry struct {
	addr *header.NameAddr
	off  int
}

func multiEntryAt(_ *peg.Context, m peg.Match) (any, error) {
	addr, _ := m.Value.(*header.NameAddr)
	return multiEntry{addr: addr, off: m.Start}, nil
}

// buildMulti collects entries of a comma-separated list, invalid entries stay nil.
func buildMulti(_ *peg.Context, m peg.Match) (any, error) {
	var res header.Multi[header.NameAddr]
	add := func(v any) {
		e, _ := v.(multiEntry)
		res.Entries = append(res.Entries, e.addr)
		res.Offsets = append(res.Offsets, e.off)
	}
	add(at(m.Value, 0))
	for _, it := range list(at(m.Value, 1)) {
		add(at(it, 1))
	}
	return res, nil
}

func buildReplaces(_ *peg.Context, m peg.Match) (any, error) {
	hdr := &header.Replaces{CallID: str(at(m.Value, 0)), Params: values(at(m.Value, 1))}
	if _, ok := hdr.ToTag(); !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "missing to-tag"))
	}
	if _, ok := hdr.FromTag(); !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "missing from-tag"))
	}
	return hdr, nil
}
