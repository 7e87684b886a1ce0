package parser

import (
	"net/netip"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/types"
)

func viaRules() []*peg.Rule {
	return []*peg.Rule{
		// Via = via-parm *(COMMA via-parm)
		rule("Via", action(seq(ref("via-parm"), star(seq(ref("COMMA"), ref("via-parm")))), buildVia)),
		// via-parm = sent-protocol LWS sent-by *( SEMI via-params )
		rule("via-parm", action(seq(ref("sent-protocol"), ref("LWS"), ref("sent-by"), ref("via-params")), buildViaHop)),
		rule("sent-protocol", seq(txt(ref("token")), ref("SLASH"), txt(ref("token")), ref("SLASH"), txt(ref("token")))),
		rule("sent-by", action(seq(txt(ref("host")), opt(seq(ref("COLON"), txt(ref("port"))))), buildAddr)),
		rule("via-params", action(star(seq(ref("SEMI"), choice(ref("via-received"), ref("hparam")))), buildParams)),
		// received may carry a bare IPv6 address (RFC 5118 Section 4.5).
		rule("via-received", action(
			seq(txt(litI("received")), ref("EQUAL"), txt(plus(class("[0-9a-fA-F:.]"))), not(ref("token-char"))),
			func(_ *peg.Context, m peg.Match) (any, error) {
				return param{name: str(at(m.Value, 0)), value: str(at(m.Value, 2))}, nil
			},
		)),
	}
}

func buildVia(_ *peg.Context, m peg.Match) (any, error) {
	hop, ok := at(m.Value, 0).(header.ViaHop)
	if !ok {
		return nil, nil
	}
	hdr := header.Via{hop}
	for _, it := range list(at(m.Value, 1)) {
		hop, ok := at(it, 1).(header.ViaHop)
		if !ok {
			return nil, nil
		}
		hdr = append(hdr, hop)
	}
	return hdr, nil
}

func buildViaHop(_ *peg.Context, m peg.Match) (any, error) {
	addr, ok := at(m.Value, 2).(types.Addr)
	if !ok {
		return nil, nil
	}
	proto := at(m.Value, 0)
	hop := header.ViaHop{
		Proto:     header.ProtoInfo{Name: str(at(proto, 0)), Version: str(at(proto, 2))},
		Transport: header.TransportProto(str(at(proto, 4))),
		Addr:      addr,
		Params:    values(at(m.Value, 3)),
	}
	if err := checkViaParams(hop.Params); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hop, nil
}

// checkViaParams validates the via-ttl, via-maddr, via-received, via-branch and rport values.
func checkViaParams(params types.Values) error {
	invalid := func(name, val string) error {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "%s %s", name, val))
	}
	if v, ok := params.Last("ttl"); ok {
		if _, err := strconv.ParseUint(v, 10, 8); err != nil {
			return invalid("ttl", v)
		}
	}
	if v, ok := params.Last("maddr"); ok && !grammar.IsHost(v) {
		return invalid("maddr", v)
	}
	if v, ok := params.Last("received"); ok {
		if _, err := netip.ParseAddr(v); err != nil {
			return invalid("received", v)
		}
	}
	if v, ok := params.Last("branch"); ok && !grammar.IsToken(v) {
		return invalid("branch", v)
	}
	if v, ok := params.Last("rport"); ok && v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return invalid("rport", v)
		}
	}
	return nil
}
