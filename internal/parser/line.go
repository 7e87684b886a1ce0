package parser

import (
	"strconv"
	"strings"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/uri"
)

func lineRules() []*peg.Rule {
	return []*peg.Rule{
		// SIP-Version = "SIP" "/" 1*DIGIT "." 1*DIGIT
		rule("SIP-Version", action(
			txt(seq(litI("SIP"), lit("/"), plus(ref("DIGIT")), lit("."), plus(ref("DIGIT")))),
			func(_ *peg.Context, m peg.Match) (any, error) {
				name, ver, _ := strings.Cut(m.Text, "/")
				return types.ProtoInfo{Name: strings.ToUpper(name), Version: ver}, nil
			},
		)),
		rule("Request-URI", choice(ref("SIP-URI"), ref("other-uri"))),
		rule("SP", lit(" ")),
		// Request-Line = Method SP Request-URI SP SIP-Version
		rule("RequestLine", action(
			seq(txt(ref("token")), ref("SP"), ref("Request-URI"), ref("SP"), ref("SIP-Version")),
			buildRequestLine,
		)),
		// Status-Line = SIP-Version SP Status-Code SP Reason-Phrase
		rule("StatusLine", action(
			seq(
				ref("SIP-Version"), ref("SP"),
				txt(seq(ref("DIGIT"), ref("DIGIT"), ref("DIGIT"))), ref("SP"),
				txt(star(class(`[^\r\n]`))),
			),
			buildStatusLine,
		)),
		rule("StartLine", choice(ref("StatusLine"), ref("RequestLine"))),
	}
}

func buildRequestLine(_ *peg.Context, m peg.Match) (any, error) {
	u, ok := at(m.Value, 2).(uri.URI)
	if !ok {
		return nil, nil
	}
	proto, _ := at(m.Value, 4).(types.ProtoInfo)
	return &header.RequestLine{
		Method: header.RequestMethod(str(at(m.Value, 0))),
		URI:    u,
		Proto:  proto,
	}, nil
}

func buildStatusLine(_ *peg.Context, m peg.Match) (any, error) {
	code, _ := strconv.ParseUint(str(at(m.Value, 2)), 10, 16)
	proto, _ := at(m.Value, 0).(types.ProtoInfo)
	return &header.StatusLine{
		Proto:  proto,
		Code:   uint16(code),
		Reason: str(at(m.Value, 4)),
	}, nil
}
