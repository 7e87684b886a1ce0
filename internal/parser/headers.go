package parser

import (
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/util"
)

func headerRules() []*peg.Rule {
	return []*peg.Rule{
		// CSeq = 1*DIGIT LWS Method
		rule("CSeq", action(seq(txt(ref("delta-seconds")), ref("LWS"), txt(ref("token"))), buildCSeq)),
		rule("CallID", action(txt(ref("callid")), func(_ *peg.Context, m peg.Match) (any, error) {
			return header.CallID(m.Text), nil
		})),
		rule("ContentLength", action(txt(ref("delta-seconds")), func(_ *peg.Context, m peg.Match) (any, error) {
			n, err := parseUint(m.Text, "Content-Length", 32)
			return header.ContentLength(n), errtrace.Wrap(err)
		})),
		rule("MaxForwards", action(txt(ref("delta-seconds")), func(_ *peg.Context, m peg.Match) (any, error) {
			n, err := parseUint(m.Text, "Max-Forwards", 8)
			return header.MaxForwards(n), errtrace.Wrap(err)
		})),
		rule("Expires", action(txt(ref("delta-seconds")), func(_ *peg.Context, m peg.Match) (any, error) {
			d, err := parseDelta(m.Text, "Expires")
			return &header.Expires{Duration: d}, errtrace.Wrap(err)
		})),
		rule("MinExpires", action(txt(ref("delta-seconds")), func(_ *peg.Context, m peg.Match) (any, error) {
			d, err := parseDelta(m.Text, "Min-Expires")
			return &header.MinExpires{Duration: d}, errtrace.Wrap(err)
		})),
		// Session-Expires = delta-seconds *(SEMI se-params) (RFC 4028)
		rule("SessionExpires", action(seq(txt(ref("delta-seconds")), ref("hparams")), buildSessionExpires)),

		rule("ContentDisposition", action(seq(txt(ref("token")), ref("hparams")), func(_ *peg.Context, m peg.Match) (any, error) {
			return &header.ContentDisposition{Type: str(at(m.Value, 0)), Params: values(at(m.Value, 1))}, nil
		})),
		// media-type = m-type SLASH m-subtype *(SEMI m-parameter)
		rule("ContentType", action(
			seq(txt(ref("token")), ref("SLASH"), txt(ref("token")), ref("m-params")),
			func(_ *peg.Context, m peg.Match) (any, error) {
				return &header.ContentType{
					Type:    str(at(m.Value, 0)),
					Subtype: str(at(m.Value, 2)),
					Params:  values(at(m.Value, 3)),
				}, nil
			},
		)),
		rule("m-params", action(star(seq(ref("SEMI"), ref("m-param"))), buildParams)),
		rule("m-param", action(seq(txt(ref("token")), seq(ref("EQUAL"), txt(choice(ref("token"), ref("quoted-string"))))), buildParam)),

		// Event = event-type *( SEMI event-param ) (RFC 6665)
		rule("Event", action(seq(ref("event-type"), ref("hparams")), func(_ *peg.Context, m peg.Match) (any, error) {
			return &header.Event{Type: str(at(m.Value, 0)), Params: values(at(m.Value, 1))}, nil
		})),
		rule("event-type", txt(seq(ref("token-nodot"), star(seq(lit("."), ref("token-nodot")))))),
		rule("SubscriptionState", action(seq(txt(ref("token")), ref("hparams")), buildSubscriptionState)),

		rule("option-tags", seq(txt(ref("token")), star(seq(ref("COMMA"), txt(ref("token")))))),
		rule("Require", action(ref("option-tags"), func(_ *peg.Context, m peg.Match) (any, error) {
			return header.Require(tokens(m.Value)), nil
		})),
		rule("Supported", action(opt(ref("option-tags")), func(_ *peg.Context, m peg.Match) (any, error) {
			return header.Supported(tokens(m.Value)), nil
		})),
		rule("Allow", action(opt(ref("option-tags")), func(_ *peg.Context, m peg.Match) (any, error) {
			toks := tokens(m.Value)
			hdr := make(header.Allow, len(toks))
			for i := range toks {
				hdr[i] = header.RequestMethod(toks[i])
			}
			return hdr, nil
		})),

		// Reason = reason-value *(COMMA reason-value) (RFC 3326)
		rule("Reason", action(seq(ref("reason-value"), star(seq(ref("COMMA"), ref("reason-value")))), buildReason)),
		rule("reason-value", action(seq(txt(ref("token")), ref("hparams")), buildReasonValue)),
	}
}

func parseUint(s, what string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrOutOfRange, "%s %s", what, s))
	}
	return n, nil
}

func parseDelta(s, what string) (time.Duration, error) {
	n, err := parseUint(s, what, 32)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	return time.Duration(n) * time.Second, nil
}

// tokens flattens a token *(COMMA token) value, nil yields an empty list.
func tokens(v any) []string {
	toks := make([]string, 0, 1+len(list(at(v, 1))))
	if v == nil {
		return toks
	}
	toks = append(toks, str(at(v, 0)))
	for _, it := range list(at(v, 1)) {
		toks = append(toks, str(at(it, 1)))
	}
	return toks
}

func buildCSeq(_ *peg.Context, m peg.Match) (any, error) {
	n, err := parseUint(str(at(m.Value, 0)), "CSeq", 32)
	if err == nil && n >= header.MaxCSeq {
		err = errorutil.NewWrapperError(ErrOutOfRange, "CSeq %d", n)
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &header.CSeq{SeqNum: uint32(n), Method: header.RequestMethod(str(at(m.Value, 2)))}, nil
}

func buildSessionExpires(_ *peg.Context, m peg.Match) (any, error) {
	d, err := parseDelta(str(at(m.Value, 0)), "Session-Expires")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if d == 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "Session-Expires must be greater than zero"))
	}
	hdr := &header.SessionExpires{Delta: d, Params: values(at(m.Value, 1))}
	if r, ok := hdr.Refresher(); ok && r != "uac" && r != "uas" {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "refresher %s", r))
	}
	return hdr, nil
}

func buildSubscriptionState(_ *peg.Context, m peg.Match) (any, error) {
	hdr := &header.SubscriptionState{State: str(at(m.Value, 0)), Params: values(at(m.Value, 1))}
	for _, name := range []string{"expires", "retry-after"} {
		if v, ok := hdr.Params.Last(name); ok {
			if _, err := parseUint(v, name, 32); err != nil {
				return nil, errtrace.Wrap(err)
			}
		}
	}
	return hdr, nil
}

func buildReason(_ *peg.Context, m peg.Match) (any, error) {
	var hdr header.Reason
	add := func(v any) bool {
		rv, ok := v.(header.ReasonValue)
		if ok {
			hdr = append(hdr, rv)
		}
		return ok
	}
	if !add(at(m.Value, 0)) {
		return nil, nil
	}
	for _, it := range list(at(m.Value, 1)) {
		if !add(at(it, 1)) {
			return nil, nil
		}
	}
	return hdr, nil
}

// buildReasonValue checks protocol-cause is numeric and reason-text is quoted.
func buildReasonValue(_ *peg.Context, m peg.Match) (any, error) {
	rv := header.ReasonValue{Protocol: str(at(m.Value, 0)), Params: values(at(m.Value, 1))}
	if v, ok := rv.Params.Last("cause"); ok {
		if _, err := parseUint(v, "cause", 16); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if v, ok := rv.Params.Last("text"); ok && !grammar.IsQuoted(v) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "text %s", util.Ellipsis(v, 16)))
	}
	return rv, nil
}
