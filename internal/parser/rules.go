package parser

import (
	"slices"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/types"
)

var (
	seq    = peg.Seq
	choice = peg.Choice
	star   = peg.Star
	plus   = peg.Plus
	opt    = peg.Opt
	lit    = peg.Lit
	litI   = peg.LitI
	ref    = peg.Ref
	txt    = peg.Text
	not    = peg.Not
	action = peg.Action
	class  = peg.Class
)

func rule(name string, e peg.Expr) *peg.Rule { return &peg.Rule{Name: name, Expr: e} }

// rules returns the lexical rules followed by the SIP rules.
func rules() []*peg.Rule {
	return slices.Concat(
		grammar.Rules(),
		paramRules(),
		uriRules(),
		addrRules(),
		viaRules(),
		headerRules(),
		authRules(),
		lineRules(),
		fragmentRules(),
	)
}

// param is a header parameter, the value is kept as written.
type param struct {
	name, value string
}

func paramRules() []*peg.Rule {
	return []*peg.Rule{
		// generic-param = token [ EQUAL gen-value ]
		rule("hparam", action(seq(txt(ref("token")), opt(seq(ref("EQUAL"), txt(ref("gen-value"))))), buildParam)),
		rule("hparams", action(star(seq(ref("SEMI"), ref("hparam"))), buildParams)),
	}
}

func buildParam(_ *peg.Context, m peg.Match) (any, error) {
	return param{name: str(at(m.Value, 0)), value: str(at(at(m.Value, 1), 1))}, nil
}

// buildParams collects params of SEMI-prefixed repetitions.
func buildParams(_ *peg.Context, m peg.Match) (any, error) {
	var params types.Values
	for _, it := range list(m.Value) {
		p, ok := at(it, 1).(param)
		if !ok {
			continue
		}
		if params == nil {
			params = make(types.Values)
		}
		params.Append(p.name, p.value)
	}
	return params, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

// at returns the i-th item of a sequence value or nil.
func at(v any, i int) any {
	l := list(v)
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

// values returns the params value, an empty list when a nested action failed.
func values(v any) types.Values {
	vals, _ := v.(types.Values)
	return vals
}
