package parser

import "github.com/ghettovoice/sipparse/internal/peg"

// LexemeKind classifies a lexeme of a free-form fragment.
type LexemeKind string

const (
	LexToken     LexemeKind = "token"
	LexQuoted    LexemeKind = "quoted-string"
	LexSeparator LexemeKind = "separator"
	LexSpace     LexemeKind = "whitespace"
	LexOther     LexemeKind = "other"
)

// Lexeme is a piece of a fragment starting at the byte Offset.
type Lexeme struct {
	Kind   LexemeKind `json:"kind" yaml:"kind"`
	Text   string     `json:"text" yaml:"text"`
	Offset int        `json:"offset" yaml:"offset"`
}

func lexeme(kind LexemeKind) peg.ActionFunc {
	return func(_ *peg.Context, m peg.Match) (any, error) {
		return Lexeme{Kind: kind, Text: m.Text, Offset: m.Start}, nil
	}
}

func fragmentRules() []*peg.Rule {
	return []*peg.Rule{
		rule("Fragment", action(
			star(choice(
				action(plus(class(`[ \t\r\n]`)), lexeme(LexSpace)),
				action(ref("quoted-string"), lexeme(LexQuoted)),
				action(ref("token"), lexeme(LexToken)),
				action(class(`[()<>@,;:\\"/[\]?={}]`), lexeme(LexSeparator)),
				action(peg.Any(), lexeme(LexOther)),
			)),
			func(_ *peg.Context, m peg.Match) (any, error) {
				lxs := make([]Lexeme, 0, len(list(m.Value)))
				for _, v := range list(m.Value) {
					if lx, ok := v.(Lexeme); ok {
						lxs = append(lxs, lx)
					}
				}
				return lxs, nil
			},
		)),
	}
}
