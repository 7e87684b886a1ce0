// Package grammar holds the SIP lexical rules (RFC 3261 section 25) shared by the parser and
// value types, predicates built on them, and quoting/escaping helpers.
package grammar

//go:generate go tool errtrace -w .

import (
	"strings"

	"github.com/ghettovoice/sipparse/internal/peg"
)

// Character sets from RFC 3261 section 25.1.
const (
	markChars        = "-_.!~*'()"
	reservedChars    = ";/?:@&=+$,"
	tokenChars       = "-.!%*_+`'~"
	tokenNoDotChars  = "-!%*_+`'~"
	wordChars        = "-.!%*_+`'~()<>:\\\"/[]?{}"
	userUnreserved   = "&=+$,;?/"
	passwdUnreserved = "&=+$,"
	paramUnreserved  = "[]/:&+$"
	hnvUnreserved    = "[]/?:+$"
)

// class builds a character class expression matching alphanumerics plus chars.
func class(alnum bool, chars string) peg.Expr {
	var sb strings.Builder
	sb.WriteByte('[')
	if alnum {
		sb.WriteString("a-zA-Z0-9")
	}
	for i := 0; i < len(chars); i++ {
		switch c := chars[i]; c {
		case ']', '[', '-', '^', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(']')
	return peg.Class(sb.String())
}

func rule(name string, e peg.Expr) *peg.Rule { return &peg.Rule{Name: name, Expr: e} }

// Rules returns a fresh copy of the lexical rules, ready to be compiled together with other rules.
func Rules() []*peg.Rule {
	var (
		seq    = peg.Seq
		choice = peg.Choice
		star   = peg.Star
		plus   = peg.Plus
		opt    = peg.Opt
		lit    = peg.Lit
		ref    = peg.Ref
	)

	return []*peg.Rule{
		rule("ALPHA", peg.Class("[a-zA-Z]")),
		rule("DIGIT", peg.Class("[0-9]")),
		rule("HEXDIG", peg.Class("[0-9a-fA-F]")),
		rule("alphanum", peg.Class("[a-zA-Z0-9]")),
		rule("WSP", peg.Class("[ \\t]")),
		rule("CRLF", lit("\r\n")),
		rule("UTF8-NONASCII", peg.Class("[\\x80-\\xFF]")),
		// LWS = [*WSP CRLF] 1*WSP
		rule("LWS", seq(opt(seq(star(ref("WSP")), ref("CRLF"))), plus(ref("WSP")))),
		rule("SWS", opt(ref("LWS"))),
		rule("SEMI", seq(ref("SWS"), lit(";"), ref("SWS"))),
		rule("EQUAL", seq(ref("SWS"), lit("="), ref("SWS"))),
		rule("COMMA", seq(ref("SWS"), lit(","), ref("SWS"))),
		rule("SLASH", seq(ref("SWS"), lit("/"), ref("SWS"))),
		rule("COLON", seq(ref("SWS"), lit(":"), ref("SWS"))),
		rule("STAR", seq(ref("SWS"), lit("*"), ref("SWS"))),
		rule("LAQUOT", seq(ref("SWS"), lit("<"))),
		rule("RAQUOT", seq(lit(">"), ref("SWS"))),
		rule("LDQUOT", seq(ref("SWS"), lit(`"`))),
		rule("RDQUOT", seq(lit(`"`), ref("SWS"))),

		rule("mark", class(false, markChars)),
		rule("unreserved", class(true, markChars)),
		rule("reserved", class(false, reservedChars)),
		rule("escaped", seq(lit("%"), ref("HEXDIG"), ref("HEXDIG"))),

		rule("token", plus(class(true, tokenChars))),
		rule("token-nodot", plus(class(true, tokenNoDotChars))),
		rule("token-char", class(true, tokenChars)),
		rule("word", plus(class(true, wordChars))),
		rule("callid", seq(ref("word"), opt(seq(lit("@"), ref("word"))))),
		rule("quoted-string", seq(ref("SWS"), lit(`"`), star(choice(ref("qdtext"), ref("quoted-pair"))), lit(`"`))),
		rule("qdtext", choice(ref("LWS"), peg.Class("[\\x21\\x23-\\x5B\\x5D-\\x7E\\x80-\\xFF]"))),
		rule("quoted-pair", seq(lit(`\`), peg.Class("[\\x00-\\x09\\x0B-\\x0C\\x0E-\\x7F]"))),
		rule("display-name", choice(
			seq(ref("token"), star(seq(ref("LWS"), ref("token")))),
			ref("quoted-string"),
		)),

		// A label is followed by "." only when another label follows, so "example.com." keeps its toplabel.
		rule("hostname", seq(
			star(seq(ref("domainlabel"), lit("."), peg.And(ref("domainlabel")))),
			ref("toplabel"),
			opt(lit(".")),
		)),
		rule("domainlabel", plus(peg.Class("[a-zA-Z0-9_\\-]"))),
		rule("toplabel", seq(ref("ALPHA"), star(peg.Class("[a-zA-Z0-9\\-]")))),
		rule("IPv4address", seq(
			ref("dec-octet"), lit("."), ref("dec-octet"), lit("."),
			ref("dec-octet"), lit("."), ref("dec-octet"),
		)),
		rule("dec-octet", choice(
			seq(lit("25"), peg.Class("[0-5]")),
			seq(lit("2"), peg.Class("[0-4]"), ref("DIGIT")),
			seq(lit("1"), ref("DIGIT"), ref("DIGIT")),
			seq(peg.Class("[1-9]"), ref("DIGIT")),
			ref("DIGIT"),
		)),
		// Structure of IPv6 literals is checked with net/netip by the consumers.
		rule("IPv6address", plus(peg.Class("[0-9a-fA-F:.]"))),
		rule("IPv6reference", seq(lit("["), ref("IPv6address"), lit("]"))),
		{Name: "host", Display: "host", Expr: choice(ref("hostname"), ref("IPv4address"), ref("IPv6reference"))},
		rule("port", plus(ref("DIGIT"))),
		rule("hostport", seq(ref("host"), opt(seq(lit(":"), ref("port"))))),

		rule("user", plus(choice(class(true, markChars+userUnreserved), ref("escaped")))),
		rule("password", star(choice(class(true, markChars+passwdUnreserved), ref("escaped")))),
		rule("paramchar", choice(class(true, markChars+paramUnreserved), ref("escaped"))),
		rule("pname", plus(ref("paramchar"))),
		rule("pvalue", plus(ref("paramchar"))),
		rule("hnvchar", choice(class(true, markChars+hnvUnreserved), ref("escaped"))),
		rule("hname", plus(ref("hnvchar"))),
		rule("hvalue", star(ref("hnvchar"))),

		rule("gen-value", choice(ref("token"), ref("host"), ref("quoted-string"))),
		rule("generic-param", seq(ref("token"), opt(seq(ref("EQUAL"), ref("gen-value"))))),
		rule("delta-seconds", plus(ref("DIGIT"))),
	}
}
