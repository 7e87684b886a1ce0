// Package peg implements an interpreter for parsing expression grammars.
//
// A grammar is a set of named [Rule]s whose bodies are trees of [Expr] nodes.
// [Compile] resolves rule references and [Grammar.Parse] evaluates a rule against
// the input text with an explicit frame stack, so neither deeply nested rules nor
// long inputs grow the Go call stack.
package peg

//go:generate go tool errtrace -w .

// Expr is a node of the rule tree.
// The set of implementations is closed, it is one of the *XxxExpr types of this package.
type Expr interface {
	pegExpr()
}

// LitExpr matches a literal string.
type LitExpr struct {
	Val  string
	Fold bool
}

// ClassExpr matches a single byte from a set.
type ClassExpr struct {
	Text     string
	Inverted bool
	bits     [4]uint64
}

func (e *ClassExpr) has(c byte) bool {
	return (e.bits[c>>6]&(1<<(c&63)) != 0) != e.Inverted
}

// AnyExpr matches any single character.
type AnyExpr struct{}

// EndExpr matches the end of the input.
type EndExpr struct{}

// SeqExpr matches all items in order. Its value is a []any of item values.
type SeqExpr struct {
	Items []Expr
}

// ChoiceExpr is an ordered choice: the first matching alternative wins.
type ChoiceExpr struct {
	Alts []Expr
}

// RepeatExpr greedily repeats Expr at least Min times. Its value is a []any of iteration values.
// Repetition stops when Expr fails or matches without consuming input.
type RepeatExpr struct {
	Expr Expr
	Min  int
}

// OptExpr matches Expr or nothing. Its value is the Expr value or nil.
type OptExpr struct {
	Expr Expr
}

// LookaheadExpr tests Expr without consuming input. Negate inverts the result.
// Failures inside a lookahead are never reported.
type LookaheadExpr struct {
	Expr   Expr
	Negate bool
}

// SilentExpr evaluates Expr without recording expectations.
type SilentExpr struct {
	Expr Expr
}

// ActionFunc transforms a successful match into a semantic value.
// A returned error marks the matched span as semantically invalid.
type ActionFunc func(c *Context, m Match) (any, error)

// ActionExpr runs Fn on a successful match of Expr.
type ActionExpr struct {
	Expr Expr
	Fn   ActionFunc
}

// TextExpr yields the text matched by Expr instead of its value.
type TextExpr struct {
	Expr Expr
}

// RecoverExpr absorbs action errors raised inside Expr.
// When Expr matches but some nested action failed, the errors are dropped and the value is nil.
type RecoverExpr struct {
	Expr Expr
}

// RefExpr calls the named rule.
type RefExpr struct {
	Name string
	rule *Rule
}

func (*LitExpr) pegExpr()       {}
func (*ClassExpr) pegExpr()     {}
func (*AnyExpr) pegExpr()       {}
func (*EndExpr) pegExpr()       {}
func (*SeqExpr) pegExpr()       {}
func (*ChoiceExpr) pegExpr()    {}
func (*RepeatExpr) pegExpr()    {}
func (*OptExpr) pegExpr()       {}
func (*LookaheadExpr) pegExpr() {}
func (*SilentExpr) pegExpr()    {}
func (*ActionExpr) pegExpr()    {}
func (*TextExpr) pegExpr()      {}
func (*RecoverExpr) pegExpr()   {}
func (*RefExpr) pegExpr()       {}

// Lit returns a case-sensitive literal.
func Lit(s string) Expr { return &LitExpr{Val: s} }

// LitI returns an ASCII case-insensitive literal.
func LitI(s string) Expr { return &LitExpr{Val: s, Fold: true} }

// Any matches any character.
func Any() Expr { return &AnyExpr{} }

// End matches the end of input.
func End() Expr { return &EndExpr{} }

// Seq matches every item in order.
func Seq(items ...Expr) Expr { return &SeqExpr{Items: items} }

// Choice tries alternatives in order.
func Choice(alts ...Expr) Expr { return &ChoiceExpr{Alts: alts} }

// Star matches e zero or more times.
func Star(e Expr) Expr { return &RepeatExpr{Expr: e} }

// Plus matches e one or more times.
func Plus(e Expr) Expr { return &RepeatExpr{Expr: e, Min: 1} }

// Opt matches e or nothing.
func Opt(e Expr) Expr { return &OptExpr{Expr: e} }

// And is a positive lookahead.
func And(e Expr) Expr { return &LookaheadExpr{Expr: e} }

// Not is a negative lookahead.
func Not(e Expr) Expr { return &LookaheadExpr{Expr: e, Negate: true} }

// Silent suppresses expectation recording inside e.
func Silent(e Expr) Expr { return &SilentExpr{Expr: e} }

// Action attaches fn to e.
func Action(e Expr, fn ActionFunc) Expr { return &ActionExpr{Expr: e, Fn: fn} }

// Text yields the matched span of e.
func Text(e Expr) Expr { return &TextExpr{Expr: e} }

// Recover absorbs action errors raised inside e.
func Recover(e Expr) Expr { return &RecoverExpr{Expr: e} }

// Ref calls the rule with the given name.
func Ref(name string) Expr { return &RefExpr{Name: name} }
