package peg

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/errorutil"
)

// Rule is a named production.
// A rule with a Display name is evaluated silently and reports itself as a single expectation.
type Rule struct {
	Name    string
	Display string
	Expr    Expr
}

// Grammar is a compiled, immutable rule table. It is safe for concurrent use.
type Grammar struct {
	rules map[string]*Rule
}

// Compile builds a grammar and resolves every rule reference.
// It panics on duplicate rule names and dangling references.
func Compile(rules ...*Rule) *Grammar {
	g := &Grammar{rules: make(map[string]*Rule, len(rules))}
	for _, r := range rules {
		if _, ok := g.rules[r.Name]; ok {
			panic(fmt.Errorf("peg: duplicate rule %q", r.Name))
		}
		g.rules[r.Name] = r
	}
	for _, r := range rules {
		if err := g.resolve(r.Expr); err != nil {
			panic(fmt.Errorf("peg: rule %q: %w", r.Name, err))
		}
	}
	return g
}

func (g *Grammar) resolve(e Expr) error {
	switch e := e.(type) {
	case *RefExpr:
		r, ok := g.rules[e.Name]
		if !ok {
			return errorutil.Errorf("undefined rule %q", e.Name) //errtrace:skip
		}
		e.rule = r
	case *SeqExpr:
		for _, it := range e.Items {
			if err := g.resolve(it); err != nil {
				return err //errtrace:skip
			}
		}
	case *ChoiceExpr:
		for _, it := range e.Alts {
			if err := g.resolve(it); err != nil {
				return err //errtrace:skip
			}
		}
	case *RepeatExpr:
		return g.resolve(e.Expr) //errtrace:skip
	case *OptExpr:
		return g.resolve(e.Expr) //errtrace:skip
	case *LookaheadExpr:
		return g.resolve(e.Expr) //errtrace:skip
	case *SilentExpr:
		return g.resolve(e.Expr) //errtrace:skip
	case *ActionExpr:
		return g.resolve(e.Expr) //errtrace:skip
	case *TextExpr:
		return g.resolve(e.Expr) //errtrace:skip
	case *RecoverExpr:
		return g.resolve(e.Expr) //errtrace:skip
	}
	return nil
}

// Has reports whether the grammar defines the rule.
func (g *Grammar) Has(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Names returns sorted rule names.
func (g *Grammar) Names() []string {
	names := make([]string, 0, len(g.rules))
	for n := range g.rules {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Parse matches the whole text against the start rule and returns the rule value.
//
// The error is [ErrUnknownRule] when start is not defined, otherwise a [*SyntaxError].
// Action errors that were not absorbed by a [Recover] expression also produce a [*SyntaxError]
// describing the first failed span.
// ctx may be nil.
func (g *Grammar) Parse(text, start string, ctx *Context) (any, error) {
	r, ok := g.rules[start]
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownRule, start))
	}
	if ctx == nil {
		ctx = NewContext(nil)
	}
	ctx.reset()

	m := &machine{
		text:   text,
		ctx:    ctx,
		frames: make([]frame, 0, 32),
		vals:   make([]any, 0, 32),
	}
	m.run(&RefExpr{Name: r.Name, rule: r})

	if m.ok && m.pos == len(text) {
		if len(ctx.errs) > 0 {
			return nil, errtrace.Wrap(m.actionError(ctx.errs[0]))
		}
		return m.val, nil
	}
	if m.ok {
		m.expect(m.pos, Expectation{Kind: ExpectEnd})
	}
	return nil, errtrace.Wrap(m.syntaxError())
}

// Match reports whether the whole text matches the start rule, ignoring action errors.
func (g *Grammar) Match(text, start string) bool {
	r, ok := g.rules[start]
	if !ok {
		return false
	}
	m := &machine{text: text, ctx: NewContext(nil)}
	m.silent++
	m.run(&RefExpr{Name: r.Name, rule: r})
	return m.ok && m.pos == len(text)
}

func (m *machine) syntaxError() *SyntaxError {
	pc := newPosCache(m.text)
	fpos := m.fail.pos
	err := &SyntaxError{
		Expected: slices.Clone(m.fail.expected),
	}
	if fpos < len(m.text) {
		_, size := utf8.DecodeRuneInString(m.text[fpos:])
		found := m.text[fpos : fpos+size]
		err.Found = &found
		err.Location = Location{Start: pc.at(fpos), End: pc.at(fpos + size)}
	} else {
		p := pc.at(fpos)
		err.Location = Location{Start: p, End: p}
	}
	err.Message = buildMessage(err.Expected, err.Found)
	return err
}

func (m *machine) actionError(ae *ActionError) *SyntaxError {
	pc := newPosCache(m.text)
	found := ae.Text
	msg := ae.Err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return &SyntaxError{
		Message:  msg,
		Found:    &found,
		Location: Location{Start: pc.at(ae.Start), End: pc.at(ae.End)},
	}
}
