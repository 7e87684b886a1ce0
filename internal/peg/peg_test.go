package peg_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/peg"
)

const errOutOfRange errorutil.Error = "number out of range"

func number(_ *peg.Context, m peg.Match) (any, error) {
	n, err := strconv.Atoi(m.Text)
	if err != nil || n > 255 {
		return nil, errOutOfRange
	}
	return n, nil
}

func flatten(_ *peg.Context, m peg.Match) (any, error) {
	parts := m.Value.([]any)
	out := []any{parts[0]}
	for _, it := range parts[1].([]any) {
		out = append(out, it.([]any)[1])
	}
	return out, nil
}

var g = peg.Compile(
	&peg.Rule{Name: "num", Expr: peg.Action(peg.Plus(peg.Class("[0-9]")), number)},
	&peg.Rule{Name: "digit", Display: "digit", Expr: peg.Class("[0-9]")},
	&peg.Rule{Name: "list", Expr: peg.Action(
		peg.Seq(peg.Ref("num"), peg.Star(peg.Seq(peg.Lit(","), peg.Ref("num")))),
		flatten,
	)},
	&peg.Rule{Name: "tolerant_list", Expr: peg.Action(
		peg.Seq(peg.Recover(peg.Ref("num")), peg.Star(peg.Seq(peg.Lit(","), peg.Recover(peg.Ref("num"))))),
		flatten,
	)},
	&peg.Rule{Name: "a_or_b", Expr: peg.Choice(peg.Lit("a"), peg.Lit("b"))},
	&peg.Rule{Name: "three", Expr: peg.Choice(peg.Lit("b"), peg.Class("[0-9]"), peg.Lit("a"))},
	&peg.Rule{Name: "twice", Expr: peg.Choice(peg.Lit("a"), peg.Lit("a"))},
	&peg.Rule{Name: "ab", Expr: peg.Seq(peg.Lit("a"), peg.Lit("b"))},
	&peg.Rule{Name: "a", Expr: peg.Lit("a")},
	&peg.Rule{Name: "furthest", Expr: peg.Choice(peg.Seq(peg.Lit("a"), peg.Lit("b")), peg.Lit("c"))},
	&peg.Rule{Name: "not_x", Expr: peg.Seq(peg.Not(peg.Lit("x")), peg.Lit("a"))},
	&peg.Rule{Name: "and_a", Expr: peg.Seq(peg.And(peg.Lit("a")), peg.Text(peg.Plus(peg.Class("[a-z]"))))},
	&peg.Rule{Name: "digits", Expr: peg.Plus(peg.Ref("digit"))},
	&peg.Rule{Name: "lines", Expr: peg.Seq(peg.Lit("a\nb"), peg.Lit("c"))},
	&peg.Rule{Name: "sip", Expr: peg.Seq(peg.LitI("sip"), peg.Lit(":"))},
	&peg.Rule{Name: "not_quote", Expr: peg.Text(peg.Star(peg.Class("[^\"\\\\]")))},
	&peg.Rule{Name: "opt_star", Expr: peg.Star(peg.Opt(peg.Lit("a")))},
	&peg.Rule{Name: "opt", Expr: peg.Seq(peg.Opt(peg.Lit("+")), peg.Ref("num"))},
	&peg.Rule{Name: "any2", Expr: peg.Seq(peg.Any(), peg.Any(), peg.End())},
	&peg.Rule{Name: "silent", Expr: peg.Choice(peg.Silent(peg.Lit("a")), peg.Lit("b"))},
	&peg.Rule{Name: "nested", Expr: peg.Choice(peg.Seq(peg.Lit("("), peg.Ref("nested"), peg.Lit(")")), peg.Lit("x"))},
	&peg.Rule{Name: "bag", Expr: peg.Choice(
		peg.Seq(peg.Action(peg.Lit("a"), func(c *peg.Context, m peg.Match) (any, error) {
			c.Set("seen", m.Text)
			return nil, errors.New("dropped")
		}), peg.Lit("b")),
		peg.Action(peg.Lit("ac"), func(c *peg.Context, m peg.Match) (any, error) {
			v, _ := c.Get("seed")
			c.Set("last", m.Text)
			return v, nil
		}),
	)},
)

func strp(s string) *string { return &s }

func TestGrammar_Parse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		rule    string
		in      string
		want    any
		wantErr error
	}{
		{"number", "num", "42", 42, nil},
		{"list", "list", "1,2,3", []any{1, 2, 3}, nil},
		{"sequence value", "ab", "ab", []any{"a", "b"}, nil},
		{"ordered choice", "a_or_b", "b", "b", nil},
		{"case insensitive", "sip", "SiP:", []any{"SiP", ":"}, nil},
		{"class inverted", "not_quote", `abc`, "abc", nil},
		{"positive lookahead", "and_a", "abc", []any{nil, "abc"}, nil},
		{"star stops on empty match", "opt_star", "aa", []any{"a", "a"}, nil},
		{"star empty", "opt_star", "", []any{}, nil},
		{"optional missing", "opt", "7", []any{nil, 7}, nil},
		{"optional present", "opt", "+7", []any{"+", 7}, nil},
		{"any", "any2", "ÿz", []any{"ÿ", "z", nil}, nil},
		{"tolerant list", "tolerant_list", "1,300,2", []any{1, nil, 2}, nil},
		{"unknown rule", "nope", "", nil, peg.ErrUnknownRule},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := g.Parse(c.in, c.rule, nil)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("g.Parse(%q, %q, nil) error = %v, want %v\ndiff (-got +want):\n%v", c.in, c.rule, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("g.Parse(%q, %q, nil) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, c.rule, got, c.want, diff)
			}
		})
	}
}

func TestGrammar_Parse_SyntaxError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rule string
		in   string
		want *peg.SyntaxError
	}{
		{
			"two alternatives", "a_or_b", "c",
			&peg.SyntaxError{
				Message: `Expected "a" or "b" but "c" found.`,
				Expected: []peg.Expectation{
					{Kind: peg.ExpectLiteral, Text: "a"},
					{Kind: peg.ExpectLiteral, Text: "b"},
				},
				Found: strp("c"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"three alternatives sorted", "three", "x",
			&peg.SyntaxError{
				Message: `Expected "a", "b", or [0-9] but "x" found.`,
				Expected: []peg.Expectation{
					{Kind: peg.ExpectLiteral, Text: "b"},
					{Kind: peg.ExpectClass, Text: "[0-9]"},
					{Kind: peg.ExpectLiteral, Text: "a"},
				},
				Found: strp("x"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"duplicates collapsed", "twice", "b",
			&peg.SyntaxError{
				Message: `Expected "a" but "b" found.`,
				Expected: []peg.Expectation{
					{Kind: peg.ExpectLiteral, Text: "a"},
					{Kind: peg.ExpectLiteral, Text: "a"},
				},
				Found: strp("b"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"end of input found", "ab", "a",
			&peg.SyntaxError{
				Message:  `Expected "b" but end of input found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "b"}},
				Location: peg.Location{
					Start: peg.Position{Offset: 1, Line: 1, Column: 2},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"leftover input", "a", "ab",
			&peg.SyntaxError{
				Message:  `Expected end of input but "b" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectEnd}},
				Found:    strp("b"),
				Location: peg.Location{
					Start: peg.Position{Offset: 1, Line: 1, Column: 2},
					End:   peg.Position{Offset: 2, Line: 1, Column: 3},
				},
			},
		},
		{
			"furthest failure wins", "furthest", "ax",
			&peg.SyntaxError{
				Message:  `Expected "b" but "x" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "b"}},
				Found:    strp("x"),
				Location: peg.Location{
					Start: peg.Position{Offset: 1, Line: 1, Column: 2},
					End:   peg.Position{Offset: 2, Line: 1, Column: 3},
				},
			},
		},
		{
			"lookahead is silent", "not_x", "b",
			&peg.SyntaxError{
				Message:  `Expected "a" but "b" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "a"}},
				Found:    strp("b"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"silent expression", "silent", "c",
			&peg.SyntaxError{
				Message:  `Expected "b" but "c" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "b"}},
				Found:    strp("c"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"display name", "digits", "1z",
			&peg.SyntaxError{
				Message: `Expected digit or end of input but "z" found.`,
				Expected: []peg.Expectation{
					{Kind: peg.ExpectOther, Text: "digit"},
					{Kind: peg.ExpectEnd},
				},
				Found: strp("z"),
				Location: peg.Location{
					Start: peg.Position{Offset: 1, Line: 1, Column: 2},
					End:   peg.Position{Offset: 2, Line: 1, Column: 3},
				},
			},
		},
		{
			"control character escaped", "a", "\x01",
			&peg.SyntaxError{
				Message:  `Expected "a" but "\x01" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "a"}},
				Found:    strp("\x01"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 1, Column: 2},
				},
			},
		},
		{
			"line feed escaped", "a", "\n",
			&peg.SyntaxError{
				Message:  `Expected "a" but "\n" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "a"}},
				Found:    strp("\n"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 1, Line: 2, Column: 1},
				},
			},
		},
		{
			"second line", "lines", "a\nbX",
			&peg.SyntaxError{
				Message:  `Expected "c" but "X" found.`,
				Expected: []peg.Expectation{{Kind: peg.ExpectLiteral, Text: "c"}},
				Found:    strp("X"),
				Location: peg.Location{
					Start: peg.Position{Offset: 3, Line: 2, Column: 2},
					End:   peg.Position{Offset: 4, Line: 2, Column: 3},
				},
			},
		},
		{
			"action error", "num", "300",
			&peg.SyntaxError{
				Message: "Number out of range.",
				Found:   strp("300"),
				Location: peg.Location{
					Start: peg.Position{Offset: 0, Line: 1, Column: 1},
					End:   peg.Position{Offset: 3, Line: 1, Column: 4},
				},
			},
		},
		{
			"action error inside list", "list", "1,256",
			&peg.SyntaxError{
				Message: "Number out of range.",
				Found:   strp("256"),
				Location: peg.Location{
					Start: peg.Position{Offset: 2, Line: 1, Column: 3},
					End:   peg.Position{Offset: 5, Line: 1, Column: 6},
				},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := g.Parse(c.in, c.rule, nil)
			if got != nil {
				t.Errorf("g.Parse(%q, %q, nil) = %v, want nil", c.in, c.rule, got)
			}
			var se *peg.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("g.Parse(%q, %q, nil) error = %v, want *peg.SyntaxError", c.in, c.rule, err)
			}
			if diff := cmp.Diff(se, c.want); diff != "" {
				t.Errorf("g.Parse(%q, %q, nil) error = %+v, want %+v\ndiff (-got +want):\n%v", c.in, c.rule, se, c.want, diff)
			}
			if !errorutil.IsGrammarErr(err) {
				t.Errorf("errorutil.IsGrammarErr(%v) = false, want true", err)
			}
		})
	}
}

func TestGrammar_Parse_Context(t *testing.T) {
	t.Parallel()

	ctx := peg.NewContext(map[string]any{"seed": 7})
	got, err := g.Parse("ac", "bag", ctx)
	if err != nil {
		t.Fatalf("g.Parse(\"ac\", \"bag\", ctx) error = %v, want nil", err)
	}
	if got != 7 {
		t.Errorf("g.Parse(\"ac\", \"bag\", ctx) = %v, want 7", got)
	}
	want := map[string]any{"seed": 7, "last": "ac"}
	if diff := cmp.Diff(ctx.Data(), want); diff != "" {
		t.Errorf("ctx.Data() = %v, want %v\ndiff (-got +want):\n%v", ctx.Data(), want, diff)
	}
	if errs := ctx.Errors(); len(errs) != 0 {
		t.Errorf("ctx.Errors() = %v, want none", errs)
	}
}

func TestGrammar_Parse_Trace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := peg.NewContext(nil)
	ctx.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx.Trace = true
	if _, err := g.Parse("1,2", "list", ctx); err != nil {
		t.Fatalf("g.Parse(\"1,2\", \"list\", ctx) error = %v, want nil", err)
	}
	if got := strings.Count(buf.String(), "rule=num"); got != 2 {
		t.Errorf("trace records for rule num = %d, want 2\n%s", got, buf.String())
	}
}

func TestGrammar_Parse_Deep(t *testing.T) {
	t.Parallel()

	const depth = 100_000
	in := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	if _, err := g.Parse(in, "nested", nil); err != nil {
		t.Fatalf("g.Parse(nested %d) error = %v, want nil", depth, err)
	}

	_, err := g.Parse(in[:len(in)-1], "nested", nil)
	var se *peg.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("g.Parse(unbalanced) error = %v, want *peg.SyntaxError", err)
	}
	if got, want := se.Offset(), len(in)-1; got != want {
		t.Errorf("se.Offset() = %d, want %d", got, want)
	}
}

func TestGrammar_Match(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rule, in string
		want     bool
	}{
		{"list", "1,2", true},
		{"list", "1,", false},
		{"num", "300", true},
		{"nope", "1", false},
	}

	for _, c := range cases {
		if got := g.Match(c.in, c.rule); got != c.want {
			t.Errorf("g.Match(%q, %q) = %v, want %v", c.in, c.rule, got, c.want)
		}
	}
}

func TestCompile_Panics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		rules []*peg.Rule
	}{
		{"dangling", []*peg.Rule{{Name: "a", Expr: peg.Ref("b")}}},
		{"duplicate", []*peg.Rule{{Name: "a", Expr: peg.Lit("a")}, {Name: "a", Expr: peg.Lit("b")}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Errorf("peg.Compile(%s) did not panic", c.name)
				}
			}()
			peg.Compile(c.rules...)
		})
	}
}
