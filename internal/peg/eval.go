package peg

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// frame is the evaluation state of one composite expression.
// Frames live in a slice used as a stack and are addressed by index.
type frame struct {
	expr  Expr
	start int     // input offset at entry
	vals  int     // value stack height at entry
	mark  ctxMark // context journal at entry
	step  int     // children started so far
	last  int     // offset before the current repetition
}

type failure struct {
	pos      int
	expected []Expectation
}

type machine struct {
	text   string
	ctx    *Context
	pos    int
	frames []frame
	vals   []any
	silent int
	fail   failure

	// result of the last completed expression
	ok  bool
	val any
}

func (m *machine) run(root Expr) {
	m.call(root)
	for len(m.frames) > 0 {
		m.resume()
	}
}

func (m *machine) expect(pos int, exp Expectation) {
	if m.silent > 0 || pos < m.fail.pos {
		return
	}
	if pos > m.fail.pos {
		m.fail.pos = pos
		m.fail.expected = m.fail.expected[:0]
	}
	m.fail.expected = append(m.fail.expected, exp)
}

func (m *machine) done(ok bool, val any) {
	m.ok = ok
	m.val = val
}

// call starts e. Terminals complete at once, composite expressions push a frame.
func (m *machine) call(e Expr) {
	switch e := e.(type) {
	case *LitExpr:
		end := m.pos + len(e.Val)
		if end <= len(m.text) && (m.text[m.pos:end] == e.Val || e.Fold && strings.EqualFold(m.text[m.pos:end], e.Val)) {
			s := m.text[m.pos:end]
			m.pos = end
			m.done(true, s)
			return
		}
		m.expect(m.pos, Expectation{Kind: ExpectLiteral, Text: e.Val, IgnoreCase: e.Fold})
		m.done(false, nil)
	case *ClassExpr:
		if m.pos < len(m.text) && e.has(m.text[m.pos]) {
			m.pos++
			m.done(true, m.text[m.pos-1:m.pos])
			return
		}
		m.expect(m.pos, Expectation{Kind: ExpectClass, Text: e.Text})
		m.done(false, nil)
	case *AnyExpr:
		if m.pos < len(m.text) {
			_, size := utf8.DecodeRuneInString(m.text[m.pos:])
			m.pos += size
			m.done(true, m.text[m.pos-size:m.pos])
			return
		}
		m.expect(m.pos, Expectation{Kind: ExpectAny})
		m.done(false, nil)
	case *EndExpr:
		if m.pos == len(m.text) {
			m.done(true, nil)
			return
		}
		m.expect(m.pos, Expectation{Kind: ExpectEnd})
		m.done(false, nil)
	default:
		m.frames = append(m.frames, frame{
			expr:  e,
			start: m.pos,
			vals:  len(m.vals),
			mark:  m.ctx.mark(),
		})
	}
}

// ret completes the top frame.
// On failure the input position, value stack and context changes are restored to the frame entry.
func (m *machine) ret(ok bool, val any) {
	f := m.frames[len(m.frames)-1]
	m.frames = m.frames[:len(m.frames)-1]
	if !ok {
		m.pos = f.start
		clear(m.vals[f.vals:])
		m.vals = m.vals[:f.vals]
		m.ctx.rollback(f.mark)
		val = nil
	}
	m.done(ok, val)
}

func (m *machine) collect(from int) []any {
	out := make([]any, len(m.vals)-from)
	copy(out, m.vals[from:])
	clear(m.vals[from:])
	m.vals = m.vals[:from]
	return out
}

// resume advances the top frame using the result of its last child.
func (m *machine) resume() {
	f := &m.frames[len(m.frames)-1]
	switch e := f.expr.(type) {
	case *SeqExpr:
		if f.step > 0 {
			if !m.ok {
				m.ret(false, nil)
				return
			}
			m.vals = append(m.vals, m.val)
		}
		if f.step == len(e.Items) {
			m.ret(true, m.collect(f.vals))
			return
		}
		f.step++
		m.call(e.Items[f.step-1])

	case *ChoiceExpr:
		if f.step > 0 && m.ok {
			m.ret(true, m.val)
			return
		}
		if f.step == len(e.Alts) {
			m.ret(false, nil)
			return
		}
		f.step++
		m.call(e.Alts[f.step-1])

	case *RepeatExpr:
		if f.step > 0 {
			if !m.ok || m.pos == f.last {
				if len(m.vals)-f.vals < e.Min {
					m.ret(false, nil)
					return
				}
				m.ret(true, m.collect(f.vals))
				return
			}
			m.vals = append(m.vals, m.val)
		}
		f.step++
		f.last = m.pos
		m.call(e.Expr)

	case *OptExpr:
		if f.step == 0 {
			f.step++
			m.call(e.Expr)
			return
		}
		m.ret(true, m.val)

	case *LookaheadExpr:
		if f.step == 0 {
			f.step++
			m.silent++
			m.call(e.Expr)
			return
		}
		m.silent--
		ok := m.ok != e.Negate
		m.pos = f.start
		m.ctx.rollback(f.mark)
		m.ret(ok, nil)

	case *SilentExpr:
		if f.step == 0 {
			f.step++
			m.silent++
			m.call(e.Expr)
			return
		}
		m.silent--
		m.ret(m.ok, m.val)

	case *ActionExpr:
		if f.step == 0 {
			f.step++
			m.call(e.Expr)
			return
		}
		if !m.ok {
			m.ret(false, nil)
			return
		}
		match := Match{Text: m.text[f.start:m.pos], Value: m.val, Start: f.start, End: m.pos}
		v, err := e.Fn(m.ctx, match)
		if err != nil {
			m.ctx.errs = append(m.ctx.errs, &ActionError{Start: f.start, End: m.pos, Text: match.Text, Err: err})
			v = nil
		}
		m.ret(true, v)

	case *TextExpr:
		if f.step == 0 {
			f.step++
			m.call(e.Expr)
			return
		}
		if !m.ok {
			m.ret(false, nil)
			return
		}
		m.ret(true, m.text[f.start:m.pos])

	case *RecoverExpr:
		if f.step == 0 {
			f.step++
			m.call(e.Expr)
			return
		}
		if m.ok && len(m.ctx.errs) > f.mark.errs {
			m.ctx.errs = m.ctx.errs[:f.mark.errs]
			m.ret(true, nil)
			return
		}
		m.ret(m.ok, m.val)

	case *RefExpr:
		r := e.rule
		if f.step == 0 {
			f.step++
			if r.Display != "" {
				m.silent++
			}
			m.call(r.Expr)
			return
		}
		if r.Display != "" {
			m.silent--
			if !m.ok {
				m.expect(f.start, Expectation{Kind: ExpectOther, Text: r.Display})
			}
		}
		if m.ctx.Trace {
			m.ctx.Logger.LogAttrs(context.Background(), slog.LevelDebug, "rule evaluated",
				slog.String("rule", r.Name),
				slog.Bool("matched", m.ok),
				slog.Int("start", f.start),
				slog.Int("end", m.pos),
			)
		}
		m.ret(m.ok, m.val)
	}
}
