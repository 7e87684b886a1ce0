package peg

import (
	"log/slog"
	"maps"

	"github.com/ghettovoice/sipparse/internal/log"
)

// Match describes a successful match handed to an action.
type Match struct {
	// Text is the matched input span.
	Text string
	// Value is the value produced by the action's expression.
	Value any
	// Start and End are byte offsets of the span.
	Start, End int
}

// ActionError is an action failure recorded during evaluation.
type ActionError struct {
	Start, End int
	Text       string
	Err        error
}

func (e *ActionError) Error() string { return e.Err.Error() }

func (e *ActionError) Unwrap() error { return e.Err }

// Context is the per-call state threaded through actions.
// It carries a caller-visible data bag, recorded action errors and logging settings.
// Changes made by actions inside a branch that is later backtracked are rolled back.
// A Context must not be shared by concurrent parses.
type Context struct {
	// Logger receives rule trace records when Trace is set.
	Logger *slog.Logger
	// Trace enables rule-level debug records.
	Trace bool

	data    map[string]any
	journal []change
	errs    []*ActionError
}

type change struct {
	key  string
	prev any
	had  bool
}

type ctxMark struct {
	journal, errs int
}

// NewContext returns a context with the bag seeded from data.
func NewContext(data map[string]any) *Context {
	c := &Context{
		Logger: log.Noop,
		data:   make(map[string]any, len(data)),
	}
	maps.Copy(c.data, data)
	return c
}

// Get returns a bag value.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

// Set stores a bag value.
func (c *Context) Set(key string, val any) {
	prev, had := c.data[key]
	c.journal = append(c.journal, change{key, prev, had})
	c.data[key] = val
}

// Del removes a bag value.
func (c *Context) Del(key string) {
	prev, had := c.data[key]
	if !had {
		return
	}
	c.journal = append(c.journal, change{key, prev, had})
	delete(c.data, key)
}

// Data returns a copy of the bag.
func (c *Context) Data() map[string]any { return maps.Clone(c.data) }

// Errors returns action errors recorded so far.
func (c *Context) Errors() []*ActionError { return c.errs }

func (c *Context) mark() ctxMark { return ctxMark{len(c.journal), len(c.errs)} }

func (c *Context) rollback(m ctxMark) {
	for i := len(c.journal) - 1; i >= m.journal; i-- {
		ch := c.journal[i]
		if ch.had {
			c.data[ch.key] = ch.prev
		} else {
			delete(c.data, ch.key)
		}
	}
	c.journal = c.journal[:m.journal]
	c.errs = c.errs[:m.errs]
}

func (c *Context) reset() {
	if c.data == nil {
		c.data = make(map[string]any)
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.journal = c.journal[:0]
	c.errs = c.errs[:0]
}
