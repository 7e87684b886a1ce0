package sipparse

import (
	"log/slog"

	"github.com/ghettovoice/sipparse/internal/log"
	"github.com/ghettovoice/sipparse/internal/peg"
)

// Options tune a single [Parse] call.
type Options struct {
	// Logger receives rule trace records, defaults to a no-op logger.
	Logger *slog.Logger
	// Trace enables a debug record per evaluated rule.
	Trace bool
	// Data seeds the per-call bag shared by semantic actions, it is not modified.
	Data map[string]any
	// Result receives the bag as it was left by the call: the Data entries
	// plus the Data* keys recorded by the URI actions.
	Result map[string]any
}

func (o *Options) context() *peg.Context {
	if o == nil {
		return nil
	}
	ctx := peg.NewContext(o.Data)
	ctx.Trace = o.Trace
	if o.Logger != nil {
		ctx.Logger = o.Logger
	} else {
		ctx.Logger = log.Noop
	}
	return ctx
}
