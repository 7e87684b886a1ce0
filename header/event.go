package header

import (
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// Event represents the Event header field (RFC 6665).
type Event struct {
	Type   string // event package with optional template, e.g. "presence.winfo"
	Params Values
}

// CanonicName returns the canonical name of the header.
func (*Event) CanonicName() Name { return "Event" }

// CompactName returns the compact name of the header.
func (*Event) CompactName() Name { return "o" }

// RenderTo writes the header with its name to w.
func (hdr *Event) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *Event) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *Event) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return tokenWithParams(hdr.Type, hdr.Params)
}

// String returns the header value.
func (hdr *Event) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *Event) Format(f fmt.State, verb rune) {
	type hideMethods Event
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *Event) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal reports whether val is an equal Event header.
func (hdr *Event) Equal(val any) bool {
	other, ok := cast[Event](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return util.EqFold(hdr.Type, other.Type) && equalHdrParams(hdr.Params, other.Params, "id")
}

// IsValid reports whether the header is syntactically valid.
func (hdr *Event) IsValid() bool {
	return hdr != nil && grammar.IsToken(hdr.Type) && validHdrParams(hdr.Params)
}

// Package returns the event package without template suffixes: "presence" for "presence.winfo".
func (hdr *Event) Package() string {
	if hdr == nil {
		return ""
	}
	pkg, _, _ := strings.Cut(hdr.Type, ".")
	return pkg
}

// ID returns the "id" parameter.
func (hdr *Event) ID() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.Params.Last("id")
}
