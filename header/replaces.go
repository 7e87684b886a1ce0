package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
)

// Replaces represents the Replaces header field (RFC 3891), it identifies a dialog to replace.
type Replaces struct {
	CallID string
	Params Values
}

// CanonicName returns the canonical name of the header.
func (*Replaces) CanonicName() Name { return "Replaces" }

// CompactName returns the compact name of the header, Replaces has no compact form.
func (*Replaces) CompactName() Name { return "Replaces" }

// RenderTo writes the header with its name to w.
func (hdr *Replaces) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *Replaces) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *Replaces) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return tokenWithParams(hdr.CallID, hdr.Params)
}

// String returns the header value.
func (hdr *Replaces) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *Replaces) Format(f fmt.State, verb rune) {
	type hideMethods Replaces
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *Replaces) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares the dialog identifiers, tags are case-sensitive.
func (hdr *Replaces) Equal(val any) bool {
	other, ok := cast[Replaces](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	t1, _ := hdr.ToTag()
	t2, _ := other.ToTag()
	f1, _ := hdr.FromTag()
	f2, _ := other.FromTag()
	return hdr.CallID == other.CallID && t1 == t2 && f1 == f2 && hdr.EarlyOnly() == other.EarlyOnly()
}

// IsValid checks the Call-ID and that both tags are present.
func (hdr *Replaces) IsValid() bool {
	if hdr == nil || !grammar.IsCallID(hdr.CallID) || !validHdrParams(hdr.Params) {
		return false
	}
	_, ok1 := hdr.ToTag()
	_, ok2 := hdr.FromTag()
	return ok1 && ok2
}

// ToTag returns the to-tag parameter.
func (hdr *Replaces) ToTag() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.Params.Last("to-tag")
}

// FromTag returns the from-tag parameter.
func (hdr *Replaces) FromTag() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.Params.Last("from-tag")
}

// EarlyOnly reports whether the "early-only" flag is set.
func (hdr *Replaces) EarlyOnly() bool { return hdr != nil && hdr.Params.Has("early-only") }
