package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
)

// CallID represents the Call-ID header field.
type CallID string

// CanonicName returns the canonical name of the header.
func (CallID) CanonicName() Name { return "Call-ID" }

// CompactName returns the compact name of the header.
func (CallID) CompactName() Name { return "i" }

// RenderTo writes the header with its name to w.
func (hdr CallID) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr CallID) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name.
func (hdr CallID) RenderValue() string { return string(hdr) }

// String returns the header value.
func (hdr CallID) String() string { return string(hdr) }

// Format implements [fmt.Formatter].
func (hdr CallID) Format(f fmt.State, verb rune) {
	type hideMethods CallID
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr CallID) Clone() Header { return hdr }

// Equal compares Call-IDs case-sensitively.
func (hdr CallID) Equal(val any) bool {
	other, ok := cast[CallID](val)
	return ok && other != nil && hdr == *other
}

// IsValid reports whether the header is syntactically valid.
func (hdr CallID) IsValid() bool { return grammar.IsCallID(hdr) }
