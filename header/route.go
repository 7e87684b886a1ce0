package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/util"
)

// Route represents the Route header field, the route set a request is forced through.
type Route []NameAddr

// CanonicName returns the canonical name of the header.
func (Route) CanonicName() Name { return "Route" }

// CompactName returns the compact name of the header, Route has no compact form.
func (Route) CompactName() Name { return "Route" }

// RenderTo writes the header to the provided writer.
func (hdr Route) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Route) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the comma-separated header entries.
func (hdr Route) RenderValue() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdrEntries(sb, hdr, ", ") //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr Route) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Route) Format(f fmt.State, verb rune) {
	type hideMethods Route
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Route) Clone() Header { return cloneHdrEntries(hdr) }

// Equal reports whether val is an equal Route header.
func (hdr Route) Equal(val any) bool {
	other, ok := cast[Route](val)
	return ok && other != nil && equalHdrEntries(hdr, *other)
}

// IsValid reports whether the header is syntactically valid.
func (hdr Route) IsValid() bool { return len(hdr) > 0 && validHdrEntries(hdr) }
