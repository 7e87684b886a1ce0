package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/util"
)

// RecordRoute represents the Record-Route header field, the list of proxies that stay on the dialog path.
type RecordRoute []NameAddr

// CanonicName returns the canonical name of the header.
func (RecordRoute) CanonicName() Name { return "Record-Route" }

// CompactName returns the compact name of the header, Record-Route has no compact form.
func (RecordRoute) CompactName() Name { return "Record-Route" }

// RenderTo writes the header to the provided writer.
func (hdr RecordRoute) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr RecordRoute) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the comma-separated header entries.
func (hdr RecordRoute) RenderValue() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdrEntries(sb, hdr, ", ") //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr RecordRoute) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr RecordRoute) Format(f fmt.State, verb rune) {
	type hideMethods RecordRoute
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr RecordRoute) Clone() Header { return cloneHdrEntries(hdr) }

// Equal reports whether val is an equal Record-Route header.
func (hdr RecordRoute) Equal(val any) bool {
	other, ok := cast[RecordRoute](val)
	return ok && other != nil && equalHdrEntries(hdr, *other)
}

// IsValid reports whether the header is syntactically valid.
func (hdr RecordRoute) IsValid() bool { return len(hdr) > 0 && validHdrEntries(hdr) }
