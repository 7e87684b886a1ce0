package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/util"
)

// Allow represents the Allow header field, the methods supported by the UA. It may be empty.
type Allow []RequestMethod

// CanonicName returns the canonical name of the header.
func (Allow) CanonicName() Name { return "Allow" }

// CompactName returns the compact name of the header, Allow has no compact form.
func (Allow) CompactName() Name { return "Allow" }

// RenderTo writes the header with its name to w.
func (hdr Allow) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Allow) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr Allow) RenderValue() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdrEntries(sb, hdr, ", ") //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr Allow) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Allow) Format(f fmt.State, verb rune) {
	type hideMethods Allow
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Allow) Clone() Header { return slices.Clone(hdr) }

// Equal compares methods case-sensitively, the order matters.
func (hdr Allow) Equal(val any) bool {
	other, ok := cast[Allow](val)
	return ok && other != nil && slices.Equal(hdr, *other)
}

// Has reports whether the method is allowed.
func (hdr Allow) Has(m RequestMethod) bool { return slices.Contains(hdr, m) }

// IsValid reports whether the header is syntactically valid.
func (hdr Allow) IsValid() bool { return hdr != nil && validHdrEntries(hdr) }
