package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/util"
)

// Contact represents the Contact header field.
// An empty non-nil Contact is the wildcard "*" used to remove all registrations.
type Contact []NameAddr

// CanonicName returns the canonical name of the header.
func (Contact) CanonicName() Name { return "Contact" }

// CompactName returns the compact name of the header.
func (Contact) CompactName() Name { return "m" }

// RenderTo writes the header to the provided writer.
func (hdr Contact) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Contact) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the comma-separated header entries or "*" for the wildcard.
func (hdr Contact) RenderValue() string {
	if hdr.IsWildcard() {
		return "*"
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdrEntries(sb, hdr, ", ") //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr Contact) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Contact) Format(f fmt.State, verb rune) {
	type hideMethods Contact
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Contact) Clone() Header { return cloneHdrEntries(hdr) }

// Equal reports whether val is an equal Contact header.
func (hdr Contact) Equal(val any) bool {
	other, ok := cast[Contact](val)
	return ok && other != nil && hdr.IsWildcard() == other.IsWildcard() && equalHdrEntries(hdr, *other)
}

// IsValid reports whether the header is syntactically valid.
func (hdr Contact) IsValid() bool { return hdr != nil && validHdrEntries(hdr) }

// IsWildcard reports whether the header is "Contact: *".
func (hdr Contact) IsWildcard() bool { return hdr != nil && len(hdr) == 0 }
