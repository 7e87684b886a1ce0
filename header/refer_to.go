package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ReferTo represents the Refer-To header field (RFC 3515).
type ReferTo NameAddr

// CanonicName returns the canonical name of the header.
func (*ReferTo) CanonicName() Name { return "Refer-To" }

// CompactName returns the compact name of the header.
func (*ReferTo) CompactName() Name { return "r" }

// RenderTo writes the header to the provided writer.
func (hdr *ReferTo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *ReferTo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ReferTo) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return NameAddr(*hdr).String()
}

// String returns the header value.
func (hdr *ReferTo) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *ReferTo) Format(f fmt.State, verb rune) {
	type hideMethods ReferTo
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *ReferTo) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := ReferTo(NameAddr(*hdr).Clone())
	return &hdr2
}

// Equal reports whether val is an equal Refer-To header.
func (hdr *ReferTo) Equal(val any) bool {
	other, ok := cast[ReferTo](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return NameAddr(*hdr).Equal(NameAddr(*other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *ReferTo) IsValid() bool { return hdr != nil && NameAddr(*hdr).IsValid() }
