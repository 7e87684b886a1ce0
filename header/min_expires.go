package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// MinExpires represents the Min-Expires header field, the minimum refresh interval of a registrar.
type MinExpires Expires

// CanonicName returns the canonical name of the header.
func (*MinExpires) CanonicName() Name { return "Min-Expires" }

// CompactName returns the compact name of the header, Min-Expires has no compact form.
func (*MinExpires) CompactName() Name { return "Min-Expires" }

// RenderTo writes the header with its name to w.
func (hdr *MinExpires) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *MinExpires) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *MinExpires) RenderValue() string { return (*Expires)(hdr).RenderValue() }

// String returns the header value.
func (hdr *MinExpires) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *MinExpires) Format(f fmt.State, verb rune) {
	type hideMethods MinExpires
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *MinExpires) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal reports whether val is an equal Min-Expires header.
func (hdr *MinExpires) Equal(val any) bool {
	other, ok := cast[MinExpires](val)
	if !ok {
		return false
	}
	return (*Expires)(hdr).Equal((*Expires)(other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *MinExpires) IsValid() bool { return (*Expires)(hdr).IsValid() }
