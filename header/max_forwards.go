package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
)

// MaxForwards represents the Max-Forwards header field, it never exceeds 255.
type MaxForwards uint8

// CanonicName returns the canonical name of the header.
func (MaxForwards) CanonicName() Name { return "Max-Forwards" }

// CompactName returns the compact name of the header, Max-Forwards has no compact form.
func (MaxForwards) CompactName() Name { return "Max-Forwards" }

// RenderTo writes the header with its name to w.
func (hdr MaxForwards) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr MaxForwards) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name.
func (hdr MaxForwards) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the header value.
func (hdr MaxForwards) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr MaxForwards) Format(f fmt.State, verb rune) {
	type hideMethods MaxForwards
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr MaxForwards) Clone() Header { return hdr }

// Equal reports whether val is an equal Max-Forwards header.
func (hdr MaxForwards) Equal(val any) bool {
	other, ok := cast[MaxForwards](val)
	return ok && other != nil && hdr == *other
}

// IsValid reports whether the header is syntactically valid.
func (MaxForwards) IsValid() bool { return true }
