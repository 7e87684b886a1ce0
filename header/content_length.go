package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
)

// ContentLength represents the Content-Length header field.
type ContentLength uint32

// CanonicName returns the canonical name of the header.
func (ContentLength) CanonicName() Name { return "Content-Length" }

// CompactName returns the compact name of the header.
func (ContentLength) CompactName() Name { return "l" }

// RenderTo writes the header with its name to w.
func (hdr ContentLength) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr ContentLength) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name.
func (hdr ContentLength) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the header value.
func (hdr ContentLength) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr ContentLength) Format(f fmt.State, verb rune) {
	type hideMethods ContentLength
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr ContentLength) Clone() Header { return hdr }

// Equal reports whether val is an equal Content-Length header.
func (hdr ContentLength) Equal(val any) bool {
	other, ok := cast[ContentLength](val)
	return ok && other != nil && hdr == *other
}

// IsValid reports whether the header is syntactically valid.
func (ContentLength) IsValid() bool { return true }
