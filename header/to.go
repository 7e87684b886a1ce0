package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// To represents the To header field, the logical recipient of the request.
type To NameAddr

// CanonicName returns the canonical name of the header.
func (*To) CanonicName() Name { return "To" }

// CompactName returns the compact name of the header.
func (*To) CompactName() Name { return "t" }

// RenderTo writes the header to the provided writer.
func (hdr *To) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *To) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *To) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return NameAddr(*hdr).String()
}

// String returns the header value.
func (hdr *To) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *To) Format(f fmt.State, verb rune) {
	type hideMethods To
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *To) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := To(NameAddr(*hdr).Clone())
	return &hdr2
}

// Equal reports whether val is an equal To header.
func (hdr *To) Equal(val any) bool {
	other, ok := cast[To](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return NameAddr(*hdr).Equal(NameAddr(*other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *To) IsValid() bool { return hdr != nil && NameAddr(*hdr).IsValid() }

// Tag returns the tag parameter.
func (hdr *To) Tag() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return NameAddr(*hdr).Tag()
}
