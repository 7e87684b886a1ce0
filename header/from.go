package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// From represents the From header field, the logical initiator of the request.
type From NameAddr

// CanonicName returns the canonical name of the header.
func (*From) CanonicName() Name { return "From" }

// CompactName returns the compact name of the header.
func (*From) CompactName() Name { return "f" }

// RenderTo writes the header to the provided writer.
func (hdr *From) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *From) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *From) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return NameAddr(*hdr).String()
}

// String returns the header value.
func (hdr *From) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *From) Format(f fmt.State, verb rune) {
	type hideMethods From
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *From) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := From(NameAddr(*hdr).Clone())
	return &hdr2
}

// Equal reports whether val is an equal From header.
func (hdr *From) Equal(val any) bool {
	other, ok := cast[From](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return NameAddr(*hdr).Equal(NameAddr(*other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *From) IsValid() bool { return hdr != nil && NameAddr(*hdr).IsValid() }

// Tag returns the tag parameter.
func (hdr *From) Tag() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return NameAddr(*hdr).Tag()
}
