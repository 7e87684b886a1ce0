package header

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"
)

// Expires represents the Expires header field, a relative time in seconds.
type Expires struct {
	time.Duration
}

// CanonicName returns the canonical name of the header.
func (*Expires) CanonicName() Name { return "Expires" }

// CompactName returns the compact name of the header, Expires has no compact form.
func (*Expires) CompactName() Name { return "Expires" }

// RenderTo writes the header with its name to w.
func (hdr *Expires) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *Expires) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the delta in whole seconds.
func (hdr *Expires) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderSeconds(hdr.Duration)
}

// String returns the header value.
func (hdr *Expires) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *Expires) Format(f fmt.State, verb rune) {
	type hideMethods Expires
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *Expires) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal reports whether val is an equal Expires header.
func (hdr *Expires) Equal(val any) bool {
	other, ok := cast[Expires](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return hdr.Duration == other.Duration
}

// IsValid reports whether the header is syntactically valid.
func (hdr *Expires) IsValid() bool { return hdr != nil && hdr.Duration >= 0 }

func renderSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}
