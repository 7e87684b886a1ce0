package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// ContentDisposition represents the Content-Disposition header field.
type ContentDisposition struct {
	Type   string // session, render, icon, alert...
	Params Values
}

// CanonicName returns the canonical name of the header.
func (*ContentDisposition) CanonicName() Name { return "Content-Disposition" }

// CompactName returns the compact name of the header, Content-Disposition has no compact form.
func (*ContentDisposition) CompactName() Name { return "Content-Disposition" }

// RenderTo writes the header with its name to w.
func (hdr *ContentDisposition) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *ContentDisposition) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *ContentDisposition) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return tokenWithParams(hdr.Type, hdr.Params)
}

// String returns the header value.
func (hdr *ContentDisposition) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *ContentDisposition) Format(f fmt.State, verb rune) {
	type hideMethods ContentDisposition
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *ContentDisposition) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal reports whether val is an equal Content-Disposition header.
func (hdr *ContentDisposition) Equal(val any) bool {
	other, ok := cast[ContentDisposition](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return util.EqFold(hdr.Type, other.Type) && equalHdrParams(hdr.Params, other.Params, "handling")
}

// IsValid reports whether the header is syntactically valid.
func (hdr *ContentDisposition) IsValid() bool {
	return hdr != nil && grammar.IsToken(hdr.Type) && validHdrParams(hdr.Params)
}

// Handling returns the lower-cased "handling" parameter, "required" or "optional".
func (hdr *ContentDisposition) Handling() (string, bool) {
	if hdr == nil {
		return "", false
	}
	v, ok := hdr.Params.Last("handling")
	return util.LCase(v), ok
}
