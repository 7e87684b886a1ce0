package header

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// Require represents the Require header field, option tags the UAS must support.
type Require []string

// CanonicName returns the canonical name of the header.
func (Require) CanonicName() Name { return "Require" }

// CompactName returns the compact name of the header, Require has no compact form.
func (Require) CompactName() Name { return "Require" }

// RenderTo writes the header with its name to w.
func (hdr Require) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Require) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr Require) RenderValue() string { return strings.Join(hdr, ", ") }

// String returns the header value.
func (hdr Require) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Require) Format(f fmt.State, verb rune) {
	type hideMethods Require
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Require) Clone() Header { return slices.Clone(hdr) }

// Equal compares option tags case-insensitively, the order matters.
func (hdr Require) Equal(val any) bool {
	other, ok := cast[Require](val)
	return ok && other != nil && slices.EqualFunc(hdr, *other, util.EqFold[string, string])
}

// Has reports whether the option tag is listed.
func (hdr Require) Has(tag string) bool {
	return slices.ContainsFunc(hdr, func(t string) bool { return util.EqFold(t, tag) })
}

// IsValid reports whether the header is syntactically valid.
func (hdr Require) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(t string) bool { return !grammar.IsToken(t) })
}
