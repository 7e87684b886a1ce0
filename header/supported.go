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

// Supported represents the Supported header field, it may be empty.
type Supported []string

// CanonicName returns the canonical name of the header.
func (Supported) CanonicName() Name { return "Supported" }

// CompactName returns the compact name of the header.
func (Supported) CompactName() Name { return "k" }

// RenderTo writes the header with its name to w.
func (hdr Supported) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Supported) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr Supported) RenderValue() string { return strings.Join(hdr, ", ") }

// String returns the header value.
func (hdr Supported) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Supported) Format(f fmt.State, verb rune) {
	type hideMethods Supported
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Supported) Clone() Header { return slices.Clone(hdr) }

// Equal compares option tags case-insensitively, the order matters.
func (hdr Supported) Equal(val any) bool {
	other, ok := cast[Supported](val)
	return ok && other != nil && slices.EqualFunc(hdr, *other, util.EqFold[string, string])
}

// Has reports whether the option tag is listed.
func (hdr Supported) Has(tag string) bool {
	return slices.ContainsFunc(hdr, func(t string) bool { return util.EqFold(t, tag) })
}

// IsValid reports whether the header is syntactically valid.
func (hdr Supported) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(t string) bool { return !grammar.IsToken(t) })
}
