package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
)

// ReferredBy represents the Referred-By header field (RFC 3892).
type ReferredBy NameAddr

// CanonicName returns the canonical name of the header.
func (*ReferredBy) CanonicName() Name { return "Referred-By" }

// CompactName returns the compact name of the header.
func (*ReferredBy) CompactName() Name { return "b" }

// RenderTo writes the header to the provided writer.
func (hdr *ReferredBy) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *ReferredBy) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ReferredBy) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return NameAddr(*hdr).String()
}

// String returns the header value.
func (hdr *ReferredBy) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *ReferredBy) Format(f fmt.State, verb rune) {
	type hideMethods ReferredBy
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *ReferredBy) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := ReferredBy(NameAddr(*hdr).Clone())
	return &hdr2
}

// Equal reports whether val is an equal Referred-By header.
func (hdr *ReferredBy) Equal(val any) bool {
	other, ok := cast[ReferredBy](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return NameAddr(*hdr).Equal(NameAddr(*other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *ReferredBy) IsValid() bool { return hdr != nil && NameAddr(*hdr).IsValid() }

// CID returns the "cid" parameter referencing the Referred-By token body part.
func (hdr *ReferredBy) CID() (string, bool) {
	if hdr == nil {
		return "", false
	}
	v, ok := hdr.Params.Last("cid")
	if !ok {
		return "", false
	}
	return grammar.Unquote(v), true
}
