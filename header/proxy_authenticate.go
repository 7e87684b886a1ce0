package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ProxyAuthenticate represents the Proxy-Authenticate header field.
type ProxyAuthenticate WWWAuthenticate

// CanonicName returns the canonical name of the header.
func (*ProxyAuthenticate) CanonicName() Name { return "Proxy-Authenticate" }

// CompactName returns the compact name of the header, Proxy-Authenticate has no compact form.
func (*ProxyAuthenticate) CompactName() Name { return "Proxy-Authenticate" }

// RenderTo writes the header with its name to w.
func (hdr *ProxyAuthenticate) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *ProxyAuthenticate) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *ProxyAuthenticate) RenderValue() string { return (*WWWAuthenticate)(hdr).RenderValue() }

// String returns the header value.
func (hdr *ProxyAuthenticate) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *ProxyAuthenticate) Format(f fmt.State, verb rune) {
	type hideMethods ProxyAuthenticate
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *ProxyAuthenticate) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := ProxyAuthenticate(*(*WWWAuthenticate)(hdr).Clone().(*WWWAuthenticate))
	return &hdr2
}

// Equal reports whether val is an equal Proxy-Authenticate header.
func (hdr *ProxyAuthenticate) Equal(val any) bool {
	other, ok := cast[ProxyAuthenticate](val)
	if !ok {
		return false
	}
	return (*WWWAuthenticate)(hdr).Equal((*WWWAuthenticate)(other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *ProxyAuthenticate) IsValid() bool { return (*WWWAuthenticate)(hdr).IsValid() }

// Digest returns the challenge as a Digest one.
func (hdr *ProxyAuthenticate) Digest() (*DigestChallenge, bool) {
	return (*WWWAuthenticate)(hdr).Digest()
}
