package header

import (
	"fmt"
	"io"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/util"
)

// SessionExpires represents the Session-Expires header field (RFC 4028).
type SessionExpires struct {
	Delta  time.Duration
	Params Values
}

// CanonicName returns the canonical name of the header.
func (*SessionExpires) CanonicName() Name { return "Session-Expires" }

// CompactName returns the compact name of the header.
func (*SessionExpires) CompactName() Name { return "x" }

// RenderTo writes the header with its name to w.
func (hdr *SessionExpires) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *SessionExpires) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *SessionExpires) RenderValue() string {
	if hdr == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(renderSeconds(hdr.Delta))
	renderHdrParams(sb, hdr.Params, false) //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr *SessionExpires) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *SessionExpires) Format(f fmt.State, verb rune) {
	type hideMethods SessionExpires
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *SessionExpires) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal reports whether val is an equal Session-Expires header.
func (hdr *SessionExpires) Equal(val any) bool {
	other, ok := cast[SessionExpires](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return hdr.Delta == other.Delta && equalHdrParams(hdr.Params, other.Params, "refresher")
}

// IsValid checks the delta is positive and the refresher, when present, is "uac" or "uas".
func (hdr *SessionExpires) IsValid() bool {
	if hdr == nil || hdr.Delta < time.Second || !validHdrParams(hdr.Params) {
		return false
	}
	r, ok := hdr.Refresher()
	return !ok || r == "uac" || r == "uas"
}

// Refresher returns the lower-cased "refresher" parameter.
func (hdr *SessionExpires) Refresher() (string, bool) {
	if hdr == nil {
		return "", false
	}
	r, ok := hdr.Params.Last("refresher")
	return util.LCase(r), ok
}
