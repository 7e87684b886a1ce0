package header

import (
	"fmt"
	"io"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// SubscriptionState represents the Subscription-State header field (RFC 6665).
type SubscriptionState struct {
	State  string // active, pending, terminated or an extension
	Params Values
}

// CanonicName returns the canonical name of the header.
func (*SubscriptionState) CanonicName() Name { return "Subscription-State" }

// CompactName returns the compact name of the header, Subscription-State has no compact form.
func (*SubscriptionState) CompactName() Name { return "Subscription-State" }

// RenderTo writes the header with its name to w.
func (hdr *SubscriptionState) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *SubscriptionState) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *SubscriptionState) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return tokenWithParams(hdr.State, hdr.Params)
}

// String returns the header value.
func (hdr *SubscriptionState) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *SubscriptionState) Format(f fmt.State, verb rune) {
	type hideMethods SubscriptionState
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *SubscriptionState) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal reports whether val is an equal Subscription-State header.
func (hdr *SubscriptionState) Equal(val any) bool {
	other, ok := cast[SubscriptionState](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return util.EqFold(hdr.State, other.State) && equalHdrParams(hdr.Params, other.Params)
}

// IsValid reports whether the header is syntactically valid.
func (hdr *SubscriptionState) IsValid() bool {
	return hdr != nil && grammar.IsToken(hdr.State) && validHdrParams(hdr.Params)
}

// Reason returns the "reason" parameter of a terminated subscription.
func (hdr *SubscriptionState) Reason() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.Params.Last("reason")
}

// Expires returns the "expires" parameter.
func (hdr *SubscriptionState) Expires() (time.Duration, bool) {
	if hdr == nil {
		return 0, false
	}
	sec, ok := parseUintParam(hdr.Params, "expires", 32)
	return time.Duration(sec) * time.Second, ok
}

// RetryAfter returns the "retry-after" parameter.
func (hdr *SubscriptionState) RetryAfter() (time.Duration, bool) {
	if hdr == nil {
		return 0, false
	}
	sec, ok := parseUintParam(hdr.Params, "retry-after", 32)
	return time.Duration(sec) * time.Second, ok
}
