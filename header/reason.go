package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// Reason represents the Reason header field (RFC 3326).
type Reason []ReasonValue

// CanonicName returns the canonical name of the header.
func (Reason) CanonicName() Name { return "Reason" }

// CompactName returns the compact name of the header, Reason has no compact form.
func (Reason) CompactName() Name { return "Reason" }

// RenderTo writes the header with its name to w.
func (hdr Reason) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Reason) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr Reason) RenderValue() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdrEntries(sb, hdr, ", ") //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr Reason) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Reason) Format(f fmt.State, verb rune) {
	type hideMethods Reason
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Reason) Clone() Header { return cloneHdrEntries(hdr) }

// Equal reports whether val is an equal Reason header.
func (hdr Reason) Equal(val any) bool {
	other, ok := cast[Reason](val)
	return ok && other != nil && equalHdrEntries(hdr, *other)
}

// IsValid reports whether the header is syntactically valid.
func (hdr Reason) IsValid() bool { return len(hdr) > 0 && validHdrEntries(hdr) }

// ReasonValue is a single protocol reason, like `SIP ;cause=200 ;text="Call completed elsewhere"`.
type ReasonValue struct {
	Protocol string // SIP, Q.850 or an extension token
	Params   Values
}

// String returns the reason value text.
func (rv ReasonValue) String() string { return tokenWithParams(rv.Protocol, rv.Params) }

// Format implements [fmt.Formatter].
func (rv ReasonValue) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, rv.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(rv.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, rv.String())
			return
		}
		type hideMethods ReasonValue
		type ReasonValue hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), ReasonValue(rv))
	}
}

// Equal reports whether val is an equal reason value.
func (rv ReasonValue) Equal(val any) bool {
	other, ok := cast[ReasonValue](val)
	return ok && other != nil &&
		util.EqFold(rv.Protocol, other.Protocol) &&
		equalHdrParams(rv.Params, other.Params, "cause")
}

// IsValid reports whether the protocol is a token and the parameters are well-formed.
func (rv ReasonValue) IsValid() bool { return grammar.IsToken(rv.Protocol) && validHdrParams(rv.Params) }

// Clone returns a deep copy of the reason value.
func (rv ReasonValue) Clone() ReasonValue {
	rv.Params = rv.Params.Clone()
	return rv
}

// Cause returns the "cause" parameter, a SIP status code or a Q.850 cause value.
func (rv ReasonValue) Cause() (uint16, bool) {
	c, ok := parseUintParam(rv.Params, "cause", 16)
	return uint16(c), ok
}

// Text returns the unquoted "text" parameter.
func (rv ReasonValue) Text() (string, bool) {
	v, ok := rv.Params.Last("text")
	return grammar.Unquote(v), ok
}
