package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// MIMEType is a media type with parameters, like "application/sdp;charset=utf-8".
type MIMEType struct {
	Type    string
	Subtype string
	Params  Values
}

// String returns the media type text.
func (mt MIMEType) String() string {
	return tokenWithParams(mt.Type+"/"+mt.Subtype, mt.Params)
}

// Format implements [fmt.Formatter].
func (mt MIMEType) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, mt.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(mt.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, mt.String())
			return
		}
		type hideMethods MIMEType
		type MIMEType hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), MIMEType(mt))
	}
}

// Equal compares media types case-insensitively, the charset parameter must be present in both.
func (mt MIMEType) Equal(val any) bool {
	other, ok := cast[MIMEType](val)
	if !ok || other == nil {
		return false
	}
	return util.EqFold(mt.Type, other.Type) &&
		util.EqFold(mt.Subtype, other.Subtype) &&
		equalHdrParams(mt.Params, other.Params, "charset")
}

// IsValid reports whether the media type is syntactically valid.
func (mt MIMEType) IsValid() bool {
	return grammar.IsToken(mt.Type) && grammar.IsToken(mt.Subtype) && validHdrParams(mt.Params)
}

// IsZero reports whether the media type is empty.
func (mt MIMEType) IsZero() bool { return mt.Type == "" && mt.Subtype == "" && len(mt.Params) == 0 }

// Clone returns a deep copy of the media type.
func (mt MIMEType) Clone() MIMEType {
	mt.Params = mt.Params.Clone()
	return mt
}

// ContentType represents the Content-Type header field.
type ContentType MIMEType

// CanonicName returns the canonical name of the header.
func (*ContentType) CanonicName() Name { return "Content-Type" }

// CompactName returns the compact name of the header.
func (*ContentType) CompactName() Name { return "c" }

// RenderTo writes the header with its name to w.
func (hdr *ContentType) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *ContentType) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *ContentType) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return MIMEType(*hdr).String()
}

// String returns the header value.
func (hdr *ContentType) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *ContentType) Format(f fmt.State, verb rune) {
	type hideMethods ContentType
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *ContentType) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := ContentType(MIMEType(*hdr).Clone())
	return &hdr2
}

// Equal reports whether val is an equal Content-Type header.
func (hdr *ContentType) Equal(val any) bool {
	other, ok := cast[ContentType](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return MIMEType(*hdr).Equal(MIMEType(*other))
}

// IsValid reports whether the header is syntactically valid.
func (hdr *ContentType) IsValid() bool { return hdr != nil && MIMEType(*hdr).IsValid() }

// tokenWithParams renders "tok;name=value..." with parameters in alphabetical order.
func tokenWithParams(tok string, params Values) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(tok)
	renderHdrParams(sb, params, false) //nolint:errcheck
	return sb.String()
}
