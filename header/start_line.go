package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/ioutil"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
	"github.com/ghettovoice/sipparse/uri"
)

// RequestLine is the first line of a SIP request without the trailing CRLF.
type RequestLine struct {
	Method RequestMethod
	URI    uri.URI
	Proto  ProtoInfo
}

// RenderTo writes the Request-Line to w.
func (ln *RequestLine) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if ln == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(ln.Method, " ")
	if ln.URI != nil {
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(ln.URI.RenderTo(w, opts)) })
	}
	cw.Fprint(" ", ln.Proto)
	return errtrace.Wrap2(cw.Result())
}

// Render returns the Request-Line text.
func (ln *RequestLine) Render(opts *RenderOptions) string {
	if ln == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ln.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the Request-Line text.
func (ln *RequestLine) String() string { return ln.Render(nil) }

// Format implements [fmt.Formatter].
func (ln *RequestLine) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, ln.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(ln.String()))
	default:
		type hideMethods RequestLine
		type RequestLine hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*RequestLine)(ln))
	}
}

// Clone returns a deep copy of the Request-Line.
func (ln *RequestLine) Clone() *RequestLine {
	if ln == nil {
		return nil
	}
	ln2 := *ln
	if ln.URI != nil {
		ln2.URI = ln.URI.Clone()
	}
	return &ln2
}

// Equal compares methods case-sensitively, URIs by their own rules.
func (ln *RequestLine) Equal(val any) bool {
	other, ok := cast[RequestLine](val)
	if !ok {
		return false
	}
	if ln == nil || other == nil {
		return ln == other
	}
	return ln.Method == other.Method &&
		types.IsEqual(ln.URI, other.URI) &&
		ln.Proto.Equal(other.Proto)
}

// IsValid reports whether the Request-Line is syntactically valid.
func (ln *RequestLine) IsValid() bool {
	return ln != nil && ln.Method.IsValid() && types.IsValid(ln.URI) && ln.Proto.IsValid()
}

// StatusLine is the first line of a SIP response without the trailing CRLF.
type StatusLine struct {
	Proto  ProtoInfo
	Code   uint16
	Reason string
}

// RenderTo writes the Status-Line to w.
func (ln *StatusLine) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if ln == nil {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprintf(w, "%s %03d %s", ln.Proto, ln.Code, ln.Reason))
}

// Render returns the Status-Line text.
func (ln *StatusLine) Render(opts *RenderOptions) string {
	if ln == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ln.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the Status-Line text.
func (ln *StatusLine) String() string { return ln.Render(nil) }

// Format implements [fmt.Formatter].
func (ln *StatusLine) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, ln.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(ln.String()))
	default:
		type hideMethods StatusLine
		type StatusLine hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*StatusLine)(ln))
	}
}

// Clone returns a deep copy of the Status-Line.
func (ln *StatusLine) Clone() *StatusLine {
	if ln == nil {
		return nil
	}
	ln2 := *ln
	return &ln2
}

// Equal reports whether val is an equal Status-Line.
func (ln *StatusLine) Equal(val any) bool {
	other, ok := cast[StatusLine](val)
	if !ok {
		return false
	}
	if ln == nil || other == nil {
		return ln == other
	}
	return ln.Proto.Equal(other.Proto) && ln.Code == other.Code && ln.Reason == other.Reason
}

// IsValid checks the status code is a three-digit code.
func (ln *StatusLine) IsValid() bool {
	return ln != nil && ln.Proto.IsValid() && ln.Code >= 100 && ln.Code <= 999
}

// IsProvisional reports whether the status code is 1xx.
func (ln *StatusLine) IsProvisional() bool { return ln != nil && ln.Code < 200 }
