package header

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"net/textproto"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/ioutil"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
)

// Addr represents a network address consisting of a host and optional port.
type Addr = types.Addr

// Host creates an Addr from a hostname without a port.
func Host(host string) Addr { return types.Host(host) }

// HostPort creates an Addr from a hostname and port.
func HostPort(host string, port uint16) Addr { return types.HostPort(host, port) }

// Values represents header parameters as a multi-value map.
type Values = types.Values

// ProtoInfo represents SIP protocol information (name and version).
type ProtoInfo = types.ProtoInfo

// TransportProto represents a transport protocol (UDP, TCP, TLS, SCTP, WS, WSS).
type TransportProto = types.TransportProto

// RequestMethod represents a SIP request method (INVITE, ACK, BYE, etc.).
type RequestMethod = types.RequestMethod

// RenderOptions contains options for rendering headers and URIs.
type RenderOptions = types.RenderOptions

// Header represents a generic SIP header.
type Header interface {
	types.Renderer
	types.Cloneable[Header]
	types.ValidFlag
	types.Equalable
	CanonicName() Name
	CompactName() Name
	RenderValue() string
}

// Name represents a SIP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal compares this Name with another, compact and full forms are equal.
func (n Name) Equal(val any) bool {
	other, ok := cast[Name](val)
	return ok && other != nil && CanonicName(n) == CanonicName(*other)
}

var hdrNames = map[string]Name{
	"b":                "Referred-By",
	"c":                "Content-Type",
	"f":                "From",
	"i":                "Call-ID",
	"k":                "Supported",
	"l":                "Content-Length",
	"m":                "Contact",
	"o":                "Event",
	"r":                "Refer-To",
	"t":                "To",
	"v":                "Via",
	"x":                "Session-Expires",
	"Call-Id":          "Call-ID",
	"Cseq":             "CSeq",
	"Www-Authenticate": "WWW-Authenticate",
}

// CanonicName converts name to the canonical form.
// The first letter and any letter following a hyphen are upper-cased, the rest are lower-cased,
// so "content-type" becomes "Content-Type". Compact names are expanded, "v" becomes "Via".
func CanonicName[T ~string](name T) Name {
	s := util.TrimSP(string(name))
	if n, ok := hdrNames[util.LCase(s)]; ok && len(s) == 1 {
		return n
	}
	s = textproto.CanonicalMIMEHeaderKey(s)
	if n, ok := hdrNames[s]; ok {
		return n
	}
	return Name(s)
}

// cast extracts a T from a value given either as T or *T.
func cast[T any](val any) (*T, bool) {
	switch v := val.(type) {
	case T:
		return &v, true
	case *T:
		return v, true
	}
	return nil, false
}

func hdrName(hdr Header, opts *RenderOptions) Name {
	if opts != nil && opts.Compact {
		return hdr.CompactName()
	}
	return hdr.CanonicName()
}

// renderHdr writes "Name: value" of a non-nil header.
func renderHdr(w io.Writer, hdr Header, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(fmt.Fprint(w, hdrName(hdr, opts), ": ", hdr.RenderValue()))
}

func renderHdrString(hdr Header, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdr(sb, hdr, opts) //nolint:errcheck
	return sb.String()
}

// formatHdr implements fmt.Formatter for headers.
// The "%+s" verb renders the header with its name, raw is printed for verbs other than s and q.
func formatHdr(f fmt.State, verb rune, hdr Header, raw any) {
	switch verb {
	case 's':
		if f.Flag('+') {
			hdr.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, hdr.RenderValue())
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render(nil)))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.RenderValue()))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), raw)
	}
}

func renderHdrEntries[E any](w io.Writer, entries []E, sep string) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i := range entries {
		if i > 0 {
			cw.Fprint(sep)
		}
		cw.Fprint(entries[i])
	}
	return errtrace.Wrap2(cw.Result())
}

// renderHdrParams writes params as ";name=value" pairs in alphabetical order.
// If qFirst is set, the "q" parameter goes first (RFC 3261 Section 20.10).
func renderHdrParams(w io.Writer, params Values, qFirst bool) (num int, err error) {
	keys := params.Keys()
	if qFirst {
		if i := slices.Index(keys, "q"); i > 0 {
			keys = append([]string{"q"}, slices.Delete(keys, i, i+1)...)
		}
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, k := range keys {
		v, _ := params.Last(k)
		cw.Fprint(";", k)
		if v != "" {
			cw.Fprint("=", v)
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// equalHdrParams compares header parameters.
// A parameter present in both lists must match, the special ones must be present in both.
// Quoted values are compared case-sensitively.
func equalHdrParams(ps1, ps2 Values, special ...string) bool {
	for _, k := range special {
		if ps1.Has(k) != ps2.Has(k) {
			return false
		}
	}
	for k := range ps1 {
		if !ps2.Has(k) {
			continue
		}
		v1, _ := ps1.Last(k)
		v2, _ := ps2.Last(k)
		if grammar.IsQuoted(v1) || grammar.IsQuoted(v2) {
			if v1 != v2 {
				return false
			}
		} else if !util.EqFold(v1, v2) {
			return false
		}
	}
	return true
}

func validHdrParams(params Values) bool {
	for k, vs := range params {
		if !grammar.IsToken(k) {
			return false
		}
		for _, v := range vs {
			if v != "" && !grammar.IsGenValue(v) {
				return false
			}
		}
	}
	return true
}

func cloneHdrEntries[H ~[]E, E interface{ Clone() E }](hdr H) H {
	if hdr == nil {
		return nil
	}
	hdr2 := make(H, len(hdr))
	for i := range hdr {
		hdr2[i] = hdr[i].Clone()
	}
	return hdr2
}

func equalHdrEntries[E interface{ Equal(val any) bool }](es1, es2 []E) bool {
	return slices.EqualFunc(es1, es2, func(e1, e2 E) bool { return e1.Equal(e2) })
}

func validHdrEntries[E types.ValidFlag](es []E) bool {
	return !slices.ContainsFunc(es, func(e E) bool { return !e.IsValid() })
}

func parseUintParam(params Values, name string, bits int) (uint64, bool) {
	v, ok := params.Last(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, bits)
	return n, err == nil
}
