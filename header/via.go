package header

import (
	"fmt"
	"io"
	"net/netip"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/util"
)

// Via represents the Via header field, the path taken by the request so far.
type Via []ViaHop

// CanonicName returns the canonical name of the header.
func (Via) CanonicName() Name { return "Via" }

// CompactName returns the compact name of the header.
func (Via) CompactName() Name { return "v" }

// RenderTo writes the header to the provided writer.
func (hdr Via) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr Via) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the comma-separated hops.
func (hdr Via) RenderValue() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderHdrEntries(sb, hdr, ", ") //nolint:errcheck
	return sb.String()
}

// String returns the header value.
func (hdr Via) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr Via) Format(f fmt.State, verb rune) {
	type hideMethods Via
	formatHdr(f, verb, hdr, hideMethods(hdr))
}

// Clone returns a deep copy of the header.
func (hdr Via) Clone() Header { return cloneHdrEntries(hdr) }

// Equal reports whether val is an equal Via header.
func (hdr Via) Equal(val any) bool {
	other, ok := cast[Via](val)
	return ok && other != nil && equalHdrEntries(hdr, *other)
}

// IsValid reports whether the header is syntactically valid.
func (hdr Via) IsValid() bool { return len(hdr) > 0 && validHdrEntries(hdr) }

// ViaHop is a single via-parm: sent-protocol, sent-by and parameters.
type ViaHop struct {
	Proto     ProtoInfo
	Transport TransportProto
	Addr      Addr
	Params    Values
}

// String returns the hop text.
func (hop ViaHop) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	fmt.Fprint(sb, hop.Proto, "/", hop.Transport, " ", hop.Addr)
	renderHdrParams(sb, hop.Params, false) //nolint:errcheck
	return sb.String()
}

// Format implements [fmt.Formatter].
func (hop ViaHop) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, hop.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(hop.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, hop.String())
			return
		}
		type hideMethods ViaHop
		type ViaHop hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), ViaHop(hop))
	}
}

// Equal compares hops, the maddr, ttl, received, rport and branch parameters must be present in both.
func (hop ViaHop) Equal(val any) bool {
	other, ok := cast[ViaHop](val)
	if !ok || other == nil {
		return false
	}
	return hop.Proto.Equal(other.Proto) &&
		hop.Transport.Equal(other.Transport) &&
		hop.Addr.Equal(other.Addr) &&
		equalHdrParams(hop.Params, other.Params, "branch", "maddr", "received", "rport", "ttl")
}

// IsValid checks the hop fields, "received" may hold a bare IPv6 address (RFC 5118).
func (hop ViaHop) IsValid() bool {
	if !hop.Proto.IsValid() || !hop.Transport.IsValid() || !hop.Addr.IsValid() {
		return false
	}
	if hop.Params.Has("received") {
		if _, ok := hop.Received(); !ok {
			return false
		}
		params := hop.Params.Clone().Del("received")
		return validHdrParams(params)
	}
	return validHdrParams(hop.Params)
}

// IsZero reports whether the hop is empty.
func (hop ViaHop) IsZero() bool {
	return hop.Proto == ProtoInfo{} && hop.Transport == "" && hop.Addr.IsZero() && len(hop.Params) == 0
}

// Clone returns a deep copy of the hop.
func (hop ViaHop) Clone() ViaHop {
	hop.Params = hop.Params.Clone()
	return hop
}

// MarshalText implements [encoding.TextMarshaler].
func (hop ViaHop) MarshalText() ([]byte, error) {
	return []byte(hop.String()), nil
}

// Branch returns the branch parameter.
func (hop ViaHop) Branch() (string, bool) { return hop.Params.Last("branch") }

// Received returns the "received" parameter as an IP address.
func (hop ViaHop) Received() (netip.Addr, bool) {
	v, ok := hop.Params.Last("received")
	if !ok {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(v)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

// RPort returns the "rport" parameter (RFC 3581), the flag without a value yields zero port.
func (hop ViaHop) RPort() (uint16, bool) {
	v, ok := hop.Params.Last("rport")
	if !ok {
		return 0, false
	}
	if v == "" {
		return 0, true
	}
	port, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(port), true
}

// MAddr returns the maddr parameter.
func (hop ViaHop) MAddr() (string, bool) { return hop.Params.Last("maddr") }

// TTL returns the ttl parameter.
func (hop ViaHop) TTL() (uint8, bool) {
	ttl, ok := parseUintParam(hop.Params, "ttl", 8)
	return uint8(ttl), ok
}
