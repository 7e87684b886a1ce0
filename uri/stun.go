package uri

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/sipparse/internal/ioutil"
	"github.com/ghettovoice/sipparse/internal/util"
)

// Default ports of STUN and TURN servers (RFC 5389, RFC 5766).
const (
	DefaultStunPort  uint16 = 3478
	DefaultStunsPort uint16 = 5349
)

// Stun represents a STUN or TURN server URI (RFC 7064, RFC 7065):
//
//	stun:host[:port]
//	stuns:host[:port]
//	turn:host[:port][?transport=udp|tcp]
//	turns:host[:port][?transport=tcp]
type Stun struct {
	Addr      Addr
	Transport TransportProto // turn and turns only
	Relay     bool           // turn / turns
	Secured   bool           // stuns / turns
}

// Scheme returns one of "stun", "stuns", "turn" or "turns".
func (u *Stun) Scheme() string {
	if u == nil {
		return ""
	}
	s := "stun"
	if u.Relay {
		s = "turn"
	}
	if u.Secured {
		s += "s"
	}
	return s
}

// Clone returns a copy of the URI.
func (u *Stun) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// Port returns the explicit port or the scheme default one.
func (u *Stun) Port() uint16 {
	if p, ok := u.Addr.Port(); ok {
		return p
	}
	if u.Secured {
		return DefaultStunsPort
	}
	return DefaultStunPort
}

// SRVName returns the DNS SRV owner name used to discover the server,
// e.g. "_turn._tcp.example.com." for "turn:example.com?transport=tcp".
// An empty string is returned for IP hosts, they are not resolved.
func (u *Stun) SRVName() string {
	if u == nil {
		return ""
	}
	fqdn := u.Addr.FQDN()
	if fqdn == "" {
		return ""
	}
	proto := "udp"
	switch {
	case u.Secured:
		proto = "tcp"
	case u.Relay && u.Transport != "":
		proto = util.LCase(string(u.Transport))
	}
	return dns.Fqdn("_" + u.Scheme() + "._" + proto + "." + fqdn)
}

// RenderTo writes the URI to the provided writer.
func (u *Stun) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(u.Scheme(), ":", u.Addr)
	if u.Relay && u.Transport != "" {
		cw.Fprint("?transport=", util.LCase(string(u.Transport)))
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the URI.
func (u *Stun) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the URI.
func (u *Stun) String() string { return u.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *Stun) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, u.String())
			return
		}
		type hideMethods Stun
		type Stun hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Stun)(u))
	}
}

// Equal compares this URI with another.
func (u *Stun) Equal(val any) bool {
	var other *Stun
	switch v := val.(type) {
	case Stun:
		other = &v
	case *Stun:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.Relay == other.Relay &&
		u.Secured == other.Secured &&
		u.Addr.Equal(other.Addr) &&
		u.Transport.Equal(other.Transport)
}

// IsValid checks whether the URI has a valid host and a transport allowed by its scheme.
func (u *Stun) IsValid() bool {
	if u == nil || !u.Addr.IsValid() {
		return false
	}
	if u.Transport == "" {
		return true
	}
	return u.Relay && u.Transport.IsValid()
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Stun) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
