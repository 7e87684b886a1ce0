package types

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/sipparse/internal/constraints"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// HostType classifies the host part of an address.
type HostType string

const (
	HostDomain HostType = "domain"
	HostIPv4   HostType = "IPv4"
	HostIPv6   HostType = "IPv6"
)

// Addr is a container for host and optional port.
type Addr struct {
	host    string
	ip      net.IP
	port    uint16
	hasPort bool
}

func newAddr(host string) Addr {
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	ip := net.ParseIP(host)
	if v := ip.To4(); v != nil && !strings.Contains(host, ":") {
		ip = v
	}
	return Addr{host: host, ip: ip}
}

// Host returns an [Addr] containing the provided host and no port.
// IPv6 hosts may be given with or without brackets.
func Host(host string) Addr { return newAddr(host) }

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port uint16) Addr {
	addr := newAddr(host)
	addr.port = port
	addr.hasPort = true
	return addr
}

// ErrInvalidAddr is returned by [ParseAddr] on malformed input.
const ErrInvalidAddr errorutil.Error = "invalid address"

// ParseAddr parses a "host[:port]" string into an [Addr].
func ParseAddr[T constraints.Byteseq](s T) (Addr, error) {
	host, port, ok := grammar.SplitHostport(string(s))
	if !ok {
		return Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddr, "%q", string(s)))
	}
	if port == "" {
		return Host(host), nil
	}
	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddr, "port %s out of range", port))
	}
	return HostPort(host, uint16(p)), nil
}

// Host returns the host without IPv6 brackets.
func (addr Addr) Host() string { return addr.host }

// IP returns the parsed IP representation when the host is an IP literal, otherwise nil.
func (addr Addr) IP() net.IP { return addr.ip }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.hasPort }

// HostType classifies the host. It returns an empty type when the host is
// neither an IP literal nor a valid DNS name.
func (addr Addr) HostType() HostType {
	switch {
	case addr.ip == nil:
		if _, ok := dns.IsDomainName(addr.host); ok && addr.host != "" {
			return HostDomain
		}
		return ""
	case len(addr.ip) == net.IPv4len:
		return HostIPv4
	default:
		return HostIPv6
	}
}

// FQDN returns the host as a fully qualified domain name, or an empty string for IP hosts.
func (addr Addr) FQDN() string {
	if addr.HostType() != HostDomain {
		return ""
	}
	return dns.Fqdn(util.LCase(addr.host))
}

// HostString returns the host as written in SIP text, with brackets for IPv6.
func (addr Addr) HostString() string {
	if addr.HostType() == HostIPv6 {
		return "[" + addr.host + "]"
	}
	return addr.host
}

// String formats the address as host[:port].
func (addr Addr) String() string {
	if !addr.hasPort {
		return addr.HostString()
	}
	return addr.HostString() + ":" + strconv.Itoa(int(addr.port))
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (addr Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, addr.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, addr.String())
			return
		}

		type hideMethods Addr
		type Addr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(addr))
		return
	}
}

// Equal reports whether the address equals the provided value, accepting Addr and *Addr.
// Domain names are compared case-insensitively, IP literals by value.
func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	var hostMatch bool
	switch {
	case addr.ip == nil && other.ip == nil:
		hostMatch = util.EqFold(addr.host, other.host)
	case addr.ip != nil && other.ip != nil:
		hostMatch = addr.ip.Equal(other.ip)
	default:
		return false
	}
	return hostMatch && addr.port == other.port && addr.hasPort == other.hasPort
}

// IsValid reports whether the address contains a syntactically valid host.
func (addr Addr) IsValid() bool {
	return addr.ip != nil || grammar.IsHost(addr.host)
}

// IsZero reports whether the address has zero host, IP and port information.
func (addr Addr) IsZero() bool { return addr.host == "" && addr.ip == nil && !addr.hasPort }
