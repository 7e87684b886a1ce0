package uri

//go:generate go tool errtrace -w .

import (
	"net/url"

	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/types"
)

// ErrInvalidURI is returned when a text can not be turned into a URI value.
const ErrInvalidURI errorutil.Error = "invalid URI"

// Addr represents a network address consisting of a host and optional port.
type Addr = types.Addr

// HostType classifies the host part of an [Addr].
type HostType = types.HostType

const (
	HostDomain = types.HostDomain
	HostIPv4   = types.HostIPv4
	HostIPv6   = types.HostIPv6
)

// Host creates an Addr from a hostname without a port.
func Host(host string) Addr { return types.Host(host) }

// HostPort creates an Addr from a hostname and port.
func HostPort(host string, port uint16) Addr { return types.HostPort(host, port) }

// Values represents URI parameters or headers as a multi-value map.
type Values = types.Values

// RenderOptions contains options for rendering URIs and headers.
type RenderOptions = types.RenderOptions

type TransportProto = types.TransportProto

type RequestMethod = types.RequestMethod

// URI represents a parsed URI (SIP, SIPS, STUN, TURN or any absolute URI).
type URI interface {
	types.Renderer
	types.Cloneable[URI]
	types.ValidFlag
	types.Equalable
	Scheme() string
}

// GetAddr returns the address part of the URI.
//
// SIP and STUN URIs return their Addr rendered as host[:port],
// Any URI returns the concatenated [net/url.URL.Host] and [net/url.URL.Path].
func GetAddr(u URI) string {
	switch u := u.(type) {
	case *SIP:
		if u != nil {
			return u.Addr.String()
		}
	case *Stun:
		if u != nil {
			return u.Addr.String()
		}
	case *Any:
		if u != nil {
			return u.Host + u.Path
		}
	}
	return ""
}

// GetParams returns the parameters of the URI.
// Any URI returns its query parsed into [Values], STUN URI returns the transport only.
func GetParams(u URI) Values {
	switch u := u.(type) {
	case *SIP:
		if u != nil {
			return u.Params
		}
	case *Stun:
		if u != nil && u.Transport != "" {
			return Values{"transport": {string(u.Transport)}}
		}
	case *Any:
		if u != nil {
			q, _ := url.ParseQuery(u.RawQuery)
			if len(q) == 0 {
				return nil
			}
			vals := make(Values, len(q))
			for k, vs := range q {
				for _, v := range vs {
					vals.Append(k, v)
				}
			}
			return vals
		}
	}
	return nil
}
