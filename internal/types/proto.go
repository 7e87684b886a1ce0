package types

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/util"
)

// ProtoInfo is a protocol name and version, like SIP/2.0.
type ProtoInfo struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

func (p ProtoInfo) String() string { return p.Name + "/" + p.Version }

func (p ProtoInfo) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, p.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
	default:
		type hideMethods ProtoInfo
		type ProtoInfo hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), ProtoInfo(p))
	}
}

func (p ProtoInfo) Equal(val any) bool {
	var other ProtoInfo
	switch v := val.(type) {
	case ProtoInfo:
		other = v
	case *ProtoInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(p.Name, other.Name) && util.EqFold(p.Version, other.Version)
}

func (p ProtoInfo) IsValid() bool { return grammar.IsToken(p.Name) && grammar.IsToken(p.Version) }

// ProtoVer20 returns SIP/2.0 protocol info.
func ProtoVer20() ProtoInfo { return ProtoInfo{Name: "SIP", Version: "2.0"} }

// TransportProto is a Via transport token (UDP, TCP, TLS, SCTP, WS, WSS...).
type TransportProto string

func (p TransportProto) IsValid() bool { return grammar.IsToken(p) }

func (p TransportProto) Equal(val any) bool {
	return equalFold(p, val)
}

const (
	RequestMethodAck       RequestMethod = "ACK"
	RequestMethodBye       RequestMethod = "BYE"
	RequestMethodCancel    RequestMethod = "CANCEL"
	RequestMethodInfo      RequestMethod = "INFO"
	RequestMethodInvite    RequestMethod = "INVITE"
	RequestMethodMessage   RequestMethod = "MESSAGE"
	RequestMethodNotify    RequestMethod = "NOTIFY"
	RequestMethodOptions   RequestMethod = "OPTIONS"
	RequestMethodPrack     RequestMethod = "PRACK"
	RequestMethodPublish   RequestMethod = "PUBLISH"
	RequestMethodRefer     RequestMethod = "REFER"
	RequestMethodRegister  RequestMethod = "REGISTER"
	RequestMethodSubscribe RequestMethod = "SUBSCRIBE"
	RequestMethodUpdate    RequestMethod = "UPDATE"
)

// RequestMethod is a SIP method token. Methods are case-sensitive on the wire,
// but compared case-insensitively here as the parsers of other stacks do.
type RequestMethod string

func (m RequestMethod) ToUpper() RequestMethod { return util.UCase(m) }

func (m RequestMethod) IsValid() bool { return grammar.IsToken(m) }

func (m RequestMethod) Equal(val any) bool {
	return equalFold(m, val)
}

func equalFold[T ~string](s T, val any) bool {
	var other T
	switch v := val.(type) {
	case T:
		other = v
	case *T:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(s, other)
}
