package grammar

import (
	"net/netip"
	"strings"

	"github.com/ghettovoice/sipparse/internal/constraints"
	"github.com/ghettovoice/sipparse/internal/peg"
)

var lexical = peg.Compile(Rules()...)

func matches[T constraints.Byteseq](rule string, s T) bool {
	return len(s) > 0 && lexical.Match(string(s), rule)
}

// IsToken reports whether s is a token.
func IsToken[T constraints.Byteseq](s T) bool { return matches("token", s) }

// IsWord reports whether s is a word.
func IsWord[T constraints.Byteseq](s T) bool { return matches("word", s) }

// IsCallID reports whether s is a Call-ID value.
func IsCallID[T constraints.Byteseq](s T) bool { return matches("callid", s) }

// IsQuoted reports whether s is a quoted-string.
func IsQuoted[T constraints.Byteseq](s T) bool { return matches("quoted-string", s) }

// IsHost reports whether s is a host name, an IPv4 address or a bracketed IPv6 address.
func IsHost[T constraints.Byteseq](s T) bool {
	if !matches("host", s) {
		return false
	}
	if s[0] == '[' {
		return IsIPv6(string(s[1 : len(s)-1]))
	}
	return true
}

// IsIPv6 reports whether s is an IPv6 address without brackets.
func IsIPv6(s string) bool {
	ip, err := netip.ParseAddr(s)
	return err == nil && ip.Is6() && ip.Zone() == ""
}

// IsUsername reports whether s is an URI user part. Escaped sequences are allowed.
func IsUsername[T constraints.Byteseq](s T) bool { return matches("user", s) }

// IsPassword reports whether s is an URI password part.
func IsPassword[T constraints.Byteseq](s T) bool { return len(s) == 0 || matches("password", s) }

// IsURIParamName reports whether s is an URI parameter name.
func IsURIParamName[T constraints.Byteseq](s T) bool { return matches("pname", s) }

// IsURIParamValue reports whether s is an URI parameter value.
func IsURIParamValue[T constraints.Byteseq](s T) bool { return matches("pvalue", s) }

// IsURIHeaderName reports whether s is an URI header name.
func IsURIHeaderName[T constraints.Byteseq](s T) bool { return matches("hname", s) }

// IsURIHeaderValue reports whether s is an URI header value.
func IsURIHeaderValue[T constraints.Byteseq](s T) bool { return len(s) == 0 || matches("hvalue", s) }

// IsDisplayName reports whether s is a display-name.
func IsDisplayName[T constraints.Byteseq](s T) bool { return matches("display-name", s) }

// IsGenValue reports whether s is a generic parameter value.
func IsGenValue[T constraints.Byteseq](s T) bool {
	if !matches("gen-value", s) {
		return false
	}
	if s[0] == '[' {
		return IsHost(s)
	}
	return true
}

// SplitHostport splits a hostport into the host and port parts.
// The host keeps IPv6 brackets. ok is false when s is not a hostport.
func SplitHostport(s string) (host, port string, ok bool) {
	if !matches("hostport", s) {
		return "", "", false
	}
	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		host, port = s[:end+1], s[end+1:]
		if !IsIPv6(host[1:end]) {
			return "", "", false
		}
	} else if i := strings.LastIndexByte(s, ':'); i >= 0 {
		host, port = s[:i], s[i:]
	} else {
		host = s
	}
	return host, strings.TrimPrefix(port, ":"), true
}
