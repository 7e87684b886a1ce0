package header

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/types"
	"github.com/ghettovoice/sipparse/internal/util"
	"github.com/ghettovoice/sipparse/uri"
)

// NameAddr represents a single element of From, To, Contact, Route and similar headers:
// an optional display name, a URI and header parameters.
type NameAddr struct {
	DisplayName string
	URI         uri.URI
	Params      Values
}

// String renders the NameAddr in the name-addr form, the URI is always enclosed in angle brackets.
func (addr NameAddr) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if addr.DisplayName != "" {
		sb.WriteString(grammar.Quote(addr.DisplayName))
		sb.WriteString(" ")
	}
	sb.WriteString("<")
	if addr.URI != nil {
		addr.URI.RenderTo(sb, nil) //nolint:errcheck
	}
	sb.WriteString(">")
	renderHdrParams(sb, addr.Params, true) //nolint:errcheck
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the NameAddr.
func (addr NameAddr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, addr.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, addr.String())
			return
		}
		type hideMethods NameAddr
		type NameAddr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), NameAddr(addr))
	}
}

// Equal compares this NameAddr with another.
// Display names are ignored, the q, tag and expires parameters must be present in both.
func (addr NameAddr) Equal(val any) bool {
	other, ok := cast[NameAddr](val)
	if !ok || other == nil {
		return false
	}
	return types.IsEqual(addr.URI, other.URI) &&
		equalHdrParams(addr.Params, other.Params, "expires", "q", "tag")
}

// IsValid checks whether the NameAddr has a valid URI and parameters.
func (addr NameAddr) IsValid() bool {
	return types.IsValid(addr.URI) && validHdrParams(addr.Params)
}

// IsZero checks whether the NameAddr is empty.
func (addr NameAddr) IsZero() bool {
	return addr.DisplayName == "" && addr.URI == nil && len(addr.Params) == 0
}

// Clone returns a deep copy of the NameAddr.
func (addr NameAddr) Clone() NameAddr {
	if addr.URI != nil {
		addr.URI = addr.URI.Clone()
	}
	addr.Params = addr.Params.Clone()
	return addr
}

// MarshalText implements [encoding.TextMarshaler].
func (addr NameAddr) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

// Param returns the last value of the parameter, names are case-insensitive.
func (addr NameAddr) Param(name string) (string, bool) { return addr.Params.Last(name) }

// HasParam reports whether the parameter is present.
func (addr NameAddr) HasParam(name string) bool { return addr.Params.Has(name) }

// SetParam replaces the parameter values with the single value.
func (addr *NameAddr) SetParam(name, value string) {
	if addr.Params == nil {
		addr.Params = make(Values)
	}
	addr.Params.Set(name, value)
}

// DelParam removes the parameter.
func (addr *NameAddr) DelParam(name string) { addr.Params.Del(name) }

// Tag returns the tag parameter.
func (addr NameAddr) Tag() (string, bool) { return addr.Params.Last("tag") }

// Expires returns the expires parameter as a duration.
func (addr NameAddr) Expires() (time.Duration, bool) {
	sec, ok := parseUintParam(addr.Params, "expires", 32)
	if !ok {
		return 0, false
	}
	return time.Duration(sec) * time.Second, true
}

// Q returns the "q" parameter, it is 1 when the parameter is missing.
func (addr NameAddr) Q() (float64, bool) {
	v, ok := addr.Params.Last("q")
	if !ok {
		return 1, false
	}
	q, err := strconv.ParseFloat(v, 64)
	if err != nil || q < 0 || q > 1 {
		return 1, false
	}
	return q, true
}
