package uri

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/grammar"
	"github.com/ghettovoice/sipparse/internal/ioutil"
	"github.com/ghettovoice/sipparse/internal/util"
)

// SIP represents a SIP or SIPS URI.
type SIP struct {
	User    UserInfo // username and passwd
	Addr    Addr     // host and port
	Params  Values   // parameters
	Headers Values   // headers
	Secured bool
}

// Clone returns a deep copy of the SIP URI.
func (u *SIP) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Params = u.Params.Clone()
	u2.Headers = u.Headers.Clone()
	return &u2
}

// Scheme returns "sips" for secured URIs and "sip" otherwise.
func (u *SIP) Scheme() string {
	switch {
	case u == nil:
		return ""
	case u.Secured:
		return "sips"
	default:
		return "sip"
	}
}

// RenderTo writes the SIP URI to the provided writer.
// Parameters and headers are written in alphabetical order of their names.
func (u *SIP) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(u.Scheme(), ":")
	if !u.User.IsZero() {
		cw.Fprint(u.User, "@")
	}
	cw.Fprint(u.Addr)
	cw.Call(u.renderParams)
	cw.Call(u.renderHeaders)
	return errtrace.Wrap2(cw.Result())
}

func (u *SIP) renderParams(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, k := range u.Params.Keys() {
		v, _ := u.Params.Last(k)
		cw.Fprint(";", grammar.Escape(k, shouldEscapeURIParamChar))
		if v != "" {
			cw.Fprint("=", grammar.Escape(v, shouldEscapeURIParamChar))
		}
	}
	return errtrace.Wrap2(cw.Result())
}

func (u *SIP) renderHeaders(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	sep := "?"
	for _, k := range u.Headers.Keys() {
		for _, v := range u.Headers.Get(k) {
			cw.Fprint(sep, grammar.Escape(k, shouldEscapeURIHeaderChar), "=", grammar.Escape(v, shouldEscapeURIHeaderChar))
			sep = "&"
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the SIP URI.
func (u *SIP) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the SIP URI.
func (u *SIP) String() string { return u.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the SIP URI.
func (u *SIP) Format(f fmt.State, verb rune) {
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
		type hideMethods SIP
		type SIP hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*SIP)(u))
	}
}

// Equal compares this SIP URI with another for equality according to RFC 3261 Section 19.1.4.
func (u *SIP) Equal(val any) bool {
	var other *SIP
	switch v := val.(type) {
	case SIP:
		other = &v
	case *SIP:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.Secured == other.Secured &&
		u.User.Equal(other.User) &&
		u.Addr.Equal(other.Addr) &&
		equalURIParams(u.Params, other.Params) &&
		equalURIHeaders(u.Headers, other.Headers)
}

// sipURISpecParams must appear in both URIs to let them match.
var sipURISpecParams = []string{"lr", "maddr", "method", "transport", "ttl", "user"}

func equalURIParams(ps1, ps2 Values) bool {
	for _, k := range sipURISpecParams {
		if ps1.Has(k) != ps2.Has(k) {
			return false
		}
	}
	// A parameter present in only one URI is ignored, a common one must match.
	for k := range ps1 {
		if !ps2.Has(k) {
			continue
		}
		v1, _ := ps1.Last(k)
		v2, _ := ps2.Last(k)
		if !util.EqFold(v1, v2) {
			return false
		}
	}
	return true
}

func equalURIHeaders(hs1, hs2 Values) bool {
	if len(hs1) != len(hs2) {
		return false
	}
	for k, vs := range hs1 {
		if !hs2.Has(k) || !util.EqFold(strings.Join(vs, ", "), strings.Join(hs2.Get(k), ", ")) {
			return false
		}
	}
	return true
}

// IsValid checks whether the SIP URI is syntactically valid.
func (u *SIP) IsValid() bool {
	if u == nil || !u.Addr.IsValid() || !(u.User.IsZero() || u.User.IsValid()) {
		return false
	}
	for k, vs := range u.Params {
		if !grammar.IsURIParamName(k) {
			return false
		}
		if slices.ContainsFunc(vs, func(v string) bool { return v != "" && !grammar.IsURIParamValue(v) }) {
			return false
		}
	}
	for k, vs := range u.Headers {
		if !grammar.IsURIHeaderName(k) || slices.ContainsFunc(vs, func(v string) bool { return !grammar.IsURIHeaderValue(v) }) {
			return false
		}
	}
	return true
}

// MarshalText implements [encoding.TextMarshaler].
func (u *SIP) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Transport returns the "transport" parameter.
func (u *SIP) Transport() (TransportProto, bool) {
	tp, ok := u.Params.Last("transport")
	return TransportProto(tp), ok
}

// UserType returns the "user" parameter, e.g. "phone" or "ip".
func (u *SIP) UserType() (string, bool) { return u.Params.Last("user") }

func (u *SIP) Method() (RequestMethod, bool) {
	mtd, ok := u.Params.Last("method")
	return RequestMethod(mtd), ok
}

func (u *SIP) MAddr() (string, bool) { return u.Params.Last("maddr") }

func (u *SIP) TTL() (uint8, bool) {
	val, ok := u.Params.Last("ttl")
	if !ok {
		return 0, false
	}
	ttl, err := strconv.ParseUint(val, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(ttl), true
}

// LR reports whether the loose routing flag is set.
func (u *SIP) LR() bool { return u.Params.Has("lr") }

// UserInfo is a container for user credentials.
// It is typically used in [SIP] to store userinfo part.
type UserInfo struct {
	usrname, passwd string
	hasPasswd       bool
}

// User returns a [UserInfo] containing the provided username and no password.
func User(usrname string) UserInfo {
	return UserInfo{usrname: usrname}
}

// UserPassword returns a [UserInfo] containing the provided username and password.
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

// Username returns the unescaped username.
func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

// String returns the escaped userinfo without the trailing "@".
func (ui UserInfo) String() string {
	s := grammar.Escape(ui.usrname, func(c byte) bool { return !grammar.IsURIUserCharUnreserved(c) })
	if ui.hasPasswd {
		s += ":" + grammar.Escape(ui.passwd, func(c byte) bool { return !grammar.IsURIPasswdCharUnreserved(c) })
	}
	return s
}

// Equal compares this UserInfo with another for equality.
// Usernames and passwords are compared case-sensitively.
func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ui == other
}

// IsValid checks whether the UserInfo has a non-empty username.
func (ui UserInfo) IsValid() bool { return ui.usrname != "" }

// IsZero checks whether the UserInfo is empty.
func (ui UserInfo) IsZero() bool { return ui == UserInfo{} }
