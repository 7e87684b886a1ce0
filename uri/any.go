package uri

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/util"
)

// Any implements an absolute URI of a scheme without a dedicated type (http, urn, mailto...).
type Any struct {
	url.URL
}

// NewAny builds an [Any] URI from a text already matched by the absolute URI grammar.
func NewAny(s string) (*Any, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, err))
	}
	return &Any{URL: *u}, nil
}

// Clone returns a deep copy of the Any URI.
func (u *Any) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	if u.User != nil {
		if pwd, ok := u.User.Password(); ok {
			u2.User = url.UserPassword(u.User.Username(), pwd)
		} else {
			u2.User = url.User(u.User.Username())
		}
	}
	return &u2
}

// Scheme returns the lower-cased URI scheme.
func (u *Any) Scheme() string {
	if u == nil {
		return ""
	}
	return util.LCase(u.URL.Scheme)
}

// RenderTo writes the URI to the provided writer.
func (u *Any) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, u.URL.String()))
}

// Render returns the string representation of the URI.
func (u *Any) Render(*RenderOptions) string {
	if u == nil {
		return ""
	}
	return u.URL.String()
}

// String returns the string representation of the URI.
func (u *Any) String() string { return u.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the Any URI.
func (u *Any) Format(f fmt.State, verb rune) {
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
		type hideMethods Any
		type Any hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Any)(u))
	}
}

// Equal compares this URI with another.
// Scheme and host are compared case-insensitively, the rest as written.
func (u *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return util.EqFold(u.URL.Scheme, other.URL.Scheme) &&
		util.EqFold(u.Host, other.Host) &&
		u.Opaque == other.Opaque &&
		u.User.String() == other.User.String() &&
		u.EscapedPath() == other.EscapedPath() &&
		u.RawQuery == other.RawQuery &&
		u.Fragment == other.Fragment
}

// IsValid checks whether the Any URI has a scheme and some content after it.
func (u *Any) IsValid() bool {
	return u != nil && u.URL.Scheme != "" &&
		(util.TrimSP(u.Opaque) != "" || util.TrimSP(u.Host) != "" || util.TrimSP(u.Path) != "")
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Any) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Any) UnmarshalText(text []byte) error {
	u1, err := NewAny(string(text))
	if err != nil {
		*u = Any{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
