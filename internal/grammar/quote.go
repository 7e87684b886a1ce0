package grammar

import (
	"strings"

	"github.com/ghettovoice/sipparse/internal/constraints"
)

// Quote wraps s in double quotes escaping DQUOTE and backslash with quoted-pairs.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unquote strips the surrounding quotes of a quoted-string and resolves quoted-pairs.
// Leading linear whitespace is dropped. A string that is not quoted is returned unchanged.
func Unquote(s string) string {
	qs := strings.TrimLeft(s, " \t\r\n")
	if len(qs) < 2 || qs[0] != '"' || qs[len(qs)-1] != '"' {
		return s
	}
	qs = qs[1 : len(qs)-1]
	if strings.IndexByte(qs, '\\') < 0 {
		return qs
	}

	var sb strings.Builder
	sb.Grow(len(qs))
	for i := 0; i < len(qs); i++ {
		if qs[i] == '\\' && i+1 < len(qs) {
			i++
		}
		sb.WriteByte(qs[i])
	}
	return sb.String()
}

// Unescape converts each "%" HEXDIG HEXDIG sequence of s into the decoded byte.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		b = append(b, s[i])
	}
	return T(b)
}

// Escape replaces each byte matched by shouldEscape with its "%" HEXDIG HEXDIG form.
// Existing escape sequences are kept. A nil shouldEscape escapes everything but unreserved chars.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}
	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b = append(b, s[i], s[i+1], s[i+2])
			i += 2
		case shouldEscape(s[i]):
			b = append(b, '%', upperhex[s[i]>>4], upperhex[s[i]&15])
		default:
			b = append(b, s[i])
		}
	}
	return T(b)
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// IsCharAlphanum checks the alphanum rule.
func IsCharAlphanum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// IsCharUnreserved checks the unreserved rule.
func IsCharUnreserved(c byte) bool {
	return IsCharAlphanum(c) || strings.IndexByte(markChars, c) >= 0
}

// IsURIUserCharUnreserved checks user chars that are written without escaping.
func IsURIUserCharUnreserved(c byte) bool {
	return IsCharUnreserved(c) || strings.IndexByte(userUnreserved, c) >= 0
}

// IsURIPasswdCharUnreserved checks password chars that are written without escaping.
func IsURIPasswdCharUnreserved(c byte) bool {
	return IsCharUnreserved(c) || strings.IndexByte(passwdUnreserved, c) >= 0
}

// IsURIParamCharUnreserved checks paramchar chars that are written without escaping.
func IsURIParamCharUnreserved(c byte) bool {
	return IsCharUnreserved(c) || strings.IndexByte(paramUnreserved, c) >= 0
}

// IsURIHeaderCharUnreserved checks hname/hvalue chars that are written without escaping.
func IsURIHeaderCharUnreserved(c byte) bool {
	return IsCharUnreserved(c) || strings.IndexByte(hnvUnreserved, c) >= 0
}
