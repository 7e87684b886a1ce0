package peg

import (
	"fmt"
	"strconv"
)

// Class returns a character class built from a bracket expression, e.g. "[a-zA-Z0-9]" or "[^\"\\\\]".
// Supported escapes are \\, \], \^, \-, \t, \r, \n and \xHH.
// The bracket expression is also the expectation text reported on failure.
// Class panics on a malformed expression.
func Class(spec string) Expr {
	e, err := parseClass(spec)
	if err != nil {
		panic(fmt.Errorf("peg: class %q: %w", spec, err))
	}
	return e
}

func parseClass(spec string) (*ClassExpr, error) {
	if len(spec) < 2 || spec[0] != '[' || spec[len(spec)-1] != ']' {
		return nil, fmt.Errorf("missing brackets") //errtrace:skip
	}
	e := &ClassExpr{Text: spec}
	body := spec[1 : len(spec)-1]
	if len(body) > 0 && body[0] == '^' {
		e.Inverted = true
		body = body[1:]
	}
	if body == "" {
		return nil, fmt.Errorf("empty class") //errtrace:skip
	}

	i := 0
	next := func() (byte, error) {
		c := body[i]
		i++
		if c != '\\' {
			return c, nil
		}
		if i >= len(body) {
			return 0, fmt.Errorf("dangling escape") //errtrace:skip
		}
		c = body[i]
		i++
		switch c {
		case 't':
			return '\t', nil
		case 'r':
			return '\r', nil
		case 'n':
			return '\n', nil
		case 'x':
			if i+2 > len(body) {
				return 0, fmt.Errorf("short \\x escape") //errtrace:skip
			}
			v, err := strconv.ParseUint(body[i:i+2], 16, 8)
			if err != nil {
				return 0, fmt.Errorf("bad \\x escape: %w", err) //errtrace:skip
			}
			i += 2
			return byte(v), nil
		default:
			return c, nil
		}
	}

	for i < len(body) {
		lo, err := next()
		if err != nil {
			return nil, err //errtrace:skip
		}
		hi := lo
		if i+1 < len(body) && body[i] == '-' {
			i++
			if hi, err = next(); err != nil {
				return nil, err //errtrace:skip
			}
			if hi < lo {
				return nil, fmt.Errorf("reversed range %q-%q", lo, hi) //errtrace:skip
			}
		}
		for c := int(lo); c <= int(hi); c++ {
			e.bits[c>>6] |= 1 << (c & 63)
		}
	}
	return e, nil
}
