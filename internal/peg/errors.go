package peg

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ghettovoice/sipparse/internal/errorutil"
)

// ErrUnknownRule is returned when the start rule is not in the grammar.
const ErrUnknownRule errorutil.Error = "unknown rule"

// ExpectationKind classifies an [Expectation].
type ExpectationKind uint8

const (
	ExpectLiteral ExpectationKind = iota + 1
	ExpectClass
	ExpectAny
	ExpectEnd
	ExpectOther
)

var expKindNames = [...]string{
	ExpectLiteral: "literal",
	ExpectClass:   "class",
	ExpectAny:     "any",
	ExpectEnd:     "end",
	ExpectOther:   "other",
}

func (k ExpectationKind) String() string {
	if int(k) < len(expKindNames) && expKindNames[k] != "" {
		return expKindNames[k]
	}
	return fmt.Sprintf("ExpectationKind(%d)", uint8(k))
}

func (k ExpectationKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Expectation is something the parser expected at the failure offset.
type Expectation struct {
	Kind ExpectationKind `json:"kind" yaml:"kind"`
	// Text is the literal, the bracket expression of a class or the rule display name.
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	IgnoreCase bool   `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
}

// Describe returns the human-readable form used in error messages.
func (e Expectation) Describe() string {
	switch e.Kind {
	case ExpectLiteral:
		return `"` + escapeLiteral(e.Text) + `"`
	case ExpectAny:
		return "any character"
	case ExpectEnd:
		return "end of input"
	default:
		return e.Text
	}
}

// SyntaxError reports input that does not match the grammar.
type SyntaxError struct {
	Message string `json:"message" yaml:"message"`
	// Expected is the raw expectation list recorded at the furthest failure offset.
	Expected []Expectation `json:"expected,omitempty" yaml:"expected,omitempty"`
	// Found is the offending character or span, nil means end of input.
	Found    *string  `json:"found" yaml:"found"`
	Location Location `json:"location" yaml:"location"`
}

func (e *SyntaxError) Error() string { return e.Message }

// Grammar marks the error as a grammar error.
func (*SyntaxError) Grammar() bool { return true }

// Offset returns the byte offset of the failure.
func (e *SyntaxError) Offset() int { return e.Location.Start.Offset }

func buildMessage(expected []Expectation, found *string) string {
	foundDesc := "end of input"
	if found != nil {
		foundDesc = `"` + escapeLiteral(*found) + `"`
	}
	if len(expected) == 0 {
		return "Unexpected " + foundDesc + "."
	}
	return "Expected " + describeExpected(expected) + " but " + foundDesc + " found."
}

func describeExpected(expected []Expectation) string {
	descs := make([]string, len(expected))
	for i := range expected {
		descs[i] = expected[i].Describe()
	}
	slices.Sort(descs)
	descs = slices.Compact(descs)

	switch len(descs) {
	case 1:
		return descs[0]
	case 2:
		return descs[0] + " or " + descs[1]
	default:
		return strings.Join(descs[:len(descs)-1], ", ") + ", or " + descs[len(descs)-1]
	}
}

func escapeLiteral(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == 0:
			sb.WriteString(`\0`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&sb, `\x%02X`, c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
