package errorutil_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipparse/internal/errorutil"
)

type grammarErr struct{}

func (grammarErr) Error() string { return "grammar" }

func (grammarErr) Grammar() bool { return true }

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	const errSentinel errorutil.Error = "sentinel"
	cause := errors.New("cause")

	cases := []struct {
		name    string
		args    []any
		wantMsg string
		wantIs  []error
	}{
		{"no args", nil, "sentinel", []error{errSentinel}},
		{"error", []any{cause}, "sentinel: cause", []error{errSentinel, cause}},
		{"wrapped error", []any{fmt.Errorf("x: %w", errSentinel)}, "x: sentinel", []error{errSentinel}},
		{"message", []any{"bad port"}, "sentinel: bad port", []error{errSentinel}},
		{"format", []any{"bad port %d", 70000}, "sentinel: bad port 70000", []error{errSentinel}},
		{"unknown arg", []any{42}, "sentinel", []error{errSentinel}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errSentinel, c.args...)
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("err.Error() = %q, want %q", got, c.wantMsg)
			}
			for _, want := range c.wantIs {
				if diff := cmp.Diff(err, want, cmpopts.EquateErrors()); diff != "" {
					t.Errorf("err = %v, want %v\ndiff (-got +want):\n%v", err, want, diff)
				}
			}
		})
	}
}

func TestIsGrammarErr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("plain"), false},
		{"grammar", grammarErr{}, true},
		{"wrapped grammar", fmt.Errorf("wrap: %w", grammarErr{}), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := errorutil.IsGrammarErr(c.err); got != c.want {
				t.Errorf("errorutil.IsGrammarErr(err) = %v, want %v", got, c.want)
			}
		})
	}
}
