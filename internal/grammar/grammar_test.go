package grammar_test

import (
	"testing"

	"github.com/ghettovoice/sipparse/internal/grammar"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"token", grammar.IsToken[string], "z9hG4bK776asdhds", true},
		{"token with dot", grammar.IsToken[string], "a.b-c!d%e*f_g+h`i'j~k", true},
		{"token empty", grammar.IsToken[string], "", false},
		{"token space", grammar.IsToken[string], "a b", false},
		{"token semi", grammar.IsToken[string], "a;b", false},
		{"host domain", grammar.IsHost[string], "pc33.atlanta.com", true},
		{"host trailing dot", grammar.IsHost[string], "example.com.", true},
		{"host single label", grammar.IsHost[string], "localhost", true},
		{"host ipv4", grammar.IsHost[string], "192.0.2.4", true},
		{"host bad ipv4", grammar.IsHost[string], "192.0.2.256", false},
		{"host numeric toplabel", grammar.IsHost[string], "example.123", false},
		{"host ipv6", grammar.IsHost[string], "[2001:db8::9:1]", true},
		{"host bad ipv6", grammar.IsHost[string], "[2001:db8:::1]", false},
		{"host ipv6 without brackets", grammar.IsHost[string], "2001:db8::1", false},
		{"quoted", grammar.IsQuoted[string], `"Alice \"A\" Smith"`, true},
		{"quoted unterminated", grammar.IsQuoted[string], `"Alice`, false},
		{"quoted bad pair", grammar.IsQuoted[string], "\"a\\\n\"", false},
		{"word", grammar.IsWord[string], "f81d4fae-7dec-11d0-a765-00a0c91e6bf6<>", true},
		{"callid", grammar.IsCallID[string], "a84b4c76e66710@pc33.atlanta.com", true},
		{"callid two at", grammar.IsCallID[string], "a@b@c", false},
		{"username", grammar.IsUsername[string], "alice;ext=1%20x", true},
		{"username at", grammar.IsUsername[string], "alice@", false},
		{"password", grammar.IsPassword[string], "", true},
		{"password colon", grammar.IsPassword[string], "se:cret", false},
		{"param name", grammar.IsURIParamName[string], "transport", true},
		{"param value brackets", grammar.IsURIParamValue[string], "[::1]", true},
		{"param value semicolon", grammar.IsURIParamValue[string], "a;b", false},
		{"header value empty", grammar.IsURIHeaderValue[string], "", true},
		{"header name", grammar.IsURIHeaderName[string], "subject", true},
		{"display name tokens", grammar.IsDisplayName[string], "Bob  Smith", true},
		{"display name quoted", grammar.IsDisplayName[string], `"Bob <Smith>"`, true},
		{"gen value ipv6", grammar.IsGenValue[string], "[::1]", true},
		{"gen value bad ipv6", grammar.IsGenValue[string], "[zz::1]", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.fn(c.in); got != c.want {
				t.Errorf("%s(%q) = %v, want %v", c.name, c.in, got, c.want)
			}
		})
	}
}

func TestSplitHostport(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in         string
		host, port string
		ok         bool
	}{
		{"atlanta.com", "atlanta.com", "", true},
		{"atlanta.com:5060", "atlanta.com", "5060", true},
		{"192.0.2.1:5061", "192.0.2.1", "5061", true},
		{"[2001:db8::1]:5060", "[2001:db8::1]", "5060", true},
		{"[2001:db8::1]", "[2001:db8::1]", "", true},
		{"[2001:db8::1", "", "", false},
		{"atlanta.com:", "", "", false},
		{"", "", "", false},
	}

	for _, c := range cases {
		host, port, ok := grammar.SplitHostport(c.in)
		if host != c.host || port != c.port || ok != c.ok {
			t.Errorf("grammar.SplitHostport(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.in, host, port, ok, c.host, c.port, c.ok)
		}
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", `""`},
		{"Alice", `"Alice"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
	}

	for _, c := range cases {
		got := grammar.Quote(c.in)
		if got != c.want {
			t.Errorf("grammar.Quote(%q) = %q, want %q", c.in, got, c.want)
		}
		if back := grammar.Unquote(got); back != c.in {
			t.Errorf("grammar.Unquote(%q) = %q, want %q", got, back, c.in)
		}
		if !grammar.IsQuoted(got) {
			t.Errorf("grammar.IsQuoted(%q) = false, want true", got)
		}
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{`"abc`, `"abc`},
		{` "abc"`, "abc"},
		{`"a\"b\\c"`, `a"b\c`},
	}

	for _, c := range cases {
		if got := grammar.Unquote(c.in); got != c.want {
			t.Errorf("grammar.Unquote(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
