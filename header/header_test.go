package header_test

import (
	"fmt"
	"testing"

	"github.com/ghettovoice/sipparse/header"
)

func TestCanonicName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want header.Name
	}{
		{"", ""},
		{"via", "Via"},
		{"v", "Via"},
		{"V", "Via"},
		{" m ", "Contact"},
		{"call-id", "Call-ID"},
		{"CALL-ID", "Call-ID"},
		{"cseq", "CSeq"},
		{"www-authenticate", "WWW-Authenticate"},
		{"proxy-authenticate", "Proxy-Authenticate"},
		{"x", "Session-Expires"},
		{"o", "Event"},
		{"x-custom-header", "X-Custom-Header"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := header.CanonicName(c.in); got != c.want {
				t.Errorf("header.CanonicName(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestName_Equal(t *testing.T) {
	t.Parallel()

	compact := header.Name("I")
	cases := []struct {
		name string
		n    header.Name
		val  any
		want bool
	}{
		{"nil", "Via", nil, false},
		{"same", "Via", header.Name("Via"), true},
		{"compact", "Via", header.Name("v"), true},
		{"ptr", "call-id", &compact, true},
		{"string", "Via", "Via", false},
		{"other", "From", header.Name("To"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.n.Equal(c.val); got != c.want {
				t.Errorf("n.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestHeader_RenderCompact(t *testing.T) {
	t.Parallel()

	opts := &header.RenderOptions{Compact: true}
	cases := []struct {
		name string
		hdr  header.Header
		want string
	}{
		{"call-id", header.CallID("abc@host"), "i: abc@host"},
		{"content-length", header.ContentLength(42), "l: 42"},
		{"max-forwards", header.MaxForwards(70), "Max-Forwards: 70"},
		{"supported", header.Supported{"timer", "replaces"}, "k: timer, replaces"},
		{"session-expires", &header.SessionExpires{Delta: 1800e9}, "x: 1800"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Render(opts); got != c.want {
				t.Errorf("hdr.Render(compact) = %q, want %q", got, c.want)
			}
		})
	}
}

func TestHeader_Format(t *testing.T) {
	t.Parallel()

	hdr := &header.CSeq{SeqNum: 1, Method: "INVITE"}
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "1 INVITE"},
		{"%+s", "CSeq: 1 INVITE"},
		{"%q", `"1 INVITE"`},
		{"%+q", `"CSeq: 1 INVITE"`},
		{"%v", "&{1 INVITE}"},
	}

	for _, c := range cases {
		t.Run(c.format, func(t *testing.T) {
			t.Parallel()

			if got := fmt.Sprintf(c.format, hdr); got != c.want {
				t.Errorf("fmt.Sprintf(%q, hdr) = %q, want %q", c.format, got, c.want)
			}
		})
	}
}
