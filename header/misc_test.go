package header_test

import (
	"testing"
	"time"

	"github.com/ghettovoice/sipparse/header"
)

func TestScalarHeaders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		hdr       header.Header
		want      string
		wantValid bool
	}{
		{"cseq", &header.CSeq{SeqNum: 4711, Method: "INVITE"}, "CSeq: 4711 INVITE", true},
		{"cseq too big", &header.CSeq{SeqNum: header.MaxCSeq, Method: "INVITE"}, "CSeq: 2147483648 INVITE", false},
		{"call-id", header.CallID("f81d4fae-7dec-11d0-a765-00a0c91e6bf6@foo.bar.com"), "Call-ID: f81d4fae-7dec-11d0-a765-00a0c91e6bf6@foo.bar.com", true},
		{"call-id empty", header.CallID(""), "Call-ID: ", false},
		{"content-length", header.ContentLength(349), "Content-Length: 349", true},
		{"max-forwards", header.MaxForwards(70), "Max-Forwards: 70", true},
		{"expires", &header.Expires{Duration: time.Hour}, "Expires: 3600", true},
		{"min-expires", &header.MinExpires{Duration: time.Minute}, "Min-Expires: 60", true},
		{
			"session-expires",
			&header.SessionExpires{Delta: 30 * time.Minute, Params: header.Values{"refresher": {"uac"}}},
			"Session-Expires: 1800;refresher=uac",
			true,
		},
		{
			"session-expires bad refresher",
			&header.SessionExpires{Delta: 30 * time.Minute, Params: header.Values{"refresher": {"both"}}},
			"Session-Expires: 1800;refresher=both",
			false,
		},
		{"session-expires zero", &header.SessionExpires{}, "Session-Expires: 0", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Render(nil); got != c.want {
				t.Errorf("hdr.Render(nil) = %q, want %q", got, c.want)
			}
			if got := c.hdr.IsValid(); got != c.wantValid {
				t.Errorf("hdr.IsValid() = %v, want %v", got, c.wantValid)
			}
			if !c.hdr.Equal(c.hdr.Clone()) {
				t.Error("hdr.Equal(hdr.Clone()) = false, want true")
			}
		})
	}
}

func TestParamHeaders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hdr  header.Header
		want string
	}{
		{
			"content-type",
			&header.ContentType{Type: "application", Subtype: "sdp", Params: header.Values{"charset": {"utf-8"}}},
			"Content-Type: application/sdp;charset=utf-8",
		},
		{
			"content-disposition",
			&header.ContentDisposition{Type: "session", Params: header.Values{"handling": {"optional"}}},
			"Content-Disposition: session;handling=optional",
		},
		{"event", &header.Event{Type: "presence.winfo", Params: header.Values{"id": {"1"}}}, "Event: presence.winfo;id=1"},
		{
			"subscription-state",
			&header.SubscriptionState{State: "terminated", Params: header.Values{"reason": {"timeout"}, "retry-after": {"30"}}},
			"Subscription-State: terminated;reason=timeout;retry-after=30",
		},
		{
			"replaces",
			&header.Replaces{CallID: "98732@sip.example.com", Params: header.Values{"from-tag": {"r33th4x0r"}, "to-tag": {"ff87ff"}}},
			"Replaces: 98732@sip.example.com;from-tag=r33th4x0r;to-tag=ff87ff",
		},
		{
			"reason",
			header.Reason{
				{Protocol: "SIP", Params: header.Values{"cause": {"200"}, "text": {`"Call completed elsewhere"`}}},
				{Protocol: "Q.850", Params: header.Values{"cause": {"16"}}},
			},
			`Reason: SIP;cause=200;text="Call completed elsewhere", Q.850;cause=16`,
		},
		{"require", header.Require{"100rel", "timer"}, "Require: 100rel, timer"},
		{"supported empty", header.Supported{}, "Supported: "},
		{"allow", header.Allow{"INVITE", "ACK", "BYE"}, "Allow: INVITE, ACK, BYE"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Render(nil); got != c.want {
				t.Errorf("hdr.Render(nil) = %q, want %q", got, c.want)
			}
			if !c.hdr.IsValid() {
				t.Error("hdr.IsValid() = false, want true")
			}
			if !c.hdr.Equal(c.hdr.Clone()) {
				t.Error("hdr.Equal(hdr.Clone()) = false, want true")
			}
		})
	}
}

func TestParamHeaders_Accessors(t *testing.T) {
	t.Parallel()

	ev := &header.Event{Type: "presence.winfo", Params: header.Values{"id": {"a1"}}}
	if got := ev.Package(); got != "presence" {
		t.Errorf("ev.Package() = %q, want \"presence\"", got)
	}
	if id, ok := ev.ID(); !ok || id != "a1" {
		t.Errorf("ev.ID() = (%q, %v)", id, ok)
	}
	if ev.Equal(&header.Event{Type: "PRESENCE.winfo"}) {
		t.Error("events with and without id are equal")
	}

	ss := &header.SubscriptionState{State: "active", Params: header.Values{"expires": {"600"}}}
	if d, ok := ss.Expires(); !ok || d != 10*time.Minute {
		t.Errorf("ss.Expires() = (%v, %v)", d, ok)
	}
	if _, ok := ss.RetryAfter(); ok {
		t.Error("ss.RetryAfter() found missing param")
	}

	rp := &header.Replaces{CallID: "abc", Params: header.Values{"to-tag": {"1"}, "from-tag": {"2"}, "early-only": {""}}}
	if !rp.EarlyOnly() || !rp.IsValid() {
		t.Error("replaces with early-only flag is not valid")
	}
	if (&header.Replaces{CallID: "abc", Params: header.Values{"to-tag": {"1"}}}).IsValid() {
		t.Error("replaces without from-tag is valid")
	}

	rv := header.ReasonValue{Protocol: "SIP", Params: header.Values{"cause": {"480"}, "text": {`"Temporarily \"away\""`}}}
	if c, ok := rv.Cause(); !ok || c != 480 {
		t.Errorf("rv.Cause() = (%v, %v)", c, ok)
	}
	if txt, ok := rv.Text(); !ok || txt != `Temporarily "away"` {
		t.Errorf("rv.Text() = (%q, %v)", txt, ok)
	}

	cd := &header.ContentDisposition{Type: "render", Params: header.Values{"handling": {"Required"}}}
	if h, ok := cd.Handling(); !ok || h != "required" {
		t.Errorf("cd.Handling() = (%q, %v)", h, ok)
	}

	if !(header.Require{"Timer"}).Has("timer") || (header.Require{}).IsValid() {
		t.Error("require option tags mismatch")
	}
	if !(header.Allow{"INVITE"}).Has("INVITE") || (header.Allow{"INVITE"}).Has("invite") {
		t.Error("allow methods are case-sensitive")
	}
}
