// Package uri holds the URI values produced by the SIP parser.
//
// Three types implement the [URI] interface:
//
//   - [SIP]: sip: and sips: URIs (RFC 3261) with user info, host, port, parameters and headers;
//   - [Stun]: stun:, stuns:, turn: and turns: server URIs (RFC 7064, RFC 7065);
//   - [Any]: any other absolute URI, backed by [net/url.URL].
//
// Values are rendered back to text with their Render and RenderTo methods. SIP URI rendering
// writes parameters and headers in alphabetical order of names, escaping the characters that are
// not allowed unescaped in the respective URI part.
//
// [SIP.Equal] implements the comparison rules of RFC 3261 Section 19.1.4: the transport, user,
// method, maddr, ttl and lr parameters must be present in both URIs, other parameters are
// compared only when both URIs carry them, and headers are never ignored.
//
// URI values are not safe for concurrent modification, use Clone to share them.
package uri
