// Package header provides typed values of the SIP header fields and start lines
// produced by the sipparse parser.
//
// Every header type implements [Header]: it renders itself with its canonical or
// compact name, validates against the RFC 3261 grammar, compares by the RFC rules
// and clones deeply. Header values are plain Go types (structs, slices, scalars) and
// can be built by hand as well as obtained from the parser.
//
// # Names
//
// [CanonicName] normalises a header name, compact forms included:
//
//	"b" → "Referred-By"    "c" → "Content-Type"    "f" → "From"
//	"i" → "Call-ID"        "k" → "Supported"       "l" → "Content-Length"
//	"m" → "Contact"        "o" → "Event"           "r" → "Refer-To"
//	"t" → "To"             "v" → "Via"             "x" → "Session-Expires"
//
// # Parameters
//
// Header parameters are stored in [Values] with lowercased keys and values as they
// were written, so quoted strings keep their quotes. Rendering sorts parameters
// alphabetically, with q first for address headers. Equality follows RFC 3261
// Section 20: parameters present in both headers must match, while special
// parameters of a header type must be present in both or neither.
//
// # Multi-valued headers
//
// Contact, Record-Route and Route are parsed entry by entry into [Multi]. An entry
// that fails semantic checks is nil in [Multi.Entries]; [Collect] converts the
// result to the concrete header type and reports [ErrInvalidEntries] when some
// entries were dropped.
//
// # Challenges
//
// WWW-Authenticate and Proxy-Authenticate carry an [AuthChallenge], which is
// either a [DigestChallenge] (RFC 2617) or an [AnyChallenge] for other schemes.
// Authorization and Proxy-Authorization answer them with [AuthCredentials]:
// a [DigestCredentials] or an [AnyCredentials].
package header
