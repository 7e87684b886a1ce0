// Package sipparse parses SIP protocol text: URIs, start lines and header field values.
//
// [Parse] matches text against a named entry point and returns the semantic value,
// a [uri.URI], a [header.Header], a start line or a [header.Multi] for comma-separated
// lists of addresses. Typed helpers like [ParseURI] and [ParseVia] wrap the common entry points.
//
// Malformed text is reported as [*SyntaxError] carrying the failure position and the
// expected alternatives. Unknown entry point names are reported as [ErrUnknownEntryPoint].
package sipparse

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/parser"
	"github.com/ghettovoice/sipparse/internal/peg"
)

// Version is the current sipparse package version.
var Version = "0.1.0"

// Entry point names accepted by [Parse].
const (
	EntrySIPURI             = "SIPURI"
	EntryURI                = "URI"
	EntryStunURI            = "StunURI"
	EntryTurnURI            = "TurnURI"
	EntryAbsoluteURI        = "AbsoluteURI"
	EntryHost               = "Host"
	EntryNameAddrHeader     = "NameAddrHeader"
	EntryRequestLine        = "RequestLine"
	EntryStatusLine         = "StatusLine"
	EntryStartLine          = "StartLine"
	EntryFragment           = "Fragment"
	EntryContact            = "Contact"
	EntryFrom               = "From"
	EntryTo                 = "To"
	EntryRecordRoute        = "RecordRoute"
	EntryRoute              = "Route"
	EntryReferTo            = "ReferTo"
	EntryReferredBy         = "ReferredBy"
	EntryReplaces           = "Replaces"
	EntryVia                = "Via"
	EntryCSeq               = "CSeq"
	EntryCallID             = "CallID"
	EntryContentLength      = "ContentLength"
	EntryContentDisposition = "ContentDisposition"
	EntryContentType        = "ContentType"
	EntryEvent              = "Event"
	EntryMaxForwards        = "MaxForwards"
	EntryMinExpires         = "MinExpires"
	EntryExpires            = "Expires"
	EntrySessionExpires     = "SessionExpires"
	EntryRequire            = "Require"
	EntrySupported          = "Supported"
	EntryAllow              = "Allow"
	EntrySubscriptionState  = "SubscriptionState"
	EntryReason             = "Reason"
	EntryWWWAuthenticate    = "WWWAuthenticate"
	EntryProxyAuthenticate  = "ProxyAuthenticate"
	EntryAuthorization      = "Authorization"
	EntryProxyAuthorization = "ProxyAuthorization"
)

// Keys of [Options.Result] describing the URIs met while parsing.
// Scheme, user, host and port belong to the last URI, DataURIs counts them all.
const (
	DataURIs   = parser.BagURIs
	DataScheme = parser.BagScheme
	DataUser   = parser.BagUser
	DataHost   = parser.BagHost
	DataPort   = parser.BagPort
)

// ErrUnknownEntryPoint is returned when the entry point name is not defined.
const ErrUnknownEntryPoint = parser.ErrUnknownEntry

type (
	// SyntaxError describes text that does not match the entry point grammar
	// or a matched value that breaks a semantic constraint.
	SyntaxError = peg.SyntaxError
	// Position is a location in the parsed text.
	Position = peg.Position
	// Location is the span of a [SyntaxError].
	Location = peg.Location
	// Lexeme is an item of the free-form [EntryFragment] result.
	Lexeme = parser.Lexeme
)

// Parse matches the whole text against the entry point and returns its semantic value.
//
// Besides the Entry* names, header names in canonical, lower-case or compact form
// are accepted, e.g. "Call-ID", "call-id" and "i" all select [EntryCallID].
// opts may be nil.
func Parse(text, entry string, opts *Options) (any, error) {
	name, ok := parser.Lookup(entry)
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownEntryPoint, "%q", entry))
	}
	ctx := opts.context()
	v, err := parser.Parse(text, name, ctx)
	if opts != nil {
		opts.Result = ctx.Data()
	}
	return v, errtrace.Wrap(err)
}

// EntryPoints returns the sorted names of all entry points.
func EntryPoints() []string { return parser.EntryPoints() }

// IsSyntaxError reports whether err is caused by malformed text.
func IsSyntaxError(err error) bool { return errorutil.IsGrammarErr(err) }
