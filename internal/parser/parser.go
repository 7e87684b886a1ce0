// Package parser holds the SIP grammar: rules on top of the lexical layer, semantic actions
// building [uri] and [header] values, and the named entry points used by the public API.
package parser

//go:generate go tool errtrace -w .

import (
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/peg"
)

const (
	// ErrUnknownEntry is returned for an entry point name that is not defined.
	ErrUnknownEntry errorutil.Error = "unknown entry point"
	// ErrOutOfRange is reported by actions when a number does not fit the field.
	ErrOutOfRange errorutil.Error = "value out of range"
	// ErrInvalidValue is reported by actions when a matched value breaks a semantic constraint.
	ErrInvalidValue errorutil.Error = "invalid value"
)

type entry struct {
	rule   string
	header bool
}

var entries = map[string]entry{
	"SIPURI":         {rule: "SIP-URI"},
	"URI":            {rule: "SIP-URI"},
	"StunURI":        {rule: "stun-URI"},
	"TurnURI":        {rule: "turn-URI"},
	"AbsoluteURI":    {rule: "absoluteURI"},
	"Host":           {rule: "uri-hostport"},
	"NameAddrHeader": {rule: "NameAddrHeader"},
	"RequestLine":    {rule: "RequestLine"},
	"StatusLine":     {rule: "StatusLine"},
	"StartLine":      {rule: "StartLine"},
	"Fragment":       {rule: "Fragment"},

	"Contact":            {rule: "Contact", header: true},
	"From":               {rule: "From", header: true},
	"To":                 {rule: "To", header: true},
	"RecordRoute":        {rule: "RecordRoute", header: true},
	"Route":              {rule: "Route", header: true},
	"ReferTo":            {rule: "ReferTo", header: true},
	"ReferredBy":         {rule: "ReferredBy", header: true},
	"Replaces":           {rule: "Replaces", header: true},
	"Via":                {rule: "Via", header: true},
	"CSeq":               {rule: "CSeq", header: true},
	"CallID":             {rule: "CallID", header: true},
	"ContentLength":      {rule: "ContentLength", header: true},
	"ContentDisposition": {rule: "ContentDisposition", header: true},
	"ContentType":        {rule: "ContentType", header: true},
	"Event":              {rule: "Event", header: true},
	"MaxForwards":        {rule: "MaxForwards", header: true},
	"MinExpires":         {rule: "MinExpires", header: true},
	"Expires":            {rule: "Expires", header: true},
	"SessionExpires":     {rule: "SessionExpires", header: true},
	"Require":            {rule: "Require", header: true},
	"Supported":          {rule: "Supported", header: true},
	"Allow":              {rule: "Allow", header: true},
	"SubscriptionState":  {rule: "SubscriptionState", header: true},
	"Reason":             {rule: "Reason", header: true},
	"WWWAuthenticate":    {rule: "WWWAuthenticate", header: true},
	"ProxyAuthenticate":  {rule: "ProxyAuthenticate", header: true},
	"Authorization":      {rule: "Authorization", header: true},
	"ProxyAuthorization": {rule: "ProxyAuthorization", header: true},
}

var sipGrammar = peg.Compile(rules()...)

// Parse matches text against the entry point and returns its semantic value.
// ctx may be nil.
//
// The error is [ErrUnknownEntry] for an unknown entry point and [*peg.SyntaxError] otherwise.
func Parse(text, entryName string, ctx *peg.Context) (any, error) {
	e, ok := entries[entryName]
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownEntry, "%q", entryName))
	}
	return errtrace.Wrap2(sipGrammar.Parse(text, e.rule, ctx))
}

// EntryPoints returns the sorted entry point names.
func EntryPoints() []string {
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup resolves name to an entry point.
// Besides entry point names it accepts header names in any case and compact form,
// "call-id" and "i" both resolve to "CallID".
func Lookup(name string) (string, bool) {
	if _, ok := entries[name]; ok {
		return name, true
	}
	n := strings.ReplaceAll(string(header.CanonicName(name)), "-", "")
	if e, ok := entries[n]; ok && e.header {
		return n, true
	}
	return "", false
}
