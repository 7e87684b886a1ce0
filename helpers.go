package sipparse

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/parser"
	"github.com/ghettovoice/sipparse/internal/util"
	"github.com/ghettovoice/sipparse/uri"
)

// ErrUnexpectedValue is returned by the typed helpers when the entry point yields
// a value of another type, e.g. a header name given to [ParseHeader] resolves
// to a non-header entry point.
const ErrUnexpectedValue errorutil.Error = "unexpected value"

func parseAs[T any](text, entry string, opts *Options) (T, error) {
	var zero T
	v, err := Parse(text, entry, opts)
	if err != nil {
		return zero, errtrace.Wrap(err)
	}
	res, ok := v.(T)
	if !ok {
		return zero, errtrace.Wrap(errorutil.NewWrapperError(ErrUnexpectedValue, "%T from %s", v, entry))
	}
	return res, nil
}

// ParseURI parses a sip or sips URI.
func ParseURI(text string, opts *Options) (*uri.SIP, error) {
	return errtrace.Wrap2(parseAs[*uri.SIP](text, EntrySIPURI, opts))
}

// ParseAnyURI parses an URI of any scheme: sip and sips URIs yield [*uri.SIP],
// stun, stuns, turn and turns yield [*uri.Stun], the rest [*uri.Any].
func ParseAnyURI(text string, opts *Options) (uri.URI, error) {
	entry := EntryAbsoluteURI
	if scheme, _, ok := strings.Cut(text, ":"); ok {
		switch util.LCase(scheme) {
		case "sip", "sips":
			entry = EntrySIPURI
		case "stun", "stuns":
			entry = EntryStunURI
		case "turn", "turns":
			entry = EntryTurnURI
		}
	}
	return errtrace.Wrap2(parseAs[uri.URI](text, entry, opts))
}

// ParseNameAddr parses an address with optional display name and header parameters.
func ParseNameAddr(text string, opts *Options) (*header.NameAddr, error) {
	return errtrace.Wrap2(parseAs[*header.NameAddr](text, EntryNameAddrHeader, opts))
}

// ParseVia parses the Via header value.
func ParseVia(text string, opts *Options) (header.Via, error) {
	return errtrace.Wrap2(parseAs[header.Via](text, EntryVia, opts))
}

// ParseCSeq parses the CSeq header value.
func ParseCSeq(text string, opts *Options) (*header.CSeq, error) {
	return errtrace.Wrap2(parseAs[*header.CSeq](text, EntryCSeq, opts))
}

// ParseChallenge parses a WWW-Authenticate or Proxy-Authenticate header value.
func ParseChallenge(text string, opts *Options) (header.AuthChallenge, error) {
	hdr, err := parseAs[*header.WWWAuthenticate](text, EntryWWWAuthenticate, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr.AuthChallenge, nil
}

// ParseCredentials parses an Authorization or Proxy-Authorization header value.
func ParseCredentials(text string, opts *Options) (header.AuthCredentials, error) {
	hdr, err := parseAs[*header.Authorization](text, EntryAuthorization, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr.AuthCredentials, nil
}

// ParseContact parses the Contact header value.
// Entries that fail validation are left out and [header.ErrInvalidEntries]
// is returned together with the valid ones.
func ParseContact(text string, opts *Options) (header.Contact, error) {
	m, err := parseAs[header.Multi[header.NameAddr]](text, EntryContact, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(header.Collect[header.Contact](m))
}

// ParseRequestLine parses the Request-Line without the trailing CRLF.
func ParseRequestLine(text string, opts *Options) (*header.RequestLine, error) {
	return errtrace.Wrap2(parseAs[*header.RequestLine](text, EntryRequestLine, opts))
}

// ParseStatusLine parses the Status-Line without the trailing CRLF.
func ParseStatusLine(text string, opts *Options) (*header.StatusLine, error) {
	return errtrace.Wrap2(parseAs[*header.StatusLine](text, EntryStatusLine, opts))
}

// ParseHeader parses the value of the header field name.
// The name may be given in canonical, lower-case or compact form.
func ParseHeader(name, value string, opts *Options) (header.Header, error) {
	entry, ok := parser.Lookup(name)
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownEntryPoint, "header %q", name))
	}
	v, err := Parse(value, entry, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	switch v := v.(type) {
	case header.Header:
		return v, nil
	case header.Multi[header.NameAddr]:
		return errtrace.Wrap2(collect(entry, v))
	}
	return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnexpectedValue, "%T from %s", v, entry))
}

func collect(entry string, m header.Multi[header.NameAddr]) (header.Header, error) {
	switch entry {
	case EntryContact:
		return errtrace.Wrap2(header.Collect[header.Contact](m))
	case EntryRecordRoute:
		return errtrace.Wrap2(header.Collect[header.RecordRoute](m))
	case EntryRoute:
		return errtrace.Wrap2(header.Collect[header.Route](m))
	}
	panic(fmt.Sprintf("unexpected multi-valued entry %s", entry))
}
