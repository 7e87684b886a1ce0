package header

import (
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipparse/internal/errorutil"
)

// ErrInvalidEntries is returned by [Collect] when some entries of a multi-valued header are invalid.
const ErrInvalidEntries errorutil.Error = "invalid header entries"

// Multi is the result of parsing a header that carries a comma-separated list of entries.
// Each entry is reconstructed independently, an entry that could not be reconstructed
// is nil while the rest are kept.
type Multi[E any] struct {
	Entries  []*E
	Offsets  []int // start offset of each entry in the parsed text
	Wildcard bool  // "Contact: *"
}

// Valid reports whether every entry was reconstructed.
func (m Multi[E]) Valid() bool { return !slices.Contains(m.Entries, nil) }

// Invalid returns indexes of the entries that could not be reconstructed.
func (m Multi[E]) Invalid() []int {
	var idx []int
	for i, e := range m.Entries {
		if e == nil {
			idx = append(idx, i)
		}
	}
	return idx
}

// Collect converts the entries to a concrete header type, e.g. [Contact] or [Route].
// Invalid entries are skipped and [ErrInvalidEntries] is returned along with the valid ones.
// A wildcard yields an empty non-nil header.
func Collect[H ~[]E, E any](m Multi[E]) (H, error) {
	hdr := make(H, 0, len(m.Entries))
	if m.Wildcard {
		return hdr, nil
	}
	for _, e := range m.Entries {
		if e != nil {
			hdr = append(hdr, *e)
		}
	}
	if len(hdr) < len(m.Entries) {
		return hdr, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidEntries, "%v", m.Invalid()))
	}
	return hdr, nil
}
