package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
)

// MaxCSeq is the upper bound (exclusive) of a CSeq sequence number (RFC 3261 Section 8.1.1.5).
const MaxCSeq = 1 << 31

// CSeq represents the CSeq header field.
type CSeq struct {
	SeqNum uint32
	Method RequestMethod
}

// CanonicName returns the canonical name of the header.
func (*CSeq) CanonicName() Name { return "CSeq" }

// CompactName returns the compact name of the header, CSeq has no compact form.
func (*CSeq) CompactName() Name { return "CSeq" }

// RenderTo writes the header with its name to w.
func (hdr *CSeq) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts))
}

// Render returns the header with its name.
func (hdr *CSeq) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name.
func (hdr *CSeq) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return strconv.FormatUint(uint64(hdr.SeqNum), 10) + " " + string(hdr.Method)
}

// String returns the header value.
func (hdr *CSeq) String() string { return hdr.RenderValue() }

// Format implements [fmt.Formatter].
func (hdr *CSeq) Format(f fmt.State, verb rune) {
	type hideMethods CSeq
	formatHdr(f, verb, hdr, (*hideMethods)(hdr))
}

// Clone returns a deep copy of the header.
func (hdr *CSeq) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares sequence numbers and methods, methods are case-sensitive.
func (hdr *CSeq) Equal(val any) bool {
	other, ok := cast[CSeq](val)
	if !ok {
		return false
	}
	if hdr == nil || other == nil {
		return hdr == other
	}
	return *hdr == *other
}

// IsValid reports whether the header is syntactically valid.
func (hdr *CSeq) IsValid() bool {
	return hdr != nil && hdr.SeqNum < MaxCSeq && hdr.Method.IsValid()
}
