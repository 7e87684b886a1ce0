package peg

import (
	"sort"
	"unicode/utf8"
)

// Position is a location in the input. Line and Column are 1-based, Column counts characters.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Location is a span of the input.
type Location struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// posCache converts offsets to positions.
// Computed positions are appended in offset order, a lookup scans forward from the nearest known position.
type posCache struct {
	text  string
	known []Position
}

func newPosCache(text string) *posCache {
	return &posCache{text: text, known: []Position{{Offset: 0, Line: 1, Column: 1}}}
}

func (c *posCache) at(offset int) Position {
	offset = max(0, min(offset, len(c.text)))
	i := sort.Search(len(c.known), func(i int) bool { return c.known[i].Offset > offset }) - 1
	p := c.known[i]
	for p.Offset < offset {
		r, size := utf8.DecodeRuneInString(c.text[p.Offset:])
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		p.Offset += size
	}
	if i == len(c.known)-1 && p.Offset > c.known[i].Offset {
		c.known = append(c.known, p)
	}
	return p
}
