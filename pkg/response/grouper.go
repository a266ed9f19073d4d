package response

import (
	"slices"
	"strings"
)

// Grouper folds a stream of pairs into records.
//
// With a fixed delimiter set, a delimiter key arriving while the current
// record is non-empty closes that record. Without one (lookup mode) the
// first key seen becomes the outermost level and each new key the next
// narrower level; when a level key recurs, the current record is closed and
// the next one inherits only the fields of the levels outside it.
//
// A Grouper is not safe for concurrent use.
type Grouper struct {
	delimiters []string
	lookup     bool
	levels     []string
	cur        Record
}

// NewGrouper creates a fold that splits at the given delimiter keys.
// Keys are compared case-insensitively.
func NewGrouper(delimiters ...string) *Grouper {
	g := &Grouper{}
	for _, d := range delimiters {
		g.delimiters = append(g.delimiters, strings.ToLower(d))
	}
	return g
}

// NewLookupGrouper creates a fold whose delimiters are learned from the
// order keys first appear in.
func NewLookupGrouper() *Grouper {
	return &Grouper{lookup: true}
}

// Feed adds one pair. When it closes the previous record, that record is
// returned with ok set.
func (g *Grouper) Feed(key, value string) (Record, bool) {
	key = strings.ToLower(key)
	if g.lookup {
		return g.feedLookup(key, value)
	}

	var out Record
	var emitted bool
	if !g.cur.Empty() && slices.Contains(g.delimiters, key) {
		out, emitted = g.cur, true
		g.cur = Record{}
	}
	g.cur.Add(key, value)
	return out, emitted
}

func (g *Grouper) feedLookup(key, value string) (Record, bool) {
	level := slices.Index(g.levels, key)
	if level < 0 {
		g.levels = append(g.levels, key)
		g.cur.Add(key, value)
		return Record{}, false
	}

	if !g.cur.Has(key) {
		g.cur.Add(key, value)
		return Record{}, false
	}

	out := g.cur
	g.cur = out.retain(g.levels[:level])
	g.cur.Add(key, value)
	return out, true
}

// Flush returns the record in progress, if any, and resets the fold.
func (g *Grouper) Flush() (Record, bool) {
	out := g.cur
	g.cur = Record{}
	return out, !out.Empty()
}
