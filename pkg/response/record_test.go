package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordDeleteAndClone(t *testing.T) {
	r := NewRecord("Size", "10", "type", "image/png", "size", "11")
	assert.Equal(t, []string{"size", "type"}, r.Keys())

	c := r.Clone()
	c.Delete("SIZE")

	assert.False(t, c.Has("size"))
	assert.Equal(t, []string{"type"}, c.Keys())
	assert.True(t, r.Has("size"), "clone must not share state")
	assert.False(t, r.Equal(c))

	c.Delete("missing")
	assert.Equal(t, 1, c.Len())
}

func TestRecordEqual(t *testing.T) {
	a := NewRecord("a", "1", "b", "2")
	b := NewRecord("a", "1", "b", "2")
	reordered := NewRecord("b", "2", "a", "1")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered))
	assert.True(t, Record{}.Equal(Record{}))
}

func TestGrouperIncremental(t *testing.T) {
	g := NewGrouper("file")

	_, ok := g.Feed("file", "a")
	assert.False(t, ok)
	_, ok = g.Feed("Title", "A")
	assert.False(t, ok)

	rec, ok := g.Feed("file", "b")
	assert.True(t, ok)
	assert.Equal(t, "A", rec.Value("title"))

	rec, ok = g.Flush()
	assert.True(t, ok)
	assert.Equal(t, "b", rec.Value("file"))

	_, ok = g.Flush()
	assert.False(t, ok)
}
