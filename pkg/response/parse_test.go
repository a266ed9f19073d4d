package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpdlink/mpd-go/pkg/wire"
)

func lines(texts ...string) []wire.Line {
	out := make([]wire.Line, len(texts))
	for i, t := range texts {
		out[i] = wire.ParseLine(t)
	}
	return out
}

func TestParseNothing(t *testing.T) {
	require.NoError(t, ParseNothing(nil))

	err := ParseNothing(lines("volume: 1"))
	assert.True(t, errors.Is(err, wire.ErrProtocol))
}

func TestParseItem(t *testing.T) {
	v, ok, err := ParseItem(lines("updating_db: 42"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	_, ok, err = ParseItem(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ParseItem(lines("a: 1", "b: 2"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseList(t *testing.T) {
	got, err := ParseList(lines("command: play", "command: pause", "command: stop"))
	require.NoError(t, err)
	assert.Equal(t, []string{"play", "pause", "stop"}, got)

	got, err = ParseList(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseList(lines("command: play", "other: x"))
	assert.True(t, errors.Is(err, wire.ErrProtocol))

	_, err = ParseList(lines("command: play", "no separator"))
	assert.True(t, errors.Is(err, wire.ErrProtocol))
}

func TestParsePlaylist(t *testing.T) {
	got, err := ParsePlaylist(lines("0:file: a.mp3", "1:file: b c.ogg"))
	require.NoError(t, err)
	assert.Equal(t, []string{"file: a.mp3", "file: b c.ogg"}, got)

	_, err = ParsePlaylist(lines("nocolon"))
	assert.True(t, errors.Is(err, wire.ErrProtocol))
}

func TestParseObjectRepeatedKey(t *testing.T) {
	r, err := ParseObject(lines("Track: file1", "Track: file2"))
	require.NoError(t, err)

	assert.Equal(t, []string{"track"}, r.Keys())
	assert.Equal(t, []string{"file1", "file2"}, r.Values("track"))
	assert.True(t, r.IsList("Track"))
	assert.Equal(t, map[string]any{"track": []string{"file1", "file2"}}, r.Map())
}

func TestParseObjectKeepsFirstPosition(t *testing.T) {
	r, err := ParseObject(lines("Artist: a", "Title: t", "Artist: b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"artist", "title"}, r.Keys())
	assert.Equal(t, "a", r.Value("artist"))

	empty, err := ParseObject(nil)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func TestParseObjectsDelimited(t *testing.T) {
	recs, err := ParseObjects(lines(
		"directory: music",
		"Last-Modified: 2024-01-01T00:00:00Z",
		"file: music/a.mp3",
		"Title: A",
		"file: music/b.mp3",
		"Title: B",
		"playlist: mix.m3u",
	), "file", "directory", "playlist")
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.Equal(t, "music", recs[0].Value("directory"))
	assert.Equal(t, "2024-01-01T00:00:00Z", recs[0].Value("last-modified"))
	assert.Equal(t, "music/a.mp3", recs[1].Value("file"))
	assert.Equal(t, "B", recs[2].Value("title"))
	assert.Equal(t, "mix.m3u", recs[3].Value("playlist"))
}

func TestParseObjectsMultiValueTag(t *testing.T) {
	recs, err := ParseObjects(lines(
		"file: a.flac",
		"Artist: X",
		"Artist: Y",
		"file: b.flac",
	), "file")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"X", "Y"}, recs[0].Values("artist"))
	assert.False(t, recs[1].Has("artist"))
}

func TestParseGroupsFlat(t *testing.T) {
	recs, err := ParseGroups(lines(
		"Album: Absolutely Free",
		"Artist: The Mothers of Invention",
		"Album: Freak Out!",
		"Artist: The Mothers of Invention",
		"Album: Hot Rats",
		"Artist: Frank Zappa",
	))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.True(t, recs[0].Equal(NewRecord("album", "Absolutely Free", "artist", "The Mothers of Invention")))
	assert.True(t, recs[1].Equal(NewRecord("album", "Freak Out!", "artist", "The Mothers of Invention")))
	assert.True(t, recs[2].Equal(NewRecord("album", "Hot Rats", "artist", "Frank Zappa")))
}

func TestParseGroupsHierarchical(t *testing.T) {
	recs, err := ParseGroups(lines(
		"Artist: X",
		"Album: A",
		"Album: B",
		"Artist: Y",
		"Album: C",
	))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.True(t, recs[0].Equal(NewRecord("artist", "X", "album", "A")))
	assert.True(t, recs[1].Equal(NewRecord("artist", "X", "album", "B")))
	assert.True(t, recs[2].Equal(NewRecord("artist", "Y", "album", "C")))
}

func TestParseGroupsSingleKey(t *testing.T) {
	recs, err := ParseGroups(lines("Genre: Jazz", "Genre: Rock"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Rock", recs[1].Value("genre"))
}

func TestParseStickers(t *testing.T) {
	got, err := ParseStickers(lines("sticker: rating=5", "sticker: note=a=b"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rating": "5", "note": "a=b"}, got)

	_, err = ParseStickers(lines("sticker: broken"))
	assert.True(t, errors.Is(err, wire.ErrProtocol))

	_, err = ParseStickers(lines("other: a=b"))
	assert.True(t, errors.Is(err, wire.ErrProtocol))
}

func TestParseStickerGet(t *testing.T) {
	v, err := ParseStickerGet(lines("sticker: rating=5"))
	require.NoError(t, err)
	assert.Equal(t, "5", v)

	_, err = ParseStickerGet(nil)
	assert.True(t, errors.Is(err, wire.ErrProtocol))
}

func TestParseDispatch(t *testing.T) {
	v, err := Parse(KindObjects, []string{"outputid"}, lines(
		"outputid: 0", "outputname: A", "outputid: 1", "outputname: B",
	))
	require.NoError(t, err)
	assert.Equal(t, KindObjects, v.Kind)
	assert.Len(t, v.Records, 2)

	v, err = Parse(KindStickerGet, nil, lines("sticker: x=1"))
	require.NoError(t, err)
	assert.True(t, v.HasItem)
	assert.Equal(t, "1", v.Item)

	_, err = Parse(KindBinary, nil, nil)
	assert.True(t, errors.Is(err, wire.ErrProtocol))
}
