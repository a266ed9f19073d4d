package response

import (
	"fmt"
	"strings"

	"github.com/mpdlink/mpd-go/pkg/wire"
)

// StickerKey is the key of every line in a sticker response.
const StickerKey = "sticker"

// Value is the typed result of one command. Kind tells which field is set.
type Value struct {
	Kind Kind

	// Item is set for KindItem when HasItem is true, and for KindStickerGet.
	Item    string
	HasItem bool

	// List is set for KindList and KindPlaylist.
	List []string

	// Record is set for KindObject.
	Record Record

	// Records is set for KindObjects and KindGroups.
	Records []Record

	// Stickers is set for KindStickers and KindStickerList.
	Stickers map[string]string

	// Binary is set for KindBinary.
	Binary *Binary
}

// Parse applies the grammar of kind to the lines of one response.
// Lines must not include the terminating OK or ACK line.
// Delimiters are only consulted for KindObjects.
func Parse(kind Kind, delimiters []string, lines []wire.Line) (Value, error) {
	v := Value{Kind: kind}
	var err error

	switch kind {
	case KindNothing:
		err = ParseNothing(lines)
	case KindItem:
		v.Item, v.HasItem, err = ParseItem(lines)
	case KindList:
		v.List, err = ParseList(lines)
	case KindPlaylist:
		v.List, err = ParsePlaylist(lines)
	case KindObject:
		v.Record, err = ParseObject(lines)
	case KindObjects:
		v.Records, err = ParseObjects(lines, delimiters...)
	case KindGroups:
		v.Records, err = ParseGroups(lines)
	case KindStickers, KindStickerList:
		v.Stickers, err = ParseStickers(lines)
	case KindStickerGet:
		v.Item, err = ParseStickerGet(lines)
		v.HasItem = err == nil
	default:
		err = fmt.Errorf("%w: no line grammar for %s", wire.ErrProtocol, kind)
	}
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// ParseNothing accepts only an empty response.
func ParseNothing(lines []wire.Line) error {
	if len(lines) > 0 {
		return fmt.Errorf("%w: got unexpected return value: %q", wire.ErrProtocol, lines[0].Text)
	}
	return nil
}

// ParseItem returns the value of the only pair. Any other pair count yields
// no value without an error.
func ParseItem(lines []wire.Line) (string, bool, error) {
	if err := requirePairs(lines); err != nil {
		return "", false, err
	}
	if len(lines) != 1 {
		return "", false, nil
	}
	return lines[0].Value, true, nil
}

// ParseList returns the values of pairs that all share the first pair's key.
func ParseList(lines []wire.Line) ([]string, error) {
	if err := requirePairs(lines); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Key != lines[0].Key {
			return nil, fmt.Errorf("%w: expected key %q, got %q", wire.ErrProtocol, lines[0].Key, l.Key)
		}
		out = append(out, l.Value)
	}
	return out, nil
}

// ParsePlaylist returns the text after the first ':' of each line, the
// format of the legacy "playlist" command ("0:file: a.mp3").
func ParsePlaylist(lines []wire.Line) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		_, value, ok := strings.Cut(l.Text, ":")
		if !ok {
			return nil, fmt.Errorf("%w: could not parse pair: %q", wire.ErrProtocol, l.Text)
		}
		out = append(out, value)
	}
	return out, nil
}

// ParseObject folds all pairs into one record.
func ParseObject(lines []wire.Line) (Record, error) {
	if err := requirePairs(lines); err != nil {
		return Record{}, err
	}
	var r Record
	for _, l := range lines {
		r.Add(l.Key, l.Value)
	}
	return r, nil
}

// ParseObjects folds pairs into records split at the delimiter keys.
func ParseObjects(lines []wire.Line, delimiters ...string) ([]Record, error) {
	return fold(NewGrouper(delimiters...), lines)
}

// ParseGroups folds pairs into records whose delimiters are learned from
// the response.
func ParseGroups(lines []wire.Line) ([]Record, error) {
	return fold(NewLookupGrouper(), lines)
}

func fold(g *Grouper, lines []wire.Line) ([]Record, error) {
	if err := requirePairs(lines); err != nil {
		return nil, err
	}
	var out []Record
	for _, l := range lines {
		if r, ok := g.Feed(l.Key, l.Value); ok {
			out = append(out, r)
		}
	}
	if r, ok := g.Flush(); ok {
		out = append(out, r)
	}
	return out, nil
}

// ParseStickers returns sticker name/value pairs as a map.
// Later duplicates overwrite earlier ones.
func ParseStickers(lines []wire.Line) (map[string]string, error) {
	out := make(map[string]string, len(lines))
	for _, l := range lines {
		name, value, err := ParseSticker(l)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

// ParseStickerGet returns the value of the single sticker in the response.
func ParseStickerGet(lines []wire.Line) (string, error) {
	if len(lines) != 1 {
		return "", fmt.Errorf("%w: expected one sticker, got %d", wire.ErrProtocol, len(lines))
	}
	_, value, err := ParseSticker(lines[0])
	return value, err
}

// ParseSticker splits a "sticker: name=value" line once on '='.
func ParseSticker(l wire.Line) (string, string, error) {
	if l.Kind != wire.LinePair || l.Key != StickerKey {
		return "", "", fmt.Errorf("%w: could not parse sticker: %q", wire.ErrProtocol, l.Text)
	}
	name, value, ok := strings.Cut(l.Value, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: could not parse sticker: %q", wire.ErrProtocol, l.Value)
	}
	return name, value, nil
}

func requirePairs(lines []wire.Line) error {
	for _, l := range lines {
		if l.Kind != wire.LinePair {
			return fmt.Errorf("%w: could not parse pair: %q", wire.ErrProtocol, l.Text)
		}
	}
	return nil
}
