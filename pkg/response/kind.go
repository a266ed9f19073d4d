package response

// Kind selects the grammar applied to a command's response lines.
type Kind uint8

const (
	// KindNothing expects an empty response.
	KindNothing Kind = iota

	// KindItem yields the value of a single pair.
	KindItem

	// KindList yields the values of pairs that all share one key.
	KindList

	// KindPlaylist splits raw lines on the first ':' (legacy playlist output).
	KindPlaylist

	// KindObject folds all pairs into one record.
	KindObject

	// KindObjects folds pairs into records split at delimiter keys.
	KindObjects

	// KindGroups folds pairs into records whose delimiters are learned from
	// the response itself (grouped "list" output).
	KindGroups

	// KindStickers yields name/value pairs from "sticker" lines.
	KindStickers

	// KindStickerGet yields the value of a single sticker.
	KindStickerGet

	// KindStickerList yields all stickers as a map.
	KindStickerList

	// KindBinary marks commands whose payload is reassembled from chunks.
	KindBinary
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "NOTHING"
	case KindItem:
		return "ITEM"
	case KindList:
		return "LIST"
	case KindPlaylist:
		return "PLAYLIST"
	case KindObject:
		return "OBJECT"
	case KindObjects:
		return "OBJECTS"
	case KindGroups:
		return "GROUPS"
	case KindStickers:
		return "STICKERS"
	case KindStickerGet:
		return "STICKER_GET"
	case KindStickerList:
		return "STICKER_LIST"
	case KindBinary:
		return "BINARY"
	default:
		return "UNKNOWN"
	}
}

// Streams reports whether the kind produces a sequence of records that can
// be consumed incrementally.
func (k Kind) Streams() bool {
	return k == KindObjects || k == KindGroups
}
