package shell

import (
	"fmt"
	"io"
	"sort"

	"github.com/mpdlink/mpd-go/pkg/response"
)

// FormatValue writes a parsed response in the "key: value" form the
// server uses, with records separated by blank lines.
func FormatValue(w io.Writer, v response.Value) {
	switch v.Kind {
	case response.KindNothing:
		fmt.Fprintln(w, "OK")
	case response.KindItem, response.KindStickerGet:
		if v.HasItem || v.Kind == response.KindStickerGet {
			fmt.Fprintln(w, v.Item)
		} else {
			fmt.Fprintln(w, "(none)")
		}
	case response.KindList, response.KindPlaylist:
		for _, item := range v.List {
			fmt.Fprintln(w, item)
		}
	case response.KindObject:
		formatRecord(w, v.Record)
	case response.KindObjects, response.KindGroups:
		for i, rec := range v.Records {
			if i > 0 {
				fmt.Fprintln(w)
			}
			formatRecord(w, rec)
		}
	case response.KindStickers, response.KindStickerList:
		names := make([]string, 0, len(v.Stickers))
		for name := range v.Stickers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s=%s\n", name, v.Stickers[name])
		}
	case response.KindBinary:
		if v.Binary != nil {
			FormatBinary(w, v.Binary)
		}
	}
}

func formatRecord(w io.Writer, rec response.Record) {
	for _, key := range rec.Keys() {
		for _, value := range rec.Values(key) {
			fmt.Fprintf(w, "%s: %s\n", key, value)
		}
	}
}

// FormatBinary writes the metadata and payload size of a binary transfer.
func FormatBinary(w io.Writer, b *response.Binary) {
	formatRecord(w, b.Metadata)
	if !b.HasBinary {
		fmt.Fprintln(w, "(no binary data)")
		return
	}
	fmt.Fprintf(w, "binary: %d bytes\n", b.Size())
}
