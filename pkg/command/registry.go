package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mpdlink/mpd-go/pkg/response"
)

// Delimiter sets shared by several listing commands.
var (
	songDelimiters     = []string{"file"}
	databaseDelimiters = []string{"file", "directory", "playlist"}
)

const (
	kNothing     = response.KindNothing
	kItem        = response.KindItem
	kList        = response.KindList
	kPlaylist    = response.KindPlaylist
	kObject      = response.KindObject
	kObjects     = response.KindObjects
	kGroups      = response.KindGroups
	kStickerGet  = response.KindStickerGet
	kStickerList = response.KindStickerList
	kBinary      = response.KindBinary
)

// table is the static command table. It is indexed once at init.
var table = []Spec{
	// Status
	{Name: "clearerror", Method: "ClearError", Kind: kNothing},
	{Name: "currentsong", Method: "CurrentSong", Kind: kObject},
	{Name: "idle", Method: "Idle", Kind: kList, MaxArgs: Unbounded, NoList: true, Internal: true},
	{Name: "noidle", Method: "NoIdle", Kind: kNothing, NoList: true, Internal: true},
	{Name: "status", Method: "Status", Kind: kObject},
	{Name: "stats", Method: "Stats", Kind: kObject},

	// Playback options
	{Name: "consume", Method: "Consume", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "crossfade", Method: "Crossfade", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "getvol", Method: "GetVol", Kind: kItem},
	{Name: "mixrampdb", Method: "MixrampDB", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "mixrampdelay", Method: "MixrampDelay", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "random", Method: "Random", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "repeat", Method: "Repeat", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "replay_gain_mode", Method: "ReplayGainMode", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "replay_gain_status", Method: "ReplayGainStatus", Kind: kItem},
	{Name: "setvol", Method: "SetVol", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "single", Method: "Single", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "volume", Method: "Volume", Kind: kNothing, MinArgs: 1, MaxArgs: 1},

	// Playback control
	{Name: "next", Method: "Next", Kind: kNothing},
	{Name: "pause", Method: "Pause", Kind: kNothing, MaxArgs: 1},
	{Name: "play", Method: "Play", Kind: kNothing, MaxArgs: 1},
	{Name: "playid", Method: "PlayID", Kind: kNothing, MaxArgs: 1},
	{Name: "previous", Method: "Previous", Kind: kNothing},
	{Name: "seek", Method: "Seek", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "seekcur", Method: "SeekCur", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "seekid", Method: "SeekID", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "stop", Method: "Stop", Kind: kNothing},

	// Queue
	{Name: "add", Method: "Add", Kind: kNothing, MinArgs: 1, MaxArgs: 2},
	{Name: "addid", Method: "AddID", Kind: kItem, MinArgs: 1, MaxArgs: 2},
	{Name: "addtagid", Method: "AddTagID", Kind: kNothing, MinArgs: 3, MaxArgs: 3},
	{Name: "clear", Method: "Clear", Kind: kNothing},
	{Name: "cleartagid", Method: "ClearTagID", Kind: kNothing, MinArgs: 1, MaxArgs: 2},
	{Name: "delete", Method: "Delete", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "deleteid", Method: "DeleteID", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "move", Method: "Move", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "moveid", Method: "MoveID", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "playlist", Method: "Playlist", Kind: kPlaylist},
	{Name: "playlistfind", Method: "PlaylistFind", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "playlistid", Method: "PlaylistID", Kind: kObjects, Delimiters: songDelimiters, MaxArgs: 1},
	{Name: "playlistinfo", Method: "PlaylistInfo", Kind: kObjects, Delimiters: songDelimiters, MaxArgs: 1},
	{Name: "playlistsearch", Method: "PlaylistSearch", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "plchanges", Method: "PlChanges", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 1, MaxArgs: 2},
	{Name: "plchangesposid", Method: "PlChangesPosID", Kind: kObjects, Delimiters: []string{"cpos"}, MinArgs: 1, MaxArgs: 2},
	{Name: "prio", Method: "Prio", Kind: kNothing, MinArgs: 2, MaxArgs: Unbounded},
	{Name: "prioid", Method: "PrioID", Kind: kNothing, MinArgs: 2, MaxArgs: Unbounded},
	{Name: "rangeid", Method: "RangeID", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "shuffle", Method: "Shuffle", Kind: kNothing, MaxArgs: 1},
	{Name: "swap", Method: "Swap", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "swapid", Method: "SwapID", Kind: kNothing, MinArgs: 2, MaxArgs: 2},

	// Stored playlists
	{Name: "listplaylist", Method: "ListPlaylist", Kind: kList, MinArgs: 1, MaxArgs: 2},
	{Name: "listplaylistinfo", Method: "ListPlaylistInfo", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 1, MaxArgs: 2},
	{Name: "listplaylists", Method: "ListPlaylists", Kind: kObjects, Delimiters: []string{"playlist"}},
	{Name: "load", Method: "Load", Kind: kNothing, MinArgs: 1, MaxArgs: 3},
	{Name: "playlistadd", Method: "PlaylistAdd", Kind: kNothing, MinArgs: 2, MaxArgs: 3},
	{Name: "playlistclear", Method: "PlaylistClear", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "playlistdelete", Method: "PlaylistDelete", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "playlistmove", Method: "PlaylistMove", Kind: kNothing, MinArgs: 3, MaxArgs: 3},
	{Name: "rename", Method: "Rename", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "rm", Method: "Rm", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "save", Method: "Save", Kind: kNothing, MinArgs: 1, MaxArgs: 2},

	// Database
	{Name: "albumart", Method: "AlbumArt", Kind: kBinary, MinArgs: 1, MaxArgs: 1, NoList: true},
	{Name: "count", Method: "Count", Kind: kObject, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "find", Method: "Find", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "findadd", Method: "FindAdd", Kind: kNothing, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "list", Method: "List", Kind: kGroups, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "listall", Method: "ListAll", Kind: kObjects, Delimiters: databaseDelimiters, MaxArgs: 1},
	{Name: "listallinfo", Method: "ListAllInfo", Kind: kObjects, Delimiters: databaseDelimiters, MaxArgs: 1},
	{Name: "listfiles", Method: "ListFiles", Kind: kObjects, Delimiters: databaseDelimiters, MaxArgs: 1},
	{Name: "lsinfo", Method: "LsInfo", Kind: kObjects, Delimiters: databaseDelimiters, MaxArgs: 1},
	{Name: "readcomments", Method: "ReadComments", Kind: kObject, MinArgs: 1, MaxArgs: 1},
	{Name: "readpicture", Method: "ReadPicture", Kind: kBinary, MinArgs: 1, MaxArgs: 1, NoList: true},
	{Name: "rescan", Method: "Rescan", Kind: kItem, MaxArgs: 1},
	{Name: "search", Method: "Search", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "searchadd", Method: "SearchAdd", Kind: kNothing, MinArgs: 1, MaxArgs: Unbounded},
	{Name: "searchaddpl", Method: "SearchAddPl", Kind: kNothing, MinArgs: 2, MaxArgs: Unbounded},
	{Name: "update", Method: "Update", Kind: kItem, MaxArgs: 1},

	// Mounts and neighbors
	{Name: "listmounts", Method: "ListMounts", Kind: kObjects, Delimiters: []string{"mount"}},
	{Name: "listneighbors", Method: "ListNeighbors", Kind: kObjects, Delimiters: []string{"neighbor"}},
	{Name: "mount", Method: "Mount", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "umount", Method: "Umount", Kind: kNothing, MinArgs: 1, MaxArgs: 1},

	// Stickers
	{Name: "sticker delete", Method: "StickerDelete", Kind: kNothing, MinArgs: 2, MaxArgs: 3},
	{Name: "sticker find", Method: "StickerFind", Kind: kObjects, Delimiters: songDelimiters, MinArgs: 3, MaxArgs: 5},
	{Name: "sticker get", Method: "StickerGet", Kind: kStickerGet, MinArgs: 3, MaxArgs: 3},
	{Name: "sticker list", Method: "StickerList", Kind: kStickerList, MinArgs: 2, MaxArgs: 2},
	{Name: "sticker set", Method: "StickerSet", Kind: kNothing, MinArgs: 4, MaxArgs: 4},
	{Name: "stickernames", Method: "StickerNames", Kind: kList},

	// Connection
	{Name: "binarylimit", Method: "BinaryLimit", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "close", Method: "CloseConnection", Kind: kNothing, NoList: true, Internal: true},
	{Name: "kill", Method: "Kill", Kind: kNothing, NoList: true},
	{Name: "password", Method: "Password", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "ping", Method: "Ping", Kind: kNothing},

	// Partitions
	{Name: "delpartition", Method: "DelPartition", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "listpartitions", Method: "ListPartitions", Kind: kObjects, Delimiters: []string{"partition"}},
	{Name: "moveoutput", Method: "MoveOutput", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "newpartition", Method: "NewPartition", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "partition", Method: "Partition", Kind: kNothing, MinArgs: 1, MaxArgs: 1},

	// Audio outputs
	{Name: "disableoutput", Method: "DisableOutput", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "enableoutput", Method: "EnableOutput", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "outputs", Method: "Outputs", Kind: kObjects, Delimiters: []string{"outputid"}},
	{Name: "outputvolume", Method: "OutputVolume", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "toggleoutput", Method: "ToggleOutput", Kind: kNothing, MinArgs: 1, MaxArgs: 1},

	// Reflection
	{Name: "commands", Method: "Commands", Kind: kList},
	{Name: "config", Method: "Config", Kind: kItem},
	{Name: "decoders", Method: "Decoders", Kind: kObjects, Delimiters: []string{"plugin"}},
	{Name: "notcommands", Method: "NotCommands", Kind: kList},
	{Name: "tagtypes", Method: "TagTypes", Kind: kList, MaxArgs: Unbounded},
	{Name: "urlhandlers", Method: "URLHandlers", Kind: kList},

	// Client to client
	{Name: "channels", Method: "Channels", Kind: kList},
	{Name: "readmessages", Method: "ReadMessages", Kind: kObjects, Delimiters: []string{"channel"}},
	{Name: "sendmessage", Method: "SendMessage", Kind: kNothing, MinArgs: 2, MaxArgs: 2},
	{Name: "subscribe", Method: "SubscribeChannel", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
	{Name: "unsubscribe", Method: "UnsubscribeChannel", Kind: kNothing, MinArgs: 1, MaxArgs: 1},
}

var byName map[string]Spec

func init() {
	byName = make(map[string]Spec, len(table))
	for _, s := range table {
		if _, dup := byName[s.Name]; dup {
			panic(fmt.Sprintf("command: duplicate table entry %q", s.Name))
		}
		byName[s.Name] = s
	}
}

// Lookup returns the spec for a command name. Names are case-insensitive.
func Lookup(name string) (Spec, bool) {
	s, ok := byName[strings.ToLower(name)]
	return s, ok
}

// MustLookup returns the spec for name or an ErrUnknownCommand error.
func MustLookup(name string) (Spec, error) {
	s, ok := Lookup(name)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return s, nil
}

// Validate looks up name and checks the argument count.
func Validate(name string, nargs int) (Spec, error) {
	s, err := MustLookup(name)
	if err != nil {
		return Spec{}, err
	}
	if err := s.CheckArgs(nargs); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// All returns every spec sorted by name.
func All() []Spec {
	out := make([]Spec, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every command name, sorted.
func Names() []string {
	specs := All()
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}

// SplitName resolves the command name at the start of tokens, joining a
// two-word name such as "sticker get" when the table knows it. It returns
// the name and the remaining arguments.
func SplitName(tokens []string) (string, []string, bool) {
	if len(tokens) == 0 {
		return "", nil, false
	}
	if len(tokens) > 1 {
		joined := strings.ToLower(tokens[0] + " " + tokens[1])
		if _, ok := byName[joined]; ok {
			return joined, tokens[2:], true
		}
	}
	name := strings.ToLower(tokens[0])
	_, ok := byName[name]
	return name, tokens[1:], ok
}
