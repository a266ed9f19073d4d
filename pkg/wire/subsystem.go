package wire

// Subsystem names reported by the idle command.
const (
	SubsystemDatabase       = "database"
	SubsystemUpdate         = "update"
	SubsystemStoredPlaylist = "stored_playlist"
	SubsystemPlaylist       = "playlist"
	SubsystemPlayer         = "player"
	SubsystemMixer          = "mixer"
	SubsystemOutput         = "output"
	SubsystemOptions        = "options"
	SubsystemPartition      = "partition"
	SubsystemSticker        = "sticker"
	SubsystemSubscription   = "subscription"
	SubsystemMessage        = "message"
	SubsystemNeighbor       = "neighbor"
	SubsystemMount          = "mount"
)

// AllSubsystems lists every subsystem the server can report.
// It is also used to synthesize a notification when the real change set
// is unknown.
var AllSubsystems = []string{
	SubsystemDatabase,
	SubsystemUpdate,
	SubsystemStoredPlaylist,
	SubsystemPlaylist,
	SubsystemPlayer,
	SubsystemMixer,
	SubsystemOutput,
	SubsystemOptions,
	SubsystemPartition,
	SubsystemSticker,
	SubsystemSubscription,
	SubsystemMessage,
	SubsystemNeighbor,
	SubsystemMount,
}
