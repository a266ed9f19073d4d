// Package command holds the static table of MPD commands.
//
// Each entry names the response grammar, the record delimiters for
// listing commands, the accepted argument count, and whether the command
// may be batched in a command list. The protocol engine is generic over
// this table: adding a command means adding one line here and regenerating
// the typed wrappers with mpd-cmdgen.
package command
