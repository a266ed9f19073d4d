// Package wire implements the text encoding of the MPD client protocol.
//
// MPD speaks a line-oriented, strictly request/response protocol over a
// byte stream. A request is a single line: the command name followed by
// double-quoted arguments. A response is a run of "key: value" lines
// terminated by "OK" or by an "ACK" error line.
//
// # Requests
//
// Commands are built from typed arguments so that ranges are never
// confused with strings that happen to contain a colon:
//
//	cmd := wire.NewCommand("playlistinfo", wire.RangeOf(0, 10))
//	line := wire.EncodeCommand(cmd) // playlistinfo "0:10"
//
// # Responses
//
// ParseLine classifies one response line. It never fails: lines without a
// ": " separator are returned as LineText and left to the response grammar,
// which treats them as protocol errors except for the legacy playlist
// listing.
//
// # Errors
//
// ErrConnection and ErrProtocol are the two fatal error families shared by
// every layer above this package. Server errors are represented by AckError.
package wire
