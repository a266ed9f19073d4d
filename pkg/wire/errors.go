package wire

import "errors"

// Fatal error families shared by the transport, grammar and client layers.
// Wrap them with fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	// ErrConnection indicates the byte stream is unusable: closed, broken,
	// truncated mid-line, or the handshake failed.
	ErrConnection = errors.New("mpd: connection error")

	// ErrProtocol indicates the server sent something the grammar cannot
	// accept. The stream can no longer be trusted after it.
	ErrProtocol = errors.New("mpd: protocol error")
)
