package mpd

import (
	"errors"
	"fmt"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Fatal error classes. Either one ends the connection.
var (
	// ErrConnection indicates a broken, closed or never established
	// connection.
	ErrConnection = wire.ErrConnection

	// ErrProtocol indicates a response that violates the line grammar.
	ErrProtocol = wire.ErrProtocol
)

// CommandError is a server ACK. It is local to one command or command list
// item; the connection stays usable.
type CommandError = wire.AckError

// Command list errors.
var (
	// ErrCommandList indicates command list misuse: a nested begin, an end
	// without a begin, or a command that cannot be batched.
	ErrCommandList = errors.New("mpd: command list error")

	// ErrEarlierCommandFailed is reported for every list item after the
	// one the server rejected.
	ErrEarlierCommandFailed = fmt.Errorf("%w: an earlier command failed", ErrCommandList)
)

// Sequencing errors. They are raised locally, before anything is written.
var (
	// ErrPending indicates a command whose response was not fetched yet,
	// or a fetch without a pending command.
	ErrPending = errors.New("mpd: pending command error")

	// ErrIterating indicates an open RecordIterator.
	ErrIterating = errors.New("mpd: iterator open")

	// ErrIdling indicates the session is waiting in idle.
	ErrIdling = errors.New("mpd: session is idling")

	// ErrNotIdling indicates noidle without an outstanding idle.
	ErrNotIdling = errors.New("mpd: session is not idling")

	// ErrNotIterable indicates a command whose response is not a record
	// stream.
	ErrNotIterable = errors.New("mpd: command does not return records")

	// ErrReserved indicates a command the client issues itself (idle,
	// noidle, close).
	ErrReserved = errors.New("mpd: command is reserved")

	// ErrUnknownCommand indicates a name missing from the command table.
	ErrUnknownCommand = command.ErrUnknownCommand

	// ErrBadArguments indicates an argument count outside the allowed
	// range.
	ErrBadArguments = command.ErrBadArguments
)

// Client errors.
var (
	// ErrQueueFull indicates the submission queue is at capacity.
	ErrQueueFull = errors.New("mpd: request queue full")

	// ErrClosed indicates the client or session was closed by its owner.
	ErrClosed = fmt.Errorf("%w: closed", wire.ErrConnection)
)

// IsFatal reports whether err ends the connection.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrProtocol)
}

// AsCommandError returns the server ACK carried by err, if any.
func AsCommandError(err error) (*CommandError, bool) {
	var ack *CommandError
	if errors.As(err, &ack) {
		return ack, true
	}
	return nil, false
}
