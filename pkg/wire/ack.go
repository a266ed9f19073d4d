package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// AckCode is the numeric error code carried by an ACK line.
type AckCode int

const (
	// AckNotList indicates a list-only command was sent outside a list.
	AckNotList AckCode = 1

	// AckArgument indicates a malformed or out-of-range argument.
	AckArgument AckCode = 2

	// AckPassword indicates a wrong password.
	AckPassword AckCode = 3

	// AckPermission indicates the client lacks permission for the command.
	AckPermission AckCode = 4

	// AckUnknown indicates an unknown command.
	AckUnknown AckCode = 5

	// AckNoExist indicates the requested object does not exist.
	AckNoExist AckCode = 50

	// AckPlaylistMax indicates the playlist is full.
	AckPlaylistMax AckCode = 51

	// AckSystem indicates a filesystem or system error on the server.
	AckSystem AckCode = 52

	// AckPlaylistLoad indicates a stored playlist failed to load.
	AckPlaylistLoad AckCode = 53

	// AckUpdateAlready indicates a database update is already running.
	AckUpdateAlready AckCode = 54

	// AckPlayerSync indicates the player state could not be synchronized.
	AckPlayerSync AckCode = 55

	// AckExist indicates the object already exists.
	AckExist AckCode = 56
)

// String returns the code name.
func (c AckCode) String() string {
	switch c {
	case AckNotList:
		return "NOT_LIST"
	case AckArgument:
		return "ARG"
	case AckPassword:
		return "PASSWORD"
	case AckPermission:
		return "PERMISSION"
	case AckUnknown:
		return "UNKNOWN"
	case AckNoExist:
		return "NO_EXIST"
	case AckPlaylistMax:
		return "PLAYLIST_MAX"
	case AckSystem:
		return "SYSTEM"
	case AckPlaylistLoad:
		return "PLAYLIST_LOAD"
	case AckUpdateAlready:
		return "UPDATE_ALREADY"
	case AckPlayerSync:
		return "PLAYER_SYNC"
	case AckExist:
		return "EXIST"
	default:
		return fmt.Sprintf("ACK_%d", int(c))
	}
}

// AckError is a server-reported command failure.
// Offset is the index of the failing command inside a command list and 0
// otherwise. The connection stays usable after an AckError.
type AckError struct {
	Code    AckCode
	Offset  int
	Command string
	Message string
}

// Error implements the error interface.
func (e *AckError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("mpd: [%d@%d] %s", int(e.Code), e.Offset, e.Message)
	}
	return fmt.Sprintf("mpd: [%d@%d] {%s} %s", int(e.Code), e.Offset, e.Command, e.Message)
}

// Is reports whether target is an AckError with the same code.
// A zero-code target matches any AckError.
func (e *AckError) Is(target error) bool {
	t, ok := target.(*AckError)
	if !ok {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// parseAck decodes the text after "ACK ". The expected shape is
// "[<errno>@<offset>] {<command>} <message>". Bodies that do not match keep
// the zero code and carry the raw body as the message.
func parseAck(body string) *AckError {
	raw := &AckError{Message: body}

	if !strings.HasPrefix(body, "[") {
		return raw
	}
	end := strings.IndexByte(body, ']')
	if end < 0 {
		return raw
	}
	codeStr, offStr, ok := strings.Cut(body[1:end], "@")
	if !ok {
		return raw
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return raw
	}
	offset, err := strconv.Atoi(offStr)
	if err != nil {
		return raw
	}

	rest := strings.TrimPrefix(body[end+1:], " ")
	if !strings.HasPrefix(rest, "{") {
		return raw
	}
	cmdEnd := strings.IndexByte(rest, '}')
	if cmdEnd < 0 {
		return raw
	}

	return &AckError{
		Code:    AckCode(code),
		Offset:  offset,
		Command: rest[1:cmdEnd],
		Message: strings.TrimPrefix(rest[cmdEnd+1:], " "),
	}
}
