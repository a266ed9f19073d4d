package command

import (
	"errors"
	"fmt"

	"github.com/mpdlink/mpd-go/pkg/response"
)

// Registry errors.
var (
	// ErrUnknownCommand indicates a name missing from the table.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArguments indicates an argument count outside the allowed range.
	ErrBadArguments = errors.New("wrong number of arguments")
)

// Unbounded marks a command that accepts any number of trailing arguments.
const Unbounded = -1

// Spec describes how a command is sent and how its response is read.
type Spec struct {
	// Name is the command as written on the wire.
	Name string

	// Method is the exported Go name of the typed wrapper.
	Method string

	// Kind selects the response grammar.
	Kind response.Kind

	// Delimiters split records for response.KindObjects.
	Delimiters []string

	// MinArgs and MaxArgs bound the argument count. MaxArgs may be
	// Unbounded.
	MinArgs int
	MaxArgs int

	// NoList marks commands that must not appear inside a command list.
	NoList bool

	// Internal marks commands driven by the client itself (idle, noidle,
	// close) for which no typed wrapper is generated.
	Internal bool
}

// Batchable reports whether the command may be queued in a command list.
func (s Spec) Batchable() bool {
	return !s.NoList && s.Kind != response.KindBinary
}

// Binary reports whether the response is reassembled from chunks.
func (s Spec) Binary() bool {
	return s.Kind == response.KindBinary
}

// CheckArgs validates an argument count.
func (s Spec) CheckArgs(n int) error {
	if n < s.MinArgs || (s.MaxArgs != Unbounded && n > s.MaxArgs) {
		return fmt.Errorf("%w: %s takes %s, got %d", ErrBadArguments, s.Name, s.arity(), n)
	}
	return nil
}

func (s Spec) arity() string {
	switch {
	case s.MaxArgs == Unbounded:
		return fmt.Sprintf("at least %d", s.MinArgs)
	case s.MinArgs == s.MaxArgs:
		return fmt.Sprintf("exactly %d", s.MinArgs)
	default:
		return fmt.Sprintf("%d to %d", s.MinArgs, s.MaxArgs)
	}
}
