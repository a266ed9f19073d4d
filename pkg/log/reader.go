package log

import (
	"errors"
	"io"
	"iter"
	"os"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events from a capture. Zero fields match everything.
type Filter struct {
	ConnectionID string
	RemoteAddr   string

	Direction *Direction
	Layer     *Layer
	Category  *Category

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time

	// Command keeps command events with this name.
	Command string

	// Status keeps command responses with this outcome.
	Status *CommandStatus

	// Subsystem keeps idle events that wait for or report this subsystem.
	Subsystem string
}

func (f *Filter) matches(e Event) bool {
	return f.matchesEnvelope(e) && f.matchesCommand(e.Command) && f.matchesIdle(e.Idle)
}

func (f *Filter) matchesEnvelope(e Event) bool {
	switch {
	case f.ConnectionID != "" && e.ConnectionID != f.ConnectionID:
		return false
	case f.RemoteAddr != "" && e.RemoteAddr != f.RemoteAddr:
		return false
	case f.Direction != nil && e.Direction != *f.Direction:
		return false
	case f.Layer != nil && e.Layer != *f.Layer:
		return false
	case f.Category != nil && e.Category != *f.Category:
		return false
	case f.TimeStart != nil && e.Timestamp.Before(*f.TimeStart):
		return false
	case f.TimeEnd != nil && !e.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

func (f *Filter) matchesCommand(c *CommandEvent) bool {
	if f.Command == "" && f.Status == nil {
		return true
	}
	if c == nil {
		return false
	}
	if f.Command != "" && c.Name != f.Command {
		return false
	}
	return f.Status == nil || (c.Type == CommandTypeResponse && c.Status == *f.Status)
}

func (f *Filter) matchesIdle(i *IdleEvent) bool {
	if f.Subsystem == "" {
		return true
	}
	if i == nil {
		return false
	}
	// An idle without subsystems waits for all of them.
	if i.Type == IdleStart && len(i.Subsystems) == 0 {
		return true
	}
	return slices.Contains(i.Subsystems, f.Subsystem) || slices.Contains(i.Changed, f.Subsystem)
}

// Reader streams events from a capture file.
type Reader struct {
	closer  io.Closer
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader opens a capture file and reads every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a capture file and reads the events matching
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewStreamReader(f, filter)
	r.closer = f
	return r, nil
}

// NewStreamReader reads events from r. Close does not close r.
func NewStreamReader(r io.Reader, filter Filter) *Reader {
	return &Reader{decoder: NewDecoder(r), filter: filter}
}

// Next returns the next matching event, or io.EOF at the end of the
// capture.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Events yields the remaining matching events. Iteration stops at the end
// of the capture or after the first decode error, which is yielded.
func (r *Reader) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the capture file.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
