package mpd

import (
	"context"
	"fmt"
	"time"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/response"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Command list markers.
const (
	listBegin = "command_list_ok_begin"
	listEnd   = "command_list_end"
)

// Result is the outcome of one command list item.
type Result struct {
	Command wire.Command
	Value   response.Value
	Err     error
}

// CommandList batches commands into one server-side transaction. Each Add
// writes its command immediately; End writes the closing marker and reads
// one result per item.
//
// If the server rejects item k, item k carries its *CommandError and every
// later item carries its own error wrapping ErrEarlierCommandFailed. The
// session stays usable either way.
type CommandList struct {
	s     *Session
	items []*request
	start time.Time
	ended bool
}

// BeginCommandList opens a command list. It is refused while idling, while
// a command is pending, while iterating, and while another list is open.
func (s *Session) BeginCommandList(ctx context.Context) (*CommandList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	cl := &CommandList{s: s, start: time.Now()}
	s.list = cl
	s.mu.Unlock()

	if err := s.write(wire.NewCommand(listBegin), nil); err != nil {
		return nil, err
	}
	cl.logMarker(log.CommandTypeListBegin, log.CommandStatusOK, "")
	return cl, nil
}

// Len returns the number of queued items.
func (cl *CommandList) Len() int { return len(cl.items) }

// Add validates a command and writes it as the next list item.
func (cl *CommandList) Add(name string, args ...any) error {
	if cl.ended {
		return fmt.Errorf("%w: not in a command list", ErrCommandList)
	}
	spec, cmd, err := prepareBatchable(name, args)
	if err != nil {
		return err
	}
	return cl.add(spec, cmd)
}

func (cl *CommandList) add(spec command.Spec, cmd wire.Command) error {
	idx := len(cl.items)
	if err := cl.s.write(cmd, &idx); err != nil {
		return err
	}
	cl.items = append(cl.items, &request{spec: spec, cmd: cmd, sent: time.Now()})
	return nil
}

// End closes the list and reads every item's result, in submission order.
// The returned error is nil when all items succeeded, the server's
// *CommandError when one was rejected, and a fatal error otherwise, in
// which case no results are returned.
func (cl *CommandList) End(ctx context.Context) ([]Result, error) {
	if cl.ended {
		return nil, fmt.Errorf("%w: not in a command list", ErrCommandList)
	}
	cl.ended = true
	defer cl.release()

	s := cl.s
	if err := s.write(wire.NewCommand(listEnd), nil); err != nil {
		return nil, err
	}

	results := make([]Result, len(cl.items))
	for i, req := range cl.items {
		results[i].Command = req.cmd
	}

	for i, req := range cl.items {
		idx := i
		blk, err := s.readBlock(ctx, true, nil)
		if err != nil {
			s.logResponse(req, log.CommandStatusFailed, err, &idx)
			return nil, err
		}

		switch blk.end.Kind {
		case wire.LineListOK:
		case wire.LineAck:
			ack := blk.end.Ack
			s.logResponse(req, log.CommandStatusAck, ack, &idx)
			results[i].Err = ack
			for j := i + 1; j < len(cl.items); j++ {
				results[j].Err = fmt.Errorf("%s (item %d): %w", cl.items[j].cmd.Name, j, ErrEarlierCommandFailed)
				skipped := j
				s.logResponse(cl.items[j], log.CommandStatusSkipped, nil, &skipped)
			}
			cl.logMarker(log.CommandTypeListEnd, log.CommandStatusAck, ack.Message)
			return results, ack
		default:
			return nil, s.protocolError(req, "expected %s, got %q", wire.ListOK, blk.end.Text)
		}
		if blk.hasBinary {
			return nil, s.protocolError(req, "unexpected binary payload")
		}

		v, err := response.Parse(req.spec.Kind, req.spec.Delimiters, blk.lines)
		if err != nil {
			s.logResponse(req, log.CommandStatusFailed, err, &idx)
			return nil, s.fail(err)
		}
		s.logResponse(req, log.CommandStatusOK, nil, &idx)
		results[i].Value = v
	}

	blk, err := s.readBlock(ctx, true, nil)
	if err != nil {
		return nil, err
	}
	if blk.end.Kind != wire.LineSuccess || len(blk.lines) > 0 || blk.hasBinary {
		err := fmt.Errorf("%w: command list: expected %s, got %q", ErrProtocol, wire.Success, blk.end.Text)
		return nil, s.fail(err)
	}
	cl.logMarker(log.CommandTypeListEnd, log.CommandStatusOK, "")
	return results, nil
}

// Abandon ends a list without reading results, for callers that hit a
// local error after BeginCommandList. The server still runs the items
// written so far, so the session is closed.
func (cl *CommandList) Abandon() {
	if cl.ended {
		return
	}
	cl.ended = true
	cl.release()
	cl.s.fail(fmt.Errorf("%w: command list abandoned", ErrConnection))
}

// prepareBatchable is prepare for commands that may appear in a list.
func prepareBatchable(name string, args []any) (command.Spec, wire.Command, error) {
	spec, cmd, err := prepare(name, args)
	if err != nil {
		return command.Spec{}, wire.Command{}, err
	}
	if spec.Internal || !spec.Batchable() {
		return command.Spec{}, wire.Command{}, fmt.Errorf("%w: %s is not allowed in a command list", ErrCommandList, spec.Name)
	}
	return spec, cmd, nil
}

func (cl *CommandList) release() {
	cl.s.mu.Lock()
	if cl.s.list == cl {
		cl.s.list = nil
	}
	cl.s.mu.Unlock()
}

func (cl *CommandList) logMarker(typ log.CommandType, status log.CommandStatus, message string) {
	ev := &log.CommandEvent{Type: typ, Name: listBegin, Status: status, Message: message}
	dir := log.DirectionOut
	if typ == log.CommandTypeListEnd {
		ev.Name = listEnd
		d := time.Since(cl.start)
		ev.Duration = &d
		dir = log.DirectionIn
	}
	cl.s.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: cl.s.conn.ID(),
		Direction:    dir,
		Layer:        log.LayerProtocol,
		Category:     log.CategoryMessage,
		Command:      ev,
	})
}
