package mpd

import (
	"context"
	"fmt"
	"time"

	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/response"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// RecordIterator yields the records of one response as they are read.
// It is finite and cannot be restarted; issue the command again to iterate
// again. No other command may be written until the iterator is exhausted
// or closed.
//
//	it, err := s.Iterate(ctx, "listallinfo")
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		rec := it.Record()
//	}
//	if err := it.Err(); err != nil { ... }
type RecordIterator struct {
	s   *Session
	ctx context.Context
	req *request
	g   *response.Grouper

	rec  response.Record
	err  error
	done bool
}

// Iterate sends a command whose response is a record stream and returns an
// iterator over its records.
func (s *Session) Iterate(ctx context.Context, name string, args ...any) (*RecordIterator, error) {
	spec, cmd, err := prepare(name, args)
	if err != nil {
		return nil, err
	}
	if !spec.Kind.Streams() {
		return nil, fmt.Errorf("%w: %s", ErrNotIterable, spec.Name)
	}
	if err := s.send(ctx, spec, cmd); err != nil {
		return nil, err
	}

	s.mu.Lock()
	req := s.pending
	s.pending = nil
	s.iterating = true
	s.mu.Unlock()

	g := response.NewGrouper(spec.Delimiters...)
	if spec.Kind == response.KindGroups {
		g = response.NewLookupGrouper()
	}
	return &RecordIterator{s: s, ctx: ctx, req: req, g: g}, nil
}

// Next reads up to the next complete record. It returns false when the
// response ended or failed; check Err.
func (it *RecordIterator) Next() bool {
	if it.done {
		return false
	}

	it.s.rmu.Lock()
	defer it.s.rmu.Unlock()

	for {
		l, err := it.s.readLine(it.ctx, true)
		if err != nil {
			it.finish(log.CommandStatusFailed, err)
			return false
		}

		switch l.Kind {
		case wire.LinePair:
			if rec, ok := it.g.Feed(l.Key, l.Value); ok {
				it.rec = rec
				return true
			}
		case wire.LineSuccess:
			rec, ok := it.g.Flush()
			it.finish(log.CommandStatusOK, nil)
			if ok {
				it.rec = rec
			}
			return ok
		case wire.LineAck:
			it.finish(log.CommandStatusAck, l.Ack)
			return false
		default:
			err := fmt.Errorf("%w: %s: could not parse pair: %q", ErrProtocol, it.req.spec.Name, l.Text)
			it.finish(log.CommandStatusFailed, it.s.fail(err))
			return false
		}
	}
}

// Record returns the record read by the last successful Next.
func (it *RecordIterator) Record() response.Record { return it.rec }

// Err returns the error that ended iteration: a *CommandError for a server
// ACK, or a fatal error.
func (it *RecordIterator) Err() error { return it.err }

// Close reads and discards the rest of the response so the session can be
// used again.
func (it *RecordIterator) Close() error {
	for it.Next() {
	}
	return it.err
}

func (it *RecordIterator) finish(status log.CommandStatus, err error) {
	it.done = true
	it.err = err
	it.rec = response.Record{}

	it.s.mu.Lock()
	it.s.iterating = false
	it.s.mu.Unlock()

	it.s.logResponse(it.req, status, err, nil)
	if status == log.CommandStatusOK {
		it.s.log.Debug("iteration finished", "command", it.req.cmd.Name, "elapsed", time.Since(it.req.sent))
	}
}
