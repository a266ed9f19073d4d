package mpd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/response"
	"github.com/mpdlink/mpd-go/pkg/transport"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// request is a command written to the server whose response is still
// unread.
type request struct {
	spec command.Spec
	cmd  wire.Command
	sent time.Time
}

// block is one response read up to and including its end line.
type block struct {
	lines     []wire.Line
	end       wire.Line
	data      []byte
	hasBinary bool
}

// Session is a lock-step MPD connection: one command is written, then its
// response is read, before the next command may be written.
//
// A Session is not meant for independent concurrent callers; the Client
// provides that. The one exception is NoIdle, which may be called while
// another goroutine is blocked in Fetch on an idle command.
type Session struct {
	conn  *transport.Conn
	proto log.Logger
	log   *slog.Logger

	// rmu serializes reads, wmu serializes writes. They are separate so a
	// noidle can be written while the idle response is being read.
	rmu sync.Mutex
	wmu sync.Mutex

	mu         sync.Mutex
	pending    *request
	list       *CommandList
	iterating  bool
	idling     bool
	noidleSent bool
	err        error
}

// DialSession connects to address and returns a session on the new
// connection.
func DialSession(ctx context.Context, address string, config transport.ClientConfig, logger *slog.Logger) (*Session, error) {
	conn, err := transport.Dial(ctx, address, config)
	if err != nil {
		return nil, err
	}
	return NewSession(conn, logger), nil
}

// NewSession wraps an established connection. A nil logger disables
// debug output.
func NewSession(conn *transport.Conn, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		conn:  conn,
		proto: conn.Logger(),
		log:   logger.With("conn", conn.ID()),
	}
}

// Version returns the protocol version announced by the server.
func (s *Session) Version() string { return s.conn.Version() }

// Conn returns the underlying connection.
func (s *Session) Conn() *transport.Conn { return s.conn }

// Err returns the error that ended the session, or nil while it is usable.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Idling reports whether an idle command is outstanding.
func (s *Session) Idling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idling
}

// Execute sends a command and reads its response.
func (s *Session) Execute(ctx context.Context, name string, args ...any) (response.Value, error) {
	if err := s.Send(ctx, name, args...); err != nil {
		return response.Value{}, err
	}
	return s.Fetch(ctx)
}

// Send writes a command without reading its response. The response must
// be read with Fetch before the next command.
func (s *Session) Send(ctx context.Context, name string, args ...any) error {
	spec, cmd, err := prepare(name, args)
	if err != nil {
		return err
	}
	if spec.Internal {
		return fmt.Errorf("%w: %s", ErrReserved, spec.Name)
	}
	if spec.Binary() {
		return fmt.Errorf("%w: %s transfers binary data, use ReadBinary", ErrBadArguments, spec.Name)
	}
	return s.send(ctx, spec, cmd)
}

func (s *Session) send(ctx context.Context, spec command.Spec, cmd wire.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return err
	}
	req := &request{spec: spec, cmd: cmd, sent: time.Now()}
	s.pending = req
	s.mu.Unlock()

	if err := s.write(cmd, nil); err != nil {
		s.mu.Lock()
		if s.pending == req {
			s.pending = nil
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Fetch reads the response of the pending command and applies its grammar.
// A server ACK is returned as a *CommandError and leaves the session
// usable; any other error ends it.
func (s *Session) Fetch(ctx context.Context) (response.Value, error) {
	s.mu.Lock()
	switch {
	case s.err != nil:
		err := s.err
		s.mu.Unlock()
		return response.Value{}, err
	case s.list != nil:
		s.mu.Unlock()
		return response.Value{}, fmt.Errorf("%w: cannot fetch inside a command list", ErrCommandList)
	case s.iterating:
		s.mu.Unlock()
		return response.Value{}, ErrIterating
	case s.pending == nil:
		s.mu.Unlock()
		return response.Value{}, fmt.Errorf("%w: no command to fetch", ErrPending)
	}
	req := s.pending
	idle := s.idling
	s.mu.Unlock()

	blk, err := s.readBlock(ctx, !idle, nil)

	s.mu.Lock()
	s.pending = nil
	s.idling = false
	s.noidleSent = false
	s.mu.Unlock()

	if err != nil {
		s.logResponse(req, log.CommandStatusFailed, err, nil)
		return response.Value{}, err
	}
	return s.finish(req, blk)
}

// finish interprets the block read for req.
func (s *Session) finish(req *request, blk block) (response.Value, error) {
	switch blk.end.Kind {
	case wire.LineAck:
		s.logResponse(req, log.CommandStatusAck, blk.end.Ack, nil)
		return response.Value{}, blk.end.Ack
	case wire.LineSuccess:
	default:
		return response.Value{}, s.protocolError(req, "unexpected %q", blk.end.Text)
	}
	if blk.hasBinary {
		return response.Value{}, s.protocolError(req, "unexpected binary payload")
	}

	v, err := response.Parse(req.spec.Kind, req.spec.Delimiters, blk.lines)
	if err != nil {
		s.logResponse(req, log.CommandStatusFailed, err, nil)
		return response.Value{}, s.fail(err)
	}
	s.logResponse(req, log.CommandStatusOK, nil, nil)
	return v, nil
}

// SendIdle writes an idle command for the given subsystems, or for all of
// them when none are given. The change list is read with FetchIdle.
func (s *Session) SendIdle(ctx context.Context, subsystems ...string) error {
	args := make([]any, len(subsystems))
	for i, sub := range subsystems {
		args[i] = sub
	}
	spec, cmd, err := prepare("idle", args)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.pending = &request{spec: spec, cmd: cmd, sent: time.Now()}
	s.idling = true
	s.mu.Unlock()

	return s.write(cmd, nil)
}

// FetchIdle waits for the outstanding idle command to complete and returns
// the changed subsystems. It blocks without a read timeout. After NoIdle
// the result may be empty.
func (s *Session) FetchIdle(ctx context.Context) ([]string, error) {
	if !s.Idling() {
		return nil, ErrNotIdling
	}
	v, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return v.List, nil
}

// Idle waits for changes in the given subsystems.
func (s *Session) Idle(ctx context.Context, subsystems ...string) ([]string, error) {
	if err := s.SendIdle(ctx, subsystems...); err != nil {
		return nil, err
	}
	return s.FetchIdle(ctx)
}

// NoIdle asks the server to end the outstanding idle command. The idle
// response is still read by FetchIdle. Repeated calls write noidle once.
func (s *Session) NoIdle() error {
	s.mu.Lock()
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return err
	}
	if !s.idling {
		s.mu.Unlock()
		return ErrNotIdling
	}
	if s.noidleSent {
		s.mu.Unlock()
		return nil
	}
	s.noidleSent = true
	s.mu.Unlock()

	return s.write(wire.NewCommand("noidle"), nil)
}

// Close writes "close" when the session is between commands and closes the
// connection. Later operations fail with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	polite := s.err == nil && s.pending == nil && s.list == nil && !s.iterating
	if s.err == nil {
		s.err = ErrClosed
	}
	s.mu.Unlock()

	if polite {
		s.wmu.Lock()
		if err := s.conn.Send("close"); err != nil {
			s.log.Debug("close command not written", "error", err)
		}
		s.wmu.Unlock()
	}
	return s.conn.Close()
}

// ready reports why no new command may be written. Callers hold s.mu.
func (s *Session) ready() error {
	switch {
	case s.err != nil:
		return s.err
	case s.idling:
		return ErrIdling
	case s.list != nil:
		return fmt.Errorf("%w: a command list is open", ErrCommandList)
	case s.iterating:
		return ErrIterating
	case s.pending != nil:
		return fmt.Errorf("%w: %s was not fetched", ErrPending, s.pending.cmd.Name)
	}
	return nil
}

// write sends one command line and logs it. index is the position inside
// a command list, if any. Only transport failures end the session; a line
// the writer refuses was never sent.
func (s *Session) write(cmd wire.Command, index *int) error {
	s.wmu.Lock()
	err := s.conn.Send(wire.EncodeCommand(cmd))
	s.wmu.Unlock()
	if err != nil {
		if errors.Is(err, ErrConnection) {
			return s.fail(err)
		}
		return fmt.Errorf("%w: %w", wire.ErrBadArgument, err)
	}

	s.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.conn.ID(),
		Direction:    log.DirectionOut,
		Layer:        log.LayerProtocol,
		Category:     log.CategoryMessage,
		Command: &log.CommandEvent{
			Type:      log.CommandTypeRequest,
			Name:      cmd.Name,
			Args:      log.CommandArgs(cmd.Name, argTexts(cmd.Args)),
			ListIndex: index,
		},
	})
	return nil
}

// readLine reads and classifies one response line. bounded arms the
// configured read timeout; cancelling ctx aborts the read and ends the
// session, since the stream position is lost.
func (s *Session) readLine(ctx context.Context, bounded bool) (wire.Line, error) {
	if err := s.conn.SetReadTimeout(bounded); err != nil {
		return wire.Line{}, s.fail(fmt.Errorf("%w: %w", ErrConnection, err))
	}
	stop := context.AfterFunc(ctx, func() { s.conn.Interrupt() })
	text, err := s.conn.ReadLine()
	stop()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: read aborted: %w", ErrConnection, ctxErr)
		}
		return wire.Line{}, s.fail(err)
	}
	return wire.ParseLine(text), nil
}

// binaryLimit returns how many payload bytes a response may still carry,
// given the lines read before its binary field. Negative means no bound
// beyond the transport maximum.
type binaryLimit func(lines []wire.Line) int

// readBlock reads lines up to the next OK, list_OK or ACK, collecting a
// binary payload on the way. limit may be nil.
func (s *Session) readBlock(ctx context.Context, bounded bool, limit binaryLimit) (block, error) {
	s.rmu.Lock()
	defer s.rmu.Unlock()

	var b block
	for {
		l, err := s.readLine(ctx, bounded)
		if err != nil {
			return block{}, err
		}

		switch l.Kind {
		case wire.LineSuccess, wire.LineListOK, wire.LineAck:
			b.end = l
			return b, nil
		case wire.LinePair:
			if l.Key != wire.BinaryKey {
				break
			}
			if b.hasBinary {
				return block{}, s.fail(fmt.Errorf("%w: second binary payload in one response", ErrProtocol))
			}
			n, err := strconv.Atoi(l.Value)
			if err != nil || n < 0 {
				return block{}, s.fail(fmt.Errorf("%w: invalid binary length %q", ErrProtocol, l.Value))
			}
			if limit != nil {
				if left := limit(b.lines); left >= 0 && n > left {
					return block{}, s.fail(fmt.Errorf("%w: binary chunk of %d bytes, only %d remaining", ErrProtocol, n, left))
				}
			}
			data, err := s.conn.ReadBinary(n)
			if err != nil {
				return block{}, s.fail(err)
			}
			b.data = data
			b.hasBinary = true
			continue
		}
		b.lines = append(b.lines, l)
	}
}

// fail ends the session with err and closes the connection. It returns err.
func (s *Session) fail(err error) error {
	s.mu.Lock()
	first := s.err == nil
	if first {
		s.err = err
	}
	s.mu.Unlock()

	if first {
		s.log.Debug("session failed", "error", err)
		s.proto.Log(log.Event{
			Timestamp:    time.Now(),
			ConnectionID: s.conn.ID(),
			Layer:        log.LayerProtocol,
			Category:     log.CategoryError,
			Error: &log.ErrorEventData{
				Layer:   log.LayerProtocol,
				Message: err.Error(),
				Context: "session",
			},
		})
	}
	s.conn.Close()
	return err
}

func (s *Session) protocolError(req *request, format string, args ...any) error {
	err := fmt.Errorf("%w: %s: %s", ErrProtocol, req.spec.Name, fmt.Sprintf(format, args...))
	s.logResponse(req, log.CommandStatusFailed, err, nil)
	return s.fail(err)
}

// logResponse records the outcome of req.
func (s *Session) logResponse(req *request, status log.CommandStatus, err error, index *int) {
	d := time.Since(req.sent)
	ev := &log.CommandEvent{
		Type:      log.CommandTypeResponse,
		Name:      req.cmd.Name,
		Status:    status,
		ListIndex: index,
		Duration:  &d,
	}
	var ack *CommandError
	if errors.As(err, &ack) {
		code := ack.Code
		ev.AckCode = &code
		ev.Message = ack.Message
	} else if err != nil {
		ev.Message = err.Error()
	}

	s.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.conn.ID(),
		Direction:    log.DirectionIn,
		Layer:        log.LayerProtocol,
		Category:     log.CategoryMessage,
		Command:      ev,
	})
}

// prepare converts loosely typed arguments and validates them against the
// command table.
func prepare(name string, args []any) (command.Spec, wire.Command, error) {
	spec, err := command.Validate(name, len(args))
	if err != nil {
		return command.Spec{}, wire.Command{}, err
	}
	cmd, err := wire.BuildCommand(spec.Name, args...)
	if err != nil {
		return command.Spec{}, wire.Command{}, err
	}
	return spec, cmd, nil
}

// argTexts returns the unquoted text of each argument.
func argTexts(args []wire.Arg) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = argText(a)
	}
	return out
}

func argText(a wire.Arg) string {
	switch v := a.(type) {
	case wire.String:
		return string(v)
	case wire.Int:
		return strconv.FormatInt(int64(v), 10)
	case wire.Range:
		return v.String()
	default:
		return a.Encode()
	}
}
