package mpdtest

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mpdlink/mpd-go/pkg/wire"
)

// DefaultVersion is the protocol version announced by the server.
const DefaultVersion = "0.23.5"

// Step is one scripted exchange: an expected request line and the reply
// written for it. Steps are built with chained calls and consumed in order.
type Step struct {
	s *Server

	request    string
	reply      []byte
	wait       <-chan struct{}
	idle       bool
	closeAfter bool
}

// Reply appends response lines. Each line gets a trailing newline.
func (st *Step) Reply(lines ...string) *Step {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for _, l := range lines {
		st.reply = append(st.reply, l...)
		st.reply = append(st.reply, '\n')
	}
	return st
}

// OK appends the success terminator.
func (st *Step) OK() *Step { return st.Reply(wire.Success) }

// ListOK appends a command list separator.
func (st *Step) ListOK() *Step { return st.Reply(wire.ListOK) }

// Ack appends an error line.
func (st *Step) Ack(code wire.AckCode, offset int, command, message string) *Step {
	return st.Reply(fmt.Sprintf("ACK [%d@%d] {%s} %s", int(code), offset, command, message))
}

// Binary appends a "binary: <n>" line followed by the raw payload and a
// newline.
func (st *Step) Binary(data []byte) *Step {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.reply = append(st.reply, fmt.Sprintf("%s: %d\n", wire.BinaryKey, len(data))...)
	st.reply = append(st.reply, data...)
	st.reply = append(st.reply, '\n')
	return st
}

// Raw appends bytes verbatim.
func (st *Step) Raw(data []byte) *Step {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.reply = append(st.reply, data...)
	return st
}

// Hold delays the reply until ch is closed.
func (st *Step) Hold(ch <-chan struct{}) *Step {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.wait = ch
	return st
}

// Idle makes the step behave like the server side of "idle": the reply
// ("changed: <name>" lines and OK) is written when trigger is closed, and a
// "noidle" request answers with a bare OK instead. A nil trigger never
// fires.
func (st *Step) Idle(trigger <-chan struct{}, changed ...string) *Step {
	for _, c := range changed {
		st.Reply("changed: " + c)
	}
	st.OK()
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.idle = true
	st.wait = trigger
	return st
}

// CloseAfter drops the connection after the reply is written.
func (st *Step) CloseAfter() *Step {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.closeAfter = true
	return st
}

// Option configures a Server.
type Option func(*Server)

// WithHello replaces the greeting line.
func WithHello(line string) Option {
	return func(s *Server) { s.hello = line }
}

// WithVersion sets the announced protocol version.
func WithVersion(v string) Option {
	return func(s *Server) { s.hello = wire.HelloPrefix + v }
}

// Server is a scripted MPD server on a loopback TCP listener.
// Connections are served one at a time, in accept order, against a single
// shared script.
type Server struct {
	t        testing.TB
	listener net.Listener
	hello    string

	mu       sync.Mutex
	steps    []*Step
	received []string
	accepted int

	drop    chan struct{}
	closing chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewServer starts a server and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("mpdtest: listen failed: %v", err)
	}

	s := &Server{
		t:        t,
		listener: listener,
		hello:    wire.HelloPrefix + DefaultVersion,
		drop:     make(chan struct{}, 1),
		closing:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.acceptLoop()
	t.Cleanup(s.Close)
	return s
}

// Addr returns the listen address (host:port).
func (s *Server) Addr() string { return s.listener.Addr().String() }

// Expect queues a step for the given request line.
func (s *Server) Expect(request string) *Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &Step{s: s, request: request}
	s.steps = append(s.steps, st)
	return st
}

// ExpectCommandList queues the begin marker and items of a command list and
// returns the step for "command_list_end", which carries the reply.
func (s *Server) ExpectCommandList(items ...string) *Step {
	s.Expect("command_list_ok_begin")
	for _, item := range items {
		s.Expect(item)
	}
	return s.Expect("command_list_end")
}

// Received returns every request line read so far.
func (s *Server) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

// Remaining returns the number of steps not yet consumed.
func (s *Server) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Accepted returns the number of connections accepted.
func (s *Server) Accepted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

// WaitRemaining polls until at most n steps remain or the timeout expires.
func (s *Server) WaitRemaining(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.Remaining() <= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return s.Remaining() <= n
}

// Disconnect drops the current connection without a reply.
func (s *Server) Disconnect() {
	select {
	case s.drop <- struct{}{}:
	default:
	}
}

// Close stops the server and waits for its goroutines.
func (s *Server) Close() {
	s.once.Do(func() {
		close(s.closing)
		s.listener.Close()
		s.wg.Wait()
	})
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.accepted++
		s.mu.Unlock()
		s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", s.hello); err != nil {
		return
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(conn)
		sc.Buffer(make([]byte, 64*1024), 1<<20)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !s.handle(conn, line, lines) {
				return
			}
		case <-s.drop:
			return
		case <-s.closing:
			return
		}
	}
}

// handle answers one request. It returns false when the connection should
// be closed.
func (s *Server) handle(conn net.Conn, line string, lines <-chan string) bool {
	st, ok := s.pop(line)
	if !ok {
		if line == "close" {
			return false
		}
		s.t.Errorf("mpdtest: unexpected request %q", line)
		fmt.Fprintf(conn, "ACK [%d@0] {} unexpected request\n", int(wire.AckUnknown))
		return true
	}
	if line != st.request {
		s.t.Errorf("mpdtest: expected request %q, got %q", st.request, line)
		fmt.Fprintf(conn, "ACK [%d@0] {} unexpected request\n", int(wire.AckUnknown))
		return true
	}

	reply := st.reply
	if st.idle || st.wait != nil {
		select {
		case <-st.wait:
		case next, ok := <-lines:
			if !ok {
				return false
			}
			s.record(next)
			switch {
			case st.idle && next == "noidle":
				reply = []byte(wire.Success + "\n")
			case next == "close":
				return false
			default:
				s.t.Errorf("mpdtest: request %q while %q is held", next, st.request)
				return false
			}
		case <-s.drop:
			return false
		case <-s.closing:
			return false
		}
	}

	if len(reply) > 0 {
		if _, err := conn.Write(reply); err != nil {
			return false
		}
	}
	return !st.closeAfter
}

func (s *Server) record(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, line)
}

// pop records line and removes the next step. A "close" request never
// consumes a step unless the script expects it.
func (s *Server) pop(line string) (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, line)
	if len(s.steps) == 0 {
		return Step{}, false
	}
	if line == "close" && !strings.EqualFold(s.steps[0].request, "close") {
		return Step{}, false
	}
	st := *s.steps[0]
	s.steps = s.steps[1:]
	return st, true
}
