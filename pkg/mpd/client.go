package mpd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/response"
	"github.com/mpdlink/mpd-go/pkg/subscription"
	"github.com/mpdlink/mpd-go/pkg/transport"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Default client settings.
const (
	// DefaultGraceWindow is how long a new command waits for an outstanding
	// idle to end by itself before noidle is sent, and how long the client
	// stays between commands before it idles.
	DefaultGraceWindow = 100 * time.Millisecond

	// DefaultQueueSize is the submission queue capacity.
	DefaultQueueSize = 64
)

// DefaultIdleSubsystems is the interest set used while nobody subscribed.
// It only serves to notice a dead connection.
var DefaultIdleSubsystems = []string{wire.SubsystemDatabase}

// Config configures a Client.
type Config struct {
	// Transport configures dialing and framing.
	Transport transport.ClientConfig

	// Password is sent right after connecting when set.
	Password string

	// GraceWindow (default: 100ms).
	GraceWindow time.Duration

	// QueueSize is the submission queue capacity (default: 64). Submitting
	// to a full queue fails with ErrQueueFull.
	QueueSize int

	// IdleSubsystems is the interest set used without subscribers
	// (default: database).
	IdleSubsystems []string

	// Subscriptions limits the idle subscriber registry.
	Subscriptions subscription.Config

	// ProtocolLogger receives protocol events. It is also used for the
	// transport unless Transport.Logger is set.
	ProtocolLogger log.Logger

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Transport:      transport.DefaultClientConfig(),
		GraceWindow:    DefaultGraceWindow,
		QueueSize:      DefaultQueueSize,
		IdleSubsystems: DefaultIdleSubsystems,
		Subscriptions:  subscription.DefaultConfig(),
	}
}

func (c *Config) applyDefaults() {
	if c.GraceWindow <= 0 {
		c.GraceWindow = DefaultGraceWindow
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if len(c.IdleSubsystems) == 0 {
		c.IdleSubsystems = DefaultIdleSubsystems
	}
	if c.Transport.Logger == nil {
		c.Transport.Logger = c.ProtocolLogger
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// Client multiplexes one MPD connection between concurrent callers and
// idle subscribers.
//
// A single owner goroutine performs all reads and writes. Callers submit
// commands, which run strictly in submission order, one at a time. When no
// command is queued for one grace window the client idles on the union of
// its subscribers' interests and fans out the reported changes.
type Client struct {
	config Config
	sess   *Session
	subs   *subscription.Manager
	log    *slog.Logger
	proto  log.Logger

	queue    chan job
	interest chan struct{}
	closing  chan struct{}
	done     chan struct{}

	mu     sync.Mutex
	state  State
	err    error
	closed bool

	// Owned by the run goroutine.
	degraded bool
}

// Dial connects to address, authenticates when a password is configured,
// and starts a Client on the connection.
func Dial(ctx context.Context, address string, config Config) (*Client, error) {
	config.applyDefaults()

	sess, err := DialSession(ctx, address, config.Transport, config.Logger)
	if err != nil {
		return nil, err
	}
	if config.Password != "" {
		if _, err := sess.Execute(ctx, "password", config.Password); err != nil {
			sess.Close()
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
	}
	return NewClient(sess, config), nil
}

// NewClient starts a Client on an established session. The client owns
// the session from now on.
func NewClient(sess *Session, config Config) *Client {
	config.applyDefaults()

	proto := config.ProtocolLogger
	if proto == nil {
		proto = sess.proto
	}

	c := &Client{
		config:   config,
		sess:     sess,
		subs:     subscription.NewManagerWithConfig(config.Subscriptions),
		log:      config.Logger.With("conn", sess.conn.ID()),
		proto:    proto,
		queue:    make(chan job, config.QueueSize),
		interest: make(chan struct{}, 1),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
		state:    StateDisconnected,
	}
	c.subs.OnChange(c.interestChanged)
	c.setState(StateAwaitingCommand, "connected")

	go c.run()
	return c
}

// Version returns the protocol version announced by the server.
func (c *Client) Version() string { return c.sess.Version() }

// RemoteAddr returns the server address.
func (c *Client) RemoteAddr() string { return c.sess.conn.RemoteAddr().String() }

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns why the client stopped: ErrClosed after Close, a connection
// error after a failure, nil while it runs.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Done is closed when the client stopped, by Close or by a failure.
func (c *Client) Done() <-chan struct{} { return c.done }

// Subscribers returns the number of idle subscribers.
func (c *Client) Subscribers() int { return c.subs.Count() }

// Close ends an outstanding idle, sends "close" and closes the connection.
// Queued jobs fail with ErrClosed. Close waits for a running job to finish.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.closing)
	}
	c.mu.Unlock()

	<-c.done
	return nil
}

// Subscribe registers interest in change notifications for the given
// subsystems, or for all of them when none are given. Changes are
// delivered until the subscription is closed or the connection fails.
func (c *Client) Subscribe(subsystems ...string) (*subscription.Subscription, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	return c.subs.Subscribe(subsystems...)
}

// Idle waits for the next change in the given subsystems, or in any
// subsystem when none are given.
func (c *Client) Idle(ctx context.Context, subsystems ...string) ([]string, error) {
	sub, err := c.Subscribe(subsystems...)
	if err != nil {
		return nil, err
	}
	defer sub.Close()
	return sub.Next(ctx)
}

// Submit validates a command and queues it. The returned slot completes
// with the parsed response.
//
// If ctx ends before the command is written, the command is skipped and
// completes with the context error. Once written, it runs to completion
// regardless of ctx.
func (c *Client) Submit(ctx context.Context, name string, args ...any) (*Pending[response.Value], error) {
	spec, cmd, err := prepare(name, args)
	if err != nil {
		return nil, err
	}
	if spec.Internal {
		return nil, fmt.Errorf("%w: %s", ErrReserved, spec.Name)
	}

	exec := func(ctx context.Context, s *Session) (response.Value, error) {
		if err := s.send(ctx, spec, cmd); err != nil {
			return response.Value{}, err
		}
		return s.Fetch(ctx)
	}
	if spec.Binary() {
		resource := argText(cmd.Args[0])
		exec = func(ctx context.Context, s *Session) (response.Value, error) {
			b, err := s.ReadBinary(ctx, spec.Name, resource)
			if err != nil {
				return response.Value{}, err
			}
			return response.Value{Kind: response.KindBinary, Binary: b}, nil
		}
	}
	return submit(c, ctx, spec.Name, exec)
}

// Execute submits a command and waits for its response.
func (c *Client) Execute(ctx context.Context, name string, args ...any) (response.Value, error) {
	p, err := c.Submit(ctx, name, args...)
	if err != nil {
		return response.Value{}, err
	}
	return p.Wait(ctx)
}

// ReadBinary runs a binary command for one resource and returns the
// reassembled payload.
func (c *Client) ReadBinary(ctx context.Context, name, resource string) (*response.Binary, error) {
	v, err := c.Execute(ctx, name, resource)
	if err != nil {
		return nil, err
	}
	return v.Binary, nil
}

// submit queues a session function as one job.
func submit[T any](c *Client, ctx context.Context, name string, exec func(context.Context, *Session) (T, error)) (*Pending[T], error) {
	p := newPending[T]()
	if err := c.enqueue(&call[T]{ctx: ctx, name: name, pending: p, exec: exec}); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) enqueue(j job) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return ErrClosed
	case c.err != nil:
		return c.err
	}
	select {
	case c.queue <- j:
		return nil
	default:
		return fmt.Errorf("%w (capacity %d)", ErrQueueFull, cap(c.queue))
	}
}

func (c *Client) interestChanged() {
	select {
	case c.interest <- struct{}{}:
	default:
	}
}

// run is the owner goroutine.
func (c *Client) run() {
	defer close(c.done)

	grace := true
	for {
		if c.isClosing() {
			c.shutdown()
			return
		}

		select {
		case j := <-c.queue:
			if !c.execute(j) {
				return
			}
			grace = true
			continue
		default:
		}

		if c.degraded {
			select {
			case j := <-c.queue:
				if !c.execute(j) {
					return
				}
				grace = true
			case <-c.closing:
			}
			continue
		}

		if grace {
			timer := time.NewTimer(c.config.GraceWindow)
			select {
			case j := <-c.queue:
				timer.Stop()
				if !c.execute(j) {
					return
				}
				continue
			case <-timer.C:
			case <-c.closing:
				timer.Stop()
				continue
			}
		}

		next, ok := c.idle()
		if !ok {
			return
		}
		grace = false
		if next == nil {
			continue
		}
		if c.isClosing() {
			next.fail(ErrClosed)
			continue
		}
		if !c.execute(next) {
			return
		}
		grace = true
	}
}

// execute runs one job. It returns false when the connection failed.
func (c *Client) execute(j job) bool {
	if err := j.jobContext().Err(); err != nil {
		j.fail(err)
		return true
	}

	c.setState(StateExecuting, "")
	err := j.run(c.sess)
	if IsFatal(err) {
		c.fail(err)
		return false
	}
	if err == nil && c.degraded {
		c.degraded = false
		c.log.Info("idle notifications restored")
	}
	c.setState(StateAwaitingCommand, "")
	return true
}

type idleResult struct {
	changed []string
	err     error
}

// idle runs one idle cycle. A job that arrives meanwhile ends the idle
// after the grace window and is returned to run next. ok is false when the
// connection failed.
func (c *Client) idle() (next job, ok bool) {
	// Drain first: a change signalled after this point is seen below.
	select {
	case <-c.interest:
	default:
	}
	subsystems := c.interests()

	if err := c.sess.SendIdle(context.Background(), subsystems...); err != nil {
		c.fail(err)
		return nil, false
	}
	c.setState(StateIdling, "")
	c.logIdle(log.IdleStart, subsystems, nil, 0)

	result := make(chan idleResult, 1)
	go func() {
		changed, err := c.sess.FetchIdle(context.Background())
		result <- idleResult{changed: changed, err: err}
	}()

	var (
		queue   = c.queue
		closing = c.closing
		timer   *time.Timer
		grace   <-chan time.Time
	)
	cancel := func(reason string) {
		err := c.sess.NoIdle()
		switch {
		case err == nil:
			c.logIdle(log.IdleCancel, subsystems, nil, 0)
			c.log.Debug("idle cancelled", "reason", reason)
		case !errors.Is(err, ErrNotIdling):
			c.log.Debug("noidle failed", "error", err)
		}
	}

	for {
		select {
		case r := <-result:
			if timer != nil {
				timer.Stop()
			}
			return c.idleDone(r, next)
		case j := <-queue:
			next = j
			queue = nil
			timer = time.NewTimer(c.config.GraceWindow)
			grace = timer.C
		case <-grace:
			grace = nil
			cancel("command queued")
		case <-c.interest:
			if !slices.Equal(subsystems, c.interests()) {
				cancel("interest changed")
			}
		case <-closing:
			closing = nil
			cancel("closing")
		}
	}
}

// idleDone handles the end of an idle cycle.
func (c *Client) idleDone(r idleResult, next job) (job, bool) {
	if r.err != nil {
		if _, isAck := AsCommandError(r.err); !isAck {
			c.fail(r.err, next)
			return nil, false
		}
		c.degraded = true
		c.setState(StateAwaitingCommand, "idle rejected")
		n := c.subs.Dispatch(wire.AllSubsystems)
		c.logIdle(log.IdleDegraded, nil, wire.AllSubsystems, n)
		c.log.Warn("idle rejected, waiting for a successful command", "error", r.err)
		return next, true
	}

	c.setState(StateAwaitingCommand, "")
	if len(r.changed) > 0 {
		n := c.subs.Dispatch(r.changed)
		c.logIdle(log.IdleChanged, nil, r.changed, n)
		c.log.Debug("changes delivered", "changed", r.changed, "subscribers", n)
	}
	return next, true
}

// interests returns the idle arguments: nil for a catch-all subscriber,
// the union of interests, or the default set without subscribers.
func (c *Client) interests() []string {
	subsystems, all := c.subs.Interests()
	switch {
	case all:
		return nil
	case len(subsystems) == 0:
		return c.config.IdleSubsystems
	}
	return subsystems
}

// fail moves to Failed: in-flight and queued jobs and all subscribers get
// a connection error.
func (c *Client) fail(cause error, inflight ...job) {
	err := cause
	if !errors.Is(err, ErrConnection) {
		err = fmt.Errorf("%w: %w", ErrConnection, cause)
	}

	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	err = c.err
	c.mu.Unlock()

	c.log.Error("connection failed", "error", cause)
	c.setState(StateFailed, cause.Error())
	c.sess.fail(err)

	for _, j := range inflight {
		if j != nil {
			j.fail(err)
		}
	}
	c.drain(err)
	c.subs.Fail(err)
}

func (c *Client) shutdown() {
	c.mu.Lock()
	if c.err == nil {
		c.err = ErrClosed
	}
	c.mu.Unlock()

	if err := c.sess.Close(); err != nil {
		c.log.Debug("close failed", "error", err)
	}
	c.drain(ErrClosed)
	c.subs.Fail(ErrClosed)
	c.setState(StateDisconnected, "closed")
}

func (c *Client) drain(err error) {
	for {
		select {
		case j := <-c.queue:
			j.fail(err)
		default:
			return
		}
	}
}

func (c *Client) isClosing() bool {
	select {
	case <-c.closing:
		return true
	default:
		return false
	}
}

func (c *Client) setState(s State, reason string) {
	c.mu.Lock()
	old := c.state
	c.state = s
	c.mu.Unlock()
	if old == s {
		return
	}

	c.log.Debug("state changed", "from", old, "to", s)
	c.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.sess.conn.ID(),
		Layer:        log.LayerClient,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityClient,
			OldState: old.String(),
			NewState: s.String(),
			Reason:   reason,
		},
	})
}

func (c *Client) logIdle(typ log.IdleType, subsystems, changed []string, subscribers int) {
	c.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.sess.conn.ID(),
		Layer:        log.LayerClient,
		Category:     log.CategoryIdle,
		Idle: &log.IdleEvent{
			Type:        typ,
			Subsystems:  subsystems,
			Changed:     changed,
			Subscribers: subscribers,
		},
	})
}
