package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mpdlink/mpd-go/pkg/mpd"
)

// Supervisor errors.
var (
	ErrSupervisorClosed = errors.New("supervisor closed")
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
)

// DefaultAttemptTimeout bounds a single redial.
const DefaultAttemptTimeout = 30 * time.Second

// State represents the supervisor state.
type State uint8

const (
	// StateDisconnected indicates no client and no redial in progress.
	StateDisconnected State = iota

	// StateConnecting indicates the initial dial is in progress.
	StateConnecting

	// StateConnected indicates a live client.
	StateConnected

	// StateReconnecting indicates the client failed and redials are running.
	StateReconnecting

	// StateClosed indicates the supervisor has been closed.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// DialFunc establishes a new client.
type DialFunc func(ctx context.Context) (*mpd.Client, error)

// Dialer returns a DialFunc that dials address with config.
func Dialer(address string, config mpd.Config) DialFunc {
	return func(ctx context.Context) (*mpd.Client, error) {
		return mpd.Dial(ctx, address, config)
	}
}

// Config configures a Supervisor.
type Config struct {
	// Backoff schedules redials.
	Backoff BackoffConfig

	// AttemptTimeout bounds one redial (default: 30s).
	AttemptTimeout time.Duration

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// Supervisor keeps an mpd.Client alive. After the initial Connect it
// watches the client and, once the client stops on a connection failure,
// redials with exponential backoff until it succeeds or Close is called.
//
// Commands that failed with the old client are not retried. Idle
// subscriptions die with their client; register OnConnected to set them up
// again on every new client.
type Supervisor struct {
	mu sync.RWMutex

	state   State
	client  *mpd.Client
	backoff *Backoff
	dial    DialFunc
	timeout time.Duration
	log     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onStateChange  func(oldState, newState State)
	onConnected    func(c *mpd.Client)
	onDisconnected func(err error)
	onReconnecting func(attempt int, delay time.Duration)
}

// NewSupervisor creates a supervisor. No connection is made before Connect.
func NewSupervisor(dial DialFunc, config Config) *Supervisor {
	if config.AttemptTimeout <= 0 {
		config.AttemptTimeout = DefaultAttemptTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		state:   StateDisconnected,
		backoff: NewBackoffWithConfig(config.Backoff),
		dial:    dial,
		timeout: config.AttemptTimeout,
		log:     logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// State returns the current state.
func (s *Supervisor) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Client returns the live client.
func (s *Supervisor) Client() (*mpd.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.state == StateClosed:
		return nil, ErrSupervisorClosed
	case s.state != StateConnected:
		return nil, ErrNotConnected
	}
	return s.client, nil
}

// Connect performs the initial dial. On success the client is watched and
// redialed after failures. A failed initial dial is returned as is and
// does not start redials.
func (s *Supervisor) Connect(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return ErrSupervisorClosed
	case StateDisconnected:
	default:
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.mu.Unlock()
	s.setState(StateConnecting)

	c, err := s.dial(ctx)
	if err != nil {
		s.setState(StateDisconnected)
		return err
	}
	if !s.attach(c) {
		c.Close()
		return ErrSupervisorClosed
	}

	s.wg.Add(1)
	go s.watch(c)
	return nil
}

// Close stops redialing and closes the live client.
func (s *Supervisor) Close() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	old := s.state
	s.state = StateClosed
	c := s.client
	s.client = nil
	fn := s.onStateChange
	s.mu.Unlock()

	if fn != nil {
		fn(old, StateClosed)
	}
	s.cancel()
	if c != nil {
		c.Close()
	}
	s.wg.Wait()
	return nil
}

// OnStateChange sets a callback for state changes.
func (s *Supervisor) OnStateChange(fn func(oldState, newState State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

// OnConnected sets a callback invoked with every new client, including the
// first one.
func (s *Supervisor) OnConnected(fn func(c *mpd.Client)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConnected = fn
}

// OnDisconnected sets a callback invoked with the error that stopped a
// client.
func (s *Supervisor) OnDisconnected(fn func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDisconnected = fn
}

// OnReconnecting sets a callback invoked before each redial delay.
func (s *Supervisor) OnReconnecting(fn func(attempt int, delay time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReconnecting = fn
}

// BackoffAttempts returns the number of redials since the last success.
func (s *Supervisor) BackoffAttempts() int {
	return s.backoff.Attempts()
}

// attach installs a freshly dialed client. It returns false after Close.
func (s *Supervisor) attach(c *mpd.Client) bool {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return false
	}
	s.client = c
	s.mu.Unlock()

	s.backoff.Reset()
	s.setState(StateConnected)
	s.log.Info("connected", "server", c.RemoteAddr(), "version", c.Version())

	s.mu.RLock()
	fn := s.onConnected
	s.mu.RUnlock()
	if fn != nil {
		fn(c)
	}
	return true
}

// watch waits for c to stop and redials.
func (s *Supervisor) watch(c *mpd.Client) {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-c.Done():
		}

		if errors.Is(c.Err(), mpd.ErrClosed) && s.ctx.Err() != nil {
			return
		}
		s.log.Warn("connection lost", "error", c.Err())

		s.mu.Lock()
		if s.state == StateClosed {
			s.mu.Unlock()
			return
		}
		s.client = nil
		fn := s.onDisconnected
		s.mu.Unlock()
		s.setState(StateReconnecting)
		if fn != nil {
			fn(c.Err())
		}

		next, ok := s.redial()
		if !ok {
			return
		}
		c = next
	}
}

// redial dials until it succeeds. ok is false after Close.
func (s *Supervisor) redial() (*mpd.Client, bool) {
	for {
		delay := s.backoff.Peek()
		s.mu.RLock()
		fn := s.onReconnecting
		s.mu.RUnlock()
		if fn != nil {
			fn(s.backoff.Attempts()+1, delay)
		}

		if err := s.backoff.Wait(s.ctx); err != nil {
			return nil, false
		}

		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		c, err := s.dial(ctx)
		cancel()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil, false
			}
			s.log.Debug("redial failed", "attempt", s.backoff.Attempts(), "error", err)
			continue
		}
		if !s.attach(c) {
			c.Close()
			return nil, false
		}
		return c, true
	}
}

func (s *Supervisor) setState(state State) {
	s.mu.Lock()
	old := s.state
	if old == StateClosed && state != StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = state
	fn := s.onStateChange
	s.mu.Unlock()

	if old != state && fn != nil {
		fn(old, state)
	}
}
