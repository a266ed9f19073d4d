package subscription

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Subscription errors.
var (
	ErrResourceExhausted    = errors.New("maximum subscriptions reached")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionClosed   = errors.New("subscription closed")
	ErrUnknownSubsystem     = errors.New("unknown subsystem")
)

// Default subscription limits.
const (
	DefaultMaxSubscriptions = 256
)

// Config holds subscription manager configuration.
type Config struct {
	// MaxSubscriptions is the maximum number of concurrent subscribers.
	MaxSubscriptions int

	// KnownSubsystems restricts interest sets to these names when non-empty.
	KnownSubsystems []string
}

// DefaultConfig returns the default subscription configuration.
func DefaultConfig() Config {
	return Config{
		MaxSubscriptions: DefaultMaxSubscriptions,
	}
}

// Subscription is one subscriber's interest in change notifications.
//
// Notifications that arrive before the subscriber consumes the previous one
// are coalesced: the pending change set grows (without duplicates, in
// arrival order) instead of queueing separate events.
type Subscription struct {
	// ID identifies the subscription within its manager.
	ID uint32

	// Subsystems is the interest set. Empty means every subsystem.
	Subsystems []string

	manager *Manager

	mu        sync.Mutex
	pending   []string
	err       error
	active    bool
	notify    chan struct{}
	delivered uint64
	coalesced uint64
}

func newSubscription(id uint32, subsystems []string, m *Manager) *Subscription {
	return &Subscription{
		ID:         id,
		Subsystems: subsystems,
		manager:    m,
		active:     true,
		notify:     make(chan struct{}, 1),
	}
}

// CatchAll reports whether the subscription has an empty interest set.
func (s *Subscription) CatchAll() bool {
	return len(s.Subsystems) == 0
}

// Matches reports whether a change set concerns this subscriber.
func (s *Subscription) Matches(changed []string) bool {
	if s.CatchAll() {
		return len(changed) > 0
	}
	for _, c := range changed {
		if slices.Contains(s.Subsystems, c) {
			return true
		}
	}
	return false
}

// deliver merges a change set into the pending notification.
func (s *Subscription) deliver(changed []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	if len(s.pending) > 0 {
		s.coalesced++
	}
	for _, c := range changed {
		if !slices.Contains(s.pending, c) {
			s.pending = append(s.pending, c)
		}
	}
	s.delivered++
	s.signal()
}

// fail records a terminal error and deactivates the subscription.
func (s *Subscription) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.err = err
	s.active = false
	s.signal()
}

// deactivate closes the subscription without an error.
func (s *Subscription) deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false
	s.signal()
}

func (s *Subscription) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// C returns a channel that receives a value whenever Next has something to
// return. Use it to select on several subscriptions.
func (s *Subscription) C() <-chan struct{} {
	return s.notify
}

// Next blocks until changes are pending and returns them, clearing the
// pending set. Pending changes are returned before a terminal error. After
// Close, or once the manager failed, Next returns the error.
func (s *Subscription) Next(ctx context.Context) ([]string, error) {
	for {
		if changed, done, err := s.take(); done {
			return changed, err
		}
		select {
		case <-s.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Poll returns pending changes without blocking. ok is false when nothing
// is pending.
func (s *Subscription) Poll() (changed []string, ok bool, err error) {
	changed, done, err := s.take()
	if !done {
		return nil, false, nil
	}
	return changed, err == nil, err
}

func (s *Subscription) take() ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) > 0 {
		out := s.pending
		s.pending = nil
		return out, true, nil
	}
	if s.err != nil {
		return nil, true, s.err
	}
	if !s.active {
		return nil, true, ErrSubscriptionClosed
	}
	return nil, false, nil
}

// Active reports whether the subscription still receives notifications.
func (s *Subscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Stats returns how many notifications were delivered and how many of them
// were merged into a pending one.
func (s *Subscription) Stats() (delivered, coalesced uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered, s.coalesced
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() error {
	err := s.manager.Unsubscribe(s.ID)
	if errors.Is(err, ErrSubscriptionNotFound) {
		return nil
	}
	return err
}
