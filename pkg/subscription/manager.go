package subscription

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Manager keeps the set of idle subscribers of one connection and computes
// the union of their interests.
type Manager struct {
	mu sync.RWMutex

	// Configuration
	config Config

	// Active subscriptions by ID
	subscriptions map[uint32]*Subscription
	lastID        uint32

	// Terminal error, set by Fail
	err error

	// Callbacks
	onChange func()
}

// NewManager creates a new subscription manager with default configuration.
func NewManager() *Manager {
	return NewManagerWithConfig(DefaultConfig())
}

// NewManagerWithConfig creates a new subscription manager with custom configuration.
func NewManagerWithConfig(config Config) *Manager {
	if config.MaxSubscriptions <= 0 {
		config.MaxSubscriptions = DefaultMaxSubscriptions
	}

	return &Manager{
		config:        config,
		subscriptions: make(map[uint32]*Subscription),
	}
}

// Subscribe registers interest in the given subsystems; none means all.
// Duplicate names are ignored.
func (m *Manager) Subscribe(subsystems ...string) (*Subscription, error) {
	var interest []string
	for _, s := range subsystems {
		if len(m.config.KnownSubsystems) > 0 && !slices.Contains(m.config.KnownSubsystems, s) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSubsystem, s)
		}
		if !slices.Contains(interest, s) {
			interest = append(interest, s)
		}
	}

	m.mu.Lock()

	if m.err != nil {
		m.mu.Unlock()
		return nil, m.err
	}
	if len(m.subscriptions) >= m.config.MaxSubscriptions {
		m.mu.Unlock()
		return nil, ErrResourceExhausted
	}

	m.lastID++
	sub := newSubscription(m.lastID, interest, m)
	m.subscriptions[sub.ID] = sub

	// Capture callback for use outside lock
	onChange := m.onChange

	m.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return sub, nil
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID uint32) error {
	m.mu.Lock()

	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		m.mu.Unlock()
		return ErrSubscriptionNotFound
	}
	delete(m.subscriptions, subscriptionID)
	onChange := m.onChange

	m.mu.Unlock()

	sub.deactivate()
	if onChange != nil {
		onChange()
	}
	return nil
}

// Interests returns the sorted union of all interest sets. catchAll is true
// when at least one subscriber wants every subsystem; the union is then nil.
// With no subscribers both results are zero.
func (m *Manager) Interests() (subsystems []string, catchAll bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscriptions {
		if sub.CatchAll() {
			return nil, true
		}
		for _, s := range sub.Subsystems {
			if !slices.Contains(subsystems, s) {
				subsystems = append(subsystems, s)
			}
		}
	}
	sort.Strings(subsystems)
	return subsystems, false
}

// Dispatch delivers a change set to every subscriber it concerns: catch-all
// subscribers and those whose interest intersects it. Each receives the
// full change set. It returns the number of subscribers notified.
func (m *Manager) Dispatch(changed []string) int {
	if len(changed) == 0 {
		return 0
	}

	m.mu.RLock()
	subs := make([]*Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		if sub.Matches(changed) {
			subs = append(subs, sub)
		}
	}
	m.mu.RUnlock()

	for _, sub := range subs {
		sub.deliver(changed)
	}
	return len(subs)
}

// Fail delivers err to every subscriber, removes them all, and makes later
// Subscribe calls return err.
func (m *Manager) Fail(err error) {
	m.mu.Lock()
	m.err = err
	subs := m.subscriptions
	m.subscriptions = make(map[uint32]*Subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fail(err)
	}
}

// ClearAll removes all subscriptions without an error.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	subs := m.subscriptions
	m.subscriptions = make(map[uint32]*Subscription)
	onChange := m.onChange
	m.mu.Unlock()

	for _, sub := range subs {
		sub.deactivate()
	}
	if onChange != nil && len(subs) > 0 {
		onChange()
	}
}

// Count returns the number of active subscriptions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Get returns a subscription by ID.
func (m *Manager) Get(subscriptionID uint32) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// OnChange sets the callback invoked after the subscriber set changed.
// It runs outside the manager lock and must not block.
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}
