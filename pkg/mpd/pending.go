package mpd

import (
	"context"
	"sync"
)

// Pending is the completion slot of a submitted job. It is completed
// exactly once.
type Pending[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

func (p *Pending[T]) complete(v T, err error) {
	p.once.Do(func() {
		p.val = v
		p.err = err
		close(p.done)
	})
}

// Done is closed once the result is available.
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Wait blocks until the result is available or ctx ends. Returning early
// does not withdraw the job: once written, its response is still consumed.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// job is a unit of work run by the client's owner goroutine.
type job interface {
	// jobContext is the submitter's context. A job whose context ended
	// before it was written is failed without touching the wire.
	jobContext() context.Context

	// run executes the job on the session and completes its slot.
	run(s *Session) error

	// fail completes the slot with err without running.
	fail(err error)
}

// call adapts a session function into a job.
type call[T any] struct {
	ctx     context.Context
	name    string
	pending *Pending[T]
	exec    func(ctx context.Context, s *Session) (T, error)
}

func (c *call[T]) jobContext() context.Context { return c.ctx }

func (c *call[T]) run(s *Session) error {
	v, err := c.exec(context.WithoutCancel(c.ctx), s)
	c.pending.complete(v, err)
	return err
}

func (c *call[T]) fail(err error) {
	var zero T
	c.pending.complete(zero, err)
}
