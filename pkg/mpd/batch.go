package mpd

import (
	"context"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Batch collects commands for one command list on a Client. The whole
// list runs as a single job, so no other command interleaves with it.
//
//	results, err := c.CommandList().
//		Add("clear").
//		Add("add", "a.mp3").
//		Add("play").
//		Run(ctx)
type Batch struct {
	c     *Client
	specs []command.Spec
	cmds  []wire.Command
	err   error
}

// CommandList starts an empty batch.
func (c *Client) CommandList() *Batch {
	return &Batch{c: c}
}

// Add validates and appends a command. The first validation error is kept
// and returned by Submit and Run.
func (b *Batch) Add(name string, args ...any) *Batch {
	if b.err != nil {
		return b
	}
	spec, cmd, err := prepareBatchable(name, args)
	if err != nil {
		b.err = err
		return b
	}
	b.specs = append(b.specs, spec)
	b.cmds = append(b.cmds, cmd)
	return b
}

// Len returns the number of commands added.
func (b *Batch) Len() int { return len(b.cmds) }

// Err returns the first validation error.
func (b *Batch) Err() error { return b.err }

// Submit queues the batch. The slot completes with one Result per command
// and the error described at CommandList.End.
func (b *Batch) Submit(ctx context.Context) (*Pending[[]Result], error) {
	if b.err != nil {
		return nil, b.err
	}
	specs := append([]command.Spec(nil), b.specs...)
	cmds := append([]wire.Command(nil), b.cmds...)

	return submit(b.c, ctx, listBegin, func(ctx context.Context, s *Session) ([]Result, error) {
		cl, err := s.BeginCommandList(ctx)
		if err != nil {
			return nil, err
		}
		for i := range cmds {
			if err := cl.add(specs[i], cmds[i]); err != nil {
				return nil, err
			}
		}
		return cl.End(ctx)
	})
}

// Run submits the batch and waits for its results.
func (b *Batch) Run(ctx context.Context) ([]Result, error) {
	p, err := b.Submit(ctx)
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx)
}
