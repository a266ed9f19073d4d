// Package shell provides the line-oriented command interface of mpc.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/mpd"
	"github.com/mpdlink/mpd-go/pkg/subscription"
	"github.com/mpdlink/mpd-go/pkg/version"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// DefaultTimeout bounds one command.
const DefaultTimeout = 30 * time.Second

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// ClientFunc returns the client to run commands on. It is called for every
// command so that a reconnecting supervisor can swap clients underneath.
type ClientFunc func() (*mpd.Client, error)

// LineReader supplies input lines. It returns io.EOF when input ends.
type LineReader interface {
	Readline() (string, error)
}

// Shell executes protocol commands typed as text.
//
// Lines are tokenized with the protocol's quoting rules, so
//
//	find "(artist == 'Miles Davis')"
//
// sends one filter argument. Besides protocol commands the shell knows
// help, quit, watch, unwatch, save, state, and the begin/end pair that
// collects a command list.
type Shell struct {
	client  ClientFunc
	out     io.Writer
	timeout time.Duration

	mu      sync.Mutex
	watches []*subscription.Subscription
	batch   *mpd.Batch
}

// New creates a shell writing its output to out.
func New(client ClientFunc, out io.Writer) *Shell {
	return &Shell{client: client, out: out, timeout: DefaultTimeout}
}

// SetTimeout changes the per-command timeout.
func (s *Shell) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Run executes lines from r until EOF, quit or ctx ends.
func (s *Shell) Run(ctx context.Context, r LineReader) error {
	defer s.Unwatch()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line, err := r.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Exec executes one input line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	tokens, err := wire.SplitArgs(line)
	if err != nil {
		return err
	}

	switch strings.ToLower(tokens[0]) {
	case "help", "?":
		s.printHelp()
		return nil
	case "quit", "exit", "q":
		return ErrQuit
	case "begin":
		return s.cmdBegin()
	case "end":
		return s.cmdEnd(ctx)
	case "abort":
		return s.cmdAbort()
	case "watch":
		return s.cmdWatch(ctx, tokens[1:])
	case "unwatch":
		s.Unwatch()
		return nil
	case "save":
		return s.cmdSave(ctx, tokens[1:])
	case "state":
		return s.cmdState()
	}

	name, args, ok := command.SplitName(tokens)
	if !ok {
		return fmt.Errorf("unknown command %q (type 'help' for commands)", tokens[0])
	}

	s.mu.Lock()
	batch := s.batch
	s.mu.Unlock()
	if batch != nil {
		batch.Add(name, toAny(args)...)
		if err := batch.Err(); err != nil {
			s.cmdAbort()
			return fmt.Errorf("command list aborted: %w", err)
		}
		return nil
	}

	c, err := s.client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	v, err := c.Execute(ctx, name, toAny(args)...)
	if err != nil {
		return explain(c, name, err)
	}
	FormatValue(s.out, v)
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Any protocol command can be typed as is, for example:
    status
    find "(artist == 'Miles Davis')" sort Title
    sticker get song "a.flac" rating

Shell commands:
    begin                      - Start collecting a command list
    end                        - Send the collected command list
    abort                      - Discard the collected command list
    watch [subsystem...]       - Print idle changes (all subsystems by default)
    unwatch                    - Stop printing idle changes
    save <command> <uri> <file> - Store albumart or readpicture data in a file
    state                      - Show connection state
    help                       - Show this help
    quit                       - Exit`)
}

func (s *Shell) cmdBegin() error {
	c, err := s.client()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch != nil {
		return errors.New("command list already open")
	}
	s.batch = c.CommandList()
	return nil
}

func (s *Shell) cmdAbort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return errors.New("no command list open")
	}
	s.batch = nil
	return nil
}

func (s *Shell) cmdEnd(ctx context.Context) error {
	s.mu.Lock()
	batch := s.batch
	s.batch = nil
	s.mu.Unlock()
	if batch == nil {
		return errors.New("no command list open")
	}
	if batch.Len() == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := batch.Run(ctx)
	for i, r := range results {
		fmt.Fprintf(s.out, "[%d] %s\n", i, r.Command.String())
		if r.Err != nil {
			fmt.Fprintf(s.out, "    %v\n", r.Err)
			continue
		}
		var b strings.Builder
		FormatValue(&b, r.Value)
		for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
			fmt.Fprintf(s.out, "    %s\n", line)
		}
	}
	return err
}

func (s *Shell) cmdWatch(ctx context.Context, subsystems []string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	sub, err := c.Subscribe(subsystems...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.watches = append(s.watches, sub)
	s.mu.Unlock()

	label := "all subsystems"
	if len(subsystems) > 0 {
		label = strings.Join(subsystems, ", ")
	}
	fmt.Fprintf(s.out, "Watching %s\n", label)

	go func() {
		for {
			changed, err := sub.Next(ctx)
			if err != nil {
				if !errors.Is(err, subscription.ErrSubscriptionClosed) && ctx.Err() == nil {
					fmt.Fprintf(s.out, "watch ended: %v\n", err)
				}
				return
			}
			fmt.Fprintf(s.out, "changed: %s\n", strings.Join(changed, " "))
		}
	}()
	return nil
}

// Unwatch closes every watch started by the shell.
func (s *Shell) Unwatch() {
	s.mu.Lock()
	watches := s.watches
	s.watches = nil
	s.mu.Unlock()

	for _, sub := range watches {
		sub.Close()
	}
}

func (s *Shell) cmdSave(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: save <albumart|readpicture> <uri> <file>")
	}
	c, err := s.client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	name := strings.ToLower(args[0])
	b, err := c.ReadBinary(ctx, name, args[1])
	if err != nil {
		return explain(c, name, err)
	}
	if !b.HasBinary {
		return fmt.Errorf("%s has no binary data", args[1])
	}
	if err := os.WriteFile(args[2], b.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Wrote %d bytes to %s\n", b.Size(), args[2])
	return nil
}

func (s *Shell) cmdState() error {
	c, err := s.client()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Server:      %s\n", c.RemoteAddr())
	fmt.Fprintf(s.out, "Version:     %s\n", c.Version())
	fmt.Fprintf(s.out, "State:       %s\n", c.State())
	fmt.Fprintf(s.out, "Subscribers: %d\n", c.Subscribers())
	return nil
}

// explain adds the required server version to an "unknown command" ACK
// for commands the server is too old for.
func explain(c *mpd.Client, name string, err error) error {
	if !errors.Is(err, &wire.AckError{Code: wire.AckUnknown}) || version.Supports(c.Version(), name) {
		return err
	}
	need, _ := version.Introduced(name)
	return fmt.Errorf("%w (%s needs MPD %s, server is %s)", err, name, need, c.Version())
}

func toAny(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
