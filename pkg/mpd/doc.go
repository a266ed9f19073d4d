// Package mpd is a client for the Music Player Daemon protocol.
//
// # Session
//
// A Session is one lock-step connection: a command is written, then its
// response is read, then the next command may follow. It offers the
// protocol's primitives directly: Send and Fetch, Execute, Iterate over
// record streams, command lists, binary transfers, and explicit idle and
// noidle.
//
// # Client
//
// A Client multiplexes a Session between any number of goroutines. One
// owner goroutine does all reads and writes; callers submit commands and
// wait on their Pending result. While nothing is queued the client idles
// on the union of its subscribers' interests and fans changes out to them.
// A command submitted during an idle waits up to the grace window for the
// idle to end by itself before the client sends noidle.
//
//	c, err := mpd.Dial(ctx, "localhost:6600", mpd.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	status, err := c.Status(ctx)
//	sub, err := c.Subscribe(wire.SubsystemPlayer)
//	changed, err := sub.Next(ctx)
//
// # Errors
//
// A server ACK is returned as a *CommandError and affects only its
// command. ErrConnection and ErrProtocol are fatal: the client fails every
// queued command and every subscriber with a connection error. Sequencing
// errors such as ErrPending or ErrQueueFull are raised before anything is
// written.
//
// Typed wrappers for every command in the table live in commands_gen.go.
package mpd

//go:generate go run ../../cmd/mpd-cmdgen -output commands_gen.go
