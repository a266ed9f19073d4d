// Package mpdtest provides a scripted MPD server for tests.
//
// A Server listens on a loopback port, greets every connection with
// "OK MPD <version>", and answers requests from a queue of expected
// exchanges:
//
//	srv := mpdtest.NewServer(t)
//	srv.Expect("status").Reply("volume: 50", "state: play").OK()
//	srv.Expect("idle").Idle(changed, "player")
//
// A request that does not match the next step is reported with t.Errorf
// and answered with an ACK so the client under test keeps running.
package mpdtest
