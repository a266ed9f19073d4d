// Package connection keeps an MPD client connected.
//
// A Supervisor dials an mpd.Client, watches it, and redials after the
// client stops on a connection failure. Redials are spaced by exponential
// backoff:
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s, 32s
//  3. Maximum delay: 60 seconds
//  4. Continue at 60s until successful
//  5. Reset to 1s after a successful dial
//
// Each delay gets up to 25% random jitter:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
//
// Failed commands are never retried. Idle subscriptions belong to one
// client, so watchers re-subscribe from the OnConnected callback.
package connection
