// Package transport provides the byte-stream layer of an MPD connection.
//
// The transport layer handles:
//   - Dialing TCP or Unix sockets (optionally wrapped in TLS)
//   - The server greeting ("OK MPD <version>") with a bounded wait
//   - Newline framing of requests and responses
//   - Binary payloads announced by a "binary: <n>" line
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│   Commands / key: value lines  │
//	├────────────────────────────────┤
//	│      Newline framing           │
//	├────────────────────────────────┤
//	│    TLS (optional, proxied)     │
//	├────────────────────────────────┤
//	│     TCP or Unix socket         │
//	└────────────────────────────────┘
//
// # Liveness
//
// MPD has no ping frames on an idle connection. Liveness comes from TCP
// keep-alive (30 seconds by default) and from the client always holding an
// idle command open, which fails as soon as the stream breaks.
package transport
