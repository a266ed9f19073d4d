// Package log provides structured protocol logging for MPD connections.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, protocol, client).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For later inspection: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/tmp/mpc.mpdlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: raw protocol lines (LineEvent)
//   - Protocol: command requests and outcomes (CommandEvent)
//   - Client: state changes and idle cycles (StateChangeEvent, IdleEvent)
//
// Errors have a dedicated event type. Password arguments are masked.
//
// # File Format
//
// Log files use CBOR encoding with the .mpdlog extension. The mpd-log CLI
// tool provides viewing, filtering, and statistics.
package log
