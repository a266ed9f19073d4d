package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if event.ServerVersion != "" {
		attrs = append(attrs, slog.String("server_version", event.ServerVersion))
	}

	switch {
	case event.Line != nil:
		attrs = append(attrs, slog.Int("size", event.Line.Size))
		if event.Line.Binary {
			attrs = append(attrs, slog.Bool("binary", true))
		} else {
			attrs = append(attrs, slog.String("line", event.Line.Text))
		}
		if event.Line.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
	case event.Command != nil:
		attrs = append(attrs,
			slog.String("cmd_type", event.Command.Type.String()),
			slog.String("command", event.Command.Name),
		)
		if len(event.Command.Args) > 0 {
			attrs = append(attrs, slog.Any("args", event.Command.Args))
		}
		if event.Command.Type == CommandTypeResponse {
			attrs = append(attrs, slog.String("status", event.Command.Status.String()))
		}
		if event.Command.AckCode != nil {
			attrs = append(attrs, slog.String("ack", event.Command.AckCode.String()))
		}
		if event.Command.Message != "" {
			attrs = append(attrs, slog.String("message", event.Command.Message))
		}
		if event.Command.ListIndex != nil {
			attrs = append(attrs, slog.Int("list_index", *event.Command.ListIndex))
		}
		if event.Command.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Command.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Idle != nil:
		attrs = append(attrs, slog.String("idle", event.Idle.Type.String()))
		if len(event.Idle.Subsystems) > 0 {
			attrs = append(attrs, slog.Any("subsystems", event.Idle.Subsystems))
		}
		if len(event.Idle.Changed) > 0 {
			attrs = append(attrs,
				slog.Any("changed", event.Idle.Changed),
				slog.Int("subscribers", event.Idle.Subscribers),
			)
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
