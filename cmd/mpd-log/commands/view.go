// Package commands implements the mpd-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mpdlink/mpd-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
	Command   string
}

func (f ViewFilter) matches(e log.Event) bool {
	if f.Layer != nil && e.Layer != *f.Layer {
		return false
	}
	if f.Direction != nil && e.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	if f.Command != "" && (e.Command == nil || e.Command.Name != f.Command) {
		return false
	}
	return true
}

// eventLabel names the payload carried by the event.
func eventLabel(event log.Event) string {
	switch {
	case event.Line != nil:
		if event.Line.Binary {
			return "Binary"
		}
		return "Line"
	case event.Command != nil:
		return "Command"
	case event.StateChange != nil:
		return "State"
	case event.Idle != nil:
		return "Idle"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n",
		ts, shortenConnID(event.ConnectionID), event.Direction.String(), event.Layer.String(), eventLabel(event))

	if event.RemoteAddr != "" || event.ServerVersion != "" {
		fmt.Fprintf(w, "  Server: %s", event.RemoteAddr)
		if event.ServerVersion != "" {
			fmt.Fprintf(w, " (MPD %s)", event.ServerVersion)
		}
		fmt.Fprintln(w)
	}

	switch {
	case event.Line != nil:
		formatLineDetails(w, event.Line)
	case event.Command != nil:
		formatCommandDetails(w, event.Command)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Idle != nil:
		formatIdleDetails(w, event.Idle)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatLineDetails(w io.Writer, line *log.LineEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", line.Size)
	if line.Binary {
		return
	}
	fmt.Fprintf(w, "  Text: %s", line.Text)
	if line.Truncated {
		fmt.Fprint(w, " (truncated)")
	}
	fmt.Fprintln(w)
}

func formatCommandDetails(w io.Writer, cmd *log.CommandEvent) {
	fmt.Fprintf(w, "  %s %s", cmd.Type.String(), cmd.Name)
	if cmd.ListIndex != nil {
		fmt.Fprintf(w, " [list #%d]", *cmd.ListIndex)
	}
	fmt.Fprintln(w)

	switch cmd.Type {
	case log.CommandTypeRequest:
		if len(cmd.Args) > 0 {
			fmt.Fprintf(w, "  Args: %s\n", strings.Join(cmd.Args, " "))
		}
	case log.CommandTypeResponse, log.CommandTypeListEnd:
		fmt.Fprintf(w, "  Status: %s\n", cmd.Status.String())
		if cmd.AckCode != nil {
			fmt.Fprintf(w, "  Ack: %s (%d)\n", cmd.AckCode.String(), int(*cmd.AckCode))
		}
		if cmd.Message != "" {
			fmt.Fprintf(w, "  Message: %s\n", cmd.Message)
		}
		if cmd.Duration != nil {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*cmd.Duration))
		}
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatIdleDetails(w io.Writer, idle *log.IdleEvent) {
	fmt.Fprintf(w, "  %s", idle.Type.String())
	switch idle.Type {
	case log.IdleStart:
		if len(idle.Subsystems) == 0 {
			fmt.Fprint(w, " (all subsystems)")
		} else {
			fmt.Fprintf(w, " %s", strings.Join(idle.Subsystems, ","))
		}
	case log.IdleChanged, log.IdleDegraded:
		fmt.Fprintf(w, " %s -> %d subscriber(s)", strings.Join(idle.Changed, ","), idle.Subscribers)
	}
	fmt.Fprintln(w)
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "protocol":
		return log.LayerProtocol, nil
	case "client":
		return log.LayerClient, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, protocol, or client)", s)
	}
}

// ParseDirectionFlag parses a direction string (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "idle":
		return log.CategoryIdle, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, idle, state, or error)", s)
	}
}

// ParseStatusFlag parses a command outcome (case-insensitive).
func ParseStatusFlag(s string) (log.CommandStatus, error) {
	switch strings.ToLower(s) {
	case "ok":
		return log.CommandStatusOK, nil
	case "ack":
		return log.CommandStatusAck, nil
	case "skipped":
		return log.CommandStatusSkipped, nil
	case "failed":
		return log.CommandStatusFailed, nil
	default:
		return 0, fmt.Errorf("invalid status: %s (must be ok, ack, skipped, or failed)", s)
	}
}

// RunView prints every matching event in path to output.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if filter.matches(event) {
			formatEvent(output, event)
		}
	}
	return nil
}
