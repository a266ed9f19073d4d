package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Commands          map[string]*CommandStats
	Acks              map[wire.AckCode]int
	IdleChanges       map[string]int
	Connections       map[string]*ConnectionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// CommandStats holds the outcomes of one command name.
type CommandStats struct {
	Requests  int
	OK        int
	Acks      int
	Failed    int
	Skipped   int
	TotalTime time.Duration
	Timed     int
}

// Average returns the mean response time of timed responses.
func (c *CommandStats) Average() time.Duration {
	if c.Timed == 0 {
		return 0
	}
	return c.TotalTime / time.Duration(c.Timed)
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen     time.Time
	LastSeen      time.Time
	Events        int
	RemoteAddr    string
	ServerVersion string
	BytesIn       int
	BytesOut      int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Commands:          make(map[string]*CommandStats),
		Acks:              make(map[wire.AckCode]int),
		IdleChanges:       make(map[string]int),
		Connections:       make(map[string]*ConnectionStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if conn.RemoteAddr == "" {
		conn.RemoteAddr = event.RemoteAddr
	}
	if conn.ServerVersion == "" {
		conn.ServerVersion = event.ServerVersion
	}

	switch {
	case event.Line != nil:
		if event.Direction == log.DirectionIn {
			conn.BytesIn += event.Line.Size
		} else {
			conn.BytesOut += event.Line.Size
		}
	case event.Command != nil:
		s.addCommand(event.Command)
	case event.Idle != nil && event.Idle.Type == log.IdleChanged:
		for _, name := range event.Idle.Changed {
			s.IdleChanges[name]++
		}
	case event.Error != nil:
		s.Errors++
	}
}

func (s *Stats) addCommand(cmd *log.CommandEvent) {
	if cmd.Name == "" {
		return
	}
	cs, ok := s.Commands[cmd.Name]
	if !ok {
		cs = &CommandStats{}
		s.Commands[cmd.Name] = cs
	}

	switch cmd.Type {
	case log.CommandTypeRequest:
		cs.Requests++
		return
	case log.CommandTypeResponse:
	default:
		return
	}

	switch cmd.Status {
	case log.CommandStatusOK:
		cs.OK++
	case log.CommandStatusAck:
		cs.Acks++
		if cmd.AckCode != nil {
			s.Acks[*cmd.AckCode]++
		}
	case log.CommandStatusSkipped:
		cs.Skipped++
	case log.CommandStatusFailed:
		cs.Failed++
	}
	if cmd.Duration != nil {
		cs.TotalTime += *cmd.Duration
		cs.Timed++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== MPD Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerProtocol, log.LayerClient} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryIdle, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Commands) > 0 {
		fmt.Fprintln(w, "Commands:")
		for _, name := range sortedKeys(stats.Commands) {
			cs := stats.Commands[name]
			fmt.Fprintf(w, "  %-16s sent=%d ok=%d ack=%d failed=%d skipped=%d",
				name, cs.Requests, cs.OK, cs.Acks, cs.Failed, cs.Skipped)
			if cs.Timed > 0 {
				fmt.Fprintf(w, " avg=%s", formatDuration(cs.Average()))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if len(stats.Acks) > 0 {
		fmt.Fprintln(w, "Acks by Code:")
		codes := make([]wire.AckCode, 0, len(stats.Acks))
		for code := range stats.Acks {
			codes = append(codes, code)
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
		for _, code := range codes {
			fmt.Fprintf(w, "  %-16s %d\n", fmt.Sprintf("%s (%d):", code.String(), int(code)), stats.Acks[code])
		}
		fmt.Fprintln(w)
	}

	if len(stats.IdleChanges) > 0 {
		fmt.Fprintln(w, "Idle Changes:")
		for _, name := range sortedKeys(stats.IdleChanges) {
			fmt.Fprintf(w, "  %-16s %d\n", name+":", stats.IdleChanges[name])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		sort.Slice(conns, func(i, j int) bool {
			return conns[i].stats.FirstSeen.Before(conns[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			if c.stats.RemoteAddr != "" {
				fmt.Fprintf(w, "           Server: %s", c.stats.RemoteAddr)
				if c.stats.ServerVersion != "" {
					fmt.Fprintf(w, " (MPD %s)", c.stats.ServerVersion)
				}
				fmt.Fprintln(w)
			}
			if c.stats.BytesIn > 0 || c.stats.BytesOut > 0 {
				fmt.Fprintf(w, "           Bytes: %d in, %d out\n", c.stats.BytesIn, c.stats.BytesOut)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
