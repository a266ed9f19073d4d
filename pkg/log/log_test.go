package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mpdlink/mpd-go/pkg/wire"
)

// mockLogger records events for testing
type mockLogger struct {
	mu     sync.Mutex
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+FileExtension)

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for event, err := range r.Events() {
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		out = append(out, event)
	}
	return out
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{DirectionIn.String(), "IN"},
		{DirectionOut.String(), "OUT"},
		{Direction(9).String(), "UNKNOWN"},
		{LayerTransport.String(), "TRANSPORT"},
		{LayerProtocol.String(), "PROTOCOL"},
		{LayerClient.String(), "CLIENT"},
		{CategoryIdle.String(), "IDLE"},
		{CategoryError.String(), "ERROR"},
		{CommandTypeListBegin.String(), "LIST_BEGIN"},
		{CommandStatusSkipped.String(), "SKIPPED"},
		{StateEntitySupervisor.String(), "SUPERVISOR"},
		{IdleDegraded.String(), "DEGRADED"},
		{IdleType(42).String(), "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestEncodeDecodeCommandEvent(t *testing.T) {
	code := wire.AckNoExist
	idx := 2
	dur := 1500 * time.Microsecond
	event := Event{
		Timestamp:    time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC),
		ConnectionID: "conn-1",
		Direction:    DirectionIn,
		Layer:        LayerProtocol,
		Category:     CategoryMessage,
		Command: &CommandEvent{
			Type:      CommandTypeResponse,
			Name:      "play",
			Status:    CommandStatusAck,
			AckCode:   &code,
			Message:   "No such song",
			ListIndex: &idx,
			Duration:  &dur,
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !got.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", got.Timestamp, event.Timestamp)
	}
	if got.Command == nil {
		t.Fatal("Command is nil")
	}
	if got.Command.Status != CommandStatusAck || *got.Command.AckCode != wire.AckNoExist {
		t.Errorf("status/ack mismatch: %+v", got.Command)
	}
	if *got.Command.ListIndex != 2 || *got.Command.Duration != dur {
		t.Errorf("list index/duration mismatch: %+v", got.Command)
	}
}

func TestCommandArgsMasksPassword(t *testing.T) {
	if got := CommandArgs("password", []string{"hunter2"}); got[0] != MaskedArg {
		t.Errorf("password not masked: %v", got)
	}
	args := []string{"a.mp3"}
	got := CommandArgs("add", args)
	if got[0] != "a.mp3" {
		t.Errorf("got %v", got)
	}
	got[0] = "changed"
	if args[0] != "a.mp3" {
		t.Error("CommandArgs must copy")
	}
	if CommandArgs("status", nil) != nil {
		t.Error("expected nil for no args")
	}
}

func TestFileLoggerAppendsAndReads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "capture"+FileExtension)

	for _, id := range []string{"conn-1", "conn-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{
			Timestamp:    time.Now(),
			ConnectionID: id,
			Layer:        LayerTransport,
			Line:         &LineEvent{Text: "OK", Size: 3},
		})
		if err := logger.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := logger.Close(); err != nil {
			t.Fatalf("second Close failed: %v", err)
		}
		logger.Log(Event{ConnectionID: "after-close"})
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events := readAll(t, reader)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].ConnectionID != "conn-2" || events[1].Line.Text != "OK" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c"+FileExtension)
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				logger.Log(Event{Timestamp: time.Now(), ConnectionID: "c"})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	if n := len(readAll(t, reader)); n != 200 {
		t.Errorf("got %d events, want 200", n)
	}
	if logger.Dropped() != 0 {
		t.Errorf("dropped %d events", logger.Dropped())
	}
}

func TestReaderFilter(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	in := DirectionIn
	protocol := LayerProtocol
	ack := CommandStatusAck
	ok := CommandStatusOK
	events := []Event{
		{Timestamp: base, ConnectionID: "a", Direction: DirectionOut, Layer: LayerTransport, Line: &LineEvent{Text: "status"}},
		{Timestamp: base.Add(time.Second), ConnectionID: "a", Direction: DirectionIn, Layer: LayerProtocol, Command: &CommandEvent{Type: CommandTypeResponse, Name: "status"}},
		{Timestamp: base.Add(2 * time.Second), ConnectionID: "b", Direction: DirectionIn, Layer: LayerProtocol, Command: &CommandEvent{Type: CommandTypeResponse, Name: "play"}},
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "b", Direction: DirectionIn, Layer: LayerClient, Category: CategoryIdle, Idle: &IdleEvent{Type: IdleChanged, Changed: []string{"player"}}},
		{Timestamp: base.Add(4 * time.Second), ConnectionID: "b", Direction: DirectionOut, Layer: LayerClient, Category: CategoryIdle, Idle: &IdleEvent{Type: IdleStart, Subsystems: []string{"player"}}},
		{Timestamp: base.Add(5 * time.Second), ConnectionID: "a", Direction: DirectionIn, Layer: LayerProtocol, Command: &CommandEvent{Type: CommandTypeResponse, Name: "add", Status: CommandStatusAck}},
	}
	path := createTestLogFile(t, events)

	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 6},
		{"connection", Filter{ConnectionID: "b"}, 3},
		{"direction", Filter{Direction: &in}, 4},
		{"layer", Filter{Layer: &protocol}, 3},
		{"command", Filter{Command: "play"}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"ack status", Filter{Status: &ack}, 1},
		{"ok status", Filter{Status: &ok}, 2},
		{"command and status", Filter{Command: "add", Status: &ok}, 0},
		{"subsystem", Filter{Subsystem: "player"}, 2},
		{"other subsystem", Filter{Subsystem: "mixer"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()
			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestStreamReader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, name := range []string{"status", "play"} {
		if err := enc.Encode(Event{Command: &CommandEvent{Name: name}}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}
	buf.WriteString("\xff")

	r := NewStreamReader(&buf, Filter{Command: "play"})
	defer r.Close()

	var names []string
	var lastErr error
	for event, err := range r.Events() {
		if err != nil {
			lastErr = err
			continue
		}
		names = append(names, event.Command.Name)
	}
	if len(names) != 1 || names[0] != "play" {
		t.Errorf("names = %v, want [play]", names)
	}
	if lastErr == nil {
		t.Error("expected decode error for trailing garbage")
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing"+FileExtension))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMultiLogger(t *testing.T) {
	m1, m2 := &mockLogger{}, &mockLogger{}
	multi := NewMultiLogger(m1, nil, m2)
	if multi.Len() != 2 {
		t.Fatalf("Len = %d, want 2", multi.Len())
	}

	multi.Log(Event{ConnectionID: "x"})
	for i, m := range []*mockLogger{m1, m2} {
		if len(m.events) != 1 || m.events[0].ConnectionID != "x" {
			t.Errorf("logger %d: got %+v", i, m.events)
		}
	}

	NewMultiLogger().Log(Event{})
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	m := &mockLogger{}
	if OrNoop(m) != Logger(m) {
		t.Error("OrNoop should return the given logger")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	code := wire.AckPermission
	adapter.Log(Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerProtocol,
		Command: &CommandEvent{
			Type:    CommandTypeResponse,
			Name:    "add",
			Status:  CommandStatusAck,
			AckCode: &code,
		},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	want := map[string]any{
		"msg":       "protocol",
		"conn_id":   "conn-123",
		"direction": "IN",
		"layer":     "PROTOCOL",
		"command":   "add",
		"status":    "ACK",
		"ack":       "PERMISSION",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
}

func TestSlogAdapterIdleAndLine(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{Layer: LayerTransport, Line: &LineEvent{Size: 4097, Binary: true}})
	adapter.Log(Event{Layer: LayerClient, Idle: &IdleEvent{Type: IdleChanged, Changed: []string{"mixer"}, Subscribers: 2}})

	dec := json.NewDecoder(&buf)
	var line, idle map[string]any
	if err := dec.Decode(&line); err != nil {
		t.Fatalf("decode line entry: %v", err)
	}
	if err := dec.Decode(&idle); err != nil {
		t.Fatalf("decode idle entry: %v", err)
	}

	if line["binary"] != true || line["size"] != float64(4097) {
		t.Errorf("unexpected line entry: %v", line)
	}
	if idle["idle"] != "CHANGED" || idle["subscribers"] != float64(2) {
		t.Errorf("unexpected idle entry: %v", idle)
	}
}
