package log

import (
	"time"

	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the server address (host:port or socket path).
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// ServerVersion is the protocol version announced in the greeting.
	ServerVersion string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Line        *LineEvent        `cbor:"10,keyasint,omitempty"` // Transport layer
	Command     *CommandEvent     `cbor:"11,keyasint,omitempty"` // Protocol layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Client state
	Idle        *IdleEvent        `cbor:"13,keyasint,omitempty"` // Idle notifications
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates data received from the server.
	DirectionIn Direction = 0
	// DirectionOut indicates data sent to the server.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the line layer (raw protocol text).
	LayerTransport Layer = 0
	// LayerProtocol is the command layer (requests and parsed outcomes).
	LayerProtocol Layer = 1
	// LayerClient is the multiplexing client (states, idle fan-out).
	LayerClient Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerProtocol:
		return "PROTOCOL"
	case LayerClient:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates protocol traffic.
	CategoryMessage Category = 0
	// CategoryIdle indicates idle start, cancellation or change delivery.
	CategoryIdle Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryIdle:
		return "IDLE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LineEvent captures one protocol line, or the size of a binary payload.
type LineEvent struct {
	// Text is the line without its newline. Empty for binary payloads.
	Text string `cbor:"1,keyasint,omitempty"`

	// Size is the number of bytes on the wire, including the newline.
	Size int `cbor:"2,keyasint"`

	// Binary marks a raw payload following a "binary:" line.
	Binary bool `cbor:"3,keyasint,omitempty"`

	// Truncated indicates Text was shortened for the log.
	Truncated bool `cbor:"4,keyasint,omitempty"`
}

// CommandEvent captures a command request or its outcome.
type CommandEvent struct {
	// Type distinguishes requests from responses and list markers.
	Type CommandType `cbor:"1,keyasint"`

	// Name is the command name.
	Name string `cbor:"2,keyasint"`

	// Args are the unquoted arguments (requests only). Secrets are masked.
	Args []string `cbor:"3,keyasint,omitempty"`

	// Status is the outcome (responses only).
	Status CommandStatus `cbor:"4,keyasint,omitempty"`

	// AckCode is set when the server answered with ACK.
	AckCode *wire.AckCode `cbor:"5,keyasint,omitempty"`

	// Message carries the ACK or error text.
	Message string `cbor:"6,keyasint,omitempty"`

	// ListIndex is the position inside a command list.
	ListIndex *int `cbor:"7,keyasint,omitempty"`

	// Duration from request write to response end (responses only).
	// Stored as nanoseconds.
	Duration *time.Duration `cbor:"8,keyasint,omitempty"`
}

// CommandType distinguishes command events.
type CommandType uint8

const (
	// CommandTypeRequest indicates a command was written.
	CommandTypeRequest CommandType = 0
	// CommandTypeResponse indicates a response was read.
	CommandTypeResponse CommandType = 1
	// CommandTypeListBegin indicates a command list was opened.
	CommandTypeListBegin CommandType = 2
	// CommandTypeListEnd indicates a command list was closed.
	CommandTypeListEnd CommandType = 3
)

// String returns the command type name.
func (c CommandType) String() string {
	switch c {
	case CommandTypeRequest:
		return "REQUEST"
	case CommandTypeResponse:
		return "RESPONSE"
	case CommandTypeListBegin:
		return "LIST_BEGIN"
	case CommandTypeListEnd:
		return "LIST_END"
	default:
		return "UNKNOWN"
	}
}

// CommandStatus is the outcome of a command.
type CommandStatus uint8

const (
	// CommandStatusOK indicates success.
	CommandStatusOK CommandStatus = 0
	// CommandStatusAck indicates the server rejected the command.
	CommandStatusAck CommandStatus = 1
	// CommandStatusSkipped indicates a list item after a failed one.
	CommandStatusSkipped CommandStatus = 2
	// CommandStatusFailed indicates a local, protocol or connection failure.
	CommandStatusFailed CommandStatus = 3
)

// String returns the status name.
func (c CommandStatus) String() string {
	switch c {
	case CommandStatusOK:
		return "OK"
	case CommandStatusAck:
		return "ACK"
	case CommandStatusSkipped:
		return "SKIPPED"
	case CommandStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures connection and client lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a transport connection change.
	StateEntityConnection StateEntity = 0
	// StateEntityClient indicates a multiplexing client state change.
	StateEntityClient StateEntity = 1
	// StateEntitySupervisor indicates a reconnect supervisor change.
	StateEntitySupervisor StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntityClient:
		return "CLIENT"
	case StateEntitySupervisor:
		return "SUPERVISOR"
	default:
		return "UNKNOWN"
	}
}

// IdleEvent captures the idle cycle of the client.
type IdleEvent struct {
	// Type of idle event.
	Type IdleType `cbor:"1,keyasint"`

	// Subsystems requested with the idle command (empty means all).
	Subsystems []string `cbor:"2,keyasint,omitempty"`

	// Changed lists the reported subsystems (changes only).
	Changed []string `cbor:"3,keyasint,omitempty"`

	// Subscribers is the number of subscribers notified (changes only).
	Subscribers int `cbor:"4,keyasint,omitempty"`
}

// IdleType indicates the idle event kind.
type IdleType uint8

const (
	// IdleStart indicates an idle command was sent.
	IdleStart IdleType = 0
	// IdleCancel indicates noidle was sent.
	IdleCancel IdleType = 1
	// IdleChanged indicates changes were delivered to subscribers.
	IdleChanged IdleType = 2
	// IdleDegraded indicates the server rejected idle.
	IdleDegraded IdleType = 3
)

// String returns the idle type name.
func (i IdleType) String() string {
	switch i {
	case IdleStart:
		return "START"
	case IdleCancel:
		return "CANCEL"
	case IdleChanged:
		return "CHANGED"
	case IdleDegraded:
		return "DEGRADED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the ACK code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
