package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// DefaultPort is the standard MPD TCP port.
const DefaultPort = "6600"

// Connection errors.
var (
	// ErrHandshake indicates the server did not send a valid greeting.
	ErrHandshake = errors.New("handshake failed")

	// ErrConnectionClosed indicates the connection was closed locally.
	ErrConnectionClosed = errors.New("connection closed")
)

// ClientConfig configures how connections are dialed.
type ClientConfig struct {
	// ConnectTimeout bounds dialing when the context has no deadline
	// (default: 10s).
	ConnectTimeout time.Duration

	// HelloTimeout bounds the wait for the server greeting (default: 5s).
	HelloTimeout time.Duration

	// KeepAlive is the TCP keep-alive period (default: 30s, negative
	// disables).
	KeepAlive time.Duration

	// ReadTimeout bounds reads of ordinary responses (0 = no timeout).
	// Idle waits are never bounded.
	ReadTimeout time.Duration

	// WriteTimeout bounds each request write (0 = no timeout).
	WriteTimeout time.Duration

	// MaxLineSize is the maximum response line length (default: 1 MiB).
	MaxLineSize int

	// MaxBinarySize is the maximum binary payload of one response
	// (default: 16 MiB).
	MaxBinarySize int

	// TLSConfig wraps the stream in TLS when set, for servers behind a
	// TLS terminating proxy.
	TLSConfig *tls.Config

	// Logger receives protocol events (optional).
	Logger log.Logger
}

// DefaultClientConfig returns the default dial configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ConnectTimeout: 10 * time.Second,
		HelloTimeout:   5 * time.Second,
		KeepAlive:      30 * time.Second,
		MaxLineSize:    DefaultMaxLineSize,
		MaxBinarySize:  DefaultMaxBinarySize,
	}
}

func (c *ClientConfig) applyDefaults() {
	d := DefaultClientConfig()
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.HelloTimeout == 0 {
		c.HelloTimeout = d.HelloTimeout
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = d.KeepAlive
	}
	if c.MaxLineSize == 0 {
		c.MaxLineSize = d.MaxLineSize
	}
	if c.MaxBinarySize == 0 {
		c.MaxBinarySize = d.MaxBinarySize
	}
}

// SplitAddress infers the network for an address. Paths starting with '/'
// and abstract sockets starting with '@' are Unix sockets; anything else is
// TCP, with DefaultPort added when no port is given.
func SplitAddress(address string) (network, addr string) {
	if strings.HasPrefix(address, "/") || strings.HasPrefix(address, "@") {
		return "unix", address
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		return "tcp", net.JoinHostPort(strings.Trim(address, "[]"), DefaultPort)
	}
	return "tcp", address
}

// Dial connects to an MPD server and completes the greeting.
func Dial(ctx context.Context, address string, config ClientConfig) (*Conn, error) {
	config.applyDefaults()

	// Apply timeout from config if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	network, addr := SplitAddress(address)
	dialer := &net.Dialer{KeepAlive: config.KeepAlive}
	nc, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s %s: %w", wire.ErrConnection, network, addr, err)
	}

	if config.TLSConfig != nil {
		tlsConn := tls.Client(nc, config.TLSConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			nc.Close()
			return nil, fmt.Errorf("%w: TLS handshake failed: %w", wire.ErrConnection, err)
		}
		nc = tlsConn
	}

	return NewConn(nc, config)
}

// Conn is an established MPD connection: a line reader and writer over the
// stream plus the server's protocol version.
type Conn struct {
	*LineReader
	*LineWriter

	nc      net.Conn
	config  ClientConfig
	id      string
	version string

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewConn wraps an already connected stream and reads the greeting within
// HelloTimeout. The stream is closed if the greeting is invalid.
func NewConn(nc net.Conn, config ClientConfig) (*Conn, error) {
	config.applyDefaults()

	c := &Conn{
		LineReader: NewLineReaderWithMaxSize(nc, config.MaxLineSize),
		LineWriter: NewLineWriter(nc),
		nc:         nc,
		config:     config,
		id:         uuid.New().String(),
	}
	c.LineReader.SetMaxBinarySize(config.MaxBinarySize)
	if config.Logger != nil {
		c.LineReader.SetLogger(config.Logger, c.id)
		c.LineWriter.SetLogger(config.Logger, c.id)
	}

	if err := c.handshake(); err != nil {
		c.logState("DISCONNECTED", err.Error())
		nc.Close()
		return nil, err
	}
	c.logState("CONNECTED", "")
	return c, nil
}

func (c *Conn) handshake() error {
	if err := c.nc.SetReadDeadline(time.Now().Add(c.config.HelloTimeout)); err != nil {
		return fmt.Errorf("%w: %w", wire.ErrConnection, err)
	}
	line, err := c.ReadLine()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if err := c.nc.SetReadDeadline(time.Time{}); err != nil {
		return fmt.Errorf("%w: %w", wire.ErrConnection, err)
	}

	version, ok := wire.ParseHello(line)
	if !ok {
		return fmt.Errorf("%w: %w: unexpected greeting %q", wire.ErrConnection, ErrHandshake, line)
	}
	c.version = version
	return nil
}

// ID returns the connection ID used in protocol logs.
func (c *Conn) ID() string { return c.id }

// Version returns the protocol version from the greeting.
func (c *Conn) Version() string { return c.version }

// RemoteAddr returns the server address.
func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }

// LocalAddr returns the local address.
func (c *Conn) LocalAddr() net.Addr { return c.nc.LocalAddr() }

// Config returns the effective configuration.
func (c *Conn) Config() ClientConfig { return c.config }

// Logger returns the protocol logger, never nil.
func (c *Conn) Logger() log.Logger { return log.OrNoop(c.config.Logger) }

// Send writes one request line, applying WriteTimeout.
func (c *Conn) Send(line string) error {
	if c.closed.Load() {
		return fmt.Errorf("%w: %w", wire.ErrConnection, ErrConnectionClosed)
	}
	if c.config.WriteTimeout > 0 {
		c.nc.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
		defer c.nc.SetWriteDeadline(time.Time{})
	}
	return c.WriteLine(line)
}

// SetReadTimeout arms ReadTimeout for the next reads, or clears the read
// deadline when bounded is false.
func (c *Conn) SetReadTimeout(bounded bool) error {
	var deadline time.Time
	if bounded && c.config.ReadTimeout > 0 {
		deadline = time.Now().Add(c.config.ReadTimeout)
	}
	return c.nc.SetReadDeadline(deadline)
}

// Interrupt makes a blocked read return a timeout error immediately.
// The next SetReadTimeout call re-arms reads.
func (c *Conn) Interrupt() error {
	return c.nc.SetReadDeadline(time.Now())
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool { return c.closed.Load() }

// Close closes the stream. Safe to call multiple times.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		err = c.nc.Close()
		c.logState("DISCONNECTED", "closed")
	})
	return err
}

func (c *Conn) logState(state, reason string) {
	if c.config.Logger == nil {
		return
	}
	c.config.Logger.Log(log.Event{
		Timestamp:     time.Now(),
		ConnectionID:  c.id,
		Layer:         log.LayerTransport,
		Category:      log.CategoryState,
		RemoteAddr:    c.nc.RemoteAddr().String(),
		ServerVersion: c.version,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			NewState: state,
			Reason:   reason,
		},
	})
}
