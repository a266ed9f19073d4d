package transport

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/mpdtest"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		in      string
		network string
		addr    string
	}{
		{"localhost", "tcp", "localhost:6600"},
		{"localhost:6601", "tcp", "localhost:6601"},
		{"::1", "tcp", "[::1]:6600"},
		{"[::1]:7000", "tcp", "[::1]:7000"},
		{"/run/mpd/socket", "unix", "/run/mpd/socket"},
		{"@mpd", "unix", "@mpd"},
	}

	for _, tt := range tests {
		network, addr := SplitAddress(tt.in)
		assert.Equal(t, tt.network, network, tt.in)
		assert.Equal(t, tt.addr, addr, tt.in)
	}
}

func TestDialHandshake(t *testing.T) {
	srv := mpdtest.NewServer(t, mpdtest.WithVersion("0.24.0"))
	srv.Expect("ping").OK()

	logger := &recordingLogger{}
	conn, err := Dial(context.Background(), srv.Addr(), ClientConfig{Logger: logger})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "0.24.0", conn.Version())
	assert.NotEmpty(t, conn.ID())

	require.NoError(t, conn.Send("ping"))
	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "OK", line)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
	assert.True(t, conn.Closed())
	assert.True(t, errors.Is(conn.Send("ping"), wire.ErrConnection))

	var states []string
	for _, e := range logger.events {
		if e.StateChange != nil {
			states = append(states, e.StateChange.NewState)
		}
	}
	assert.Equal(t, []string{"CONNECTED", "DISCONNECTED"}, states)
}

func TestDialBadGreeting(t *testing.T) {
	srv := mpdtest.NewServer(t, mpdtest.WithHello("HELLO WORLD"))

	_, err := Dial(context.Background(), srv.Addr(), ClientConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHandshake))
	assert.True(t, errors.Is(err, wire.ErrConnection))
}

func TestHelloTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	start := time.Now()
	_, err := NewConn(client, ClientConfig{HelloTimeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wire.ErrConnection))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Dial(context.Background(), addr, ClientConfig{ConnectTimeout: time.Second})
	assert.True(t, errors.Is(err, wire.ErrConnection))
}

func TestSetReadTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	go server.Write([]byte("OK MPD 0.23.0\n"))

	conn, err := NewConn(client, ClientConfig{ReadTimeout: 30 * time.Millisecond, Logger: log.NoopLogger{}})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadTimeout(true))
	_, err = conn.ReadLine()
	var netErr net.Error
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout())
}

func TestDefaultClientConfig(t *testing.T) {
	cfg := DefaultClientConfig()
	assert.Equal(t, 5*time.Second, cfg.HelloTimeout)
	assert.Equal(t, 30*time.Second, cfg.KeepAlive)
	assert.Equal(t, DefaultMaxLineSize, cfg.MaxLineSize)
	assert.Equal(t, DefaultMaxBinarySize, cfg.MaxBinarySize)

	var zero ClientConfig
	zero.applyDefaults()
	assert.Equal(t, cfg, zero)
}
