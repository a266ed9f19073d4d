package discovery

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	srv := newServer("Music Player @ den", "den.local.", 6600,
		[]net.IP{net.ParseIP("192.168.1.20")},
		[]net.IP{net.ParseIP("fe80::1")},
		[]string{"txtvers=1", "flag", ""})

	assert.Equal(t, "Music Player @ den", srv.Instance)
	assert.Equal(t, []string{"192.168.1.20", "fe80::1"}, srv.Addresses)
	assert.Equal(t, map[string]string{"txtvers": "1", "flag": ""}, srv.Text)
	assert.Equal(t, "192.168.1.20:6600", srv.Address())
}

func TestServerAddress(t *testing.T) {
	tests := []struct {
		name string
		srv  Server
		want string
	}{
		{"ipv4", Server{Addresses: []string{"10.0.0.2"}, Port: 6601}, "10.0.0.2:6601"},
		{"ipv6", Server{Addresses: []string{"fe80::2"}, Port: 6600}, "[fe80::2]:6600"},
		{"host fallback", Server{Host: "mpd.local.", Port: 6600}, "mpd.local:6600"},
		{"default port", Server{Addresses: []string{"10.0.0.2"}}, "10.0.0.2:6600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.srv.Address())
		})
	}
}

func TestAddressAggregation(t *testing.T) {
	addrs := mergeAddresses([]string{"10.0.0.2"}, []string{"10.0.0.2", "fe80::2"})
	assert.Equal(t, []string{"10.0.0.2", "fe80::2"}, addrs)

	addrs = removeAddresses(addrs, []string{"10.0.0.2"})
	assert.Equal(t, []string{"fe80::2"}, addrs)

	assert.Empty(t, removeAddresses(addrs, []string{"fe80::2"}))
}

func TestParseTXTEmpty(t *testing.T) {
	assert.Nil(t, parseTXT(nil))
}

func TestBrowserStopped(t *testing.T) {
	b, err := NewBrowser(BrowserConfig{})
	require.NoError(t, err)
	assert.Equal(t, BrowseTimeout, b.config.BrowseTimeout)

	b.Stop()
	_, err = b.Browse(context.Background())
	assert.True(t, errors.Is(err, ErrBrowserStopped))

	_, err = b.FindFirst(context.Background())
	assert.ErrorIs(t, err, ErrBrowserStopped)
}
