package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpdlink/mpd-go/pkg/config"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: file-host\nport: 6601\nlog_level: warn\n"), 0o644))

	cfg, err := resolveConfig(path, env(nil), overrides{})
	require.NoError(t, err)
	assert.Equal(t, "file-host", cfg.Host)
	assert.Equal(t, 6601, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = resolveConfig(path, env(map[string]string{"MPD_HOST": "secret@env-host"}), overrides{})
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.Host)
	assert.Equal(t, "secret", cfg.Password)

	cfg, err = resolveConfig(path, env(map[string]string{"MPD_HOST": "env-host"}), overrides{
		Host:     "flag-host",
		Port:     6602,
		LogLevel: "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "flag-host", cfg.Host)
	assert.Equal(t, 6602, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig("", env(nil), overrides{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "localhost:6600", cfg.Address())
}

func TestResolveConfigErrors(t *testing.T) {
	_, err := resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"), env(nil), overrides{})
	assert.Error(t, err)

	_, err = resolveConfig("", env(map[string]string{"MPD_PORT": "http"}), overrides{})
	assert.Error(t, err)

	_, err = resolveConfig("", env(nil), overrides{Port: 70000})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"status"}, "status"},
		{[]string{"play", "3"}, "play 3"},
		{[]string{"find", "(artist == 'Miles Davis')"}, `find "(artist == 'Miles Davis')"`},
		{[]string{"add", `say "hi".mp3`}, `add "say \"hi\".mp3"`},
		{[]string{"sticker", "get", "song", ""}, `sticker get song ""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinArgs(tt.args))
	}
}
