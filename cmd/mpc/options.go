package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mpdlink/mpd-go/pkg/config"
)

// overrides holds the command-line settings that win over the config file
// and the environment. Zero values leave the setting alone.
type overrides struct {
	Host        string
	Port        int
	Password    string
	ProtocolLog string
	LogLevel    string
}

// resolveConfig layers defaults, the config file, the environment and the
// command line, in that order.
func resolveConfig(path string, getenv func(string) string, o overrides) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return cfg, err
	}

	if o.Host != "" {
		cfg.Host = o.Host
	}
	if o.Port != 0 {
		if o.Port < 0 || o.Port > 65535 {
			return cfg, fmt.Errorf("invalid port %d", o.Port)
		}
		cfg.Port = o.Port
	}
	if o.Password != "" {
		cfg.Password = o.Password
	}
	if o.ProtocolLog != "" {
		cfg.ProtocolLog = o.ProtocolLog
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return cfg, nil
}

// parseLevel maps a log level name to its slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use: debug, info, warn, error)", s)
	}
}
