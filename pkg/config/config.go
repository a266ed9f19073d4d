// Package config loads connection settings for the command line tools from
// a YAML or TOML file and the MPD_HOST / MPD_PORT environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mpdlink/mpd-go/pkg/connection"
	"github.com/mpdlink/mpd-go/pkg/mpd"
	"github.com/mpdlink/mpd-go/pkg/transport"
)

// Defaults.
const (
	DefaultHost = "localhost"
	DefaultPort = 6600
)

// Environment variables understood by ApplyEnv.
const (
	EnvHost = "MPD_HOST"
	EnvPort = "MPD_PORT"
)

// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler, used by TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Reconnect configures redial backoff.
type Reconnect struct {
	Initial Duration `yaml:"initial" toml:"initial"`
	Max     Duration `yaml:"max" toml:"max"`
}

// Config holds client settings.
type Config struct {
	// Host is a host name, an IP address, a Unix socket path ("/...") or
	// an abstract socket ("@...").
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	Password string `yaml:"password" toml:"password"`

	ConnectTimeout Duration `yaml:"connect_timeout" toml:"connect_timeout"`
	ReadTimeout    Duration `yaml:"read_timeout" toml:"read_timeout"`

	// GraceWindow and QueueSize tune the multiplexing client.
	GraceWindow Duration `yaml:"grace_window" toml:"grace_window"`
	QueueSize   int      `yaml:"queue_size" toml:"queue_size"`

	// IdleSubsystems is watched while no subscriber is registered.
	IdleSubsystems []string `yaml:"idle_subsystems" toml:"idle_subsystems"`

	Reconnect Reconnect `yaml:"reconnect" toml:"reconnect"`

	// ProtocolLog is a file that receives a CBOR protocol capture.
	ProtocolLog string `yaml:"protocol_log" toml:"protocol_log"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		ConnectTimeout: Duration(10 * time.Second),
		GraceWindow:    Duration(mpd.DefaultGraceWindow),
		QueueSize:      mpd.DefaultQueueSize,
		Reconnect: Reconnect{
			Initial: Duration(connection.InitialBackoff),
			Max:     Duration(connection.MaxBackoff),
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml / .yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides host, password and port from the environment.
// MPD_HOST has the form [password@]host; a leading '@' marks an abstract
// socket, not a password.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if host := getenv(EnvHost); host != "" {
		if i := strings.Index(host, "@"); i > 0 {
			c.Password = host[:i]
			host = host[i+1:]
		}
		if host != "" {
			c.Host = host
		}
	}
	if port := getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid %s %q", EnvPort, port)
		}
		c.Port = p
	}
	return nil
}

// Address returns the dial address.
func (c Config) Address() string {
	if strings.HasPrefix(c.Host, "/") || strings.HasPrefix(c.Host, "@") {
		return c.Host
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// ClientConfig converts the settings into a client configuration.
func (c Config) ClientConfig() mpd.Config {
	cfg := mpd.DefaultConfig()
	cfg.Password = c.Password
	cfg.GraceWindow = c.GraceWindow.Std()
	cfg.QueueSize = c.QueueSize
	if len(c.IdleSubsystems) > 0 {
		cfg.IdleSubsystems = c.IdleSubsystems
	}
	cfg.Transport = transport.DefaultClientConfig()
	if c.ConnectTimeout > 0 {
		cfg.Transport.ConnectTimeout = c.ConnectTimeout.Std()
	}
	cfg.Transport.ReadTimeout = c.ReadTimeout.Std()
	return cfg
}

// BackoffConfig converts the reconnect settings.
func (c Config) BackoffConfig() connection.BackoffConfig {
	cfg := connection.DefaultBackoffConfig()
	if c.Reconnect.Initial > 0 {
		cfg.Initial = c.Reconnect.Initial.Std()
	}
	if c.Reconnect.Max > 0 {
		cfg.Max = c.Reconnect.Max.Std()
	}
	return cfg
}
