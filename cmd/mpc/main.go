// Command mpc is a command-line client for the Music Player Daemon.
//
// Commands given as arguments are sent one after the other. Without
// arguments mpc reads commands from standard input: with line editing and
// history on a terminal, one per line otherwise.
//
// Usage:
//
//	mpc [flags] [command [args...]]
//
// Flags:
//
//	-config string        Configuration file (.yaml, .yml or .toml)
//	-host string          Server host, socket path or @abstract socket
//	-port int             Server port
//	-password string      Server password
//	-discover             Find a server with mDNS/DNS-SD
//	-reconnect            Redial with backoff after the connection is lost
//	-timeout duration     Per-command timeout (default 30s)
//	-protocol-log string  File path for protocol event logging (CBOR format)
//	-log-level string     Log level: debug, info, warn, error
//
// MPD_HOST ([password@]host) and MPD_PORT override the config file; flags
// override both.
//
// Examples:
//
//	# Show the current song
//	mpc currentsong
//
//	# Search with a filter expression
//	mpc find "(artist == 'Miles Davis')"
//
//	# Interactive shell with a protocol capture
//	mpc -protocol-log mpd.mlog
//
//	# Print player changes as they happen
//	echo 'watch player' | mpc -reconnect
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/mpdlink/mpd-go/cmd/mpc/shell"
	"github.com/mpdlink/mpd-go/pkg/config"
	"github.com/mpdlink/mpd-go/pkg/connection"
	"github.com/mpdlink/mpd-go/pkg/discovery"
	mpdlog "github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/mpd"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

var (
	configFile  = flag.String("config", "", "Configuration file (.yaml, .yml or .toml)")
	host        = flag.String("host", "", "Server host, socket path or @abstract socket")
	port        = flag.Int("port", 0, "Server port")
	password    = flag.String("password", "", "Server password")
	discover    = flag.Bool("discover", false, "Find a server with mDNS/DNS-SD")
	reconnect   = flag.Bool("reconnect", false, "Redial with backoff after the connection is lost")
	timeout     = flag.Duration("timeout", shell.DefaultTimeout, "Per-command timeout")
	protocolLog = flag.String("protocol-log", "", "File path for protocol event logging (CBOR format)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := resolveConfig(*configFile, os.Getenv, overrides{
		Host:        *host,
		Port:        *port,
		Password:    *password,
		ProtocolLog: *protocolLog,
		LogLevel:    *logLevel,
	})
	if err != nil {
		return err
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interactive := flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd()))

	var rl *readline.Instance
	var logOut io.Writer = os.Stderr
	if interactive {
		rl, err = readline.NewEx(&readline.Config{
			Prompt:          "mpd> ",
			HistoryFile:     historyFile(),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to create readline: %w", err)
		}
		defer rl.Close()
		logOut = rl.Stderr()
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	if *discover {
		browser, err := discovery.NewBrowser(discovery.BrowserConfig{Logger: logger})
		if err != nil {
			return err
		}
		srv, err := browser.FindFirst(ctx)
		if err != nil {
			return fmt.Errorf("discovery: %w", err)
		}
		logger.Info("discovered server", "instance", srv.Instance, "address", srv.Address())
		cfg.Host, cfg.Port = srv.Host, srv.Port
		if len(srv.Addresses) > 0 {
			cfg.Host = srv.Addresses[0]
		}
	}

	clientCfg := cfg.ClientConfig()
	clientCfg.Logger = logger
	if cfg.ProtocolLog != "" {
		fileLogger, err := mpdlog.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("failed to create protocol logger: %w", err)
		}
		defer fileLogger.Close()
		clientCfg.ProtocolLogger = fileLogger
		if level <= slog.LevelDebug {
			clientCfg.ProtocolLogger = mpdlog.NewMultiLogger(fileLogger, mpdlog.NewSlogAdapter(logger))
		}
		logger.Info("protocol logging", "file", cfg.ProtocolLog)
	}

	clientFn, closeClient, err := connect(ctx, cfg, clientCfg, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	var out io.Writer = os.Stdout
	if interactive {
		out = rl.Stdout()
	}
	sh := shell.New(clientFn, out)
	sh.SetTimeout(*timeout)

	switch {
	case flag.NArg() > 0:
		return sh.Exec(ctx, joinArgs(flag.Args()))
	case interactive:
		fmt.Fprintln(out, "Type 'help' for commands.")
		return sh.Run(ctx, interruptible{rl})
	default:
		return sh.Run(ctx, shell.NewScanner(os.Stdin))
	}
}

// connect returns the client source for the shell: a supervised client
// with -reconnect, a plain one otherwise.
func connect(ctx context.Context, cfg config.Config, clientCfg mpd.Config, logger *slog.Logger) (shell.ClientFunc, func(), error) {
	address := cfg.Address()

	if !*reconnect {
		c, err := mpd.Dial(ctx, address, clientCfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("connected", "server", address, "version", c.Version())
		return func() (*mpd.Client, error) {
			select {
			case <-c.Done():
				return nil, c.Err()
			default:
				return c, nil
			}
		}, func() { c.Close() }, nil
	}

	sup := connection.NewSupervisor(connection.Dialer(address, clientCfg), connection.Config{
		Backoff: cfg.BackoffConfig(),
		Logger:  logger,
	})
	sup.OnDisconnected(func(err error) {
		logger.Warn("connection lost, watches must be restarted", "error", err)
	})
	sup.OnReconnecting(func(attempt int, delay time.Duration) {
		logger.Info("reconnecting", "attempt", attempt, "delay", delay.Round(time.Millisecond))
	})
	if err := sup.Connect(ctx); err != nil {
		sup.Close()
		return nil, nil, err
	}
	return sup.Client, func() { sup.Close() }, nil
}

// joinArgs rebuilds a command line from shell arguments, quoting arguments
// that the tokenizer would otherwise split.
func joinArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if i > 0 && (a == "" || strings.ContainsAny(a, " \t\"\\")) {
			a = wire.Quote(a)
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mpc_history")
}

// interruptible turns ^C on an empty prompt into a fresh prompt.
type interruptible struct {
	rl *readline.Instance
}

func (r interruptible) Readline() (string, error) {
	for {
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		return line, err
	}
}
