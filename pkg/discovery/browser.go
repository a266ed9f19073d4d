package discovery

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout bounds FindFirst when the context has no deadline.
	// Default: 5 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
	}
}

// Browser finds MPD servers with mDNS/DNS-SD.
type Browser struct {
	config BrowserConfig
	log    *slog.Logger

	mu      sync.Mutex
	stopped bool
	cancels []context.CancelFunc
}

// NewBrowser creates a browser.
func NewBrowser(config BrowserConfig) (*Browser, error) {
	if config.BrowseTimeout <= 0 {
		config.BrowseTimeout = BrowseTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Browser{config: config, log: logger}, nil
}

// Browse searches for MPD servers until ctx ends or Stop is called. Each
// instance is sent once, when first seen; addresses reported later on
// other interfaces are merged into the same *Server. The channel is
// closed when browsing ends.
func (b *Browser) Browse(ctx context.Context) (<-chan *Server, error) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil, ErrBrowserStopped
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancels = append(b.cancels, cancel)
	b.mu.Unlock()

	out := make(chan *Server)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)

		servers := make(map[string]*Server)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				srv := fromEntry(entry)
				if existing, found := servers[srv.Instance]; found {
					existing.Addresses = mergeAddresses(existing.Addresses, srv.Addresses)
					continue
				}
				servers[srv.Instance] = srv
				b.log.Debug("server found", "instance", srv.Instance, "addr", srv.Address())
				select {
				case out <- srv:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				existing, found := servers[entry.Instance]
				if !found {
					continue
				}
				existing.Addresses = removeAddresses(existing.Addresses, fromEntry(entry).Addresses)
				if len(existing.Addresses) == 0 {
					delete(servers, entry.Instance)
					b.log.Debug("server gone", "instance", entry.Instance)
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	opts := b.browserOptions()
	go func() {
		if err := zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...); err != nil {
			b.log.Debug("browse failed", "error", err)
			cancel()
		}
	}()

	return out, nil
}

// FindFirst returns the first server found. Without a deadline on ctx it
// gives up after the configured browse timeout with ErrNotFound.
func (b *Browser) FindFirst(ctx context.Context) (*Server, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.BrowseTimeout)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	servers, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}
	select {
	case srv, ok := <-servers:
		if ok {
			return srv, nil
		}
	case <-ctx.Done():
	}
	return nil, ErrNotFound
}

// Stop ends every running browse.
func (b *Browser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
}

func (b *Browser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		} else {
			b.log.Warn("interface not found, browsing on all", "interface", b.config.Interface, "error", err)
		}
	}
	return opts
}

func fromEntry(entry *zeroconf.ServiceEntry) *Server {
	return newServer(entry.Instance, entry.HostName, entry.Port, entry.AddrIPv4, entry.AddrIPv6, entry.Text)
}
