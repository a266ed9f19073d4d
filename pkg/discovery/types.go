package discovery

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"
)

// Service constants for mDNS.
const (
	// ServiceType is the DNS-SD service type MPD publishes.
	ServiceType = "_mpd._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is the default MPD port.
	DefaultPort = 6600

	// BrowseTimeout is the default timeout for FindFirst.
	BrowseTimeout = 5 * time.Second
)

// Discovery errors.
var (
	ErrNotFound       = errors.New("no MPD server found")
	ErrBrowserStopped = errors.New("browser stopped")
)

// Server is one MPD instance found on the network. Addresses seen on
// several interfaces are merged into one entry.
type Server struct {
	// Instance is the DNS-SD instance name, usually the configured
	// zeroconf_name ("Music Player @ host").
	Instance string

	// Host is the advertised host name.
	Host string

	// Port is the advertised TCP port.
	Port int

	// Addresses are IP addresses, IPv4 first.
	Addresses []string

	// Text holds TXT record pairs, if any.
	Text map[string]string
}

// Address returns a dialable host:port, preferring the first IP address
// over the host name.
func (s *Server) Address() string {
	port := s.Port
	if port == 0 {
		port = DefaultPort
	}
	host := strings.TrimSuffix(s.Host, ".")
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func newServer(instance, host string, port int, v4, v6 []net.IP, txt []string) *Server {
	addrs := make([]string, 0, len(v4)+len(v6))
	for _, ip := range v4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range v6 {
		addrs = append(addrs, ip.String())
	}
	return &Server{
		Instance:  instance,
		Host:      host,
		Port:      port,
		Addresses: addrs,
		Text:      parseTXT(txt),
	}
}

// parseTXT decodes "key=value" strings. A bare key maps to "".
func parseTXT(records []string) map[string]string {
	if len(records) == 0 {
		return nil
	}
	out := make(map[string]string, len(records))
	for _, r := range records {
		if r == "" {
			continue
		}
		key, value, _ := strings.Cut(r, "=")
		out[key] = value
	}
	return out
}

// mergeAddresses adds new addresses to the existing list, avoiding duplicates.
func mergeAddresses(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range added {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses drops the given addresses from the list.
func removeAddresses(addresses, gone []string) []string {
	drop := make(map[string]bool, len(gone))
	for _, addr := range gone {
		drop[addr] = true
	}
	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !drop[addr] {
			result = append(result, addr)
		}
	}
	return result
}
