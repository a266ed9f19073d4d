// Package discovery finds MPD servers on the local network.
//
// MPD built with zeroconf support publishes itself as a DNS-SD service of
// type _mpd._tcp. A Browser lists those instances, merging the addresses
// one instance announces on several interfaces:
//
//	b, _ := discovery.NewBrowser(discovery.DefaultBrowserConfig())
//	defer b.Stop()
//	srv, err := b.FindFirst(ctx)
//	if err == nil {
//		c, err := mpd.Dial(ctx, srv.Address(), mpd.DefaultConfig())
//	}
package discovery
