package beacon

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"

	"go.uber.org/zap"

	"github.com/ryandielhenn/zephyrbeacon/internal/telemetry"
)

// PeerSource yields the current set of peer endpoints. It is called once
// per send cycle and must never include the local node's own address. An
// empty result means "no peers this cycle", not an error.
type PeerSource interface {
	Resolve() []netip.AddrPort
}

// broadcastAddr is the limited-broadcast sentinel used when no peer-group
// name is configured.
var broadcastAddr = netip.AddrFrom4([4]byte{255, 255, 255, 255})

// LookupFunc resolves a host name to its IPv4 addresses.
type LookupFunc func(host string) ([]netip.Addr, error)

// Resolver turns a logical peer-group name into the current peer set via a
// fresh DNS lookup on every call. No caching: tolerating peer churn is
// worth a lookup per cycle.
type Resolver struct {
	service  string
	port     uint16
	lookup   LookupFunc
	hostname func() (string, error)
	log      *zap.Logger
}

// NewResolver builds a Resolver for the given peer-group name and shared
// UDP port. An empty service name puts the resolver in broadcast mode.
func NewResolver(service string, port uint16, log *zap.Logger) *Resolver {
	return &Resolver{
		service:  service,
		port:     port,
		lookup:   defaultLookup,
		hostname: os.Hostname,
		log:      log,
	}
}

func defaultLookup(host string) ([]netip.Addr, error) {
	return net.DefaultResolver.LookupNetIP(context.Background(), "ip4", host)
}

// Resolve implements PeerSource. Any resolution failure is logged and
// degrades to an empty set; it is never fatal. A result where every
// resolved address was our own is legitimately empty.
func (r *Resolver) Resolve() []netip.AddrPort {
	if r.service == "" {
		return []netip.AddrPort{netip.AddrPortFrom(broadcastAddr, r.port)}
	}

	self, err := r.selfAddr()
	if err != nil {
		r.log.Error("error resolving peers", zap.String("service", r.service), zap.Error(err))
		telemetry.ResolveErrors.Inc()
		return nil
	}

	addrs, err := r.lookup(r.service)
	if err != nil {
		r.log.Error("error resolving peers", zap.String("service", r.service), zap.Error(err))
		telemetry.ResolveErrors.Inc()
		return nil
	}

	seen := make(map[netip.Addr]struct{}, len(addrs))
	peers := make([]netip.AddrPort, 0, len(addrs))
	for _, a := range addrs {
		a = a.Unmap()
		if a == self {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		peers = append(peers, netip.AddrPortFrom(a, r.port))
	}
	return peers
}

// selfAddr resolves this node's own IPv4 address through its hostname, the
// same view peers get when the service name resolves to us.
func (r *Resolver) selfAddr() (netip.Addr, error) {
	host, err := r.hostname()
	if err != nil {
		return netip.Addr{}, fmt.Errorf("hostname: %w", err)
	}
	addrs, err := r.lookup(host)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("lookup %s: %w", host, err)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("lookup %s: no addresses", host)
	}
	return addrs[0].Unmap(), nil
}

// SelfAddr resolves the local node's own IPv4 address via hostname lookup.
// Used at startup when registering with a peer registry.
func SelfAddr() (netip.Addr, error) {
	r := &Resolver{lookup: defaultLookup, hostname: os.Hostname}
	return r.selfAddr()
}
