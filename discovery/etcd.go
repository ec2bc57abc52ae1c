// Package discovery provides the etcd-backed peer registry used when a
// deployment has no headless-service DNS to resolve peers from. Nodes
// register themselves under a kept-alive lease, so a dead node's entry
// expires on its own.
package discovery

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"

	"github.com/ryandielhenn/zephyrbeacon/internal/telemetry"
)

const nodePrefix = "/zephyrbeacon/nodes/"

func NewClient(endpoints []string) (*clientv3.Client, error) {
	return clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: 5 * time.Second,
	})
}

// RegisterNode publishes id -> addr ("ip:port") under a lease with the
// given TTL in seconds and keeps the lease alive in the background. The
// returned lease ID lets the caller revoke the registration on exit.
func RegisterNode(cli *clientv3.Client, id, addr string, ttl int64) (clientv3.LeaseID, error) {
	lease, err := cli.Grant(context.TODO(), ttl)
	if err != nil {
		return 0, fmt.Errorf("grant lease: %w", err)
	}

	key := nodePrefix + id
	_, err = cli.Put(context.TODO(), key, addr, clientv3.WithLease(lease.ID))
	if err != nil {
		return 0, fmt.Errorf("register %s: %w", key, err)
	}

	go cli.KeepAlive(context.TODO(), lease.ID)

	return lease.ID, nil
}

// Registry resolves the current peer set by listing the node prefix,
// excluding this node's own registration. It implements beacon.PeerSource:
// a list failure logs, counts, and degrades to an empty set.
type Registry struct {
	cli  *clientv3.Client
	self string
	log  *zap.Logger
}

func NewRegistry(cli *clientv3.Client, selfID string, log *zap.Logger) *Registry {
	return &Registry{cli: cli, self: selfID, log: log}
}

func (r *Registry) Resolve() []netip.AddrPort {
	resp, err := r.cli.Get(context.TODO(), nodePrefix, clientv3.WithPrefix())
	if err != nil {
		r.log.Error("error listing peer registry", zap.Error(err))
		telemetry.ResolveErrors.Inc()
		return nil
	}

	peers := make([]netip.AddrPort, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		id, ep, err := endpointFromKV(kv)
		if err != nil {
			r.log.Warn("skipping malformed registry entry",
				zap.ByteString("key", kv.Key), zap.Error(err))
			continue
		}
		if id == r.self {
			continue
		}
		peers = append(peers, ep)
	}
	return peers
}

func endpointFromKV(kv *mvccpb.KeyValue) (string, netip.AddrPort, error) {
	id := strings.TrimPrefix(string(kv.Key), nodePrefix)
	ep, err := netip.ParseAddrPort(string(kv.Value))
	if err != nil {
		return id, netip.AddrPort{}, err
	}
	return id, netip.AddrPortFrom(ep.Addr().Unmap(), ep.Port()), nil
}
