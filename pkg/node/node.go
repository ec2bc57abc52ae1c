// Package node exposes the admin HTTP surface of a running beacon process.
// It is ops tooling only; the datagram protocol remains the node's sole
// control surface.
package node

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/ryandielhenn/zephyrbeacon/pkg/beacon"
)

// Node carries what the admin handlers report about this process.
type Node struct {
	identity string
	port     uint16
	source   string
	peers    beacon.PeerSource
	started  time.Time
}

// New builds a Node. source names the peer-source kind ("broadcast", "dns"
// or "etcd") for the info payload.
func New(identity string, port uint16, source string, peers beacon.PeerSource) *Node {
	return &Node{
		identity: identity,
		port:     port,
		source:   source,
		peers:    peers,
		started:  time.Now(),
	}
}

// Healthz returns 200 OK to indicate the Node is alive.
func (n *Node) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Info writes a JSON payload with the process ID, identity, configured
// port, peer-source kind, the peer count as currently resolved, and uptime.
func (n *Node) Info(w http.ResponseWriter, _ *http.Request) {
	type resp struct {
		PID      int       `json:"pid"`
		Identity string    `json:"identity"`
		Port     uint16    `json:"port"`
		Source   string    `json:"peer_source"`
		Peers    int       `json:"peers"`
		Uptime   float64   `json:"uptime_seconds"`
		Now      time.Time `json:"now"`
	}
	data, _ := json.Marshal(resp{
		PID:      os.Getpid(),
		Identity: n.identity,
		Port:     n.port,
		Source:   n.source,
		Peers:    len(n.peers.Resolve()),
		Uptime:   time.Since(n.started).Seconds(),
		Now:      time.Now(),
	})
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
