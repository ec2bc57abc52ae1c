package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultIdentity = "zephyr-node"
	DefaultPeriod   = 2 * time.Second
	DefaultPort     = 37020
)

// Config holds the node configuration. It is built once at startup from the
// environment and never mutated afterwards.
type Config struct {
	// Identity is the label embedded in every outgoing presence message.
	Identity string
	// Period is the interval between send cycles.
	Period time.Duration
	// Port is the UDP port shared by the sender and the receiver.
	Port uint16
	// PeerService is the logical name resolved to the peer set. Empty means
	// broadcast mode.
	PeerService string
	// AdminAddr is the listen address for the healthz/info/metrics HTTP
	// server. Empty disables it.
	AdminAddr string
	// EtcdEndpoints switches peer discovery from DNS to an etcd registry
	// when non-empty.
	EtcdEndpoints []string
}

// FromEnv reads the configuration from the environment:
//
//	MESSAGE          identity label            (default "zephyr-node")
//	PERIOD           send period in seconds    (default 2.0, fractional ok)
//	PORT             UDP port                  (default 37020)
//	PEER_SERVICE_DNS peer-group name           (default "", broadcast mode)
//	ADMIN_ADDR       admin HTTP listen address (default "", disabled)
//	ETCD_ENDPOINTS   comma-separated endpoints (default "", DNS resolver)
func FromEnv() (*Config, error) {
	cfg := &Config{
		Identity:    DefaultIdentity,
		Period:      DefaultPeriod,
		Port:        DefaultPort,
		PeerService: os.Getenv("PEER_SERVICE_DNS"),
		AdminAddr:   os.Getenv("ADMIN_ADDR"),
	}

	if v := os.Getenv("MESSAGE"); v != "" {
		cfg.Identity = v
	}

	if v := os.Getenv("PERIOD"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid PERIOD %q: want a positive number of seconds", v)
		}
		cfg.Period = time.Duration(secs * float64(time.Second))
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil || port == 0 {
			return nil, fmt.Errorf("invalid PORT %q: want 1-65535", v)
		}
		cfg.Port = uint16(port)
	}

	if v := os.Getenv("ETCD_ENDPOINTS"); v != "" {
		cfg.EtcdEndpoints = splitEndpoints(v)
	}

	return cfg, nil
}

// splitEndpoints parses a comma-separated endpoint list, trimming whitespace
// and dropping empty entries.
func splitEndpoints(s string) []string {
	parts := strings.Split(s, ",")
	eps := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			eps = append(eps, p)
		}
	}
	return eps
}
