package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MESSAGE", "PERIOD", "PORT", "PEER_SERVICE_DNS", "ADMIN_ADDR", "ETCD_ENDPOINTS"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Identity != DefaultIdentity {
		t.Errorf("Identity = %q, want %q", cfg.Identity, DefaultIdentity)
	}
	if cfg.Period != 2*time.Second {
		t.Errorf("Period = %v, want 2s", cfg.Period)
	}
	if cfg.Port != 37020 {
		t.Errorf("Port = %d, want 37020", cfg.Port)
	}
	if cfg.PeerService != "" {
		t.Errorf("PeerService = %q, want empty (broadcast mode)", cfg.PeerService)
	}
	if cfg.AdminAddr != "" || cfg.EtcdEndpoints != nil {
		t.Errorf("admin/etcd should be disabled by default, got %q / %v", cfg.AdminAddr, cfg.EtcdEndpoints)
	}
}

func TestFromEnv_Values(t *testing.T) {
	clearEnv(t)
	t.Setenv("MESSAGE", "node-7")
	t.Setenv("PERIOD", "0.5")
	t.Setenv("PORT", "41000")
	t.Setenv("PEER_SERVICE_DNS", "beacon.svc.cluster.local")
	t.Setenv("ADMIN_ADDR", ":8080")
	t.Setenv("ETCD_ENDPOINTS", "http://etcd-0:2379, http://etcd-1:2379 ,")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Identity != "node-7" {
		t.Errorf("Identity = %q, want node-7", cfg.Identity)
	}
	if cfg.Period != 500*time.Millisecond {
		t.Errorf("Period = %v, want 500ms", cfg.Period)
	}
	if cfg.Port != 41000 {
		t.Errorf("Port = %d, want 41000", cfg.Port)
	}
	if cfg.PeerService != "beacon.svc.cluster.local" {
		t.Errorf("PeerService = %q", cfg.PeerService)
	}
	if len(cfg.EtcdEndpoints) != 2 || cfg.EtcdEndpoints[0] != "http://etcd-0:2379" || cfg.EtcdEndpoints[1] != "http://etcd-1:2379" {
		t.Errorf("EtcdEndpoints = %v", cfg.EtcdEndpoints)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"period not a number", "PERIOD", "two"},
		{"period zero", "PERIOD", "0"},
		{"period negative", "PERIOD", "-1.5"},
		{"port not a number", "PORT", "udp"},
		{"port zero", "PORT", "0"},
		{"port out of range", "PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("FromEnv() with %s=%q: want error, got nil", tt.key, tt.val)
			}
		})
	}
}
