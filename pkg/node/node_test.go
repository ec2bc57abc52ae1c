package node

import (
	"encoding/json"
	"net/http/httptest"
	"net/netip"
	"testing"
)

type fixedPeers []netip.AddrPort

func (f fixedPeers) Resolve() []netip.AddrPort { return f }

func TestHealthz(t *testing.T) {
	n := New("node-1", 37020, "broadcast", fixedPeers{})

	rec := httptest.NewRecorder()
	n.Healthz(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("body = %q, want ok", rec.Body.String())
	}
}

func TestInfo(t *testing.T) {
	peers := fixedPeers{
		netip.MustParseAddrPort("10.0.0.2:37020"),
		netip.MustParseAddrPort("10.0.0.3:37020"),
	}
	n := New("node-1", 37020, "dns", peers)

	rec := httptest.NewRecorder()
	n.Info(rec, httptest.NewRequest("GET", "/info", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		Identity string `json:"identity"`
		Port     uint16 `json:"port"`
		Source   string `json:"peer_source"`
		Peers    int    `json:"peers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal info: %v", err)
	}
	if got.Identity != "node-1" || got.Port != 37020 || got.Source != "dns" {
		t.Errorf("info = %+v", got)
	}
	if got.Peers != 2 {
		t.Errorf("peers = %d, want 2", got.Peers)
	}
}
