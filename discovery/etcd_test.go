package discovery

import (
	"testing"

	"go.etcd.io/etcd/api/v3/mvccpb"
)

func TestEndpointFromKV(t *testing.T) {
	kv := &mvccpb.KeyValue{
		Key:   []byte(nodePrefix + "node-2"),
		Value: []byte("10.0.0.2:37020"),
	}

	id, ep, err := endpointFromKV(kv)
	if err != nil {
		t.Fatalf("endpointFromKV() error = %v", err)
	}
	if id != "node-2" {
		t.Errorf("id = %q, want node-2", id)
	}
	if got := ep.String(); got != "10.0.0.2:37020" {
		t.Errorf("endpoint = %q, want 10.0.0.2:37020", got)
	}
}

func TestEndpointFromKVMalformed(t *testing.T) {
	for _, val := range []string{"", "not-an-addr", "10.0.0.2"} {
		kv := &mvccpb.KeyValue{
			Key:   []byte(nodePrefix + "node-x"),
			Value: []byte(val),
		}
		if _, _, err := endpointFromKV(kv); err == nil {
			t.Errorf("endpointFromKV(value=%q): want error, got nil", val)
		}
	}
}
