package beacon

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 7, 42_000_000, time.Local)
	got := Format("node-1", at)
	want := "hola desde node-1 sent at 09:05:07.042"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 23, 59, 59, 999_000_000, time.Local)
	id, stamp, ok := Parse(Format("node-b", at))
	if !ok {
		t.Fatal("Parse() rejected a formatted presence line")
	}
	if id != "node-b" {
		t.Errorf("identity = %q, want node-b", id)
	}
	if stamp != "23:59:59.999" {
		t.Errorf("stamp = %q, want 23:59:59.999", stamp)
	}
}

func TestParseRejectsForeignPayloads(t *testing.T) {
	for _, payload := range []string{
		"",
		"hello",
		"hola desde node-1",
		"hola desde node-1 sent at 9:05:07.042",
		"hola desde node-1 sent at 09:05:07.042 extra",
	} {
		if _, _, ok := Parse(payload); ok {
			t.Errorf("Parse(%q) ok = true, want false", payload)
		}
	}
}
