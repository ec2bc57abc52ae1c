package beacon

import (
	"fmt"
	"regexp"
	"time"
)

// MaxDatagram bounds inbound reads; longer datagrams are truncated by the
// kernel, never reassembled.
const MaxDatagram = 1024

// timeLayout renders wall-clock time at millisecond precision, matching the
// stamp embedded in every presence line.
const timeLayout = "15:04:05.000"

var presenceRe = regexp.MustCompile(`^hola desde (.+) sent at (\d{2}:\d{2}:\d{2}\.\d{3})$`)

// Format builds a presence line for the given identity, stamped with t.
func Format(identity string, t time.Time) string {
	return fmt.Sprintf("hola desde %s sent at %s", identity, t.Format(timeLayout))
}

// Parse extracts the identity and send stamp from a presence line. ok is
// false for any payload that does not match the wire shape; the receiver
// accepts such payloads anyway, Parse only serves callers that want the
// fields.
func Parse(payload string) (identity, stamp string, ok bool) {
	m := presenceRe.FindStringSubmatch(payload)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
