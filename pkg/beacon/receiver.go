package beacon

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ryandielhenn/zephyrbeacon/internal/telemetry"
)

// retryPause is how long the receive loop waits after a transient read
// error before trying again.
const retryPause = time.Second

// Event is one inbound presence datagram. Events are surfaced and
// discarded; nothing in this package retains them.
type Event struct {
	From    netip.AddrPort
	Payload string
	At      time.Time
}

// Receiver owns the bound presence socket and the blocking read loop.
type Receiver struct {
	port uint16
	log  *zap.Logger
	sink func(Event)
	conn *net.UDPConn
}

// NewReceiver builds a Receiver for the shared presence port. sink, if
// non-nil, is invoked for every accepted datagram in addition to the log
// line.
func NewReceiver(port uint16, log *zap.Logger, sink func(Event)) *Receiver {
	return &Receiver{port: port, log: log, sink: sink}
}

// Bind acquires the UDP socket on the wildcard address with address reuse
// and broadcast reception enabled. A bind failure is logged and returned;
// the caller should skip Listen and carry on send-only.
func (r *Receiver) Bind() error {
	conn, err := listenUDP(fmt.Sprintf(":%d", r.port), true)
	if err != nil {
		r.log.Error("error binding receiver", zap.Uint16("port", r.port), zap.Error(err))
		return err
	}
	r.conn = conn
	r.log.Info("listening for UDP messages", zap.String("addr", conn.LocalAddr().String()))
	return nil
}

// Addr reports the bound local address. Valid only after a successful Bind.
func (r *Receiver) Addr() netip.AddrPort {
	return r.conn.LocalAddr().(*net.UDPAddr).AddrPort()
}

// Listen blocks reading datagrams until the socket is closed. A transient
// read error pauses briefly and retries; an invalid-UTF-8 payload is
// dropped. Neither ends the loop.
func (r *Receiver) Listen() {
	buf := make([]byte, MaxDatagram)
	for {
		n, from, err := r.conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				r.log.Info("listener stopped")
				return
			}
			r.log.Error("error receiving", zap.Error(err))
			time.Sleep(retryPause)
			continue
		}

		if !utf8.Valid(buf[:n]) {
			telemetry.DecodeErrors.Inc()
			r.log.Warn("dropping non-UTF-8 datagram",
				zap.String("from", from.String()), zap.Int("bytes", n))
			continue
		}

		ev := Event{From: from, Payload: string(buf[:n]), At: time.Now()}
		telemetry.DatagramsReceived.Inc()
		r.log.Info("received",
			zap.String("from", ev.From.String()), zap.String("msg", ev.Payload))
		if r.sink != nil {
			r.sink(ev)
		}
	}
}

// Close releases the socket, which ends a running Listen loop.
func (r *Receiver) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
