package beacon

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/ryandielhenn/zephyrbeacon/internal/telemetry"
)

// Sender announces this node to the current peer set on a fixed period.
// It owns one broadcast-capable socket for the whole process lifetime.
type Sender struct {
	identity string
	period   time.Duration
	peers    PeerSource
	conn     *net.UDPConn
	log      *zap.Logger
}

// NewSender opens the send socket and returns a Sender announcing identity
// every period to the endpoints peers yields.
func NewSender(identity string, period time.Duration, peers PeerSource, log *zap.Logger) (*Sender, error) {
	conn, err := listenUDP(":0", false)
	if err != nil {
		return nil, fmt.Errorf("open send socket: %w", err)
	}
	return &Sender{
		identity: identity,
		period:   period,
		peers:    peers,
		conn:     conn,
		log:      log,
	}, nil
}

// Run loops forever: one Cycle, then a full period's sleep, regardless of
// how the cycle went. There is no stop signal; the process lifetime bounds
// the loop.
func (s *Sender) Run() {
	s.log.Info("starting sender",
		zap.String("identity", s.identity), zap.Duration("period", s.period))
	for {
		s.Cycle()
		time.Sleep(s.period)
	}
}

// Cycle performs one resolve/send-all pass. The peer set is recomputed
// fresh, the message carries the current wall-clock stamp, and a failure
// toward one destination never blocks the rest.
func (s *Sender) Cycle() {
	peers := s.peers.Resolve()
	telemetry.ResolvedPeers.Set(float64(len(peers)))
	if len(peers) == 0 {
		s.log.Info("no peers found")
		return
	}

	payload := []byte(Format(s.identity, time.Now()))
	for _, p := range peers {
		if _, err := s.conn.WriteToUDPAddrPort(payload, p); err != nil {
			telemetry.SendErrors.Inc()
			s.log.Error("error sending", zap.String("to", p.String()), zap.Error(err))
			continue
		}
		telemetry.DatagramsSent.Inc()
	}
}

// Close releases the send socket. Only tests need this; the daemon keeps
// its socket until the process dies.
func (s *Sender) Close() error {
	return s.conn.Close()
}
