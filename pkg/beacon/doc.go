// Package beacon implements the presence exchange for zephyrbeacon nodes.
// Each node periodically announces itself over UDP to a resolved peer set
// and concurrently listens for announcements from others. Delivery is
// fire-and-forget: no acks, no ordering, no retransmission.
//
// Typical usage:
//
//	rx := beacon.NewReceiver(cfg.Port, logger, nil)
//	if err := rx.Bind(); err == nil {
//		go rx.Listen()
//	}
//	snd, _ := beacon.NewSender(cfg.Identity, cfg.Period, source, logger)
//	snd.Run()
//
// Peer endpoints come from a pluggable PeerSource. The DNS Resolver falls
// back to the limited-broadcast address when no peer-group name is
// configured; note that broadcast is one-directional on networks that
// filter it, so a node heard via broadcast is not guaranteed to be
// reachable the same way.
package beacon
