package main

import (
	"context"
	"net/http"
	"net/netip"

	"go.uber.org/zap"

	"github.com/ryandielhenn/zephyrbeacon/discovery"
	"github.com/ryandielhenn/zephyrbeacon/internal/config"
	"github.com/ryandielhenn/zephyrbeacon/internal/logging"
	"github.com/ryandielhenn/zephyrbeacon/internal/telemetry"
	"github.com/ryandielhenn/zephyrbeacon/pkg/beacon"
	"github.com/ryandielhenn/zephyrbeacon/pkg/node"
)

// Overridden at build time via -ldflags.
var (
	version = "dev"
	gitSHA  = "unknown"
)

func main() {
	logger := logging.New()
	defer logger.Sync()

	// 1. Read the immutable process configuration
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("bad configuration", zap.Error(err))
	}
	telemetry.SetBuildInfo(version, gitSHA)

	// 2. Pick the peer source: etcd registry when configured, DNS/broadcast otherwise
	var (
		peers  beacon.PeerSource
		source string
	)
	if len(cfg.EtcdEndpoints) > 0 {
		cli, err := discovery.NewClient(cfg.EtcdEndpoints)
		if err != nil {
			logger.Fatal("creating etcd client", zap.Error(err))
		}
		defer cli.Close()

		self, err := beacon.SelfAddr()
		if err != nil {
			logger.Fatal("resolving own address", zap.Error(err))
		}
		addr := netip.AddrPortFrom(self, cfg.Port).String()
		leaseID, err := discovery.RegisterNode(cli, cfg.Identity, addr, 10)
		if err != nil {
			logger.Fatal("registering node", zap.Error(err))
		}
		defer cli.Revoke(context.TODO(), leaseID)
		logger.Info("registered with etcd",
			zap.String("id", cfg.Identity), zap.String("addr", addr))

		peers = discovery.NewRegistry(cli, cfg.Identity, logger)
		source = "etcd"
	} else {
		peers = beacon.NewResolver(cfg.PeerService, cfg.Port, logger)
		source = "dns"
		if cfg.PeerService == "" {
			source = "broadcast"
		}
	}

	// 3. Admin surface, when enabled
	if cfg.AdminAddr != "" {
		n := node.New(cfg.Identity, cfg.Port, source, peers)
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", n.Healthz)
		mux.HandleFunc("/info", n.Info)
		mux.Handle("/metrics", telemetry.MetricsHandler())
		go func() {
			logger.Info("admin server listening", zap.String("addr", cfg.AdminAddr))
			if err := http.ListenAndServe(cfg.AdminAddr, mux); err != nil {
				logger.Error("admin server stopped", zap.Error(err))
			}
		}()
	}

	// 4. Receiver in the background; a bind failure leaves us send-only
	rx := beacon.NewReceiver(cfg.Port, logger, nil)
	if err := rx.Bind(); err == nil {
		go rx.Listen()
	}

	// 5. Sender on the main goroutine, until the process is killed
	snd, err := beacon.NewSender(cfg.Identity, cfg.Period, peers, logger)
	if err != nil {
		logger.Fatal("opening send socket", zap.Error(err))
	}
	snd.Run()
}
