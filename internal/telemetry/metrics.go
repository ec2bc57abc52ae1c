package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	DatagramsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zephyrbeacon",
			Name:      "datagrams_sent_total",
			Help:      "Presence datagrams successfully handed to the kernel.",
		},
	)

	SendErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zephyrbeacon",
			Name:      "send_errors_total",
			Help:      "Per-destination send failures.",
		},
	)

	DatagramsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zephyrbeacon",
			Name:      "datagrams_received_total",
			Help:      "Inbound datagrams accepted by the listener.",
		},
	)

	DecodeErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zephyrbeacon",
			Name:      "decode_errors_total",
			Help:      "Inbound datagrams dropped for invalid UTF-8.",
		},
	)

	ResolveErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zephyrbeacon",
			Name:      "resolve_errors_total",
			Help:      "Peer resolution failures (each degrades one cycle to a no-op).",
		},
	)

	ResolvedPeers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "zephyrbeacon",
			Name:      "resolved_peers",
			Help:      "Peer count returned by the most recent resolution.",
		},
	)

	// ---- Process / build info ----
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "zephyrbeacon",
			Name:      "build_info",
			Help:      "Build info (constant 1, labeled by version and git_sha).",
		},
		[]string{"version", "git_sha"},
	)

	startTime = time.Now()
	uptime    = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "zephyrbeacon",
			Name:      "uptime_seconds",
			Help:      "Process uptime in seconds.",
		},
		func() float64 { return time.Since(startTime).Seconds() },
	)
)

func init() {
	Registry.MustRegister(
		DatagramsSent, SendErrors,
		DatagramsReceived, DecodeErrors,
		ResolveErrors, ResolvedPeers,
		buildInfo, uptime,
	)
}

// MetricsHandler exposes /metrics. Mount it with mux.Handle("/metrics", telemetry.MetricsHandler()).
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// SetBuildInfo should be called once at startup, e.g. with ldflags-provided values.
func SetBuildInfo(version, gitSHA string) {
	buildInfo.WithLabelValues(version, gitSHA).Set(1)
}
