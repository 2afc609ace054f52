// Package metrics registers the relay's Prometheus collectors and exposes
// the scrape handler mounted by the HTTP router.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "parley_active_connections",
		Help: "Currently open websocket connections.",
	})
	JoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_joins_total",
		Help: "Successful room joins.",
	})
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_messages_total",
		Help: "Chat messages accepted for fan-out.",
	})
	DroppedFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_dropped_frames_total",
		Help: "Frames dropped because a member's send buffer was full or its connection was gone.",
	})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
