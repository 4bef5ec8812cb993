// Package metrics provides Prometheus instrumentation for the broadcast test
// server: connection gauges and counters for frames written.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Message kinds used as the "kind" label of MessagesSent.
const (
	KindWelcome = "welcome"
	KindCanned  = "canned"
)

// Metrics holds the server collectors.
type Metrics struct {
	// ActiveConnections tracks currently open WebSocket connections.
	ActiveConnections prometheus.Gauge
	// ConnectionsTotal counts accepted WebSocket connections.
	ConnectionsTotal prometheus.Counter
	// MessagesSent counts frames written, labeled by kind.
	MessagesSent *prometheus.CounterVec
	// SendErrors counts failed writes; each one ends its connection.
	SendErrors prometheus.Counter
	// UpgradeErrors counts rejected WebSocket handshakes.
	UpgradeErrors prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg gets a
// fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wschatd_active_connections",
			Help: "Current number of open WebSocket connections",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wschatd_connections_total",
			Help: "Total number of accepted WebSocket connections",
		}),
		MessagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wschatd_messages_sent_total",
			Help: "Total number of events written to clients",
		}, []string{"kind"}),
		SendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wschatd_send_errors_total",
			Help: "Total number of failed writes",
		}),
		UpgradeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wschatd_upgrade_errors_total",
			Help: "Total number of failed WebSocket upgrades",
		}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.ActiveConnections,
		m.ConnectionsTotal,
		m.MessagesSent,
		m.SendErrors,
		m.UpgradeErrors,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
