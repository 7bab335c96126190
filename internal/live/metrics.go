package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// liveMetrics holds the Prometheus metrics for the preview server.
type liveMetrics struct {
	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	messagesSent  *prometheus.CounterVec
	wsClients     prometheus.Gauge
	wsErrors      *prometheus.CounterVec
}

func newLiveMetrics(registry prometheus.Registerer, namespace string) *liveMetrics {
	factory := promauto.With(registry)

	return &liveMetrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total number of browser events dispatched",
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "event_duration_seconds",
			Help:      "Time spent dispatching a browser event to host listeners",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),

		messagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "messages_sent_total",
			Help:      "Total number of messages written to WebSocket clients",
		}, []string{"type"}),

		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "websocket_clients",
			Help:      "Number of connected WebSocket clients",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "websocket_errors_total",
			Help:      "Total number of WebSocket errors",
		}, []string{"op"}),
	}
}

func (m *liveMetrics) event(name, status string, seconds float64) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(name, status).Inc()
	m.eventDuration.WithLabelValues(name).Observe(seconds)
}

func (m *liveMetrics) sent(t MessageType) {
	if m != nil {
		m.messagesSent.WithLabelValues(string(t)).Inc()
	}
}

func (m *liveMetrics) clients(n int) {
	if m != nil {
		m.wsClients.Set(float64(n))
	}
}

func (m *liveMetrics) wsError(op string) {
	if m != nil {
		m.wsErrors.WithLabelValues(op).Inc()
	}
}
