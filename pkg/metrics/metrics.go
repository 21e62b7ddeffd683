package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskflow_realtime"

// Metrics realtime service collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	// Connections live websocket connections
	Connections prometheus.Gauge
	// VoiceParticipants participants across all voice rooms
	VoiceParticipants prometheus.Gauge
	// EventsDelivered events enqueued to a connection. Labels: event
	EventsDelivered *prometheus.CounterVec
	// EventsDropped events lost to a full outbound queue. Labels: event
	EventsDropped *prometheus.CounterVec
	// SignalsRelayed voice signal relays. Labels: result (delivered|dropped)
	SignalsRelayed *prometheus.CounterVec
	// Notifications gate decisions. Labels: channel (push|email), result (sent|skipped|failed)
	Notifications *prometheus.CounterVec
}

// NewMetrics register collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Live websocket connections",
		}),
		VoiceParticipants: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "voice_participants",
			Help:      "Participants across all voice rooms",
		}),
		EventsDelivered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_delivered_total",
			Help:      "Events enqueued to a connection",
		}, []string{"event"}),
		EventsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events dropped because the connection queue was full",
		}, []string{"event"}),
		SignalsRelayed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_signals_total",
			Help:      "Voice signal relays by result",
		}, []string{"result"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification delivery decisions by channel and result",
		}, []string{"channel", "result"}),
	}
}

// ConnectionOpened inc live connections
func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.Connections.Inc()
}

// ConnectionClosed dec live connections
func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.Connections.Dec()
}

// VoiceJoined inc voice participants
func (m *Metrics) VoiceJoined() {
	if m == nil {
		return
	}
	m.VoiceParticipants.Inc()
}

// VoiceLeft dec voice participants
func (m *Metrics) VoiceLeft() {
	if m == nil {
		return
	}
	m.VoiceParticipants.Dec()
}

// EventDelivered count an enqueue result
func (m *Metrics) EventDelivered(event string, ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.EventsDelivered.WithLabelValues(event).Inc()
		return
	}
	m.EventsDropped.WithLabelValues(event).Inc()
}

// SignalRelayed count a relay result
func (m *Metrics) SignalRelayed(delivered bool) {
	if m == nil {
		return
	}
	result := "dropped"
	if delivered {
		result = "delivered"
	}
	m.SignalsRelayed.WithLabelValues(result).Inc()
}

// Notification count a gate decision
func (m *Metrics) Notification(channel, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, result).Inc()
}
