// Package metrics provides Prometheus metrics for the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scribe_gateway"

// Metrics holds the gateway's Prometheus metrics.
type Metrics struct {
	TranscribeRequests *prometheus.CounterVec
	TranscribeLatency  prometheus.Histogram
	AudioBytesReceived prometheus.Counter

	GenerateRequests *prometheus.CounterVec
	GenerateLatency  prometheus.Histogram

	NotesSaved prometheus.Counter

	WSConnectionsActive prometheus.Gauge
	WSChunksReceived    prometheus.Counter
}

// Default is the global metrics instance.
var Default = New()

// New creates and registers the gateway metrics.
func New() *Metrics {
	return &Metrics{
		TranscribeRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcribe_requests_total",
			Help:      "Total transcription requests by outcome",
		}, []string{"outcome"}),
		TranscribeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcribe_latency_seconds",
			Help:      "End-to-end transcription request latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total audio bytes accepted for transcription",
		}),

		GenerateRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_requests_total",
			Help:      "Total note generation requests by outcome",
		}, []string{"outcome"}),
		GenerateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_latency_seconds",
			Help:      "End-to-end note generation latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		NotesSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notes_saved_total",
			Help:      "Total notes persisted",
		}),

		WSConnectionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections_active",
			Help:      "Number of open audio websocket connections",
		}),
		WSChunksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_chunks_received_total",
			Help:      "Total audio chunks received over websocket",
		}),
	}
}

// RecordTranscribe records one transcription request.
func (m *Metrics) RecordTranscribe(outcome string, audioBytes int, seconds float64) {
	m.TranscribeRequests.WithLabelValues(outcome).Inc()
	m.TranscribeLatency.Observe(seconds)
	if audioBytes > 0 {
		m.AudioBytesReceived.Add(float64(audioBytes))
	}
}

// RecordGenerate records one note generation request.
func (m *Metrics) RecordGenerate(outcome string, seconds float64) {
	m.GenerateRequests.WithLabelValues(outcome).Inc()
	m.GenerateLatency.Observe(seconds)
}
