// Package metrics exposes probe results to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProbeRTT = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pingtrace_probe_rtt_milliseconds",
			Help: "Latest successful round-trip time in milliseconds",
		},
		[]string{"host"},
	)

	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pingtrace_probes_total",
			Help: "Total number of completed probes by status",
		},
		[]string{"host", "status"},
	)

	ProbeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pingtrace_probe_duration_seconds",
		Help:    "Wall time spent in each probe, including timeouts",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
	}, []string{"host"})

	SamplesBuffered = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pingtrace_samples_buffered",
			Help: "Number of offsets written to the sample store, capped at capacity",
		},
		[]string{"host"},
	)
)
