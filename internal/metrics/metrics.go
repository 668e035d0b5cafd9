// Package metrics collects emission statistics in a private Prometheus
// registry. A batch run has no scrape endpoint, so the registry is written
// out in the text exposition format when the run ends.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// list of useful histogram buckets
var durationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.010, 0.050, 0.250, 1}

type Metrics struct {
	registry *prometheus.Registry

	ArtifactsEmitted *prometheus.CounterVec   // written artifacts, by family
	ArtifactFailures *prometheus.CounterVec   // failed artifacts, by family
	ValuesEmitted    *prometheus.CounterVec   // generated values, by family
	BytesWritten     *prometheus.CounterVec   // artifact bytes, by family
	EmitDuration     *prometheus.HistogramVec // generate + write time, by family
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	m := &Metrics{registry: reg}

	m.ArtifactsEmitted = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "prngvec_artifacts_emitted_total",
		Help: "conformance vectors written; partitioned by generator family",
	}, []string{"family"})

	m.ArtifactFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "prngvec_artifact_failures_total",
		Help: "conformance vectors that could not be generated or written",
	}, []string{"family"})

	m.ValuesEmitted = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "prngvec_values_emitted_total",
		Help: "generated values across all written vectors",
	}, []string{"family"})

	m.BytesWritten = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "prngvec_bytes_written_total",
		Help: "bytes written across all vectors",
	}, []string{"family"})

	m.EmitDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prngvec_emit_duration_seconds",
		Help:    "time to configure a generator, draw the values and write the artifact",
		Buckets: durationBuckets,
	}, []string{"family"})

	return m
}

// ObserveEmit records one written artifact.
func (m *Metrics) ObserveEmit(family string, values int, bytes int64, d time.Duration) {
	labels := prometheus.Labels{"family": family}
	m.ArtifactsEmitted.With(labels).Inc()
	m.ValuesEmitted.With(labels).Add(float64(values))
	m.BytesWritten.With(labels).Add(float64(bytes))
	m.EmitDuration.With(labels).Observe(d.Seconds())
}

// ObserveFailure records one failed artifact.
func (m *Metrics) ObserveFailure(family string) {
	m.ArtifactFailures.With(prometheus.Labels{"family": family}).Inc()
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values atomically to path, in the format
// the node exporter's textfile collector reads.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
