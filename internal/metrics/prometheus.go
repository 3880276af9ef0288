package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdpages"

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	reg              *prom.Registry
	documentDuration prom.Histogram
	documentResults  *prom.CounterVec
	chunks           *prom.CounterVec
	buildDuration    prom.Histogram
	buildOutcomes    *prom.CounterVec
	workers          prom.Gauge
}

// NewPrometheusRecorder creates the collectors and registers them on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	p := &PrometheusRecorder{
		reg: reg,
		documentDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time to build one document",
			Buckets:   prom.DefBuckets,
		}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_results_total",
			Help:      "Built documents by highest diagnostic severity",
		}, []string{"severity"}),
		chunks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Chunks cast by type tag",
		}, []string{"type"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Builds by outcome",
		}, []string{"outcome"}),
		workers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Worker pool size of the last build",
		}),
	}
	reg.MustRegister(p.documentDuration, p.documentResults, p.chunks, p.buildDuration, p.buildOutcomes, p.workers)
	return p
}

// Registry returns the registry holding the collectors.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(severity string) {
	p.documentResults.WithLabelValues(severity).Inc()
}

func (p *PrometheusRecorder) AddChunks(typeTag string, n int) {
	if n <= 0 {
		return
	}
	p.chunks.WithLabelValues(typeTag).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	p.workers.Set(float64(n))
}

// WriteTextfile writes the collected metrics to path in the text exposition
// format, for node_exporter's textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

var _ Recorder = (*PrometheusRecorder)(nil)
