// Package metrics records build observations.
//
// The builder reports through the Recorder interface. NoopRecorder is the
// default; PrometheusRecorder collects into a Prometheus registry that the
// CLI dumps in text exposition format after a build.
package metrics

import "time"

// Build outcomes.
const (
	OutcomeNothingToDo = "nothing_to_do"
	OutcomeBuilt       = "built"
	OutcomeFailed      = "failed"
	OutcomeCanceled    = "canceled"
)

// Recorder receives build observations. Implementations must be safe for
// concurrent use; documents are built in parallel.
type Recorder interface {
	ObserveDocumentDuration(d time.Duration)
	IncDocumentResult(severity string)
	AddChunks(typeTag string, n int)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string)
	SetWorkers(n int)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
func (NoopRecorder) IncDocumentResult(string)              {}
func (NoopRecorder) AddChunks(string, int)                 {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)    {}
func (NoopRecorder) IncBuildOutcome(string)                {}
func (NoopRecorder) SetWorkers(int)                        {}

var _ Recorder = NoopRecorder{}
