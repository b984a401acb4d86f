package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for build and stage metrics.
type Recorder interface {
	ObserveStageDuration(pipeline, stage string, d time.Duration)
	IncStageResult(pipeline, stage string, result ResultLabel)
	ObserveBuildDuration(pipeline string, d time.Duration)
	IncBuildOutcome(pipeline string, result ResultLabel)
	AddFilesWritten(pipeline string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, string, ResultLabel)         {}
func (NoopRecorder) ObserveBuildDuration(string, time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(string, ResultLabel)                {}
func (NoopRecorder) AddFilesWritten(string, int)                        {}
