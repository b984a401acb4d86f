package pipeline

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/website-builder/internal/logfields"
	"git.home.luguber.info/inful/website-builder/internal/metrics"
)

// BuildObserver receives callbacks around stage execution and build lifecycle.
type BuildObserver interface {
	OnStageStart(pipeline string, stage StageName)
	OnStageComplete(pipeline string, stage StageName, d time.Duration, err error)
	OnBuildComplete(result *BuildResult)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(string, StageName)                         {}
func (NoopObserver) OnStageComplete(string, StageName, time.Duration, error) {}
func (NoopObserver) OnBuildComplete(*BuildResult)                           {}

// Observers fans callbacks out to every member in order.
type Observers []BuildObserver

func (o Observers) OnStageStart(pipeline string, stage StageName) {
	for _, obs := range o {
		obs.OnStageStart(pipeline, stage)
	}
}

func (o Observers) OnStageComplete(pipeline string, stage StageName, d time.Duration, err error) {
	for _, obs := range o {
		obs.OnStageComplete(pipeline, stage, d, err)
	}
}

func (o Observers) OnBuildComplete(result *BuildResult) {
	for _, obs := range o {
		obs.OnBuildComplete(result)
	}
}

// LogObserver writes one line per stage transition and one terminal line.
type LogObserver struct {
	Logger *slog.Logger
}

func (l LogObserver) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l LogObserver) OnStageStart(pipeline string, stage StageName) {
	l.logger().Debug("Stage started", logfields.Pipeline(pipeline), logfields.Stage(string(stage)))
}

func (l LogObserver) OnStageComplete(pipeline string, stage StageName, d time.Duration, err error) {
	if err != nil {
		l.logger().Error("Stage failed",
			logfields.Pipeline(pipeline),
			logfields.Stage(string(stage)),
			logfields.Duration(d),
			logfields.Error(err))
		return
	}
	l.logger().Info("Stage completed",
		logfields.Pipeline(pipeline),
		logfields.Stage(string(stage)),
		logfields.Duration(d))
}

func (l LogObserver) OnBuildComplete(result *BuildResult) {
	attrs := []any{
		logfields.BuildID(result.BuildID),
		logfields.Pipeline(result.Pipeline),
		logfields.Outcome(string(result.Outcome)),
		logfields.Duration(result.Duration()),
	}
	if result.Success() {
		l.logger().Info("Build completed", append(attrs, logfields.Files(result.FilesWritten))...)
		return
	}
	l.logger().Error("Build failed", append(attrs, logfields.Stage(string(result.FailedStage)))...)
}

// RecorderObserver adapts a metrics.Recorder into a BuildObserver.
type RecorderObserver struct {
	Recorder metrics.Recorder
}

func (r RecorderObserver) OnStageStart(string, StageName) {}

func (r RecorderObserver) OnStageComplete(pipeline string, stage StageName, d time.Duration, err error) {
	r.Recorder.ObserveStageDuration(pipeline, string(stage), d)
	r.Recorder.IncStageResult(pipeline, string(stage), resultLabel(err == nil))
}

func (r RecorderObserver) OnBuildComplete(result *BuildResult) {
	r.Recorder.ObserveBuildDuration(result.Pipeline, result.Duration())
	r.Recorder.IncBuildOutcome(result.Pipeline, resultLabel(result.Success()))
	if result.Success() {
		r.Recorder.AddFilesWritten(result.Pipeline, result.FilesWritten)
	}
}

func resultLabel(ok bool) metrics.ResultLabel {
	if ok {
		return metrics.ResultSuccess
	}
	return metrics.ResultFailed
}
