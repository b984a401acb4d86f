package pipeline

import "time"

// Outcome is the terminal state of a build.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// StageTiming is the measured duration of one executed stage.
type StageTiming struct {
	Stage    StageName
	Duration time.Duration
}

// BuildResult summarizes one pipeline run. Err is nil exactly when Outcome is
// OutcomeSuccess; otherwise it is the *StageError of the failing stage.
type BuildResult struct {
	BuildID      string
	Pipeline     string
	Outcome      Outcome
	FailedStage  StageName
	Err          error
	Stages       []StageTiming
	FilesWritten int
	Start        time.Time
	End          time.Time
}

// Success reports whether every stage and the flush completed.
func (r *BuildResult) Success() bool { return r.Outcome == OutcomeSuccess }

// Duration returns the wall time of the run.
func (r *BuildResult) Duration() time.Duration { return r.End.Sub(r.Start) }

// StageDuration returns the recorded duration of stage, if it ran.
func (r *BuildResult) StageDuration(stage StageName) (time.Duration, bool) {
	for _, st := range r.Stages {
		if st.Stage == stage {
			return st.Duration, true
		}
	}
	return 0, false
}
