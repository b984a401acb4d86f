package pipeline

import (
	"time"

	"github.com/google/uuid"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// LoadFunc produces the initial tree of a build.
type LoadFunc func() (*vfs.Tree, error)

// LoadDir returns a LoadFunc reading dir recursively.
func LoadDir(dir string) LoadFunc {
	return func() (*vfs.Tree, error) { return vfs.Load(dir) }
}

// Driver composes stages in a fixed order and owns the tree for one build.
type Driver struct {
	// Pipeline names the run in logs and metrics ("pages", "assets", ...).
	Pipeline string

	// BuildID is attached to the result; a random id is generated when empty.
	BuildID string

	Stages   []Stage
	Observer BuildObserver
}

// Run loads the source tree, applies every stage in order and flushes the
// final tree to dest. Nothing reaches dest unless every stage succeeded.
func (d *Driver) Run(load LoadFunc, dest string) *BuildResult {
	obs := d.Observer
	if obs == nil {
		obs = NoopObserver{}
	}
	result := &BuildResult{
		BuildID:  d.BuildID,
		Pipeline: d.Pipeline,
		Start:    time.Now(),
	}
	if result.BuildID == "" {
		result.BuildID = uuid.NewString()
	}

	finish := func(stage StageName, err error) *BuildResult {
		result.End = time.Now()
		if err != nil {
			result.Outcome = OutcomeFailed
			result.FailedStage = stage
			result.Err = &StageError{Stage: stage, Err: err}
		} else {
			result.Outcome = OutcomeSuccess
		}
		obs.OnBuildComplete(result)
		return result
	}

	var tree *vfs.Tree
	err := d.step(obs, result, StageLoad, func() error {
		var loadErr error
		tree, loadErr = load()
		if loadErr != nil && !foundationerrors.IsClassified(loadErr) {
			loadErr = foundationerrors.WrapError(loadErr, foundationerrors.CategoryFileSystem, "failed to load source tree").Build()
		}
		return loadErr
	})
	if err != nil {
		return finish(StageLoad, err)
	}

	for _, st := range d.Stages {
		if err := d.step(obs, result, st.Name(), func() error { return st.Apply(tree) }); err != nil {
			return finish(st.Name(), err)
		}
	}

	err = d.step(obs, result, StageFlush, func() error {
		n, flushErr := tree.Flush(dest)
		result.FilesWritten = n
		return flushErr
	})
	if err != nil {
		return finish(StageFlush, err)
	}
	return finish("", nil)
}

func (d *Driver) step(obs BuildObserver, result *BuildResult, name StageName, fn func() error) error {
	obs.OnStageStart(d.Pipeline, name)
	t0 := time.Now()
	err := fn()
	dur := time.Since(t0)
	result.Stages = append(result.Stages, StageTiming{Stage: name, Duration: dur})
	obs.OnStageComplete(d.Pipeline, name, dur, err)
	return err
}
