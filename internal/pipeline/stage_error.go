package pipeline

import (
	"fmt"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

// StageError records which stage failed and why.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Kind returns the user-facing error kind of the underlying cause.
func (e *StageError) Kind() string {
	return foundationerrors.GetCategory(e.Err).Kind()
}
