package build

import (
	"os"

	"git.home.luguber.info/inful/website-builder/internal/cleanup"
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

// SourceRule validates one precondition before a pipeline starts.
type SourceRule interface {
	Name() string
	Validate() error
}

// RuleChain runs rules in order and stops at the first failure.
type RuleChain []SourceRule

func (rc RuleChain) Validate() error {
	for _, r := range rc {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// requiredDir fails with a ConfigurationError unless Path is a directory.
type requiredDir struct {
	Label string
	Path  string
}

func (r requiredDir) Name() string { return r.Label + "_dir" }

func (r requiredDir) Validate() error {
	info, err := os.Stat(r.Path)
	if err != nil {
		return foundationerrors.ConfigError(r.Label + " directory not found").
			WithCause(err).
			WithContext("path", r.Path).
			Build()
	}
	if !info.IsDir() {
		return foundationerrors.ConfigError(r.Label + " path is not a directory").
			WithContext("path", r.Path).
			Build()
	}
	return nil
}

// cleanableTarget fails unless the destination may be emptied.
type cleanableTarget struct {
	Workdir string
	Target  string
}

func (r cleanableTarget) Name() string { return "clean_target" }

func (r cleanableTarget) Validate() error {
	_, err := cleanup.Resolve(r.Workdir, r.Target)
	return err
}
