package structure

import (
	"log/slog"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/logfields"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/render"
	"git.home.luguber.info/inful/website-builder/internal/util/sets"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Stage merges the pages generated by structure rules into the tree.
type Stage struct {
	dir     string
	helpers render.Helpers
}

// NewStage returns a stage reading rules from dir when it runs.
func NewStage(dir string, helpers render.Helpers) *Stage {
	return &Stage{dir: dir, helpers: helpers}
}

func (s *Stage) Name() pipeline.StageName { return pipeline.StageStructure }

func (s *Stage) Apply(tree *vfs.Tree) error {
	rules, err := LoadRules(s.dir)
	if err != nil {
		return err
	}
	return Apply(tree, rules, s.helpers)
}

// Apply evaluates rules in order, adding each rule's pages before the next
// rule runs. A generated path that is already taken, by an earlier rule, an
// existing file or the same rule, fails the whole merge.
func Apply(tree *vfs.Tree, rules []Rule, helpers render.Helpers) error {
	for _, r := range rules {
		pages, err := Evaluate(tree, r, helpers)
		if err != nil {
			return err
		}

		seen := sets.New[string]()
		for _, p := range pages {
			if !seen.Add(p.Path) || tree.Has(p.Path) {
				return foundationerrors.StructureError("structure rule output collides with an existing path").
					WithContext("rule", r.Name).
					WithContext("path", p.Path).
					Build()
			}
		}
		for _, p := range pages {
			if err := tree.Add(p); err != nil {
				return foundationerrors.WrapError(err, foundationerrors.CategoryStructure, "failed to add generated page").
					Fatal().
					WithContext("rule", r.Name).
					WithContext("path", p.Path).
					Build()
			}
		}
		slog.Debug("Structure rule applied", logfields.Rule(r.Name), logfields.Files(len(pages)))
	}
	return nil
}
