package structure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/render"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

func TestApply_LaterRulesSeeEarlierOutput(t *testing.T) {
	tree := postsTree(t, 3)
	rules := []Rule{
		{Name: "copies", Kind: KindPage, Source: "blog/*.html", Target: "mirror/{{.name}}.html"},
		{Name: "mirror-index", Kind: KindAggregate, Source: "mirror/*.html", Target: "mirror/index.html"},
	}

	require.NoError(t, Apply(tree, rules, render.NewHelpers()))

	index, ok := tree.Get("mirror/index.html")
	require.True(t, ok)
	require.Len(t, index.Metadata[vfs.KeyItems], 3)
}

func TestApply_RuleNeverSeesItsOwnOutput(t *testing.T) {
	tree := postsTree(t, 2)
	rules := []Rule{{Name: "dup", Kind: KindPage, Source: "**/*.html", Target: "copy/{{.path}}"}}

	require.NoError(t, Apply(tree, rules, render.NewHelpers()))
	require.True(t, tree.Has("copy/blog/post-01.html"))
	require.False(t, tree.Has("copy/copy/blog/post-01.html"))
}

func TestApply_CollisionsAreStructureErrors(t *testing.T) {
	tests := map[string][]Rule{
		"with existing file": {
			{Name: "home", Kind: KindAggregate, Source: "blog/*.html", Target: "index.html"},
		},
		"within a rule": {
			{Name: "flat", Kind: KindPage, Source: "blog/*.html", Target: "same.html"},
		},
		"between rules": {
			{Name: "one", Kind: KindAggregate, Source: "blog/*.html", Target: "list.html"},
			{Name: "two", Kind: KindAggregate, Source: "blog/*.html", Target: "list.html"},
		},
	}
	for name, rules := range tests {
		t.Run(name, func(t *testing.T) {
			tree := postsTree(t, 2)
			before := tree.Len()
			if len(rules) == 2 {
				before++
			}

			err := Apply(tree, rules, render.NewHelpers())
			ce, ok := foundationerrors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, foundationerrors.CategoryStructure, ce.Category())
			require.Equal(t, before, tree.Len())
		})
	}
}

func TestStage_ReadsRuleDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.yml"),
		[]byte("rules:\n  - kind: aggregate\n    source: \"blog/*.html\"\n    target: blog/index.html\n"), 0o644))

	tree := postsTree(t, 2)
	require.NoError(t, NewStage(dir, render.NewHelpers()).Apply(tree))
	require.True(t, tree.Has("blog/index.html"))
}
