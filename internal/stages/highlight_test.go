package stages

import (
	"testing"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/markdown"
)

func TestHighlightStage_AddsStyleSheet(t *testing.T) {
	tree := newTree(t, map[string]string{"index.html": "<p>x</p>"})
	st := HighlightStage{Converter: markdown.New(markdown.Options{HighlightStyle: "monokai"})}

	require.NoError(t, st.Apply(tree))

	f, ok := tree.Get(DefaultHighlightPath)
	require.True(t, ok)
	require.Contains(t, string(f.Content), ".chroma")
}

func TestHighlightStage_Collision(t *testing.T) {
	tree := newTree(t, map[string]string{"highlight.css": "body{}"})
	st := HighlightStage{Converter: markdown.New(markdown.Options{})}

	err := st.Apply(tree)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryStructure))
}
