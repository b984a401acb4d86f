package structure

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/render"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

func postsTree(t *testing.T, n int) *vfs.Tree {
	t.Helper()
	tree := vfs.NewTree()
	for i := 1; i <= n; i++ {
		require.NoError(t, tree.Put(&vfs.File{
			Path:    fmt.Sprintf("blog/post-%02d.html", i),
			Content: []byte(fmt.Sprintf("<p>%d</p>", i)),
			Metadata: vfs.Metadata{
				vfs.KeyTitle: fmt.Sprintf("Post %d", i),
				vfs.KeyDate:  time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC),
			},
		}))
	}
	require.NoError(t, tree.Put(&vfs.File{Path: "index.html"}))
	return tree
}

func paginateRule(size int) Rule {
	return Rule{
		Name:     "blog",
		Kind:     KindPaginate,
		Source:   "blog/*.html",
		PageSize: size,
		Target:   "blog/page/{{.currentPage}}.html",
		Metadata: map[string]any{"layout": "list.html"},
	}
}

func TestPaginate_CoversEveryItemOnce(t *testing.T) {
	for _, tc := range []struct{ n, size int }{{0, 3}, {1, 3}, {3, 3}, {7, 3}, {10, 1}, {5, 10}} {
		t.Run(fmt.Sprintf("%d_by_%d", tc.n, tc.size), func(t *testing.T) {
			tree := postsTree(t, tc.n)
			pages, err := Evaluate(tree, paginateRule(tc.size), render.NewHelpers())
			require.NoError(t, err)

			wantPages := (tc.n + tc.size - 1) / tc.size
			require.Len(t, pages, wantPages)

			seen := map[string]int{}
			for i, p := range pages {
				require.Equal(t, i+1, p.Metadata[vfs.KeyCurrentPage])
				require.Equal(t, wantPages, p.Metadata[vfs.KeyTotalPages])
				require.Equal(t, tc.size, p.Metadata[vfs.KeyPageSize])
				items := p.Metadata[vfs.KeyItems].([]any)
				require.LessOrEqual(t, len(items), tc.size)
				for _, item := range items {
					seen[item.(map[string]any)["path"].(string)]++
				}
			}
			require.Len(t, seen, tc.n)
			for path, count := range seen {
				require.Equal(t, 1, count, path)
			}
		})
	}
}

func TestPaginate_FirstTargetAndLinks(t *testing.T) {
	rule := paginateRule(2)
	rule.First = "blog/index.html"
	rule.SortBy = vfs.KeyDate
	rule.Reverse = true

	pages, err := Evaluate(postsTree(t, 5), rule, render.NewHelpers())
	require.NoError(t, err)
	require.Len(t, pages, 3)

	require.Equal(t, "blog/index.html", pages[0].Path)
	require.Equal(t, "blog/page/2.html", pages[1].Path)
	require.Equal(t, "blog/page/3.html", pages[2].Path)

	require.NotContains(t, pages[0].Metadata, vfs.KeyPrev)
	require.Equal(t, "/blog/page/2.html", pages[0].Metadata[vfs.KeyNext])
	require.Equal(t, "/blog/index.html", pages[1].Metadata[vfs.KeyPrev])
	require.NotContains(t, pages[2].Metadata, vfs.KeyNext)

	first := pages[0].Metadata[vfs.KeyItems].([]any)[0].(map[string]any)
	require.Equal(t, "blog/post-05.html", first["path"])
	require.Equal(t, "/blog/post-05.html", first["url"])
	require.Equal(t, "Post 5", first[vfs.KeyTitle])
	require.Equal(t, "list.html", pages[0].Metadata[vfs.KeyLayout])
}

func TestPage_RuleMetadataWinsAndSourceUntouched(t *testing.T) {
	tree := postsTree(t, 2)
	rule := Rule{
		Name:     "amp",
		Kind:     KindPage,
		Source:   "blog/*.html",
		Target:   "amp/{{.dir}}/{{.name}}.html",
		Metadata: map[string]any{"layout": "amp.html", vfs.KeyTitle: "AMP"},
	}

	pages, err := Evaluate(tree, rule, render.NewHelpers())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Equal(t, "amp/blog/post-01.html", pages[0].Path)
	require.Equal(t, "<p>1</p>", string(pages[0].Content))
	require.Equal(t, "amp.html", pages[0].Metadata[vfs.KeyLayout])
	require.Equal(t, "AMP", pages[0].Metadata[vfs.KeyTitle])

	src, _ := tree.Get("blog/post-01.html")
	require.Equal(t, "Post 1", src.Metadata[vfs.KeyTitle])
	require.NotContains(t, src.Metadata, vfs.KeyLayout)
}

func TestAggregate_ExcludeAndNaturalOrder(t *testing.T) {
	rule := Rule{
		Name:    "archive",
		Kind:    KindAggregate,
		Source:  "**/*.html",
		Exclude: []string{"index.html", "blog/post-02.html"},
		Target:  "archive.html",
		Content: "<p>archive</p>",
	}

	pages, err := Evaluate(postsTree(t, 3), rule, render.NewHelpers())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "<p>archive</p>", string(pages[0].Content))

	items := pages[0].Metadata[vfs.KeyItems].([]any)
	require.Len(t, items, 2)
	require.Equal(t, "blog/post-01.html", items[0].(map[string]any)["path"])
	require.Equal(t, "blog/post-03.html", items[1].(map[string]any)["path"])
}

func TestGroup_OnePagePerValue(t *testing.T) {
	tree := vfs.NewTree()
	require.NoError(t, tree.Put(&vfs.File{Path: "a.html", Metadata: vfs.Metadata{"tags": []any{"Go", "Web Dev"}}}))
	require.NoError(t, tree.Put(&vfs.File{Path: "b.html", Metadata: vfs.Metadata{"tags": "Go"}}))
	require.NoError(t, tree.Put(&vfs.File{Path: "c.html"}))

	rule := Rule{Name: "tags", Kind: KindGroup, Source: "*.html", GroupBy: "tags", Target: "tags/{{slug .group}}.html"}
	pages, err := Evaluate(tree, rule, render.NewHelpers())
	require.NoError(t, err)
	require.Len(t, pages, 2)

	require.Equal(t, "tags/go.html", pages[0].Path)
	require.Equal(t, "Go", pages[0].Metadata[vfs.KeyGroup])
	require.Len(t, pages[0].Metadata[vfs.KeyItems], 2)

	require.Equal(t, "tags/web-dev.html", pages[1].Path)
	require.Len(t, pages[1].Metadata[vfs.KeyItems], 1)
}

func TestTarget_UnknownKeyIsParseError(t *testing.T) {
	rule := Rule{Name: "bad", Kind: KindPage, Source: "blog/*.html", Target: "{{.missing}}.html"}
	_, err := Evaluate(postsTree(t, 1), rule, render.NewHelpers())
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryParse))
}

func TestTarget_EscapingRootIsStructureError(t *testing.T) {
	rule := Rule{Name: "escape", Kind: KindAggregate, Source: "*.html", Target: "../outside.html"}
	_, err := Evaluate(postsTree(t, 1), rule, render.NewHelpers())
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryStructure))
}

func TestMatch_InvalidGlob(t *testing.T) {
	rule := Rule{Name: "glob", Kind: KindAggregate, Source: "blog/[", Target: "x.html"}
	_, err := Match(postsTree(t, 1), rule)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryParse))
}
