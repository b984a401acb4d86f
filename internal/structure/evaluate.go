package structure

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/render"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Match returns the files of tree selected by the rule, in the rule's order.
func Match(tree *vfs.Tree, r Rule) ([]*vfs.File, error) {
	if !doublestar.ValidatePattern(r.Source) {
		return nil, invalidPattern(r, r.Source)
	}
	for _, ex := range r.Exclude {
		if !doublestar.ValidatePattern(ex) {
			return nil, invalidPattern(r, ex)
		}
	}

	var matches []*vfs.File
	for _, f := range tree.List() {
		if ok, _ := doublestar.Match(r.Source, f.Path); !ok {
			continue
		}
		if excluded(r.Exclude, f.Path) {
			continue
		}
		matches = append(matches, f)
	}
	switch {
	case r.SortBy != "":
		sortFiles(matches, r.SortBy, r.Reverse)
	case r.Reverse:
		for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
			matches[i], matches[j] = matches[j], matches[i]
		}
	}
	return matches, nil
}

func excluded(patterns []string, p string) bool {
	for _, ex := range patterns {
		if ok, _ := doublestar.Match(ex, p); ok {
			return true
		}
	}
	return false
}

func invalidPattern(r Rule, pattern string) error {
	return foundationerrors.ParseError("invalid structure glob").
		WithContext("rule", r.Name).
		WithContext("path", r.File).
		WithContext("pattern", pattern).
		Build()
}

// ItemView is the read-only copy of a matched file exposed to generated pages.
func ItemView(f *vfs.File) map[string]any {
	view := f.Metadata.Clone().Map()
	view["path"] = f.Path
	view["url"] = render.PageURL(f.Path)
	return view
}

func itemViews(files []*vfs.File) []any {
	items := make([]any, len(files))
	for i, f := range files {
		items[i] = ItemView(f)
	}
	return items
}

// Evaluate computes the pages a rule generates from tree. Neither the tree
// nor the matched files are modified.
func Evaluate(tree *vfs.Tree, r Rule, helpers render.Helpers) ([]*vfs.File, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	target, err := compileTarget(r, "target", r.Target, helpers)
	if err != nil {
		return nil, err
	}
	matches, err := Match(tree, r)
	if err != nil {
		return nil, err
	}

	switch r.Kind {
	case KindPage:
		return evaluatePages(r, target, matches)
	case KindPaginate:
		return evaluatePagination(r, target, matches, helpers)
	case KindAggregate:
		return evaluateAggregate(r, target, matches)
	default:
		return evaluateGroups(r, target, matches)
	}
}

func evaluatePages(r Rule, target *targetTemplate, matches []*vfs.File) ([]*vfs.File, error) {
	out := make([]*vfs.File, 0, len(matches))
	for _, m := range matches {
		p, err := target.evaluate(sourceVars(m))
		if err != nil {
			return nil, err
		}
		content := []byte(r.Content)
		if r.Content == "" {
			content = append([]byte(nil), m.Content...)
		}
		out = append(out, &vfs.File{
			Path:     p,
			Content:  content,
			Metadata: m.Metadata.Merge(r.metadata()),
		})
	}
	return out, nil
}

func evaluatePagination(r Rule, target *targetTemplate, matches []*vfs.File, helpers render.Helpers) ([]*vfs.File, error) {
	total := (len(matches) + r.PageSize - 1) / r.PageSize

	var first *targetTemplate
	if r.First != "" {
		var err error
		if first, err = compileTarget(r, "first", r.First, helpers); err != nil {
			return nil, err
		}
	}

	paths := make([]string, total)
	for i := range paths {
		vars := map[string]any{VarCurrentPage: i + 1, vfs.KeyTotalPages: total}
		t := target
		if i == 0 && first != nil {
			t = first
		}
		p, err := t.evaluate(vars)
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}

	out := make([]*vfs.File, 0, total)
	for i := 0; i < total; i++ {
		end := min((i+1)*r.PageSize, len(matches))
		meta := r.metadata()
		meta[vfs.KeyCurrentPage] = i + 1
		meta[vfs.KeyTotalPages] = total
		meta[vfs.KeyPageSize] = r.PageSize
		meta[vfs.KeyItems] = itemViews(matches[i*r.PageSize : end])
		if i > 0 {
			meta[vfs.KeyPrev] = render.PageURL(paths[i-1])
		}
		if i < total-1 {
			meta[vfs.KeyNext] = render.PageURL(paths[i+1])
		}
		out = append(out, &vfs.File{Path: paths[i], Content: []byte(r.Content), Metadata: meta})
	}
	return out, nil
}

func evaluateAggregate(r Rule, target *targetTemplate, matches []*vfs.File) ([]*vfs.File, error) {
	p, err := target.evaluate(map[string]any{})
	if err != nil {
		return nil, err
	}
	meta := r.metadata()
	meta[vfs.KeyItems] = itemViews(matches)
	return []*vfs.File{{Path: p, Content: []byte(r.Content), Metadata: meta}}, nil
}

func evaluateGroups(r Rule, target *targetTemplate, matches []*vfs.File) ([]*vfs.File, error) {
	groups := make(map[string][]*vfs.File)
	for _, m := range matches {
		for _, value := range groupValues(m.Metadata[r.GroupBy]) {
			groups[value] = append(groups[value], m)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*vfs.File, 0, len(keys))
	for _, key := range keys {
		p, err := target.evaluate(map[string]any{VarGroup: key})
		if err != nil {
			return nil, err
		}
		meta := r.metadata()
		meta[vfs.KeyGroup] = key
		meta[vfs.KeyItems] = itemViews(groups[key])
		out = append(out, &vfs.File{Path: p, Content: []byte(r.Content), Metadata: meta})
	}
	return out, nil
}

// groupValues flattens a metadata value into the distinct group keys it
// belongs to. Missing and empty values belong to no group.
func groupValues(v any) []string {
	var values []string
	add := func(x any) {
		if x == nil {
			return
		}
		s := fmt.Sprint(x)
		if s == "" {
			return
		}
		for _, existing := range values {
			if existing == s {
				return
			}
		}
		values = append(values, s)
	}

	switch val := v.(type) {
	case []any:
		for _, x := range val {
			add(x)
		}
	case []string:
		for _, x := range val {
			add(x)
		}
	default:
		add(val)
	}
	return values
}
