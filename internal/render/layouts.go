package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/frontmatter"
)

// IncludesDir is the layouts subdirectory holding shared includes.
const IncludesDir = "templates"

// DefaultLayout is used for pages that do not name a layout.
const DefaultLayout = "default.html"

const extendsKey = "extends"

type layoutSource struct {
	name    string
	extends string
	body    string
}

// Layouts is the set of layout and include templates of one build. Compiled
// chains are cached per layout name.
type Layouts struct {
	layouts  map[string]layoutSource
	includes []layoutSource
	funcs    template.FuncMap
	compiled map[string]*template.Template
}

// LoadLayouts reads every layout below dir. Files in dir/templates are
// registered as includes named by their path relative to that directory.
func LoadLayouts(dir string, helpers Helpers) (*Layouts, error) {
	l := &Layouts{
		layouts:  make(map[string]layoutSource),
		funcs:    template.FuncMap(helpers.FuncMap()),
		compiled: make(map[string]*template.Template),
	}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		if inc, ok := strings.CutPrefix(rel, IncludesDir+"/"); ok {
			l.includes = append(l.includes, layoutSource{name: inc, body: string(content)})
			return nil
		}

		src, err := parseLayout(rel, content)
		if err != nil {
			return err
		}
		l.layouts[rel] = src
		return nil
	})
	if err != nil {
		if foundationerrors.IsClassified(err) {
			return nil, err
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read layouts").
			Fatal().
			WithContext("path", dir).
			Build()
	}

	sort.Slice(l.includes, func(i, j int) bool { return l.includes[i].name < l.includes[j].name })
	return l, nil
}

func parseLayout(name string, content []byte) (layoutSource, error) {
	fields, body, err := frontmatter.Parse(content)
	if err != nil {
		return layoutSource{}, layoutParseError(err, name, "malformed layout front matter")
	}

	src := layoutSource{name: name, body: string(body)}
	if parent, ok := fields[extendsKey]; ok {
		s, isString := parent.(string)
		if !isString || s == "" {
			return layoutSource{}, foundationerrors.ParseError("layout extends must name a layout").
				WithContext("layout", name).
				Build()
		}
		src.extends = s
	}
	return src, nil
}

// Names returns the layout names in lexical order.
func (l *Layouts) Names() []string {
	names := make([]string, 0, len(l.layouts))
	for name := range l.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the inheritance chain of name, the layout itself first and
// the root last.
func (l *Layouts) Chain(name string) ([]string, error) {
	var chain []string
	seen := make(map[string]bool)
	for current := name; current != ""; {
		if seen[current] {
			return nil, foundationerrors.StructureError("layout inheritance cycle").
				WithContext("layout", name).
				WithContext("chain", strings.Join(append(chain, current), " -> ")).
				Build()
		}
		src, ok := l.layouts[current]
		if !ok {
			msg := "layout not found"
			if current != name {
				msg = fmt.Sprintf("parent layout %q not found", current)
			}
			return nil, foundationerrors.StructureError(msg).
				WithContext("layout", name).
				Build()
		}
		seen[current] = true
		chain = append(chain, current)
		current = src.extends
	}
	return chain, nil
}

// Compile returns the executable template for layout name. The returned
// template executes the root of the chain.
func (l *Layouts) Compile(name string) (*template.Template, error) {
	if t, ok := l.compiled[name]; ok {
		return t, nil
	}

	chain, err := l.Chain(name)
	if err != nil {
		return nil, err
	}

	root := l.layouts[chain[len(chain)-1]]
	t := template.New(root.name).Funcs(l.funcs)
	for _, inc := range l.includes {
		if _, err := t.New(inc.name).Parse(inc.body); err != nil {
			return nil, layoutParseError(err, IncludesDir+"/"+inc.name, "template syntax error")
		}
	}
	if _, err := t.Parse(root.body); err != nil {
		return nil, layoutParseError(err, root.name, "template syntax error")
	}
	for i := len(chain) - 2; i >= 0; i-- {
		child := l.layouts[chain[i]]
		if _, err := t.New(child.name).Parse(child.body); err != nil {
			return nil, layoutParseError(err, child.name, "template syntax error")
		}
	}

	l.compiled[name] = t
	return t, nil
}

func layoutParseError(err error, layout, msg string) error {
	return foundationerrors.WrapError(err, foundationerrors.CategoryParse, msg).
		Fatal().
		WithContext("layout", layout).
		Build()
}
