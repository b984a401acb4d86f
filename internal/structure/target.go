package structure

import (
	"bytes"
	"path"
	"strings"
	"text/template"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/render"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Variables available to target templates besides the source metadata.
const (
	VarPath        = "path"
	VarDir         = "dir"
	VarName        = "name"
	VarCurrentPage = "currentPage"
	VarGroup       = "group"
)

type targetTemplate struct {
	rule Rule
	tmpl *template.Template
}

func compileTarget(r Rule, field, text string, helpers render.Helpers) (*targetTemplate, error) {
	funcs := template.FuncMap{"slug": helpers.Slug}
	tmpl, err := template.New(r.Name + "." + field).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryParse, "invalid structure target").
			Fatal().
			WithContext("rule", r.Name).
			WithContext("path", r.File).
			Build()
	}
	return &targetTemplate{rule: r, tmpl: tmpl}, nil
}

// evaluate renders the target with vars and returns a clean tree path.
func (t *targetTemplate) evaluate(vars map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, vars); err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryParse, "failed to evaluate structure target").
			Fatal().
			WithContext("rule", t.rule.Name).
			WithContext("path", t.rule.File).
			Build()
	}
	out, err := vfs.CleanPath(strings.TrimSpace(buf.String()))
	if err != nil {
		return "", foundationerrors.StructureError("structure target escapes the output root").
			WithCause(err).
			WithContext("rule", t.rule.Name).
			WithContext("target", buf.String()).
			Build()
	}
	return out, nil
}

// sourceVars exposes a matched file to target templates.
func sourceVars(f *vfs.File) map[string]any {
	vars := f.Metadata.Clone().Map()
	dir := path.Dir(f.Path)
	if dir == "." {
		dir = ""
	}
	base := path.Base(f.Path)
	vars[VarPath] = f.Path
	vars[VarDir] = dir
	vars[VarName] = strings.TrimSuffix(base, path.Ext(base))
	return vars
}
