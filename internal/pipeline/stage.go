package pipeline

import "git.home.luguber.info/inful/website-builder/internal/vfs"

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names.
const (
	StageLoad        StageName = "load"
	StageMarkdown    StageName = "markdown"
	StageStructure   StageName = "structure"
	StageRender      StageName = "render"
	StageHighlight   StageName = "highlight"
	StageMinify      StageName = "minify"
	StagePrecompress StageName = "precompress"
	StageManifest    StageName = "manifest"
	StageCopyAssets  StageName = "copy_assets"
	StageSass        StageName = "sass"
	StageClean       StageName = "clean"
	StageFlush       StageName = "flush"
)

// Stage transforms the tree in place. A stage either completes or returns an
// error that aborts the build.
type Stage interface {
	Name() StageName
	Apply(tree *vfs.Tree) error
}
