package build

import (
	"log/slog"
	"maps"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/website-builder/internal/assets"
	"git.home.luguber.info/inful/website-builder/internal/cleanup"
	"git.home.luguber.info/inful/website-builder/internal/config"
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/gitinfo"
	"git.home.luguber.info/inful/website-builder/internal/logfields"
	"git.home.luguber.info/inful/website-builder/internal/markdown"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/render"
	"git.home.luguber.info/inful/website-builder/internal/stages"
	"git.home.luguber.info/inful/website-builder/internal/structure"
	"git.home.luguber.info/inful/website-builder/internal/util/sets"
)

// Pipeline names used in logs, metrics and build events.
const (
	PipelinePages  = "pages"
	PipelineAssets = "assets"
	PipelineSass   = "sass"
)

// CompilerFactory starts a Sass compiler. The returned close function is
// called once the pipeline finished.
type CompilerFactory func(opts assets.DartSassOptions) (assets.Compiler, func() error, error)

// DartSassFactory starts the embedded Dart Sass process.
func DartSassFactory(opts assets.DartSassOptions) (assets.Compiler, func() error, error) {
	d, err := assets.NewDartSass(opts)
	if err != nil {
		return nil, nil, err
	}
	return d, d.Close, nil
}

// Service runs builds for one project.
type Service struct {
	workdir  string
	target   string
	cfg      *config.Config
	buildID  string
	observer pipeline.BuildObserver
	helpers  render.Helpers
	compiler CompilerFactory
}

// Option customizes a Service.
type Option func(*Service)

// WithBuildID fixes the id attached to every result.
func WithBuildID(id string) Option { return func(s *Service) { s.buildID = id } }

// WithObserver receives stage and build callbacks.
func WithObserver(o pipeline.BuildObserver) Option { return func(s *Service) { s.observer = o } }

// WithHelpers replaces the template helpers, e.g. to pin the clock.
func WithHelpers(h render.Helpers) Option { return func(s *Service) { s.helpers = h } }

// WithCompilerFactory replaces the Dart Sass compiler.
func WithCompilerFactory(f CompilerFactory) Option { return func(s *Service) { s.compiler = f } }

// NewService returns a Service building into target (relative to workdir
// unless absolute). cfg must have defaults applied.
func NewService(workdir, target string, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		workdir:  workdir,
		target:   target,
		cfg:      cfg,
		observer: pipeline.NoopObserver{},
		helpers:  render.NewHelpers(),
		compiler: DartSassFactory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dest is the absolute destination directory.
func (s *Service) Dest() string { return s.abs(s.target) }

func (s *Service) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.workdir, p)
}

// PageOptions modifies a page build.
type PageOptions struct {
	// NoClean leaves stale files of earlier builds in the destination.
	NoClean bool

	// Minify forces the minify stage regardless of configuration.
	Minify bool
}

// PageStages returns the ordered stages of a page build.
func (s *Service) PageStages(opts PageOptions) ([]pipeline.Stage, error) {
	b := s.cfg.Build
	conv := markdown.New(markdown.Options{HighlightStyle: b.HighlightStyle})

	site, err := s.siteMetadata()
	if err != nil {
		return nil, err
	}

	list := []pipeline.Stage{
		stages.NewMarkdownStage(conv),
		structure.NewStage(s.abs(s.cfg.Paths.Structure), s.helpers),
		render.NewStage(render.Options{
			LayoutsDir:    s.abs(s.cfg.Paths.Layouts),
			DefaultLayout: b.DefaultLayout,
			Site:          site,
			Helpers:       s.helpers,
		}),
	}
	if b.HighlightStyle != "" {
		list = append(list, stages.HighlightStage{Converter: conv})
	}
	if b.Minify || opts.Minify {
		list = append(list, stages.NewMinifyStage())
	}
	if b.Precompress {
		list = append(list, stages.PrecompressStage{})
	}
	if b.Manifest {
		list = append(list, stages.ManifestStage{})
	}
	if b.CleanEnabled() && !opts.NoClean {
		list = append(list, cleanup.Stage{
			Workdir: s.workdir,
			Target:  s.target,
			Keep:    s.assetRoots(),
		})
	}
	return list, nil
}

// Pages renders the content tree into the destination.
func (s *Service) Pages(opts PageOptions) (*pipeline.BuildResult, error) {
	p := s.cfg.Paths
	rules := RuleChain{
		requiredDir{Label: "content", Path: s.abs(p.Content)},
		requiredDir{Label: "layouts", Path: s.abs(p.Layouts)},
		requiredDir{Label: "structure", Path: s.abs(p.Structure)},
	}
	if s.cfg.Build.CleanEnabled() && !opts.NoClean {
		rules = append(rules, cleanableTarget{Workdir: s.workdir, Target: s.target})
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	list, err := s.PageStages(opts)
	if err != nil {
		return nil, err
	}
	return s.run(PipelinePages, s.abs(p.Content), list)
}

// Assets copies the assets directory below the assets target.
func (s *Service) Assets() (*pipeline.BuildResult, error) {
	src := s.abs(s.cfg.Paths.Assets)
	if err := (RuleChain{requiredDir{Label: "assets", Path: src}}).Validate(); err != nil {
		return nil, err
	}
	return s.run(PipelineAssets, src, []pipeline.Stage{
		assets.CopyStage{OutputDir: s.cfg.Paths.AssetsTarget},
	})
}

// SassOptions modifies a Sass build.
type SassOptions struct {
	Dev bool
}

// Sass compiles the Sass directory below the Sass target.
func (s *Service) Sass(opts SassOptions) (*pipeline.BuildResult, error) {
	src := s.abs(s.cfg.Paths.Sass)
	if err := (RuleChain{requiredDir{Label: "sass", Path: src}}).Validate(); err != nil {
		return nil, err
	}

	compiler, closeFn, err := s.compiler(assets.DartSassOptions{
		Binary:  s.cfg.Sass.Binary,
		Timeout: s.cfg.Sass.Timeout,
	})
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryCompile, "failed to start Dart Sass").Fatal().Build()
	}
	defer func() {
		if closeFn == nil {
			return
		}
		if err := closeFn(); err != nil {
			slog.Warn("Failed to stop Sass compiler", logfields.Error(err))
		}
	}()

	includes := make([]string, 0, len(s.cfg.Sass.IncludePaths))
	for _, p := range s.cfg.Sass.IncludePaths {
		includes = append(includes, s.abs(p))
	}

	return s.run(PipelineSass, src, []pipeline.Stage{
		assets.NewSassStage(compiler, assets.SassOptions{
			SourceDir:    src,
			OutputDir:    s.cfg.Paths.SassTarget,
			IncludePaths: includes,
			Dev:          opts.Dev,
		}),
	})
}

// Clean empties the destination directory.
func (s *Service) Clean() error {
	if err := cleanup.Clean(s.workdir, s.target); err != nil {
		return err
	}
	slog.Info("Destination cleaned", logfields.Target(s.Dest()))
	return nil
}

func (s *Service) run(name, src string, list []pipeline.Stage) (*pipeline.BuildResult, error) {
	d := &pipeline.Driver{
		Pipeline: name,
		BuildID:  s.buildID,
		Stages:   list,
		Observer: s.observer,
	}
	res := d.Run(pipeline.LoadDir(src), s.Dest())
	if !res.Success() {
		return res, res.Err
	}
	return res, nil
}

// siteMetadata returns the site mapping shared by every render, extended
// with git information when enabled.
func (s *Service) siteMetadata() (map[string]any, error) {
	site := maps.Clone(s.cfg.Site)
	if site == nil {
		site = map[string]any{}
	}
	if !s.cfg.Build.GitInfo {
		return site, nil
	}
	info, ok, err := gitinfo.Read(s.workdir)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read git metadata").
			WithContext("path", s.workdir).
			Build()
	}
	if !ok {
		slog.Debug("Workdir is not a git repository; site.git left unset", logfields.Workdir(s.workdir))
		return site, nil
	}
	site["git"] = info.Map()
	return site, nil
}

// assetRoots lists the top-level destination entries owned by the asset
// pipelines, which a page build must not remove.
func (s *Service) assetRoots() []string {
	seen := sets.New[string]()
	var roots []string
	for _, p := range []string{s.cfg.Paths.AssetsTarget, s.cfg.Paths.SassTarget} {
		p = strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
		if p == "" || p == "." || strings.HasPrefix(p, "..") {
			continue
		}
		root, _, _ := strings.Cut(p, "/")
		if seen.Add(root) {
			roots = append(roots, root)
		}
	}
	return roots
}
