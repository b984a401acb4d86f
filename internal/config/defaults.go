package config

import "path"

// Default source directories and output locations.
const (
	DefaultContentDir    = "content"
	DefaultStructureDir  = "structure"
	DefaultLayoutsDir    = "layouts"
	DefaultAssetsDir     = "assets"
	DefaultSassDir       = "sass"
	DefaultTarget        = "build"
	DefaultAssetsTarget  = "assets"
	DefaultSassTarget    = "assets/css"
	DefaultLayout        = "default.html"
	DefaultTestDir       = "test"
	DefaultTestPattern   = "**/*_test.sh"
	DefaultNotifySubject = "website.builds"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type pathsDefaults struct{}

func (pathsDefaults) Domain() string { return "paths" }

func (pathsDefaults) ApplyDefaults(cfg *Config) error {
	p := &cfg.Paths
	setDefault(&p.Content, DefaultContentDir)
	setDefault(&p.Structure, DefaultStructureDir)
	setDefault(&p.Layouts, DefaultLayoutsDir)
	setDefault(&p.Assets, DefaultAssetsDir)
	setDefault(&p.Sass, DefaultSassDir)
	setDefault(&p.Target, DefaultTarget)
	setDefault(&p.AssetsTarget, DefaultAssetsTarget)
	setDefault(&p.SassTarget, DefaultSassTarget)
	p.AssetsTarget = path.Clean(p.AssetsTarget)
	p.SassTarget = path.Clean(p.SassTarget)
	return nil
}

type buildDefaults struct{}

func (buildDefaults) Domain() string { return "build" }

func (buildDefaults) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Build.DefaultLayout, DefaultLayout)
	if cfg.Site == nil {
		cfg.Site = map[string]any{}
	}
	return nil
}

type serviceDefaults struct{}

func (serviceDefaults) Domain() string { return "services" }

func (serviceDefaults) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Notify.Subject, DefaultNotifySubject)
	setDefault(&cfg.Test.Dir, DefaultTestDir)
	setDefault(&cfg.Test.Pattern, DefaultTestPattern)
	return nil
}

// ApplyDefaults fills every unset field.
func ApplyDefaults(cfg *Config) error {
	for _, applier := range []DefaultApplier{pathsDefaults{}, buildDefaults{}, serviceDefaults{}} {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
