package commands

import (
	"git.home.luguber.info/inful/website-builder/internal/build"
	"git.home.luguber.info/inful/website-builder/internal/config"
)

// AssetsCmd implements the 'assets' command.
type AssetsCmd struct {
	Assets       string `short:"a" help:"Directory containing assets, relative to the workdir (default: assets)"`
	AssetsTarget string `name:"assets-target" short:"o" help:"Output directory relative to the destination (default: assets)"`
}

func (a *AssetsCmd) applyPaths(p *config.PathsConfig) {
	overridePath(&p.Assets, a.Assets)
	overridePath(&p.AssetsTarget, a.AssetsTarget)
}

func (a *AssetsCmd) Run(g *Global, root *CLI) error {
	s, err := openSession(g, root, a.applyPaths)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Service.Assets()
	return err
}

// SassCmd implements the 'sass' command.
type SassCmd struct {
	Sass      string `short:"s" help:"Directory containing Sass sources, relative to the workdir (default: sass)"`
	OutputDir string `name:"output-dir" short:"o" help:"CSS output directory relative to the destination (default: assets/css)"`
	Dev       bool   `help:"Expanded output with an inline source map"`
}

func (c *SassCmd) applyPaths(p *config.PathsConfig) {
	overridePath(&p.Sass, c.Sass)
	overridePath(&p.SassTarget, c.OutputDir)
}

func (c *SassCmd) Run(g *Global, root *CLI) error {
	s, err := openSession(g, root, c.applyPaths)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Service.Sass(build.SassOptions{Dev: c.Dev})
	return err
}

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	wd, cfg, err := root.load()
	if err != nil {
		return err
	}
	return build.NewService(wd, cfg.Paths.Target, cfg).Clean()
}
