package commands

import (
	"git.home.luguber.info/inful/website-builder/internal/build"
	"git.home.luguber.info/inful/website-builder/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Layouts   string `short:"l" help:"Directory containing layouts, relative to the workdir (default: layouts)"`
	Content   string `help:"Directory containing contents, relative to the workdir (default: content)"`
	Structure string `short:"s" help:"Directory containing structure files, relative to the workdir (default: structure)"`
	NoClean   bool   `name:"no-clean" help:"Keep files of earlier builds in the destination"`
	Minify    bool   `help:"Minify rendered HTML regardless of configuration"`
}

func (b *BuildCmd) applyPaths(p *config.PathsConfig) {
	overridePath(&p.Layouts, b.Layouts)
	overridePath(&p.Content, b.Content)
	overridePath(&p.Structure, b.Structure)
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	s, err := openSession(g, root, b.applyPaths)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Service.Pages(build.PageOptions{NoClean: b.NoClean, Minify: b.Minify})
	return err
}
