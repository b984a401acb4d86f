package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/website-builder/cmd/website-builder/commands"
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}
	ctx := kong.Parse(cli,
		kong.Name("website-builder"),
		kong.Description("Static site build pipeline: Markdown content, structure rules and layouts in, deployable tree out."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := ctx.Run(global, cli)
	code := foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err)
	global.Close()
	os.Exit(code)
}
