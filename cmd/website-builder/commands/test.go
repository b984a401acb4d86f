package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/website-builder/internal/testrunner"
)

// TestCmd implements the 'test' command.
type TestCmd struct {
	Dir     string `help:"Directory holding the test scripts (default: test)"`
	Pattern string `help:"Doublestar pattern selecting test scripts (default: **/*_test.sh)"`
	Runner  string `help:"Program invoked with each script path"`
}

func (c *TestCmd) Run(_ *Global, root *CLI) error {
	wd, cfg, err := root.load()
	if err != nil {
		return err
	}

	opts := testrunner.Options{
		Workdir: wd,
		Dir:     firstNonEmpty(c.Dir, cfg.Test.Dir),
		Pattern: firstNonEmpty(c.Pattern, cfg.Test.Pattern),
		Runner:  firstNonEmpty(c.Runner, cfg.Test.Runner),
		Env:     []string{"WEBSITE_TARGET=" + cfg.Paths.Target, "WEBSITE_WORKDIR=" + wd},
		Out:     os.Stdout,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err = testrunner.Run(ctx, opts)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
