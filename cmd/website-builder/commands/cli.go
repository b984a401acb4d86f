package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"gopkg.in/natefinch/lumberjack.v2"

	"git.home.luguber.info/inful/website-builder/internal/config"
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

// Global holds state shared by every command once flags are applied.
type Global struct {
	Logger *slog.Logger

	closers []io.Closer
}

// Close releases resources opened during AfterApply, e.g. the log file.
func (g *Global) Close() {
	for _, c := range g.closers {
		_ = c.Close()
	}
	g.closers = nil
}

// CLI definition & global flags.
type CLI struct {
	Workdir     string           `short:"w" help:"Project working directory" default:"." type:"path"`
	Target      string           `short:"t" help:"Destination directory relative to the workdir (default: build)"`
	Config      string           `short:"c" help:"Configuration file path" default:"website.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFile     string           `name:"log-file" help:"Also write logs to this file (rotated)"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in text format to this file"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Render content, structure and layouts into the destination"`
	Assets AssetsCmd `cmd:"" help:"Copy static assets into the destination"`
	Sass   SassCmd   `cmd:"" help:"Compile Sass sources into the destination"`
	Clean  CleanCmd  `cmd:"" help:"Remove every file from the destination"`
	Test   TestCmd   `cmd:"" help:"Run the site's test scripts"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if c.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    32,
			MaxBackups: 3,
			MaxAge:     28,
		}
		g.closers = append(g.closers, lj)
		w = io.MultiWriter(os.Stderr, lj)
	}

	g.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// workdir returns the absolute working directory.
func (c *CLI) workdir() (string, error) {
	wd, err := filepath.Abs(c.Workdir)
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid workdir").
			WithContext("path", c.Workdir).
			Build()
	}
	info, err := os.Stat(wd)
	if err != nil || !info.IsDir() {
		return "", foundationerrors.ConfigError("workdir is not a directory").
			WithCause(err).
			WithContext("path", wd).
			Build()
	}
	return wd, nil
}

// load resolves the workdir and reads the configuration. The file is only
// required when --config names something other than the default.
func (c *CLI) load() (string, *config.Config, error) {
	wd, err := c.workdir()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(wd, c.Config, c.Config != config.DefaultFile)
	if err != nil {
		return "", nil, err
	}
	if c.Target != "" {
		cfg.Paths.Target = c.Target
	}
	return wd, cfg, nil
}
