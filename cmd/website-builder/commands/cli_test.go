package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/website-builder/internal/config"
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	sitetest "git.home.luguber.info/inful/website-builder/internal/testing"
)

// run parses args like main does and executes the selected command.
func run(t *testing.T, args ...string) error {
	t.Helper()
	cli := &CLI{}
	global := &Global{}
	parser, err := kong.New(cli,
		kong.Name("website-builder"),
		kong.Vars{"version": "test"},
		kong.Bind(global),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	defer global.Close()
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })
	return ctx.Run(global, cli)
}

func TestBuildCommand(t *testing.T) {
	p := sitetest.NewProject(t).Minimal().WriteFile("build/stale.html", "old")

	require.NoError(t, run(t, "-w", p.Workdir, "build"))
	p.Assert("build").AssertFiles("index.html").AssertFileContains("index.html", "<title>Home</title>")
}

func TestBuildCommand_NoCleanAndTargetOverride(t *testing.T) {
	p := sitetest.NewProject(t).Minimal().WriteFile("public/stale.html", "old")

	require.NoError(t, run(t, "-w", p.Workdir, "-t", "public", "build", "--no-clean", "--minify"))
	p.Assert("public").AssertFiles("index.html", "stale.html")
}

func TestBuildCommand_DirectoryFlags(t *testing.T) {
	p := sitetest.NewProject(t).WriteFiles(map[string]string{
		"src/content/index.md":     "---\ntitle: Flags\n---\nBody.\n",
		"src/layouts/default.html": "<title>{{.title}}</title>",
	}).Mkdir("src/structure")

	require.NoError(t, run(t, "-w", p.Workdir, "build",
		"--content", "src/content", "-l", "src/layouts", "-s", "src/structure"))
	p.Assert("build").
		AssertFiles("index.html").
		AssertFileEquals("index.html", "<title>Flags</title>")
}

func TestBuildCommand_FlagOverridesConfig(t *testing.T) {
	p := sitetest.NewProject(t).Minimal().
		WriteFile("website.yaml", "paths:\n  content: missing\n").
		WriteFile("pages/index.md", "---\ntitle: From flag\n---\n")

	require.NoError(t, run(t, "-w", p.Workdir, "build", "--content", "pages"))
	p.Assert("build").AssertFileContains("index.html", "<title>From flag</title>")
}

func TestSassCommand_MissingSassDirFromFlag(t *testing.T) {
	p := sitetest.NewProject(t)

	err := run(t, "-w", p.Workdir, "sass", "-s", "src/scss")
	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, foundationerrors.CategoryConfig, ce.Category())
	path, _ := ce.Context().GetString("path")
	require.Equal(t, p.Path("src/scss"), path)
}

func TestCommandPathOverrides(t *testing.T) {
	paths := config.PathsConfig{
		Content: "content", Layouts: "layouts", Structure: "structure",
		Assets: "assets", Sass: "sass", AssetsTarget: "assets", SassTarget: "assets/css",
	}

	(&SassCmd{Sass: "src/scss", OutputDir: "css"}).applyPaths(&paths)
	(&AssetsCmd{AssetsTarget: "static"}).applyPaths(&paths)
	(&BuildCmd{Layouts: "src/layouts"}).applyPaths(&paths)

	require.Equal(t, config.PathsConfig{
		Content: "content", Layouts: "src/layouts", Structure: "structure",
		Assets: "assets", Sass: "src/scss", AssetsTarget: "static", SassTarget: "css",
	}, paths)
}

func TestBuildCommand_ConfigAndMetricsFile(t *testing.T) {
	p := sitetest.NewProject(t).Minimal().WriteFile("website.yaml", "paths:\n  target: out\nbuild:\n  manifest: true\n")
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	require.NoError(t, run(t, "-w", p.Workdir, "--metrics-file", metricsFile, "build"))
	p.Assert("out").AssertFiles("index.html", "manifest.json")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "website_builder_")
}

func TestBuildCommand_MissingExplicitConfig(t *testing.T) {
	p := sitetest.NewProject(t).Minimal()

	err := run(t, "-w", p.Workdir, "-c", "other.yaml", "build")
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestBuildCommand_FailureIsReported(t *testing.T) {
	p := sitetest.NewProject(t).WriteFile("layouts/default.html", "{{.content}}")

	err := run(t, "-w", p.Workdir, "build")
	require.Error(t, err)

	var buf bytes.Buffer
	adapter := foundationerrors.NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&buf, nil)))
	require.Equal(t, 1, adapter.ExitCodeFor(err))
	require.Contains(t, adapter.FormatError(err), "ConfigurationError")
}

func TestAssetsAndCleanCommands(t *testing.T) {
	p := sitetest.NewProject(t).WriteFile("assets/site.js", "alert(1)")

	require.NoError(t, run(t, "-w", p.Workdir, "assets"))
	p.Assert("build").AssertFiles("assets/site.js")

	require.NoError(t, run(t, "-w", p.Workdir, "clean"))
	p.Assert("build").AssertFiles()
}

func TestAssetsCommand_DirectoryFlags(t *testing.T) {
	p := sitetest.NewProject(t).WriteFile("src/static/site.js", "alert(1)")

	require.NoError(t, run(t, "-w", p.Workdir, "assets", "-a", "src/static", "--assets-target", "public/js"))
	p.Assert("build").AssertFiles("public/js/site.js")
}

func TestCleanCommand_RejectsOutsideTarget(t *testing.T) {
	p := sitetest.NewProject(t)

	err := run(t, "-w", p.Workdir, "-t", "../outside", "clean")
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestLogFile(t *testing.T) {
	p := sitetest.NewProject(t).Minimal()
	logFile := filepath.Join(t.TempDir(), "build.log")

	require.NoError(t, run(t, "-w", p.Workdir, "--log-file", logFile, "build"))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "Build completed")
}

func TestTestCommand(t *testing.T) {
	p := sitetest.NewProject(t).WriteFile("test/ok_test.sh", "exit 0\n")

	require.NoError(t, run(t, "-w", p.Workdir, "test", "--runner", "sh"))

	p.WriteFile("test/bad_test.sh", "exit 3\n")
	require.Error(t, run(t, "-w", p.Workdir, "test", "--runner", "sh"))
}

func TestFirstNonEmpty(t *testing.T) {
	require.Equal(t, "b", firstNonEmpty("", "b", "c"))
	require.Empty(t, firstNonEmpty("", ""))
}
