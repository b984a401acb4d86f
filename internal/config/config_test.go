package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

func TestLoad_MissingOptionalFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "", false)
	require.NoError(t, err)

	require.Equal(t, "content", cfg.Paths.Content)
	require.Equal(t, "structure", cfg.Paths.Structure)
	require.Equal(t, "layouts", cfg.Paths.Layouts)
	require.Equal(t, "assets", cfg.Paths.Assets)
	require.Equal(t, "sass", cfg.Paths.Sass)
	require.Equal(t, "build", cfg.Paths.Target)
	require.Equal(t, "assets", cfg.Paths.AssetsTarget)
	require.Equal(t, "assets/css", cfg.Paths.SassTarget)
	require.Equal(t, "default.html", cfg.Build.DefaultLayout)
	require.True(t, cfg.Build.CleanEnabled())
	require.False(t, cfg.Notify.Enabled())
	require.Equal(t, -1, cfg.Notify.Retries())
	require.Equal(t, "**/*_test.sh", cfg.Test.Pattern)
	require.NotNil(t, cfg.Site)
}

func TestLoad_MissingRequiredFileIsConfigError(t *testing.T) {
	_, err := Load(t.TempDir(), "custom.yaml", true)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestLoad_ParsesAndExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SITE_TITLE", "From Env")
	t.Setenv("NATS_HOST", "")
	require.NoError(t, os.Unsetenv("NATS_HOST"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NATS_HOST=nats.internal\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(`
site:
  title: ${SITE_TITLE}
  author: Ada
paths:
  content: pages
  target: public
build:
  minify: true
  clean: false
  highlight_style: monokai
sass:
  include_paths: [node_modules]
  timeout: 5s
notify:
  nats_url: nats://${NATS_HOST}:4222
  max_retries: 0
`), 0o644))

	cfg, err := Load(dir, "", false)
	require.NoError(t, err)

	require.Equal(t, "From Env", cfg.Site["title"])
	require.Equal(t, "Ada", cfg.Site["author"])
	require.Equal(t, "pages", cfg.Paths.Content)
	require.Equal(t, "public", cfg.Paths.Target)
	require.Equal(t, "layouts", cfg.Paths.Layouts)
	require.True(t, cfg.Build.Minify)
	require.False(t, cfg.Build.CleanEnabled())
	require.Equal(t, "monokai", cfg.Build.HighlightStyle)
	require.Equal(t, []string{"node_modules"}, cfg.Sass.IncludePaths)
	require.Equal(t, 5*time.Second, cfg.Sass.Timeout)
	require.Equal(t, "nats://nats.internal:4222", cfg.Notify.NATSURL)
	require.Equal(t, "website.builds", cfg.Notify.Subject)
	require.Equal(t, 0, cfg.Notify.Retries())
}

func TestLoad_InvalidYAMLIsConfigError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("paths: [\n"), 0o644))

	_, err := Load(dir, "", false)
	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, "ConfigurationError", ce.Category().Kind())
}
