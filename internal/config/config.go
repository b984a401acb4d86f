// Package config loads the optional website.yaml project file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "website.yaml"

// Config is the project configuration. Every field is optional.
type Config struct {
	Site    map[string]any `yaml:"site"`
	Paths   PathsConfig    `yaml:"paths"`
	Build   BuildConfig    `yaml:"build"`
	Sass    SassConfig     `yaml:"sass"`
	Metrics MetricsConfig  `yaml:"metrics"`
	Notify  NotifyConfig   `yaml:"notify"`
	Test    TestConfig     `yaml:"test"`
}

// PathsConfig holds source directories and the target, relative to the
// working directory, and the asset outputs, relative to the target.
type PathsConfig struct {
	Content      string `yaml:"content"`
	Structure    string `yaml:"structure"`
	Layouts      string `yaml:"layouts"`
	Assets       string `yaml:"assets"`
	Sass         string `yaml:"sass"`
	Target       string `yaml:"target"`
	AssetsTarget string `yaml:"assets_target"`
	SassTarget   string `yaml:"sass_target"`
}

// BuildConfig controls the page pipeline.
type BuildConfig struct {
	DefaultLayout  string `yaml:"default_layout"`
	Minify         bool   `yaml:"minify"`
	Clean          *bool  `yaml:"clean"`
	Precompress    bool   `yaml:"precompress"`
	Manifest       bool   `yaml:"manifest"`
	HighlightStyle string `yaml:"highlight_style"`
	GitInfo        bool   `yaml:"git_info"`
}

// CleanEnabled reports whether the destination is emptied before flushing.
func (b BuildConfig) CleanEnabled() bool { return b.Clean == nil || *b.Clean }

// SassConfig controls Sass compilation.
type SassConfig struct {
	IncludePaths []string      `yaml:"include_paths"`
	Binary       string        `yaml:"binary"`
	Timeout      time.Duration `yaml:"timeout"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// NotifyConfig controls build notifications.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`

	// MaxRetries bounds publish retries; unset keeps the retry default.
	MaxRetries *int   `yaml:"max_retries"`
	Backoff    string `yaml:"backoff"`
}

// Retries returns MaxRetries, or -1 when unset.
func (n NotifyConfig) Retries() int {
	if n.MaxRetries == nil {
		return -1
	}
	return *n.MaxRetries
}

// Enabled reports whether notifications are configured.
func (n NotifyConfig) Enabled() bool { return n.NATSURL != "" }

// TestConfig controls the test command.
type TestConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
	Runner  string `yaml:"runner"`
}

// Load reads the project file at path (relative paths are resolved against
// workdir), expanding ${VAR} references from the environment and any .env
// files in workdir, and applies defaults. A missing file yields the defaults
// unless required is set.
func Load(workdir, path string, required bool) (*Config, error) {
	loadEnvFiles(workdir)

	if path == "" {
		path = DefaultFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workdir, path)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
	case err != nil:
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read configuration file").
			Fatal().
			WithContext("path", path).
			Build()
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid configuration file").
				Fatal().
				WithContext("path", path).
				Build()
		}
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
