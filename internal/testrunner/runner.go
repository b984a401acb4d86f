// Package testrunner discovers and executes the site's test scripts.
package testrunner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/logfields"
)

// Options configures discovery and execution.
type Options struct {
	// Workdir is the directory tests run in; Dir is resolved against it.
	Workdir string
	Dir     string
	Pattern string

	// Runner, when set, is invoked with the script path as its last argument.
	// Otherwise each script is executed directly.
	Runner string

	// Env is appended to the process environment of every test.
	Env []string

	Out io.Writer
}

// Result is the outcome of one test script.
type Result struct {
	Path     string
	Passed   bool
	Duration time.Duration
	Output   []byte
	Err      error
}

// Summary aggregates all results.
type Summary struct {
	Results []Result
}

func (s Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed {
			n++
		}
	}
	return n
}

func (s Summary) Failed() int { return len(s.Results) - s.Passed() }

// Discover lists the files under dir matching pattern, relative to dir and
// sorted lexically. A missing dir yields no tests.
func Discover(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, foundationerrors.ConfigError("invalid test pattern").
			WithContext("pattern", pattern).
			Build()
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to stat test directory").
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, foundationerrors.ConfigError("test directory is not a directory").
			WithContext("path", dir).
			Build()
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to discover tests").
			WithContext("path", dir).
			Build()
	}
	sort.Strings(matches)
	return matches, nil
}

// Run discovers and executes every test sequentially, printing one coloured
// line per test and a summary. It returns an error when any test failed.
func Run(ctx context.Context, opts Options) (Summary, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	dir := opts.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(opts.Workdir, dir)
	}

	tests, err := Discover(dir, opts.Pattern)
	if err != nil {
		return Summary{}, err
	}
	if len(tests) == 0 {
		slog.Warn("No tests found", logfields.Path(dir), slog.String("pattern", opts.Pattern))
		return Summary{}, nil
	}

	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)

	var summary Summary
	for _, rel := range tests {
		res := runOne(ctx, opts, filepath.Join(dir, filepath.FromSlash(rel)))
		res.Path = rel
		summary.Results = append(summary.Results, res)

		if res.Passed {
			_, _ = pass.Fprint(out, "PASS")
		} else {
			_, _ = fail.Fprint(out, "FAIL")
		}
		_, _ = fmt.Fprintf(out, " %s (%s)\n", rel, res.Duration.Round(time.Millisecond))
		if !res.Passed && len(res.Output) > 0 {
			_, _ = out.Write(indent(res.Output))
		}
		slog.Debug("Test finished", logfields.Path(rel), logfields.Duration(res.Duration), slog.Bool("passed", res.Passed))
	}

	_, _ = fmt.Fprintf(out, "%d passed, %d failed\n", summary.Passed(), summary.Failed())
	if summary.Failed() > 0 {
		return summary, foundationerrors.NewError(foundationerrors.CategoryInternal, "test run failed").
			WithContext("failed", summary.Failed()).
			WithContext("total", len(summary.Results)).
			Build()
	}
	return summary, nil
}

func runOne(ctx context.Context, opts Options, script string) Result {
	var cmd *exec.Cmd
	if opts.Runner != "" {
		cmd = exec.CommandContext(ctx, opts.Runner, script)
	} else {
		cmd = exec.CommandContext(ctx, script)
	}
	cmd.Dir = opts.Workdir
	cmd.Env = append(os.Environ(), opts.Env...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	err := cmd.Run()
	return Result{
		Passed:   err == nil,
		Duration: time.Since(start),
		Output:   buf.Bytes(),
		Err:      err,
	}
}

func indent(b []byte) []byte {
	lines := bytes.SplitAfter(bytes.TrimRight(b, "\n"), []byte("\n"))
	var out bytes.Buffer
	for _, l := range lines {
		out.WriteString("    ")
		out.Write(l)
	}
	out.WriteByte('\n')
	return out.Bytes()
}

