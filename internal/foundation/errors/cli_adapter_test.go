package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	assert.Equal(t, 0, adapter.ExitCodeFor(nil))
	assert.Equal(t, 1, adapter.ExitCodeFor(ConfigError("bad workdir").Build()))
	assert.Equal(t, 1, adapter.ExitCodeFor(CompileError("sass failed").Build()))
	assert.Equal(t, 1, adapter.ExitCodeFor(errors.New("unknown")))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("yaml: line 2: mapping values are not allowed here")
	err := fmt.Errorf("markdown: %w", WrapError(cause, CategoryParse, "malformed front matter").
		WithContext("path", "blog/post.md").
		Build())

	t.Run("quiet mode shows kind, message and path", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, slog.Default())
		got := adapter.FormatError(err)
		assert.Equal(t, "ParseError: malformed front matter (blog/post.md)", got)
	})

	t.Run("verbose mode shows the cause chain", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(true, slog.Default())
		got := adapter.FormatError(err)
		assert.Contains(t, got, "ParseError")
		assert.Contains(t, got, "mapping values are not allowed")
	})

	t.Run("unclassified error", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, slog.Default())
		assert.Equal(t, "Error: boom", adapter.FormatError(errors.New("boom")))
	})
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logBuf, outBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &outBuf

	code := adapter.Report(StructureError("duplicate output path").WithContext("path", "tags/go.html").Build())
	require.Equal(t, 1, code)
	assert.Contains(t, logBuf.String(), "kind=StructureError")
	assert.Contains(t, logBuf.String(), "path=tags/go.html")
	assert.Contains(t, outBuf.String(), "StructureError: duplicate output path (tags/go.html)")

	assert.Equal(t, 0, adapter.Report(nil))
}
