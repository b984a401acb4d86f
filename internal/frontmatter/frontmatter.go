// Package frontmatter splits and parses the YAML metadata block at the head
// of content and layout files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a front matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Block is the result of splitting a document.
type Block struct {
	// Raw is the YAML between the delimiters (without them).
	Raw []byte
	// Body is everything after the closing delimiter.
	Body []byte
	// Present reports whether the document started with a front matter block.
	Present bool
	// Newline is the line ending detected on the first line.
	Newline string
}

// Split separates a `---` delimited front matter block from the body.
//
// A document that does not begin with the delimiter is returned as body only.
func Split(content []byte) (Block, error) {
	nl := detectNewline(content)
	delim := []byte("---" + nl)

	if !bytes.HasPrefix(content, delim) {
		return Block{Body: content, Newline: nl}, nil
	}

	rest := content[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		return Block{Raw: []byte{}, Body: rest[len(delim):], Present: true, Newline: nl}, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the very last line has no trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return Block{Raw: rest[:len(rest)-len("---")], Body: []byte{}, Present: true, Newline: nl}, nil
		}
		return Block{}, ErrMissingClosingDelimiter
	}

	return Block{
		Raw:     rest[:idx+len(nl)],
		Body:    rest[idx+len(closing):],
		Present: true,
		Newline: nl,
	}, nil
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
// Empty input yields an empty, non-nil map.
func ParseYAML(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits content and decodes its front matter in one step.
func Parse(content []byte) (map[string]any, []byte, error) {
	block, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	fields, err := ParseYAML(block.Raw)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid front matter yaml: %w", err)
	}
	return fields, block.Body, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
