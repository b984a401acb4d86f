package render

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSlugLocale is the locale hint used when a template passes none.
const DefaultSlugLocale = "us"

// Helpers is the set of functions exposed to templates. It is a plain value
// and is never mutated after construction; the zero value uses the system clock.
type Helpers struct {
	clock func() time.Time
}

// HelperOption customizes Helpers.
type HelperOption func(*Helpers)

// WithClock replaces the time source used by now.
func WithClock(clock func() time.Time) HelperOption {
	return func(h *Helpers) { h.clock = clock }
}

// NewHelpers returns the helper set.
func NewHelpers(opts ...HelperOption) Helpers {
	h := Helpers{clock: time.Now}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Now returns the current instant at call time.
func (h Helpers) Now() time.Time {
	if h.clock == nil {
		return time.Now()
	}
	return h.clock()
}

// Slug turns text into a URL path segment: lower-cased, every whitespace run
// replaced by a single hyphen, anything outside [a-z0-9-] dropped. Runs at the
// edges are replaced too, so " x " becomes "-x-". Text with a Chinese locale
// hint is returned unchanged.
func (h Helpers) Slug(text string, locale ...string) string {
	hint := DefaultSlugLocale
	if len(locale) > 0 && locale[0] != "" {
		hint = locale[0]
	}
	if isChinese(hint) || text == "" {
		return text
	}

	lower := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lower))
	space := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte('-')
			}
			space = true
			continue
		}
		space = false
		if r == '-' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Date formats value with a moment-style pattern (DD MMMM YYYY by default).
func (h Helpers) Date(value any, format ...string) (string, error) {
	t, err := toTime(value)
	if err != nil {
		return "", err
	}
	pattern := DefaultDateFormat
	if len(format) > 0 && format[0] != "" {
		pattern = format[0]
	}
	return FormatDate(t, pattern), nil
}

// FuncMap exposes the helpers under their template names.
func (h Helpers) FuncMap() map[string]any {
	return map[string]any{
		"slug": h.Slug,
		"now":  h.Now,
		"date": h.Date,
	}
}

func isChinese(hint string) bool {
	tag, err := language.Parse(hint)
	if err != nil {
		return strings.HasPrefix(strings.ToLower(hint), "zh")
	}
	base, _ := tag.Base()
	return base.String() == "zh"
}
