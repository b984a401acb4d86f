package structure

import (
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Kind selects how a rule maps matched files to generated pages.
type Kind string

const (
	// KindPage generates one page per matched file.
	KindPage Kind = "page"
	// KindPaginate splits the matches into batches of PageSize.
	KindPaginate Kind = "paginate"
	// KindAggregate generates one page listing every match.
	KindAggregate Kind = "aggregate"
	// KindGroup generates one page per distinct value of GroupBy.
	KindGroup Kind = "group"
)

// Rule declares one set of generated pages.
type Rule struct {
	Name     string         `yaml:"name"`
	Kind     Kind           `yaml:"kind"`
	Source   string         `yaml:"source"`
	Exclude  []string       `yaml:"exclude"`
	Target   string         `yaml:"target"`
	First    string         `yaml:"first"`
	PageSize int            `yaml:"pageSize"`
	GroupBy  string         `yaml:"groupBy"`
	SortBy   string         `yaml:"sortBy"`
	Reverse  bool           `yaml:"reverse"`
	Metadata map[string]any `yaml:"metadata"`
	Content  string         `yaml:"content"`

	// File is the rule file the rule was declared in.
	File string `yaml:"-"`
}

// Validate checks that the rule is complete for its kind.
func (r Rule) Validate() error {
	invalid := func(msg string) error {
		return foundationerrors.ParseError(msg).
			WithContext("rule", r.Name).
			WithContext("path", r.File).
			Build()
	}

	switch r.Kind {
	case KindPage, KindPaginate, KindAggregate, KindGroup:
	case "":
		return invalid("structure rule has no kind")
	default:
		return invalid("unknown structure rule kind " + string(r.Kind))
	}
	if r.Source == "" {
		return invalid("structure rule has no source")
	}
	if r.Target == "" {
		return invalid("structure rule has no target")
	}
	if r.Kind == KindPaginate && r.PageSize <= 0 {
		return invalid("paginate rule needs a positive pageSize")
	}
	if r.Kind == KindGroup && r.GroupBy == "" {
		return invalid("group rule needs groupBy")
	}
	return nil
}

func (r Rule) metadata() vfs.Metadata {
	return vfs.Metadata(r.Metadata).Clone()
}
