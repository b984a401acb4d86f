package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads every rule file in dir in lexical order. A missing
// directory yields no rules.
func LoadRules(dir string) ([]Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read structure directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isRuleFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var rules []Rule
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read structure file").
				Fatal().
				WithContext("path", name).
				Build()
		}
		parsed, err := ParseRules(name, data)
		if err != nil {
			return nil, err
		}
		rules = append(rules, parsed...)
	}
	return rules, nil
}

// ParseRules decodes one rule file. The file name selects the format.
func ParseRules(name string, data []byte) ([]Rule, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryParse, "invalid structure file").
			Fatal().
			WithContext("path", name).
			Build()
	}

	for i := range file.Rules {
		r := &file.Rules[i]
		r.File = name
		if r.Name == "" {
			r.Name = fmt.Sprintf("%s#%d", name, i+1)
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Rules, nil
}

func isRuleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json", ".jsonc":
		return !strings.HasPrefix(name, ".")
	}
	return false
}
