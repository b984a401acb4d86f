package stages

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/website-builder/internal/frontmatter"
)

// ComputeFingerprint returns the mdfp content fingerprint of a document. The
// fingerprint field itself is excluded, and the front matter is serialized
// with sorted keys and LF newlines so equal documents always hash equally.
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		forHash[k] = v
	}

	fm := ""
	if len(forHash) > 0 {
		serialized, err := frontmatter.SerializeYAML(forHash)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
