package vfs

// Reserved metadata keys. Any other key is pass-through data that stages must
// preserve untouched.
const (
	KeyLayout      = "layout"
	KeyTitle       = "title"
	KeyDate        = "date"
	KeyExcerpt     = "excerpt"
	KeyFingerprint = "fingerprint"
	KeySource      = "source"
	KeyCurrentPage = "currentPage"
	KeyTotalPages  = "totalPages"
	KeyPageSize    = "pageSize"
	KeyItems       = "items"
	KeyPrev        = "prev"
	KeyNext        = "next"
	KeyGroup       = "group"
)

// Metadata is the per-file key/value mapping accumulated across stages.
type Metadata map[string]any

// String returns the value at key if it is a non-empty string.
func (m Metadata) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok && s != ""
}

// Layout returns the layout named by the file, if any.
func (m Metadata) Layout() (string, bool) { return m.String(KeyLayout) }

// Title returns the file title, if any.
func (m Metadata) Title() (string, bool) { return m.String(KeyTitle) }

// SetDefault sets key only when it is not already present.
func (m Metadata) SetDefault(key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// Clone returns a deep copy of m. Nested maps and slices are copied so the
// clone can be mutated without touching the original.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

// Merge returns a deep copy of m with every key of over applied on top.
// Keys in over win on conflict; m itself is not modified.
func (m Metadata) Merge(over Metadata) Metadata {
	out := m.Clone()
	for k, v := range over {
		out[k] = deepCopyValue(v)
	}
	return out
}

// Map exposes the metadata as a plain map for templates and encoders.
func (m Metadata) Map() map[string]any { return map[string]any(m) }

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case Metadata:
		return val.Clone()
	case map[string]any:
		return map[string]any(Metadata(val).Clone())
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = deepCopyValue(item)
		}
		return result
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
