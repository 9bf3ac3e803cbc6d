// Package records defines the generic record shape passed between pipeline
// stages: a mapping from field name to an optional value. Values are either
// string or nil; nil marks a field that was absent in the source row, which
// is distinct from an empty string.
package records

// Record is one normalized row keyed by lowercase field name.
type Record map[string]any

// String returns the string value for key. Absent keys, nil values, and
// non-string values all yield the empty string; ok reports whether the key
// held a non-nil string.
func (r Record) String(key string) (string, bool) {
	if v, exists := r[key]; exists {
		if s, isStr := v.(string); isStr {
			return s, true
		}
	}
	return "", false
}

// StringOr returns the string value for key, or def when the field is
// absent or nil. This is the lookup used when binding insert parameters.
func (r Record) StringOr(key, def string) string {
	if s, ok := r.String(key); ok {
		return s
	}
	return def
}
