package introspect

import "strings"

// HasProperties reports whether props holds any key starting with prefix.
// With an empty prefix it reports whether props is non-empty.
func HasProperties[V any](props map[string]V, prefix string) bool {
	if prefix == "" {
		return len(props) > 0
	}

	for key := range props {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

// ExtractProperties removes the entries under prefix from props and returns
// them keyed by the rest of their key.
func ExtractProperties[V any](props map[string]V, prefix string) map[string]V {
	out := make(map[string]V)

	for key, v := range props {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}

		out[name] = v
		delete(props, key)
	}

	return out
}
