package introspect

import (
	"maps"
	"slices"
	"strings"
)

// SetProperties sets every property of target found in props under prefix,
// in key order. Applied keys are removed from props; keys without a usable
// setter stay. The first setter error stops the walk. It reports whether any
// property was applied.
func (c *Cache) SetProperties(target any, props map[string]any, prefix string, opts ...Option) (bool, error) {
	if _, err := settable(target, prefix+"*", nil); err != nil {
		return false, err
	}

	applied := false

	for _, key := range slices.Sorted(maps.Keys(props)) {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok || name == "" {
			continue
		}

		set, err := c.SetProperty(target, name, props[key], opts...)
		if err != nil {
			if IsPropertyNotSettable(err) {
				continue
			}

			return applied, err
		}

		if set {
			delete(props, key)
			applied = true
		}
	}

	return applied, nil
}
