package binding

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"propbind/introspect"
)

// Properties is a flat property set keyed by dotted names.
type Properties map[string]any

// Keys returns the keys in lexical order.
func (p Properties) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Has reports whether any key starts with prefix.
func (p Properties) Has(prefix string) bool {
	return introspect.HasProperties(p, prefix)
}

// Extract removes the keys under prefix and returns them without it.
func (p Properties) Extract(prefix string) Properties {
	return introspect.ExtractProperties(p, prefix)
}

// Merge copies other into p; keys of other win.
func (p Properties) Merge(other Properties) {
	maps.Copy(p, other)
}

// Digest is a stable hash of the property set: equal sets hash equally no
// matter how they were built.
func (p Properties) Digest() uint64 {
	d := xxhash.New()
	for _, key := range p.Keys() {
		_, _ = d.WriteString(strconv.Quote(key))
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(fmt.Sprintf("%T:%v", p[key], p[key]))
		_, _ = d.WriteString("\n")
	}

	return d.Sum64()
}

// Flatten turns nested maps into dotted keys. Other values, slices included,
// are kept as leaves.
func Flatten(nested map[string]any) Properties {
	out := Properties{}
	flattenInto(out, "", nested)

	return out
}

func flattenInto(out Properties, prefix string, nested map[string]any) {
	for key, v := range nested {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch vv := v.(type) {
		case map[string]any:
			flattenInto(out, name, vv)
		case map[any]any:
			flattenInto(out, name, stringKeys(vv))
		default:
			out[name] = v
		}
	}
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}

	return out
}
