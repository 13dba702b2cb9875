package introspect

import (
	"errors"
	"iter"
	"reflect"
	"slices"

	"propbind/internal/common"
	"propbind/internal/match"
)

// classProperty is never projected.
const classProperty = "class"

// Sink receives projected properties.
type Sink interface {
	Put(key string, value any)
}

// MapSink stores projected properties in a plain map.
type MapSink map[string]any

func (m MapSink) Put(key string, value any) {
	m[key] = value
}

// PropertyMap is a string keyed map that remembers insertion order.
type PropertyMap struct {
	keys   []string
	values map[string]any
}

// NewPropertyMap returns an empty map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{values: make(map[string]any)}
}

// Put sets key, keeping its first insertion position.
func (m *PropertyMap) Put(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

func (m *PropertyMap) Get(key string) (any, bool) {
	v, ok := m.values[key]

	return v, ok
}

func (m *PropertyMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *PropertyMap) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates the entries in insertion order.
func (m *PropertyMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// Map copies the entries into a plain map.
func (m *PropertyMap) Map() map[string]any {
	out := make(map[string]any, len(m.keys))
	for key, v := range m.All() {
		out[key] = v
	}

	return out
}

// GetProperty reads property name of source.
func (c *Cache) GetProperty(source any, name string) (any, error) {
	rv, ok := readable(source)
	if !ok {
		return nil, &PropertyNotReadableError{Type: "<nil>", Property: name}
	}

	tbl := c.Table(rv.Type())

	getter := tbl.Getter(name)
	if getter == nil {
		return nil, &PropertyNotReadableError{
			Type:        common.TypeFullName(rv.Type()),
			Property:    name,
			Suggestions: match.Suggest(name, tbl.Readable(), 3),
		}
	}

	return getter.Get(rv)
}

// GetProperties stores prefix+name -> value into sink for every readable
// property of source, in discovery order, and returns how many were stored.
// Values are stored as the getters return them. Nothing is stored when a
// getter fails.
func (c *Cache) GetProperties(source any, into Sink, prefix string, opts ...Option) (int, error) {
	if into == nil {
		return 0, errors.New("introspect: nil sink")
	}

	m, err := c.Project(source, prefix, opts...)
	if err != nil {
		return 0, err
	}

	for key, v := range m.All() {
		into.Put(key, v)
	}

	return m.Len(), nil
}

// Project returns the readable properties of source as an ordered map.
func (c *Cache) Project(source any, prefix string, opts ...Option) (*PropertyMap, error) {
	o := newCallOptions(opts)

	rv, ok := readable(source)
	if !ok {
		return nil, ErrNilTarget
	}

	tbl := c.Table(rv.Type())
	out := NewPropertyMap()

	for _, name := range tbl.order {
		getter := tbl.properties[name].Getter
		if getter == nil || name == classProperty {
			continue
		}

		v, err := getter.Get(rv)
		if err != nil {
			return nil, err
		}

		if o.skipNil && isNil(v) {
			continue
		}

		out.Put(prefix+name, v)
	}

	return out, nil
}

// readable returns a value whose method set holds every accessor of source.
// Non-pointer values are copied into a new pointer so that pointer receiver
// getters are reachable.
func readable(source any) (reflect.Value, bool) {
	rv := reflect.ValueOf(source)
	if !rv.IsValid() {
		return rv, false
	}

	if rv.Kind() == reflect.Pointer {
		return rv, !rv.IsNil()
	}

	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)

	return ptr, true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	if match.IsNilable(rv.Type()) {
		return rv.IsNil()
	}

	return false
}
