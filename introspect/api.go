package introspect

import "reflect"

// TableOf returns the accessor table of t from DefaultCache.
func TableOf(t reflect.Type) *Table {
	return DefaultCache.Table(t)
}

// SetProperty calls DefaultCache.SetProperty.
func SetProperty(target any, name string, value any, opts ...Option) (bool, error) {
	return DefaultCache.SetProperty(target, name, value, opts...)
}

// SetProperties calls DefaultCache.SetProperties.
func SetProperties(target any, props map[string]any, prefix string, opts ...Option) (bool, error) {
	return DefaultCache.SetProperties(target, props, prefix, opts...)
}

// GetProperty calls DefaultCache.GetProperty.
func GetProperty(source any, name string) (any, error) {
	return DefaultCache.GetProperty(source, name)
}

// GetProperties calls DefaultCache.GetProperties.
func GetProperties(source any, into Sink, prefix string, opts ...Option) (int, error) {
	return DefaultCache.GetProperties(source, into, prefix, opts...)
}

// Project calls DefaultCache.Project.
func Project(source any, prefix string, opts ...Option) (*PropertyMap, error) {
	return DefaultCache.Project(source, prefix, opts...)
}

// GetPropertyGetter calls DefaultCache.GetPropertyGetter.
func GetPropertyGetter(t reflect.Type, name string) (*Accessor, error) {
	return DefaultCache.GetPropertyGetter(t, name)
}

// GetPropertySetter calls DefaultCache.GetPropertySetter.
func GetPropertySetter(t reflect.Type, name string) (*Accessor, error) {
	return DefaultCache.GetPropertySetter(t, name)
}

// RegisterOverload calls DefaultCache.RegisterOverload.
func RegisterOverload(t reflect.Type, property, method string) error {
	return DefaultCache.RegisterOverload(t, property, method)
}
