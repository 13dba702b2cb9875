package introspect

import "reflect"

// Converter is the conversion service consulted when no setter overload
// accepts a value directly.
type Converter interface {
	Convert(target reflect.Type, value any) (any, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(target reflect.Type, value any) (any, error)

func (f ConverterFunc) Convert(target reflect.Type, value any) (any, error) {
	return f(target, value)
}

// Option tunes a single bind or projection call.
type Option func(*callOptions)

type callOptions struct {
	converter           Converter
	allowBuilderPattern bool
	skipNil             bool
}

func newCallOptions(opts []Option) callOptions {
	o := callOptions{allowBuilderPattern: true}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithConverter sets the conversion service used after the direct match pass.
func WithConverter(c Converter) Option {
	return func(o *callOptions) {
		o.converter = c
	}
}

// WithBuilderPattern controls whether chaining setters may be used. It is on
// by default.
func WithBuilderPattern(allow bool) Option {
	return func(o *callOptions) {
		o.allowBuilderPattern = allow
	}
}

// SkipNil leaves properties whose value is nil out of a projection.
func SkipNil() Option {
	return func(o *callOptions) {
		o.skipNil = true
	}
}
