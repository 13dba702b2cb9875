package binding

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/afero"

	"propbind/convert"
	"propbind/internal/common"
	"propbind/internal/diagnostic"
	"propbind/internal/match"
	"propbind/introspect"
)

// Binder sets property sets onto values.
type Binder struct {
	cache     *introspect.Cache
	converter introspect.Converter
	prefix    string
	logger    *slog.Logger
}

type Option func(*Binder)

// WithCache binds through cache instead of introspect.DefaultCache.
func WithCache(cache *introspect.Cache) Option {
	return func(b *Binder) {
		b.cache = cache
	}
}

// WithConverter replaces the default convert.Service.
func WithConverter(c introspect.Converter) Option {
	return func(b *Binder) {
		b.converter = c
	}
}

// WithPrefix binds only the keys under prefix, with the prefix stripped.
func WithPrefix(prefix string) Option {
	return func(b *Binder) {
		b.prefix = prefix
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBinder creates a binder using introspect.DefaultCache and a default
// convert.Service.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{
		cache:     introspect.DefaultCache,
		converter: convert.New(),
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Bind sets every property under the binder prefix onto target, in key order.
// It does not stop at failures: keys without a setter become warnings with
// suggestions, values no setter accepts and setter failures become errors.
// props is not modified.
func (b *Binder) Bind(target any, props Properties) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		diags.AddError(diagnostic.CodeNotSettable, "", "", fmt.Errorf("cannot bind onto %T: %w", target, introspect.ErrPropertyNotSettable))
		return diags
	}

	typeName := common.TypeFullName(rv.Type())
	tbl := b.cache.Table(rv.Type())

	for _, key := range props.Keys() {
		name, ok := strings.CutPrefix(key, b.prefix)
		if !ok || name == "" {
			continue
		}

		_, err := b.cache.SetProperty(target, name, props[key], introspect.WithConverter(b.converter))

		var notSettable *introspect.PropertyNotSettableError
		switch {
		case err == nil:
			diags.AddInfo(diagnostic.CodeApplied, "applied", typeName, key)

		case errors.As(err, &notSettable) && len(tbl.Setters(name, true)) == 0:
			suggestions := notSettable.Suggestions
			if len(suggestions) == 0 {
				// nested keys often end in a property name
				suggestions = match.Suggest(match.LastSegment(name), tbl.Writable(true), 3)
			}
			diags.AddWarning(diagnostic.CodeUnknownProperty, "no such property", typeName, key, suggestions...)

		case errors.As(err, &notSettable):
			diags.AddError(diagnostic.CodeNotSettable, typeName, key, err)

		default:
			diags.AddError(diagnostic.CodeSetterFailed, typeName, key, err)
		}
	}

	b.logger.Debug("properties bound",
		slog.String("type", typeName),
		slog.String("prefix", b.prefix),
		slog.Int("applied", len(diags.Infos)),
		slog.Int("warnings", len(diags.Warnings)),
		slog.Int("errors", len(diags.Errors)))

	return diags
}

// BindFile loads path from fs and binds it onto target.
func (b *Binder) BindFile(fs afero.Fs, path string, target any) (diagnostic.Diagnostics, error) {
	props, err := LoadFile(fs, path)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	return b.Bind(target, props), nil
}
