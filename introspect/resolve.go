package introspect

import (
	"reflect"

	"propbind/internal/common"
	"propbind/internal/match"
)

// SetProperty sets property name of target to value. Target must be a
// non-nil pointer. The setter is chosen among the overloads of name: first
// the best direct match (identical type, then assignable, then lossless
// numeric widening; ties keep overload order), then the first overload the
// converter can produce a value for. The setter is invoked exactly once; an
// error it returns is passed through unchanged.
func (c *Cache) SetProperty(target any, name string, value any, opts ...Option) (bool, error) {
	o := newCallOptions(opts)

	rv, err := settable(target, name, value)
	if err != nil {
		return false, err
	}

	tbl := c.Table(rv.Type())

	setters := tbl.Setters(name, o.allowBuilderPattern)
	if len(setters) == 0 {
		return false, &PropertyNotSettableError{
			Type:        common.TypeFullName(rv.Type()),
			Property:    name,
			ValueType:   valueTypeName(value),
			Reason:      "no setter",
			Suggestions: match.Suggest(name, tbl.Writable(o.allowBuilderPattern), 3),
		}
	}

	setter, arg, ok := c.resolve(setters, value, o.converter)
	if !ok {
		return false, &PropertyNotSettableError{
			Type:      common.TypeFullName(rv.Type()),
			Property:  name,
			ValueType: valueTypeName(value),
			Reason:    "no setter accepts the value",
		}
	}

	if err := setter.Set(rv, arg); err != nil {
		return false, err
	}

	return true, nil
}

func settable(target any, name string, value any) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return rv, &PropertyNotSettableError{
			Type:      typeName(rv),
			Property:  name,
			ValueType: valueTypeName(value),
			Reason:    "target is not a non-nil pointer",
		}
	}

	return rv, nil
}

func (c *Cache) resolve(setters []*Accessor, value any, conv Converter) (*Accessor, reflect.Value, bool) {
	rv := reflect.ValueOf(value)

	var valueType reflect.Type
	if rv.IsValid() {
		valueType = rv.Type()
	}

	var best *Accessor
	bestCompat := match.TypeIncompatible

	for _, s := range setters {
		if s.Type == nil {
			continue
		}

		compat := match.ScoreTypeCompatibility(valueType, s.Type).Compatibility
		if compat.IsDirect() && compat > bestCompat {
			best, bestCompat = s, compat
		}
	}

	if best != nil {
		return best, directArg(rv, best.Type), true
	}

	if conv == nil {
		return nil, reflect.Value{}, false
	}

	for _, s := range setters {
		if s.Type == nil {
			continue
		}

		converted, err := conv.Convert(s.Type, value)
		if err != nil {
			c.logger.Debug("converter rejected overload",
				"setter", s.String(),
				"value_type", valueTypeName(value),
				"error", err)
			continue
		}

		if arg, ok := argFor(converted, s.Type); ok {
			c.logger.Debug("converted value for overload",
				"setter", s.String(),
				"value_type", valueTypeName(value))
			return s, arg, true
		}
	}

	return nil, reflect.Value{}, false
}

func directArg(rv reflect.Value, t reflect.Type) reflect.Value {
	if !rv.IsValid() {
		return reflect.Zero(t)
	}

	if rv.Type().AssignableTo(t) {
		return rv
	}

	return rv.Convert(t)
}

func argFor(v any, t reflect.Type) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		if match.IsNilable(t) {
			return reflect.Zero(t), true
		}

		return reflect.Value{}, false
	}

	if rv.Type().AssignableTo(t) {
		return rv, true
	}

	return reflect.Value{}, false
}

func typeName(rv reflect.Value) string {
	if !rv.IsValid() {
		return "<nil>"
	}

	return common.TypeFullName(rv.Type())
}

func valueTypeName(v any) string {
	if v == nil {
		return "<nil>"
	}

	return reflect.TypeOf(v).String()
}
