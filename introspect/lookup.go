package introspect

import (
	"reflect"

	"propbind/internal/common"
	"propbind/internal/match"
)

// GetPropertyGetter returns the getter of name on t. A struct type is looked up
// through its pointer so that pointer receiver getters are found. The error
// message is the missing signature, e.g. "example.com/pkg.Bean.GetName()".
func (c *Cache) GetPropertyGetter(t reflect.Type, name string) (*Accessor, error) {
	tbl := c.Table(lookupType(t))
	if getter := tbl.Getter(name); getter != nil {
		return getter, nil
	}

	return nil, &AccessorNotFoundError{
		Signature:   common.TypeFullName(t) + "." + getPrefix + common.Capitalize(name) + "()",
		Suggestions: match.Suggest(name, tbl.Readable(), 3),
	}
}

// GetPropertySetter returns the first setter of name on t, e.g. the method
// "example.com/pkg.Bean.SetName" that the error names when it is missing.
func (c *Cache) GetPropertySetter(t reflect.Type, name string) (*Accessor, error) {
	tbl := c.Table(lookupType(t))
	if setters := tbl.Setters(name, true); len(setters) > 0 {
		return setters[0], nil
	}

	return nil, &AccessorNotFoundError{
		Signature:   common.TypeFullName(t) + "." + setPrefix + common.Capitalize(name),
		Suggestions: match.Suggest(name, tbl.Writable(true), 3),
	}
}

func lookupType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return t
	}

	return reflect.PointerTo(t)
}
