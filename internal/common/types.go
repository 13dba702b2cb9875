package common

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the fallback text for enum values without a name.
const UnknownStr = "unknown"

// Indirect strips every pointer level from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// TypeFullName returns the package-qualified name of t with pointers stripped,
// e.g. "propbind/examples/beans.ExampleBean". Unnamed types use their Go syntax.
func TypeFullName(t reflect.Type) string {
	t = Indirect(t)
	if t == nil {
		return "<nil>"
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// Decapitalize lower-cases the first rune of s.
func Decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
