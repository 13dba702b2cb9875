package introspect

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"propbind/internal/common"
)

// Role is the part a method plays for a property.
type Role int

const (
	RoleNone Role = iota
	RoleGetter
	RoleSetter
	RoleBuilderSetter
)

func (r Role) String() string {
	switch r {
	case RoleGetter:
		return "getter"
	case RoleSetter:
		return "setter"
	case RoleBuilderSetter:
		return "builder setter"
	case RoleNone:
		return "none"
	default:
		return common.UnknownStr
	}
}

// IsSetter reports whether r is one of the setter roles.
func (r Role) IsSetter() bool {
	return r == RoleSetter || r == RoleBuilderSetter
}

const (
	getPrefix = "Get"
	isPrefix  = "Is"
	setPrefix = "Set"
)

// Classify reports the accessor role of m.
func Classify(m Method) Role {
	if _, ok := wordAfter(m.Name, getPrefix); ok && isGetterShape(m) {
		return RoleGetter
	}

	if _, ok := wordAfter(m.Name, isPrefix); ok && isGetterShape(m) && m.ReturnsBool {
		return RoleGetter
	}

	if _, ok := wordAfter(m.Name, setPrefix); ok {
		return SetterShape(m)
	}

	return RoleNone
}

func isGetterShape(m Method) bool {
	if m.NumIn != 0 {
		return false
	}

	return m.NumOut == 1 || (m.NumOut == 2 && m.ReturnsError)
}

// SetterShape classifies m by its signature only, ignoring the name. It is
// how additional overloads are validated.
func SetterShape(m Method) Role {
	if m.NumIn != 1 {
		return RoleNone
	}

	switch {
	case m.NumOut == 0:
		return RoleSetter
	case m.NumOut == 1 && m.ReturnsError:
		return RoleSetter
	case m.ReturnsSelf && (m.NumOut == 1 || (m.NumOut == 2 && m.ReturnsError)):
		return RoleBuilderSetter
	}

	return RoleNone
}

// wordAfter returns the rest of name after prefix when it starts a new word.
func wordAfter(name, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}

	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 || !unicode.IsUpper(r) {
		return "", false
	}

	return rest, true
}

// PropertyName derives the property a Get, Is or Set method accesses:
// GetCustomerId -> customerId. It returns "" for other names.
func PropertyName(methodName string) string {
	for _, prefix := range []string{getPrefix, isPrefix, setPrefix} {
		if rest, ok := wordAfter(methodName, prefix); ok {
			return common.Decapitalize(rest)
		}
	}

	return ""
}

// IsGetter reports whether m is a getter.
func IsGetter(m reflect.Method) bool {
	return Classify(describe(m)) == RoleGetter
}

// IsSetter reports whether m is a setter. Builder setters count only when
// allowBuilderPattern is given and true.
func IsSetter(m reflect.Method, allowBuilderPattern ...bool) bool {
	switch Classify(describe(m)) {
	case RoleSetter:
		return true
	case RoleBuilderSetter:
		return len(allowBuilderPattern) > 0 && allowBuilderPattern[0]
	default:
		return false
	}
}
