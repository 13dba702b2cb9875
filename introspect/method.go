package introspect

import (
	"reflect"

	"propbind/internal/common"
)

var errorType = reflect.TypeFor[error]()

// Method is the part of a method signature that accessor classification
// looks at. It is produced from reflection at runtime and from go/types by
// the static analyzer.
type Method struct {
	Name string
	// Index is the position in the owner's method set.
	Index  int
	NumIn  int // receiver excluded
	NumOut int
	// Param is the type of the only parameter and Result the type of the first
	// result. Both stay nil when absent or unknown.
	Param  reflect.Type
	Result reflect.Type

	ReturnsBool  bool // first result is bool, a named bool or *bool
	ReturnsError bool // last result is error
	ReturnsSelf  bool // first result is the receiver type, or a type it embeds or implements
}

// Introspector enumerates the exported methods of a runtime type.
type Introspector interface {
	Methods(t reflect.Type) []Method
}

// ReflectIntrospector lists methods through package reflect, in method set
// order (sorted by name).
type ReflectIntrospector struct{}

// Methods implements Introspector.
func (ReflectIntrospector) Methods(t reflect.Type) []Method {
	methods := make([]Method, 0, t.NumMethod())
	for i := range t.NumMethod() {
		methods = append(methods, MethodOf(t, t.Method(i)))
	}

	return methods
}

// MethodOf describes m, a method of owner. A nil owner describes a method
// whose receiver is unknown; it is never a builder setter.
func MethodOf(owner reflect.Type, m reflect.Method) Method {
	ft := m.Type

	// Signatures of concrete types start with the receiver
	offset := 0
	if owner != nil && owner.Kind() != reflect.Interface {
		offset = 1
	}

	res := Method{
		Name:   m.Name,
		Index:  m.Index,
		NumIn:  ft.NumIn() - offset,
		NumOut: ft.NumOut(),
	}

	if res.NumIn == 1 {
		res.Param = ft.In(offset)
	}

	if res.NumOut > 0 {
		first := ft.Out(0)
		res.Result = first
		res.ReturnsBool = isBool(first)
		res.ReturnsError = ft.Out(res.NumOut-1) == errorType
		res.ReturnsSelf = owner != nil && isSelf(owner, first)
	}

	return res
}

// describe turns a method obtained from a type's method set into a Method.
func describe(m reflect.Method) Method {
	if m.Func.IsValid() {
		return MethodOf(m.Type.In(0), m)
	}

	// interface method, the receiver is not part of the signature
	return MethodOf(nil, m)
}

func isBool(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Bool
}

// isSelf reports whether a method of owner returning r returns "itself":
// r is owner (or its pointer or value form) or a type owner embeds.
// Interfaces only count when owner is that interface.
func isSelf(owner, r reflect.Type) bool {
	if r.Kind() == reflect.Interface {
		return r == owner && r != errorType
	}

	if common.Indirect(r) == common.Indirect(owner) {
		return true
	}

	return embeds(owner, r, map[reflect.Type]bool{})
}

// embeds reports whether the struct behind t embeds target, directly or
// through other embedded structs. Both E and *E embedded fields match a
// *E target.
func embeds(t, target reflect.Type, seen map[reflect.Type]bool) bool {
	t = common.Indirect(t)
	if t.Kind() != reflect.Struct || seen[t] {
		return false
	}
	seen[t] = true

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}

		ft := f.Type
		if ft == target || common.Indirect(ft) == common.Indirect(target) {
			return true
		}

		if embeds(ft, target, seen) {
			return true
		}
	}

	return false
}
