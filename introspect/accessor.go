package introspect

import (
	"reflect"
	"slices"

	"propbind/internal/common"
)

// Accessor describes one getter or setter of a type. Accessors are owned by
// the cache and never change once published.
type Accessor struct {
	Owner    reflect.Type
	Property string
	Method   string
	Role     Role
	// Type is the value type of a getter or the parameter type of a setter.
	Type reflect.Type

	index    int
	errIndex int // position of the error result, -1 when there is none
}

func newAccessor(owner reflect.Type, property string, m Method, role Role) *Accessor {
	a := &Accessor{
		Owner:    owner,
		Property: property,
		Method:   m.Name,
		Role:     role,
		index:    m.Index,
		errIndex: -1,
	}

	if role == RoleGetter {
		a.Type = m.Result
	} else {
		a.Type = m.Param
	}

	if m.ReturnsError {
		switch {
		case role == RoleGetter && m.NumOut == 2,
			role == RoleSetter && m.NumOut == 1,
			role == RoleBuilderSetter && m.NumOut == 2:
			a.errIndex = m.NumOut - 1
		}
	}

	return a
}

func (a *Accessor) String() string {
	return common.TypeFullName(a.Owner) + "." + a.Method
}

// Get invokes a getter on target, which must have the accessor's owner type.
// An error returned by the getter is passed through unchanged.
func (a *Accessor) Get(target reflect.Value) (any, error) {
	out := target.Method(a.index).Call(nil)
	if err := a.resultErr(out); err != nil {
		return nil, err
	}

	return out[0].Interface(), nil
}

// Set invokes a setter on target with arg, which must be assignable to the
// parameter type.
func (a *Accessor) Set(target, arg reflect.Value) error {
	out := target.Method(a.index).Call([]reflect.Value{arg})

	return a.resultErr(out)
}

func (a *Accessor) resultErr(out []reflect.Value) error {
	if a.errIndex < 0 {
		return nil
	}

	err, _ := out[a.errIndex].Interface().(error)

	return err
}

// Property groups the accessors of one property name.
type Property struct {
	Name   string
	Getter *Accessor
	// Setters is the overload set: the Set<Name> method first, then
	// registered overloads in registration order.
	Setters []*Accessor
}

// WritableBy returns the setters usable for binding.
func (p *Property) WritableBy(allowBuilderPattern bool) []*Accessor {
	if allowBuilderPattern {
		return p.Setters
	}

	return slices.DeleteFunc(slices.Clone(p.Setters), func(a *Accessor) bool {
		return a.Role == RoleBuilderSetter
	})
}

// Table is the accessor table of one runtime type.
type Table struct {
	Type reflect.Type

	properties map[string]*Property
	order      []string
}

type overload struct {
	property string
	method   string
}

// BuildTable groups methods into a table the way the cache does. t may be nil
// when the methods do not come from a runtime type.
func BuildTable(t reflect.Type, methods []Method) *Table {
	return buildTable(t, methods, nil)
}

func buildTable(t reflect.Type, methods []Method, overloads []overload) *Table {
	tbl := &Table{Type: t, properties: make(map[string]*Property)}

	for _, m := range methods {
		role := Classify(m)
		if role == RoleNone {
			continue
		}

		a := newAccessor(t, PropertyName(m.Name), m, role)
		p := tbl.property(a.Property)

		if role == RoleGetter {
			// IsXxx wins over GetXxx
			if p.Getter == nil || isIsGetter(m.Name) {
				p.Getter = a
			}

			continue
		}

		p.Setters = append(p.Setters, a)
	}

	for _, o := range overloads {
		idx := slices.IndexFunc(methods, func(m Method) bool { return m.Name == o.method })
		if idx < 0 {
			continue
		}

		m := methods[idx]
		role := SetterShape(m)
		if !role.IsSetter() {
			continue
		}

		p := tbl.property(o.property)
		if slices.ContainsFunc(p.Setters, func(a *Accessor) bool { return a.Method == o.method }) {
			continue
		}
		p.Setters = append(p.Setters, newAccessor(t, o.property, m, role))
	}

	return tbl
}

func isIsGetter(name string) bool {
	_, ok := wordAfter(name, isPrefix)

	return ok
}

func (t *Table) property(name string) *Property {
	if p, ok := t.properties[name]; ok {
		return p
	}

	p := &Property{Name: name}
	t.properties[name] = p
	t.order = append(t.order, name)

	return p
}

// Property returns the accessors of name.
func (t *Table) Property(name string) (*Property, bool) {
	p, ok := t.properties[name]

	return p, ok
}

// Names lists every property in discovery order.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

func (t *Table) Len() int {
	return len(t.order)
}

// Getter returns the getter of name or nil.
func (t *Table) Getter(name string) *Accessor {
	if p, ok := t.properties[name]; ok {
		return p.Getter
	}

	return nil
}

// Setters returns the overload set of name.
func (t *Table) Setters(name string, allowBuilderPattern bool) []*Accessor {
	if p, ok := t.properties[name]; ok {
		return p.WritableBy(allowBuilderPattern)
	}

	return nil
}

// Readable lists the properties that have a getter, in discovery order.
func (t *Table) Readable() []string {
	return t.filter(func(p *Property) bool { return p.Getter != nil })
}

// Writable lists the properties that have at least one setter.
func (t *Table) Writable(allowBuilderPattern bool) []string {
	return t.filter(func(p *Property) bool { return len(p.WritableBy(allowBuilderPattern)) > 0 })
}

func (t *Table) filter(keep func(p *Property) bool) []string {
	var names []string
	for _, name := range t.order {
		if keep(t.properties[name]) {
			names = append(names, name)
		}
	}

	return names
}
