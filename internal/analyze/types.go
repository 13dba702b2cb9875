package analyze

import (
	"cmp"
	"go/types"
	"maps"
	"slices"

	"propbind/internal/common"
	"propbind/introspect"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "propbind/examples/beans"
	Name    string // e.g., "ExampleBean"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a named type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindStruct             // struct type
	TypeKindInterface          // interface type
	TypeKindAlias              // named type over anything else (e.g. type Level int)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes an analyzed named type.
type TypeInfo struct {
	ID     TypeID
	Kind   TypeKind
	GoType types.Type // The original go/types.Type
	// Methods is the classifier input: the exported method set of *T, or of
	// T for interfaces, in name order.
	Methods []introspect.Method
	// Properties in discovery order, as the runtime cache orders them.
	Properties []PropertyInfo
}

// Property returns the property called name.
func (t *TypeInfo) Property(name string) (*PropertyInfo, bool) {
	i := slices.IndexFunc(t.Properties, func(p PropertyInfo) bool { return p.Name == name })
	if i < 0 {
		return nil, false
	}

	return &t.Properties[i], true
}

// PropertyInfo groups the accessors of one property.
type PropertyInfo struct {
	Name    string
	Getter  *AccessorInfo
	Setters []AccessorInfo
}

// AccessorInfo describes one accessor method found in source.
type AccessorInfo struct {
	Method string
	Role   introspect.Role
	// Type is the value type of a getter or the parameter type of a setter,
	// qualified relative to the analyzed package.
	Type string
	// Promoted is set for methods declared on an embedded type.
	Promoted bool
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Sorted returns every type ordered by package path and name.
func (g *TypeGraph) Sorted() []*TypeInfo {
	return slices.SortedFunc(maps.Values(g.Types), func(a, b *TypeInfo) int {
		return cmp.Or(cmp.Compare(a.ID.PkgPath, b.ID.PkgPath), cmp.Compare(a.ID.Name, b.ID.Name))
	})
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}

// Setter returns the primary setter, the one a plain SetXxx declares.
func (p PropertyInfo) Setter() (AccessorInfo, bool) {
	return common.First(p.Setters)
}

// Overloaded reports whether more than one setter can write the property.
func (p PropertyInfo) Overloaded() bool {
	return common.IsMultiple(p.Setters)
}
