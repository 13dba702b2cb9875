package analyze

import (
	"fmt"
	"go/types"
	"log/slog"

	"golang.org/x/tools/go/packages"

	"propbind/introspect"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

var errorType = types.Universe.Lookup("error").Type()

// Analyzer loads Go packages and builds accessor tables from their types.
type Analyzer struct {
	graph  *TypeGraph
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer. A nil logger discards.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Analyzer{
		graph:  NewTypeGraph(),
		logger: logger,
	}
}

// LoadPackages loads the specified packages and analyzes their exported named types.
// Patterns are standard Go package patterns (e.g., "./...", "propbind/examples/beans").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only exported type names; aliases share the method set of their target
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		info := a.analyzeNamed(named, types.RelativeTo(pkg.Types))
		info.ID = TypeID{PkgPath: pkg.PkgPath, Name: name}

		a.graph.Types[info.ID] = info
		pkgInfo.Types = append(pkgInfo.Types, info.ID)

		a.logger.Debug("type analyzed",
			slog.String("type", info.ID.String()),
			slog.String("kind", info.Kind.String()),
			slog.Int("properties", len(info.Properties)))
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeNamed classifies the method set of named.
func (a *Analyzer) analyzeNamed(named *types.Named, qualifier types.Qualifier) *TypeInfo {
	info := &TypeInfo{GoType: named}

	var recv types.Type = types.NewPointer(named)
	switch named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
	case *types.Interface:
		info.Kind = TypeKindInterface
		recv = named
	default:
		info.Kind = TypeKindAlias
	}

	valueTypes := make(map[string]string)
	promoted := make(map[string]bool)

	mset := types.NewMethodSet(recv)
	for i := range mset.Len() {
		sel := mset.At(i)

		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		m, sig := methodOf(recv, fn, i)
		info.Methods = append(info.Methods, m)
		promoted[m.Name] = len(sel.Index()) > 1

		switch {
		case sig.Params().Len() == 1:
			valueTypes[m.Name] = types.TypeString(sig.Params().At(0).Type(), qualifier)
		case sig.Results().Len() > 0:
			valueTypes[m.Name] = types.TypeString(sig.Results().At(0).Type(), qualifier)
		}
	}

	accessor := func(acc *introspect.Accessor) AccessorInfo {
		return AccessorInfo{
			Method:   acc.Method,
			Role:     acc.Role,
			Type:     valueTypes[acc.Method],
			Promoted: promoted[acc.Method],
		}
	}

	tbl := introspect.BuildTable(nil, info.Methods)
	for _, name := range tbl.Names() {
		p, _ := tbl.Property(name)

		prop := PropertyInfo{Name: name}
		if p.Getter != nil {
			getter := accessor(p.Getter)
			prop.Getter = &getter
		}

		for _, s := range p.Setters {
			prop.Setters = append(prop.Setters, accessor(s))
		}

		info.Properties = append(info.Properties, prop)
	}

	return info
}

// methodOf describes fn, a method of recv, the way introspect.MethodOf
// describes a runtime method.
func methodOf(recv types.Type, fn *types.Func, index int) (introspect.Method, *types.Signature) {
	sig := fn.Type().(*types.Signature)
	params, results := sig.Params(), sig.Results()

	m := introspect.Method{
		Name:   fn.Name(),
		Index:  index,
		NumIn:  params.Len(),
		NumOut: results.Len(),
	}

	if results.Len() > 0 {
		first := results.At(0).Type()
		m.ReturnsBool = isBool(first)
		m.ReturnsError = types.Identical(results.At(results.Len()-1).Type(), errorType)
		m.ReturnsSelf = isSelf(recv, first)
	}

	return m, sig
}

// isSelf mirrors the runtime rule: r is recv in pointer or value form, or a
// type recv embeds. Interfaces only count when recv is that interface.
func isSelf(recv, r types.Type) bool {
	if types.IsInterface(r) {
		return types.Identical(r, recv) && !types.Identical(r, errorType)
	}

	return types.Identical(deref(r), deref(recv)) || embeds(recv, r, map[types.Type]bool{})
}

func isBool(t types.Type) bool {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsBoolean != 0
}

// embeds reports whether the struct behind t embeds target, directly or
// through other embedded structs.
func embeds(t, target types.Type, seen map[types.Type]bool) bool {
	t = deref(t)

	st, ok := t.Underlying().(*types.Struct)
	if !ok || seen[t] {
		return false
	}
	seen[t] = true

	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		if types.Identical(deref(f.Type()), deref(target)) || embeds(f.Type(), target, seen) {
			return true
		}
	}

	return false
}

func deref(t types.Type) types.Type {
	for {
		p, ok := t.(*types.Pointer)
		if !ok {
			return t
		}
		t = p.Elem()
	}
}
