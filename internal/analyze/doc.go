// Package analyze classifies accessors from source instead of from runtime
// types.
//
// It uses golang.org/x/tools/go/packages with go/types to load packages and
// runs the accessor classifier of package introspect over the method set of
// every exported named type, so the result matches what the runtime cache
// builds for the same types.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: the kind of a named type and its properties
//   - PropertyInfo: getter and setters of one property, with their types
package analyze
