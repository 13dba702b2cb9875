// Package binding loads flat property sets and binds them onto values.
//
// Sources are YAML, TOML and dotenv files read through an afero.Fs, and URI
// query strings. Nested maps are flattened into dotted keys, so
//
//	db:
//	  host: localhost
//
// becomes the property "db.host". A Binder strips an option prefix and sets
// the remaining properties through package introspect, reporting unknown keys
// and rejected values as diagnostics instead of stopping at the first one.
package binding
