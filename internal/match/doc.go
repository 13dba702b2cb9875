// Package match provides name normalization, Levenshtein distance calculation,
// type compatibility scoring and property name suggestions.
//
// Key functions:
//   - ScoreTypeCompatibility: ranks how directly a value type fits a setter parameter
//   - NormalizeIdent / NormalizeAccessor: normalize identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: proposes known property names for an unknown one
package match
