// Package diagnostic collects structured warnings and errors produced while
// binding a property set onto a value.
//
// Key capabilities:
//   - Unknown property warnings with "did you mean" suggestions
//   - Values that no setter overload accepts
//   - Setter failures, keeping the original error for errors.Is
package diagnostic
