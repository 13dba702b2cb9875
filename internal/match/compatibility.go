package match

import (
	"reflect"

	"propbind/internal/common"
	"propbind/primitive"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be converted.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means conversion requires a conversion service.
	TypeNeedsTransform
	// TypeConvertible means types are convertible using Go's type conversion,
	// possibly losing information (int64 -> int8, int -> string).
	TypeConvertible
	// TypeWidening means a number converts into a wider number without loss.
	TypeWidening
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictWidening       = "widening"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeWidening:
		return VerdictWidening
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// IsDirect reports whether a value can be passed without a conversion service.
func (c TypeCompatibility) IsDirect() bool {
	return c >= TypeWidening
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string // String representation of source type
	TargetType    string // String representation of target type
}

// ScoreTypeCompatibility determines the compatibility between a source and target type.
// A nil source stands for an untyped nil value.
func ScoreTypeCompatibility(source, target reflect.Type) TypeCompatibilityResult {
	sourceStr := "nil"
	if source != nil {
		sourceStr = source.String()
	}
	targetStr := target.String()

	result := func(c TypeCompatibility, reason string) TypeCompatibilityResult {
		return TypeCompatibilityResult{
			Compatibility: c,
			Reason:        reason,
			SourceType:    sourceStr,
			TargetType:    targetStr,
		}
	}

	// Untyped nil fits every nilable target
	if source == nil {
		if IsNilable(target) {
			return result(TypeAssignable, "nil is assignable to target")
		}

		return result(TypeIncompatible, "nil is not assignable to target")
	}

	// Check for identical types
	if source == target {
		return result(TypeIdentical, "types are identical")
	}

	// Check for assignability (interface satisfaction, named/unnamed identity)
	if source.AssignableTo(target) {
		return result(TypeAssignable, "source is assignable to target")
	}

	// Lossless numeric widening
	if primitive.IsSafeNumber(source, target) {
		return result(TypeWidening, "source widens into target")
	}

	// Check for convertibility (numeric conversions, string/[]byte, etc.)
	if source.ConvertibleTo(target) {
		return result(TypeConvertible, "source is convertible to target")
	}

	// Check for special cases that might need transforms
	if needsTransform(source, target) {
		return result(TypeNeedsTransform, "types require a conversion service")
	}

	return result(TypeIncompatible, "types are not compatible")
}

// needsTransform checks for cases where types might be convertible via a conversion service.
func needsTransform(source, target reflect.Type) bool {
	// Pointer to non-pointer or vice versa (might be liftable)
	if source.Kind() == reflect.Pointer && target.Kind() != reflect.Pointer {
		// *T -> T (dereference possible if not nil)
		inner := ScoreTypeCompatibility(source.Elem(), target)
		if inner.Compatibility >= TypeConvertible {
			return true
		}
	}

	if source.Kind() != reflect.Pointer && target.Kind() == reflect.Pointer {
		// T -> *T (take address)
		inner := ScoreTypeCompatibility(source, target.Elem())
		if inner.Compatibility >= TypeConvertible {
			return true
		}
	}

	// Text and numbers have registered conversions in primitive
	srcKind := primitive.FromReflectType(source)
	dstKind := primitive.FromReflectType(target)
	if srcKind != 0 && dstKind != 0 &&
		primitive.IsAllowed(primitive.ConversionPair{From: srcKind, To: dstKind}, primitive.CategoryAll) {
		return true
	}

	// Slice to slice with different element types
	if source.Kind() == reflect.Slice && target.Kind() == reflect.Slice {
		elemCompat := ScoreTypeCompatibility(source.Elem(), target.Elem())
		if elemCompat.Compatibility >= TypeNeedsTransform {
			return true
		}
	}

	// Maps and structs decode into structs
	targetBase := common.Indirect(target)
	if targetBase.Kind() == reflect.Struct {
		sourceBase := common.Indirect(source)
		if sourceBase.Kind() == reflect.Struct || sourceBase.Kind() == reflect.Map {
			return true
		}
	}

	return false
}

// IsNilable reports whether a nil value can be assigned to t.
func IsNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
