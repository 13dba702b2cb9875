package match

import (
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type namedString string

type holder struct{ Name string }

func TestTypeCompatibility_String(t *testing.T) {
	tests := []struct {
		compat   TypeCompatibility
		expected string
	}{
		{TypeIdentical, "identical"},
		{TypeAssignable, "assignable"},
		{TypeWidening, "widening"},
		{TypeConvertible, "convertible"},
		{TypeNeedsTransform, "needs_transform"},
		{TypeIncompatible, "incompatible"},
		{TypeCompatibility(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.compat.String())
		})
	}
}

func TestTypeCompatibility_Score(t *testing.T) {
	ordered := []TypeCompatibility{
		TypeIncompatible,
		TypeNeedsTransform,
		TypeConvertible,
		TypeWidening,
		TypeAssignable,
		TypeIdentical,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Score(), ordered[i].Score(), "%s should score lower than %s", ordered[i-1], ordered[i])
	}

	assert.False(t, TypeConvertible.IsDirect())
	assert.True(t, TypeWidening.IsDirect())
	assert.True(t, TypeIdentical.IsDirect())
}

func TestScoreTypeCompatibility(t *testing.T) {
	intType := reflect.TypeFor[int]()
	int32Type := reflect.TypeFor[int32]()
	int64Type := reflect.TypeFor[int64]()
	stringType := reflect.TypeFor[string]()
	float64Type := reflect.TypeFor[float64]()

	tests := []struct {
		name     string
		source   reflect.Type
		target   reflect.Type
		expected TypeCompatibility
	}{
		{"identical int", intType, intType, TypeIdentical},
		{"identical string", stringType, stringType, TypeIdentical},
		{"interface satisfaction", reflect.TypeFor[*strings.Reader](), reflect.TypeFor[io.Reader](), TypeAssignable},
		{"anything to any", reflect.TypeFor[holder](), reflect.TypeFor[any](), TypeAssignable},
		{"int32 widens to int64", int32Type, int64Type, TypeWidening},
		{"int widens to int64", intType, int64Type, TypeWidening},
		{"int64 to int convertible", int64Type, intType, TypeConvertible},
		{"float64 to int convertible", float64Type, intType, TypeConvertible},
		{"int to string convertible", intType, stringType, TypeConvertible}, // Go allows int to string conversion (rune)
		{"named string convertible", reflect.TypeFor[namedString](), stringType, TypeConvertible},
		{"string to int needs transform", stringType, intType, TypeNeedsTransform},
		{"string to duration needs transform", stringType, reflect.TypeFor[time.Duration](), TypeNeedsTransform},
		{"map to struct needs transform", reflect.TypeFor[map[string]any](), reflect.TypeFor[*holder](), TypeNeedsTransform},
		{"bool to struct incompatible", reflect.TypeFor[bool](), reflect.TypeFor[holder](), TypeIncompatible},
		{"nil to pointer", nil, reflect.TypeFor[*holder](), TypeAssignable},
		{"nil to slice", nil, reflect.TypeFor[[]int](), TypeAssignable},
		{"nil to int", nil, intType, TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTypeCompatibility(tt.source, tt.target)
			assert.Equal(t, tt.expected, result.Compatibility, "reason: %s", result.Reason)
		})
	}
}

func TestScoreTypeCompatibility_Pointers(t *testing.T) {
	intType := reflect.TypeFor[int]()
	ptrIntType := reflect.TypeFor[*int]()

	tests := []struct {
		name     string
		source   reflect.Type
		target   reflect.Type
		expected TypeCompatibility
	}{
		{"identical *int", ptrIntType, ptrIntType, TypeIdentical},
		{"*int to int needs transform", ptrIntType, intType, TypeNeedsTransform},
		{"int to *int needs transform", intType, ptrIntType, TypeNeedsTransform},
		{"**int to int incompatible", reflect.TypeFor[**int](), intType, TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTypeCompatibility(tt.source, tt.target)
			assert.Equal(t, tt.expected, result.Compatibility, "reason: %s", result.Reason)
			assert.Equal(t, tt.target.String(), result.TargetType)
		})
	}
}

func TestIsNilable(t *testing.T) {
	assert.True(t, IsNilable(reflect.TypeFor[*int]()))
	assert.True(t, IsNilable(reflect.TypeFor[error]()))
	assert.True(t, IsNilable(reflect.TypeFor[map[string]int]()))
	assert.True(t, IsNilable(reflect.TypeFor[func()]()))
	assert.False(t, IsNilable(reflect.TypeFor[int]()))
	assert.False(t, IsNilable(reflect.TypeFor[holder]()))
}
