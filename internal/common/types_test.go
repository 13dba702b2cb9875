package common

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sample struct{}

func TestTypeFullName(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		expected string
	}{
		{"named struct", reflect.TypeFor[sample](), "propbind/internal/common.sample"},
		{"pointer stripped", reflect.TypeFor[**sample](), "propbind/internal/common.sample"},
		{"stdlib type", reflect.TypeFor[time.Duration](), "time.Duration"},
		{"builtin", reflect.TypeFor[string](), "string"},
		{"unnamed", reflect.TypeFor[[]int](), "[]int"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeFullName(tt.typ))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Name", Capitalize("name"))
	assert.Equal(t, "GoldCustomer", Capitalize("goldCustomer"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Über", Capitalize("über"))

	assert.Equal(t, "name", Decapitalize("Name"))
	assert.Equal(t, "iD", Decapitalize("ID"))
	assert.Equal(t, "", Decapitalize(""))
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)

	assert.True(t, IsEmpty([]int{}))
	assert.True(t, IsMultiple([]int{1, 2}))
}
