package introspect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/examples/beans"
)

type flag bool

type shapes struct{}

func (shapes) GetCount() (int, error)          { return 0, nil }
func (shapes) IsOn() flag                      { return true }
func (shapes) IsMaybe() *bool                  { return nil }
func (shapes) GetPair() (int, int)             { return 0, 0 }
func (shapes) Get() int                        { return 0 }
func (shapes) GetNothing()                     {}
func (shapes) SetTwo(a, b int)                 {}
func (shapes) SetChecked(v int) error          { return nil }
func (shapes) SetCount(v int) int              { return v }
func (shapes) SetPrevious(v string) any        { return v }
func (s shapes) SetSelf(v int) (shapes, error) { return s, nil }

func method(t *testing.T, typ reflect.Type, name string) reflect.Method {
	t.Helper()

	m, ok := typ.MethodByName(name)
	require.True(t, ok, "method %s not found on %s", name, typ)

	return m
}

func TestIsGetter(t *testing.T) {
	other := reflect.TypeFor[*beans.OtherExampleBean]()
	local := reflect.TypeFor[shapes]()

	tests := []struct {
		typ      reflect.Type
		name     string
		expected bool
	}{
		{other, "GetCustomerId", true},
		{other, "GetCompany", true},
		{other, "IsGoldCustomer", true},
		{other, "IsSilverCustomer", true},
		{other, "Issue", false},
		{other, "IsCompany", false},
		{other, "Settings", false},
		{other, "SetCompany", false},
		{other, "SetupSomething", false},
		{local, "GetCount", true},
		{local, "IsOn", true},
		{local, "IsMaybe", true},
		{local, "GetPair", false},
		{local, "Get", false},
		{local, "GetNothing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsGetter(method(t, tt.typ, tt.name)))
		})
	}
}

func TestIsSetter(t *testing.T) {
	other := reflect.TypeFor[*beans.OtherExampleBean]()
	local := reflect.TypeFor[shapes]()

	tests := []struct {
		typ     reflect.Type
		name    string
		plain   bool
		builder bool
	}{
		{other, "SetCompany", true, true},
		{other, "SetSilverCustomer", true, true},
		{other, "SetupSomething", false, false},
		{other, "Settings", false, false},
		{other, "GetCompany", false, false},
		{local, "SetTwo", false, false},
		{local, "SetChecked", true, true},
		{local, "SetCount", false, false},
		{local, "SetPrevious", false, false},
		{local, "SetSelf", false, true},
		{reflect.TypeFor[*beans.MyBuilderBean](), "SetName", false, true},
		{reflect.TypeFor[*beans.MyOtherBuilderBean](), "SetName", false, true},
		{reflect.TypeFor[*beans.MyOtherOtherBuilderBean](), "SetName", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"."+tt.name, func(t *testing.T) {
			m := method(t, tt.typ, tt.name)
			assert.Equal(t, tt.plain, IsSetter(m))
			assert.Equal(t, tt.plain, IsSetter(m, false))
			assert.Equal(t, tt.builder, IsSetter(m, true))
		})
	}
}

func TestIsSetterInterfaceMethod(t *testing.T) {
	type setter interface {
		SetName(string)
	}

	m := method(t, reflect.TypeFor[setter](), "SetName")
	assert.True(t, IsSetter(m))
	assert.False(t, IsGetter(m))
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		method   string
		expected string
	}{
		{"GetName", "name"},
		{"IsGoldCustomer", "goldCustomer"},
		{"SetCustomerId", "customerId"},
		{"GetURL", "uRL"},
		{"SetÄrger", "ärger"},
		{"Setup", ""},
		{"Issue", ""},
		{"Get", ""},
		{"Name", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.expected, PropertyName(tt.method))
		})
	}
}

func TestPropertyNameIgnoresLocale(t *testing.T) {
	t.Setenv("LANG", "tr_TR.UTF-8")
	t.Setenv("LC_ALL", "tr_TR.UTF-8")

	// a dotless lower-case i would be wrong here
	assert.Equal(t, "id", PropertyName("GetId"))
	assert.Equal(t, "isim", PropertyName("SetIsim"))
	assert.Equal(t, "iNDEX", PropertyName("GetINDEX"))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "getter", RoleGetter.String())
	assert.Equal(t, "setter", RoleSetter.String())
	assert.Equal(t, "builder setter", RoleBuilderSetter.String())
	assert.Equal(t, "none", RoleNone.String())
	assert.Equal(t, "unknown", Role(9).String())
	assert.True(t, RoleBuilderSetter.IsSetter())
	assert.False(t, RoleGetter.IsSetter())
}

func TestClassifyShapes(t *testing.T) {
	tests := []struct {
		name     string
		method   Method
		expected Role
	}{
		{"getter", Method{Name: "GetName", NumOut: 1}, RoleGetter},
		{"getter with error", Method{Name: "GetName", NumOut: 2, ReturnsError: true}, RoleGetter},
		{"two values", Method{Name: "GetName", NumOut: 2}, RoleNone},
		{"is without bool", Method{Name: "IsReady", NumOut: 1}, RoleNone},
		{"is with bool", Method{Name: "IsReady", NumOut: 1, ReturnsBool: true}, RoleGetter},
		{"setter", Method{Name: "SetName", NumIn: 1}, RoleSetter},
		{"setter with error", Method{Name: "SetName", NumIn: 1, NumOut: 1, ReturnsError: true}, RoleSetter},
		{"builder", Method{Name: "SetName", NumIn: 1, NumOut: 1, ReturnsSelf: true}, RoleBuilderSetter},
		{"builder with error", Method{Name: "SetName", NumIn: 1, NumOut: 2, ReturnsSelf: true, ReturnsError: true}, RoleBuilderSetter},
		{"lower case after prefix", Method{Name: "Setname", NumIn: 1}, RoleNone},
		{"no prefix", Method{Name: "Name", NumOut: 1}, RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.method))
		})
	}
}
