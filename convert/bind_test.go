package convert_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/convert"
	"propbind/examples/beans"
	"propbind/introspect"
)

func TestServiceAsConverter(t *testing.T) {
	t.Parallel()

	cache := introspect.New()
	require.NoError(t, cache.RegisterOverload(reflect.TypeFor[*beans.MyOverloadedBean](), "bean", "SetBeanName"))

	conv := introspect.WithConverter(convert.New())

	bean := &beans.MyOverloadedBean{}
	ok, err := cache.SetProperty(bean, "bean", []byte("Claus"), conv)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Claus", bean.GetName())

	server := &beans.ServerBean{}
	props := map[string]any{
		"port":    "8080",
		"timeout": "2 days",
		"secure":  "on",
		"host":    []byte("localhost"),
	}

	applied, err := cache.SetProperties(server, props, "", conv)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Empty(t, props)
	assert.Equal(t, 8080, server.GetPort())
	assert.Equal(t, 48*time.Hour, server.GetTimeout())
	assert.True(t, server.IsSecure())
	assert.Equal(t, "localhost", server.GetHost())

	// converted values still go through the setter's own validation
	_, err = cache.SetProperty(server, "port", "70000", conv)
	assert.ErrorIs(t, err, beans.ErrInvalidPort)
}
