package introspect_test

import (
	"bytes"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/examples/beans"
	"propbind/introspect"
)

func TestCacheTable(t *testing.T) {
	t.Parallel()

	cache := introspect.New()
	typ := reflectType[*beans.AnotherExampleBean]()

	tbl := cache.Table(typ)
	assert.Equal(t, typ, tbl.Type)
	assert.Equal(t, []string{"children", "date", "id", "name", "price", "goldCustomer", "little"}, tbl.Names())
	assert.Equal(t, tbl.Names(), tbl.Readable())
	assert.Equal(t, tbl.Names(), tbl.Writable(false))

	p, ok := tbl.Property("goldCustomer")
	require.True(t, ok)
	assert.Equal(t, "IsGoldCustomer", p.Getter.Method)
	require.Len(t, p.Setters, 1)
	assert.Equal(t, "SetGoldCustomer", p.Setters[0].Method)

	assert.Same(t, tbl, cache.Table(typ))
	assert.Equal(t, introspect.Stats{Tables: 1, Hits: 1, Misses: 1}, cache.Stats())
}

func TestCacheConcurrentFill(t *testing.T) {
	t.Parallel()

	cache := introspect.New()
	typ := reflectType[*beans.OtherExampleBean]()

	const workers = 32

	tables := make([]*introspect.Table, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i] = cache.Table(typ)
		}()
	}
	wg.Wait()

	for _, tbl := range tables {
		assert.Same(t, tables[0], tbl)
	}

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(workers-1), stats.Hits)
}

func TestCacheConcurrentBinding(t *testing.T) {
	t.Parallel()

	cache := introspect.New()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			bean := &beans.ExampleBean{}
			_, err := cache.SetProperty(bean, "price", float64(i))
			assert.NoError(t, err)

			price, err := cache.GetProperty(bean, "price")
			assert.NoError(t, err)
			assert.Equal(t, float64(i), price)
		}()
	}
	wg.Wait()
}

func TestCacheRegisterOverload(t *testing.T) {
	t.Parallel()

	cache := introspect.New()

	before := cache.Table(overloadedType)
	require.NoError(t, cache.RegisterOverload(overloadedType, "bean", "SetBeanName"))
	require.NoError(t, cache.RegisterOverload(overloadedType, "bean", "SetBeanName"))

	after := cache.Table(overloadedType)
	assert.NotSame(t, before, after)

	setters := after.Setters("bean", true)
	require.Len(t, setters, 2)
	assert.Equal(t, "SetBean", setters[0].Method)
	assert.Equal(t, "SetBeanName", setters[1].Method)
	assert.Equal(t, "bean", setters[1].Property)

	// SetBeanName also sets its own property
	assert.Len(t, after.Setters("beanName", true), 1)

	assert.Equal(t, 1, cache.Stats().Overloads)
}

func TestCacheRegisterOverloadBaseSetterOnce(t *testing.T) {
	t.Parallel()

	cache := introspect.New()
	require.NoError(t, cache.RegisterOverload(overloadedType, "bean", "SetBean"))

	setters := cache.Table(overloadedType).Setters("bean", true)
	require.Len(t, setters, 1)
	assert.Equal(t, "SetBean", setters[0].Method)
}

func TestCacheRegisterOverloadOnValueType(t *testing.T) {
	t.Parallel()

	cache := introspect.New()
	require.NoError(t, cache.RegisterOverload(overloadedType.Elem(), "bean", "SetBeanName"))

	bean := &beans.MyOverloadedBean{}
	ok, err := cache.SetProperty(bean, "bean", "Claus")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Claus", bean.GetName())
}

func TestCacheRegisterOverloadErrors(t *testing.T) {
	t.Parallel()

	cache := introspect.New()

	err := cache.RegisterOverload(overloadedType, "bean", "SetNothing")
	assert.True(t, introspect.IsAccessorNotFound(err))
	assert.Equal(t, "propbind/examples/beans.MyOverloadedBean.SetNothing", err.Error())

	err = cache.RegisterOverload(overloadedType, "bean", "GetName")
	assert.ErrorIs(t, err, introspect.ErrPropertyNotSettable)

	assert.Zero(t, cache.Stats().Overloads)
}

func TestCacheForgetAndReset(t *testing.T) {
	t.Parallel()

	cache := introspect.New()
	typ := reflectType[*beans.ExampleBean]()

	first := cache.Table(typ)
	cache.Forget(typ)
	assert.NotSame(t, first, cache.Table(typ))

	require.NoError(t, cache.RegisterOverload(overloadedType, "bean", "SetBeanName"))
	cache.Reset()
	assert.Equal(t, introspect.Stats{}, cache.Stats())
	assert.Len(t, cache.Table(overloadedType).Setters("bean", true), 1)
}

func TestCacheLogsFills(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cache := introspect.New(introspect.WithLogger(logger))
	cache.Table(reflectType[*beans.ExampleBean]())

	assert.Contains(t, buf.String(), "accessor table built")
	assert.Contains(t, buf.String(), "properties=3")
}

type fixedIntrospector []introspect.Method

func (f fixedIntrospector) Methods(reflect.Type) []introspect.Method {
	return f
}

func TestCacheWithIntrospector(t *testing.T) {
	t.Parallel()

	cache := introspect.New(introspect.WithIntrospector(fixedIntrospector{
		{Name: "GetAlpha", NumOut: 1, Result: reflectType[int]()},
		{Name: "Helper", NumOut: 1},
	}))

	tbl := cache.Table(reflectType[*beans.ExampleBean]())
	assert.Equal(t, []string{"alpha"}, tbl.Names())
	assert.Equal(t, reflectType[int](), tbl.Getter("alpha").Type)
}

// gatedIntrospector blocks the first listing of one type until release is
// closed.
type gatedIntrospector struct {
	gated   reflect.Type
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedIntrospector(gated reflect.Type) *gatedIntrospector {
	return &gatedIntrospector{gated: gated, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedIntrospector) Methods(t reflect.Type) []introspect.Method {
	if t == g.gated {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}

	return introspect.ReflectIntrospector{}.Methods(t)
}

func TestCacheFillsTypesIndependently(t *testing.T) {
	t.Parallel()

	gate := newGatedIntrospector(reflectType[*beans.ServerBean]())
	cache := introspect.New(introspect.WithIntrospector(gate))

	slow := make(chan *introspect.Table)
	go func() { slow <- cache.Table(reflectType[*beans.ServerBean]()) }()
	<-gate.entered

	fast := make(chan *introspect.Table)
	go func() { fast <- cache.Table(reflectType[*beans.ExampleBean]()) }()

	select {
	case tbl := <-fast:
		assert.Equal(t, 3, tbl.Len())
	case <-time.After(5 * time.Second):
		close(gate.release)
		t.Fatal("fill of one type waited for the fill of another")
	}

	close(gate.release)
	assert.Positive(t, (<-slow).Len())
}

func TestCacheDoesNotPublishStaleFill(t *testing.T) {
	t.Parallel()

	gate := newGatedIntrospector(overloadedType)
	cache := introspect.New(introspect.WithIntrospector(gate))

	stale := make(chan *introspect.Table)
	go func() { stale <- cache.Table(overloadedType) }()
	<-gate.entered

	require.NoError(t, cache.RegisterOverload(overloadedType, "bean", "SetBeanName"))
	close(gate.release)

	assert.Len(t, (<-stale).Setters("bean", true), 1)
	assert.Len(t, cache.Table(overloadedType).Setters("bean", true), 2)
}
