package introspect

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"propbind/internal/common"
)

// Cache memoizes accessor tables per runtime type. A table is built on first
// use, published once and never changes afterwards; it is dropped only by
// Reset, Forget or RegisterOverload.
type Cache struct {
	tables sync.Map // reflect.Type -> *Table
	fills  sync.Map // reflect.Type -> *sync.Mutex, one fill per type at a time

	mu        sync.Mutex // guards overloads and gen
	overloads map[reflect.Type][]overload
	gen       uint64 // bumped whenever a published table may be stale

	introspector Introspector
	logger       *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger receiving debug records about table fills and
// converter fallbacks.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIntrospector replaces the source of method sets.
func WithIntrospector(i Introspector) CacheOption {
	return func(c *Cache) {
		if i != nil {
			c.introspector = i
		}
	}
}

// New creates an empty cache.
func New(opts ...CacheOption) *Cache {
	c := &Cache{
		overloads:    make(map[reflect.Type][]overload),
		introspector: ReflectIntrospector{},
		logger:       slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DefaultCache backs the package level functions.
var DefaultCache = New()

// Table returns the accessor table of t, building it on first use.
func (c *Cache) Table(t reflect.Type) *Table {
	if tbl, ok := c.tables.Load(t); ok {
		c.hits.Add(1)
		return tbl.(*Table)
	}

	fill, _ := c.fills.LoadOrStore(t, new(sync.Mutex))
	fill.(*sync.Mutex).Lock()
	defer fill.(*sync.Mutex).Unlock()

	// another caller may have filled it while we waited
	if tbl, ok := c.tables.Load(t); ok {
		c.hits.Add(1)
		return tbl.(*Table)
	}

	c.mu.Lock()
	gen := c.gen
	overloads := slices.Clone(c.overloads[t])
	c.mu.Unlock()

	tbl := buildTable(t, c.introspector.Methods(t), overloads)
	c.misses.Add(1)

	// a table built before a concurrent RegisterOverload, Forget or Reset is
	// returned but not published
	c.mu.Lock()
	if c.gen == gen {
		c.tables.Store(t, tbl)
	}
	c.mu.Unlock()

	c.logger.Debug("accessor table built",
		slog.String("type", t.String()),
		slog.Int("properties", tbl.Len()),
		slog.Int("overloads", len(overloads)))

	return tbl
}

// Forget drops the table of t; the next access rebuilds it.
func (c *Cache) Forget(t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.tables.Delete(t)
}

// Reset drops every table, registered overload and counter.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.tables.Clear()
	c.overloads = make(map[reflect.Type][]overload)
	c.hits.Store(0)
	c.misses.Store(0)
}

// RegisterOverload adds method of t to the overload set of property. The
// method must take one argument and return nothing, an error, or the receiver
// for chaining; its name is free. Registering the same pair twice is a no-op.
// A non-pointer struct type is registered under its pointer type, the type
// SetProperty looks up.
func (c *Cache) RegisterOverload(t reflect.Type, property, method string) error {
	t = lookupType(t)

	m, ok := t.MethodByName(method)
	if !ok {
		return &AccessorNotFoundError{Signature: common.TypeFullName(t) + "." + method}
	}

	if !SetterShape(MethodOf(t, m)).IsSetter() {
		return fmt.Errorf("%s.%s cannot set %q: %w", common.TypeFullName(t), method, property, ErrPropertyNotSettable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	o := overload{property: property, method: method}
	if slices.Contains(c.overloads[t], o) {
		return nil
	}

	c.overloads[t] = append(c.overloads[t], o)
	c.gen++
	c.tables.Delete(t)

	return nil
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Tables    int
	Hits      int64
	Misses    int64
	Overloads int
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	c.tables.Range(func(_, _ any) bool {
		s.Tables++
		return true
	})

	for _, list := range c.overloads {
		s.Overloads += len(list)
	}

	return s
}
