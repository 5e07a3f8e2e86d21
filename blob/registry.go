package blob

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"
)

// Registry maps stable type names to Go types. A value can only be written
// if its dynamic type is registered, and a file can only be read if the
// type name it carries resolves in the reader's registry.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// DefaultRegistry knows the common built-in types.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	Register[string](r, "string")
	Register[int](r, "int")
	Register[int64](r, "int64")
	Register[float64](r, "float64")
	Register[bool](r, "bool")
	Register[[]byte](r, "bytes")
	Register[[]any](r, "list")
	Register[map[string]any](r, "map")
	Register[time.Time](r, "time")
	return r
}

// Register binds name to T in r. Registering the same name or type twice
// panics, as it is a programming error.
func Register[T any](r *Registry, name string) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" || name == nilName {
		panic(fmt.Sprintf("blob: reserved type name %q", name))
	}
	if prev, ok := r.byName[name]; ok {
		panic(fmt.Sprintf("blob: name %q already registered for %v", name, prev))
	}
	if prev, ok := r.byType[t]; ok {
		panic(fmt.Sprintf("blob: type %v already registered as %q", t, prev))
	}
	r.byName[name] = t
	r.byType[t] = name
}

// Clone returns an independent copy of r, so callers can extend the
// default set without touching it.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := NewRegistry()
	for name, t := range r.byName {
		c.byName[name] = t
		c.byType[t] = name
	}
	return c
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) nameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[t]
	return name, ok
}

func (r *Registry) typeOf(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}
