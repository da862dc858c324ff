package compose

import (
	"reflect"
	"sync"
)

// Root identifies one of the two independently namespaced lookup roots a
// Container's type registry serves: names from the declarative
// configuration resolve under RootComponent, override capability/target
// names resolve under RootOverride. There is no cross-root fallback.
type Root string

const (
	RootComponent Root = "component"
	RootOverride  Root = "override"
)

// registry resolves textual names to struct types (components and override
// targets) or interface types (override capabilities). Go has no
// reflective classloader, so (per the "dynamic type lookup by string"
// design note) components register their name against a sample value at
// init time; lookups are then pure cache reads.
type registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type // "root:name" -> struct or interface type
}

func newRegistry() *registry {
	return &registry{types: make(map[string]reflect.Type, 32)}
}

func registryKey(root Root, name string) string {
	return string(root) + ":" + name
}

// register associates name (under root) with the type backing sample.
// sample may be a nil typed pointer to a struct (e.g. (*Locator)(nil), for
// a component or an override target) or to an interface (e.g.
// (*Places)(nil), for an override capability); it exists purely to carry
// a reflect.Type.
func (r *registry) register(root Root, name string, sample any) error {
	t, err := sampleType(name, sample)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[registryKey(root, name)] = t
	return nil
}

// lookup resolves name under root, returning TypeNotFoundError if absent.
func (r *registry) lookup(root Root, name string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[registryKey(root, name)]
	if !ok {
		return nil, &TypeNotFoundError{Root: string(root), Name: name}
	}
	return t, nil
}

// sampleType extracts the underlying struct-or-interface reflect.Type from
// a registration sample, unwrapping one level of pointer.
func sampleType(name string, sample any) (reflect.Type, error) {
	if sample == nil {
		return nil, &InvalidComponentError{Name: name, Reason: "nil sample"}
	}
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct && t.Kind() != reflect.Interface {
		return nil, &InvalidComponentError{Name: name, Reason: "sample is not a struct, interface, or pointer to either"}
	}
	return t, nil
}

// RegisterComponent registers name under RootComponent on the ambient
// current container. Intended for package init() calls, mirroring the
// sql.Register / image.RegisterFormat convention.
func RegisterComponent(name string, sample any) error {
	return Current().registry.register(RootComponent, name, sample)
}

// RegisterOverrideTarget registers name under RootOverride on the ambient
// current container. Both override capability names and override target
// names are looked up under this root.
func RegisterOverrideTarget(name string, sample any) error {
	return Current().registry.register(RootOverride, name, sample)
}

// RegisterComponent registers name under RootComponent on this container.
func (c *Container) RegisterComponent(name string, sample any) error {
	return c.registry.register(RootComponent, name, sample)
}

// RegisterOverrideTarget registers name under RootOverride on this container.
func (c *Container) RegisterOverrideTarget(name string, sample any) error {
	return c.registry.register(RootOverride, name, sample)
}
