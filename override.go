package compose

import (
	"reflect"
	"sync"
)

// overrideTable maps a capability (interface) type to the concrete struct
// type that should be instantiated in its place. It is a pure map: setting
// a key twice replaces it, looking up an unrelated type returns absent,
// and it is never consulted for a concrete request unless a direct key
// matches the requested type exactly.
type overrideTable struct {
	mu      sync.RWMutex
	targets map[reflect.Type]reflect.Type
}

func newOverrideTable() *overrideTable {
	return &overrideTable{targets: make(map[reflect.Type]reflect.Type)}
}

func (o *overrideTable) set(capability, concrete reflect.Type) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.targets[capability] = concrete
}

func (o *overrideTable) remove(capability reflect.Type) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.targets, capability)
}

func (o *overrideTable) lookup(capability reflect.Type) (reflect.Type, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	t, ok := o.targets[capability]
	return t, ok
}

// SetOverride registers capability -> concrete as a raw reflect.Type pair.
// Prefer the generic SetOverride function for compile-time-checked callers.
func (c *Container) SetOverride(capability, concrete reflect.Type) {
	c.overrides.set(capability, concrete)
	c.logger.Debugw("override registered", "capability", capability, "concrete", concrete)
}

// RemoveOverride removes any override registered for capability. Removing
// an override that was never set is a no-op.
func (c *Container) RemoveOverride(capability reflect.Type) {
	c.overrides.remove(capability)
}

// SetOverride registers that resolving Capability should instead produce a
// Concrete instance.
func SetOverride[Capability any, Concrete any](c *Container) {
	capability := reflect.TypeOf((*Capability)(nil)).Elem()
	var z Concrete
	concrete := reflect.TypeOf(z)
	if concrete.Kind() == reflect.Ptr {
		concrete = concrete.Elem()
	}
	c.SetOverride(capability, concrete)
}

// RemoveOverride removes any override registered for Capability.
func RemoveOverride[Capability any](c *Container) {
	c.RemoveOverride(reflect.TypeOf((*Capability)(nil)).Elem())
}

// DefaultImplementation registers Concrete as the fallback implementation
// for an abstract (interface) Iface, used when Iface is requested with no
// override in place. Meaningless, and never consulted, for concrete
// requests.
func DefaultImplementation[Iface any, Concrete any](c *Container) {
	iface := reflect.TypeOf((*Iface)(nil)).Elem()
	var z Concrete
	concrete := reflect.TypeOf(z)
	if concrete.Kind() == reflect.Ptr {
		concrete = concrete.Elem()
	}
	c.defaults.mu.Lock()
	c.defaults.impls[iface] = concrete
	c.defaults.mu.Unlock()
}

// defaultImplTable maps an abstract interface to its registered concrete
// fallback, consulted only from resolve step 2 (abstractness check).
type defaultImplTable struct {
	mu    sync.RWMutex
	impls map[reflect.Type]reflect.Type
}

func newDefaultImplTable() *defaultImplTable {
	return &defaultImplTable{impls: make(map[reflect.Type]reflect.Type)}
}

func (d *defaultImplTable) lookup(iface reflect.Type) (reflect.Type, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.impls[iface]
	return t, ok
}
