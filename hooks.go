package compose

import (
	"reflect"
	"sync"
)

// initializerIndex maps a capability to a single hook callback, and caches
// the set of hooks applicable to each concrete type once computed.
type initializerIndex struct {
	mu    sync.RWMutex
	hooks map[reflect.Type]func(any)

	cacheMu sync.Mutex
	cache   map[reflect.Type][]func(any)
}

func newInitializerIndex() *initializerIndex {
	return &initializerIndex{
		hooks: make(map[reflect.Type]func(any)),
		cache: make(map[reflect.Type][]func(any)),
	}
}

// register installs hook for capability, replacing any hook previously
// registered for the same capability. Registering a new hook invalidates
// the per-concrete-type applicability cache, since a concrete type not
// previously matched by any capability might now match this one.
func (idx *initializerIndex) register(capability reflect.Type, hook func(any)) {
	idx.mu.Lock()
	idx.hooks[capability] = hook
	idx.mu.Unlock()

	idx.cacheMu.Lock()
	idx.cache = make(map[reflect.Type][]func(any))
	idx.cacheMu.Unlock()
}

// applicableHooks returns every hook whose capability structType satisfies,
// deduplicated (a capability contributes at most one hook) and memoized.
func (idx *initializerIndex) applicableHooks(structType reflect.Type) []func(any) {
	idx.cacheMu.Lock()
	if cached, ok := idx.cache[structType]; ok {
		idx.cacheMu.Unlock()
		return cached
	}
	idx.cacheMu.Unlock()

	idx.mu.RLock()
	var matched []func(any)
	for capability, hook := range idx.hooks {
		if implementsCapability(structType, capability) {
			matched = append(matched, hook)
		}
	}
	idx.mu.RUnlock()

	idx.cacheMu.Lock()
	idx.cache[structType] = matched
	idx.cacheMu.Unlock()
	return matched
}

// RegisterInitializer installs a raw hook for capability, replacing any hook
// previously registered for it. Prefer the generic RegisterInitializer
// function for compile-time-checked callers.
func (c *Container) RegisterInitializer(capability reflect.Type, hook func(any)) {
	c.initializers.register(capability, hook)
}

// RegisterInitializer registers hook to fire once, after construction, on
// every resolved instance satisfying Capability.
func RegisterInitializer[Capability any](c *Container, hook func(Capability)) {
	capability := reflect.TypeOf((*Capability)(nil)).Elem()
	c.RegisterInitializer(capability, func(instance any) {
		hook(instance.(Capability))
	})
}
