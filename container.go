package compose

import (
	"reflect"
	"sync"
	"unsafe"
)

// Container holds the shared-instance cache, the override table, the
// initializer index, the retained-root list, and the ambient assembly
// target for a single object graph. It is the unit of assembly: every
// cache in this file is container-scoped, never global, so tests can build
// isolated containers without interfering with one another (see
// design note "Global ambient container").
type Container struct {
	registry     *registry
	metadata     *metadataProbe
	overrides    *overrideTable
	defaults     *defaultImplTable
	initializers *initializerIndex
	logger       Logger

	mu              sync.RWMutex
	sharedInstances map[reflect.Type]reflect.Value
	retainedRoots   []any

	chainMu sync.Mutex
	chain   map[reflect.Type]bool
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger overrides the Container's default zap-backed Logger. Passing
// nil installs a no-op logger, useful in tests that don't want log noise.
func WithLogger(l Logger) Option {
	return func(c *Container) {
		if l == nil {
			c.logger = noopLogger{}
			return
		}
		c.logger = l
	}
}

var (
	currentMu sync.RWMutex
	current   *Container
)

// Current returns the ambient current container: the most recently
// constructed one, or a freshly constructed default if none exists yet.
// Host code that wants to self-wire without threading a *Container through
// its call stack uses this handle; every container also remains usable
// explicitly, so isolated tests construct their own and never touch it.
func Current() *Container {
	currentMu.RLock()
	c := current
	currentMu.RUnlock()
	if c != nil {
		return c
	}
	return NewContainer()
}

func setCurrent(c *Container) {
	currentMu.Lock()
	current = c
	currentMu.Unlock()
}

// NewContainer builds an empty Container and makes it the ambient current
// container.
func NewContainer(opts ...Option) *Container {
	c := &Container{
		registry:        newRegistry(),
		metadata:        newMetadataProbe(),
		overrides:       newOverrideTable(),
		defaults:        newDefaultImplTable(),
		initializers:    newInitializerIndex(),
		sharedInstances: make(map[reflect.Type]reflect.Value),
		chain:           make(map[reflect.Type]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = newDefaultLogger()
	}
	setCurrent(c)
	return c
}

// IsShared reports whether t is a shared component. t may be a struct or a
// pointer-to-struct type; for an interface type it reports false, without
// looking through overrides or default implementations.
func (c *Container) IsShared(t reflect.Type) bool {
	return c.isShared(t)
}

// resolve is the single central resolution operation (spec §4.E, steps
// 1-11). r may be an interface type (the abstract path) or a
// pointer-to-struct/struct type (the concrete path).
func (c *Container) resolve(r reflect.Type) (reflect.Value, error) {
	// Step 1: override check. Authoritative — skips default-implementation
	// and abstractness handling entirely, and is never itself re-consulted
	// on the override's target (the non-recursive-override decision,
	// see DESIGN.md).
	if concrete, ok := c.overrides.lookup(r); ok {
		return c.resolveConcrete(concrete, r)
	}

	// Step 2: abstractness check.
	if r.Kind() == reflect.Interface {
		if concrete, ok := c.defaults.lookup(r); ok {
			return c.resolveConcrete(concrete, r)
		}
		return reflect.Value{}, &UnresolvableAbstractError{Type: r.String()}
	}

	// Step 3: concrete direct path.
	concrete := elemStructType(r)
	if concrete == nil {
		return reflect.Value{}, &InvalidComponentError{
			Name:   r.String(),
			Reason: "requested type is neither an interface nor a struct/pointer-to-struct",
		}
	}
	return c.resolveConcrete(concrete, r)
}

func (c *Container) resolveConcrete(concrete, requested reflect.Type) (reflect.Value, error) {
	d := c.metadata.describe(concrete)

	// Step 5: sharing gate.
	if d.shared {
		if inst, ok := c.getShared(concrete); ok {
			return inst, nil
		}
	}

	if err := c.enterChain(concrete); err != nil {
		c.logger.Errorw("circular dependency", "type", concrete.String())
		return reflect.Value{}, err
	}
	chainOpen := true
	leaveChain := func() {
		if chainOpen {
			c.exitChain(concrete)
			chainOpen = false
		}
	}
	defer leaveChain()

	// Step 6: allocation, without running the component's own construction.
	instance := reflect.New(concrete)

	// Step 7: publish-before-construct. This both satisfies the shared
	// cache contract and releases the cycle guard early for shared types,
	// which is exactly what lets a shared A<->B cycle terminate: by the
	// time B's injection asks for A again, A is already in the cache. In such
	// a cycle B's own Construct runs before A's, so B sees an A whose own
	// construction has not run yet.
	if d.shared {
		c.publishShared(concrete, instance)
		leaveChain()
	}

	// Step 8: inject dependencies, ancestors-before-descendant order.
	for _, s := range d.slots {
		depVal, err := c.resolve(s.typ)
		if err != nil {
			return reflect.Value{}, &InjectionFailureError{Owner: concrete.String(), Slot: s.name, Err: err}
		}
		if err := assignSlot(instance.Elem(), s, depVal); err != nil {
			return reflect.Value{}, err
		}
	}

	// Step 9: run the component's own construction.
	if instance.Type().Implements(constructorType) {
		instance.Interface().(Constructor).Construct()
	}

	// Step 10: fire applicable hooks.
	for _, hook := range c.initializers.applicableHooks(concrete) {
		hook(instance.Interface())
	}

	c.logger.Debugw("resolved component", "type", concrete.String(), "requested", requested.String(), "shared", d.shared)

	return instance, nil
}

func (c *Container) getShared(t reflect.Type) (reflect.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.sharedInstances[t]
	return v, ok
}

func (c *Container) publishShared(t reflect.Type, v reflect.Value) {
	c.mu.Lock()
	c.sharedInstances[t] = v
	c.mu.Unlock()
}

func (c *Container) enterChain(t reflect.Type) error {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()
	if c.chain[t] {
		return &CircularDependencyError{Type: t.String()}
	}
	c.chain[t] = true
	return nil
}

func (c *Container) exitChain(t reflect.Type) {
	c.chainMu.Lock()
	delete(c.chain, t)
	c.chainMu.Unlock()
}

// assignSlot writes depVal into the field s describes on structVal,
// unlocking unexported fields via the standard unsafe.Pointer + NewAt
// bypass — the Go analogue of Field.setAccessible(true).
func assignSlot(structVal reflect.Value, s slot, depVal reflect.Value) error {
	field := structVal.FieldByIndex(s.index)
	if !field.CanSet() {
		field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	}
	if !depVal.Type().AssignableTo(field.Type()) {
		return &InjectionFailureError{
			Owner: structVal.Type().String(),
			Slot:  s.name,
			Err:   &TypeMismatchError{Expected: field.Type().String(), Got: depVal.Type().String()},
		}
	}
	field.Set(depVal)
	return nil
}

func (c *Container) retain(instance any) {
	c.mu.Lock()
	c.retainedRoots = append(c.retainedRoots, instance)
	c.mu.Unlock()
}

// RetainedRoots returns the components retained via Load/LoadNamed with
// retain=true, in first-insertion order.
func (c *Container) RetainedRoots() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]any, len(c.retainedRoots))
	copy(out, c.retainedRoots)
	return out
}

// Load resolves T and, if retain is true, appends it to the container's
// retained-root list.
func Load[T any](c *Container, retain bool) (T, error) {
	var zero T
	requested := reflect.TypeOf((*T)(nil)).Elem()
	c.logger.Debugw("load", "trace", newTraceID(), "type", requested.String())

	v, err := c.resolve(requested)
	if err != nil {
		return zero, err
	}

	typed, ok := v.Interface().(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: requested.String(), Got: v.Type().String()}
	}
	if retain {
		c.retain(typed)
	}
	return typed, nil
}

// LoadNamed looks name up under RootComponent, then resolves the type it
// names (still running the full resolve algorithm, including the override
// check, exactly as a directly-requested type would).
func LoadNamed[T any](c *Container, name string, retain bool) (T, error) {
	var zero T
	structType, err := c.registry.lookup(RootComponent, name)
	if err != nil {
		return zero, err
	}
	c.logger.Debugw("load", "trace", newTraceID(), "name", name, "type", structType.String())

	v, err := c.resolve(structType)
	if err != nil {
		return zero, err
	}

	typed, ok := v.Interface().(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: reflect.TypeOf((*T)(nil)).Elem().String(), Got: v.Type().String()}
	}
	if retain {
		c.retain(typed)
	}
	return typed, nil
}

// ResolveInto runs dependency injection only (resolve step 8) over an
// externally-owned instance the container did not allocate: no shared-cache
// publication, no own-construction call, no hooks. Useful for host objects
// that self-wire through the ambient container.
func (c *Container) ResolveInto(obj any) error {
	if obj == nil {
		return &InvalidComponentError{Name: "nil", Reason: "ResolveInto requires a non-nil pointer"}
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return &InvalidComponentError{Name: v.Type().String(), Reason: "ResolveInto requires a non-nil pointer"}
	}
	structType := v.Elem().Type()
	d := c.metadata.describe(structType)

	for _, s := range d.slots {
		depVal, err := c.resolve(s.typ)
		if err != nil {
			return &InjectionFailureError{Owner: structType.String(), Slot: s.name, Err: err}
		}
		if err := assignSlot(v.Elem(), s, depVal); err != nil {
			return err
		}
	}
	return nil
}
