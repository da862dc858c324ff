package compose

import "reflect"

// Package compose provides a reflection-driven dependency-injection and
// component-composition runtime.

// Shared is an embeddable zero-size marker. A component struct that embeds
// Shared (at any depth, through further embedding) is treated as shared:
// the container caches at most one instance of its concrete type for the
// container's lifetime. Go's method promotion makes this "inherited"
// automatically — embedding Shared in a base type makes every type that
// embeds the base shared too, with no extra bookkeeping.
type Shared struct{}

func (Shared) sharedComponent() {}

// sharedMarker is the capability Shared satisfies. isShared tests for it
// via reflect.Implements instead of exporting the method, since the method
// itself carries no useful behavior.
type sharedMarker interface {
	sharedComponent()
}

var sharedMarkerType = reflect.TypeOf((*sharedMarker)(nil)).Elem()

// Constructor is the optional "own construction" hook a component may
// implement. If present, the engine calls Construct() after every
// dependency slot has been injected (resolve step 9) but before any
// initializer hooks fire (step 10). Components with no construction logic
// simply don't implement Constructor.
type Constructor interface {
	Construct()
}

var constructorType = reflect.TypeOf((*Constructor)(nil)).Elem()

// implementsCapability reports whether a pointer to a value of structType
// satisfies capability. Both Shared-inheritance and hook capability
// matching route through this single helper since Go's Implements already
// folds in promoted methods from embedded ancestors. Override lookup does
// not use it: overrides are matched by exact key on the requested type.
func implementsCapability(structType, capability reflect.Type) bool {
	return reflect.PointerTo(structType).Implements(capability)
}
