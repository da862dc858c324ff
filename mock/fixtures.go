// Package mock holds component fixtures exercised by the compose test
// suites: one small type per behavior the resolution engine guarantees,
// named after the scenarios they back rather than after any test file.
package mock

import (
	compose "github.com/centraunit/compose"
)

// Bus is shared with no slots — the minimal fixture for shared uniqueness.
type Bus struct {
	compose.Shared
}

// Clock is the abstract capability behind the default-implementation and
// override scenario.
type Clock interface {
	Now() string
}

// SystemClock is Clock's registered default implementation.
type SystemClock struct{}

func (*SystemClock) Now() string { return "system-time" }

// FakeClock is substituted in via an override on Clock.
type FakeClock struct{}

func (*FakeClock) Now() string { return "fake-time" }

// A is a dependency leaf used by slot-ordering and injection fixtures.
type A struct{}

// B is a dependency leaf used alongside A.
type B struct{}

// Base declares slot a, Child adds slot b. Both are injected when Child is
// resolved, SlotA (the ancestor's) before SlotB. Child has no Construct.
type Base struct {
	SlotA *A `compose:"inject"`
}

type Child struct {
	Base
	SlotB *B `compose:"inject"`
}

// ShadowingBase declares a Common slot typed *A; ShadowingChild embeds it
// and redeclares Common typed *B. These are two physically distinct fields
// (Go embedding never collapses them), so both must be injected.
type ShadowingBase struct {
	Common *A `compose:"inject"`
}

type ShadowingChild struct {
	ShadowingBase
	Common *B `compose:"inject"`
}

// BusUser depends on the shared Bus, used to check that ResolveInto on an
// externally-owned instance observes the same shared instance a
// container-built component would.
type BusUser struct {
	Bus *Bus `compose:"inject"`
}

// HasActivity is the capability an initializer hook fans out over.
type HasActivity interface {
	Activity() string
}

type P1 struct{}

func (*P1) Activity() string { return "p1" }

type P2 struct{}

func (*P2) Activity() string { return "p2" }

// SharedA and SharedB form a shared A<->B cycle: each depends on the other,
// both shared, so the publish-before-construct gate must terminate it.
type SharedA struct {
	compose.Shared
	Peer *SharedB `compose:"inject"`
}

type SharedB struct {
	compose.Shared
	Peer *SharedA `compose:"inject"`
}

// Places is the capability behind the declarative-config scenario.
type Places interface {
	Find(name string) string
}

// MockPlaces is the override target a config document points Places at.
type MockPlaces struct{}

func (*MockPlaces) Find(name string) string { return "mock:" + name }

// RealPlaces is Places' other implementation. The declarative-config
// scenario neither registers nor selects it.
type RealPlaces struct{}

func (*RealPlaces) Find(name string) string { return "real:" + name }

// Locator is the declarative-config scenario's service: a single slot on
// Places, resolved by name through the loader rather than by direct Load.
type Locator struct {
	Places Places `compose:"inject"`
}

// FailingConstructor implements Constructor with a body that records, in
// Called, whether SlotA was already injected when it ran; used to assert
// construction order relative to injection without depending on panics.
type FailingConstructor struct {
	SlotA  *A `compose:"inject"`
	Called bool
}

func (f *FailingConstructor) Construct() {
	f.Called = f.SlotA != nil
}

// Unregistered is never registered with any root; used to exercise
// TypeNotFoundError.
type Unregistered struct{}

// NoDefaultCapability is an interface with no default implementation and
// no override, so resolving it always fails.
type NoDefaultCapability interface {
	Nothing()
}

// BadSlotOwner declares a slot of type NoDefaultCapability, which can never
// be resolved; used to exercise InjectionFailureError.
type BadSlotOwner struct {
	Slot NoDefaultCapability `compose:"inject"`
}
