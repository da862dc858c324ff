package compose_test

import (
	"reflect"
	"testing"

	compose "github.com/centraunit/compose"
	"github.com/centraunit/compose/mock"
	"github.com/stretchr/testify/suite"
)

type ContainerTestSuite struct {
	suite.Suite
	c *compose.Container
}

func (s *ContainerTestSuite) SetupTest() {
	s.c = compose.NewContainer(compose.WithLogger(nil))
}

// Scenario 1 — Shared uniqueness.
func (s *ContainerTestSuite) TestSharedUniqueness() {
	first, err := compose.Load[*mock.Bus](s.c, false)
	s.NoError(err)
	second, err := compose.Load[*mock.Bus](s.c, false)
	s.NoError(err)
	s.Same(first, second)
}

// Scenario 2 — Default implementation and override.
func (s *ContainerTestSuite) TestDefaultImplementationAndOverride() {
	compose.DefaultImplementation[mock.Clock, *mock.SystemClock](s.c)

	clock, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)
	s.Equal("system-time", clock.Now())

	compose.SetOverride[mock.Clock, *mock.FakeClock](s.c)
	clock, err = compose.Load[mock.Clock](s.c, false)
	s.NoError(err)
	s.Equal("fake-time", clock.Now())
}

// Scenario 3 — slots on an ancestor and on the descendant are both injected.
func (s *ContainerTestSuite) TestAncestorSlotInjection() {
	child, err := compose.Load[*mock.Child](s.c, false)
	s.NoError(err)
	s.NotNil(child.SlotA)
	s.NotNil(child.SlotB)
}

// Scenario 4 — Hook fan-out across independently resolved types sharing a
// capability.
func (s *ContainerTestSuite) TestHookFanOut() {
	var seen []string
	compose.RegisterInitializer[mock.HasActivity](s.c, func(h mock.HasActivity) {
		seen = append(seen, h.Activity())
	})

	_, err := compose.Load[*mock.P1](s.c, false)
	s.NoError(err)
	_, err = compose.Load[*mock.P2](s.c, false)
	s.NoError(err)

	s.Equal([]string{"p1", "p2"}, seen)
}

// Scenario 5 — Shared cycle terminates.
func (s *ContainerTestSuite) TestSharedCycleTerminates() {
	a, err := compose.Load[*mock.SharedA](s.c, false)
	s.NoError(err)
	s.NotNil(a.Peer)

	b, err := compose.Load[*mock.SharedB](s.c, false)
	s.NoError(err)
	s.Same(a.Peer, b)
	s.Same(b.Peer, a)
}

// Scenario 6 — Declarative config end to end.
func (s *ContainerTestSuite) TestDeclarativeConfig() {
	s.Require().NoError(s.c.RegisterOverrideTarget("Places", (*mock.Places)(nil)))
	s.Require().NoError(s.c.RegisterOverrideTarget("MockPlaces", (*mock.MockPlaces)(nil)))
	s.Require().NoError(s.c.RegisterComponent("Locator", (*mock.Locator)(nil)))

	doc := []byte(`
overrides:
  - capability: Places
    target: MockPlaces
services:
  - name: Locator
`)
	loaded, err := s.c.LoadConfigBytes(doc)
	s.NoError(err)
	s.True(loaded)

	roots := s.c.RetainedRoots()
	s.Len(roots, 1)
	locator := roots[0].(*mock.Locator)
	s.IsType(&mock.MockPlaces{}, locator.Places)
	s.Equal("mock:town", locator.Places.Find("town"))
}

// General invariant — a slot declared on both ancestor and descendant
// under the same identifier is two distinct fields, and both are injected.
func (s *ContainerTestSuite) TestAncestorAndDescendantSlotsBothInjected() {
	child, err := compose.Load[*mock.ShadowingChild](s.c, false)
	s.NoError(err)
	s.NotNil(child.Common, "descendant's own Common field")
	s.NotNil(child.ShadowingBase.Common, "ancestor's Common field, shadowed but still a slot")
}

// IsShared reports the marker-derived sharing flag for both shared and
// non-shared types.
func (s *ContainerTestSuite) TestIsShared() {
	s.True(s.c.IsShared(reflect.TypeOf(mock.Bus{})))
	s.False(s.c.IsShared(reflect.TypeOf(mock.A{})))
}

// Round-trip law — registering and immediately removing an override leaves
// subsequent resolutions identical to never having registered it.
func (s *ContainerTestSuite) TestRemoveOverrideRoundTrip() {
	compose.DefaultImplementation[mock.Clock, *mock.SystemClock](s.c)

	baseline, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)
	s.Equal("system-time", baseline.Now())

	compose.SetOverride[mock.Clock, *mock.FakeClock](s.c)
	overridden, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)
	s.Equal("fake-time", overridden.Now())

	compose.RemoveOverride[mock.Clock](s.c)
	restored, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)
	s.Equal(baseline.Now(), restored.Now())
}

// Invariant 5 — idempotence of removeOverride: removing an override that
// was already removed (or never set) is a no-op, not an error.
func (s *ContainerTestSuite) TestRemoveOverrideIdempotent() {
	compose.DefaultImplementation[mock.Clock, *mock.SystemClock](s.c)

	compose.RemoveOverride[mock.Clock](s.c)
	once, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)

	compose.RemoveOverride[mock.Clock](s.c)
	twice, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)

	s.Equal(once.Now(), twice.Now())

	s.c.RemoveOverride(reflect.TypeOf((*mock.Clock)(nil)).Elem())
	thrice, err := compose.Load[mock.Clock](s.c, false)
	s.NoError(err)
	s.Equal(once.Now(), thrice.Now())
}

// Round-trip law — resolveInto(x) on an externally-owned instance yields the
// same slot assignments as if x had been built by the container: the shared
// Bus both see is the very same instance.
func (s *ContainerTestSuite) TestResolveIntoRoundTrip() {
	external := &mock.BusUser{}
	s.Require().NoError(s.c.ResolveInto(external))
	s.NotNil(external.Bus)

	builtAny, err := compose.Load[*mock.BusUser](s.c, false)
	s.NoError(err)
	s.Same(external.Bus, builtAny.Bus)
}

// General invariant — construction runs after every slot is injected.
func (s *ContainerTestSuite) TestConstructionSeesInjectedSlots() {
	fc, err := compose.Load[*mock.FailingConstructor](s.c, false)
	s.NoError(err)
	s.True(fc.Called)
}

// Error path — unregistered name yields TypeNotFoundError.
func (s *ContainerTestSuite) TestTypeNotFoundError() {
	_, err := compose.LoadNamed[*mock.Unregistered](s.c, "Unregistered", false)
	s.Error(err)
	var target *compose.TypeNotFoundError
	s.ErrorAs(err, &target)
}

// Error path — interface with no override and no default yields
// UnresolvableAbstractError.
func (s *ContainerTestSuite) TestUnresolvableAbstractError() {
	_, err := compose.Load[mock.Clock](s.c, false)
	s.Error(err)
	var target *compose.UnresolvableAbstractError
	s.ErrorAs(err, &target)
}

// Error path — a slot whose own resolution fails surfaces
// InjectionFailureError wrapping the underlying cause.
func (s *ContainerTestSuite) TestInjectionFailureError() {
	_, err := compose.Load[*mock.BadSlotOwner](s.c, false)
	s.Error(err)
	var target *compose.InjectionFailureError
	s.ErrorAs(err, &target)
	var cause *compose.UnresolvableAbstractError
	s.ErrorAs(err, &cause)
}

// Error path — a malformed document yields ConfigParseError and loads
// nothing.
func (s *ContainerTestSuite) TestConfigParseError() {
	loaded, err := s.c.LoadConfigBytes([]byte(`services: [this is not a valid document`))
	s.Error(err)
	s.False(loaded)
	var target *compose.ConfigParseError
	s.ErrorAs(err, &target)
}

func TestContainerSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}
