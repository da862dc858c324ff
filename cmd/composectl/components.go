package main

import compose "github.com/centraunit/compose"

// Greeter is the demo capability an assembly document can override.
type Greeter interface {
	Greet() string
}

// EnglishGreeter is Greeter's default implementation.
type EnglishGreeter struct{}

func (*EnglishGreeter) Greet() string { return "hello" }

// FrenchGreeter is an alternate Greeter an assembly document can select via
// an override directive.
type FrenchGreeter struct{}

func (*FrenchGreeter) Greet() string { return "bonjour" }

// Announcer is the demo service: a single slot on Greeter, loaded by name
// through the declarative loader.
type Announcer struct {
	Greeter Greeter `compose:"inject"`
}

func registerDemoComponents(c *compose.Container) error {
	compose.DefaultImplementation[Greeter, *EnglishGreeter](c)

	if err := c.RegisterOverrideTarget("Greeter", (*Greeter)(nil)); err != nil {
		return err
	}
	if err := c.RegisterOverrideTarget("EnglishGreeter", (*EnglishGreeter)(nil)); err != nil {
		return err
	}
	if err := c.RegisterOverrideTarget("FrenchGreeter", (*FrenchGreeter)(nil)); err != nil {
		return err
	}
	return c.RegisterComponent("Announcer", (*Announcer)(nil))
}
