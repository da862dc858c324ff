package compose

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the declarative configuration shape this runtime consumes.
// The reference shape in the original design is XML-like; this module uses
// YAML decoded directly into this struct, since typed-struct decoding is
// the idiom the wider example corpus reaches for. The parser itself (the
// yaml.v3 call below) remains the external-boundary concern spec.md marks
// as out of scope — this file only defines the directive shape and drives
// the override table and resolution engine from it.
type Document struct {
	Overrides []OverrideDirective `yaml:"overrides"`
	Services  []ComponentDirective `yaml:"services"`
	Plugins   []ComponentDirective `yaml:"plugins"`
}

// OverrideDirective names a capability and the target that should satisfy
// it. Both names resolve under RootOverride.
type OverrideDirective struct {
	Capability string `yaml:"capability"`
	Target     string `yaml:"target"`
}

// ComponentDirective names a component to instantiate and retain. Services
// and Plugins share this shape and are resolved identically — the split
// is purely organizational for the document's author.
type ComponentDirective struct {
	Name string `yaml:"name"`
}

// LoadConfigFile reads and applies the YAML document at path. It returns
// (false, err) without mutating the container at all if the file is
// missing or the document doesn't parse; otherwise it applies overrides
// first, then services and plugins in source order, and returns whether
// any component was instantiated.
func (c *Container) LoadConfigFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warnw("config file unavailable", "path", path, "error", err)
		return false, err
	}
	return c.LoadConfigBytes(data)
}

// LoadConfigBytes decodes data as a Document and applies it. A
// structurally malformed document yields *ConfigParseError and applies
// nothing; a document that parses but contains directives missing their
// required fields skips just those directives.
func (c *Container) LoadConfigBytes(data []byte) (bool, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, &ConfigParseError{Err: err}
	}
	return c.loadDocument(doc), nil
}

func (c *Container) loadDocument(doc Document) bool {
	for _, o := range doc.Overrides {
		if o.Capability == "" || o.Target == "" {
			c.logger.Warnw("skipping malformed override directive", "directive", o)
			continue
		}
		if err := c.applyNamedOverride(o.Capability, o.Target); err != nil {
			c.logger.Warnw("override directive failed", "directive", o, "error", err)
		}
	}

	anyLoaded := false
	anyLoaded = c.loadCategory(doc.Services) || anyLoaded
	anyLoaded = c.loadCategory(doc.Plugins) || anyLoaded
	return anyLoaded
}

func (c *Container) loadCategory(directives []ComponentDirective) bool {
	anyLoaded := false
	for _, d := range directives {
		if d.Name == "" {
			c.logger.Warnw("skipping malformed component directive")
			continue
		}
		if _, err := LoadNamed[any](c, d.Name, true); err != nil {
			c.logger.Warnw("component directive failed", "name", d.Name, "error", err)
			continue
		}
		anyLoaded = true
	}
	return anyLoaded
}

func (c *Container) applyNamedOverride(capabilityName, targetName string) error {
	capability, err := c.registry.lookup(RootOverride, capabilityName)
	if err != nil {
		return err
	}
	target, err := c.registry.lookup(RootOverride, targetName)
	if err != nil {
		return err
	}
	c.SetOverride(capability, target)
	return nil
}
