// Package compose is a reflection-driven dependency-injection and
// component-composition runtime. A Container holds a type registry, a
// metadata probe, an override table, an initializer index, and a
// shared-instance cache; Load and LoadNamed drive the resolution engine
// that ties them together. See SPEC_FULL.md for the full design.
package compose
