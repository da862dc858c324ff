package compose

import "fmt"

// TypeNotFoundError represents a textual component or override name that
// could not be resolved under its configured root.
type TypeNotFoundError struct {
	Root string
	Name string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("no %q registered under root %q", e.Name, e.Root)
}

// UnresolvableAbstractError represents an interface request with neither an
// override nor a default implementation registered for it.
type UnresolvableAbstractError struct {
	Type string
}

func (e *UnresolvableAbstractError) Error() string {
	return fmt.Sprintf("no implementation available for interface %s", e.Type)
}

// InjectionFailureError represents a dependency slot that could not be
// written, including when resolving the slot's own type failed.
type InjectionFailureError struct {
	Owner string
	Slot  string
	Err   error
}

func (e *InjectionFailureError) Error() string {
	return fmt.Sprintf("could not inject slot %s.%s: %v", e.Owner, e.Slot, e.Err)
}

func (e *InjectionFailureError) Unwrap() error {
	return e.Err
}

// ConfigParseError wraps a failure to decode a declarative configuration
// document. A ConfigParseError means nothing was loaded: no overrides
// applied, no components instantiated.
type ConfigParseError struct {
	Err error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("malformed configuration document: %v", e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// CircularDependencyError is raised when a non-shared component graph would
// otherwise recurse through a type still being allocated. Shared cycles
// terminate on their own via the publish-before-construct gate; this error
// only guards the case that gate cannot help with.
type CircularDependencyError struct {
	Type string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected resolving %s", e.Type)
}

// TypeMismatchError represents a resolved instance that does not satisfy
// the type a caller asked for.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// InvalidComponentError represents a value or type that cannot be used as a
// component: a registration sample that is not a struct or interface, a
// requested type that is neither an interface nor a struct/pointer-to-struct,
// or a ResolveInto argument that is not a non-nil pointer.
type InvalidComponentError struct {
	Name   string
	Reason string
}

func (e *InvalidComponentError) Error() string {
	return fmt.Sprintf("invalid component %q: %s", e.Name, e.Reason)
}
