package compose

import (
	"reflect"
	"sync"
)

const injectTag = "compose"
const injectValue = "inject"

// slot is a single dependency field the engine must assign before a
// component's own construction runs.
type slot struct {
	name  string       // field name; distinct slots may share a name across ancestor/descendant
	typ   reflect.Type // declared slot type (interface or pointer-to-struct)
	index []int        // reflect.Value.FieldByIndex path, reaches into embedded ancestors
}

// descriptor is the memoized metadata for one concrete struct type.
type descriptor struct {
	concrete reflect.Type
	shared   bool
	slots    []slot
}

// metadataProbe computes and caches descriptors per Container. Results are
// write-once per concrete type and may be read freely once cached, matching
// the single-threaded-assembly model: a descriptor is only ever written
// under probe.mu the first time its type is seen.
type metadataProbe struct {
	mu    sync.Mutex
	cache map[reflect.Type]*descriptor
}

func newMetadataProbe() *metadataProbe {
	return &metadataProbe{cache: make(map[reflect.Type]*descriptor, 32)}
}

func (p *metadataProbe) describe(structType reflect.Type) *descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d, ok := p.cache[structType]; ok {
		return d
	}

	d := &descriptor{
		concrete: structType,
		shared:   implementsCapability(structType, sharedMarkerType),
		slots:    collectSlots(structType, nil),
	}
	p.cache[structType] = d
	return d
}

// collectSlots walks structType's anonymous (embedded) fields depth-first,
// in declaration order, then appends structType's own tagged fields, so
// every ancestor slot comes before every direct slot. A field declared on both an ancestor and
// a descendant under the same identifier is two physically distinct struct
// fields (Go embedding never collapses them), so both are kept as separate
// slots rather than one overwriting the other; listing the ancestor's slot
// first and the descendant's last is what makes the descendant the last
// write when both are injected in order.
func collectSlots(structType reflect.Type, prefix []int) []slot {
	var ordered []slot
	var own []slot

	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		path := append(append([]int{}, prefix...), i)

		// Ancestors are value-embedded structs, the direct analogue of a Java
		// superclass. A pointer-embedded anonymous field is treated as an
		// ordinary slot below rather than walked as an ancestor, since an
		// unset embedded pointer would make field traversal panic on a nil
		// dereference.
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			ordered = append(ordered, collectSlots(f.Type, path)...)
			continue
		}

		if f.Tag.Get(injectTag) == injectValue {
			own = append(own, slot{name: f.Name, typ: f.Type, index: path})
		}
	}

	return append(ordered, own...)
}

// isShared reports whether t (a struct or pointer-to-struct type) is a
// shared component. For an interface type it reports false: overrides and
// default implementations are not looked through. Host code consults it
// via (*Container).IsShared.
func (c *Container) isShared(t reflect.Type) bool {
	structType := elemStructType(t)
	if structType == nil {
		return false
	}
	return c.metadata.describe(structType).shared
}

// elemStructType normalizes t (which may be a struct, a pointer-to-struct,
// or an interface) down to its underlying struct type, or nil if t isn't
// backed by one.
func elemStructType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
