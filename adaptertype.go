package facade

import (
	"reflect"
)

// binding is the compiled forwarding plan for one member. A non-nil err marks
// an unresolved member; the error surfaces on invocation only.
type binding struct {
	name     string
	kind     MemberKind
	in       []reflect.Type // method parameters or indexer keys
	out      []reflect.Type // method results; [value type] for indexers
	propType reflect.Type
	target   string
	isField  bool
	index    []int
	err      error
}

// AdapterType is a realized adapter type: one compiled binding per spec
// member against one wrapped type. Adapter types are built by a Factory,
// cached per (wrapped type, spec) pair, and are immutable and safe to share.
type AdapterType struct {
	desc     *Descriptor
	bindings map[string]*binding
}

// emitType realizes a descriptor into an adapter type. Unresolved members
// compile into bindings that fail when invoked; emission itself never fails.
func emitType(desc *Descriptor) *AdapterType {
	t := &AdapterType{
		desc:     desc,
		bindings: make(map[string]*binding, len(desc.order)),
	}
	for _, sm := range desc.order {
		b := &binding{name: sm.name(), kind: sm.kind}
		switch sm.kind {
		case KindMethod:
			b.in = sm.method.In
			b.out = sm.method.Out
		case KindIndexer:
			b.in = sm.prop.Keys
			b.out = []reflect.Type{sm.prop.Type}
			b.propType = sm.prop.Type
		case KindProperty:
			b.propType = sm.prop.Type
		}
		if sm.resolved {
			b.target = sm.res.target
			b.isField = sm.res.kind == targetField
			b.index = sm.res.fieldIndex
		} else {
			b.err = unsupportedf(b.name)
		}
		t.bindings[b.name] = b
	}
	return t
}

// Spec returns the spec this type was built from.
func (t *AdapterType) Spec() *Spec { return t.desc.spec }

// Wrapped returns the static type members were resolved against.
func (t *AdapterType) Wrapped() reflect.Type { return t.desc.wrapped }

// Implements returns the name of the contract this type stands in for.
func (t *AdapterType) Implements() string { return t.desc.Target() }

// Descriptor returns the descriptor this type was emitted from.
func (t *AdapterType) Descriptor() *Descriptor { return t.desc }

// Describe renders the type's member outcomes as JSON for in-process
// introspection.
func (t *AdapterType) Describe() ([]byte, error) {
	return t.desc.MarshalJSON()
}

// New is the adapter constructor. It stores a reference to obj, never a
// copy: the instance reflects the wrapped value's current state. obj must be
// assignable to the wrapped type the adapter type was built for.
func (t *AdapterType) New(obj any) (*Instance, error) {
	if obj == nil {
		return nil, invalidf("nil wrapped value")
	}
	ot := reflect.TypeOf(obj)
	if !ot.AssignableTo(t.desc.wrapped) {
		return nil, invalidf("%s is not assignable to wrapped type %s", ot, t.desc.wrapped)
	}
	recv := reflect.ValueOf(obj)
	in := &Instance{
		t:     t,
		recv:  recv,
		calls: make(map[string]reflect.Value),
	}
	for name, b := range t.bindings {
		if b.err != nil || b.isField {
			continue
		}
		if m := recv.MethodByName(b.target); m.IsValid() {
			in.calls[name] = m
		}
	}
	return in, nil
}
