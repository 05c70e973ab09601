package facade

import (
	"reflect"

	"github.com/goccy/go-json"
)

// MemberKind classifies a spec member.
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindProperty
	KindIndexer
)

func (k MemberKind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindIndexer:
		return "indexer"
	}
	return "unknown"
}

type specMember struct {
	kind     MemberKind
	method   Method
	prop     Property
	resolved bool
	res      resolution
}

func (m *specMember) name() string {
	if m.kind == KindMethod {
		return m.method.Name
	}
	return m.prop.Name
}

// Descriptor is the immutable in-memory description of one adapter type: the
// resolved-or-unresolved outcome for every member of a spec against one
// wrapped type. Building a descriptor never fails; unresolved members are
// recorded and fail only when invoked.
type Descriptor struct {
	spec    *Spec
	wrapped reflect.Type
	order   []*specMember
}

// buildDescriptor walks every method and property of the spec and resolves
// each against the wrapped type.
func buildDescriptor(spec *Spec, wrapped reflect.Type) *Descriptor {
	d := &Descriptor{
		spec:    spec,
		wrapped: wrapped,
	}
	for _, m := range spec.methods {
		sm := &specMember{kind: KindMethod, method: m}
		sm.res, sm.resolved = resolveMethod(m, wrapped)
		d.order = append(d.order, sm)
	}
	for _, p := range spec.props {
		sm := &specMember{prop: p}
		if len(p.Keys) > 0 {
			sm.kind = KindIndexer
		} else {
			sm.kind = KindProperty
		}
		sm.res, sm.resolved = resolveProperty(p, wrapped)
		d.order = append(d.order, sm)
	}
	return d
}

// Spec returns the spec the descriptor was built from.
func (d *Descriptor) Spec() *Spec { return d.spec }

// Wrapped returns the static type resolution was performed against.
func (d *Descriptor) Wrapped() reflect.Type { return d.wrapped }

// Target returns the name of the contract adapters built from this
// descriptor stand in for.
func (d *Descriptor) Target() string { return d.spec.Target() }

// MemberInfo is a read-only view of one member's resolution outcome.
type MemberInfo struct {
	Name          string
	Kind          MemberKind
	Resolved      bool
	Target        string // resolved wrapped-type member, "" when unresolved
	TargetIsField bool
	In            []reflect.Type // method parameters or indexer keys
	Out           []reflect.Type // method results
	Type          reflect.Type   // property value type
}

// Members returns the per-member outcomes in spec declaration order, methods
// first.
func (d *Descriptor) Members() []MemberInfo {
	out := make([]MemberInfo, 0, len(d.order))
	for _, sm := range d.order {
		mi := MemberInfo{
			Name:     sm.name(),
			Kind:     sm.kind,
			Resolved: sm.resolved,
		}
		if sm.resolved {
			mi.Target = sm.res.target
			mi.TargetIsField = sm.res.kind == targetField
		}
		switch sm.kind {
		case KindMethod:
			mi.In = append([]reflect.Type(nil), sm.method.In...)
			mi.Out = append([]reflect.Type(nil), sm.method.Out...)
		case KindIndexer:
			mi.In = append([]reflect.Type(nil), sm.prop.Keys...)
			mi.Type = sm.prop.Type
		case KindProperty:
			mi.Type = sm.prop.Type
		}
		out = append(out, mi)
	}
	return out
}

type memberJSON struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Resolved bool   `json:"resolved"`
	Target   string `json:"target,omitempty"`
}

type descriptorJSON struct {
	Spec       string       `json:"spec"`
	Implements string       `json:"implements"`
	Wrapped    string       `json:"wrapped"`
	Members    []memberJSON `json:"members"`
}

// MarshalJSON renders an introspection summary of the descriptor.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	doc := descriptorJSON{
		Spec:       d.spec.Name(),
		Implements: d.spec.Target(),
		Wrapped:    d.wrapped.String(),
	}
	for _, sm := range d.order {
		mj := memberJSON{Name: sm.name(), Kind: sm.kind.String(), Resolved: sm.resolved}
		if sm.resolved {
			mj.Target = sm.res.target
		}
		doc.Members = append(doc.Members, mj)
	}
	return json.Marshal(doc)
}
