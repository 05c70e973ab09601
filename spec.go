package facade

import "reflect"

// Mapping is a single ordered mapping directive attached to a spec member.
// TargetName, when set, names the wrapped-type member to forward to instead
// of the spec member's own name. Entity, when set, restricts the directive to
// exactly that wrapped type; equality is exact, a pointer type never matches
// its element type and a directive scoped to one type never matches another
// type that happens to carry the same member.
type Mapping struct {
	TargetName string
	Entity     reflect.Type
}

// MapTo creates a directive forwarding to the named wrapped-type member.
func MapTo(target string) Mapping { return Mapping{TargetName: target} }

// MapSame creates a directive keeping the member's own name. Useful when the
// directive only exists to carry an entity scope.
func MapSame() Mapping { return Mapping{} }

// ForEntity scopes the directive to the exact dynamic type of entity.
// Pass a pointer to scope to the pointer type.
func (m Mapping) ForEntity(entity any) Mapping {
	m.Entity = reflect.TypeOf(entity)
	return m
}

// ForEntityType scopes the directive to exactly t.
func (m Mapping) ForEntityType(t reflect.Type) Mapping {
	m.Entity = t
	return m
}

// Method is a callable member of a spec: an exact parameter and result type
// list plus its ordered mapping directives.
type Method struct {
	Name     string
	In       []reflect.Type
	Out      []reflect.Type
	Mappings []Mapping
}

// Property is a value member of a spec. Keys is empty for a plain property
// and holds the index parameter types for an indexed property.
type Property struct {
	Name     string
	Type     reflect.Type
	Keys     []reflect.Type
	Mappings []Mapping
}

// In builds a method parameter type list.
func In(types ...reflect.Type) []reflect.Type { return types }

// Out builds a method result type list.
func Out(types ...reflect.Type) []reflect.Type { return types }

// Keys builds an indexed-property key type list.
func Keys(types ...reflect.Type) []reflect.Type { return types }

// Spec is an immutable adapter specification: the contract an adapter must
// expose, one member at a time. Build one with NewSpec.
type Spec struct {
	name    string
	target  string
	methods []Method
	props   []Property
}

// Name returns the declaration name of the spec.
func (s *Spec) Name() string { return s.name }

// Target returns the name of the contract the generated adapter stands in
// for. It defaults to the spec's own name unless ImplementsAs was used.
func (s *Spec) Target() string {
	if s.target == "" {
		return s.name
	}
	return s.target
}

// Methods returns a snapshot of the spec's methods.
func (s *Spec) Methods() []Method {
	out := make([]Method, len(s.methods))
	copy(out, s.methods)
	return out
}

// Properties returns a snapshot of the spec's properties.
func (s *Spec) Properties() []Property {
	out := make([]Property, len(s.props))
	copy(out, s.props)
	return out
}

// SpecBuilder assembles a Spec fluently. Not safe for concurrent use; the
// built Spec is.
type SpecBuilder struct {
	spec Spec
}

// NewSpec starts a builder for a spec with the given declaration name.
func NewSpec(name string) *SpecBuilder {
	return &SpecBuilder{spec: Spec{name: name}}
}

// ImplementsAs declares that adapters built from this spec stand in for the
// named contract rather than for the spec itself.
func (b *SpecBuilder) ImplementsAs(target string) *SpecBuilder {
	b.spec.target = target
	return b
}

// Method adds a method member with exact parameter and result types and its
// ordered mapping directives.
func (b *SpecBuilder) Method(name string, in, out []reflect.Type, maps ...Mapping) *SpecBuilder {
	b.spec.methods = append(b.spec.methods, Method{
		Name:     name,
		In:       append([]reflect.Type(nil), in...),
		Out:      append([]reflect.Type(nil), out...),
		Mappings: append([]Mapping(nil), maps...),
	})
	return b
}

// Property adds a plain property member of the given type.
func (b *SpecBuilder) Property(name string, typ reflect.Type, maps ...Mapping) *SpecBuilder {
	b.spec.props = append(b.spec.props, Property{
		Name:     name,
		Type:     typ,
		Mappings: append([]Mapping(nil), maps...),
	})
	return b
}

// Indexer adds an indexed property member: a value of the given type reached
// through the given key types.
func (b *SpecBuilder) Indexer(name string, typ reflect.Type, keys []reflect.Type, maps ...Mapping) *SpecBuilder {
	b.spec.props = append(b.spec.props, Property{
		Name:     name,
		Type:     typ,
		Keys:     append([]reflect.Type(nil), keys...),
		Mappings: append([]Mapping(nil), maps...),
	})
	return b
}

// Build finalizes the spec. The builder may be reused afterwards without
// affecting the returned spec.
func (b *SpecBuilder) Build() *Spec {
	s := &Spec{
		name:    b.spec.name,
		target:  b.spec.target,
		methods: make([]Method, len(b.spec.methods)),
		props:   make([]Property, len(b.spec.props)),
	}
	for i, m := range b.spec.methods {
		s.methods[i] = Method{
			Name:     m.Name,
			In:       append([]reflect.Type(nil), m.In...),
			Out:      append([]reflect.Type(nil), m.Out...),
			Mappings: append([]Mapping(nil), m.Mappings...),
		}
	}
	for i, p := range b.spec.props {
		s.props[i] = Property{
			Name:     p.Name,
			Type:     p.Type,
			Keys:     append([]reflect.Type(nil), p.Keys...),
			Mappings: append([]Mapping(nil), p.Mappings...),
		}
	}
	return s
}
