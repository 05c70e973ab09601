package facade

import "reflect"

type targetKind int

const (
	targetMethod targetKind = iota
	targetField
)

// resolution is the outcome of matching one spec member against the wrapped
// type: the wrapped member to forward to.
type resolution struct {
	kind       targetKind
	target     string
	fieldIndex []int
}

// resolveMethod matches a spec method against the wrapped type. Directives
// run in declaration order; the first whose entity scope admits the wrapped
// type and whose target exists with an identical signature wins. When no
// directive matched, the method's own name is tried as the default mapping.
func resolveMethod(m Method, wrapped reflect.Type) (resolution, bool) {
	for _, d := range m.Mappings {
		if d.Entity != nil && d.Entity != wrapped {
			continue
		}
		name := d.TargetName
		if name == "" {
			name = m.Name
		}
		if hasMethod(wrapped, name, m.In, m.Out) {
			return resolution{kind: targetMethod, target: name}, true
		}
	}
	if hasMethod(wrapped, m.Name, m.In, m.Out) {
		return resolution{kind: targetMethod, target: m.Name}, true
	}
	return resolution{}, false
}

func resolveProperty(p Property, wrapped reflect.Type) (resolution, bool) {
	if len(p.Keys) > 0 {
		return resolveIndexed(p, wrapped)
	}
	for _, d := range p.Mappings {
		if d.Entity != nil && d.Entity != wrapped {
			continue
		}
		name := d.TargetName
		if name == "" {
			name = p.Name
		}
		if r, ok := fieldTarget(wrapped, name, p.Type); ok {
			return r, true
		}
	}
	return fieldTarget(wrapped, p.Name, p.Type)
}

// resolveIndexed matches an indexed property: a method whose parameters are
// the key types and whose single result is the property type. When a
// directive carries no explicit target name and its by-name match fails, the
// wrapped type's methods are scanned for the one method with that exact
// index signature; anything other than exactly one candidate leaves the
// directive unmatched. The default mapping is a plain same-name lookup, so a
// directive that names a missing target explicitly stays unresolved even
// when a unique signature match exists.
func resolveIndexed(p Property, wrapped reflect.Type) (resolution, bool) {
	out := []reflect.Type{p.Type}
	for _, d := range p.Mappings {
		if d.Entity != nil && d.Entity != wrapped {
			continue
		}
		name := d.TargetName
		if name == "" {
			name = p.Name
		}
		if hasMethod(wrapped, name, p.Keys, out) {
			return resolution{kind: targetMethod, target: name}, true
		}
		if d.TargetName == "" {
			if sole, ok := soleIndexSignature(wrapped, p.Keys, p.Type); ok {
				return resolution{kind: targetMethod, target: sole}, true
			}
		}
	}
	if hasMethod(wrapped, p.Name, p.Keys, out) {
		return resolution{kind: targetMethod, target: p.Name}, true
	}
	return resolution{}, false
}

// hasMethod reports whether wrapped has a method with the exact signature.
// Signatures match on arity and type identity, not assignability; variadic
// methods never match.
func hasMethod(wrapped reflect.Type, name string, in, out []reflect.Type) bool {
	m, ok := wrapped.MethodByName(name)
	if !ok {
		return false
	}
	return signatureEqual(wrapped, m, in, out)
}

func signatureEqual(wrapped reflect.Type, m reflect.Method, in, out []reflect.Type) bool {
	ft := m.Type
	if ft.IsVariadic() {
		return false
	}
	// Non-interface method types carry the receiver as the first parameter.
	off := 0
	if wrapped.Kind() != reflect.Interface {
		off = 1
	}
	if ft.NumIn()-off != len(in) || ft.NumOut() != len(out) {
		return false
	}
	for i, t := range in {
		if ft.In(i+off) != t {
			return false
		}
	}
	for i, t := range out {
		if ft.Out(i) != t {
			return false
		}
	}
	return true
}

// soleIndexSignature scans every method of wrapped for the index signature
// (keys...) -> value and returns its name when exactly one method matches.
func soleIndexSignature(wrapped reflect.Type, keys []reflect.Type, value reflect.Type) (string, bool) {
	out := []reflect.Type{value}
	found := ""
	for i := 0; i < wrapped.NumMethod(); i++ {
		m := wrapped.Method(i)
		if !signatureEqual(wrapped, m, keys, out) {
			continue
		}
		if found != "" {
			return "", false
		}
		found = m.Name
	}
	return found, found != ""
}

// fieldTarget matches a plain property to an exported field of identical
// type, looking through a pointer wrapped type and promoted embedded fields.
func fieldTarget(wrapped reflect.Type, name string, typ reflect.Type) (resolution, bool) {
	st := wrapped
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return resolution{}, false
	}
	f, ok := st.FieldByName(name)
	if !ok || f.PkgPath != "" || f.Type != typ {
		return resolution{}, false
	}
	return resolution{kind: targetField, target: name, fieldIndex: f.Index}, true
}
