package facade

import (
	"reflect"
	"strings"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Instance is an adapter value: an AdapterType bound to one wrapped value.
// It holds the wrapped value by reference and performs no locking of its own;
// the wrapped value's thread-safety is the caller's concern.
type Instance struct {
	t     *AdapterType
	recv  reflect.Value
	calls map[string]reflect.Value // bound method values per member name
}

// Type returns the adapter type of the instance.
func (in *Instance) Type() *AdapterType { return in.t }

// Unwrap returns the wrapped value.
func (in *Instance) Unwrap() any { return in.recv.Interface() }

// Call invokes a method member, passing args through positionally and
// returning the target's results unchanged. Calling an unresolved member
// returns ErrUnsupportedOperation.
func (in *Instance) Call(name string, args ...any) ([]any, error) {
	b, err := in.binding(name, KindMethod)
	if err != nil {
		return nil, err
	}
	vals, err := in.argValues(b, args)
	if err != nil {
		return nil, err
	}
	m, ok := in.calls[b.name]
	if !ok {
		return nil, invalidf("wrapped value %s has no method %q", in.recv.Type(), b.target)
	}
	res := m.Call(vals)
	out := make([]any, len(res))
	for i, v := range res {
		out[i] = v.Interface()
	}
	return out, nil
}

// Get reads a plain property member.
func (in *Instance) Get(name string) (any, error) {
	b, err := in.binding(name, KindProperty)
	if err != nil {
		return nil, err
	}
	fv, ok := in.fieldByIndex(b.index)
	if !ok {
		return nil, invalidf("nil embedded pointer on path to property %q", name)
	}
	return fv.Interface(), nil
}

// Set writes a plain property member. The wrapped value must have been
// provided as a pointer for its fields to be settable.
func (in *Instance) Set(name string, value any) error {
	b, err := in.binding(name, KindProperty)
	if err != nil {
		return err
	}
	fv, ok := in.fieldByIndex(b.index)
	if !ok {
		return invalidf("nil embedded pointer on path to property %q", name)
	}
	if !fv.CanSet() {
		return invalidf("property %q is not settable; wrap a pointer value", name)
	}
	if value == nil {
		if !nilable(b.propType) {
			return invalidf("property %q of type %s cannot be set to nil", name, b.propType)
		}
		fv.Set(reflect.Zero(b.propType))
		return nil
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(b.propType) {
		return invalidf("property %q: %s is not assignable to %s", name, v.Type(), b.propType)
	}
	fv.Set(v)
	return nil
}

// At reads an indexed property member with the given keys.
func (in *Instance) At(name string, keys ...any) (any, error) {
	b, err := in.binding(name, KindIndexer)
	if err != nil {
		return nil, err
	}
	vals, err := in.argValues(b, keys)
	if err != nil {
		return nil, err
	}
	m, ok := in.calls[b.name]
	if !ok {
		return nil, invalidf("wrapped value %s has no method %q", in.recv.Type(), b.target)
	}
	return m.Call(vals)[0].Interface(), nil
}

// Bind fills every exported func field of *target with a forwarder to the
// member of the same name, giving statically typed call sites. Method fields
// must match the member signature exactly, optionally with one trailing error
// result; a property named P binds its getter to a field P of form func() T
// and its setter to a field SetP of form func(T), again each with an optional
// trailing error; indexer fields take the form func(keys...) T.
//
// Binding an unresolved member succeeds. Invoking its forwarder returns
// ErrUnsupportedOperation through the trailing error result, or panics with
// it when the field has none.
func (in *Instance) Bind(target any) error {
	if target == nil {
		return invalidf("nil bind target")
	}
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.Elem().Kind() != reflect.Struct {
		return invalidf("bind target must be a pointer to a struct, got %T", target)
	}
	sv := tv.Elem()
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.PkgPath != "" || f.Type.Kind() != reflect.Func {
			continue
		}
		b := in.t.bindings[f.Name]
		setter := false
		if b == nil {
			if rest, found := strings.CutPrefix(f.Name, "Set"); found {
				if pb := in.t.bindings[rest]; pb != nil && pb.kind == KindProperty {
					b, setter = pb, true
				}
			}
		}
		if b == nil {
			return invalidf("spec %s has no member %q", in.t.desc.spec.Name(), f.Name)
		}
		fn, err := in.forwarder(b, setter, f.Type)
		if err != nil {
			return err
		}
		sv.Field(i).Set(fn)
	}
	return nil
}

func (in *Instance) binding(name string, want MemberKind) (*binding, error) {
	b := in.t.bindings[name]
	if b == nil {
		return nil, invalidf("spec %s has no member %q", in.t.desc.spec.Name(), name)
	}
	if b.kind != want {
		return nil, invalidf("member %q is a %s, not a %s", name, b.kind, want)
	}
	if b.err != nil {
		return nil, b.err
	}
	return b, nil
}

func (in *Instance) argValues(b *binding, args []any) ([]reflect.Value, error) {
	if len(args) != len(b.in) {
		return nil, invalidf("member %q takes %d arguments, got %d", b.name, len(b.in), len(args))
	}
	vals := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			if !nilable(b.in[i]) {
				return nil, invalidf("member %q: argument %d of type %s cannot be nil", b.name, i, b.in[i])
			}
			vals[i] = reflect.Zero(b.in[i])
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(b.in[i]) {
			return nil, invalidf("member %q: argument %d is %s, want %s", b.name, i, v.Type(), b.in[i])
		}
		vals[i] = v
	}
	return vals, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

// fieldByIndex walks an embedded field path without panicking on nil
// embedded pointers along the way.
func (in *Instance) fieldByIndex(index []int) (reflect.Value, bool) {
	v := in.recv
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// forwarder compiles one bound func for Bind.
func (in *Instance) forwarder(b *binding, setter bool, ft reflect.Type) (reflect.Value, error) {
	var wantIn, wantOut []reflect.Type
	switch {
	case b.kind == KindMethod || b.kind == KindIndexer:
		wantIn, wantOut = b.in, b.out
	case setter:
		wantIn, wantOut = []reflect.Type{b.propType}, nil
	default:
		wantIn, wantOut = nil, []reflect.Type{b.propType}
	}
	withErr, err := checkForwarderSignature(b, ft, wantIn, wantOut)
	if err != nil {
		return reflect.Value{}, err
	}
	impl := func(args []reflect.Value) []reflect.Value {
		res, callErr := in.dispatch(b, setter, args)
		if callErr != nil {
			if !withErr {
				panic(callErr)
			}
			out := make([]reflect.Value, ft.NumOut())
			for i := 0; i < ft.NumOut()-1; i++ {
				out[i] = reflect.Zero(ft.Out(i))
			}
			out[ft.NumOut()-1] = reflect.ValueOf(callErr)
			return out
		}
		if withErr {
			res = append(res, reflect.Zero(errType))
		}
		return res
	}
	return reflect.MakeFunc(ft, impl), nil
}

func checkForwarderSignature(b *binding, ft reflect.Type, wantIn, wantOut []reflect.Type) (withErr bool, err error) {
	if ft.IsVariadic() {
		return false, invalidf("member %q: variadic bind fields are not supported", b.name)
	}
	if ft.NumIn() != len(wantIn) {
		return false, invalidf("member %q: bind field takes %d parameters, want %d", b.name, ft.NumIn(), len(wantIn))
	}
	for i, t := range wantIn {
		if ft.In(i) != t {
			return false, invalidf("member %q: bind field parameter %d is %s, want %s", b.name, i, ft.In(i), t)
		}
	}
	switch ft.NumOut() {
	case len(wantOut):
	case len(wantOut) + 1:
		if ft.Out(ft.NumOut()-1) != errType {
			return false, invalidf("member %q: bind field trailing result must be error", b.name)
		}
		withErr = true
	default:
		return false, invalidf("member %q: bind field returns %d results, want %d", b.name, ft.NumOut(), len(wantOut))
	}
	for i, t := range wantOut {
		if ft.Out(i) != t {
			return false, invalidf("member %q: bind field result %d is %s, want %s", b.name, i, ft.Out(i), t)
		}
	}
	return withErr, nil
}

// dispatch executes one bound invocation with already-typed arguments.
func (in *Instance) dispatch(b *binding, setter bool, args []reflect.Value) ([]reflect.Value, error) {
	if b.err != nil {
		return nil, b.err
	}
	switch b.kind {
	case KindMethod, KindIndexer:
		m, ok := in.calls[b.name]
		if !ok {
			return nil, invalidf("wrapped value %s has no method %q", in.recv.Type(), b.target)
		}
		return m.Call(args), nil
	default:
		fv, ok := in.fieldByIndex(b.index)
		if !ok {
			return nil, invalidf("nil embedded pointer on path to property %q", b.name)
		}
		if setter {
			if !fv.CanSet() {
				return nil, invalidf("property %q is not settable; wrap a pointer value", b.name)
			}
			fv.Set(args[0])
			return nil, nil
		}
		return []reflect.Value{fv}, nil
	}
}
