package facade

import "reflect"

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// T returns the reflect.Type of V. Works for interface types as well as
// concrete ones.
func T[V any]() reflect.Type { return reflect.TypeOf((*V)(nil)).Elem() }

// BindAs adapts obj and binds its members into a fresh func-struct of type B.
func BindAs[B any](f *Factory, spec *Spec, obj any) (*B, error) {
	inst, err := f.Adapt(spec, obj)
	if err != nil {
		return nil, err
	}
	var b B
	if err := inst.Bind(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// MustAdapt is Adapt panicking on error, for wiring code with known-good
// inputs.
func MustAdapt(f *Factory, spec *Spec, obj any) *Instance {
	inst, err := f.Adapt(spec, obj)
	if err != nil {
		panic(err)
	}
	return inst
}
