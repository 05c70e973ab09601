// Package facade generates adapter types on demand so that a value of one
// shape can be used where an unrelated interface-like contract is required,
// without the value's type implementing that contract itself.
//
// An adapter spec describes the contract (methods, properties, indexed
// properties) together with optional ordered mapping directives that redirect
// a member to a differently named member of the wrapped type, optionally
// scoped to one exact wrapped type.
//
// # Basic Usage
//
//	spec := facade.NewSpec("Greeter").
//	        Method("Hello", facade.In(facade.T[string]()), facade.Out(facade.T[string]())).
//	        Build()
//
//	factory := facade.New()
//	inst, err := factory.Adapt(spec, &person)
//	out, err := inst.Call("Hello", "world")
//
// # Resolution Rules
//
// Each spec member is resolved against the wrapped type in order:
//  1. Mapping directives, in declaration order. A directive matches when a
//     member named by its target (or the spec member's own name) exists on
//     the wrapped type with an identical signature, and its entity scope, if
//     set, equals the wrapped type exactly.
//  2. For directives on indexed properties that carry no explicit target
//     name, a fallback scan selects the method whose key and value types
//     match exactly, if exactly one such method exists.
//  3. When no directive matched, the member's own name is tried as a default
//     mapping (a plain lookup, without the fallback scan).
//  4. Otherwise the member is left unresolved.
//
// Unresolved members never fail adapter generation. They fail with
// ErrUnsupportedOperation when invoked on an instance.
//
// # Properties
//
// A plain property resolves to an exported struct field of identical type.
// An indexed property resolves to a method whose parameter types equal the
// key types and whose single result equals the property type; indexed
// properties are read-only through the adapter.
//
// # Wrapped Values
//
// An instance holds a reference to the value it was created with, never a
// copy, so mutations of the wrapped value are visible through the adapter.
// Pass a pointer when the wrapped type has pointer-receiver methods or when
// properties must be settable.
//
// # Thread Safety
//
// A Factory is safe for concurrent use. Adapter types are built once per
// (wrapped type, spec) pair and shared for the lifetime of the factory;
// concurrent requests for the same pair observe a single build and receive
// the identical type.
package facade
