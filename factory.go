package facade

import (
	"reflect"

	"go.uber.org/zap"
)

// Options configure a Factory.
type Options struct {
	Logger        *zap.Logger // build diagnostics; zap.NewNop() when unset
	BuildWarnings bool        // log one warning per unresolved member at build time
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithBuildWarnings controls whether unresolved members are logged when an
// adapter type is built. Unresolved members are never an error at build time
// either way.
func WithBuildWarnings(v bool) Option { return func(o *Options) { o.BuildWarnings = v } }

// Factory builds and caches adapter types and creates adapter instances.
// Safe for concurrent use.
type Factory struct {
	cache   typeCache
	options Options
	log     *zap.Logger
}

// New creates a Factory with default options.
func New() *Factory { return NewWithOptions() }

// NewWithOptions creates a Factory with the provided options.
func NewWithOptions(opts ...Option) *Factory {
	o := Options{BuildWarnings: true}
	for _, f := range opts {
		f(&o)
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{options: o, log: log}
}

// AdapterType returns the adapter type for the (spec, wrapped) pair, building
// it on first request. Repeated and concurrent requests for the same pair
// return the identical type; spec identity is pointer identity. Building
// never fails on unresolved members; only nil or malformed inputs are
// rejected.
func (f *Factory) AdapterType(spec *Spec, wrapped reflect.Type) (*AdapterType, error) {
	if spec == nil {
		return nil, invalidf("nil spec")
	}
	if spec.Name() == "" {
		return nil, invalidf("spec has no name")
	}
	if wrapped == nil {
		return nil, invalidf("nil wrapped type")
	}
	t := f.cache.getOrBuild(typeKey{wrapped: wrapped, spec: spec}, func() *AdapterType {
		f.log.Debug("building adapter type",
			zap.String("spec", spec.Name()),
			zap.String("wrapped", wrapped.String()))
		desc := buildDescriptor(spec, wrapped)
		if f.options.BuildWarnings {
			for _, sm := range desc.order {
				if !sm.resolved {
					f.log.Warn("member left unresolved",
						zap.String("spec", spec.Name()),
						zap.String("member", sm.name()),
						zap.String("wrapped", wrapped.String()))
				}
			}
		}
		return emitType(desc)
	})
	return t, nil
}

// Adapt creates an adapter instance around obj, resolving members against
// obj's dynamic type.
func (f *Factory) Adapt(spec *Spec, obj any) (*Instance, error) {
	if obj == nil {
		return nil, invalidf("nil instance")
	}
	return f.AdaptAs(spec, obj, reflect.TypeOf(obj))
}

// AdaptAs creates an adapter instance around obj, resolving members against
// the explicitly given wrapped type instead of obj's dynamic type. Passing an
// interface type adapts against that interface's member set even when obj is
// a concrete value.
func (f *Factory) AdaptAs(spec *Spec, obj any, wrapped reflect.Type) (*Instance, error) {
	if obj == nil {
		return nil, invalidf("nil instance")
	}
	t, err := f.AdapterType(spec, wrapped)
	if err != nil {
		return nil, err
	}
	return t.New(obj)
}
