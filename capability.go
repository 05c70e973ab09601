package facade

// Capability interfaces over an adapter instance. Callers that only need one
// kind of dispatch can depend on the narrow contract instead of *Instance.

// Caller invokes method members by name.
type Caller interface {
	Call(name string, args ...any) ([]any, error)
}

// PropertyReader reads plain property members.
type PropertyReader interface {
	Get(name string) (any, error)
}

// PropertyWriter writes plain property members.
type PropertyWriter interface {
	Set(name string, value any) error
}

// Indexer reads indexed property members.
type Indexer interface {
	At(name string, keys ...any) (any, error)
}

var (
	_ Caller         = (*Instance)(nil)
	_ PropertyReader = (*Instance)(nil)
	_ PropertyWriter = (*Instance)(nil)
	_ Indexer        = (*Instance)(nil)
)
