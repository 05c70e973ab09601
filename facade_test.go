package facade

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared fixtures. None of these types implement anything; the factory does
// the bridging.

type Person struct {
	Name string
	Age  int
}

func (p *Person) Greeting(prefix string) string { return prefix + ", " + p.Name }

func (p *Person) Birthday() { p.Age++ }

type Sink struct {
	lines []string
}

func (s *Sink) Write(text string) { s.lines = append(s.lines, text) }

type Grid struct {
	cols int
}

func (g *Grid) CellAt(i, j int) int { return i*g.cols + j }

type TwinGrid struct{}

func (g *TwinGrid) Alpha(i, j int) int { return i + j }

func (g *TwinGrid) Beta(i, j int) int { return i * j }

type OtherEntity struct {
	Other string
}

var (
	stringT = T[string]()
	intT    = T[int]()
)

func TestFactory_PropertyDefaultMapping(t *testing.T) {
	// Scenario: property with no directive forwards to the same-name field,
	// and the adapter sees mutations of the wrapped value.
	spec := NewSpec("Named").
		Property("Name", stringT).
		Build()

	p := &Person{Name: "Alice"}
	inst, err := New().Adapt(spec, p)
	require.NoError(t, err)

	got, err := inst.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)

	p.Name = "Bob"
	got, err = inst.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got)
}

func TestFactory_MethodIdentityForwarding(t *testing.T) {
	spec := NewSpec("Greeter").
		Method("Greeting", In(stringT), Out(stringT)).
		Build()

	p := &Person{Name: "Alice"}
	inst, err := New().Adapt(spec, p)
	require.NoError(t, err)

	out, err := inst.Call("Greeting", "Hello")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, p.Greeting("Hello"), out[0])
}

func TestFactory_MethodNoResults(t *testing.T) {
	spec := NewSpec("Aging").
		Method("Birthday", In(), Out()).
		Build()

	p := &Person{Age: 30}
	inst, err := New().Adapt(spec, p)
	require.NoError(t, err)

	out, err := inst.Call("Birthday")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 31, p.Age)
}

func TestFactory_MappedMethodWithEntityScope(t *testing.T) {
	// Log is redirected to Write, scoped to exactly *Sink.
	spec := NewSpec("Logger").
		Method("Log", In(stringT), Out(),
			MapTo("Write").ForEntity(&Sink{})).
		Build()

	s := &Sink{}
	inst, err := New().Adapt(spec, s)
	require.NoError(t, err)

	_, err = inst.Call("Log", "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, s.lines)
}

func TestFactory_EntityScopeIsExact(t *testing.T) {
	// The directive is scoped to the value type Sink; the wrapped type is
	// *Sink. Exact equality means the directive does not apply, the default
	// mapping finds no method named Log, and the member stays unresolved.
	spec := NewSpec("Logger").
		Method("Log", In(stringT), Out(),
			MapTo("Write").ForEntityType(T[Sink]())).
		Build()

	f := New()
	at, err := f.AdapterType(spec, T[*Sink]())
	require.NoError(t, err)

	inst, err := at.New(&Sink{})
	require.NoError(t, err)
	_, err = inst.Call("Log", "hi")
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestFactory_ScopedPropertyUnresolved(t *testing.T) {
	// Scenario: the only directive for Other is scoped to a different entity
	// type. Generation succeeds; reading the member fails.
	spec := NewSpec("Describable").
		Property("Other", stringT,
			MapSame().ForEntity(&OtherEntity{})).
		Build()

	f := New()
	_, err := f.AdapterType(spec, T[*Person]())
	require.NoError(t, err)

	inst, err := f.Adapt(spec, &Person{Name: "Alice"})
	require.NoError(t, err)
	_, err = inst.Get("Other")
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestFactory_IndexerBadTargetDeferredFailure(t *testing.T) {
	// Scenario: the indexer names a nonexistent target. The type still
	// builds; invoking the indexer fails.
	spec := NewSpec("Matrix").
		Indexer("Cell", intT, Keys(intT, intT),
			MapTo("NoSuchMethod")).
		Build()

	f := New()
	_, err := f.AdapterType(spec, T[*Grid]())
	require.NoError(t, err)

	inst, err := f.Adapt(spec, &Grid{cols: 10})
	require.NoError(t, err)
	_, err = inst.At("Cell", 1, 2)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestFactory_IndexerSignatureFallback(t *testing.T) {
	// The directive has no explicit target and no method is named Cell; the
	// sole method with the (int, int) -> int signature is selected.
	spec := NewSpec("Matrix").
		Indexer("Cell", intT, Keys(intT, intT), MapSame()).
		Build()

	inst, err := New().Adapt(spec, &Grid{cols: 10})
	require.NoError(t, err)

	got, err := inst.At("Cell", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestFactory_IndexerAmbiguousFallbackUnresolved(t *testing.T) {
	// Two methods share the index signature; neither is picked.
	spec := NewSpec("Matrix").
		Indexer("Cell", intT, Keys(intT, intT), MapSame()).
		Build()

	inst, err := New().Adapt(spec, &TwinGrid{})
	require.NoError(t, err)

	_, err = inst.At("Cell", 1, 2)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestFactory_SetProperty(t *testing.T) {
	spec := NewSpec("Named").
		Property("Name", stringT).
		Build()

	p := &Person{Name: "Alice"}
	inst, err := New().Adapt(spec, p)
	require.NoError(t, err)

	require.NoError(t, inst.Set("Name", "Carol"))
	assert.Equal(t, "Carol", p.Name)
}

func TestFactory_SetOnValueWrapIsInvalid(t *testing.T) {
	spec := NewSpec("Named").
		Property("Name", stringT).
		Build()

	inst, err := New().Adapt(spec, Person{Name: "Alice"})
	require.NoError(t, err)

	// Reads work against the copied value.
	got, err := inst.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)

	err = inst.Set("Name", "Carol")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFactory_InvalidArguments(t *testing.T) {
	f := New()
	spec := NewSpec("Named").Property("Name", stringT).Build()

	_, err := f.AdapterType(nil, T[*Person]())
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.AdapterType(spec, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.AdapterType(NewSpec("").Build(), T[*Person]())
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.Adapt(spec, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.AdaptAs(spec, nil, T[*Person]())
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Value not assignable to the explicit wrapped type.
	_, err = f.AdaptAs(spec, &Sink{}, T[*Person]())
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInstance_CallArgumentChecks(t *testing.T) {
	spec := NewSpec("Greeter").
		Method("Greeting", In(stringT), Out(stringT)).
		Build()

	inst, err := New().Adapt(spec, &Person{Name: "Alice"})
	require.NoError(t, err)

	_, err = inst.Call("Greeting")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = inst.Call("Greeting", 42)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = inst.Call("NoSuchMember", "x")
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Property dispatched as a method.
	spec2 := NewSpec("Named").Property("Name", stringT).Build()
	inst2, err := New().Adapt(spec2, &Person{})
	require.NoError(t, err)
	_, err = inst2.Call("Name")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

type StringWriter interface {
	Write(text string)
}

func TestFactory_AdaptAsInterfaceWrappedType(t *testing.T) {
	// Resolution against the interface's member set; dispatch against the
	// concrete value.
	spec := NewSpec("Logger").
		Method("Log", In(stringT), Out(),
			MapTo("Write").ForEntityType(T[StringWriter]())).
		Build()

	s := &Sink{}
	inst, err := New().AdaptAs(spec, s, T[StringWriter]())
	require.NoError(t, err)

	_, err = inst.Call("Log", "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, s.lines)
}

func TestFactory_UnwrapReturnsSameReference(t *testing.T) {
	spec := NewSpec("Named").Property("Name", stringT).Build()
	p := &Person{Name: "Alice"}

	inst, err := New().Adapt(spec, p)
	require.NoError(t, err)
	assert.Same(t, p, inst.Unwrap())
}

func TestAdapterType_Describe(t *testing.T) {
	spec := NewSpec("Logger").
		ImplementsAs("LogSink").
		Method("Log", In(stringT), Out(), MapTo("Write").ForEntity(&Sink{})).
		Property("Missing", stringT, MapTo("Nope")).
		Build()

	at, err := New().AdapterType(spec, T[*Sink]())
	require.NoError(t, err)

	raw, err := at.Describe()
	require.NoError(t, err)

	var doc struct {
		Spec       string `json:"spec"`
		Implements string `json:"implements"`
		Wrapped    string `json:"wrapped"`
		Members    []struct {
			Name     string `json:"name"`
			Kind     string `json:"kind"`
			Resolved bool   `json:"resolved"`
			Target   string `json:"target"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "Logger", doc.Spec)
	assert.Equal(t, "LogSink", doc.Implements)
	assert.Equal(t, "*facade.Sink", doc.Wrapped)
	require.Len(t, doc.Members, 2)
	assert.Equal(t, "Log", doc.Members[0].Name)
	assert.Equal(t, "method", doc.Members[0].Kind)
	assert.True(t, doc.Members[0].Resolved)
	assert.Equal(t, "Write", doc.Members[0].Target)
	assert.False(t, doc.Members[1].Resolved)
	assert.Empty(t, doc.Members[1].Target)
}

func TestMustAdapt(t *testing.T) {
	spec := NewSpec("Named").Property("Name", stringT).Build()

	inst := MustAdapt(New(), spec, &Person{Name: "Alice"})
	got, err := inst.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)

	assert.Panics(t, func() { MustAdapt(New(), spec, nil) })
}
