// Package gen renders compilable Go source for an adapter described by a
// facade.Descriptor: a concrete struct holding the wrapped value, a
// constructor, one forwarding method per resolved member and one failing
// method per unresolved member. Writing the result anywhere is the caller's
// concern.
package gen

import (
	"fmt"
	"go/format"
	"go/token"
	"reflect"
	"sort"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/facade"
)

const facadePath = "github.com/Station-Manager/facade"

// Options control the generated file.
type Options struct {
	Package  string // package clause; defaults to "adapters"
	TypeName string // generated type name; defaults to <SpecName>Adapter
}

// Source renders the adapter source file for desc.
func Source(desc *facade.Descriptor, opts Options) ([]byte, error) {
	const op errors.Op = "gen.Source"
	if desc == nil {
		return nil, errors.New(op).Msg("nil descriptor")
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = "adapters"
	}
	typeName := opts.TypeName
	if typeName == "" {
		typeName = desc.Spec().Name() + "Adapter"
	}
	if !token.IsIdentifier(pkg) || !token.IsIdentifier(typeName) {
		return nil, errors.New(op).Errorf("invalid identifier: package %q, type %q", pkg, typeName)
	}

	imp := newImports()
	var body strings.Builder
	wrappedT := imp.typeString(desc.Wrapped())

	fmt.Fprintf(&body, "// %s adapts %s to the %s contract.\n", typeName, desc.Wrapped(), desc.Target())
	fmt.Fprintf(&body, "type %s struct {\n\twrapped %s\n}\n\n", typeName, wrappedT)
	fmt.Fprintf(&body, "// New%s wraps a value without copying it.\n", typeName)
	fmt.Fprintf(&body, "func New%s(wrapped %s) *%s {\n\treturn &%s{wrapped: wrapped}\n}\n\n",
		typeName, wrappedT, typeName, typeName)

	for _, m := range desc.Members() {
		switch m.Kind {
		case facade.KindMethod:
			writeMethod(&body, imp, typeName, m)
		case facade.KindProperty:
			writeProperty(&body, imp, typeName, m)
		case facade.KindIndexer:
			writeIndexer(&body, imp, typeName, m)
		}
	}

	var file strings.Builder
	fmt.Fprintf(&file, "// Code generated for spec %s; do not edit by hand.\n\n", desc.Spec().Name())
	fmt.Fprintf(&file, "package %s\n\n", pkg)
	file.WriteString(imp.clause())
	file.WriteString(body.String())

	src, err := format.Source([]byte(file.String()))
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return src, nil
}

func writeMethod(w *strings.Builder, imp *imports, typeName string, m facade.MemberInfo) {
	params, args := paramList(imp, m.In, "p")
	results := resultList(imp, m.Out)
	fmt.Fprintf(w, "func (a *%s) %s(%s)%s {\n", typeName, m.Name, params, results)
	if !m.Resolved {
		writeUnsupported(w, imp, m.Name)
	} else if len(m.Out) > 0 {
		fmt.Fprintf(w, "\treturn a.wrapped.%s(%s)\n", m.Target, args)
	} else {
		fmt.Fprintf(w, "\ta.wrapped.%s(%s)\n", m.Target, args)
	}
	w.WriteString("}\n\n")
}

func writeProperty(w *strings.Builder, imp *imports, typeName string, m facade.MemberInfo) {
	vt := imp.typeString(m.Type)
	fmt.Fprintf(w, "func (a *%s) %s() %s {\n", typeName, m.Name, vt)
	if m.Resolved {
		fmt.Fprintf(w, "\treturn a.wrapped.%s\n", m.Target)
	} else {
		writeUnsupported(w, imp, m.Name)
	}
	w.WriteString("}\n\n")
	fmt.Fprintf(w, "func (a *%s) Set%s(value %s) {\n", typeName, m.Name, vt)
	if m.Resolved {
		fmt.Fprintf(w, "\ta.wrapped.%s = value\n", m.Target)
	} else {
		writeUnsupported(w, imp, m.Name)
	}
	w.WriteString("}\n\n")
}

func writeIndexer(w *strings.Builder, imp *imports, typeName string, m facade.MemberInfo) {
	params, args := paramList(imp, m.In, "k")
	fmt.Fprintf(w, "func (a *%s) %s(%s) %s {\n", typeName, m.Name, params, imp.typeString(m.Type))
	if m.Resolved {
		fmt.Fprintf(w, "\treturn a.wrapped.%s(%s)\n", m.Target, args)
	} else {
		writeUnsupported(w, imp, m.Name)
	}
	w.WriteString("}\n\n")
}

// writeUnsupported emits the deferred-failure body: generation always
// succeeds, invoking the member panics with the sentinel.
func writeUnsupported(w *strings.Builder, imp *imports, member string) {
	fmtName := imp.add("fmt")
	facadeName := imp.add(facadePath)
	fmt.Fprintf(w, "\tpanic(%s.Errorf(\"%%w: member %%q has no resolved target\", %s.ErrUnsupportedOperation, %q))\n",
		fmtName, facadeName, member)
}

func paramList(imp *imports, types []reflect.Type, prefix string) (params, args string) {
	ps := make([]string, len(types))
	as := make([]string, len(types))
	for i, t := range types {
		name := fmt.Sprintf("%s%d", prefix, i)
		ps[i] = name + " " + imp.typeString(t)
		as[i] = name
	}
	return strings.Join(ps, ", "), strings.Join(as, ", ")
}

func resultList(imp *imports, types []reflect.Type) string {
	switch len(types) {
	case 0:
		return ""
	case 1:
		return " " + imp.typeString(types[0])
	}
	rs := make([]string, len(types))
	for i, t := range types {
		rs[i] = imp.typeString(t)
	}
	return " (" + strings.Join(rs, ", ") + ")"
}

// imports accumulates the import clause while types are rendered.
type imports struct {
	names map[string]string // path -> local name
	used  map[string]bool   // local names taken
}

func newImports() *imports {
	return &imports{names: map[string]string{}, used: map[string]bool{}}
}

func (imp *imports) add(path string) string {
	if n, ok := imp.names[path]; ok {
		return n
	}
	base := path[strings.LastIndex(path, "/")+1:]
	name := base
	for i := 2; imp.used[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	imp.names[path] = name
	imp.used[name] = true
	return name
}

func (imp *imports) clause() string {
	if len(imp.names) == 0 {
		return ""
	}
	paths := make([]string, 0, len(imp.names))
	for p := range imp.names {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	var b strings.Builder
	b.WriteString("import (\n")
	for _, p := range paths {
		name := imp.names[p]
		if strings.HasSuffix(p, "/"+name) || p == name {
			fmt.Fprintf(&b, "\t%q\n", p)
		} else {
			fmt.Fprintf(&b, "\t%s %q\n", name, p)
		}
	}
	b.WriteString(")\n\n")
	return b.String()
}

func (imp *imports) typeString(t reflect.Type) string {
	if t == nil {
		return "any"
	}
	if t.PkgPath() != "" {
		return imp.add(t.PkgPath()) + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + imp.typeString(t.Elem())
	case reflect.Slice:
		return "[]" + imp.typeString(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), imp.typeString(t.Elem()))
	case reflect.Map:
		return "map[" + imp.typeString(t.Key()) + "]" + imp.typeString(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any"
		}
		return t.String()
	default:
		return t.String()
	}
}
