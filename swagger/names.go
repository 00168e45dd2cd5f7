package swagger

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// maxNameAttempts bounds the numeric suffixes tried before a colliding
// name falls back to the fully qualified type name.
const maxNameAttempts = 100

// pkgQualifier matches the package path qualifying a type name inside
// a reflected generic name, e.g. "github.com/acme/api." in
// "Page[github.com/acme/api.Pet]".
var pkgQualifier = regexp.MustCompile(`[\w./-]*\.`)

// qualifiedIdent matches a package qualified identifier, e.g.
// "github.com/acme/api.Pet".
var qualifiedIdent = regexp.MustCompile(`[\w./-]*\.\w+`)

// NameRegistry maps reflected types to definition names. Entries are
// never removed, so a type keeps its name for the registry's lifetime and
// no two types share a name.
//
// Lookups take a read lock; registration takes the write lock and checks
// again before assigning, so concurrent resolvers agree on one name.
type NameRegistry struct {
	mu    sync.RWMutex
	names map[reflect.Type]string // type -> chosen name
	types map[string]reflect.Type // name -> type that claimed it
}

// NewNameRegistry creates an empty registry.
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{
		names: make(map[reflect.Type]string),
		types: make(map[string]reflect.Type),
	}
}

// Resolve returns the definition name for t. Pointer types resolve to the
// name of their element type.
//
// Resolution order:
//   - a previously resolved name
//   - the ModelNamer override, verbatim
//   - the type name; generic instantiations become "Base[A, B]" using the
//     resolved names of their type arguments
//
// A name already held by another type gets a numeric suffix on its base
// (Result1, Result1[Item]), up to maxNameAttempts, after which the package
// qualified name is used.
func (r *NameRegistry) Resolve(t reflect.Type) string {
	t = indirect(t)
	if t == nil {
		return ""
	}

	r.mu.RLock()
	name, ok := r.names[t]
	r.mu.RUnlock()
	if ok {
		return name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.resolveLocked(t, make(map[reflect.Type]bool))
}

// Lookup returns the type holding name, if any.
func (r *NameRegistry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// resolveLocked resolves t with the write lock held. pending holds the
// types whose resolution is in progress on this call stack.
func (r *NameRegistry) resolveLocked(t reflect.Type, pending map[reflect.Type]bool) string {
	if name, ok := r.names[t]; ok {
		return name
	}

	if pending[t] {
		return baseName(t)
	}
	pending[t] = true
	defer delete(pending, t)

	if name := overrideName(t); name != "" {
		r.register(t, name)
		return name
	}

	args := r.typeArgNames(t, pending)

	name := niceName(t, args, 0)
	for i := 1; r.taken(name, t) && i <= maxNameAttempts; i++ {
		name = niceName(t, args, i)
	}
	if r.taken(name, t) {
		name = fullName(t)
	}

	r.register(t, name)
	return name
}

func (r *NameRegistry) taken(name string, t reflect.Type) bool {
	existing, ok := r.types[name]
	return ok && existing != t
}

func (r *NameRegistry) register(t reflect.Type, name string) {
	r.names[t] = name
	if _, ok := r.types[name]; !ok {
		r.types[name] = t
	}
}

// typeArgNames returns the resolved names of t's type arguments, or nil
// for non-generic types.
func (r *NameRegistry) typeArgNames(t reflect.Type, pending map[reflect.Type]bool) []string {
	if !isGeneric(t) {
		return nil
	}

	if g, ok := newValue(t).(Generic); ok {
		protos := g.SwaggerTypeArgs()
		names := make([]string, 0, len(protos))
		for _, p := range protos {
			names = append(names, r.argName(reflect.TypeOf(p), pending))
		}
		return names
	}

	full := t.Name()
	inner := full[strings.IndexByte(full, '[')+1 : len(full)-1]
	known := memberTypes(t)
	var names []string
	for _, arg := range splitTypeArgs(inner) {
		names = append(names, r.qualifiedArgName(arg, known, pending))
	}
	return names
}

// qualifiedArgName names a type argument spelled out in a reflected generic
// name. Qualified identifiers are matched against the types reachable from
// the generic's members, then against registered types, and resolved
// through the registry. Unmatched identifiers lose their package path.
// Pointers are dropped, as they are for descriptor-supplied arguments.
func (r *NameRegistry) qualifiedArgName(arg string, known map[string]reflect.Type, pending map[reflect.Type]bool) string {
	arg = strings.ReplaceAll(arg, "*", "")
	if at, ok := r.qualifiedType(arg, known); ok {
		return r.resolveLocked(at, pending)
	}
	return qualifiedIdent.ReplaceAllStringFunc(arg, func(ident string) string {
		if at, ok := r.qualifiedType(ident, known); ok {
			return r.resolveLocked(at, pending)
		}
		return pkgQualifier.ReplaceAllString(ident, "")
	})
}

func (r *NameRegistry) qualifiedType(name string, known map[string]reflect.Type) (reflect.Type, bool) {
	if t, ok := known[name]; ok {
		return t, true
	}
	for t := range r.names {
		if t.PkgPath() != "" && fullName(t) == name {
			return t, true
		}
	}
	return nil, false
}

// memberTypes indexes the named types used by t's fields or elements by
// their package qualified name.
func memberTypes(t reflect.Type) map[string]reflect.Type {
	known := make(map[string]reflect.Type)

	var add func(reflect.Type)
	add = func(mt reflect.Type) {
		for mt.Name() == "" {
			switch mt.Kind() {
			case reflect.Pointer, reflect.Slice, reflect.Array:
				mt = mt.Elem()
			case reflect.Map:
				add(mt.Key())
				mt = mt.Elem()
			default:
				return
			}
		}
		if mt.PkgPath() != "" {
			if _, ok := known[fullName(mt)]; !ok {
				known[fullName(mt)] = mt
			}
		}
	}

	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			add(t.Field(i).Type)
		}
	case reflect.Pointer, reflect.Slice, reflect.Array:
		add(t.Elem())
	case reflect.Map:
		add(t.Key())
		add(t.Elem())
	}
	return known
}

// argName names a type argument. Named types are resolved through the
// registry; composite types are spelled out around their element names.
func (r *NameRegistry) argName(t reflect.Type, pending map[reflect.Type]bool) string {
	if t == nil {
		return "object"
	}
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return r.resolveLocked(t, pending)
	}

	switch t.Kind() {
	case reflect.Pointer:
		return r.argName(t.Elem(), pending)
	case reflect.Slice, reflect.Array:
		return "[]" + r.argName(t.Elem(), pending)
	case reflect.Map:
		return "map[" + r.argName(t.Key(), pending) + "]" + r.argName(t.Elem(), pending)
	}
	return t.String()
}

// niceName builds the candidate name for t. A non-zero iteration is
// appended to the base name to break collisions.
func niceName(t reflect.Type, args []string, iteration int) string {
	name := baseName(t)
	if iteration > 0 {
		name += strconv.Itoa(iteration)
	}
	if !isGeneric(t) {
		return name
	}
	return name + "[" + strings.Join(args, ", ") + "]"
}

// baseName is the type name without type arguments.
func baseName(t reflect.Type) string {
	name := t.Name()
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		return name[:idx]
	}
	if name == "" {
		return t.String()
	}
	return name
}

// fullName is the package qualified type name, unique per type.
func fullName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func isGeneric(t reflect.Type) bool {
	return strings.HasSuffix(t.Name(), "]") && strings.IndexByte(t.Name(), '[') > 0
}

// overrideName returns the ModelNamer name of t, if it declares one.
func overrideName(t reflect.Type) string {
	if n, ok := newValue(t).(ModelNamer); ok {
		return strings.TrimSpace(n.SwaggerModelName())
	}
	return ""
}

// splitTypeArgs splits a type argument list on top-level commas.
func splitTypeArgs(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, c := range s {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// indirect strips pointer layers from t.
func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// newValue returns a pointer to a zero value of t as an interface, so both
// value and pointer receiver methods are visible to type assertions.
func newValue(t reflect.Type) any {
	return reflect.New(t).Interface()
}
