package swagger

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"regexp"
	"strings"
)

// ErrMalformedOperation marks operation metadata that cannot be documented.
// Such operations are left out of the document.
var ErrMalformedOperation = errors.New("malformed operation")

// routeVarRegexp matches route variables in the form {name} or {name:pattern}.
var routeVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// supportedMethods lists the HTTP methods a Swagger 2.0 path item can hold.
var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPut:     true,
	http.MethodPost:    true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodHead:    true,
	http.MethodPatch:   true,
}

// Mapping is the result of mapping a set of services.
type Mapping struct {
	// Paths holds one entry per route template in first-seen order.
	Paths []*PathEntry

	// Roots lists the types referenced by body parameters and responses,
	// without duplicates, in discovery order.
	Roots []reflect.Type

	// Info is the info of the first mapped service that declares one.
	Info *Info

	// Services counts the services that were mapped.
	Services int
}

// Mapper turns service descriptors into path entries.
type Mapper struct {
	types *typeMapper
	log   *slog.Logger
}

// NewMapper creates a mapper. Services and operations tagged with a hidden
// tag are skipped.
func NewMapper(reg *NameRegistry, hidden []string, visible []TagOverride, log *slog.Logger) *Mapper {
	return newMapper(newTypeMapper(reg, hidden, visible), log)
}

func newMapper(types *typeMapper, log *slog.Logger) *Mapper {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Mapper{types: types, log: log}
}

// Map walks services and groups their operations by final route template.
// basePath is prepended to every service path. Route templates are not
// sorted; ordering is left to serialization.
func (m *Mapper) Map(services []Service, basePath string) *Mapping {
	mp := &mapping{
		Mapping:  &Mapping{},
		entries:  make(map[string]*PathEntry),
		rootSeen: make(map[reflect.Type]bool),
	}

	for _, svc := range services {
		desc, ok := m.describe(svc)
		if !ok {
			continue
		}
		if m.types.hidden[desc.Name] {
			m.log.Debug("skipping hidden service", "service", desc.Name)
			continue
		}

		mp.Services++
		if mp.Info == nil && desc.Info != nil {
			mp.Info = desc.Info
		}

		prefix := servicePrefix(basePath, desc.Path)
		for i := range desc.Operations {
			od := &desc.Operations[i]
			op, route, err := m.operation(desc.Name, prefix, od, mp)
			if err != nil {
				m.log.Warn("skipping operation",
					"service", desc.Name,
					"method", od.Method,
					"route", od.Route,
					"error", err,
				)
				continue
			}
			if op == nil {
				continue
			}
			mp.add(route, op)
		}
	}

	return mp.Mapping
}

// describe reads the service descriptor, isolating a panicking service.
func (m *Mapper) describe(svc Service) (desc ServiceDescriptor, ok bool) {
	if svc == nil {
		return desc, false
	}
	defer func() {
		if rv := recover(); rv != nil {
			m.log.Warn("skipping service", "type", fmt.Sprintf("%T", svc), "error", rv)
			ok = false
		}
	}()

	desc = svc.SwaggerService()
	if desc.Name == "" {
		desc.Name = baseName(indirect(reflect.TypeOf(svc)))
	}
	return desc, true
}

type mapping struct {
	*Mapping
	entries  map[string]*PathEntry
	rootSeen map[reflect.Type]bool
	pending  []reflect.Type
}

func (mp *mapping) add(route string, op *Operation) {
	entry, ok := mp.entries[route]
	if !ok {
		entry = &PathEntry{ID: route}
		mp.entries[route] = entry
		mp.Paths = append(mp.Paths, entry)
	}
	entry.Operations = append(entry.Operations, op)

	for _, t := range mp.pending {
		if !mp.rootSeen[t] {
			mp.rootSeen[t] = true
			mp.Roots = append(mp.Roots, t)
		}
	}
	mp.pending = mp.pending[:0]
}

// operation builds one operation. It returns a nil operation without error
// when the operation is hidden by tag.
func (m *Mapper) operation(service, prefix string, od *OperationDescriptor, mp *mapping) (op *Operation, route string, err error) {
	mp.pending = mp.pending[:0]
	defer func() {
		if rv := recover(); rv != nil {
			op, route, err = nil, "", fmt.Errorf("%w: %v", ErrMalformedOperation, rv)
		}
	}()

	method := strings.ToUpper(strings.TrimSpace(od.Method))
	if !supportedMethods[method] {
		return nil, "", fmt.Errorf("%w: unsupported method %q", ErrMalformedOperation, od.Method)
	}
	if strings.TrimSpace(od.Route) == "" {
		return nil, "", fmt.Errorf("%w: empty route", ErrMalformedOperation)
	}

	tags := od.Tags
	if len(tags) == 0 {
		tags = []string{service}
	}
	if m.types.hiddenByTags(tags) {
		m.log.Debug("skipping hidden operation", "service", service, "method", method, "route", od.Route)
		return nil, "", nil
	}
	tags = m.types.shownTags(tags)

	var vars []string
	route, vars, err = parseRoute(joinRoute(prefix, od.Route))
	if err != nil {
		return nil, "", err
	}

	params, err := m.parameters(od.Parameters, vars, mp)
	if err != nil {
		return nil, "", err
	}

	responses, err := m.responses(od.Responses, mp)
	if err != nil {
		return nil, "", err
	}

	op = &Operation{
		Method:      method,
		Summary:     od.Summary,
		Description: od.Description,
		OperationID: od.OperationID,
		Tags:        append([]string(nil), tags...),
		Consumes:    od.Consumes,
		Produces:    od.Produces,
		Parameters:  params,
		Responses:   responses,
		Deprecated:  od.Deprecated,
		Security:    od.Security,
		SortOrder:   od.SortOrder,
	}
	return op, route, nil
}

// parameters builds the parameter list. Route variables without a declared
// path parameter get a required string parameter, appended in route order.
func (m *Mapper) parameters(decls []ParameterDescriptor, vars []string, mp *mapping) ([]*Parameter, error) {
	routeVars := make(map[string]bool, len(vars))
	for _, v := range vars {
		routeVars[v] = true
	}

	var (
		params   []*Parameter
		seen     = make(map[string]bool)
		declared = make(map[string]bool)
		bodies   int
		forms    int
	)

	for _, pd := range decls {
		name := strings.TrimSpace(pd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: parameter without name", ErrMalformedOperation)
		}
		key := pd.In + ":" + name
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate %s parameter %q", ErrMalformedOperation, pd.In, name)
		}
		seen[key] = true

		p := &Parameter{Name: name, In: pd.In, Description: pd.Description, Required: pd.Required}
		t := reflect.TypeOf(pd.Type)

		switch pd.In {
		case InPath:
			if !routeVars[name] {
				return nil, fmt.Errorf("%w: path parameter %q not in route", ErrMalformedOperation, name)
			}
			declared[name] = true
			p.Required = true
			p.Schema = m.types.paramSchema(t)
		case InBody:
			bodies++
			p.Schema = m.types.schema(t)
			if p.Schema == nil {
				p.Schema = &Schema{Type: "object"}
			}
			if t != nil {
				mp.pending = append(mp.pending, t)
			}
		case InFormData:
			forms++
			p.Schema = m.types.paramSchema(t)
		case InQuery, InHeader:
			p.Schema = m.types.paramSchema(t)
		default:
			return nil, fmt.Errorf("%w: unknown location %q of parameter %q", ErrMalformedOperation, pd.In, name)
		}

		params = append(params, p)
	}

	if bodies > 1 {
		return nil, fmt.Errorf("%w: more than one body parameter", ErrMalformedOperation)
	}
	if bodies > 0 && forms > 0 {
		return nil, fmt.Errorf("%w: body and formData parameters together", ErrMalformedOperation)
	}

	for _, v := range vars {
		if !declared[v] {
			params = append(params, &Parameter{
				Name:     v,
				In:       InPath,
				Required: true,
				Schema:   &Schema{Type: "string"},
			})
		}
	}

	return params, nil
}

func (m *Mapper) responses(decls []ResponseDescriptor, mp *mapping) ([]*Response, error) {
	var (
		responses []*Response
		seen      = make(map[int]bool)
	)
	for _, rd := range decls {
		if seen[rd.Code] {
			return nil, fmt.Errorf("%w: duplicate response %s", ErrMalformedOperation, responseCode(rd.Code))
		}
		seen[rd.Code] = true

		resp := &Response{Code: responseCode(rd.Code), Description: rd.Description}
		if resp.Description == "" {
			resp.Description = responseDescription(rd.Code)
		}
		if rd.Body != nil {
			t := reflect.TypeOf(rd.Body)
			resp.Schema = m.types.schema(t)
			mp.pending = append(mp.pending, t)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// servicePrefix joins the base path and a declared service path into the
// prefix of every route of the service.
func servicePrefix(basePath, servicePath string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	servicePath = strings.TrimRight(strings.TrimSpace(servicePath), "/")
	if servicePath != "" && !strings.HasPrefix(servicePath, "/") {
		servicePath = "/" + servicePath
	}
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return basePath + servicePath
}

// joinRoute appends a route template to a service prefix.
func joinRoute(prefix, route string) string {
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if route == "/" && prefix != "" {
		return prefix
	}
	return prefix + route
}

// parseRoute strips variable patterns from a route template and returns
// the variable names in order. Repeated variables are rejected.
func parseRoute(tpl string) (string, []string, error) {
	var (
		vars []string
		seen = make(map[string]bool)
		dup  string
	)

	route := routeVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		name, _, _ := strings.Cut(match[1:len(match)-1], ":")
		name = strings.TrimSpace(name)
		if seen[name] && dup == "" {
			dup = name
		}
		seen[name] = true
		vars = append(vars, name)
		return "{" + name + "}"
	})

	if dup != "" {
		return "", nil, fmt.Errorf("%w: route variable %q repeated", ErrMalformedOperation, dup)
	}
	return route, vars, nil
}
