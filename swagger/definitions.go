package swagger

import (
	"log/slog"
	"reflect"
	"sort"
)

// BuildDefinitions walks every type reachable from roots and returns one
// definition per model type, sorted by name. Collections contribute their
// element types but no definition of their own. Models and fields whose
// tags are hidden are left out. A type that cannot be reflected is skipped.
//
// See: https://swagger.io/specification/v2/#definitions-object
func BuildDefinitions(reg *NameRegistry, hidden []string, visible []TagOverride, roots []reflect.Type) []*Definition {
	b := newDefinitionBuilder(newTypeMapper(reg, hidden, visible), nil)
	return b.build(roots)
}

type definitionBuilder struct {
	types *typeMapper
	log   *slog.Logger
	defs  map[string]*Definition
	order []*Definition
}

func newDefinitionBuilder(types *typeMapper, log *slog.Logger) *definitionBuilder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &definitionBuilder{
		types: types,
		log:   log,
		defs:  make(map[string]*Definition),
	}
}

func (b *definitionBuilder) build(roots []reflect.Type) []*Definition {
	for _, t := range roots {
		b.visit(t)
	}

	sort.Slice(b.order, func(i, j int) bool {
		return b.order[i].Name < b.order[j].Name
	})
	return b.order
}

// visit walks t, isolating failures to t and the types below it.
func (b *definitionBuilder) visit(t reflect.Type) {
	defer func() {
		if rv := recover(); rv != nil {
			b.log.Debug("skipping type", "type", typeString(t), "error", rv)
		}
	}()
	b.walk(t)
}

func (b *definitionBuilder) walk(t reflect.Type) {
	t = indirect(t)
	if t == nil {
		return
	}

	if !b.types.isModel(t) {
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			b.visit(t.Elem())
		case reflect.Map:
			if t.Key().Kind() == reflect.String {
				b.visit(t.Elem())
			}
		}
		return
	}

	if b.types.hiddenModel(t) {
		return
	}

	name := b.types.reg.Resolve(t)
	if _, ok := b.defs[name]; ok {
		return
	}

	def, children := b.definition(t, name)
	b.defs[name] = def
	b.order = append(b.order, def)

	for _, child := range children {
		b.visit(child)
	}
}

// definition builds the definition of model type t and returns the field
// types still to be walked.
func (b *definitionBuilder) definition(t reflect.Type, name string) (*Definition, []reflect.Type) {
	def := &Definition{Name: name}

	if d, ok := newValue(t).(ModelDescriber); ok {
		def.Description = d.SwaggerDescription()
	}

	if t.Kind() != reflect.Struct {
		if e, ok := newValue(t).(Enumer); ok {
			scalar := scalarSchema(t)
			if scalar == nil {
				scalar = &Schema{Type: "string"}
			}
			def.Type = scalar.Type
			def.Format = scalar.Format
			def.Enum = e.SwaggerEnum()
		}
		return def, nil
	}

	def.Type = "object"
	var children []reflect.Type
	b.collectFields(t, def, false, &children)
	return def, children
}

// collectFields appends the properties of struct t to def. Embedded
// structs without a json name are inlined; fields of pointer-embedded
// structs are all optional.
func (b *definitionBuilder) collectFields(t reflect.Type, def *Definition, allOptional bool, children *[]reflect.Type) {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, opts := parseJSONTag(jsonTag)

		if field.Anonymous && name == "" {
			ft := field.Type
			isPtr := ft.Kind() == reflect.Pointer
			if isPtr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				b.collectFields(ft, def, allOptional || isPtr, children)
				continue
			}
		}

		if name == "" {
			name = field.Name
		}

		tag := parseFieldTag(field.Tag.Get("swagger"))
		if b.types.hiddenByTags(tag.tags) {
			continue
		}

		schema := b.types.schema(field.Type)
		if schema == nil {
			continue
		}
		if schema.Ref == "" {
			if tag.format != "" {
				schema.Format = tag.format
			}
			schema.Description = tag.description
		}

		required := !opts.omitempty && !allOptional
		if tag.required {
			required = true
		}
		if tag.optional {
			required = false
		}

		def.Properties = append(def.Properties, &Property{
			Name:     name,
			Schema:   schema,
			Required: required,
		})
		if referencesDefinition(schema) {
			*children = append(*children, field.Type)
		}
	}
}

// referencesDefinition reports whether s points at a definition, directly
// or through its items or additional properties.
func referencesDefinition(s *Schema) bool {
	for s != nil {
		if s.Ref != "" {
			return true
		}
		if s.Items != nil {
			s = s.Items
			continue
		}
		s = s.AdditionalProperties
	}
	return false
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
