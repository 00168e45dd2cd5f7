package swagger

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	timeType       = reflect.TypeFor[time.Time]()
	uuidType       = reflect.TypeFor[uuid.UUID]()
	rawMessageType = reflect.TypeFor[json.RawMessage]()
)

// typeMapper converts reflected types to inline schemas, referencing
// model types by their registry name. Models hidden by tag are not
// referenced at all.
type typeMapper struct {
	reg     *NameRegistry
	hidden  map[string]bool
	visible map[string]bool
}

func newTypeMapper(reg *NameRegistry, hidden []string, visible []TagOverride) *typeMapper {
	m := &typeMapper{
		reg:     reg,
		hidden:  make(map[string]bool, len(hidden)),
		visible: make(map[string]bool, len(visible)),
	}
	for _, name := range hidden {
		m.hidden[name] = true
	}
	for _, tag := range visible {
		if tag.Visible {
			m.visible[tag.Name] = true
		}
	}
	return m
}

// hiddenByTags reports whether a tag set is filtered out: at least one tag
// is hidden and none has an explicit visible override.
func (m *typeMapper) hiddenByTags(tags []string) bool {
	hidden := false
	for _, tag := range tags {
		if m.visible[tag] {
			return false
		}
		if m.hidden[tag] {
			hidden = true
		}
	}
	return hidden
}

// shownTags drops the names that are hidden and have no visible override.
func (m *typeMapper) shownTags(tags []string) []string {
	shown := make([]string, 0, len(tags))
	for _, tag := range tags {
		if m.hidden[tag] && !m.visible[tag] {
			continue
		}
		shown = append(shown, tag)
	}
	return shown
}

// isModel reports whether t gets its own definition: named structs and
// named types implementing Enumer.
func (m *typeMapper) isModel(t reflect.Type) bool {
	if t == nil || t.Name() == "" || t.PkgPath() == "" {
		return false
	}
	switch t {
	case timeType, uuidType, rawMessageType:
		return false
	}
	if t.Kind() == reflect.Struct {
		return true
	}
	_, ok := newValue(t).(Enumer)
	return ok
}

// hiddenModel reports whether the model type t is filtered out by tag.
func (m *typeMapper) hiddenModel(t reflect.Type) bool {
	if len(m.hidden) == 0 {
		return false
	}
	if tagger, ok := newValue(t).(ModelTagger); ok {
		return m.hiddenByTags(tagger.SwaggerTags())
	}
	return false
}

// schema returns the schema for t, or nil when t cannot be represented
// or refers to a hidden model.
//
// See: https://swagger.io/specification/v2/#data-types
func (m *typeMapper) schema(t reflect.Type) *Schema {
	t = indirect(t)
	if t == nil {
		return nil
	}

	if m.isModel(t) {
		if m.hiddenModel(t) {
			return nil
		}
		return &Schema{Ref: refPrefix + m.reg.Resolve(t)}
	}

	switch t {
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}
	case uuidType:
		return &Schema{Type: "string", Format: "uuid"}
	case rawMessageType:
		return &Schema{Type: "object"}
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "byte"}
		}
		items := m.schema(t.Elem())
		if items == nil {
			return nil
		}
		return &Schema{Type: "array", Items: items}

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Type: "object"}
		}
		values := m.schema(t.Elem())
		if values == nil {
			return nil
		}
		return &Schema{Type: "object", AdditionalProperties: values}

	case reflect.Struct, reflect.Interface:
		return &Schema{Type: "object"}
	}

	return scalarSchema(t)
}

// paramSchema returns the inline schema of a non-body parameter. Enum
// models are expanded in place because such parameters cannot reference
// definitions.
func (m *typeMapper) paramSchema(t reflect.Type) *Schema {
	t = indirect(t)
	if t == nil {
		return &Schema{Type: "string"}
	}
	if e, ok := newValue(t).(Enumer); ok && t.Kind() != reflect.Struct {
		s := scalarSchema(t)
		if s == nil {
			s = &Schema{Type: "string"}
		}
		s.Enum = e.SwaggerEnum()
		return s
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		if t.Elem().Kind() != reflect.Uint8 {
			return &Schema{Type: "array", Items: m.paramSchema(t.Elem())}
		}
	}
	s := m.schema(t)
	if s == nil || s.Ref != "" || s.Type == "object" {
		return &Schema{Type: "string"}
	}
	return s
}

// scalarSchema maps primitive kinds to Swagger types and formats.
//
// See: https://swagger.io/specification/v2/#data-types
func scalarSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Schema{Type: "integer", Format: "int32"}
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return &Schema{Type: "integer", Format: "int64"}
	case reflect.Float32:
		return &Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &Schema{Type: "number", Format: "double"}
	case reflect.String:
		return &Schema{Type: "string"}
	}
	return nil
}

type jsonTagOpts struct {
	omitempty bool
}

func parseJSONTag(tag string) (string, jsonTagOpts) {
	if tag == "" {
		return "", jsonTagOpts{}
	}
	name, rest, _ := strings.Cut(tag, ",")
	return name, jsonTagOpts{
		omitempty: strings.Contains(rest, "omitempty") || strings.Contains(rest, "omitzero"),
	}
}

// fieldTag holds the parsed `swagger` struct tag of a field:
//
//	Name string `json:"name" swagger:"description=Pet name,required,tags=public"`
type fieldTag struct {
	description string
	format      string
	required    bool
	optional    bool
	tags        []string
}

func parseFieldTag(tag string) fieldTag {
	var ft fieldTag
	if tag == "" {
		return ft
	}

	// A description runs until the next known key, so it may hold commas.
	var desc []string
	inDesc := false
	for part := range strings.SplitSeq(tag, ",") {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !isFieldTagKey(key, hasValue) {
			if inDesc {
				desc = append(desc, part)
			}
			continue
		}

		inDesc = false
		value = strings.TrimSpace(value)
		switch key {
		case "description":
			inDesc = true
			desc = []string{value}
		case "format":
			ft.format = value
		case "required":
			ft.required = true
		case "optional":
			ft.optional = true
		case "tags":
			for _, tag := range strings.Split(value, "|") {
				if tag = strings.TrimSpace(tag); tag != "" {
					ft.tags = append(ft.tags, tag)
				}
			}
		}
	}
	ft.description = strings.TrimSpace(strings.Join(desc, ","))
	return ft
}

func isFieldTagKey(key string, hasValue bool) bool {
	switch key {
	case "description", "format", "tags":
		return hasValue
	case "required", "optional":
		return !hasValue
	}
	return false
}
