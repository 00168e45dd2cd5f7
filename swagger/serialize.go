package swagger

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Serialize renders doc as canonical JSON. Identical documents always
// produce identical bytes.
//
// Root fields are written in the order swagger, info, host, basePath,
// schemes, paths, definitions, securityDefinitions, tags; empty fields are
// omitted except swagger. Paths are ordered by the sort order of their
// first operation, then by route template. Definitions keep the order the
// builder gave them. The tag list is marshaled first and spliced in as a
// raw block.
//
// See: https://swagger.io/specification/v2/#swagger-object
func Serialize(doc *Document) ([]byte, error) {
	var tags []byte
	if len(doc.Tags) > 0 {
		var err error
		if tags, err = marshal(doc.Tags); err != nil {
			return nil, err
		}
	}

	w := &jsonWriter{}
	w.beginObject()

	version := doc.Swagger
	if version == "" {
		version = Version
	}
	w.name("swagger")
	w.value(version)

	if doc.Info != nil {
		w.name("info")
		w.value(doc.Info)
	}
	if doc.Host != "" {
		w.name("host")
		w.value(doc.Host)
	}
	if doc.BasePath != "" {
		w.name("basePath")
		w.value(doc.BasePath)
	}
	if len(doc.Schemes) > 0 {
		w.name("schemes")
		w.value(doc.Schemes)
	}
	if len(doc.Paths) > 0 {
		w.name("paths")
		writePaths(w, doc.Paths)
	}
	if len(doc.Definitions) > 0 {
		w.name("definitions")
		writeDefinitions(w, doc.Definitions)
	}
	if len(doc.SecurityDefinitions) > 0 {
		w.name("securityDefinitions")
		writeSecurityDefinitions(w, doc.SecurityDefinitions)
	}
	if tags != nil {
		w.name("tags")
		w.raw(tags)
	}

	w.endObject()
	return w.bytes()
}

// SortPaths returns paths in document order: by the sort order of the
// first operation, then by route template. Entries without operations
// come first.
func SortPaths(paths []*PathEntry) []*PathEntry {
	sorted := append([]*PathEntry(nil), paths...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if len(a.Operations) == 0 || len(b.Operations) == 0 {
			if len(a.Operations) != len(b.Operations) {
				return len(a.Operations) == 0
			}
			return a.ID < b.ID
		}
		if ao, bo := a.Operations[0].SortOrder, b.Operations[0].SortOrder; ao != bo {
			return ao < bo
		}
		return a.ID < b.ID
	})
	return sorted
}

func writePaths(w *jsonWriter, paths []*PathEntry) {
	w.beginObject()
	for _, entry := range SortPaths(paths) {
		w.name(entry.ID)
		writePathEntry(w, entry)
	}
	w.endObject()
}

// writePathEntry writes the operations of a path in declaration order.
// Only the first operation of each method is written.
func writePathEntry(w *jsonWriter, entry *PathEntry) {
	w.beginObject()
	written := make(map[string]bool, len(entry.Operations))
	for _, op := range entry.Operations {
		if written[op.Method] {
			continue
		}
		written[op.Method] = true
		w.name(methodKey(op.Method))
		writeOperation(w, op)
	}
	w.endObject()
}

func writeOperation(w *jsonWriter, op *Operation) {
	w.beginObject()
	if len(op.Tags) > 0 {
		w.name("tags")
		w.value(op.Tags)
	}
	if op.Summary != "" {
		w.name("summary")
		w.value(op.Summary)
	}
	if op.Description != "" {
		w.name("description")
		w.value(op.Description)
	}
	if op.OperationID != "" {
		w.name("operationId")
		w.value(op.OperationID)
	}
	if len(op.Consumes) > 0 {
		w.name("consumes")
		w.value(op.Consumes)
	}
	if len(op.Produces) > 0 {
		w.name("produces")
		w.value(op.Produces)
	}
	if len(op.Parameters) > 0 {
		w.name("parameters")
		w.value(op.Parameters)
	}

	w.name("responses")
	w.beginObject()
	responses := append([]*Response(nil), op.Responses...)
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].Code < responses[j].Code
	})
	if len(responses) == 0 {
		responses = []*Response{{Code: responseCode(0), Description: responseDescription(0)}}
	}
	for _, resp := range responses {
		w.name(resp.Code)
		w.value(resp)
	}
	w.endObject()

	if op.Deprecated {
		w.name("deprecated")
		w.value(true)
	}
	if len(op.Security) > 0 {
		w.name("security")
		w.value(op.Security)
	}
	w.endObject()
}

func writeDefinitions(w *jsonWriter, defs []*Definition) {
	w.beginObject()
	for _, def := range defs {
		w.name(def.Name)
		writeDefinition(w, def)
	}
	w.endObject()
}

func writeDefinition(w *jsonWriter, def *Definition) {
	w.beginObject()
	if def.Type != "" {
		w.name("type")
		w.value(def.Type)
	}
	if def.Format != "" {
		w.name("format")
		w.value(def.Format)
	}
	if def.Description != "" {
		w.name("description")
		w.value(def.Description)
	}
	if len(def.Properties) > 0 {
		w.name("properties")
		w.beginObject()
		for _, p := range def.Properties {
			w.name(p.Name)
			w.value(p.Schema)
		}
		w.endObject()
	}
	if required := def.Required(); len(required) > 0 {
		w.name("required")
		w.value(required)
	}
	if len(def.Enum) > 0 {
		w.name("enum")
		w.value(def.Enum)
	}
	w.endObject()
}

func writeSecurityDefinitions(w *jsonWriter, defs map[string]*SecurityScheme) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	w.beginObject()
	for _, name := range names {
		w.name(name)
		w.value(defs[name])
	}
	w.endObject()
}

// methodKey is the path item field name of an HTTP method.
func methodKey(method string) string {
	return string(bytes.ToLower([]byte(method)))
}

// marshal encodes v as compact JSON without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// jsonWriter streams a JSON document. Scalars and plain structs are
// encoded with encoding/json; objects with a meaningful member order are
// written member by member.
type jsonWriter struct {
	buf       bytes.Buffer
	first     []bool // per open container: no member written yet
	afterName bool
	err       error
}

func (w *jsonWriter) separate() {
	if w.afterName {
		w.afterName = false
		return
	}
	if n := len(w.first); n > 0 {
		if !w.first[n-1] {
			w.buf.WriteByte(',')
		}
		w.first[n-1] = false
	}
}

func (w *jsonWriter) beginObject() {
	w.separate()
	w.buf.WriteByte('{')
	w.first = append(w.first, true)
}

func (w *jsonWriter) endObject() {
	w.buf.WriteByte('}')
	w.first = w.first[:len(w.first)-1]
}

func (w *jsonWriter) name(n string) {
	w.separate()
	w.buf.WriteString(strconv.Quote(n))
	w.buf.WriteByte(':')
	w.afterName = true
}

func (w *jsonWriter) value(v any) {
	data, err := marshal(v)
	if err != nil {
		if w.err == nil {
			w.err = err
		}
		data = []byte("null")
	}
	w.raw(data)
}

func (w *jsonWriter) raw(data []byte) {
	w.separate()
	w.buf.Write(data)
}

func (w *jsonWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}
