package swagger

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Version is the value of the root "swagger" field.
//
// See: https://swagger.io/specification/v2/#swagger-object
const Version = "2.0"

// Parameter locations.
//
// See: https://swagger.io/specification/v2/#parameter-object (in)
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InFormData = "formData"
	InBody     = "body"
)

// Document is the root of a generated Swagger 2.0 document.
// Paths and Definitions are not modified once the document is built.
//
// See: https://swagger.io/specification/v2/#swagger-object
type Document struct {
	Swagger             string
	Info                *Info
	Host                string
	BasePath            string
	Schemes             []string
	Paths               []*PathEntry
	Definitions         []*Definition
	SecurityDefinitions map[string]*SecurityScheme
	Tags                []Tag
}

// Info provides metadata about the API.
//
// See: https://swagger.io/specification/v2/#info-object
type Info struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
	License        *License `json:"license,omitempty"`
	Version        string   `json:"version,omitempty"`
}

// Contact represents contact information for the API.
//
// See: https://swagger.io/specification/v2/#contact-object
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://swagger.io/specification/v2/#license-object
type License struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// SecurityScheme describes a security scheme usable by operations.
//
// See: https://swagger.io/specification/v2/#security-scheme-object
type SecurityScheme struct {
	Type             string            `json:"type"`
	Description      string            `json:"description,omitempty"`
	Name             string            `json:"name,omitempty"`
	In               string            `json:"in,omitempty"`
	Flow             string            `json:"flow,omitempty"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty"`
}

// SecurityRequirement maps a security scheme name to the scopes it requires.
//
// See: https://swagger.io/specification/v2/#security-requirement-object
type SecurityRequirement map[string][]string

// PathEntry holds every operation sharing one route template.
//
// See: https://swagger.io/specification/v2/#path-item-object
type PathEntry struct {
	// ID is the route template, e.g. "/pets/{id}".
	ID         string
	Operations []*Operation
}

// Operation describes a single HTTP-method-bound action.
//
// See: https://swagger.io/specification/v2/#operation-object
type Operation struct {
	Method      string
	Summary     string
	Description string
	OperationID string
	Tags        []string
	Consumes    []string
	Produces    []string
	Parameters  []*Parameter
	Responses   []*Response
	Deprecated  bool
	Security    []SecurityRequirement

	// SortOrder orders paths for presentation. It is never serialized.
	SortOrder int
}

// Parameter describes a single operation parameter. Body parameters
// carry a Schema; other locations inline the schema's type fields.
//
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Schema      *Schema
}

// MarshalJSON renders the parameter in the shape its location demands.
func (p *Parameter) MarshalJSON() ([]byte, error) {
	if p.In == InBody {
		return json.Marshal(struct {
			Name        string  `json:"name"`
			In          string  `json:"in"`
			Description string  `json:"description,omitempty"`
			Required    bool    `json:"required,omitempty"`
			Schema      *Schema `json:"schema,omitempty"`
		}{p.Name, p.In, p.Description, p.Required, p.Schema})
	}

	out := struct {
		Name        string  `json:"name"`
		In          string  `json:"in"`
		Description string  `json:"description,omitempty"`
		Required    bool    `json:"required,omitempty"`
		Type        string  `json:"type,omitempty"`
		Format      string  `json:"format,omitempty"`
		Items       *Schema `json:"items,omitempty"`
		Enum        []any   `json:"enum,omitempty"`
	}{Name: p.Name, In: p.In, Description: p.Description, Required: p.Required}

	if p.Schema != nil {
		out.Type = p.Schema.Type
		out.Format = p.Schema.Format
		out.Items = p.Schema.Items
		out.Enum = p.Schema.Enum
	}
	if out.Type == "" {
		out.Type = "string"
	}

	return json.Marshal(out)
}

// Response maps a status code to a description and optional schema.
// Code is a decimal status code or "default".
//
// See: https://swagger.io/specification/v2/#response-object
type Response struct {
	Code        string  `json:"-"`
	Description string  `json:"description"`
	Schema      *Schema `json:"schema,omitempty"`
}

// responseCode converts a declared status code into its document key.
// Zero maps to "default".
func responseCode(code int) string {
	if code == 0 {
		return "default"
	}
	return strconv.Itoa(code)
}

// responseDescription returns the standard reason phrase used when a
// response declares no description.
func responseDescription(code int) string {
	if code == 0 {
		return "Default response"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Response " + strconv.Itoa(code)
}

// Schema is an inline JSON Schema fragment as used by Swagger 2.0.
//
// See: https://swagger.io/specification/v2/#schema-object
type Schema struct {
	Ref                  string  `json:"$ref,omitempty"`
	Type                 string  `json:"type,omitempty"`
	Format               string  `json:"format,omitempty"`
	Description          string  `json:"description,omitempty"`
	Items                *Schema `json:"items,omitempty"`
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	Enum                 []any   `json:"enum,omitempty"`
}

// refPrefix is the JSON pointer prefix of definition references.
const refPrefix = "#/definitions/"

// RefName returns the definition name the schema references, if any.
func (s *Schema) RefName() string {
	if s == nil || len(s.Ref) <= len(refPrefix) {
		return ""
	}
	return s.Ref[len(refPrefix):]
}

// Definition is a named schema derived from one reflected type.
//
// See: https://swagger.io/specification/v2/#definitions-object
type Definition struct {
	Name        string
	Type        string
	Format      string
	Description string
	Properties  []*Property
	Enum        []any
}

// Required returns the names of required properties in declaration order.
func (d *Definition) Required() []string {
	var names []string
	for _, p := range d.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Property is one named member of an object Definition.
type Property struct {
	Name     string
	Schema   *Schema
	Required bool
}

// Tag groups operations. SortOrder only affects ordering of the tag list.
//
// See: https://swagger.io/specification/v2/#tag-object
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"-"`
}

// TagOverride is a configured tag entry. Hidden tags have Visible false.
type TagOverride struct {
	Name        string
	Visible     bool
	Description string
	SortOrder   int
}
