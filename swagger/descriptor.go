package swagger

// Service is implemented by types that expose documented operations.
// The descriptor is read once per document build.
//
//	func (PetService) SwaggerService() swagger.ServiceDescriptor {
//	    return swagger.ServiceDescriptor{
//	        Name: "pets",
//	        Path: "/v1",
//	        Operations: []swagger.OperationDescriptor{
//	            swagger.Get("/pets").Summary("List pets").Response(http.StatusOK, []Pet{}).Descriptor(),
//	        },
//	    }
//	}
type Service interface {
	SwaggerService() ServiceDescriptor
}

// ServiceDescriptor declares one service and its operations.
type ServiceDescriptor struct {
	// Name is the declared service name. It is matched against hidden tags
	// and is the default tag of operations that declare none. Defaults to
	// the reflected type name.
	Name string

	// Path is the service path prefix, joined under the document base path.
	Path string

	// Info is the API info used when no Info was configured.
	Info *Info

	Operations []OperationDescriptor
}

// OperationDescriptor declares one HTTP operation.
type OperationDescriptor struct {
	Method      string
	Route       string
	Summary     string
	Description string
	OperationID string
	Tags        []string
	SortOrder   int
	Deprecated  bool
	Consumes    []string
	Produces    []string
	Parameters  []ParameterDescriptor
	Responses   []ResponseDescriptor
	Security    []SecurityRequirement
}

// ParameterDescriptor declares one operation parameter. Type is a prototype
// value whose reflected type determines the parameter schema.
type ParameterDescriptor struct {
	Name        string
	In          string
	Description string
	Required    bool
	Type        any
}

// ResponseDescriptor declares one response. Code zero is the default
// response. Body is a prototype value; nil means no content.
type ResponseDescriptor struct {
	Code        int
	Description string
	Body        any
}

// ModelNamer overrides the definition name of a model type. The name is
// used verbatim.
type ModelNamer interface {
	SwaggerModelName() string
}

// ModelDescriber provides a definition description for a model type.
type ModelDescriber interface {
	SwaggerDescription() string
}

// ModelTagger assigns tags to a model type. A model carrying a hidden tag
// produces no definition.
type ModelTagger interface {
	SwaggerTags() []string
}

// Enumer lists the allowed values of a named scalar type. Such types get
// their own definition with an enum.
//
//	type Status string
//
//	func (Status) SwaggerEnum() []any { return []any{"available", "sold"} }
type Enumer interface {
	SwaggerEnum() []any
}

// Generic exposes the type arguments of a generic instantiation so its
// definition name can be built from their resolved names. A method on the
// generic type covers every instantiation. Pointer prototypes are
// dereferenced, so a typed nil works for any argument:
//
//	func (Page[T]) SwaggerTypeArgs() []any { return []any{(*T)(nil)} }
//
// Without it, argument names are parsed from the reflected type name.
type Generic interface {
	SwaggerTypeArgs() []any
}
