// Package swagger synthesizes Swagger 2.0 documents at runtime from
// service descriptors and reflected Go types.
//
// A document is built from three inputs: the services to document, flat
// key-value settings, and overrides supplied by the hosting code. Model
// definitions are derived by reflection from the body and response types
// the operations reference; nothing is read from external schema files.
//
// See: https://swagger.io/specification/v2/
//
// # Describing Services
//
// A service implements Service and returns its descriptor. Operations are
// usually declared with the fluent builder:
//
//	type PetService struct{}
//
//	func (PetService) SwaggerService() swagger.ServiceDescriptor {
//	    return swagger.ServiceDescriptor{
//	        Name: "pets",
//	        Path: "/pets",
//	        Info: &swagger.Info{Title: "Petstore", Version: "1.0.0"},
//	        Operations: []swagger.OperationDescriptor{
//	            swagger.Get("/").
//	                Summary("List pets").
//	                QueryParam("limit", 0, "Page size", false).
//	                Response(http.StatusOK, []Pet{}).
//	                Descriptor(),
//	            swagger.Get("/{id}").
//	                Summary("Get a pet").
//	                PathParam("id", int64(0), "Pet ID").
//	                Response(http.StatusOK, Pet{}).
//	                Response(http.StatusNotFound, nil).
//	                Descriptor(),
//	        },
//	    }
//	}
//
// Route variables may carry a pattern ("{id:[0-9]+}"); the pattern is
// dropped from the documented template. Route variables without a declared
// path parameter are documented as required strings.
//
// An operation that cannot be documented (unknown method, two body
// parameters, a path parameter missing from the route, ...) is logged and
// left out; the rest of the document is still produced.
//
// # Discovery
//
// A Builder documents either an explicit service list or every module
// registered in a Catalog:
//
//	func init() {
//	    swagger.Register("petstore", func() ([]swagger.Service, error) {
//	        return []swagger.Service{PetService{}}, nil
//	    })
//	}
//
// A module whose provider fails or panics is skipped.
//
// # Models
//
// Named struct types referenced by bodies and responses become
// definitions, as do the named struct types reachable from their fields.
// Field names follow the json tag; a field is required unless it is
// tagged omitempty or omitzero. The swagger tag refines a field:
//
//	type Pet struct {
//	    ID     int64     `json:"id"`
//	    Name   string    `json:"name" swagger:"description=Pet name"`
//	    Status Status    `json:"status,omitempty"`
//	    Born   time.Time `json:"born" swagger:"optional"`
//	    Secret string    `json:"secret" swagger:"tags=internal"`
//	}
//
// Supported swagger tag options:
//
//	description=<text>  property description
//	format=<format>     overrides the derived format
//	required            forces the property into the required list
//	optional            removes the property from the required list
//	tags=<a|b>          tags of the property, used for hiding
//
// Model types may implement ModelNamer, ModelDescriber, ModelTagger,
// Enumer, and Generic to refine their definitions.
//
// # Definition Names
//
// Each type receives one name for the life of its NameRegistry. Generic
// instantiations are named after their type arguments ("Page[Pet]"). When
// two types share a name, the later one gets a numeric suffix on its base
// name: Result, Result1, Result1[Item].
//
// # Hidden Tags
//
// A tag listed as hidden removes every service, operation, model, and
// property carrying it, unless another of their tags is explicitly visible.
//
// # Settings
//
// ApplySettings recognizes the keys BasePath, Host, Schemes (semicolon
// separated), InfoTitle, InfoDescription, InfoVersion, InfoTermsOfService,
// InfoContactName, InfoContactUrl, InfoContactEmail, InfoLicenseName and
// InfoLicenseUrl. Overrides win over settings.
//
// # Output
//
// Serialize renders canonical JSON: fields appear in a fixed order and
// identical documents produce identical bytes. SerializeYAML and ConvertV3
// render the same document as YAML and as OpenAPI 3.0.
//
// Cache builds each scope once per process, single-flighting concurrent
// requests:
//
//	cache := swagger.NewCache(swagger.NewBuilder(swagger.BuilderConfig{
//	    Services: []swagger.Service{PetService{}},
//	}))
//	entry, err := cache.Get("/docs")
package swagger
