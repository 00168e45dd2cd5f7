// Package endpoint serves generated documents and the interactive viewer
// over HTTP using gorilla/mux.
//
// Every scope S gets these routes:
//
//	GET S/swagger.json   Swagger 2.0 document (CORS: *)
//	GET S/swagger.yaml   the same document as YAML
//	GET S/openapi3.json  the document converted to OpenAPI 3.0
//	GET S, S/            302 to S/index.html?url=S/swagger.json
//	GET S/{file}         viewer files
//
// A request is answered with the document of the scope closest to its
// path. When no document exists the document routes return an empty body.
//
// Documents and the viewer index are sent with Cache-Control: no-cache,
// other viewer files may be cached for an hour.
//
// Usage:
//
//	b := swagger.NewBuilder(swagger.BuilderConfig{Services: services})
//	ep := endpoint.New(b, endpoint.Options{Scopes: []string{"/docs"}})
//	if err := ep.Configure(swagger.Overrides{Info: &swagger.Info{Title: "API"}}); err != nil {
//	    return err
//	}
//
//	r := mux.NewRouter()
//	ep.Register(r)
package endpoint
