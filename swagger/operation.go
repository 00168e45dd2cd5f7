package swagger

import "net/http"

// OperationBuilder provides a fluent API for declaring an operation
// descriptor inside a ServiceDescriptor.
//
// See: https://swagger.io/specification/v2/#operation-object
type OperationBuilder struct {
	op OperationDescriptor
}

// Op starts an operation for the given HTTP method and route template.
// The route is relative to the service path.
func Op(method, route string) *OperationBuilder {
	return &OperationBuilder{op: OperationDescriptor{Method: method, Route: route}}
}

// Get starts a GET operation.
func Get(route string) *OperationBuilder { return Op(http.MethodGet, route) }

// Post starts a POST operation.
func Post(route string) *OperationBuilder { return Op(http.MethodPost, route) }

// Put starts a PUT operation.
func Put(route string) *OperationBuilder { return Op(http.MethodPut, route) }

// Patch starts a PATCH operation.
func Patch(route string) *OperationBuilder { return Op(http.MethodPatch, route) }

// Delete starts a DELETE operation.
func Delete(route string) *OperationBuilder { return Op(http.MethodDelete, route) }

// Summary sets the operation summary.
func (b *OperationBuilder) Summary(s string) *OperationBuilder {
	b.op.Summary = s
	return b
}

// Description sets the operation description.
func (b *OperationBuilder) Description(d string) *OperationBuilder {
	b.op.Description = d
	return b
}

// OperationID sets the operation ID.
func (b *OperationBuilder) OperationID(id string) *OperationBuilder {
	b.op.OperationID = id
	return b
}

// Tags adds one or more tags to the operation.
func (b *OperationBuilder) Tags(tags ...string) *OperationBuilder {
	b.op.Tags = append(b.op.Tags, tags...)
	return b
}

// SortOrder sets the presentation order of the operation's path.
func (b *OperationBuilder) SortOrder(n int) *OperationBuilder {
	b.op.SortOrder = n
	return b
}

// Deprecated marks the operation as deprecated.
func (b *OperationBuilder) Deprecated() *OperationBuilder {
	b.op.Deprecated = true
	return b
}

// Consumes adds request MIME types.
func (b *OperationBuilder) Consumes(types ...string) *OperationBuilder {
	b.op.Consumes = append(b.op.Consumes, types...)
	return b
}

// Produces adds response MIME types.
func (b *OperationBuilder) Produces(types ...string) *OperationBuilder {
	b.op.Produces = append(b.op.Produces, types...)
	return b
}

// Param adds a parameter. Path parameters are always required.
func (b *OperationBuilder) Param(in, name string, typ any, desc string, required bool) *OperationBuilder {
	b.op.Parameters = append(b.op.Parameters, ParameterDescriptor{
		Name:        name,
		In:          in,
		Description: desc,
		Required:    required || in == InPath,
		Type:        typ,
	})
	return b
}

// PathParam adds a required path parameter.
func (b *OperationBuilder) PathParam(name string, typ any, desc string) *OperationBuilder {
	return b.Param(InPath, name, typ, desc, true)
}

// QueryParam adds a query parameter.
func (b *OperationBuilder) QueryParam(name string, typ any, desc string, required bool) *OperationBuilder {
	return b.Param(InQuery, name, typ, desc, required)
}

// HeaderParam adds a header parameter.
func (b *OperationBuilder) HeaderParam(name string, typ any, desc string, required bool) *OperationBuilder {
	return b.Param(InHeader, name, typ, desc, required)
}

// Body adds a required body parameter named "body".
func (b *OperationBuilder) Body(body any, desc string) *OperationBuilder {
	return b.Param(InBody, "body", body, desc, true)
}

// Response adds a response for the given status code. Pass nil body for
// responses without content.
func (b *OperationBuilder) Response(code int, body any) *OperationBuilder {
	b.op.Responses = append(b.op.Responses, ResponseDescriptor{Code: code, Body: body})
	return b
}

// ResponseDescription adds a response with an explicit description.
func (b *OperationBuilder) ResponseDescription(code int, desc string, body any) *OperationBuilder {
	b.op.Responses = append(b.op.Responses, ResponseDescriptor{Code: code, Description: desc, Body: body})
	return b
}

// DefaultResponse adds the catch-all response.
func (b *OperationBuilder) DefaultResponse(body any) *OperationBuilder {
	return b.Response(0, body)
}

// Security adds security requirements to the operation.
func (b *OperationBuilder) Security(reqs ...SecurityRequirement) *OperationBuilder {
	b.op.Security = append(b.op.Security, reqs...)
	return b
}

// Descriptor returns the assembled operation descriptor.
func (b *OperationBuilder) Descriptor() OperationDescriptor {
	return b.op
}
