package swagger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationBuilder(t *testing.T) {
	op := Put("/dogs/{id}").
		Summary("Update a dog").
		Description("Replaces the stored dog").
		OperationID("updateDog").
		Tags("dogs", "write").
		SortOrder(3).
		Deprecated().
		Consumes("application/json").
		Produces("application/json").
		PathParam("id", int64(0), "Dog ID").
		HeaderParam("If-Match", "", "ETag", false).
		Body(Dog{}, "Dog to store").
		Response(http.StatusOK, Dog{}).
		ResponseDescription(http.StatusConflict, "Stale ETag", nil).
		DefaultResponse(nil).
		Security(SecurityRequirement{"oauth": {"write"}}).
		Descriptor()

	assert.Equal(t, http.MethodPut, op.Method)
	assert.Equal(t, "/dogs/{id}", op.Route)
	assert.Equal(t, "Update a dog", op.Summary)
	assert.Equal(t, "Replaces the stored dog", op.Description)
	assert.Equal(t, "updateDog", op.OperationID)
	assert.Equal(t, []string{"dogs", "write"}, op.Tags)
	assert.Equal(t, 3, op.SortOrder)
	assert.True(t, op.Deprecated)
	assert.Equal(t, []string{"application/json"}, op.Consumes)
	assert.Equal(t, []string{"application/json"}, op.Produces)

	assert.Equal(t, []ParameterDescriptor{
		{Name: "id", In: InPath, Description: "Dog ID", Required: true, Type: int64(0)},
		{Name: "If-Match", In: InHeader, Description: "ETag", Type: ""},
		{Name: "body", In: InBody, Description: "Dog to store", Required: true, Type: Dog{}},
	}, op.Parameters)

	assert.Equal(t, []ResponseDescriptor{
		{Code: http.StatusOK, Body: Dog{}},
		{Code: http.StatusConflict, Description: "Stale ETag"},
		{Code: 0},
	}, op.Responses)

	assert.Equal(t, []SecurityRequirement{{"oauth": {"write"}}}, op.Security)
}

func TestOperationBuilderPathParamAlwaysRequired(t *testing.T) {
	op := Get("/{id}").Param(InPath, "id", "", "", false).Descriptor()
	assert.True(t, op.Parameters[0].Required)
}

func TestMethodShortcuts(t *testing.T) {
	assert.Equal(t, http.MethodGet, Get("/").Descriptor().Method)
	assert.Equal(t, http.MethodPost, Post("/").Descriptor().Method)
	assert.Equal(t, http.MethodPut, Put("/").Descriptor().Method)
	assert.Equal(t, http.MethodPatch, Patch("/").Descriptor().Method)
	assert.Equal(t, http.MethodDelete, Delete("/").Descriptor().Method)
	assert.Equal(t, "OPTIONS", Op(http.MethodOptions, "/").Descriptor().Method)
}
