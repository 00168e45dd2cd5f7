package swagger

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type DogStatus string

func (DogStatus) SwaggerEnum() []any { return []any{"available", "adopted"} }

type Audit struct {
	CreatedAt time.Time `json:"created_at"`
}

type Revision struct {
	Number int `json:"number"`
}

type Collar struct {
	Color string `json:"color" swagger:"description=Collar color"`
}

type Secret struct {
	Value string `json:"value"`
}

func (Secret) SwaggerTags() []string { return []string{"internal"} }

type Dog struct {
	Audit
	*Revision

	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Nickname string            `json:"nickname,omitempty" swagger:"required"`
	Weight   float64           `json:"weight" swagger:"optional,format=kg"`
	Status   DogStatus         `json:"status"`
	Collar   *Collar           `json:"collar,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
	Secret   *Secret           `json:"secret,omitempty"`
	Token    string            `json:"token" swagger:"tags=internal"`
	Ignored  string            `json:"-"`
	internal string
}

func (Dog) SwaggerDescription() string { return "A dog in the kennel" }

type Kennel struct {
	Dogs []Dog `json:"dogs"`
}

type Panicky struct{}

func (Panicky) SwaggerDescription() string { panic("broken model") }

func definitionByName(defs []*Definition, name string) *Definition {
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func propertyNames(def *Definition) []string {
	var names []string
	for _, p := range def.Properties {
		names = append(names, p.Name)
	}
	return names
}

func TestBuildDefinitions(t *testing.T) {
	hidden := []string{"internal"}
	defs := BuildDefinitions(NewNameRegistry(), hidden, nil, []reflect.Type{reflect.TypeFor[Kennel]()})

	t.Run("sorted by name", func(t *testing.T) {
		var names []string
		for _, d := range defs {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"Collar", "Dog", "DogStatus", "Kennel"}, names)
	})

	t.Run("collections reference element definitions", func(t *testing.T) {
		kennel := definitionByName(defs, "Kennel")
		require.NotNil(t, kennel)
		require.Len(t, kennel.Properties, 1)

		dogs := kennel.Properties[0].Schema
		assert.Equal(t, "array", dogs.Type)
		require.NotNil(t, dogs.Items)
		assert.Equal(t, "#/definitions/Dog", dogs.Items.Ref)
	})

	t.Run("struct properties", func(t *testing.T) {
		dog := definitionByName(defs, "Dog")
		require.NotNil(t, dog)

		assert.Equal(t, "object", dog.Type)
		assert.Equal(t, "A dog in the kennel", dog.Description)
		assert.Equal(t, []string{
			"created_at", "number", "id", "name", "nickname",
			"weight", "status", "collar", "labels",
		}, propertyNames(dog))
		assert.Equal(t, []string{"created_at", "id", "name", "nickname", "status"}, dog.Required())
	})

	t.Run("property schemas", func(t *testing.T) {
		dog := definitionByName(defs, "Dog")
		require.NotNil(t, dog)

		byName := make(map[string]*Schema)
		for _, p := range dog.Properties {
			byName[p.Name] = p.Schema
		}

		assert.Equal(t, &Schema{Type: "string", Format: "date-time"}, byName["created_at"])
		assert.Equal(t, &Schema{Type: "string", Format: "uuid"}, byName["id"])
		assert.Equal(t, &Schema{Type: "number", Format: "kg"}, byName["weight"])
		assert.Equal(t, "#/definitions/DogStatus", byName["status"].Ref)
		assert.Equal(t, "#/definitions/Collar", byName["collar"].Ref)
		assert.Equal(t, "object", byName["labels"].Type)
		assert.Equal(t, &Schema{Type: "string"}, byName["labels"].AdditionalProperties)
	})

	t.Run("enum definition", func(t *testing.T) {
		status := definitionByName(defs, "DogStatus")
		require.NotNil(t, status)
		assert.Equal(t, "string", status.Type)
		assert.Equal(t, []any{"available", "adopted"}, status.Enum)
		assert.Empty(t, status.Properties)
	})

	t.Run("field description from tag", func(t *testing.T) {
		collar := definitionByName(defs, "Collar")
		require.NotNil(t, collar)
		require.Len(t, collar.Properties, 1)
		assert.Equal(t, "Collar color", collar.Properties[0].Schema.Description)
	})

	t.Run("hidden model and field are left out", func(t *testing.T) {
		assert.Nil(t, definitionByName(defs, "Secret"))
		assert.NotContains(t, propertyNames(definitionByName(defs, "Dog")), "token")
	})
}

func TestBuildDefinitionsVisibleOverride(t *testing.T) {
	visible := []TagOverride{{Name: "internal", Visible: true}}
	defs := BuildDefinitions(NewNameRegistry(), []string{"internal"}, visible, []reflect.Type{reflect.TypeFor[Dog]()})

	require.NotNil(t, definitionByName(defs, "Secret"))
	assert.Contains(t, propertyNames(definitionByName(defs, "Dog")), "token")
}

func TestBuildDefinitionsSkipsFailingType(t *testing.T) {
	roots := []reflect.Type{reflect.TypeFor[Panicky](), reflect.TypeFor[Collar]()}
	defs := BuildDefinitions(NewNameRegistry(), nil, nil, roots)

	require.Len(t, defs, 1)
	assert.Equal(t, "Collar", defs[0].Name)
}

func TestBuildDefinitionsRecursive(t *testing.T) {
	type Node struct {
		Value    int     `json:"value"`
		Children []*Node `json:"children,omitempty"`
	}

	defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{reflect.TypeFor[[]Node]()})

	require.Len(t, defs, 1)
	node := defs[0]
	assert.Equal(t, "Node", node.Name)
	require.Len(t, node.Properties, 2)
	assert.Equal(t, "#/definitions/Node", node.Properties[1].Schema.Items.Ref)
}

func TestBuildDefinitionsGeneric(t *testing.T) {
	defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{
		reflect.TypeFor[Result[Item]](),
		reflect.TypeFor[Result[Collar]](),
	})

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Collar", "Item", "Result[Collar]", "Result[Item]"}, names)
}

func TestBuildDefinitionsNonModelRoots(t *testing.T) {
	defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{
		reflect.TypeFor[string](),
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[time.Time](),
		nil,
	})
	assert.Empty(t, defs)
}

func TestBuildDefinitionsNonStringMapKeys(t *testing.T) {
	type Ledger struct {
		ByYear map[int]Collar    `json:"by_year"`
		ByName map[string]Collar `json:"by_name"`
	}

	t.Run("value type of integer keyed map is not walked", func(t *testing.T) {
		type Tally struct {
			Counts map[int]Revision `json:"counts"`
		}

		defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{reflect.TypeFor[Tally]()})

		require.Len(t, defs, 1)
		assert.Equal(t, "Tally", defs[0].Name)
		assert.Equal(t, &Schema{Type: "object"}, defs[0].Properties[0].Schema)
	})

	t.Run("string keyed map still walks its values", func(t *testing.T) {
		defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{reflect.TypeFor[Ledger]()})

		var names []string
		for _, d := range defs {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"Collar", "Ledger"}, names)
	})

	t.Run("integer keyed map root", func(t *testing.T) {
		defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{reflect.TypeFor[map[int]Collar]()})
		assert.Empty(t, defs)
	})
}

func TestParseFieldTag(t *testing.T) {
	t.Run("description with commas", func(t *testing.T) {
		ft := parseFieldTag("description=Weight, in kg")
		assert.Equal(t, "Weight, in kg", ft.description)
	})

	t.Run("description stops at next key", func(t *testing.T) {
		ft := parseFieldTag("description=Weight, in kg,required,format=float,tags=public|admin")
		assert.Equal(t, "Weight, in kg", ft.description)
		assert.True(t, ft.required)
		assert.Equal(t, "float", ft.format)
		assert.Equal(t, []string{"public", "admin"}, ft.tags)
	})

	t.Run("keys before description", func(t *testing.T) {
		ft := parseFieldTag("optional, description=Name of the pet, as shown")
		assert.True(t, ft.optional)
		assert.Equal(t, "Name of the pet, as shown", ft.description)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, fieldTag{}, parseFieldTag(""))
	})
}

func TestBuildDefinitionsDescriptionWithCommas(t *testing.T) {
	type Parcel struct {
		Weight float64 `json:"weight" swagger:"description=Weight, in kg,format=double"`
	}

	defs := BuildDefinitions(NewNameRegistry(), nil, nil, []reflect.Type{reflect.TypeFor[Parcel]()})

	require.Len(t, defs, 1)
	require.Len(t, defs[0].Properties, 1)
	assert.Equal(t, &Schema{Type: "number", Format: "double", Description: "Weight, in kg"}, defs[0].Properties[0].Schema)
}
