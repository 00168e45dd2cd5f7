package swagger

import (
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swagdoc/swagger/internal/farm"
	"github.com/vitalvas/swagdoc/swagger/internal/zoo"
)

type Widget struct {
	ID string `json:"id"`
}

type Item struct {
	Name string `json:"name"`
}

type Result[T any] struct {
	Value T `json:"value"`
}

type Pair[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

type Envelope[T any] struct {
	Data T `json:"data"`
}

func (Envelope[T]) SwaggerTypeArgs() []any { return []any{(*T)(nil)} }

type renamedWidget struct{}

func (renamedWidget) SwaggerModelName() string { return "Gadget" }

type resultItemClaim struct{}

func (resultItemClaim) SwaggerModelName() string { return "Result[Item]" }

func TestNameRegistryResolve(t *testing.T) {
	t.Run("plain type", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Widget", r.Resolve(reflect.TypeFor[Widget]()))
	})

	t.Run("idempotent", func(t *testing.T) {
		r := NewNameRegistry()
		first := r.Resolve(reflect.TypeFor[Widget]())
		second := r.Resolve(reflect.TypeFor[Widget]())
		assert.Equal(t, first, second)
	})

	t.Run("pointer resolves to element", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Widget", r.Resolve(reflect.TypeFor[*Widget]()))
		assert.Equal(t, "Widget", r.Resolve(reflect.TypeFor[**Widget]()))
	})

	t.Run("nil type", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "", r.Resolve(nil))
	})

	t.Run("model namer override", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Gadget", r.Resolve(reflect.TypeFor[renamedWidget]()))
	})

	t.Run("generic from reflected name", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Result[Item]", r.Resolve(reflect.TypeFor[Result[Item]]()))
		assert.Equal(t, "Result[string]", r.Resolve(reflect.TypeFor[Result[string]]()))
	})

	t.Run("generic with two arguments", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Pair[string, Item]", r.Resolve(reflect.TypeFor[Pair[string, Item]]()))
	})

	t.Run("generic descriptor resolves arguments", func(t *testing.T) {
		r := NewNameRegistry()
		r.Resolve(reflect.TypeFor[renamedWidget]())

		assert.Equal(t, "Envelope[Gadget]", r.Resolve(reflect.TypeFor[Envelope[renamedWidget]]()))
		assert.Equal(t, "Envelope[[]Item]", r.Resolve(reflect.TypeFor[Envelope[[]Item]]()))
		assert.Equal(t, "Envelope[map[string]int]", r.Resolve(reflect.TypeFor[Envelope[map[string]int]]()))
	})
}

func TestNameRegistryCollisions(t *testing.T) {
	t.Run("second type with same name gets suffix", func(t *testing.T) {
		outer := reflect.TypeFor[Widget]()

		type Widget struct {
			Other int `json:"other"`
		}
		inner := reflect.TypeFor[Widget]()

		r := NewNameRegistry()
		assert.Equal(t, "Widget", r.Resolve(outer))
		assert.Equal(t, "Widget1", r.Resolve(inner))
		assert.Equal(t, "Widget", r.Resolve(outer))

		got, ok := r.Lookup("Widget1")
		require.True(t, ok)
		assert.Equal(t, inner, got)
	})

	t.Run("generic and non-generic namesakes", func(t *testing.T) {
		first := func() reflect.Type {
			type Result struct{ A int }
			return reflect.TypeFor[Result]()
		}()
		second := func() reflect.Type {
			type Result struct{ B int }
			return reflect.TypeFor[Result]()
		}()

		r := NewNameRegistry()
		assert.Equal(t, "Result", r.Resolve(first))
		assert.Equal(t, "Result1", r.Resolve(second))
		assert.Equal(t, "Result[Item]", r.Resolve(reflect.TypeFor[Result[Item]]()))
	})

	t.Run("suffix goes on the base name of generics", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Result[Item]", r.Resolve(reflect.TypeFor[resultItemClaim]()))
		assert.Equal(t, "Result1[Item]", r.Resolve(reflect.TypeFor[Result[Item]]()))
	})

	t.Run("type arguments keep their registered names", func(t *testing.T) {
		r := NewNameRegistry()
		assert.Equal(t, "Pet", r.Resolve(reflect.TypeFor[zoo.Pet]()))
		assert.Equal(t, "Pet1", r.Resolve(reflect.TypeFor[farm.Pet]()))

		assert.Equal(t, "Result[Pet]", r.Resolve(reflect.TypeFor[Result[zoo.Pet]]()))
		assert.Equal(t, "Result[Pet1]", r.Resolve(reflect.TypeFor[Result[farm.Pet]]()))
		assert.Equal(t, "Pair[string, Pet1]", r.Resolve(reflect.TypeFor[Pair[string, *farm.Pet]]()))
	})

	t.Run("type arguments resolved on first use", func(t *testing.T) {
		r := NewNameRegistry()
		r.Resolve(reflect.TypeFor[zoo.Pet]())

		assert.Equal(t, "Result[[]Pet1]", r.Resolve(reflect.TypeFor[Result[[]farm.Pet]]()))

		got, ok := r.Lookup("Pet1")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[farm.Pet](), got)
	})

	t.Run("exhausted suffixes fall back to qualified name", func(t *testing.T) {
		r := NewNameRegistry()
		placeholder := reflect.TypeFor[int]()
		r.types["Widget"] = placeholder
		for i := 1; i <= maxNameAttempts; i++ {
			r.types["Widget"+strconv.Itoa(i)] = placeholder
		}

		wt := reflect.TypeFor[Widget]()
		assert.Equal(t, wt.PkgPath()+".Widget", r.Resolve(wt))
	})
}

func TestNameRegistryLookup(t *testing.T) {
	r := NewNameRegistry()

	_, ok := r.Lookup("Widget")
	assert.False(t, ok)

	r.Resolve(reflect.TypeFor[Widget]())

	got, ok := r.Lookup("Widget")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[Widget](), got)
}

func TestNameRegistryConcurrent(t *testing.T) {
	type Widget struct{ Local bool }

	r := NewNameRegistry()
	types := []reflect.Type{
		reflect.TypeFor[Widget](),
		reflect.TypeFor[*Widget](),
		reflect.TypeFor[Result[Item]](),
		reflect.TypeFor[Item](),
	}

	const workers = 32
	results := make([][]string, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, typ := range types {
				results[w] = append(results[w], r.Resolve(typ))
			}
		}()
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w])
	}
	assert.Equal(t, results[0][0], results[0][1])
}

func TestSplitTypeArgs(t *testing.T) {
	assert.Equal(t, []string{"a.B", "map[string]c.D"}, splitTypeArgs("a.B, map[string]c.D"))
	assert.Equal(t, []string{"x.Pair[int,string]"}, splitTypeArgs("x.Pair[int,string]"))
}
