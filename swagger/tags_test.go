package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pathsWithTags(tags ...[]string) []*PathEntry {
	entry := &PathEntry{ID: "/x"}
	for _, t := range tags {
		entry.Operations = append(entry.Operations, &Operation{Method: "GET", Tags: t})
	}
	return []*PathEntry{entry}
}

func TestResolveTags(t *testing.T) {
	t.Run("distinct and sorted by name", func(t *testing.T) {
		paths := pathsWithTags([]string{"pets", "store"}, []string{"store"}, []string{"admin"})
		tags := ResolveTags(paths, nil, nil)

		assert.Equal(t, []Tag{{Name: "admin"}, {Name: "pets"}, {Name: "store"}}, tags)
	})

	t.Run("overrides supply order and description", func(t *testing.T) {
		paths := pathsWithTags([]string{"pets", "store", "users"})
		overrides := []TagOverride{
			{Name: "store", Visible: true, Description: "Store operations", SortOrder: -1},
			{Name: "users", Visible: true, SortOrder: 5},
			{Name: "unused", Visible: true, SortOrder: -10},
		}

		tags := ResolveTags(paths, nil, overrides)

		assert.Equal(t, []Tag{
			{Name: "store", Description: "Store operations", SortOrder: -1},
			{Name: "pets"},
			{Name: "users", SortOrder: 5},
		}, tags)
	})

	t.Run("equal sort order falls back to name", func(t *testing.T) {
		paths := pathsWithTags([]string{"zeta", "alpha", "mid"})
		overrides := []TagOverride{
			{Name: "zeta", SortOrder: 1},
			{Name: "alpha", SortOrder: 1},
			{Name: "mid", SortOrder: 1},
		}

		tags := ResolveTags(paths, nil, overrides)

		assert.Equal(t, "alpha", tags[0].Name)
		assert.Equal(t, "mid", tags[1].Name)
		assert.Equal(t, "zeta", tags[2].Name)
	})

	t.Run("hidden names are skipped", func(t *testing.T) {
		paths := pathsWithTags([]string{"public", "internal"}, []string{"debug"})
		overrides := []TagOverride{{Name: "debug", Visible: true}}

		tags := ResolveTags(paths, []string{"internal", "debug"}, overrides)

		assert.Equal(t, []Tag{{Name: "debug"}, {Name: "public"}}, tags)
	})

	t.Run("no operations", func(t *testing.T) {
		assert.Empty(t, ResolveTags(nil, nil, nil))
	})
}
