package swagger

import "sort"

// ResolveTags collects the distinct tags used by operations and orders
// them by sort order, then by name. A configured override with the same
// name supplies the description and sort order; other tags get neither.
// Hidden names are skipped unless an override marks them visible.
//
// See: https://swagger.io/specification/v2/#tag-object
func ResolveTags(paths []*PathEntry, hidden []string, overrides []TagOverride) []Tag {
	byName := make(map[string]TagOverride, len(overrides))
	for _, o := range overrides {
		if _, ok := byName[o.Name]; !ok {
			byName[o.Name] = o
		}
	}

	skip := make(map[string]bool, len(hidden))
	for _, name := range hidden {
		skip[name] = true
	}
	for _, o := range overrides {
		if o.Visible {
			delete(skip, o.Name)
		}
	}

	seen := make(map[string]bool)
	var tags []Tag

	for _, entry := range paths {
		for _, op := range entry.Operations {
			for _, name := range op.Tags {
				if seen[name] || skip[name] {
					continue
				}
				seen[name] = true

				tag := Tag{Name: name}
				if o, ok := byName[name]; ok {
					tag.Description = o.Description
					tag.SortOrder = o.SortOrder
				}
				tags = append(tags, tag)
			}
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].SortOrder != tags[j].SortOrder {
			return tags[i].SortOrder < tags[j].SortOrder
		}
		return tags[i].Name < tags[j].Name
	})

	return tags
}
