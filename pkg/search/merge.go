package search

import (
	"strings"

	"github.com/harmonia-music/harmonia/pkg/media"
)

// MergeByName combines library-local and remote results for one category.
// The dedupe key is the lower-cased item name; local items win so that the
// library-registered identity is preserved. Output is local-first, then the
// remaining unique remote items in their returned order.
func MergeByName(local, remote []media.Item) []media.Item {
	merged := make([]media.Item, 0, len(local)+len(remote))
	seen := make(map[string]struct{}, len(local))

	for _, item := range local {
		merged = append(merged, item)
		seen[strings.ToLower(item.Name)] = struct{}{}
	}

	for _, item := range remote {
		name := strings.ToLower(item.Name)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, item)
	}

	return merged
}

// FilterByName returns the items whose name contains the query substring,
// case-insensitive, preserving order. Used to search the in-memory local
// collections (radio stations, podcasts).
func FilterByName(items []media.Item, query string) []media.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []media.Item{}
	}

	matched := []media.Item{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			matched = append(matched, item)
		}
	}
	return matched
}
