// Package search implements unified media search: per-category merging of
// library and remote provider results, relevance scoring, artist
// cross-referencing, and the filter state that keeps a paged result view
// consistent.
package search

import (
	"github.com/harmonia-music/harmonia/pkg/media"
)

// FilterAll is the pseudo-category for the unified, score-ordered view.
const FilterAll = "all"

// Category names, in presentation order.
const (
	CategoryArtists    = "artists"
	CategoryAlbums     = "albums"
	CategoryTracks     = "tracks"
	CategoryPlaylists  = "playlists"
	CategoryAudiobooks = "audiobooks"
	CategoryRadios     = "radios"
	CategoryPodcasts   = "podcasts"
)

// Categories lists every category in presentation order.
var Categories = []string{
	CategoryArtists,
	CategoryAlbums,
	CategoryTracks,
	CategoryPlaylists,
	CategoryAudiobooks,
	CategoryRadios,
	CategoryPodcasts,
}

// ResultSet holds the ordered per-category results of one completed search.
// It is rebuilt wholesale on every completed search; the only in-place
// mutation is the optimistic favorite edit applied by identity match.
type ResultSet struct {
	// Generation increments on every completed search. The unified list cache
	// and staleness checks key off it instead of comparing contents.
	Generation uint64
	Query      string
	Items      map[string][]media.Item
}

// NewResultSet returns an empty result set for the given generation.
func NewResultSet(generation uint64, query string) *ResultSet {
	return &ResultSet{
		Generation: generation,
		Query:      query,
		Items:      map[string][]media.Item{},
	}
}

// Available returns the categories that have at least one result, in
// presentation order.
func (rs *ResultSet) Available() []string {
	available := []string{}
	for _, category := range Categories {
		if len(rs.Items[category]) > 0 {
			available = append(available, category)
		}
	}
	return available
}

// Empty reports whether the result set has no items in any category.
func (rs *ResultSet) Empty() bool {
	for _, items := range rs.Items {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// Total returns the number of items across all categories.
func (rs *ResultSet) Total() int {
	total := 0
	for _, items := range rs.Items {
		total += len(items)
	}
	return total
}

// MarkFavorite applies an optimistic favorite edit to every item whose
// identity (uri, falling back to item id) matches.
func (rs *ResultSet) MarkFavorite(key string, favorite bool) {
	for category, items := range rs.Items {
		for i := range items {
			if items[i].Key() == key {
				items[i].Favorite = favorite
			}
		}
		rs.Items[category] = items
	}
}
