package search

import (
	"sort"
	"sync"

	"github.com/harmonia-music/harmonia/pkg/media"
)

// Row is one entry of a built result list. Category tags the row's origin in
// the unified "all" view; Score is only meaningful there.
type Row struct {
	Item     media.Item `json:"item"`
	Category string     `json:"category"`
	Score    float64    `json:"score,omitempty"`
}

type listKey struct {
	generation uint64
	filter     string
}

// ListBuilder turns a result set into ordered row lists and caches them per
// (generation, filter). The view is paged and swipeable, so rebuilding on
// every render is not an option; a new generation invalidates every cached
// list at once.
type ListBuilder struct {
	scorer *Scorer

	mu    sync.Mutex
	cache map[listKey][]Row
}

// NewListBuilder returns a builder that scores with the given scorer. A nil
// scorer falls back to provider-field library detection.
func NewListBuilder(scorer *Scorer) *ListBuilder {
	if scorer == nil {
		scorer = &Scorer{}
	}
	return &ListBuilder{
		scorer: scorer,
		cache:  map[listKey][]Row{},
	}
}

// Build returns the row list for a filter. For FilterAll every item is scored,
// cross-referenced artists are appended at the fixed score, and the result is
// stable-sorted descending so that ties keep encounter order. For a specific
// category the items come back in their natural merged order, unscored.
func (b *ListBuilder) Build(rs *ResultSet, filter string) []Row {
	key := listKey{rs.Generation, filter}

	b.mu.Lock()
	if rows, ok := b.cache[key]; ok {
		b.mu.Unlock()
		return rows
	}
	// Lists from older generations can't be served anymore; drop them so the
	// cache holds at most one generation.
	for cached := range b.cache {
		if cached.generation != rs.Generation {
			delete(b.cache, cached)
		}
	}
	b.mu.Unlock()

	var rows []Row
	if filter == FilterAll {
		rows = b.buildUnified(rs)
	} else {
		items := rs.Items[filter]
		rows = make([]Row, len(items))
		for i, item := range items {
			rows[i] = Row{Item: item, Category: filter}
		}
	}

	b.mu.Lock()
	b.cache[key] = rows
	b.mu.Unlock()

	return rows
}

func (b *ListBuilder) buildUnified(rs *ResultSet) []Row {
	rows := []Row{}
	for _, category := range Categories {
		for _, item := range rs.Items[category] {
			rows = append(rows, Row{
				Item:     item,
				Category: category,
				Score:    b.scorer.Score(item, rs.Query),
			})
		}
	}

	extracted := CrossReferenceArtists(
		rs.Query,
		rs.Items[CategoryArtists],
		rs.Items[CategoryAlbums],
		rs.Items[CategoryTracks],
	)
	for _, artist := range extracted {
		rows = append(rows, Row{
			Item:     artist,
			Category: CategoryArtists,
			Score:    CrossRefScore,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return rows
}
