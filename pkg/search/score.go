package search

import (
	"strings"

	"github.com/harmonia-music/harmonia/pkg/media"
)

// Name-match tiers. The strongest matching tier wins; tiers are not summed.
const (
	scoreExactMatch    = 100
	scorePrefixMatch   = 80
	scoreBoundaryMatch = 60
	scoreContainsMatch = 40
	scoreFuzzyMatch    = 20 // returned by upstream fuzzy search, name itself didn't match
)

// Additive bonuses applied on top of the base tier.
const (
	bonusLibraryAlbum      = 10
	bonusFavorite          = 5
	bonusSecondaryExact    = 15
	bonusSecondaryContains = 8
	bonusTertiaryContains  = 5
)

// Metadata fields scanned for podcast creator matches, in priority order for
// exact-match detection.
var podcastCreatorFields = []string{"author", "publisher", "owner", "creator"}

// Scorer computes relevance scores for search results. InLibrary decides
// library membership for the album bonus; when nil, the item's own provider
// field is used.
type Scorer struct {
	InLibrary func(media.Item) bool
}

func (s *Scorer) inLibrary(item media.Item) bool {
	if s != nil && s.InLibrary != nil {
		return s.InLibrary(item)
	}
	return item.InLibrary()
}

// Score returns the relevance of an item against a query. It is a pure
// function of the item fields and the trimmed, lower-cased query; repeated
// calls with the same inputs return the same value. The empty query scores 0.
func (s *Scorer) Score(item media.Item, query string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}

	name := strings.ToLower(item.Name)

	var score float64
	switch {
	case name == query:
		score = scoreExactMatch
	case strings.HasPrefix(name, query):
		score = scorePrefixMatch
	case MatchesWordBoundary(name, query):
		score = scoreBoundaryMatch
	case strings.Contains(name, query):
		score = scoreContainsMatch
	default:
		score = scoreFuzzyMatch
	}

	if item.Type == media.TypeAlbum && s.inLibrary(item) {
		score += bonusLibraryAlbum
	}
	if item.Favorite {
		score += bonusFavorite
	}

	switch item.Type {
	case media.TypeAlbum:
		score += secondaryFieldBonus(item.ArtistsString(), query)
	case media.TypeTrack:
		score += secondaryFieldBonus(item.ArtistsString(), query)
		if containsFold(item.AlbumName, query) {
			score += bonusTertiaryContains
		}
	case media.TypeAudiobook:
		score += secondaryFieldBonus(item.AuthorsString(), query)
		if containsFold(item.NarratorsString(), query) {
			score += bonusTertiaryContains
		}
	case media.TypePodcast, media.TypePodcastEpisode:
		score += podcastBonus(item, name, query)
	}

	return score
}

// secondaryFieldBonus compares the query against a joined-names string: exact
// match wins over substring match, never both.
func secondaryFieldBonus(joined, query string) float64 {
	joined = strings.ToLower(joined)
	if joined == "" {
		return 0
	}
	if joined == query {
		return bonusSecondaryExact
	}
	if strings.Contains(joined, query) {
		return bonusSecondaryContains
	}
	return 0
}

// podcastBonus scans the creator-style metadata fields and the description,
// falling back to a prominence heuristic on the podcast's own name when no
// creator field matched.
func podcastBonus(item media.Item, name, query string) float64 {
	var bonus float64

	exact := false
	contains := false
	for _, field := range podcastCreatorFields {
		value := strings.ToLower(item.Metadata[field])
		if value == "" {
			continue
		}
		if value == query {
			exact = true
			break
		}
		if strings.Contains(value, query) {
			contains = true
		}
	}

	switch {
	case exact:
		bonus += bonusSecondaryExact
	case contains:
		bonus += bonusSecondaryContains
	case strings.Contains(name, query):
		// No creator field matched but the show's own name did. Weight
		// multi-word queries by how much of the name they cover.
		if strings.Contains(query, " ") {
			prominence := float64(len(query)) / float64(len(name))
			switch {
			case prominence >= 0.5:
				bonus += 15
			case prominence >= 0.3:
				bonus += 12
			default:
				bonus += 8
			}
		} else {
			bonus += 5
		}
	}

	if containsFold(item.Metadata["description"], query) {
		bonus += bonusTertiaryContains
	}

	return bonus
}

// MatchesWordBoundary reports whether query occurs at a word boundary within
// text: at the start of the string, or immediately following a whitespace
// character. Both arguments are expected to be lower-cased already.
func MatchesWordBoundary(text, query string) bool {
	if strings.Contains(query, " ") {
		return strings.HasPrefix(text, query) || strings.Contains(text, " "+query)
	}
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
	}
	return false
}

func containsFold(text, query string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), query)
}
