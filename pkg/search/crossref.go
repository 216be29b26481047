package search

import (
	"strings"

	"github.com/harmonia-music/harmonia/pkg/media"
)

// CrossRefScore is the fixed relevance assigned to cross-referenced artists:
// below every direct name-match tier, above nothing.
const CrossRefScore = 25

// minCrossRefWordLen filters out short query words ("a", "of") that would
// cross-reference almost anything.
const minCrossRefWordLen = 3

// CrossReferenceArtists derives additional artist hits from matched tracks
// and albums: artists performing on a result that weren't themselves returned
// by the artist search. An extracted artist is kept only if its name contains
// at least one query word of three or more characters. Identity is
// (provider, item id); the first occurrence wins.
func CrossReferenceArtists(query string, artists, albums, tracks []media.Item) []media.Item {
	type identity struct {
		provider string
		itemID   string
	}

	present := make(map[identity]struct{}, len(artists))
	for _, artist := range artists {
		present[identity{artist.Provider, artist.ItemID}] = struct{}{}
	}

	words := []string{}
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) >= minCrossRefWordLen {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return nil
	}

	var extracted []media.Item
	collect := func(refs []media.ArtistRef) {
		for _, ref := range refs {
			id := identity{ref.Provider, ref.ItemID}
			if _, ok := present[id]; ok {
				continue
			}
			present[id] = struct{}{}

			name := strings.ToLower(ref.Name)
			for _, word := range words {
				if strings.Contains(name, word) {
					extracted = append(extracted, media.Item{
						Type:     media.TypeArtist,
						ItemID:   ref.ItemID,
						Provider: ref.Provider,
						Name:     ref.Name,
					})
					break
				}
			}
		}
	}

	for _, track := range tracks {
		collect(track.Artists)
	}
	for _, album := range albums {
		collect(album.Artists)
	}

	return extracted
}
