package search

import (
	"testing"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/stretchr/testify/assert"
)

func TestScoreNameTiers(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}

	tests := []struct {
		name     string
		itemName string
		query    string
		want     float64
	}{
		{"exact match", "Beatles", "beatles", 100},
		{"exact match ignores case and padding", "The Beatles", " the beatles ", 100},
		{"prefix match", "Beatles Anthology", "beatles", 80},
		{"word boundary after space", "The Beatles Anthology", "beatles", 60},
		{"substring only", "unbeatlesish", "beatles", 40},
		{"fuzzy upstream match", "Strawberry Fields", "beatles", 20},
		{"empty query", "Beatles", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := media.Item{Type: media.TypeArtist, Name: tt.itemName}
			assert.Equal(t, tt.want, scorer.Score(item, tt.query))
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}
	item := media.Item{
		Type:     media.TypeTrack,
		Name:     "Hey Jude",
		Favorite: true,
		Artists:  []media.ArtistRef{{Name: "The Beatles"}},
	}

	first := scorer.Score(item, "hey jude")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Score(item, "hey jude"))
	}
}

func TestScoreExactBeatsBoundary(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}
	exact := media.Item{Type: media.TypeArtist, Name: "Beatles"}
	boundary := media.Item{Type: media.TypeArtist, Name: "The Beatles Anthology"}

	assert.Greater(t, scorer.Score(exact, "Beatles"), scorer.Score(boundary, "Beatles"))
}

func TestMatchesWordBoundary(t *testing.T) {
	t.Parallel()

	assert.True(t, MatchesWordBoundary("the beatles anthology", "beatles"))
	assert.False(t, MatchesWordBoundary("unbeatlesish", "beatles"))

	// Multi-word queries match at the string start or after a space.
	assert.True(t, MatchesWordBoundary("the beatles anthology", "beatles anthology"))
	assert.True(t, MatchesWordBoundary("beatles anthology", "beatles anthology"))
	assert.False(t, MatchesWordBoundary("thebeatles anthology", "beatles anthology"))
}

func TestScoreFavoriteAndLibraryBonuses(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}

	album := media.Item{Type: media.TypeAlbum, Name: "Abbey Road", Provider: "tidal"}
	base := scorer.Score(album, "abbey road")
	assert.Equal(t, float64(100), base)

	album.Favorite = true
	assert.Equal(t, float64(105), scorer.Score(album, "abbey road"))

	album.Provider = media.ProviderLibrary
	assert.Equal(t, float64(115), scorer.Score(album, "abbey road"))
}

func TestScoreUsesInLibraryHook(t *testing.T) {
	t.Parallel()

	album := media.Item{Type: media.TypeAlbum, Name: "Abbey Road", Provider: "tidal"}

	scorer := &Scorer{InLibrary: func(media.Item) bool { return true }}
	assert.Equal(t, float64(110), scorer.Score(album, "abbey road"))
}

func TestScoreArtistBonuses(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}

	track := media.Item{
		Type:    media.TypeTrack,
		Name:    "Hey Jude",
		Artists: []media.ArtistRef{{Name: "The Beatles"}},
	}

	// Fuzzy base 20 + artist substring 8.
	assert.Equal(t, float64(28), scorer.Score(track, "beatles"))

	// Exact artist match wins over substring, they never stack.
	assert.Equal(t, float64(35), scorer.Score(track, "the beatles"))

	// Album name containment adds 5 on top.
	track.AlbumName = "The Beatles 1967-1970"
	assert.Equal(t, float64(40), scorer.Score(track, "the beatles"))
}

func TestScoreAudiobookBonuses(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}

	book := media.Item{
		Type:      media.TypeAudiobook,
		Name:      "Mort",
		Authors:   []string{"Terry Pratchett"},
		Narrators: []string{"Sian Clifford"},
	}

	// Fuzzy base 20 + author exact 15.
	assert.Equal(t, float64(35), scorer.Score(book, "terry pratchett"))

	// Fuzzy base 20 + author substring 8.
	assert.Equal(t, float64(28), scorer.Score(book, "pratchett"))

	// Narrator containment is independent of the author bonus.
	assert.Equal(t, float64(25), scorer.Score(book, "sian"))
}

func TestScorePodcastCreatorFields(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}

	show := media.Item{
		Type: media.TypePodcast,
		Name: "Hardcore History",
		Metadata: map[string]string{
			"author":      "Dan Carlin",
			"description": "Deep dives into dramatic moments of the past",
		},
	}

	// Fuzzy base 20 + author exact 15.
	assert.Equal(t, float64(35), scorer.Score(show, "dan carlin"))

	// Fuzzy base 20 + author substring 8.
	assert.Equal(t, float64(28), scorer.Score(show, "carlin"))

	// Description containment adds 5 on top of the base.
	assert.Equal(t, float64(25), scorer.Score(show, "dramatic"))
}

func TestScorePodcastProminenceHeuristic(t *testing.T) {
	t.Parallel()

	scorer := &Scorer{}

	tests := []struct {
		name  string
		show  string
		query string
		want  float64
	}{
		// "hardcore history" is 16 of 16 chars: prominence 1.0 -> +15 over
		// the exact-match base of 100.
		{"multi-word high prominence", "Hardcore History", "hardcore history", 115},
		// "history extra" is 13 of 31 chars: prominence ~0.42 -> +12 over the
		// boundary base of 60.
		{"multi-word medium prominence", "Revolutions history extra feeds", "history extra", 72},
		// 9 of 43 chars: prominence ~0.2 -> +8 over the boundary base of 60.
		{"multi-word low prominence", "a very long show about all of the world wars", "the world", 68},
		// Single-word query found in the name: flat +5 over boundary 60.
		{"single word in name", "Hardcore History", "history", 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			show := media.Item{Type: media.TypePodcast, Name: tt.show}
			assert.Equal(t, tt.want, scorer.Score(show, tt.query))
		})
	}
}
