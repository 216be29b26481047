package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterStateStartsOnAll(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	assert.Equal(t, FilterAll, s.Active())
	assert.Equal(t, 0, s.Page())
}

func TestFilterStateFallsBackToAll(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.SetResults([]string{CategoryArtists, CategoryTracks})

	_, ok := s.Select(CategoryTracks)
	require.True(t, ok)
	assert.Equal(t, CategoryTracks, s.Active())

	// Tracks disappear from the next result set: active must reset.
	s.SetResults([]string{CategoryArtists})
	assert.Equal(t, FilterAll, s.Active())
}

func TestFilterStateKeepsActiveWhenStillAvailable(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.SetResults([]string{CategoryArtists, CategoryTracks})
	_, ok := s.Select(CategoryArtists)
	require.True(t, ok)

	s.SetResults([]string{CategoryArtists, CategoryAlbums})
	assert.Equal(t, CategoryArtists, s.Active())
}

func TestFilterStateSelectReturnsPage(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.SetResults([]string{CategoryArtists, CategoryAlbums, CategoryTracks})

	page, ok := s.Select(CategoryAlbums)
	require.True(t, ok)
	assert.Equal(t, 2, page)

	_, ok = s.Select(CategoryPodcasts)
	assert.False(t, ok)
}

func TestFilterStateSettleIgnoredDuringProgrammaticChange(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.SetResults([]string{CategoryArtists, CategoryAlbums})

	_, ok := s.Select(CategoryAlbums)
	require.True(t, ok)

	// The swipe settle that the programmatic jump itself produces must not
	// steal the active filter.
	s.Settle(1)
	assert.Equal(t, CategoryAlbums, s.Active())

	s.AckSettled()
	s.Settle(1)
	assert.Equal(t, CategoryArtists, s.Active())
}

func TestFilterStateSettleOutOfRange(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.SetResults([]string{CategoryArtists})

	s.Settle(7)
	assert.Equal(t, FilterAll, s.Active())

	s.Settle(0)
	assert.Equal(t, FilterAll, s.Active())
}

func TestChipScrollOffset(t *testing.T) {
	t.Parallel()

	// Chip left of the viewport: scroll back just enough.
	assert.Equal(t, -10, ChipScrollOffset(20, 60, 30, 130))
	// Chip right of the viewport: scroll forward just enough.
	assert.Equal(t, 20, ChipScrollOffset(110, 150, 30, 130))
	// Fully visible: never re-center.
	assert.Equal(t, 0, ChipScrollOffset(40, 80, 30, 130))
}
