package library

import (
	"context"
	"database/sql"
	"testing"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/harmonia-music/harmonia/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// Each pooled connection would otherwise get its own empty :memory: DB.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestUpsertAndSearch(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	added, err := svc.Upsert(ctx, media.Item{
		Type:    media.TypeAlbum,
		ItemID:  "al-1",
		Name:    "Abbey Road",
		URI:     "library://album/al-1",
		Artists: []media.ArtistRef{{ItemID: "ar-1", Provider: "library", Name: "The Beatles"}},
	})
	require.NoError(t, err)
	assert.True(t, added)

	// A second add of the same item reports no change.
	added, err = svc.Upsert(ctx, media.Item{Type: media.TypeAlbum, ItemID: "al-1", Name: "Abbey Road"})
	require.NoError(t, err)
	assert.False(t, added)

	results, err := svc.Search(ctx, media.TypeAlbum, "abbey", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Abbey Road", results[0].Name)
	assert.Equal(t, media.ProviderLibrary, results[0].Provider)
	require.Len(t, results[0].Artists, 1)
	assert.Equal(t, "The Beatles", results[0].Artists[0].Name)
}

func TestSearchMatchesSecondaryFields(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Upsert(ctx, media.Item{
		Type:      media.TypeTrack,
		ItemID:    "tr-1",
		Name:      "Come Together",
		AlbumName: "Abbey Road",
		Artists:   []media.ArtistRef{{ItemID: "ar-1", Provider: "library", Name: "The Beatles"}},
	})
	require.NoError(t, err)

	// Artist and album names are indexed alongside the track name.
	results, err := svc.Search(ctx, media.TypeTrack, "beatles", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = svc.Search(ctx, media.TypeTrack, "abbey", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchLibraryOnlyExcludesCachedRows(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Upsert(ctx, media.Item{Type: media.TypeAlbum, ItemID: "al-1", Name: "Revolver"})
	require.NoError(t, err)
	err = svc.Cache(ctx, media.Item{Type: media.TypeAlbum, ItemID: "al-2", Provider: "qobuz", Name: "Revolver Sessions"})
	require.NoError(t, err)

	all, err := svc.Search(ctx, media.TypeAlbum, "revolver", false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	libraryOnly, err := svc.Search(ctx, media.TypeAlbum, "revolver", true, 0)
	require.NoError(t, err)
	require.Len(t, libraryOnly, 1)
	assert.Equal(t, "al-1", libraryOnly[0].ItemID)
}

func TestSearchEmptyQuery(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	results, err := svc.Search(ctx, media.TypeAlbum, "   ", false, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCacheNeverDowngradesLibraryRow(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Upsert(ctx, media.Item{Type: media.TypePodcast, ItemID: "pc-1", Name: "Science Hour"})
	require.NoError(t, err)

	// A later catalog sync must not strip library membership.
	err = svc.Cache(ctx, media.Item{Type: media.TypePodcast, ItemID: "pc-1", Provider: "podcastindex", Name: "Science Hour"})
	require.NoError(t, err)

	row, err := svc.Get(ctx, media.TypePodcast, "pc-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, media.ProviderLibrary, row.Provider)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Upsert(ctx, media.Item{Type: media.TypeRadio, ItemID: "ra-1", Name: "Jazz FM"})
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, media.TypeRadio, "ra-1")
	require.NoError(t, err)
	assert.True(t, removed)

	// Gone from FTS as well.
	results, err := svc.Search(ctx, media.TypeRadio, "jazz", false, 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	removed, err = svc.Remove(ctx, media.TypeRadio, "ra-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSetFavorite(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Upsert(ctx, media.Item{Type: media.TypeTrack, ItemID: "tr-1", Name: "Let It Be"})
	require.NoError(t, err)

	changed, err := svc.SetFavorite(ctx, media.TypeTrack, "tr-1", true)
	require.NoError(t, err)
	assert.True(t, changed)

	// Same value again: no change.
	changed, err = svc.SetFavorite(ctx, media.TypeTrack, "tr-1", true)
	require.NoError(t, err)
	assert.False(t, changed)

	// Unknown item: no change.
	changed, err = svc.SetFavorite(ctx, media.TypeTrack, "missing", true)
	require.NoError(t, err)
	assert.False(t, changed)

	row, err := svc.Get(ctx, media.TypeTrack, "tr-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Favorite)
}

func TestCollectionAndRebuildIndex(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	err := svc.Cache(ctx, media.Item{Type: media.TypeRadio, ItemID: "ra-2", Provider: "radiobrowser", Name: "Radio Paradise"})
	require.NoError(t, err)
	err = svc.Cache(ctx, media.Item{Type: media.TypeRadio, ItemID: "ra-1", Provider: "radiobrowser", Name: "BBC Radio 1"})
	require.NoError(t, err)

	collection, err := svc.Collection(ctx, media.TypeRadio)
	require.NoError(t, err)
	require.Len(t, collection, 2)
	assert.Equal(t, "BBC Radio 1", collection[0].Name)
	assert.Equal(t, "Radio Paradise", collection[1].Name)

	err = svc.RebuildIndex(ctx)
	require.NoError(t, err)

	results, err := svc.Search(ctx, media.TypeRadio, "paradise", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Radio Paradise", results[0].Name)
}

func TestCollectionCatalogSortOrder(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	// "The Current" files under C, ahead of KEXP.
	err := svc.Cache(ctx, media.Item{Type: media.TypeRadio, ItemID: "ra-1", Provider: "radiobrowser", Name: "KEXP"})
	require.NoError(t, err)
	err = svc.Cache(ctx, media.Item{Type: media.TypeRadio, ItemID: "ra-2", Provider: "radiobrowser", Name: "The Current"})
	require.NoError(t, err)

	collection, err := svc.Collection(ctx, media.TypeRadio)
	require.NoError(t, err)
	require.Len(t, collection, 2)
	assert.Equal(t, "The Current", collection[0].Name)
	assert.Equal(t, "KEXP", collection[1].Name)

	// Artists sort surname-first with honorifics stripped: "John, Elton"
	// ahead of "Pop, Iggy".
	_, err = svc.Upsert(ctx, media.Item{Type: media.TypeArtist, ItemID: "ar-1", Name: "Iggy Pop"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, media.Item{Type: media.TypeArtist, ItemID: "ar-2", Name: "Sir Elton John"})
	require.NoError(t, err)

	artists, err := svc.Collection(ctx, media.TypeArtist)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Sir Elton John", artists[0].Name)
	assert.Equal(t, "Iggy Pop", artists[1].Name)
}

func TestUpsertPreservesSyncedFields(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Upsert(ctx, media.Item{
		Type:      media.TypeAudiobook,
		ItemID:    "ab-1",
		Name:      "Dune",
		URI:       "library://audiobook/ab-1",
		Authors:   []string{"Frank Herbert"},
		Narrators: []string{"Scott Brick"},
		Metadata:  map[string]string{"description": "Desert planet epic"},
	})
	require.NoError(t, err)

	// A membership toggle sends only the identity fields. The synced columns
	// must survive the update.
	_, err = svc.Upsert(ctx, media.Item{Type: media.TypeAudiobook, ItemID: "ab-1", Name: "Dune"})
	require.NoError(t, err)

	row, err := svc.Get(ctx, media.TypeAudiobook, "ab-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	item, err := row.ToMedia()
	require.NoError(t, err)
	assert.Equal(t, "library://audiobook/ab-1", item.URI)
	assert.Equal(t, []string{"Frank Herbert"}, item.Authors)
	assert.Equal(t, []string{"Scott Brick"}, item.Narrators)
	assert.Equal(t, "Desert planet epic", item.Metadata["description"])

	// The narrator stays searchable through the rebuilt index entry.
	results, err := svc.Search(ctx, media.TypeAudiobook, "brick", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ab-1", results[0].ItemID)
}
