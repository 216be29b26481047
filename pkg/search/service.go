package search

import (
	"context"
	"time"

	"github.com/harmonia-music/harmonia/pkg/library"
	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/harmonia-music/harmonia/pkg/providers"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// ServiceOptions tune how the directory-backed categories behave.
type ServiceOptions struct {
	// RemoteTimeout bounds each directory call on top of the request context.
	// Zero leaves only the request deadline.
	RemoteTimeout time.Duration
	// RemoteEnabled is consulted per search so the runtime config toggle
	// takes effect without a restart. Nil means always enabled.
	RemoteEnabled func() bool
}

// Service implements Backend on top of the library snapshot and the external
// directory clients. It also provides the one-shot unified search used by the
// HTTP API.
type Service struct {
	library  *library.Service
	radios   *providers.RadioClient
	podcasts *providers.PodcastClient
	opts     ServiceOptions
	log      logger.Logger
}

func NewService(librarySvc *library.Service, radios *providers.RadioClient, podcasts *providers.PodcastClient, opts ServiceOptions) *Service {
	return &Service{
		library:  librarySvc,
		radios:   radios,
		podcasts: podcasts,
		opts:     opts,
		log:      logger.New(),
	}
}

func (svc *Service) remoteEnabled() bool {
	return svc.opts.RemoteEnabled == nil || svc.opts.RemoteEnabled()
}

// Search runs the primary library search across the FTS-backed categories.
func (svc *Service) Search(ctx context.Context, query string, libraryOnly bool) (CategoryResults, error) {
	results := CategoryResults{}

	searches := []struct {
		t   media.Type
		out *[]media.Item
	}{
		{media.TypeArtist, &results.Artists},
		{media.TypeAlbum, &results.Albums},
		{media.TypeTrack, &results.Tracks},
		{media.TypePlaylist, &results.Playlists},
		{media.TypeAudiobook, &results.Audiobooks},
	}
	for _, s := range searches {
		items, err := svc.library.Search(ctx, s.t, query, libraryOnly, 0)
		if err != nil {
			return CategoryResults{}, errors.WithStack(err)
		}
		*s.out = items
	}

	return results, nil
}

// SearchRadioStations queries the radio directory.
func (svc *Service) SearchRadioStations(ctx context.Context, query string) ([]media.Item, error) {
	items, err := svc.radios.Search(ctx, query)
	return items, errors.WithStack(err)
}

// SearchPodcasts queries the podcast directory.
func (svc *Service) SearchPodcasts(ctx context.Context, query string) ([]media.Item, error) {
	items, err := svc.podcasts.Search(ctx, query)
	return items, errors.WithStack(err)
}

// RadioStations returns the cached radio collection.
func (svc *Service) RadioStations(ctx context.Context) ([]media.Item, error) {
	items, err := svc.library.Collection(ctx, media.TypeRadio)
	return items, errors.WithStack(err)
}

// Podcasts returns the cached podcast collection.
func (svc *Service) Podcasts(ctx context.Context) ([]media.Item, error) {
	items, err := svc.library.Collection(ctx, media.TypePodcast)
	return items, errors.WithStack(err)
}

// AddToFavorites marks an item as favorite in the snapshot.
func (svc *Service) AddToFavorites(ctx context.Context, item media.Item) (bool, error) {
	ok, err := svc.library.SetFavorite(ctx, item.Type, item.ItemID, true)
	return ok, errors.WithStack(err)
}

// RemoveFromFavorites unmarks a favorite.
func (svc *Service) RemoveFromFavorites(ctx context.Context, item media.Item) (bool, error) {
	ok, err := svc.library.SetFavorite(ctx, item.Type, item.ItemID, false)
	return ok, errors.WithStack(err)
}

// AddToLibrary registers an item as a library member.
func (svc *Service) AddToLibrary(ctx context.Context, item media.Item) (bool, error) {
	ok, err := svc.library.Upsert(ctx, item)
	return ok, errors.WithStack(err)
}

// RemoveFromLibrary deletes an item from the library snapshot.
func (svc *Service) RemoveFromLibrary(ctx context.Context, item media.Item) (bool, error) {
	ok, err := svc.library.Remove(ctx, item.Type, item.ItemID)
	return ok, errors.WithStack(err)
}

// UnifiedResult is the response of a one-shot unified search.
type UnifiedResult struct {
	Query     string   `json:"query"`
	Filter    string   `json:"filter"`
	Available []string `json:"available_filters"`
	Rows      []Row    `json:"rows"`
}

// Unified runs one complete search and returns the ranked rows for the
// requested filter. A filter with no results in this set falls back to All.
// Directory failures degrade the affected category to library results.
func (svc *Service) Unified(ctx context.Context, query string, libraryOnly bool, filter string) (*UnifiedResult, error) {
	primary, err := svc.Search(ctx, query, libraryOnly)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rs := NewResultSet(0, query)
	rs.Items[CategoryArtists] = primary.Artists
	rs.Items[CategoryAlbums] = primary.Albums
	rs.Items[CategoryTracks] = primary.Tracks
	rs.Items[CategoryPlaylists] = primary.Playlists
	rs.Items[CategoryAudiobooks] = primary.Audiobooks
	rs.Items[CategoryRadios] = svc.mergedCategory(ctx, query, libraryOnly, CategoryRadios, svc.RadioStations, svc.SearchRadioStations)
	rs.Items[CategoryPodcasts] = svc.mergedCategory(ctx, query, libraryOnly, CategoryPodcasts, svc.Podcasts, svc.SearchPodcasts)

	available := rs.Available()
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll && !containsCategory(available, filter) {
		filter = FilterAll
	}

	builder := NewListBuilder(&Scorer{})
	rows := builder.Build(rs, filter)

	return &UnifiedResult{
		Query:     query,
		Filter:    filter,
		Available: available,
		Rows:      rows,
	}, nil
}

func (svc *Service) mergedCategory(
	ctx context.Context,
	query string,
	libraryOnly bool,
	category string,
	localFn func(context.Context) ([]media.Item, error),
	remoteFn func(context.Context, string) ([]media.Item, error),
) []media.Item {
	local := []media.Item{}
	collection, err := localFn(ctx)
	if err != nil {
		svc.log.Err(err).Warn("local collection unavailable", logger.Data{"category": category})
	} else {
		local = FilterByName(collection, query)
	}

	if libraryOnly || !svc.remoteEnabled() {
		return local
	}

	remoteCtx := ctx
	if svc.opts.RemoteTimeout > 0 {
		var cancel context.CancelFunc
		remoteCtx, cancel = context.WithTimeout(ctx, svc.opts.RemoteTimeout)
		defer cancel()
	}

	remote, err := remoteFn(remoteCtx, query)
	if err != nil {
		svc.log.Err(err).Warn("directory search failed", logger.Data{"category": category})
		return local
	}

	return MergeByName(local, remote)
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
