package search

import (
	"context"
	"sync"
	"time"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Backend is the capability contract the session needs from the media server
// client. Search failures must be surfaced as errors distinct from zero
// results; the radio and podcast searches are remote-only and may fail
// independently of the primary search.
type Backend interface {
	Search(ctx context.Context, query string, libraryOnly bool) (CategoryResults, error)
	SearchRadioStations(ctx context.Context, query string) ([]media.Item, error)
	SearchPodcasts(ctx context.Context, query string) ([]media.Item, error)
	RadioStations(ctx context.Context) ([]media.Item, error)
	Podcasts(ctx context.Context) ([]media.Item, error)
	AddToFavorites(ctx context.Context, item media.Item) (bool, error)
	RemoveFromFavorites(ctx context.Context, item media.Item) (bool, error)
	AddToLibrary(ctx context.Context, item media.Item) (bool, error)
	RemoveFromLibrary(ctx context.Context, item media.Item) (bool, error)
}

// CategoryResults are the per-category lists of the primary merged search.
type CategoryResults struct {
	Artists    []media.Item
	Albums     []media.Item
	Tracks     []media.Item
	Playlists  []media.Item
	Audiobooks []media.Item
}

// SessionOptions configure a search session.
type SessionOptions struct {
	// Debounce is the quiet period before a typed query is searched.
	Debounce time.Duration
	// RemoteTimeout bounds every remote provider call.
	RemoteTimeout time.Duration
	// Log, when set, replaces the session's default logger.
	Log *logger.Logger
}

const defaultRemoteTimeout = 10 * time.Second

// Session owns one search surface: the current query, the result set, the
// unified list cache, the filter state, and the library membership overlay.
// A generation counter supersedes in-flight searches: a completion whose
// generation is no longer current is discarded instead of overwriting newer
// results.
type Session struct {
	backend       Backend
	log           logger.Logger
	debouncer     *Debouncer
	builder       *ListBuilder
	filters       *FilterState
	overlay       *Overlay
	remoteTimeout time.Duration

	mu          sync.Mutex
	gen         uint64
	results     *ResultSet
	hasSearched bool
	searchErr   error
	closed      bool
}

// NewSession creates a session on top of a backend.
func NewSession(backend Backend, opts SessionOptions) *Session {
	log := logger.New()
	if opts.Log != nil {
		log = *opts.Log
	}
	remoteTimeout := opts.RemoteTimeout
	if remoteTimeout <= 0 {
		remoteTimeout = defaultRemoteTimeout
	}

	s := &Session{
		backend:       backend,
		log:           log,
		debouncer:     NewDebouncer(opts.Debounce),
		filters:       NewFilterState(),
		overlay:       NewOverlay(),
		remoteTimeout: remoteTimeout,
		results:       NewResultSet(0, ""),
	}
	s.builder = NewListBuilder(&Scorer{InLibrary: s.InLibrary})
	return s
}

// SetQuery feeds a keystroke. The search runs after the quiet period; each
// new keystroke restarts the timer. An empty query clears results
// synchronously with no network call.
func (s *Session) SetQuery(query string, libraryOnly bool) {
	if query == "" {
		s.debouncer.Cancel()
		s.clear()
		return
	}

	gen := s.nextGeneration()
	s.debouncer.Trigger(func() {
		s.runSearch(gen, query, libraryOnly)
	})
}

// Submit bypasses the debounce and searches immediately, for explicit
// submission from a keyboard action.
func (s *Session) Submit(query string, libraryOnly bool) {
	if query == "" {
		s.debouncer.Cancel()
		s.clear()
		return
	}

	s.debouncer.Cancel()
	gen := s.nextGeneration()
	go s.runSearch(gen, query, libraryOnly)
}

func (s *Session) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.results = NewResultSet(s.gen, "")
	s.hasSearched = false
	s.searchErr = nil
	s.filters.SetResults(nil)
}

func (s *Session) runSearch(gen uint64, query string, libraryOnly bool) {
	ctx := context.Background()

	primary, err := s.searchPrimary(ctx, query, libraryOnly)
	if err != nil {
		s.log.Err(err).Error("search failed", logger.Data{"query": query})
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || gen != s.gen {
			return
		}
		// The previous result set is kept; the error state tells the caller
		// the displayed data is not fresh.
		s.searchErr = err
		return
	}

	radios := s.searchMerged(ctx, query, libraryOnly, CategoryRadios, s.backend.RadioStations, s.backend.SearchRadioStations)
	podcasts := s.searchMerged(ctx, query, libraryOnly, CategoryPodcasts, s.backend.Podcasts, s.backend.SearchPodcasts)

	rs := NewResultSet(gen, query)
	rs.Items[CategoryArtists] = primary.Artists
	rs.Items[CategoryAlbums] = primary.Albums
	rs.Items[CategoryTracks] = primary.Tracks
	rs.Items[CategoryPlaylists] = primary.Playlists
	rs.Items[CategoryAudiobooks] = primary.Audiobooks
	rs.Items[CategoryRadios] = <-radios
	rs.Items[CategoryPodcasts] = <-podcasts

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		// A newer query superseded this one while it was in flight.
		return
	}
	s.results = rs
	s.hasSearched = true
	s.searchErr = nil
	s.filters.SetResults(rs.Available())
}

func (s *Session) searchPrimary(ctx context.Context, query string, libraryOnly bool) (CategoryResults, error) {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	results, err := s.backend.Search(ctx, query, libraryOnly)
	if err != nil {
		return CategoryResults{}, errors.WithStack(err)
	}
	return results, nil
}

// searchMerged merges the local collection subset with a remote directory
// search for one category. The remote call is skipped in library-only mode
// and its failure degrades to local-only results.
func (s *Session) searchMerged(
	ctx context.Context,
	query string,
	libraryOnly bool,
	category string,
	localFn func(context.Context) ([]media.Item, error),
	remoteFn func(context.Context, string) ([]media.Item, error),
) <-chan []media.Item {
	out := make(chan []media.Item, 1)

	go func() {
		local := []media.Item{}
		collection, err := localFn(ctx)
		if err != nil {
			s.log.Err(err).Warn("local collection unavailable", logger.Data{"query": query, "category": category})
		} else {
			local = FilterByName(collection, query)
		}

		if libraryOnly {
			out <- local
			return
		}

		remoteCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		defer cancel()

		remote, err := remoteFn(remoteCtx, query)
		if err != nil {
			s.log.Err(err).Warn("remote search failed", logger.Data{"query": query, "category": category})
			out <- local
			return
		}

		out <- MergeByName(local, remote)
	}()

	return out
}

// Results returns the current result set.
func (s *Session) Results() *ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// HasSearched reports whether a non-empty search has completed since the last
// clear.
func (s *Session) HasSearched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSearched
}

// Err returns the error of the last failed search, nil after a successful
// one.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchErr
}

// Filters returns the filter state machine for this session.
func (s *Session) Filters() *FilterState {
	return s.filters
}

// List returns the rows for a filter, served from the per-generation cache.
func (s *Session) List(filter string) []Row {
	return s.builder.Build(s.Results(), filter)
}

// InLibrary reports effective library membership: the server-reported state
// with this session's optimistic edits applied.
func (s *Session) InLibrary(item media.Item) bool {
	return s.overlay.Effective(item.InLibrary(), item.Type, item.ItemID)
}

// SetFavorite toggles the favorite flag through the backend and applies the
// result optimistically to the current result set. Nothing is applied when
// the call fails or reports no change.
func (s *Session) SetFavorite(ctx context.Context, item media.Item, favorite bool) error {
	var (
		ok  bool
		err error
	)
	if favorite {
		ok, err = s.backend.AddToFavorites(ctx, item)
	} else {
		ok, err = s.backend.RemoveFromFavorites(ctx, item)
	}
	if err != nil {
		s.log.Err(err).Warn("favorite toggle failed", logger.Data{"item_id": item.ItemID})
		return errors.WithStack(err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.results.MarkFavorite(item.Key(), favorite)
	return nil
}

// SetLibraryMembership adds or removes the item from the library through the
// backend and records the session override on success.
func (s *Session) SetLibraryMembership(ctx context.Context, item media.Item, member bool) error {
	var (
		ok  bool
		err error
	)
	if member {
		ok, err = s.backend.AddToLibrary(ctx, item)
	} else {
		ok, err = s.backend.RemoveFromLibrary(ctx, item)
	}
	if err != nil {
		s.log.Err(err).Warn("library toggle failed", logger.Data{"item_id": item.ItemID})
		return errors.WithStack(err)
	}
	if !ok {
		return nil
	}

	if member {
		s.overlay.MarkAdded(item.Type, item.ItemID)
	} else {
		s.overlay.MarkRemoved(item.Type, item.ItemID)
	}
	return nil
}

// Close stops the session. In-flight searches may run to completion but their
// results are discarded.
func (s *Session) Close() {
	s.debouncer.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
