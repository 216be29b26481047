package worker

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harmonia-music/harmonia/pkg/config"
	"github.com/harmonia-music/harmonia/pkg/jobs"
	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/harmonia-music/harmonia/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
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

func newTestWorker(t *testing.T, radioHandler, podcastHandler http.HandlerFunc) (*Worker, *bun.DB) {
	t.Helper()

	if radioHandler == nil {
		radioHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}
	}
	if podcastHandler == nil {
		podcastHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"resultCount": 0, "results": []}`))
		}
	}

	radioSrv := httptest.NewServer(radioHandler)
	podcastSrv := httptest.NewServer(podcastHandler)
	t.Cleanup(func() {
		radioSrv.Close()
		podcastSrv.Close()
	})

	db := newTestDB(t)
	cfg := &config.Config{
		RadioDirectoryURL:   radioSrv.URL,
		PodcastDirectoryURL: podcastSrv.URL,
		WorkerProcesses:     1,
	}

	return New(cfg, db), db
}

func createSyncJob(t *testing.T, w *Worker, data *jobs.JobSyncData) *jobs.Job {
	t.Helper()

	job := &jobs.Job{
		Type:       jobs.JobTypeSync,
		Status:     jobs.JobStatusPending,
		DataParsed: data,
	}
	require.NoError(t, w.jobService.CreateJob(context.Background(), job))
	return job
}

func TestProcessSyncJobCachesStations(t *testing.T) {
	t.Parallel()

	radioHandler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/topvote/100", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"stationuuid": "uuid-1", "name": "Radio Paradise", "url_resolved": "http://stream/rp"},
			{"stationuuid": "uuid-2", "name": "BBC Radio 1", "url_resolved": "http://stream/bbc"}
		]`))
	}
	w, _ := newTestWorker(t, radioHandler, nil)
	ctx := context.Background()

	job := createSyncJob(t, w, &jobs.JobSyncData{})
	require.NoError(t, w.ProcessSyncJob(ctx, job))
	assert.Equal(t, 100, job.Progress)

	// Catalog is cached and searchable.
	collection, err := w.libraryService.Collection(ctx, media.TypeRadio)
	require.NoError(t, err)
	require.Len(t, collection, 2)

	results, err := w.libraryService.Search(ctx, media.TypeRadio, "paradise", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "uuid-1", results[0].ItemID)
}

func TestProcessSyncJobDirectoryFailureKeepsCache(t *testing.T) {
	t.Parallel()

	radioHandler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}
	w, _ := newTestWorker(t, radioHandler, nil)
	ctx := context.Background()

	require.NoError(t, w.libraryService.Cache(ctx, media.Item{
		Type: media.TypeRadio, ItemID: "uuid-1", Provider: "radiobrowser", Name: "Jazz FM",
	}))

	job := createSyncJob(t, w, &jobs.JobSyncData{})
	require.Error(t, w.ProcessSyncJob(ctx, job))

	// The previously cached station survives the failed sync.
	collection, err := w.libraryService.Collection(ctx, media.TypeRadio)
	require.NoError(t, err)
	require.Len(t, collection, 1)
}

func TestProcessSyncJobRespectsStationLimit(t *testing.T) {
	t.Parallel()

	radioHandler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/topvote/5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}
	w, _ := newTestWorker(t, radioHandler, nil)

	job := createSyncJob(t, w, &jobs.JobSyncData{StationLimit: 5})
	require.NoError(t, w.ProcessSyncJob(context.Background(), job))
}

func TestProcessReindexJob(t *testing.T) {
	t.Parallel()

	w, db := newTestWorker(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, w.libraryService.Cache(ctx, media.Item{
		Type: media.TypeRadio, ItemID: "uuid-1", Provider: "radiobrowser", Name: "Jazz FM",
	}))

	// Wipe the index behind the service's back, then rebuild.
	_, err := db.ExecContext(ctx, "DELETE FROM items_fts")
	require.NoError(t, err)

	results, err := w.libraryService.Search(ctx, media.TypeRadio, "jazz", false, 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, w.ProcessReindexJob(ctx, &jobs.Job{Type: jobs.JobTypeReindex}))

	results, err = w.libraryService.Search(ctx, media.TypeRadio, "jazz", false, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
}
