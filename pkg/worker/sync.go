package worker

import (
	"context"

	"github.com/harmonia-music/harmonia/pkg/jobs"
	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const defaultStationLimit = 100

// ProcessSyncJob refreshes the cached radio and podcast catalogs from the
// external directories and rebuilds the search index. Directory failures
// abort the sync so the job is retried on the next schedule; existing cached
// rows are never dropped on failure.
func (w *Worker) ProcessSyncJob(ctx context.Context, job *jobs.Job) error {
	log := logger.FromContext(ctx)

	data, ok := job.DataParsed.(*jobs.JobSyncData)
	if !ok {
		return errors.New("invalid job data for sync job")
	}
	stationLimit := data.StationLimit
	if stationLimit <= 0 {
		stationLimit = defaultStationLimit
	}

	stations, err := w.radioClient.TopStations(ctx, stationLimit)
	if err != nil {
		return errors.WithStack(err)
	}
	log.Info("fetched radio catalog", logger.Data{"stations": len(stations)})

	if err := w.cacheItems(ctx, stations); err != nil {
		return errors.WithStack(err)
	}
	job.Progress = 50
	if err := w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{Columns: []string{"progress"}}); err != nil {
		return errors.WithStack(err)
	}

	if err := w.refreshPodcastCatalog(ctx); err != nil {
		return errors.WithStack(err)
	}
	job.Progress = 90
	if err := w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{Columns: []string{"progress"}}); err != nil {
		return errors.WithStack(err)
	}

	if err := w.libraryService.RebuildIndex(ctx); err != nil {
		return errors.WithStack(err)
	}

	job.Progress = 100
	err = w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{Columns: []string{"progress"}})
	return errors.WithStack(err)
}

// ProcessReindexJob rebuilds the search index from the snapshot table.
func (w *Worker) ProcessReindexJob(ctx context.Context, _ *jobs.Job) error {
	return errors.WithStack(w.libraryService.RebuildIndex(ctx))
}

// refreshPodcastCatalog re-resolves the podcasts already in the snapshot
// against the directory, keeping names and feeds current. The directory has
// no browse endpoint, so only known podcasts are refreshed.
func (w *Worker) refreshPodcastCatalog(ctx context.Context) error {
	podcasts, err := w.libraryService.Collection(ctx, media.TypePodcast)
	if err != nil {
		return errors.WithStack(err)
	}

	log := logger.FromContext(ctx)
	for _, podcast := range podcasts {
		if podcast.InLibrary() {
			continue
		}
		results, err := w.podcastClient.Search(ctx, podcast.Name)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, result := range results {
			if result.ItemID != podcast.ItemID {
				continue
			}
			if err := w.libraryService.Cache(ctx, result); err != nil {
				return errors.WithStack(err)
			}
			break
		}
	}
	log.Info("refreshed podcast catalog", logger.Data{"podcasts": len(podcasts)})

	return nil
}

func (w *Worker) cacheItems(ctx context.Context, items []media.Item) error {
	for _, item := range items {
		if err := w.libraryService.Cache(ctx, item); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
