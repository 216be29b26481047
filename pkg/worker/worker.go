package worker

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/harmonia-music/harmonia/pkg/config"
	"github.com/harmonia-music/harmonia/pkg/jobs"
	"github.com/harmonia-music/harmonia/pkg/library"
	"github.com/harmonia-music/harmonia/pkg/providers"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/uptrace/bun"
)

type Worker struct {
	config *config.Config
	log    logger.Logger

	// processID identifies this process in job claims so multiple workers
	// sharing the database don't pick up each other's jobs.
	processID string

	processFuncs map[string]func(ctx context.Context, job *jobs.Job) error

	jobService     *jobs.Service
	libraryService *library.Service
	radioClient    *providers.RadioClient
	podcastClient  *providers.PodcastClient

	queue          chan *jobs.Job
	shutdown       chan struct{}
	doneFetching   chan struct{}
	doneProcessing chan struct{}
}

func New(cfg *config.Config, db *bun.DB) *Worker {
	jobService := jobs.NewService(db)
	libraryService := library.NewService(db)

	processID := randStringBytes(8)
	if cfg.Hostname != "" {
		processID = cfg.Hostname + "-" + processID
	}

	w := &Worker{
		config:    cfg,
		log:       logger.New(),
		processID: processID,

		jobService:     jobService,
		libraryService: libraryService,
		radioClient:    providers.NewRadioClient(cfg.RadioDirectoryURL),
		podcastClient:  providers.NewPodcastClient(cfg.PodcastDirectoryURL),

		queue:          make(chan *jobs.Job, cfg.WorkerProcesses),
		shutdown:       make(chan struct{}),
		doneFetching:   make(chan struct{}),
		doneProcessing: make(chan struct{}, cfg.WorkerProcesses),
	}

	w.processFuncs = map[string]func(ctx context.Context, job *jobs.Job) error{
		jobs.JobTypeSync:    w.ProcessSyncJob,
		jobs.JobTypeReindex: w.ProcessReindexJob,
	}

	return w
}

func (w *Worker) Start() {
	go w.fetchJobs()
	go w.scheduleSyncJobs()
	for i := 0; i < w.config.WorkerProcesses; i++ {
		go w.processJobs()
	}
}

func (w *Worker) fetchJobs() {
	duration := 5 * time.Second
	timer := time.NewTimer(duration)

	for {
		select {
		case <-w.shutdown:
			// We're shutting down, so stop adding more jobs to the queue.
			w.doneFetching <- struct{}{}
			return
		case <-timer.C:
			j, err := w.jobService.ListJobs(context.Background(), jobs.ListJobsOptions{
				Limit:              pointerutil.Int(1),
				Statuses:           []string{jobs.JobStatusPending, jobs.JobStatusInProgress},
				ProcessIDToExclude: &w.processID,
			})
			if err != nil {
				w.log.Err(err).Error("list jobs error")
				timer.Reset(duration)
				continue
			}
			for _, job := range j {
				w.queue <- job
			}
			timer.Reset(duration)
		}
	}
}

func (w *Worker) processJobs() {
	for {
		select {
		case <-w.shutdown:
			w.doneProcessing <- struct{}{}
			return
		case job := <-w.queue:
			// Prep the context to be passed down to the process function.
			id, err := uuid.NewRandom()
			if err != nil {
				w.log.Err(err).Error("new uuid error")
				continue
			}
			log := w.log.ID(id.String()).Root(logger.Data{"job_id": job.ID, "type": job.Type, "process_id": w.processID})
			ctx := log.WithContext(context.Background())

			// Update job to be in progress and claimed by this process.
			job.Status = jobs.JobStatusInProgress
			job.ProcessID = &w.processID

			err = w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{
				Columns: []string{"status", "process_id"},
			})
			if err != nil {
				log.Err(err).Error("update job error")
				continue
			}

			// Find and invoke the appropriate process function.
			fn, ok := w.processFuncs[job.Type]
			if !ok {
				log.Error("can't find process function for type")
				continue
			}
			err = fn(ctx, job)
			if err != nil {
				log.Err(err).Error("process error")
				w.finishJob(ctx, log, job, jobs.JobStatusFailed)
				continue
			}

			w.finishJob(ctx, log, job, jobs.JobStatusCompleted)
		}
	}
}

func (w *Worker) finishJob(ctx context.Context, log logger.Logger, job *jobs.Job, status string) {
	job.Status = status

	err := w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{
		Columns: []string{"status"},
	})
	if err != nil {
		log.Err(err).Error("update job error")
	}
}

// scheduleSyncJobs enqueues a sync job on the configured interval, skipping
// ticks where one is already pending or running.
func (w *Worker) scheduleSyncJobs() {
	interval := w.config.UserConfig.SyncInterval()
	if interval <= 0 {
		return
	}
	timer := time.NewTimer(interval)

	for {
		select {
		case <-w.shutdown:
			return
		case <-timer.C:
			ctx := context.Background()
			hasActive, err := w.jobService.HasActiveJobByType(ctx, jobs.JobTypeSync)
			if err != nil {
				w.log.Err(err).Error("check active sync job error")
			} else if !hasActive {
				err = w.jobService.CreateJob(ctx, &jobs.Job{
					Type:       jobs.JobTypeSync,
					Status:     jobs.JobStatusPending,
					DataParsed: &jobs.JobSyncData{},
				})
				if err != nil {
					w.log.Err(err).Error("create sync job error")
				}
			}
			timer.Reset(interval)
		}
	}
}

func (w *Worker) Shutdown() {
	close(w.shutdown)

	<-w.doneFetching
	for i := 0; i < w.config.WorkerProcesses; i++ {
		<-w.doneProcessing
	}
}

const letterBytes = "abcdef0123456789"

func randStringBytes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}
