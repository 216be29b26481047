package jobs

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

const (
	// JobTypeSync refreshes the cached radio and podcast catalogs from the
	// external directories and rebuilds the search index.
	JobTypeSync = "sync"
	// JobTypeReindex rebuilds the search index without touching the
	// directories.
	JobTypeReindex = "reindex"
)

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID         int         `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Type       string      `bun:",nullzero" json:"type"`
	Status     string      `bun:",nullzero" json:"status"`
	Data       string      `bun:",nullzero" json:"-"`
	DataParsed interface{} `bun:"-" json:"data"`
	Progress   int         `json:"progress"`
	ProcessID  *string     `json:"process_id,omitempty"`
}

func (job *Job) UnmarshalData() error {
	switch job.Type {
	case JobTypeSync:
		job.DataParsed = &JobSyncData{}
	case JobTypeReindex:
		job.DataParsed = &JobReindexData{}
	}
	if job.Data == "" || job.DataParsed == nil {
		return nil
	}

	err := json.Unmarshal([]byte(job.Data), job.DataParsed)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

type JobSyncData struct {
	// StationLimit caps how many top stations are fetched from the radio
	// directory. Zero uses the worker default.
	StationLimit int `json:"station_limit,omitempty"`
}

type JobReindexData struct{}
