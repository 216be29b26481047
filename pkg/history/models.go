package history

import (
	"time"

	"github.com/uptrace/bun"
)

// RecentSearch is one remembered query, deduplicated case-insensitively by
// storing the trimmed lowercase text.
type RecentSearch struct {
	bun.BaseModel `bun:"table:recent_searches,alias:rs"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Query          string    `bun:",nullzero" json:"query"`
	SearchCount    int       `json:"search_count"`
	LastSearchedAt time.Time `json:"last_searched_at"`
}
