package history

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	defaultSuggestionLimit = 10

	// Older entries are pruned so the table stays small.
	maxEntries = 200
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Record remembers a submitted query. Repeated searches bump the count and
// recency instead of inserting duplicates.
func (svc *Service) Record(ctx context.Context, query string) error {
	query = normalize(query)
	if query == "" {
		return nil
	}

	now := time.Now().UTC()
	_, err := svc.db.ExecContext(ctx, `
		INSERT INTO recent_searches (query, search_count, last_searched_at)
		VALUES (?, 1, ?)
		ON CONFLICT (query) DO UPDATE SET
			search_count = search_count + 1,
			last_searched_at = ?,
			updated_at = ?
	`, query, now, now, now)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = svc.db.ExecContext(ctx, `
		DELETE FROM recent_searches
		WHERE id NOT IN (SELECT id FROM recent_searches ORDER BY last_searched_at DESC LIMIT ?)
	`, maxEntries)
	return errors.WithStack(err)
}

// Suggest returns recent queries starting with the given prefix, most recent
// first. An empty prefix returns the most recent searches.
func (svc *Service) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	q := svc.db.NewSelect().
		Model((*RecentSearch)(nil)).
		Column("query").
		OrderExpr("last_searched_at DESC, search_count DESC, id DESC").
		Limit(limit)

	prefix = normalize(prefix)
	if prefix != "" {
		q = q.Where(`query LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")
	}

	queries := []string{}
	if err := q.Scan(ctx, &queries); err != nil {
		return nil, errors.WithStack(err)
	}
	return queries, nil
}

// Clear forgets all recorded searches.
func (svc *Service) Clear(ctx context.Context) error {
	_, err := svc.db.ExecContext(ctx, "DELETE FROM recent_searches")
	return errors.WithStack(err)
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
