package library

import (
	"context"
	"database/sql"
	"time"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const defaultSearchLimit = 20

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Get fetches one snapshot row by media type and provider item id.
func (svc *Service) Get(ctx context.Context, t media.Type, itemID string) (*Item, error) {
	item := &Item{}
	err := svc.db.NewSelect().
		Model(item).
		Where("type = ?", t).
		Where("item_id = ?", itemID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return item, nil
}

// Search runs an FTS prefix search over one media type and returns results in
// rank order. When libraryOnly is set, rows cached from external provider
// catalogs are excluded.
func (svc *Service) Search(ctx context.Context, t media.Type, query string, libraryOnly bool, limit int) ([]media.Item, error) {
	ftsQuery := BuildPrefixQuery(query)
	if ftsQuery == "" {
		return []media.Item{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	q := svc.db.NewSelect().
		Model((*Item)(nil)).
		Join("JOIN items_fts ON items_fts.item_pk = li.id").
		Where("items_fts MATCH ?", ftsQuery).
		Where("li.type = ?", t).
		OrderExpr("items_fts.rank").
		Limit(limit)
	if libraryOnly {
		q = q.Where("li.provider = ?", media.ProviderLibrary)
	}

	rows := []*Item{}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, errors.WithStack(err)
	}

	return toMediaItems(rows)
}

// Collection returns every snapshot row of one media type in catalog sort
// order ("The Kinks" under K). Used for the radio and podcast collections,
// which are searched in memory rather than through FTS.
func (svc *Service) Collection(ctx context.Context, t media.Type) ([]media.Item, error) {
	rows := []*Item{}
	err := svc.db.NewSelect().
		Model(&rows).
		Where("type = ?", t).
		OrderExpr("sort_name COLLATE NOCASE ASC, name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toMediaItems(rows)
}

// List returns a page of snapshot rows, optionally filtered by media type.
func (svc *Service) List(ctx context.Context, t media.Type, limit, offset int) ([]*Item, int, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	q := svc.db.NewSelect().
		Model((*Item)(nil)).
		OrderExpr("sort_name COLLATE NOCASE ASC, name ASC").
		Limit(limit).
		Offset(offset)
	if t != "" {
		q = q.Where("type = ?", t)
	}

	rows := []*Item{}
	total, err := q.ScanAndCount(ctx, &rows)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return rows, total, nil
}

// Upsert inserts an item into the snapshot or refreshes the existing row.
// Adding an item this way marks it as library-owned. Returns false when the
// item was already present as a library member.
func (svc *Service) Upsert(ctx context.Context, item media.Item) (bool, error) {
	existing, err := svc.Get(ctx, item.Type, item.ItemID)
	if err != nil {
		return false, errors.WithStack(err)
	}

	item.Provider = media.ProviderLibrary
	row, err := FromMedia(item)
	if err != nil {
		return false, errors.WithStack(err)
	}
	row.UpdatedAt = time.Now()

	if existing != nil {
		alreadyMember := existing.Provider == media.ProviderLibrary
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		row.Favorite = existing.Favorite || item.Favorite
		// A sparse re-add (membership toggle from a search row) must not wipe
		// columns the sync worker filled in.
		if row.URI == "" {
			row.URI = existing.URI
		}
		if row.AlbumName == "" {
			row.AlbumName = existing.AlbumName
		}
		if row.Artists == "" {
			row.Artists = existing.Artists
		}
		if row.Authors == "" {
			row.Authors = existing.Authors
		}
		if row.Narrators == "" {
			row.Narrators = existing.Narrators
		}
		if row.Metadata == "" {
			row.Metadata = existing.Metadata
		}
		if row.ProviderMappings == "" {
			row.ProviderMappings = existing.ProviderMappings
		}
		_, err = svc.db.NewUpdate().Model(row).WherePK().Exec(ctx)
		if err != nil {
			return false, errors.WithStack(err)
		}
		if err := svc.indexItem(ctx, row); err != nil {
			return false, errors.WithStack(err)
		}
		return !alreadyMember, nil
	}

	row.CreatedAt = row.UpdatedAt
	_, err = svc.db.NewInsert().Model(row).Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	if err := svc.indexItem(ctx, row); err != nil {
		return false, errors.WithStack(err)
	}
	return true, nil
}

// Cache stores an item fetched from an external provider catalog without
// marking it as a library member. An existing library row is left untouched.
func (svc *Service) Cache(ctx context.Context, item media.Item) error {
	existing, err := svc.Get(ctx, item.Type, item.ItemID)
	if err != nil {
		return errors.WithStack(err)
	}
	if existing != nil && existing.Provider == media.ProviderLibrary {
		return nil
	}

	row, err := FromMedia(item)
	if err != nil {
		return errors.WithStack(err)
	}
	row.UpdatedAt = time.Now()
	if existing != nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		row.Favorite = existing.Favorite
		_, err = svc.db.NewUpdate().Model(row).WherePK().Exec(ctx)
	} else {
		row.CreatedAt = row.UpdatedAt
		_, err = svc.db.NewInsert().Model(row).Exec(ctx)
	}
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(svc.indexItem(ctx, row))
}

// Remove deletes an item from the snapshot. Returns false when there was
// nothing to delete.
func (svc *Service) Remove(ctx context.Context, t media.Type, itemID string) (bool, error) {
	existing, err := svc.Get(ctx, t, itemID)
	if err != nil {
		return false, errors.WithStack(err)
	}
	if existing == nil {
		return false, nil
	}

	_, err = svc.db.NewDelete().
		Model((*Item)(nil)).
		Where("id = ?", existing.ID).
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return true, errors.WithStack(svc.deleteFromIndex(ctx, existing.ID))
}

// SetFavorite flips the favorite flag. Returns false when the flag already had
// the requested value or the item is unknown.
func (svc *Service) SetFavorite(ctx context.Context, t media.Type, itemID string, favorite bool) (bool, error) {
	res, err := svc.db.NewUpdate().
		Model((*Item)(nil)).
		Set("favorite = ?", favorite).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("type = ?", t).
		Where("item_id = ?", itemID).
		Where("favorite != ?", favorite).
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.WithStack(err)
	}
	return affected > 0, nil
}

func (svc *Service) indexItem(ctx context.Context, row *Item) error {
	if err := svc.deleteFromIndex(ctx, row.ID); err != nil {
		return errors.WithStack(err)
	}

	item, err := row.ToMedia()
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = svc.db.ExecContext(ctx,
		`INSERT INTO items_fts (item_pk, type, name, artists, album_name, authors, narrators, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.Type,
		row.Name,
		item.ArtistsString(),
		row.AlbumName,
		item.AuthorsString(),
		item.NarratorsString(),
		item.Metadata["description"],
	)
	return errors.WithStack(err)
}

func (svc *Service) deleteFromIndex(ctx context.Context, itemPK int) error {
	_, err := svc.db.NewDelete().
		TableExpr("items_fts").
		Where("item_pk = ?", itemPK).
		Exec(ctx)
	return errors.WithStack(err)
}

// RebuildIndex rebuilds the FTS index from the snapshot table. Called after a
// sync job completes.
func (svc *Service) RebuildIndex(ctx context.Context) error {
	_, err := svc.db.ExecContext(ctx, "DELETE FROM items_fts")
	if err != nil {
		return errors.WithStack(err)
	}

	rows := []*Item{}
	err = svc.db.NewSelect().Model(&rows).Scan(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	for _, row := range rows {
		if err := svc.indexItem(ctx, row); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func toMediaItems(rows []*Item) ([]media.Item, error) {
	items := make([]media.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.ToMedia()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		items = append(items, item)
	}
	return items, nil
}
