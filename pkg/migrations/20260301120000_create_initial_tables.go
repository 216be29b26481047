package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE library_items (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				item_id TEXT NOT NULL,
				type TEXT NOT NULL,
				provider TEXT NOT NULL,
				name TEXT NOT NULL,
				sort_name TEXT NOT NULL DEFAULT '',
				uri TEXT NOT NULL DEFAULT '',
				favorite BOOLEAN NOT NULL DEFAULT FALSE,
				album_name TEXT NOT NULL DEFAULT '',
				artists TEXT NOT NULL DEFAULT '',
				authors TEXT NOT NULL DEFAULT '',
				narrators TEXT NOT NULL DEFAULT '',
				metadata TEXT NOT NULL DEFAULT '',
				provider_mappings TEXT NOT NULL DEFAULT ''
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_library_items_type_item_id ON library_items (type, item_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_library_items_provider ON library_items (provider)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE VIRTUAL TABLE items_fts USING fts5(
				item_pk UNINDEXED,
				type UNINDEXED,
				name,
				artists,
				album_name,
				authors,
				narrators,
				description
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				type TEXT NOT NULL,
				status TEXT NOT NULL,
				data TEXT NOT NULL,
				progress INTEGER NOT NULL,
				process_id TEXT
			)
`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS jobs")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec("DROP TABLE IF EXISTS items_fts")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec("DROP TABLE IF EXISTS library_items")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
