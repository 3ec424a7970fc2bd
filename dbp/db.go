// Package dbp archives fetched stories in sqlite.
// The archive is written after a run and never read back by one.
package dbp

import (
	"context"
	"database/sql"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/mseshachalam/hncli/app"
)

// CreateTablesStmts contains needed sql stmts to setup required tables
var CreateTablesStmts = []string{
	"CREATE TABLE IF NOT EXISTS `stories` (`id` INTEGER NOT NULL,`mode` TEXT NOT NULL,`rank` INTEGER NOT NULL,`title` TEXT,`score` INTEGER,`link` TEXT NOT NULL,`descendants` INTEGER,`type` TEXT,`by` TEXT,`time` INTEGER,`fetched` INTEGER NOT NULL, PRIMARY KEY (`id`, `mode`))",
	"CREATE INDEX IF NOT EXISTS `stories_fetched` ON `stories` (`fetched`)",
}

const insertOrReplaceStory = "INSERT OR REPLACE INTO `stories` (`id`, `mode`, `rank`, `title`, `score`, `link`, `descendants`, `type`, `by`, `time`, `fetched`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// Open opens the sqlite archive at path and creates its tables
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}

	if err := SetupTables(db, CreateTablesStmts); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// SetupTables executes stmts on db
func SetupTables(db *sql.DB, stmts []string) error {
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		if err != nil {
			return errors.Wrap(err, "setup tables")
		}
	}
	return nil
}

// Row is one archived story
type Row struct {
	Story *app.Story
	// Rank is the 1-based display position.
	Rank int
	// Link is the URL shown for the story.
	Link string
}

// InsertOrReplaceStories stores rows for mode in one transaction. fetched is a
// unix timestamp; a story already archived for mode is overwritten.
func InsertOrReplaceStories(ctx context.Context, db *sql.DB, mode app.Mode, fetched int64, rows []Row) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}

	stmt, err := tx.PrepareContext(ctx, insertOrReplaceStory)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare")
	}
	defer stmt.Close()

	for _, r := range rows {
		s := r.Story
		_, err := stmt.ExecContext(ctx, s.ID, mode.String(), r.Rank, s.Title, s.Score, r.Link, s.Descendants, s.Type, s.By, s.Time, fetched)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert story %d", s.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}
