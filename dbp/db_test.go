package dbp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mseshachalam/hncli/app"
)

func TestInsertOrReplaceStories(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	rows := []Row{
		{Story: &app.Story{ID: 1, Title: "one", Score: 10, URL: "https://a.example"}, Rank: 1, Link: "https://a.example"},
		{Story: &app.Story{ID: 2, Title: "two", Score: 20}, Rank: 2, Link: "https://news.ycombinator.com/item?id=2"},
	}
	require.NoError(t, InsertOrReplaceStories(ctx, db, app.Hottest, 100, rows))
	require.NoError(t, InsertOrReplaceStories(ctx, db, app.Latest, 100, rows[:1]))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM stories").Scan(&n))
	assert.Equal(t, 3, n)

	rows[0].Story.Score = 99
	rows[0].Rank = 2
	require.NoError(t, InsertOrReplaceStories(ctx, db, app.Hottest, 200, rows[:1]))

	var (
		score, rank int
		fetched     int64
		link        string
	)
	err = db.QueryRow("SELECT score, rank, fetched, link FROM stories WHERE id = 1 AND mode = 'hottest'").Scan(&score, &rank, &fetched, &link)
	require.NoError(t, err)
	assert.Equal(t, 99, score)
	assert.Equal(t, 2, rank)
	assert.Equal(t, int64(200), fetched)
	assert.Equal(t, "https://a.example", link)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM stories").Scan(&n))
	assert.Equal(t, 3, n)
}

func TestOpen_Twice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
