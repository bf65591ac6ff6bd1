package uploads

import (
	"context"
	"database/sql"
	"testing"

	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:uploads_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS upload_queue (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  size_label TEXT NOT NULL DEFAULT '',
  progress   INTEGER NOT NULL DEFAULT 0,
  status     TEXT NOT NULL,
  detail     TEXT NOT NULL DEFAULT ''
);
DELETE FROM upload_queue;
`)
	require.NoError(t, err)
	return db
}

func item(id, name string, status models.UploadStatus) *models.QueueItem {
	return &models.QueueItem{ID: id, Name: name, SizeLabel: "1.2 MB", Status: status}
}

func TestSQLiteRepository_UpsertAndGetAll(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, item("a", "algo.pdf", models.UploadPending)))
	require.NoError(t, repo.Upsert(ctx, item("b", "calc.pdf", models.UploadUploading)))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "algo.pdf", got[0].Name, "insertion order preserved")
	require.Equal(t, models.UploadUploading, got[1].Status)
}

func TestSQLiteRepository_UpsertUpdatesInPlace(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	it := item("a", "algo.pdf", models.UploadUploading)
	require.NoError(t, repo.Upsert(ctx, it))

	it.Progress = 100
	it.Status = models.UploadComplete
	require.NoError(t, repo.Upsert(ctx, it))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 100, got[0].Progress)
	require.Equal(t, models.UploadComplete, got[0].Status)
}

func TestSQLiteRepository_SetProgress(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, item("a", "algo.pdf", models.UploadUploading)))
	require.NoError(t, repo.SetProgress(ctx, "a", 42))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 42, got.Progress)
	require.Equal(t, models.UploadUploading, got.Status)
}

func TestSQLiteRepository_SetProgressSkipsTerminalRows(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	failed := item("a", "algo.pdf", models.UploadError)
	failed.Detail = "connection reset"
	require.NoError(t, repo.Upsert(ctx, failed))

	require.NoError(t, repo.SetProgress(ctx, "a", 90))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, models.UploadError, got.Status, "a checkpoint must never revive a finished row")
	require.Zero(t, got.Progress)
	require.Equal(t, "connection reset", got.Detail)
}

func TestSQLiteRepository_DeleteByID(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, item("a", "algo.pdf", models.UploadError)))
	require.NoError(t, repo.DeleteByID(ctx, "a"))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, item("a", "algo.pdf", models.UploadPending)))
	require.NoError(t, repo.Upsert(ctx, item("b", "calc.pdf", models.UploadComplete)))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
