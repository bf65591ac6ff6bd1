package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("jwt-1")))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("jwt-1"), v)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("old")))
	require.NoError(t, repo.Set(ctx, "token", []byte("new")))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSQLiteRepository_GetMissingReturnsNil(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	v, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "student", []byte(`{"roll_no":"s1"}`)))
	require.NoError(t, repo.Set(ctx, "prefs", []byte(`{}`)))

	require.NoError(t, repo.Delete(ctx, "student"))
	v, err := repo.Get(ctx, "student")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, repo.Clear(ctx))
	v, err = repo.Get(ctx, "prefs")
	require.NoError(t, err)
	require.Nil(t, v)
}
