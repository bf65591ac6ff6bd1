package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
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

func TestMergeByName(t *testing.T) {
	uploading := models.QueueItem{ID: "q1", Name: "x", Progress: 40, Status: models.UploadUploading}

	tests := []struct {
		name   string
		local  []models.QueueItem
		server []models.Document
		want   []models.QueueItem
	}{
		{
			name:   "local entry masks server copy of same file",
			local:  []models.QueueItem{uploading},
			server: []models.Document{{ID: "d1", Name: "x"}, {ID: "d2", Name: "y"}},
			want: []models.QueueItem{
				uploading,
				{ID: "d2", Name: "y", Progress: 100, Status: models.UploadComplete},
			},
		},
		{
			name:   "server only",
			server: []models.Document{{ID: "d1", Name: "a"}, {ID: "d2", Name: "b"}},
			want: []models.QueueItem{
				{ID: "d1", Name: "a", Progress: 100, Status: models.UploadComplete},
				{ID: "d2", Name: "b", Progress: 100, Status: models.UploadComplete},
			},
		},
		{
			name:  "local only",
			local: []models.QueueItem{uploading},
			want:  []models.QueueItem{uploading},
		},
		{
			name: "error row not masked by confirmed server document",
			local: []models.QueueItem{
				{ID: "q2", Name: "x", Status: models.UploadError, Detail: "duplicate content"},
			},
			server: []models.Document{{ID: "d1", Name: "x"}},
			want: []models.QueueItem{
				{ID: "q2", Name: "x", Status: models.UploadError, Detail: "duplicate content"},
			},
		},
		{
			name: "both empty",
			want: []models.QueueItem{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MergeByName(tc.local, tc.server))
		})
	}
}

func TestUploadService_Lifecycle(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fake := &fakeAPI{ingestResult: &models.IngestResult{DocumentID: "d1", ChunksAdded: 3}}
	svc := NewUploadService(fake, db, nil)

	item, err := svc.Enqueue(ctx, "algo.pdf", 2048)
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	require.Equal(t, models.UploadPending, item.Status)
	require.NotEmpty(t, item.SizeLabel)

	content := strings.NewReader("0123456789")
	res, err := svc.Upload(ctx, item.ID, content, 10, false)
	require.NoError(t, err)
	require.Equal(t, "d1", res.DocumentID)
	require.Equal(t, "algo.pdf", fake.lastUpload.Name)
	require.False(t, fake.lastUpload.Force)

	queue, err := svc.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, models.UploadComplete, queue[0].Status)
	require.Equal(t, 100, queue[0].Progress)
}

func TestUploadService_FailureRowPersistsUntilDismissed(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fake := &fakeAPI{ingestErr: api.ErrUnreachable}
	svc := NewUploadService(fake, db, nil)

	item, err := svc.Enqueue(ctx, "notes.pdf", 100)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, item.ID, strings.NewReader("x"), 1, false)
	require.ErrorIs(t, err, api.ErrUnreachable)

	queue, err := svc.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, models.UploadError, queue[0].Status)
	require.NotEmpty(t, queue[0].Detail)

	// A later Queue read still shows the row; only Dismiss removes it.
	require.NoError(t, svc.Dismiss(ctx, item.ID))
	queue, err = svc.Queue(ctx)
	require.NoError(t, err)
	require.Empty(t, queue)

	require.ErrorIs(t, svc.Dismiss(ctx, item.ID), ErrNotQueued)
}

func TestUploadService_DuplicateThenForcedRetry(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fake := &fakeAPI{
		ingestResult:       &models.IngestResult{Duplicate: true, Message: "duplicate content detected"},
		ingestForcedResult: &models.IngestResult{DocumentID: "d9", Version: 2},
	}
	svc := NewUploadService(fake, db, nil)

	item, err := svc.Enqueue(ctx, "paper.pdf", 100)
	require.NoError(t, err)

	res, err := svc.Upload(ctx, item.ID, strings.NewReader("abc"), 3, false)
	require.NoError(t, err)
	require.True(t, res.Duplicate)

	queue, err := svc.Queue(ctx)
	require.NoError(t, err)
	require.Equal(t, models.UploadError, queue[0].Status)
	require.Equal(t, "duplicate content detected", queue[0].Detail)

	res, err = svc.Upload(ctx, item.ID, strings.NewReader("abc"), 3, true)
	require.NoError(t, err)
	require.True(t, fake.lastUpload.Force)
	require.Equal(t, "d9", res.DocumentID)

	queue, err = svc.Queue(ctx)
	require.NoError(t, err)
	require.Equal(t, models.UploadComplete, queue[0].Status)
	require.Empty(t, queue[0].Detail)
}

// trailingProgressAPI mimics the real transport: the multipart body is
// written by a separate goroutine that keeps reporting progress even after
// the request itself has already failed.
type trailingProgressAPI struct {
	*fakeAPI
	release chan struct{}
	done    chan struct{}
}

func (f *trailingProgressAPI) IngestFile(_ context.Context, upload api.FileUpload) (*models.IngestResult, error) {
	go func() {
		defer close(f.done)
		upload.Progress(1)
		<-f.release
		upload.Progress(upload.Size)
	}()
	return nil, api.ErrTimeout
}

func TestUploadService_LateCheckpointCannotRevertErrorRow(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fake := &trailingProgressAPI{
		fakeAPI: &fakeAPI{},
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
	svc := NewUploadService(fake, db, nil)

	item, err := svc.Enqueue(ctx, "flaky.pdf", 100)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, item.ID, strings.NewReader("x"), 100, false)
	require.ErrorIs(t, err, api.ErrTimeout)

	// The writer goroutine is still alive; let its final checkpoint land
	// after the failure has been recorded.
	close(fake.release)
	<-fake.done

	queue, err := svc.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, models.UploadError, queue[0].Status, "error row must survive trailing checkpoints")
	require.NotEmpty(t, queue[0].Detail)
}

func TestUploadService_UnknownItem(t *testing.T) {
	db := setupDB(t)
	svc := NewUploadService(&fakeAPI{}, db, nil)

	_, err := svc.Upload(context.Background(), "missing", strings.NewReader(""), 0, false)
	require.ErrorIs(t, err, ErrNotQueued)
}

func TestUploadService_MergedFallsBackToLocalQueue(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fake := &fakeAPI{listDocsErr: errors.New("boom")}
	svc := NewUploadService(fake, db, nil)

	item, err := svc.Enqueue(ctx, "offline.pdf", 10)
	require.NoError(t, err)

	merged, err := svc.Merged(ctx)
	require.Error(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, item.ID, merged[0].ID)
}

func TestPercent(t *testing.T) {
	require.Equal(t, 0, percent(0, 100))
	require.Equal(t, 50, percent(50, 100))
	require.Equal(t, 99, percent(100, 100), "full transfer caps below completion")
	require.Equal(t, 0, percent(10, 0), "unknown total reports nothing")
}
