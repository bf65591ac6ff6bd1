package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/client/repositories/uploads"
	"github.com/smartcampus/assistant-cli/internal/logging"
)

// ErrNotQueued is returned when an operation names a queue item that does not
// exist (already dismissed, or purged by an identity switch).
var ErrNotQueued = errors.New("no such queued upload")

// UploadService owns the upload queue. Every state transition is persisted
// before it is reported, so the queue survives restarts: error rows stay
// visible until the user dismisses them, completed rows until the server
// list confirms them.
type UploadService interface {
	// Enqueue records a new pending item and returns it.
	Enqueue(ctx context.Context, name string, size int64) (models.QueueItem, error)

	// Upload streams a queued file to the backend, checkpointing progress.
	// A duplicate-content rejection is reported via the result, not an
	// error; retry with force to override it.
	Upload(ctx context.Context, id string, content io.Reader, size int64, force bool) (*models.IngestResult, error)

	// Queue returns the persisted local queue in insertion order.
	Queue(ctx context.Context) ([]models.QueueItem, error)

	// Merged returns the local queue reconciled with the server document
	// list. When the server list cannot be fetched the local queue is
	// returned as-is together with the error, so the view can still render.
	Merged(ctx context.Context) ([]models.QueueItem, error)

	// Dismiss removes one item, the only way an error row ever disappears.
	Dismiss(ctx context.Context, id string) error
}

type uploadService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger
}

func NewUploadService(client api.Client, db *sql.DB, log logging.Logger) UploadService {
	if log == nil {
		log = logging.Discard()
	}
	return &uploadService{client: client, db: db, log: log}
}

func (s *uploadService) repo() uploads.Repository {
	return uploads.NewSQLiteRepository(s.db)
}

func (s *uploadService) Enqueue(ctx context.Context, name string, size int64) (models.QueueItem, error) {
	item := models.QueueItem{
		ID:        uuid.NewString(),
		Name:      name,
		SizeLabel: sizeLabel(size),
		Status:    models.UploadPending,
	}
	if err := s.repo().Upsert(ctx, &item); err != nil {
		return models.QueueItem{}, err
	}
	s.log.Debug(ctx, "upload queued", "id", item.ID, "name", name, "size", item.SizeLabel)
	return item, nil
}

func (s *uploadService) Upload(ctx context.Context, id string, content io.Reader, size int64, force bool) (*models.IngestResult, error) {
	repo := s.repo()
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("upload %s: %w", id, ErrNotQueued)
	}

	item.Status = models.UploadUploading
	item.Progress = 0
	item.Detail = ""
	if err := repo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	// Progress runs on the transport's writer goroutine, which can outlive
	// IngestFile on the error path; it must not touch item. SetProgress
	// writes only the progress column and only while the row is still
	// uploading, so a late checkpoint cannot revert a terminal status.
	var lastPct atomic.Int32
	lastPct.Store(-1)
	progress := func(sent int64) {
		pct := int32(percent(sent, size))
		if pct == lastPct.Swap(pct) {
			return
		}
		if err := repo.SetProgress(ctx, id, int(pct)); err != nil {
			s.log.Debug(ctx, "progress checkpoint failed", "id", id, "err", err)
		}
	}

	res, err := s.client.IngestFile(ctx, api.FileUpload{
		Name:     item.Name,
		Content:  content,
		Size:     size,
		Force:    force,
		Progress: progress,
	})
	if err != nil {
		item.Status = models.UploadError
		item.Detail = err.Error()
		if perr := repo.Upsert(context.WithoutCancel(ctx), item); perr != nil {
			s.log.Error(ctx, "failed to record upload failure", "id", id, "err", perr)
		}
		return nil, err
	}

	if res.Duplicate {
		item.Status = models.UploadError
		item.Detail = res.Message
		if err := repo.Upsert(ctx, item); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "duplicate content detected", "id", id, "name", item.Name)
		return res, nil
	}

	item.Status = models.UploadComplete
	item.Progress = 100
	item.Detail = ""
	if err := repo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "upload complete", "id", id, "name", item.Name,
		"document_id", res.DocumentID, "chunks", res.ChunksAdded)
	return res, nil
}

func (s *uploadService) Queue(ctx context.Context) ([]models.QueueItem, error) {
	return s.repo().GetAll(ctx)
}

func (s *uploadService) Merged(ctx context.Context) ([]models.QueueItem, error) {
	local, err := s.repo().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	server, err := s.client.ListDocuments(ctx)
	if err != nil {
		s.log.Warn(ctx, "document list unavailable, showing local queue only", "err", err)
		return local, err
	}
	return MergeByName(local, server), nil
}

func (s *uploadService) Dismiss(ctx context.Context, id string) error {
	item, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("dismiss %s: %w", id, ErrNotQueued)
	}
	return s.repo().DeleteByID(ctx, id)
}

// percent caps at 99; 100 is reserved for server-confirmed completion.
func percent(sent, total int64) int {
	if total <= 0 || sent <= 0 {
		return 0
	}
	p := int(sent * 100 / total)
	if p > 99 {
		p = 99
	}
	return p
}

func sizeLabel(size int64) string {
	if size <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(size))
}
