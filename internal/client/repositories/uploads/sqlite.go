package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, item *models.QueueItem) error {
	query := `INSERT INTO upload_queue (id, name, size_label, progress, status, detail)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				size_label = excluded.size_label,
				progress = excluded.progress,
				status = excluded.status,
				detail = excluded.detail
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.SizeLabel, item.Progress, string(item.Status), item.Detail)
	if err != nil {
		return fmt.Errorf("failed to upsert queue item: %w", err)
	}
	return nil
}

// SetProgress updates only the progress column. The status guard turns a
// checkpoint that arrives after the transfer already finished into a no-op,
// so a complete or error row can never be reverted to uploading state.
func (r *SQLiteRepository) SetProgress(ctx context.Context, id string, progress int) error {
	query := `UPDATE upload_queue SET progress = ? WHERE id = ? AND status = ?`
	_, err := r.db.ExecContext(ctx, query, progress, id, string(models.UploadUploading))
	if err != nil {
		return fmt.Errorf("failed to checkpoint queue item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.QueueItem, error) {
	query := `SELECT id, name, size_label, progress, status, detail FROM upload_queue ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select queue items: %w", err)
	}
	defer rows.Close()

	var result []models.QueueItem
	for rows.Next() {
		var item models.QueueItem
		var status string
		if err := rows.Scan(&item.ID, &item.Name, &item.SizeLabel, &item.Progress, &status, &item.Detail); err != nil {
			return nil, err
		}
		item.Status = models.UploadStatus(status)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.QueueItem, error) {
	query := `SELECT id, name, size_label, progress, status, detail FROM upload_queue WHERE id = ?`
	var item models.QueueItem
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.SizeLabel, &item.Progress, &status, &item.Detail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get queue item: %w", err)
	}
	item.Status = models.UploadStatus(status)
	return &item, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM upload_queue WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete queue item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM upload_queue`)
	if err != nil {
		return fmt.Errorf("failed to clear upload queue: %w", err)
	}
	return nil
}
