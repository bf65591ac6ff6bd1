// Package uploads persists the local upload queue between runs. Rows are
// per-user cached state and are wiped by the session store on identity switch.
package uploads

import (
	"context"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type Repository interface {
	// Upsert inserts a new queue item or updates an existing one by ID.
	Upsert(ctx context.Context, item *models.QueueItem) error

	// SetProgress checkpoints the progress of an in-flight item. Items that
	// already reached a terminal status are left untouched.
	SetProgress(ctx context.Context, id string, progress int) error

	// GetAll returns all queue items in insertion order.
	GetAll(ctx context.Context) ([]models.QueueItem, error)

	// GetByID returns one item, or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*models.QueueItem, error)

	// DeleteByID removes one item, typically on user dismissal.
	DeleteByID(ctx context.Context, id string) error

	// Clear removes every item (identity switch, logout housekeeping).
	Clear(ctx context.Context) error
}
